package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/matkahub/matka-client/internal/bet"
)

func init() {
	// The server speaks plain JSON numbers for amounts.
	decimal.MarshalJSONWithoutQuotes = true
}

// Game is one row of the games list. OpenResult/CloseResult stay empty
// until the corresponding result is declared.
type Game struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OpenTime    string `json:"openTime"`  // "HH:MM"
	CloseTime   string `json:"closeTime"` // "HH:MM"
	OpenResult  string `json:"openResult,omitempty"`
	CloseResult string `json:"closeResult,omitempty"`
	Starline    bool   `json:"starline,omitempty"`
}

// Window projects the game row onto the session-availability rules.
func (g Game) Window() bet.Window {
	return bet.Window{
		OpenTime:            g.OpenTime,
		CloseTime:           g.CloseTime,
		OpenResultDeclared:  g.OpenResult != "",
		CloseResultDeclared: g.CloseResult != "",
		Starline:            g.Starline,
	}
}

// Result renders the declared result string, "x" padding pending parts.
func (g Game) Result() string {
	open, close := g.OpenResult, g.CloseResult
	if open == "" {
		open = "***"
	}
	if g.Starline {
		return open
	}
	if close == "" {
		close = "***"
	}
	return open + "-" + close
}

// BetRequest is the bet-submission body. Session is nil for full sangam and
// the selected session string otherwise.
type BetRequest struct {
	GameID    string          `json:"gameId"`
	BetType   string          `json:"betType"` // server vocabulary
	Session   *string         `json:"session"`
	BetNumber string          `json:"betNumber"`
	BetAmount decimal.Decimal `json:"betAmount"`
	GameDate  string          `json:"gameDate"` // ISO8601 midnight of current day
}

// Bet is a placed bet as the server reports it back.
type Bet struct {
	ID        string          `json:"id"`
	GameID    string          `json:"gameId"`
	GameName  string          `json:"gameName"`
	BetType   string          `json:"betType"`
	Session   *string         `json:"session"`
	BetNumber string          `json:"betNumber"`
	BetAmount decimal.Decimal `json:"betAmount"`
	WinAmount decimal.Decimal `json:"winAmount"`
	Status    string          `json:"status"` // pending | won | lost
	GameDate  string          `json:"gameDate"`
	CreatedAt time.Time       `json:"createdAt"`
}

// User is the authenticated profile with its current balance.
type User struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Balance decimal.Decimal `json:"balance"`
}

// FundRequest is a deposit request created against the site's UPI/QR flow.
type FundRequest struct {
	ID        string          `json:"id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	App       string          `json:"app"` // phonepe | gpay | paytm | upi_qr
	Reference string          `json:"reference,omitempty"`
	Status    string          `json:"status,omitempty"` // pending | approved | rejected
	CreatedAt time.Time       `json:"createdAt,omitzero"`
}

// Withdrawal is a payout request to one of the user's registered methods.
type Withdrawal struct {
	ID        string          `json:"id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"` // bank | phonepe | gpay | paytm
	Status    string          `json:"status,omitempty"`
	CreatedAt time.Time       `json:"createdAt,omitzero"`
}

// BankDetail carries every payout target the user has registered.
type BankDetail struct {
	AccountHolder string `json:"accountHolder,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	UPI           string `json:"upi,omitempty"`
	PhonePe       string `json:"phonepe,omitempty"`
	GPay          string `json:"gpay,omitempty"`
	Paytm         string `json:"paytm,omitempty"`
}

// Banner is a dashboard banner image.
type Banner struct {
	Image string `json:"image"`
	Link  string `json:"link,omitempty"`
}

// EnquiryMessage is one message of the user's support thread.
type EnquiryMessage struct {
	From      string    `json:"from"` // user | admin
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials authenticate a login call.
type Credentials struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Registration creates a new account.
type Registration struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// GameDate formats the server's bet-day stamp: ISO8601 midnight of the
// given day in the local zone.
func GameDate(now time.Time) string {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.Format(time.RFC3339)
}
