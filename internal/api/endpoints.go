package api

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/matkahub/matka-client/internal/bet"
	"github.com/matkahub/matka-client/pkg/logger"
)

// HistoryQuery narrows history listings server-side. Zero values mean "no
// filter"; paging is applied client-side on top (internal/history).
type HistoryQuery struct {
	GameID   string
	BetType  string
	DateFrom string // "YYYY-MM-DD"
	DateTo   string
}

func (q HistoryQuery) params() map[string]string {
	p := map[string]string{}
	if q.GameID != "" {
		p["gameId"] = q.GameID
	}
	if q.BetType != "" {
		p["betType"] = q.BetType
	}
	if q.DateFrom != "" {
		p["from"] = q.DateFrom
	}
	if q.DateTo != "" {
		p["to"] = q.DateTo
	}
	return p
}

// --- auth --- //

func (c *Client) Login(ctx context.Context, creds Credentials) (string, *User, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// Register creates an account and logs it in in one call.
func (c *Client) Register(ctx context.Context, reg Registration) (string, *User, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/register", reg, &resp); err != nil {
		return "", nil, err
	}
	return resp.Token, &resp.User, nil
}

// --- games --- //

func (c *Client) Games(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.get(ctx, "/games", nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) StarlineGames(ctx context.Context) ([]Game, error) {
	var games []Game
	if err := c.get(ctx, "/starline/games", nil, &games); err != nil {
		return nil, err
	}
	for i := range games {
		games[i].Starline = true
	}
	return games, nil
}

func (c *Client) GameResults(ctx context.Context, gameID, date string) (*Game, error) {
	params := map[string]string{}
	if date != "" {
		params["date"] = date
	}
	var game Game
	if err := c.get(ctx, fmt.Sprintf("/games/%s/results", gameID), params, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// GameRates fetches the public rate table used for payout estimates.
func (c *Client) GameRates(ctx context.Context) (bet.RateTable, error) {
	var rates bet.RateTable
	if err := c.get(ctx, "/content/game-rates", nil, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// --- betting --- //

func (c *Client) PlaceBet(ctx context.Context, req BetRequest) (*Bet, error) {
	var placed Bet
	if err := c.post(ctx, "/bets", req, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}

func (c *Client) BetHistory(ctx context.Context, q HistoryQuery) ([]Bet, error) {
	var bets []Bet
	if err := c.get(ctx, "/bets", q.params(), &bets); err != nil {
		return nil, err
	}
	return bets, nil
}

func (c *Client) WinningHistory(ctx context.Context, q HistoryQuery) ([]Bet, error) {
	var wins []Bet
	if err := c.get(ctx, "/bets/winnings", q.params(), &wins); err != nil {
		return nil, err
	}
	return wins, nil
}

// --- profile & wallet --- //

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Balance(ctx context.Context) (decimal.Decimal, error) {
	var resp struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := c.get(ctx, "/users/me/balance", nil, &resp); err != nil {
		return decimal.Zero, err
	}
	return resp.Balance, nil
}

func (c *Client) CreateFundRequest(ctx context.Context, req FundRequest) (*FundRequest, error) {
	var created FundRequest
	if err := c.post(ctx, "/funds", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) FundRequestHistory(ctx context.Context) ([]FundRequest, error) {
	var reqs []FundRequest
	if err := c.get(ctx, "/funds", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *Client) CreateWithdrawal(ctx context.Context, req Withdrawal) (*Withdrawal, error) {
	var created Withdrawal
	if err := c.post(ctx, "/withdrawals", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) WithdrawalHistory(ctx context.Context) ([]Withdrawal, error) {
	var reqs []Withdrawal
	if err := c.get(ctx, "/withdrawals", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (c *Client) BankDetail(ctx context.Context) (*BankDetail, error) {
	var detail BankDetail
	if err := c.get(ctx, "/users/me/bank", nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) UpdateBankDetail(ctx context.Context, detail BankDetail) error {
	return c.put(ctx, "/users/me/bank", detail, nil)
}

// --- public content (silent-degrade reads) --- //

// Banners never fails the caller; a broken banner fetch degrades to an
// empty dashboard strip.
func (c *Client) Banners(ctx context.Context) []Banner {
	var banners []Banner
	if err := c.get(ctx, "/content/banners", nil, &banners); err != nil {
		logger.Warn("Banner fetch failed", "err", err)
		return nil
	}
	return banners
}

// Content fetches a public content page ("how-to-play", "contact").
// Failures degrade to empty.
func (c *Client) Content(ctx context.Context, kind string) string {
	var resp struct {
		Body string `json:"body"`
	}
	if err := c.get(ctx, "/content/"+kind, nil, &resp); err != nil {
		logger.Warn("Content fetch failed", "kind", kind, "err", err)
		return ""
	}
	return resp.Body
}

// --- enquiry --- //

func (c *Client) Enquiry(ctx context.Context) ([]EnquiryMessage, error) {
	var msgs []EnquiryMessage
	if err := c.get(ctx, "/enquiry", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (c *Client) PostEnquiry(ctx context.Context, text string) error {
	body := map[string]string{"text": text}
	return c.post(ctx, "/enquiry", body, nil)
}
