// Package wallet builds and validates the money-movement requests (deposit
// fund requests, withdrawals) and renders the combined statement. All
// validation here is presentational; the server re-checks everything.
package wallet

import (
	"regexp"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/bet"
)

// App tags the payment app a deposit was made through.
type App string

const (
	AppPhonePe App = "phonepe"
	AppGPay    App = "gpay"
	AppPaytm   App = "paytm"
	AppUPIQR   App = "upi_qr"
)

// Method is a withdrawal payout target kind.
type Method string

const (
	MethodBank    Method = "bank"
	MethodPhonePe Method = "phonepe"
	MethodGPay    Method = "gpay"
	MethodPaytm   Method = "paytm"
)

var (
	upiRe     = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)
	ifscRe    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountRe = regexp.MustCompile(`^\d{9,18}$`)
	mobileRe  = regexp.MustCompile(`^\d{10}$`)
)

// Limits bounds wallet amounts, from configuration.
type Limits struct {
	MinDeposit  decimal.Decimal
	MaxDeposit  decimal.Decimal
	MinWithdraw decimal.Decimal
	MaxWithdraw decimal.Decimal
}

func validApp(app App) bool {
	switch app {
	case AppPhonePe, AppGPay, AppPaytm, AppUPIQR:
		return true
	}
	return false
}

// ValidateFundRequest gates a deposit request.
func ValidateFundRequest(amount decimal.Decimal, app App, limits Limits) bet.FieldErrors {
	errs := bet.FieldErrors{}

	switch {
	case amount.Sign() <= 0:
		errs["amount"] = "enter a deposit amount"
	case amount.LessThan(limits.MinDeposit):
		errs["amount"] = "minimum deposit is " + limits.MinDeposit.StringFixed(0)
	case amount.GreaterThan(limits.MaxDeposit):
		errs["amount"] = "maximum deposit is " + limits.MaxDeposit.StringFixed(0)
	}
	if !validApp(app) {
		errs["app"] = "choose a payment app"
	}
	return errs
}

// ValidateWithdrawal gates a withdrawal against the registered payout
// details for the chosen method.
func ValidateWithdrawal(amount decimal.Decimal, method Method, detail api.BankDetail, balance decimal.Decimal, limits Limits) bet.FieldErrors {
	errs := bet.FieldErrors{}

	switch {
	case amount.Sign() <= 0:
		errs["amount"] = "enter a withdrawal amount"
	case amount.LessThan(limits.MinWithdraw):
		errs["amount"] = "minimum withdrawal is " + limits.MinWithdraw.StringFixed(0)
	case amount.GreaterThan(limits.MaxWithdraw):
		errs["amount"] = "maximum withdrawal is " + limits.MaxWithdraw.StringFixed(0)
	case amount.GreaterThan(balance):
		errs["amount"] = "insufficient balance"
	}

	switch method {
	case MethodBank:
		if !accountRe.MatchString(detail.AccountNumber) {
			errs["account"] = "account number must be 9-18 digits"
		}
		if !ifscRe.MatchString(detail.IFSC) {
			errs["ifsc"] = "invalid IFSC code"
		}
		if detail.AccountHolder == "" {
			errs["holder"] = "account holder name is required"
		}
	case MethodPhonePe:
		if !mobileRe.MatchString(detail.PhonePe) {
			errs["phonepe"] = "PhonePe number must be 10 digits"
		}
	case MethodGPay:
		if !mobileRe.MatchString(detail.GPay) {
			errs["gpay"] = "GPay number must be 10 digits"
		}
	case MethodPaytm:
		if !mobileRe.MatchString(detail.Paytm) {
			errs["paytm"] = "Paytm number must be 10 digits"
		}
	default:
		errs["method"] = "choose a withdrawal method"
	}
	return errs
}

// ValidateBankDetail gates a payout-detail update. Empty fields are left
// unset server-side, so only provided values are checked.
func ValidateBankDetail(detail api.BankDetail) bet.FieldErrors {
	errs := bet.FieldErrors{}
	if detail.AccountNumber != "" && !accountRe.MatchString(detail.AccountNumber) {
		errs["account"] = "account number must be 9-18 digits"
	}
	if detail.IFSC != "" && !ifscRe.MatchString(detail.IFSC) {
		errs["ifsc"] = "invalid IFSC code"
	}
	if detail.UPI != "" && !upiRe.MatchString(detail.UPI) {
		errs["upi"] = "invalid UPI handle"
	}
	for field, number := range map[string]string{
		"phonepe": detail.PhonePe,
		"gpay":    detail.GPay,
		"paytm":   detail.Paytm,
	} {
		if number != "" && !mobileRe.MatchString(number) {
			errs[field] = field + " number must be 10 digits"
		}
	}
	return errs
}

// EntryKind tags a statement line.
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
	EntryBet        EntryKind = "bet"
	EntryWin        EntryKind = "win"
)

// Entry is one line of the combined wallet statement.
type Entry struct {
	Kind      EntryKind
	Amount    decimal.Decimal // positive credit, negative debit
	Reference string
	Status    string
	At        time.Time
}

// Statement merges funds, withdrawals and bets into one newest-first
// stream. Won bets contribute both their stake debit and a win credit.
func Statement(funds []api.FundRequest, withdrawals []api.Withdrawal, bets []api.Bet) []Entry {
	entries := make([]Entry, 0, len(funds)+len(withdrawals)+len(bets))

	for _, f := range funds {
		entries = append(entries, Entry{
			Kind:      EntryDeposit,
			Amount:    f.Amount,
			Reference: f.Reference,
			Status:    f.Status,
			At:        f.CreatedAt,
		})
	}
	for _, w := range withdrawals {
		entries = append(entries, Entry{
			Kind:      EntryWithdrawal,
			Amount:    w.Amount.Neg(),
			Reference: string(w.Method),
			Status:    w.Status,
			At:        w.CreatedAt,
		})
	}
	for _, b := range bets {
		entries = append(entries, Entry{
			Kind:      EntryBet,
			Amount:    b.BetAmount.Neg(),
			Reference: b.GameName + " " + b.BetNumber,
			Status:    b.Status,
			At:        b.CreatedAt,
		})
		if b.Status == "won" {
			entries = append(entries, Entry{
				Kind:      EntryWin,
				Amount:    b.WinAmount,
				Reference: b.GameName + " " + b.BetNumber,
				Status:    b.Status,
				At:        b.CreatedAt,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.After(entries[j].At)
	})
	return entries
}

// FilterEntries keeps entries of kind within [from, to]. A zero kind or
// zero bound matches everything.
func FilterEntries(entries []Entry, kind EntryKind, from, to time.Time) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if kind != "" && e.Kind != kind {
			continue
		}
		if !from.IsZero() && e.At.Before(from) {
			continue
		}
		if !to.IsZero() && e.At.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}
