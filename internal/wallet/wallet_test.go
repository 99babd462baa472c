package wallet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/history"
)

func testLimits() Limits {
	return Limits{
		MinDeposit:  decimal.NewFromInt(100),
		MaxDeposit:  decimal.NewFromInt(50000),
		MinWithdraw: decimal.NewFromInt(500),
		MaxWithdraw: decimal.NewFromInt(25000),
	}
}

func TestValidateFundRequest(t *testing.T) {
	errs := ValidateFundRequest(decimal.NewFromInt(500), AppPhonePe, testLimits())
	assert.True(t, errs.IsEmpty(), "%v", errs)

	errs = ValidateFundRequest(decimal.NewFromInt(50), AppGPay, testLimits())
	assert.Contains(t, errs["amount"], "minimum")

	errs = ValidateFundRequest(decimal.NewFromInt(60000), AppPaytm, testLimits())
	assert.Contains(t, errs["amount"], "maximum")

	errs = ValidateFundRequest(decimal.NewFromInt(500), App("cash"), testLimits())
	assert.Contains(t, errs, "app")

	errs = ValidateFundRequest(decimal.Zero, AppUPIQR, testLimits())
	assert.Contains(t, errs, "amount")
}

func TestValidateWithdrawalBank(t *testing.T) {
	detail := api.BankDetail{
		AccountHolder: "A Kumar",
		AccountNumber: "123456789012",
		IFSC:          "HDFC0001234",
	}
	balance := decimal.NewFromInt(10000)

	errs := ValidateWithdrawal(decimal.NewFromInt(1000), MethodBank, detail, balance, testLimits())
	assert.True(t, errs.IsEmpty(), "%v", errs)

	detail.IFSC = "hdfc001234" // lowercase, wrong shape
	errs = ValidateWithdrawal(decimal.NewFromInt(1000), MethodBank, detail, balance, testLimits())
	assert.Contains(t, errs, "ifsc")

	detail.IFSC = "HDFC0001234"
	detail.AccountNumber = "12345678" // 8 digits, below range
	errs = ValidateWithdrawal(decimal.NewFromInt(1000), MethodBank, detail, balance, testLimits())
	assert.Contains(t, errs, "account")
}

func TestValidateWithdrawalWalletApps(t *testing.T) {
	balance := decimal.NewFromInt(10000)

	errs := ValidateWithdrawal(decimal.NewFromInt(1000), MethodPhonePe, api.BankDetail{PhonePe: "9876543210"}, balance, testLimits())
	assert.True(t, errs.IsEmpty(), "%v", errs)

	errs = ValidateWithdrawal(decimal.NewFromInt(1000), MethodPhonePe, api.BankDetail{PhonePe: "98765"}, balance, testLimits())
	assert.Contains(t, errs, "phonepe")

	errs = ValidateWithdrawal(decimal.NewFromInt(1000), MethodGPay, api.BankDetail{}, balance, testLimits())
	assert.Contains(t, errs, "gpay")

	errs = ValidateWithdrawal(decimal.NewFromInt(1000), Method("cheque"), api.BankDetail{}, balance, testLimits())
	assert.Contains(t, errs, "method")
}

func TestValidateWithdrawalAmounts(t *testing.T) {
	detail := api.BankDetail{PhonePe: "9876543210"}

	errs := ValidateWithdrawal(decimal.NewFromInt(100), MethodPhonePe, detail, decimal.NewFromInt(10000), testLimits())
	assert.Contains(t, errs["amount"], "minimum")

	errs = ValidateWithdrawal(decimal.NewFromInt(30000), MethodPhonePe, detail, decimal.NewFromInt(100000), testLimits())
	assert.Contains(t, errs["amount"], "maximum")

	errs = ValidateWithdrawal(decimal.NewFromInt(1000), MethodPhonePe, detail, decimal.NewFromInt(500), testLimits())
	assert.Equal(t, "insufficient balance", errs["amount"])
}

func TestValidateBankDetail(t *testing.T) {
	errs := ValidateBankDetail(api.BankDetail{
		AccountNumber: "123456789012",
		IFSC:          "SBIN0005943",
		UPI:           "akumar@oksbi",
		PhonePe:       "9876543210",
	})
	assert.True(t, errs.IsEmpty(), "%v", errs)

	// empty fields are fine: partial updates leave them unset
	assert.True(t, ValidateBankDetail(api.BankDetail{}).IsEmpty())

	errs = ValidateBankDetail(api.BankDetail{UPI: "not-a-handle"})
	assert.Contains(t, errs, "upi")

	errs = ValidateBankDetail(api.BankDetail{Paytm: "12345"})
	assert.Contains(t, errs, "paytm")
}

func TestStatement(t *testing.T) {
	funds := []api.FundRequest{
		{Amount: decimal.NewFromInt(1000), Status: "approved", CreatedAt: day(1)},
	}
	withdrawals := []api.Withdrawal{
		{Amount: decimal.NewFromInt(500), Method: "bank", Status: "pending", CreatedAt: day(4)},
	}
	bets := []api.Bet{
		{GameName: "Kalyan", BetNumber: "7", BetAmount: decimal.NewFromInt(50), Status: "lost", CreatedAt: day(2)},
		{GameName: "Milan", BetNumber: "42", BetAmount: decimal.NewFromInt(100), WinAmount: decimal.NewFromInt(950), Status: "won", CreatedAt: day(3)},
	}

	entries := Statement(funds, withdrawals, bets)
	require.Len(t, entries, 5) // win adds stake debit plus credit

	// newest first
	assert.Equal(t, EntryWithdrawal, entries[0].Kind)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(-500)))

	// the won bet contributes both lines at the same instant
	kinds := []EntryKind{entries[1].Kind, entries[2].Kind}
	assert.Contains(t, kinds, EntryBet)
	assert.Contains(t, kinds, EntryWin)

	deposits := FilterEntries(entries, EntryDeposit, time.Time{}, time.Time{})
	require.Len(t, deposits, 1)
	assert.True(t, deposits[0].Amount.Equal(decimal.NewFromInt(1000)))

	ranged := FilterEntries(entries, "", day(2), day(3))
	assert.Len(t, ranged, 3)
}

// The statement view pages the same way bet listings do.
func TestStatementPaginates(t *testing.T) {
	var bets []api.Bet
	for d := 1; d <= 5; d++ {
		bets = append(bets, api.Bet{
			GameName:  "Kalyan",
			BetNumber: "7",
			BetAmount: decimal.NewFromInt(int64(10 * d)),
			Status:    "lost",
			CreatedAt: day(d),
		})
	}

	entries := Statement(nil, nil, bets)
	require.Len(t, entries, 5)

	pg := history.Paginate(entries, 2, 2)
	assert.Equal(t, 5, pg.Total)
	assert.Equal(t, 3, pg.TotalPages)
	require.Len(t, pg.Items, 2)

	// newest-first ordering carries through paging: page 2 of size 2 holds
	// the 3rd and 4th newest entries
	assert.True(t, pg.Items[0].Amount.Equal(decimal.NewFromInt(-30)))
	assert.True(t, pg.Items[1].Amount.Equal(decimal.NewFromInt(-20)))

	assert.Empty(t, history.Paginate(entries, 4, 2).Items)
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
}
