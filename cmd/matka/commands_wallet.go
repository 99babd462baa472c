package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/history"
	"github.com/matkahub/matka-client/internal/wallet"
)

func (a *app) walletLimits() wallet.Limits {
	return wallet.Limits{
		MinDeposit:  decimal.NewFromInt(a.cfg.Wallet.MinDeposit),
		MaxDeposit:  decimal.NewFromInt(a.cfg.Wallet.MaxDeposit),
		MinWithdraw: decimal.NewFromInt(a.cfg.Wallet.MinWithdraw),
		MaxWithdraw: decimal.NewFromInt(a.cfg.Wallet.MaxWithdraw),
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount must be a number: %q", s)
	}
	return amt, nil
}

func newWalletCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Deposit, withdraw and view the wallet statement",
	}
	cmd.AddCommand(newBalanceCmd(a), newDepositCmd(a), newWithdrawCmd(a), newStatementCmd(a))
	return cmd
}

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current wallet balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}
			balance, err := a.client.Balance(cmd.Context())
			if err != nil {
				return surfaceError(err)
			}
			fmt.Println(balance.StringFixed(2))
			return nil
		},
	}
}

func newDepositCmd(a *app) *cobra.Command {
	var amount, appName string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Create a deposit fund request",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}

			if errs := wallet.ValidateFundRequest(amt, wallet.App(appName), a.walletLimits()); !errs.IsEmpty() {
				return surfaceError(errs)
			}

			created, err := a.client.CreateFundRequest(cmd.Context(), api.FundRequest{
				Amount: amt,
				App:    appName,
			})
			if err != nil {
				return surfaceError(err)
			}
			fmt.Printf("Fund request %s created for %s (%s)\n", created.ID, created.Amount.StringFixed(0), created.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "deposit amount")
	cmd.Flags().StringVar(&appName, "app", "", "payment app (phonepe, gpay, paytm, upi_qr)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("app")
	return cmd
}

func newWithdrawCmd(a *app) *cobra.Command {
	var amount, method string

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Request a withdrawal to a registered payout method",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}

			balance, err := a.client.Balance(ctx)
			if err != nil {
				return surfaceError(err)
			}
			detail, err := a.client.BankDetail(ctx)
			if err != nil {
				return surfaceError(err)
			}

			if errs := wallet.ValidateWithdrawal(amt, wallet.Method(method), *detail, balance, a.walletLimits()); !errs.IsEmpty() {
				return surfaceError(errs)
			}

			created, err := a.client.CreateWithdrawal(ctx, api.Withdrawal{
				Amount: amt,
				Method: method,
			})
			if err != nil {
				return surfaceError(err)
			}
			fmt.Printf("Withdrawal %s requested for %s (%s)\n", created.ID, created.Amount.StringFixed(0), created.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "withdrawal amount")
	cmd.Flags().StringVar(&method, "method", "", "payout method (bank, phonepe, gpay, paytm)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("method")
	return cmd
}

func newStatementCmd(a *app) *cobra.Command {
	var (
		kind, from, to string
		page, pageSize int
	)

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Show the combined deposit/withdrawal/bet statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}

			funds, err := a.client.FundRequestHistory(ctx)
			if err != nil {
				return surfaceError(err)
			}
			withdrawals, err := a.client.WithdrawalHistory(ctx)
			if err != nil {
				return surfaceError(err)
			}
			bets, err := a.client.BetHistory(ctx, api.HistoryQuery{})
			if err != nil {
				return surfaceError(err)
			}

			fromAt, err := parseDay(from, false)
			if err != nil {
				return err
			}
			toAt, err := parseDay(to, true)
			if err != nil {
				return err
			}

			entries := wallet.FilterEntries(wallet.Statement(funds, withdrawals, bets), wallet.EntryKind(kind), fromAt, toAt)
			pg := history.Paginate(entries, page, pageSize)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tKIND\tAMOUNT\tSTATUS\tREFERENCE")
			for _, e := range pg.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.At.Local().Format("2006-01-02 15:04"), e.Kind, e.Amount.StringFixed(2), e.Status, e.Reference)
			}
			w.Flush()

			fmt.Printf("Page %d/%d (%d entries)\n", pg.Page, pg.TotalPages, pg.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "entry kind (deposit, withdrawal, bet, win)")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "size", 10, "page size")
	return cmd
}

// parseDay parses YYYY-MM-DD; end dates cover the whole day.
func parseDay(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %q", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in profile and balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}
			user, err := a.client.Profile(cmd.Context())
			if err != nil {
				return surfaceError(err)
			}
			fmt.Printf("Name:    %s\n", user.Name)
			fmt.Printf("Phone:   %s\n", user.Phone)
			fmt.Printf("Balance: %s\n", user.Balance.StringFixed(2))
			return nil
		},
	}
}

func newBankCmd(a *app) *cobra.Command {
	var detail api.BankDetail

	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Show or update registered payout details",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}

			if detail == (api.BankDetail{}) {
				current, err := a.client.BankDetail(ctx)
				if err != nil {
					return surfaceError(err)
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "Holder\t%s\n", current.AccountHolder)
				fmt.Fprintf(w, "Account\t%s\n", current.AccountNumber)
				fmt.Fprintf(w, "IFSC\t%s\n", current.IFSC)
				fmt.Fprintf(w, "UPI\t%s\n", current.UPI)
				fmt.Fprintf(w, "PhonePe\t%s\n", current.PhonePe)
				fmt.Fprintf(w, "GPay\t%s\n", current.GPay)
				fmt.Fprintf(w, "Paytm\t%s\n", current.Paytm)
				w.Flush()
				return nil
			}

			if errs := wallet.ValidateBankDetail(detail); !errs.IsEmpty() {
				return surfaceError(errs)
			}
			if err := a.client.UpdateBankDetail(ctx, detail); err != nil {
				return surfaceError(err)
			}
			fmt.Println("Payout details updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&detail.AccountHolder, "holder", "", "account holder name")
	cmd.Flags().StringVar(&detail.AccountNumber, "account", "", "bank account number")
	cmd.Flags().StringVar(&detail.IFSC, "ifsc", "", "IFSC code")
	cmd.Flags().StringVar(&detail.UPI, "upi", "", "UPI handle")
	cmd.Flags().StringVar(&detail.PhonePe, "phonepe", "", "PhonePe mobile number")
	cmd.Flags().StringVar(&detail.GPay, "gpay", "", "GPay mobile number")
	cmd.Flags().StringVar(&detail.Paytm, "paytm", "", "Paytm mobile number")
	return cmd
}
