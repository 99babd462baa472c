package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/bet"
	"github.com/matkahub/matka-client/internal/betform"
	"github.com/matkahub/matka-client/pkg/logger"
)

// surfaceError prints validation and API errors the way the betting form
// does: one line per field error, or the single server message.
func surfaceError(err error) error {
	var fieldErrs bet.FieldErrors
	if errors.As(err, &fieldErrs) {
		for field, msg := range fieldErrs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		return errors.New("validation failed")
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		for _, fe := range apiErr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Message)
		}
		return errors.New(apiErr.Message)
	}
	return err
}

func newLoginCmd(a *app) *cobra.Command {
	var phone, password, registerName string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in (or register) and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				token string
				user  *api.User
				err   error
			)
			if registerName != "" {
				token, user, err = a.client.Register(cmd.Context(), api.Registration{
					Name: registerName, Phone: phone, Password: password,
				})
			} else {
				token, user, err = a.client.Login(cmd.Context(), api.Credentials{Phone: phone, Password: password})
			}
			if err != nil {
				return surfaceError(err)
			}
			if err := a.session.SetToken(token); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (balance %s)\n", user.Name, user.Balance.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "registered mobile number")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&registerName, "register", "", "register a new account under this name first")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newGamesCmd(a *app) *cobra.Command {
	var (
		starline, dismissPromo bool
		resultsFor, date       string
	)

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List games with current betting availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if resultsFor != "" {
				game, err := a.client.GameResults(ctx, resultsFor, date)
				if err != nil {
					return surfaceError(err)
				}
				fmt.Printf("%s: %s\n", game.Name, game.Result())
				return nil
			}

			var (
				games []api.Game
				err   error
			)
			if starline {
				games, err = a.client.StarlineGames(ctx)
			} else {
				games, err = a.client.Games(ctx)
			}
			if err != nil {
				return surfaceError(err)
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			if starline {
				fmt.Fprintln(w, "GAME\tTIME\tRESULT\tBETTABLE")
				for _, g := range games {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						g.Name, g.OpenTime, g.Result(), yesNo(g.Window().CanBet(bet.SessionOpen, now)))
				}
			} else {
				fmt.Fprintln(w, "GAME\tOPEN\tCLOSE\tRESULT\tOPEN BET\tCLOSE BET\tFULL SANGAM")
				for _, g := range games {
					win := g.Window()
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						g.Name, g.OpenTime, g.CloseTime, g.Result(),
						yesNo(win.CanBet(bet.SessionOpen, now)),
						yesNo(win.CanBet(bet.SessionClose, now)),
						yesNo(win.CanBetFullSangam(now)))
				}
			}
			w.Flush()

			if dismissPromo {
				return a.session.DismissInstallPrompt(now)
			}
			if !a.session.InstallPromptSuppressed(now) {
				for _, b := range a.client.Banners(ctx) {
					fmt.Println(b.Image)
				}
				fmt.Println("Tip: install the app for result alerts (--dismiss-promo to hide for a day)")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&starline, "starline", false, "list starline games")
	cmd.Flags().BoolVar(&dismissPromo, "dismiss-promo", false, "hide the install promo for 24 hours")
	cmd.Flags().StringVar(&resultsFor, "results", "", "show a single game's declared result by game id")
	cmd.Flags().StringVar(&date, "date", "", "result date (YYYY-MM-DD), with --results")
	return cmd
}

// rateTable fetches rates, falling back to the cached table when the public
// content endpoint is down.
func (a *app) rateTable(ctx context.Context) (bet.RateTable, bool) {
	rates, err := a.client.GameRates(ctx)
	if err == nil {
		if cacheErr := a.session.CacheRates(rates, time.Now()); cacheErr != nil {
			logger.Warn("Rate cache write failed", "err", cacheErr)
		}
		return rates, false
	}
	logger.Warn("Rate fetch failed, using cached table", "err", err)
	cached, _, ok := a.session.CachedRates()
	if !ok {
		return nil, false
	}
	return cached, true
}

func newRatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the game-rate table and payout multipliers",
		RunE: func(cmd *cobra.Command, args []string) error {
			rates, stale := a.rateTable(cmd.Context())
			if rates == nil {
				return errors.New("rate table unavailable")
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BET TYPE\tSTAKE\tPAYS\tMULTIPLIER")
			for _, typ := range []bet.Type{
				bet.TypeSingle, bet.TypeJodi, bet.TypeSinglePanna, bet.TypeDoublePanna,
				bet.TypeTriplePanna, bet.TypeHalfSangamOpen, bet.TypeFullSangam,
			} {
				cat, _ := typ.RateCategory()
				rate, ok := rates[cat]
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%sx\n",
					typ.Display(), rate.Min.StringFixed(0), rate.Max.StringFixed(0),
					bet.Multiplier(typ, rates).String())
			}
			w.Flush()
			if stale {
				fmt.Println("(cached rates; live fetch failed)")
			}
			return nil
		},
	}
}

func newBetCmd(a *app) *cobra.Command {
	var (
		gameName string
		typeTag  string
		number   string
		amount   string
		sess     string
	)

	cmd := &cobra.Command{
		Use:   "bet",
		Short: "Place a bet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return surfaceError(bet.FieldErrors{"amount": "amount must be a number"})
			}

			user, err := a.client.Profile(ctx)
			if err != nil {
				return surfaceError(err)
			}

			games, err := a.client.Games(ctx)
			if err != nil {
				return surfaceError(err)
			}
			var game *api.Game
			for i := range games {
				if strings.EqualFold(games[i].Name, gameName) || games[i].ID == gameName {
					game = &games[i]
					break
				}
			}

			emitter := a.emitter()
			defer emitter.Close()

			form := betform.New(a.client, emitter, betform.Limits{
				MinAmount: decimal.NewFromInt(a.cfg.Bet.MinAmount),
				MaxAmount: decimal.NewFromInt(a.cfg.Bet.MaxAmount),
			})

			placed, err := form.Submit(ctx, betform.Input{
				Game:    game,
				TypeTag: typeTag,
				Session: bet.Session(sess),
				Number:  number,
				Amount:  amt,
				Balance: user.Balance,
				Now:     time.Now(),
			})
			if err != nil {
				return surfaceError(err)
			}

			// estimate what this bet would pay, from live or cached rates
			if rates, _ := a.rateTable(ctx); rates != nil {
				if typ, ok := bet.ParseType(typeTag); ok {
					if estimate := bet.EstimatePayout(amt, typ, rates); estimate.Sign() > 0 {
						fmt.Printf("Potential win: %s\n", estimate.StringFixed(0))
					}
				}
			}
			fmt.Printf("Bet placed: %s %s on %s for %s\n",
				placed.BetType, placed.BetNumber, game.Name, placed.BetAmount.StringFixed(0))
			return nil
		},
	}
	cmd.Flags().StringVar(&gameName, "game", "", "game name or id")
	cmd.Flags().StringVar(&typeTag, "type", "", "bet type (single, jodi, single_panna, double_panna, triple_panna, half_sangam, full_sangam)")
	cmd.Flags().StringVar(&number, "number", "", "bet number")
	cmd.Flags().StringVar(&amount, "amount", "", "stake amount")
	cmd.Flags().StringVar(&sess, "session", "open", "session (open or close)")
	_ = cmd.MarkFlagRequired("game")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
