package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/bet"
	"github.com/matkahub/matka-client/internal/history"
	"github.com/matkahub/matka-client/internal/poller"
	"github.com/matkahub/matka-client/pkg/logger"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		gameID   string
		typeTag  string
		sess     string
		status   string
		from, to string
		page     int
		pageSize int
		winnings bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List placed bets or winnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}

			query := api.HistoryQuery{GameID: gameID, DateFrom: from, DateTo: to}
			if typeTag != "" {
				typ, ok := bet.ParseType(typeTag)
				if !ok {
					return fmt.Errorf("unknown bet type %q", typeTag)
				}
				query.BetType = typ.BackendName()
			}

			var (
				bets []api.Bet
				err  error
			)
			if winnings {
				bets, err = a.client.WinningHistory(ctx, query)
			} else {
				bets, err = a.client.BetHistory(ctx, query)
			}
			if err != nil {
				return surfaceError(err)
			}

			// the server already honors the query; session and status narrow
			// further client-side
			filtered := history.Apply(bets, history.Filter{Session: sess, Status: status})
			pg := history.Paginate(filtered, page, pageSize)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tGAME\tTYPE\tSESSION\tNUMBER\tSTAKE\tWON\tSTATUS")
			for _, b := range pg.Items {
				session := "-"
				if b.Session != nil {
					session = *b.Session
				}
				won := "-"
				if b.Status == "won" {
					won = b.WinAmount.StringFixed(0)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					b.CreatedAt.Local().Format("2006-01-02 15:04"),
					b.GameName, b.BetType, session, b.BetNumber,
					b.BetAmount.StringFixed(0), won, b.Status)
			}
			w.Flush()

			fmt.Printf("Page %d/%d (%d bets, staked %s, won %s)\n",
				pg.Page, pg.TotalPages, pg.Total,
				history.TotalStaked(filtered).StringFixed(0),
				history.TotalWon(filtered).StringFixed(0))
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game", "", "filter by game id")
	cmd.Flags().StringVar(&typeTag, "type", "", "filter by bet type")
	cmd.Flags().StringVar(&sess, "session", "", "filter by session (open or close)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, won, lost)")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "size", 10, "page size")
	cmd.Flags().BoolVar(&winnings, "winnings", false, "list winnings only")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var starline bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow session windows, results and balance until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			emitter := a.emitter()
			defer emitter.Close()

			fetch := a.client.Games
			if starline {
				fetch = a.client.StarlineGames
			}

			watcher := poller.NewGamesWatcher(fetch, emitter, func(games []api.Game) {
				logger.Debug("Game list refreshed", "games", len(games))
			})
			gamesPoller := poller.New("games", a.cfg.Poll.Games, watcher.Tick, emitter)

			var lastBalance decimal.Decimal
			balancePoller := poller.New("balance", a.cfg.Poll.Balance, func(ctx context.Context) error {
				balance, err := a.client.Balance(ctx)
				if err != nil {
					return err
				}
				if !balance.Equal(lastBalance) {
					logger.Info("Balance changed", "balance", balance.StringFixed(2))
					lastBalance = balance
				}
				return nil
			}, emitter)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			gamesPoller.Start(ctx)
			if a.session.LoggedIn() {
				balancePoller.Start(ctx)
			}
			logger.Info("Watching", "games_interval", a.cfg.Poll.Games, "balance_interval", a.cfg.Poll.Balance)

			<-ctx.Done()
			gamesPoller.Stop()
			balancePoller.Stop()
			return nil
		},
	}
	cmd.Flags().BoolVar(&starline, "starline", false, "watch starline games")
	return cmd
}

func newContentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "content <page>",
		Short:     "Show a public content page",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"how-to-play", "contact"},
		RunE: func(cmd *cobra.Command, args []string) error {
			body := a.client.Content(cmd.Context(), args[0])
			if body == "" {
				fmt.Println("(no content)")
				return nil
			}
			fmt.Println(body)
			return nil
		},
	}
}

func newEnquiryCmd(a *app) *cobra.Command {
	var send string

	cmd := &cobra.Command{
		Use:   "enquiry",
		Short: "Read or post to the support thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.session.RequireToken(); err != nil {
				return err
			}

			if send != "" {
				if err := a.client.PostEnquiry(ctx, send); err != nil {
					return surfaceError(err)
				}
				fmt.Println("Message sent")
				return nil
			}

			msgs, err := a.client.Enquiry(ctx)
			if err != nil {
				return surfaceError(err)
			}
			for _, m := range msgs {
				fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.From, m.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&send, "send", "", "post a message instead of listing")
	return cmd
}
