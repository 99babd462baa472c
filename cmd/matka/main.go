// Command matka is the terminal client for the matka betting service:
// game listings, bet placement, wallet and history, plus a watch mode that
// follows session windows and declared results.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/config"
	"github.com/matkahub/matka-client/internal/session"
	"github.com/matkahub/matka-client/pkg/events"
	"github.com/matkahub/matka-client/pkg/infra"
	"github.com/matkahub/matka-client/pkg/kvstore"
	"github.com/matkahub/matka-client/pkg/logger"
)

type app struct {
	cfg     *config.Config
	kv      kvstore.Store
	session *session.Store
	client  *api.Client
}

func (a *app) close() {
	if a.kv != nil {
		_ = a.kv.Close()
	}
}

// emitter builds the NATS emitter when an url is configured, otherwise a
// no-op.
func (a *app) emitter() events.Emitter {
	if a.cfg.NATS.URL == "" {
		return events.NoopEmitter{}
	}
	conn, err := infra.GetNATSConnection(a.cfg.NATS.URL)
	if err != nil {
		logger.Warn("NATS unavailable, events disabled", "err", err)
		return events.NoopEmitter{}
	}
	return events.NewNATSEmitter(conn, a.cfg.NATS.Subject)
}

func main() {
	var (
		a          app
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:           "matka",
		Short:         "Client for the matka betting service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger.Init(&logger.Options{Level: level, TimeFormat: time.RFC3339})

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg

			kv, err := kvstore.NewBadgerStore(cfg.Storage.Directory, cfg.Storage.Prefix, infra.JSON)
			if err != nil {
				return fmt.Errorf("open state store: %w", err)
			}
			a.kv = kv
			a.session = session.NewStore(kv)
			a.client = api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout, a.session)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")

	root.AddCommand(
		newLoginCmd(&a),
		newLogoutCmd(&a),
		newGamesCmd(&a),
		newRatesCmd(&a),
		newBetCmd(&a),
		newHistoryCmd(&a),
		newWalletCmd(&a),
		newProfileCmd(&a),
		newBankCmd(&a),
		newWatchCmd(&a),
		newContentCmd(&a),
		newEnquiryCmd(&a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
