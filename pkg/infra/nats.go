package infra

import (
	"time"

	"github.com/nats-io/nats.go"

	"github.com/matkahub/matka-client/pkg/logger"
)

// GetNATSConnection connects to NATS with endless reconnects. The client
// publishes fire-and-forget notifications, so losing the link must never
// take the process down.
func GetNATSConnection(url string) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			logger.Warn("Disconnected from NATS")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	return nats.Connect(url, opts...)
}
