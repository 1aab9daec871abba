package nats

import (
	"fmt"
	"time"

	"material_market_backend/internal/config"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	connectWait   = 5 * time.Second
	maxReconnects = 5
	reconnectWait = 2 * time.Second
)

// NewConnection dials NATS with reconnect handling logged through zap.
func NewConnection(url string, logger *zap.Logger) (*nats.Conn, error) {
	log := logger.Named("nats")
	opts := []nats.Option{
		nats.Name("material-market events"),
		nats.Timeout(connectWait),
		nats.MaxReconnects(maxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// Provide returns nil when NATS_URL is empty.
func Provide(cfg *config.Config, logger *zap.Logger) (*nats.Conn, func(), error) {
	if cfg.NatsURL == "" {
		logger.Info("NATS_URL not set, logistics events disabled")
		return nil, func() {}, nil
	}
	nc, err := NewConnection(cfg.NatsURL, logger)
	if err != nil {
		return nil, nil, err
	}
	return nc, func() {
		if err := nc.Drain(); err != nil {
			nc.Close()
		}
	}, nil
}
