package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cryptoledger/config"
	"cryptoledger/internal/core/domain"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATSSubscriber publishes each event to a NATS subject, letting downstream
// consumers pick events off a durable queue instead of holding an HTTP
// endpoint open.
type NATSSubscriber struct {
	conn    *nats.Conn
	subject string
}

// NewNATSSubscriber connects to the NATS server named in configuration.
func NewNATSSubscriber(cfg config.NATSNotifyConfig, log zerolog.Logger) (*NATSSubscriber, error) {
	opts := []nats.Option{
		nats.Name("cryptoledger"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	log.Info().Str("url", cfg.URL).Str("subject", cfg.Subject).Msg("NATS connection established")
	return &NATSSubscriber{conn: conn, subject: cfg.Subject}, nil
}

func (s *NATSSubscriber) Name() string {
	return "nats:" + s.subject
}

// Receive publishes the event. The subject is suffixed with the event type
// so consumers can subscribe to a subset.
func (s *NATSSubscriber) Receive(_ context.Context, e domain.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	if err := s.conn.Publish(s.subject+"."+e.Type, payload); err != nil {
		return fmt.Errorf("publishing to %s: %w", s.subject, err)
	}
	return nil
}

// Close drains the connection.
func (s *NATSSubscriber) Close() {
	s.conn.Close()
}
