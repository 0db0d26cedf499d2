package jetstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership-syncer/internal/adapter"
	"github.com/feral-file/ff-ownership-syncer/internal/domain"
	"github.com/feral-file/ff-ownership-syncer/internal/logger"
	"github.com/feral-file/ff-ownership-syncer/internal/messaging"
)

// SUBJECT_PREFIX is the root of every ownership subject
const SUBJECT_PREFIX = "ownership"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	json adapter.JSON
}

// NewPublisher connects to NATS and makes sure the ownership stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.CreateOrUpdateStream(ctx, natsjs.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{SUBJECT_PREFIX + ".>"},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:   nc,
		js:   js,
		json: jsonAdapter,
	}, nil
}

// PublishOwnershipChanged publishes an ownership change to NATS JetStream
func (p *publisher) PublishOwnershipChanged(ctx context.Context, change *domain.OwnershipChanged) error {
	logger.DebugCtx(ctx, "Publishing ownership change", zap.Any("change", change))

	data, err := p.json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal ownership change: %w", err)
	}

	_, err = p.js.Publish(ctx, BuildSubject(change.Chain), data)
	if err != nil {
		return fmt.Errorf("failed to publish ownership change: %w", err)
	}

	return nil
}

// BuildSubject constructs the NATS subject for a chain
// Format: ownership.{chain}.transfer, e.g. ownership.eip155-1.transfer
func BuildSubject(chain domain.Chain) string {
	// NATS tokens cannot contain ':'
	token := strings.ReplaceAll(string(chain), ":", "-")
	return fmt.Sprintf("%s.%s.transfer", SUBJECT_PREFIX, token)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
