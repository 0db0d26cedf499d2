package messaging

import (
	"context"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
)

// Publisher defines the interface for publishing ownership changes to a message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishOwnershipChanged publishes a single applied transfer
	PublishOwnershipChanged(ctx context.Context, change *domain.OwnershipChanged) error
	// Close closes the connection
	Close()
}

// noopPublisher drops every message, used when no broker is configured
type noopPublisher struct{}

// NewNoopPublisher returns a publisher that does nothing
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOwnershipChanged(ctx context.Context, change *domain.OwnershipChanged) error {
	return nil
}

func (noopPublisher) Close() {}
