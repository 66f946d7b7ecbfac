package messaging

import (
	"context"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// Publisher defines the interface for publishing receipts to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishReceipt publishes one audit journal receipt to the message broker
	PublishReceipt(ctx context.Context, receipt *domain.Receipt) error
	// Close closes the connection
	Close()
}
