package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// Receipt represents the receipts table - the append-only audit journal of everything
// the engine does. Rows are never updated or deleted; the relay publishes them to
// downstream consumers in cursor order.
type Receipt struct {
	// Cursor is an auto-incrementing sequence number for efficient pagination and ordering
	Cursor int64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// ReceiptID is the externally visible receipt identifier (ULID, time-sortable)
	ReceiptID string `gorm:"column:receipt_id;not null;uniqueIndex;type:text"`
	// Kind identifies what happened (e.g., ticket.issued, payment.settled, balance.withdrawn)
	Kind domain.ReceiptKind `gorm:"column:kind;not null;type:text;index:idx_receipts_kind"`
	// Payload contains the kind-specific details as JSON
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb"`
	// CreatedAt is when the receipt was appended
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
