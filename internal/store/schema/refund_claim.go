package schema

import (
	"time"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// RefundClaim represents the refund_claims table - one row per (event, owner) refund
// against a cancelled event. The row's existence is the double-claim guard.
type RefundClaim struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID references the cancelled event row
	EventID int64 `gorm:"column:event_id;not null;uniqueIndex:idx_refund_claims_event_owner,priority:1"`
	// Owner is the checksummed address the refund was credited to
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_refund_claims_event_owner,priority:2"`
	// Currency is the settlement currency of the refunded amount
	Currency domain.Currency `gorm:"column:currency;not null;type:text"`
	// Amount is the refunded amount in the currency's minor units
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// CreatedAt is when the refund was claimed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RefundClaim model
func (RefundClaim) TableName() string {
	return "refund_claims"
}
