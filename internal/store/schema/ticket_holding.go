package schema

import (
	"time"
)

// TicketHolding represents the ticket_holdings table - per-owner ticket ownership records.
// The token identifier is a deterministic hash of (event key, tier key), so any party
// can reconstruct it without a directory lookup.
type TicketHolding struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the derived ticket token identifier (keccak256 of "eventID:tierID", hex)
	TokenID string `gorm:"column:token_id;not null;type:text;uniqueIndex:idx_ticket_holdings_token_owner,priority:1"`
	// Owner is the checksummed address holding the tickets
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_ticket_holdings_token_owner,priority:2;index:idx_ticket_holdings_owner"`
	// EventID references the event row (denormalized for refund and query paths)
	EventID int64 `gorm:"column:event_id;not null;index:idx_ticket_holdings_event"`
	// EventTierID references the tier row the tickets were issued from
	EventTierID int64 `gorm:"column:event_tier_id;not null"`
	// Quantity is the number of tickets held
	Quantity int64 `gorm:"column:quantity;not null;default:0"`
	// PaidTotal is the cumulative amount settled for these tickets, in minor units of the
	// event's settlement currency; the refund basis when the event is cancelled
	PaidTotal string `gorm:"column:paid_total;not null;type:numeric(78,0);default:0"`
	// CreatedAt is when the holding record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the holding record was last modified
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TicketHolding model
func (TicketHolding) TableName() string {
	return "ticket_holdings"
}
