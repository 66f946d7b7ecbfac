package schema

import (
	"time"
)

// EventTier represents the event_tiers table - a priced inventory bucket within an event
type EventTier struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID references the owning event row
	EventID int64 `gorm:"column:event_id;not null;uniqueIndex:idx_event_tiers_event_tier,priority:1"`
	// TierID is the caller-chosen tier identifier, unique within the event (e.g., "general", "vip")
	TierID string `gorm:"column:tier_id;not null;type:text;uniqueIndex:idx_event_tiers_event_tier,priority:2"`
	// Price is the unit price in canonical 18-decimal units (string to support very large numbers)
	Price string `gorm:"column:price;not null;type:numeric(78,0)"`
	// MaxQuantity is the capacity of this tier; sold_count never exceeds it
	MaxQuantity int64 `gorm:"column:max_quantity;not null"`
	// SoldCount is the number of tickets issued so far; monotonically non-decreasing
	SoldCount int64 `gorm:"column:sold_count;not null;default:0"`
	// Active indicates whether this tier is currently issuable
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is when the tier was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the tier was last modified
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Holdings []TicketHolding `gorm:"foreignKey:EventTierID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the EventTier model
func (EventTier) TableName() string {
	return "event_tiers"
}
