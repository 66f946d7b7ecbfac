package schema

import (
	"time"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// Event represents the events table - the primary entity for ticketed sale events
type Event struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is the caller-chosen unique string key identifying the event (e.g., "spring-benefit-2026")
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// Name is the display name of the event
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the optional display description
	Description *string `gorm:"column:description;type:text"`
	// Organizer is the checksummed address of the event organizer; ticket proceeds
	// net of commission accrue to this identity
	Organizer string `gorm:"column:organizer;not null;type:text;index:idx_events_organizer"`
	// Status is the lifecycle status (draft, published, cancelled, completed)
	Status domain.EventStatus `gorm:"column:status;not null;type:text;index:idx_events_status_end_time,priority:1"`
	// Currency is the settlement currency every tier of this event is priced and paid in
	Currency domain.Currency `gorm:"column:currency;not null;type:text"`
	// CommissionPct is the commission percentage (0-100) taken from each ticket sale
	CommissionPct uint8 `gorm:"column:commission_pct;not null"`
	// CommissionRecipient is the checksummed address credited with the commission share
	CommissionRecipient string `gorm:"column:commission_recipient;not null;type:text"`
	// StartTime is the beginning of the sales window
	StartTime time.Time `gorm:"column:start_time;not null;type:timestamptz"`
	// EndTime is the end of the sales window
	EndTime time.Time `gorm:"column:end_time;not null;type:timestamptz;index:idx_events_status_end_time,priority:2"`
	// TierCount is the number of tiers created with the event (tiers are fixed at creation)
	TierCount int `gorm:"column:tier_count;not null"`
	// CreatedAt is when the event was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the event was last modified
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Tiers        []EventTier   `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE"`
	RefundClaims []RefundClaim `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}
