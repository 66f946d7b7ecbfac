package schema

import (
	"time"
)

// SettlementStamp represents the settlement_stamps table - the per-payer timestamp of
// the last successful settlement, the basis of the payment cooldown.
type SettlementStamp struct {
	// Payer is the checksummed address the cooldown applies to
	Payer string `gorm:"column:payer;primaryKey;type:text"`
	// LastSettledAt is when the payer's most recent settlement committed
	LastSettledAt time.Time `gorm:"column:last_settled_at;not null;type:timestamptz"`
	// CreatedAt is when the stamp row was created
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// UpdatedAt is when the stamp was last advanced
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the SettlementStamp model
func (SettlementStamp) TableName() string {
	return "settlement_stamps"
}
