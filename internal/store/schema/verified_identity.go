package schema

import (
	"time"
)

// VerifiedIdentity represents the verified_identities table - the set of addresses
// granted the elevated verified_max_amount payment ceiling.
type VerifiedIdentity struct {
	// Address is the checksummed verified address
	Address string `gorm:"column:address;primaryKey;type:text"`
	// VerifiedBy records which administrative subject granted the status
	VerifiedBy string `gorm:"column:verified_by;not null;type:text"`
	// CreatedAt is when the status was granted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VerifiedIdentity model
func (VerifiedIdentity) TableName() string {
	return "verified_identities"
}
