package schema

import (
	"time"
)

// SignerNonce represents the signer_nonces table - the per-signer monotonic counter
// backing authorization replay protection. A payload's embedded nonce must equal the
// stored counter at settlement time; consuming it increments the counter atomically
// with the settlement. Revoked signers never match again.
type SignerNonce struct {
	// Signer is the checksummed address the counter is scoped to
	Signer string `gorm:"column:signer;primaryKey;type:text"`
	// Nonce is the next expected authorization nonce
	Nonce uint64 `gorm:"column:nonce;not null;default:0"`
	// Revoked marks the signer as permanently invalidated by an administrator
	Revoked bool `gorm:"column:revoked;not null;default:false"`
	// CreatedAt is when the counter row was created
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// UpdatedAt is when the counter was last consumed or revoked
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the SignerNonce model
func (SignerNonce) TableName() string {
	return "signer_nonces"
}
