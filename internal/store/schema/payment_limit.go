package schema

import (
	"time"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// PaymentLimit represents the payment_limits table - per-currency payment bounds.
// Invariant: min_amount < max_amount < verified_max_amount. Mutated by administrators only.
type PaymentLimit struct {
	// Currency is the settlement currency these bounds apply to
	Currency domain.Currency `gorm:"column:currency;primaryKey;type:text"`
	// MinAmount is the smallest accepted payment, in the currency's minor units
	MinAmount string `gorm:"column:min_amount;not null;type:numeric(78,0)"`
	// MaxAmount is the largest accepted payment for unverified recipients, in minor units
	MaxAmount string `gorm:"column:max_amount;not null;type:numeric(78,0)"`
	// VerifiedMaxAmount is the largest accepted payment for verified recipients, in minor units
	VerifiedMaxAmount string `gorm:"column:verified_max_amount;not null;type:numeric(78,0)"`
	// CreatedAt is when the limit row was created
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// UpdatedAt is when the bounds were last changed
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the PaymentLimit model
func (PaymentLimit) TableName() string {
	return "payment_limits"
}
