package schema

import (
	"time"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// Balance represents the balances table - the per-owner, per-currency ledger of funds owed.
// Credited on each successful settlement; zeroed before the external transfer on withdrawal.
// Invariant: pending + withdrawn_total equals everything ever credited to the owner.
type Balance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Owner is the checksummed address the funds are owed to
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_balances_owner_currency,priority:1"`
	// Currency is the settlement currency of this ledger row
	Currency domain.Currency `gorm:"column:currency;not null;type:text;uniqueIndex:idx_balances_owner_currency,priority:2"`
	// Pending is the amount owed and not yet withdrawn, in the currency's minor units
	Pending string `gorm:"column:pending;not null;type:numeric(78,0);default:0"`
	// WithdrawnTotal is the cumulative amount paid out, in the currency's minor units
	WithdrawnTotal string `gorm:"column:withdrawn_total;not null;type:numeric(78,0);default:0"`
	// CreatedAt is when the ledger row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when the ledger row was last modified
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}
