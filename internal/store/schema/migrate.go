package schema

import "gorm.io/gorm"

// Models returns every model in dependency order (parents before children) so
// foreign key constraints can be created in one pass.
func Models() []any {
	return []any{
		&Event{},
		&EventTier{},
		&TicketHolding{},
		&Balance{},
		&SignerNonce{},
		&PaymentLimit{},
		&VerifiedIdentity{},
		&SettlementStamp{},
		&RefundClaim{},
		&Receipt{},
		&KeyValueStore{},
	}
}

// Migrate creates or updates the database schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
