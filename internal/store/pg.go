package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-boxoffice/internal/currency"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

// keyEnginePaused is the key-value entry gating the engine's financial operations
const keyEnginePaused = "engine_paused"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// parseStoredAmount parses a numeric(78,0) column value into a big integer
func parseStoredAmount(value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: stored amount %q", domain.ErrInvalidAmount, value)
	}
	return amount, nil
}

// appendReceipt appends an audit journal entry inside the given transaction and
// returns the generated receipt ID
func appendReceipt(tx *gorm.DB, kind domain.ReceiptKind, payload any) (string, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt payload: %w", err)
	}

	receipt := schema.Receipt{
		ReceiptID: ulid.Make().String(),
		Kind:      kind,
		Payload:   payloadJSON,
	}
	if err := tx.Create(&receipt).Error; err != nil {
		return "", fmt.Errorf("failed to append receipt: %w", err)
	}

	return receipt.ReceiptID, nil
}

// ensureEngineRunning fails with domain.ErrEnginePaused when the pause flag is set
func ensureEngineRunning(tx *gorm.DB) error {
	var kv schema.KeyValueStore
	err := tx.Where("key = ?", keyEnginePaused).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read engine pause flag: %w", err)
	}

	if kv.Value == "true" {
		return domain.ErrEnginePaused
	}
	return nil
}

// checkCooldown fails with domain.ErrRateLimited when the payer settled within the
// cooldown window. The stamp row is locked so settlements from the same payer
// serialize on it.
func checkCooldown(tx *gorm.DB, payer string, now time.Time, cooldown time.Duration) error {
	if cooldown <= 0 {
		return nil
	}

	var stamp schema.SettlementStamp
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payer = ?", payer).
		First(&stamp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read settlement stamp: %w", err)
	}

	if now.Sub(stamp.LastSettledAt) < cooldown {
		return domain.ErrRateLimited
	}
	return nil
}

// consumeNonce checks the payload nonce against the signer's counter and increments
// it. Revoked signers and mismatched nonces fail with domain.ErrInvalidAuthorization.
// A nil consumption means the engine runs in open mode.
func consumeNonce(tx *gorm.DB, consumption *NonceConsumption) error {
	if consumption == nil {
		return nil
	}

	var counter schema.SignerNonce
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("signer = ?", consumption.Signer).
		First(&counter).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read signer nonce: %w", err)
		}
		// First use: the counter starts at zero
		if consumption.Nonce != 0 {
			return domain.ErrInvalidAuthorization
		}
		counter = schema.SignerNonce{Signer: consumption.Signer, Nonce: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return fmt.Errorf("failed to create signer nonce: %w", err)
		}
		return nil
	}

	if counter.Revoked || counter.Nonce != consumption.Nonce {
		return domain.ErrInvalidAuthorization
	}

	if err := tx.Model(&counter).Update("nonce", counter.Nonce+1).Error; err != nil {
		return fmt.Errorf("failed to increment signer nonce: %w", err)
	}
	return nil
}

// creditBalance adds amount to the owner's pending balance for the currency,
// creating the ledger row when missing. Zero amounts are a no-op.
func creditBalance(tx *gorm.DB, owner string, cur domain.Currency, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}

	balance := schema.Balance{
		Owner:          owner,
		Currency:       cur,
		Pending:        amount.String(),
		WithdrawnTotal: "0",
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"pending": gorm.Expr("balances.pending + excluded.pending"),
		}),
	}).Create(&balance).Error; err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

// touchStamp records the payer's successful settlement time
func touchStamp(tx *gorm.DB, payer string, now time.Time) error {
	stamp := schema.SettlementStamp{
		Payer:         payer,
		LastSettledAt: now,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payer"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_settled_at"}),
	}).Create(&stamp).Error; err != nil {
		return fmt.Errorf("failed to update settlement stamp: %w", err)
	}
	return nil
}

// CreateEvent creates an event and all of its tiers atomically
func (s *pgStore) CreateEvent(ctx context.Context, input CreateEventInput) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Reject duplicate event keys explicitly (the unique index is the backstop)
		var count int64
		if err := tx.Model(&schema.Event{}).
			Where("event_id = ?", input.EventID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check event key: %w", err)
		}
		if count > 0 {
			return domain.ErrEventExists
		}

		// 2. Create the event with all tiers in one batch
		event = schema.Event{
			EventID:             input.EventID,
			Name:                input.Name,
			Description:         input.Description,
			Organizer:           input.Organizer,
			Status:              domain.EventStatusDraft,
			Currency:            input.Currency,
			CommissionPct:       input.CommissionPct,
			CommissionRecipient: input.CommissionRecipient,
			StartTime:           input.StartTime,
			EndTime:             input.EndTime,
			TierCount:           len(input.Tiers),
		}
		for _, tier := range input.Tiers {
			event.Tiers = append(event.Tiers, schema.EventTier{
				TierID:      tier.TierID,
				Price:       tier.Price.String(),
				MaxQuantity: tier.MaxQuantity,
				Active:      true,
			})
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}

		// 3. Append the receipt
		_, err := appendReceipt(tx, domain.ReceiptEventCreated, domain.EventCreatedPayload{
			EventID:             event.EventID,
			Organizer:           event.Organizer,
			Currency:            event.Currency,
			CommissionPct:       event.CommissionPct,
			CommissionRecipient: event.CommissionRecipient,
			TierCount:           event.TierCount,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// GetEventByEventID retrieves an event with its tiers by external key
func (s *pgStore) GetEventByEventID(ctx context.Context, eventID string) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("event_id = ?", eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

// GetEventsByFilter retrieves events matching the filter plus the total count
func (s *pgStore) GetEventsByFilter(ctx context.Context, filter EventFilter) ([]schema.Event, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Event{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Organizer != nil {
		query = query.Where("organizer = ?", *filter.Organizer)
	}

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	// Apply pagination, newest first
	query = query.Order("id DESC").Limit(filter.Limit).Offset(int(filter.Offset)) //nolint:gosec,G115

	var events []schema.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get events: %w", err)
	}

	return events, uint64(total), nil //nolint:gosec,G115
}

// TransitionEventStatus validates and applies a lifecycle transition under a row lock
func (s *pgStore) TransitionEventStatus(ctx context.Context, input TransitionEventStatusInput) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", input.EventID).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}

		// 2. Validate the transition against the current status
		if !event.Status.CanTransitionTo(input.NextStatus) {
			return domain.ErrInvalidStatusChange
		}

		// Reactivation is refused once any refund has been claimed
		reactivation := event.Status == domain.EventStatusCancelled &&
			input.NextStatus == domain.EventStatusPublished
		if reactivation {
			var claims int64
			if err := tx.Model(&schema.RefundClaim{}).
				Where("event_id = ?", event.ID).
				Count(&claims).Error; err != nil {
				return fmt.Errorf("failed to count refund claims: %w", err)
			}
			if claims > 0 {
				return domain.ErrInvalidStatusChange
			}
		}

		// 3. Apply it
		if err := tx.Model(&event).Update("status", input.NextStatus).Error; err != nil {
			return fmt.Errorf("failed to update event status: %w", err)
		}

		// 4. Append the receipt
		kind := domain.ReceiptEventPublished
		switch {
		case reactivation:
			kind = domain.ReceiptEventReactivated
		case input.NextStatus == domain.EventStatusCancelled:
			kind = domain.ReceiptEventCancelled
		case input.NextStatus == domain.EventStatusCompleted:
			kind = domain.ReceiptEventCompleted
		}

		_, err = appendReceipt(tx, kind, domain.EventLifecyclePayload{
			EventID: event.EventID,
			Status:  input.NextStatus,
			Actor:   input.Actor,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// ListExpiredPublishedEvents retrieves published events whose sales window has closed
func (s *pgStore) ListExpiredPublishedEvents(ctx context.Context, now time.Time, limit int) ([]schema.Event, error) {
	var events []schema.Event
	err := s.db.WithContext(ctx).
		Where("status = ? AND end_time < ?", domain.EventStatusPublished, now).
		Order("end_time ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired events: %w", err)
	}

	return events, nil
}

// UpdateEventFee changes an event's commission percentage
func (s *pgStore) UpdateEventFee(ctx context.Context, input UpdateEventFeeInput) (*schema.Event, error) {
	var event schema.Event
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event row
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", input.EventID).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}

		// 2. Apply the new percentage
		if err := tx.Model(&event).Update("commission_pct", input.CommissionPct).Error; err != nil {
			return fmt.Errorf("failed to update commission percentage: %w", err)
		}

		// 3. Append the receipt
		_, err = appendReceipt(tx, domain.ReceiptFeeUpdated, domain.FeeUpdatedPayload{
			EventID:       event.EventID,
			CommissionPct: input.CommissionPct,
			Actor:         input.Actor,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// GetTier retrieves one tier by event key and tier key
func (s *pgStore) GetTier(ctx context.Context, eventID string, tierID string) (*schema.EventTier, error) {
	var tier schema.EventTier
	err := s.db.WithContext(ctx).
		Joins("JOIN events ON events.id = event_tiers.event_id").
		Where("events.event_id = ? AND event_tiers.tier_id = ?", eventID, tierID).
		First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}

	return &tier, nil
}

// UpdateTierPrice changes a tier's unit price on a draft or published event
func (s *pgStore) UpdateTierPrice(ctx context.Context, input UpdateTierPriceInput) (*schema.EventTier, error) {
	var tier schema.EventTier
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the event; price changes stop once the event reaches a terminal status
		var event schema.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", input.EventID).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}
		if event.Status != domain.EventStatusDraft && event.Status != domain.EventStatusPublished {
			return domain.ErrInvalidStatusChange
		}

		// 2. Lock the tier
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND tier_id = ?", event.ID, input.TierID).
			First(&tier).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTierNotFound
			}
			return fmt.Errorf("failed to get tier: %w", err)
		}

		// 3. Apply the new price
		if err := tx.Model(&tier).Update("price", input.Price.String()).Error; err != nil {
			return fmt.Errorf("failed to update tier price: %w", err)
		}

		// 4. Append the receipt
		_, err = appendReceipt(tx, domain.ReceiptTierPriceUpdated, domain.TierPriceUpdatedPayload{
			EventID: event.EventID,
			TierID:  tier.TierID,
			Price:   input.Price.String(),
			Actor:   input.Actor,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &tier, nil
}

// IssueTicket performs the pay-then-mint issuance in one transaction: nonce
// consumption, cooldown, activity and capacity checks, settlement split,
// sold-count increment, holding upsert and receipt are all-or-nothing.
func (s *pgStore) IssueTicket(ctx context.Context, input IssueTicketInput) (*IssueTicketResult, error) {
	var result IssueTicketResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Engine must be running
		if err := ensureEngineRunning(tx); err != nil {
			return err
		}

		// 2. Per-payer cooldown
		if err := checkCooldown(tx, input.Payer, input.Now, input.Cooldown); err != nil {
			return err
		}

		// 3. Consume the authorization nonce (signed mode)
		if err := consumeNonce(tx, input.Nonce); err != nil {
			return err
		}

		// 4. Lock the event; issuance requires published status within the sales window
		var event schema.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", input.EventID).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}
		if event.Status != domain.EventStatusPublished ||
			input.Now.Before(event.StartTime) || input.Now.After(event.EndTime) {
			return domain.ErrEventNotActive
		}

		// 5. Lock the tier; check the sales flag and remaining capacity
		var tier schema.EventTier
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND tier_id = ?", event.ID, input.TierID).
			First(&tier).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTierNotFound
			}
			return fmt.Errorf("failed to get tier: %w", err)
		}
		if !tier.Active {
			return domain.ErrEventNotActive
		}
		if tier.SoldCount >= tier.MaxQuantity {
			return domain.ErrTierSoldOut
		}

		// 6. Scale the price to the event currency and match the submitted payment
		price, err := parseStoredAmount(tier.Price)
		if err != nil {
			return err
		}
		paid, err := currency.ToMinorUnits(price, event.Currency)
		if err != nil {
			return err
		}
		if input.Payment == nil || input.Payment.Cmp(paid) != 0 {
			return domain.ErrIncorrectPayment
		}

		// 7. Split and credit: the organizer before the commission recipient
		commission, remainder := domain.SplitCommission(paid, event.CommissionPct)
		if err := creditBalance(tx, event.Organizer, event.Currency, remainder); err != nil {
			return err
		}
		if err := creditBalance(tx, event.CommissionRecipient, event.Currency, commission); err != nil {
			return err
		}

		// 8. Increment the sold count under the held lock
		if err := tx.Model(&tier).
			Update("sold_count", gorm.Expr("sold_count + 1")).Error; err != nil {
			return fmt.Errorf("failed to increment sold count: %w", err)
		}

		// 9. Upsert the recipient's holding
		tokenID := domain.NewTicketTokenID(event.EventID, tier.TierID)
		holding := schema.TicketHolding{
			TokenID:     tokenID.String(),
			Owner:       input.Recipient,
			EventID:     event.ID,
			EventTierID: tier.ID,
			Quantity:    1,
			PaidTotal:   paid.String(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "token_id"}, {Name: "owner"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("ticket_holdings.quantity + 1"),
				"paid_total": gorm.Expr("ticket_holdings.paid_total + excluded.paid_total"),
			}),
		}).Create(&holding).Error; err != nil {
			return fmt.Errorf("failed to upsert holding: %w", err)
		}

		var updated schema.TicketHolding
		if err := tx.Where("token_id = ? AND owner = ?", tokenID.String(), input.Recipient).
			First(&updated).Error; err != nil {
			return fmt.Errorf("failed to get holding: %w", err)
		}

		// 10. Stamp the payer's settlement time
		if err := touchStamp(tx, input.Payer, input.Now); err != nil {
			return err
		}

		// 11. Append the receipt
		receiptID, err := appendReceipt(tx, domain.ReceiptTicketIssued, domain.TicketIssuedPayload{
			EventID:   event.EventID,
			TierID:    tier.TierID,
			TokenID:   tokenID.String(),
			Recipient: input.Recipient,
			Payer:     input.Payer,
			Currency:  event.Currency,
			PricePaid: paid.String(),
		})
		if err != nil {
			return err
		}

		result = IssueTicketResult{
			TokenID:        tokenID,
			ReceiptID:      receiptID,
			SoldCount:      tier.SoldCount + 1,
			HolderQuantity: updated.Quantity,
			Price:          price,
			Paid:           paid,
			Commission:     commission,
			Remainder:      remainder,
			Currency:       event.Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// SettlePayment performs a direct payment settlement in one transaction
func (s *pgStore) SettlePayment(ctx context.Context, input SettlePaymentInput) (*SettlePaymentResult, error) {
	var result SettlePaymentResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Engine must be running
		if err := ensureEngineRunning(tx); err != nil {
			return err
		}

		// 2. Per-payer cooldown
		if err := checkCooldown(tx, input.Payer, input.Now, input.Cooldown); err != nil {
			return err
		}

		// 3. Consume the authorization nonce (signed mode)
		if err := consumeNonce(tx, input.Nonce); err != nil {
			return err
		}

		// 4. Bounds check against the currency's configured limits; verified payees
		// unlock the higher ceiling
		var limit schema.PaymentLimit
		err := tx.Where("currency = ?", input.Currency).First(&limit).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no payment limits configured for %s",
					domain.ErrInvalidLimitConfig, input.Currency)
			}
			return fmt.Errorf("failed to get payment limits: %w", err)
		}
		minAmount, err := parseStoredAmount(limit.MinAmount)
		if err != nil {
			return err
		}
		maxAmount, err := parseStoredAmount(limit.MaxAmount)
		if err != nil {
			return err
		}
		verifiedMax, err := parseStoredAmount(limit.VerifiedMaxAmount)
		if err != nil {
			return err
		}

		var verifiedCount int64
		if err := tx.Model(&schema.VerifiedIdentity{}).
			Where("address = ?", input.Payee).
			Count(&verifiedCount).Error; err != nil {
			return fmt.Errorf("failed to check verified status: %w", err)
		}
		bound := maxAmount
		if verifiedCount > 0 {
			bound = verifiedMax
		}

		if input.Amount.Cmp(minAmount) < 0 {
			return domain.ErrBelowMinimum
		}
		if input.Amount.Cmp(bound) > 0 {
			return domain.ErrAboveMaximum
		}

		// 5. Split and credit: the payee before the commission recipient
		commission, remainder := domain.SplitCommission(input.Amount, input.CommissionPct)
		if err := creditBalance(tx, input.Payee, input.Currency, remainder); err != nil {
			return err
		}
		if commission.Sign() > 0 {
			if input.CommissionRecipient == "" {
				return domain.ErrInvalidAddress
			}
			if err := creditBalance(tx, input.CommissionRecipient, input.Currency, commission); err != nil {
				return err
			}
		}

		// 6. Stamp the payer's settlement time
		if err := touchStamp(tx, input.Payer, input.Now); err != nil {
			return err
		}

		// 7. Append the receipt
		receiptID, err := appendReceipt(tx, domain.ReceiptPaymentSettled, domain.PaymentSettledPayload{
			Payer:               input.Payer,
			Payee:               input.Payee,
			Currency:            input.Currency,
			Amount:              input.Amount.String(),
			Commission:          commission.String(),
			CommissionRecipient: input.CommissionRecipient,
			Remainder:           remainder.String(),
		})
		if err != nil {
			return err
		}

		result = SettlePaymentResult{
			ReceiptID:  receiptID,
			Commission: commission,
			Remainder:  remainder,
			SettledAt:  input.Now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// WithdrawBalance zeroes the owner's pending balances and then invokes the
// external transfer inside the same transaction, so a transfer failure rolls
// the zeroing back and no partial payout persists
func (s *pgStore) WithdrawBalance(ctx context.Context, input WithdrawInput) (*WithdrawResult, error) {
	var result WithdrawResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Engine must be running
		if err := ensureEngineRunning(tx); err != nil {
			return err
		}

		// 2. Lock the owner's ledger rows
		var balances []schema.Balance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner = ?", input.Owner).
			Order("currency ASC").
			Find(&balances).Error; err != nil {
			return fmt.Errorf("failed to get balances: %w", err)
		}

		// 3. Zero the balances before any transfer is attempted
		eth := big.NewInt(0)
		usdc := big.NewInt(0)
		type payout struct {
			currency domain.Currency
			amount   *big.Int
		}
		var payouts []payout
		for i := range balances {
			pending, err := parseStoredAmount(balances[i].Pending)
			if err != nil {
				return err
			}
			if pending.Sign() == 0 {
				continue
			}

			if err := tx.Model(&balances[i]).Updates(map[string]interface{}{
				"pending":         "0",
				"withdrawn_total": gorm.Expr("withdrawn_total + ?", pending.String()),
			}).Error; err != nil {
				return fmt.Errorf("failed to zero balance: %w", err)
			}

			switch balances[i].Currency {
			case domain.CurrencyETH:
				eth = pending
			case domain.CurrencyUSDC:
				usdc = pending
			}
			payouts = append(payouts, payout{currency: balances[i].Currency, amount: pending})
		}
		if len(payouts) == 0 {
			return domain.ErrNothingToWithdraw
		}

		// 4. Invoke the external transfer; any failure aborts the whole withdrawal
		for _, p := range payouts {
			if err := input.Transfer(ctx, p.currency, input.Owner, p.amount); err != nil {
				return fmt.Errorf("%w: %s payout: %w", domain.ErrTransferFailed, p.currency, err)
			}
		}

		// 5. Append the receipt
		receiptID, err := appendReceipt(tx, domain.ReceiptBalanceWithdrawn, domain.BalanceWithdrawnPayload{
			Owner:      input.Owner,
			ETHAmount:  eth.String(),
			USDCAmount: usdc.String(),
		})
		if err != nil {
			return err
		}

		result = WithdrawResult{
			ReceiptID:  receiptID,
			ETHAmount:  eth,
			USDCAmount: usdc,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ClaimRefund credits an owner's paid totals back for a cancelled event
func (s *pgStore) ClaimRefund(ctx context.Context, input ClaimRefundInput) (*ClaimRefundResult, error) {
	var result ClaimRefundResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Engine must be running
		if err := ensureEngineRunning(tx); err != nil {
			return err
		}

		// 2. Lock the event; refunds only run against cancelled events
		var event schema.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", input.EventID).
			First(&event).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("failed to get event: %w", err)
		}
		if event.Status != domain.EventStatusCancelled {
			return domain.ErrInvalidStatusChange
		}

		// 3. One claim per owner per event
		var claims int64
		if err := tx.Model(&schema.RefundClaim{}).
			Where("event_id = ? AND owner = ?", event.ID, input.Owner).
			Count(&claims).Error; err != nil {
			return fmt.Errorf("failed to check refund claim: %w", err)
		}
		if claims > 0 {
			return domain.ErrAlreadyClaimed
		}

		// 4. Sum what the owner paid across the event's tiers
		var holdings []schema.TicketHolding
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ? AND owner = ?", event.ID, input.Owner).
			Find(&holdings).Error; err != nil {
			return fmt.Errorf("failed to get holdings: %w", err)
		}
		total := big.NewInt(0)
		for _, holding := range holdings {
			paid, err := parseStoredAmount(holding.PaidTotal)
			if err != nil {
				return err
			}
			total.Add(total, paid)
		}
		if total.Sign() == 0 {
			return domain.ErrNothingToRefund
		}

		// 5. Credit the refund and record the claim
		if err := creditBalance(tx, input.Owner, event.Currency, total); err != nil {
			return err
		}
		claim := schema.RefundClaim{
			EventID:  event.ID,
			Owner:    input.Owner,
			Currency: event.Currency,
			Amount:   total.String(),
		}
		if err := tx.Create(&claim).Error; err != nil {
			return fmt.Errorf("failed to record refund claim: %w", err)
		}

		// 6. Append the receipt
		receiptID, err := appendReceipt(tx, domain.ReceiptRefundClaimed, domain.RefundClaimedPayload{
			EventID:  event.EventID,
			Owner:    input.Owner,
			Currency: event.Currency,
			Amount:   total.String(),
		})
		if err != nil {
			return err
		}

		result = ClaimRefundResult{
			ReceiptID: receiptID,
			Amount:    total,
			Currency:  event.Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetBalances retrieves the owner's ledger rows across currencies
func (s *pgStore) GetBalances(ctx context.Context, owner string) ([]schema.Balance, error) {
	var balances []schema.Balance
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("currency ASC").
		Find(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}

	return balances, nil
}

// GetTicketHoldingsByOwner retrieves the owner's holdings with event context
func (s *pgStore) GetTicketHoldingsByOwner(ctx context.Context, owner string, limit int, offset uint64) ([]TicketHoldingRecord, uint64, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.TicketHolding{}).
		Joins("JOIN events ON events.id = ticket_holdings.event_id").
		Joins("JOIN event_tiers ON event_tiers.id = ticket_holdings.event_tier_id").
		Where("ticket_holdings.owner = ?", owner)

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count holdings: %w", err)
	}

	// Apply pagination
	var records []TicketHoldingRecord
	err := query.
		Select("ticket_holdings.token_id, ticket_holdings.owner, events.event_id, event_tiers.tier_id, ticket_holdings.quantity, ticket_holdings.paid_total, events.currency").
		Order("ticket_holdings.id ASC").
		Limit(limit).
		Offset(int(offset)). //nolint:gosec,G115
		Scan(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get holdings: %w", err)
	}

	return records, uint64(total), nil //nolint:gosec,G115
}

// GetSignerNonce retrieves a signer's counter row, nil when none exists yet
func (s *pgStore) GetSignerNonce(ctx context.Context, signer string) (*schema.SignerNonce, error) {
	var counter schema.SignerNonce
	err := s.db.WithContext(ctx).Where("signer = ?", signer).First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get signer nonce: %w", err)
	}

	return &counter, nil
}

// InvalidateNonce permanently revokes a signer's authorization counter
func (s *pgStore) InvalidateNonce(ctx context.Context, input InvalidateNonceInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock or create the signer row
		var counter schema.SignerNonce
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("signer = ?", input.Signer).
			First(&counter).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to get signer nonce: %w", err)
			}
			counter = schema.SignerNonce{Signer: input.Signer, Revoked: true}
			if err := tx.Create(&counter).Error; err != nil {
				return fmt.Errorf("failed to create signer nonce: %w", err)
			}
		} else {
			if counter.Revoked {
				return domain.ErrAlreadySet
			}
			if err := tx.Model(&counter).Update("revoked", true).Error; err != nil {
				return fmt.Errorf("failed to revoke signer nonce: %w", err)
			}
		}

		// 2. Append the receipt
		_, err = appendReceipt(tx, domain.ReceiptNonceInvalidated, domain.NonceInvalidatedPayload{
			Signer: input.Signer,
			Actor:  input.Actor,
		})
		return err
	})
}

// GetPaymentLimit retrieves a currency's payment bounds, nil when unconfigured
func (s *pgStore) GetPaymentLimit(ctx context.Context, cur domain.Currency) (*schema.PaymentLimit, error) {
	var limit schema.PaymentLimit
	err := s.db.WithContext(ctx).Where("currency = ?", cur).First(&limit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment limit: %w", err)
	}

	return &limit, nil
}

// UpdatePaymentLimits replaces a currency's payment bounds
func (s *pgStore) UpdatePaymentLimits(ctx context.Context, input UpdatePaymentLimitsInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Upsert the bounds
		limit := schema.PaymentLimit{
			Currency:          input.Currency,
			MinAmount:         input.MinAmount.String(),
			MaxAmount:         input.MaxAmount.String(),
			VerifiedMaxAmount: input.VerifiedMaxAmount.String(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "currency"}},
			DoUpdates: clause.AssignmentColumns([]string{"min_amount", "max_amount", "verified_max_amount"}),
		}).Create(&limit).Error; err != nil {
			return fmt.Errorf("failed to upsert payment limits: %w", err)
		}

		// 2. Append the receipt
		_, err := appendReceipt(tx, domain.ReceiptLimitsUpdated, domain.LimitsUpdatedPayload{
			Currency:          input.Currency,
			MinAmount:         limit.MinAmount,
			MaxAmount:         limit.MaxAmount,
			VerifiedMaxAmount: limit.VerifiedMaxAmount,
			Actor:             input.Actor,
		})
		return err
	})
}

// IsVerified reports whether the address holds verified status
func (s *pgStore) IsVerified(ctx context.Context, address string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.VerifiedIdentity{}).
		Where("address = ?", address).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check verified status: %w", err)
	}

	return count > 0, nil
}

// SetVerificationStatus grants or revokes verified status. Setting the status an
// address already holds fails with domain.ErrAlreadySet.
func (s *pgStore) SetVerificationStatus(ctx context.Context, input SetVerificationInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Apply the membership change
		if input.Verified {
			identity := schema.VerifiedIdentity{
				Address:    input.Address,
				VerifiedBy: input.Actor,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "address"}},
				DoNothing: true,
			}).Create(&identity)
			if res.Error != nil {
				return fmt.Errorf("failed to create verified identity: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrAlreadySet
			}
		} else {
			res := tx.Where("address = ?", input.Address).Delete(&schema.VerifiedIdentity{})
			if res.Error != nil {
				return fmt.Errorf("failed to delete verified identity: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrAlreadySet
			}
		}

		// 2. Append the receipt
		_, err := appendReceipt(tx, domain.ReceiptVerificationSet, domain.VerificationUpdatedPayload{
			Address:  input.Address,
			Verified: input.Verified,
			Actor:    input.Actor,
		})
		return err
	})
}

// SetEnginePaused pauses or resumes financial operations. Setting the current
// state again fails with domain.ErrAlreadySet.
func (s *pgStore) SetEnginePaused(ctx context.Context, input SetPausedInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Read the current flag under a lock
		var kv schema.KeyValueStore
		current := false
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("key = ?", keyEnginePaused).
			First(&kv).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to read engine pause flag: %w", err)
			}
		} else {
			current = kv.Value == "true"
		}
		if current == input.Paused {
			return domain.ErrAlreadySet
		}

		// 2. Flip it
		value := "false"
		if input.Paused {
			value = "true"
		}
		if err := tx.Save(&schema.KeyValueStore{Key: keyEnginePaused, Value: value}).Error; err != nil {
			return fmt.Errorf("failed to set engine pause flag: %w", err)
		}

		// 3. Append the receipt
		kind := domain.ReceiptEngineUnpaused
		if input.Paused {
			kind = domain.ReceiptEnginePaused
		}
		_, err = appendReceipt(tx, kind, domain.EnginePausePayload{Actor: input.Actor})
		return err
	})
}

// IsEnginePaused reports the engine pause flag
func (s *pgStore) IsEnginePaused(ctx context.Context) (bool, error) {
	value, err := s.GetKeyValue(ctx, keyEnginePaused)
	if err != nil {
		return false, err
	}

	return value == "true", nil
}

// GetReceipts retrieves receipts matching the filter plus the total count
func (s *pgStore) GetReceipts(ctx context.Context, filter ReceiptFilter) ([]schema.Receipt, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Receipt{})
	if len(filter.Kinds) > 0 {
		query = query.Where("kind IN ?", filter.Kinds)
	}

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	// Apply pagination, newest first
	query = query.Order("\"cursor\" DESC").Limit(filter.Limit).Offset(int(filter.Offset)) //nolint:gosec,G115

	var receipts []schema.Receipt
	if err := query.Find(&receipts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get receipts: %w", err)
	}

	return receipts, uint64(total), nil //nolint:gosec,G115
}

// GetReceiptsAfterCursor retrieves receipts past the cursor in cursor order
func (s *pgStore) GetReceiptsAfterCursor(ctx context.Context, cursor int64, limit int) ([]schema.Receipt, error) {
	var receipts []schema.Receipt
	err := s.db.WithContext(ctx).
		Where("\"cursor\" > ?", cursor).
		Order("\"cursor\" ASC").
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get receipts after cursor: %w", err)
	}

	return receipts, nil
}

// SetKeyValue stores a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}
