package store

import (
	"context"
	"math/big"
	"time"

	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// TransferFunc is the external payout primitive invoked inside the withdrawal
// transaction. Returning an error aborts the enclosing transaction, restoring
// the zeroed balances.
type TransferFunc func(ctx context.Context, currency domain.Currency, to string, amount *big.Int) error

// NonceConsumption identifies the signer counter a settlement consumes. Nil means
// the engine runs in open mode and no counter is touched.
type NonceConsumption struct {
	// Signer is the checksummed address whose counter is consumed
	Signer string
	// Nonce is the payload's embedded nonce; must equal the stored counter
	Nonce uint64
}

// CreateTierInput describes one tier of a new event
type CreateTierInput struct {
	// TierID is the caller-chosen tier identifier, unique within the event
	TierID string
	// Price is the unit price in canonical 18-decimal units
	Price *big.Int
	// MaxQuantity is the tier capacity
	MaxQuantity int64
}

// CreateEventInput describes a new event with all of its tiers
type CreateEventInput struct {
	EventID             string
	Name                string
	Description         *string
	Organizer           string
	Currency            domain.Currency
	CommissionPct       uint8
	CommissionRecipient string
	StartTime           time.Time
	EndTime             time.Time
	Tiers               []CreateTierInput
}

// EventFilter narrows and paginates event list queries
type EventFilter struct {
	// Status restricts to one lifecycle status when set
	Status *domain.EventStatus
	// Organizer restricts to one organizer address when set
	Organizer *string
	Limit     int
	Offset    uint64
}

// TransitionEventStatusInput moves an event to the next lifecycle status
type TransitionEventStatusInput struct {
	EventID string
	// NextStatus is validated against the current status under a row lock
	NextStatus domain.EventStatus
	// Actor is recorded in the receipt payload
	Actor string
}

// UpdateTierPriceInput changes a tier's unit price
type UpdateTierPriceInput struct {
	EventID string
	TierID  string
	// Price is the new unit price in canonical units; bounds are the caller's concern
	Price *big.Int
	Actor string
}

// UpdateEventFeeInput changes an event's commission percentage
type UpdateEventFeeInput struct {
	EventID       string
	CommissionPct uint8
	Actor         string
}

// IssueTicketInput describes a paid ticket issuance. The whole operation runs in
// one transaction: nonce consumption, cooldown, capacity check, settlement split,
// sold-count increment, holding upsert and receipt are all-or-nothing.
type IssueTicketInput struct {
	EventID string
	TierID  string
	// Recipient is the address receiving the ticket
	Recipient string
	// Payer is the address paying for it (cooldown subject)
	Payer string
	// Payment is the submitted payment in minor units of the event currency;
	// must equal the scaled tier price exactly
	Payment *big.Int
	// Nonce is consumed when the engine runs in signed mode
	Nonce *NonceConsumption
	// Cooldown is the per-payer settlement cooldown window; zero disables it
	Cooldown time.Duration
	Now      time.Time
}

// IssueTicketResult reports a committed issuance
type IssueTicketResult struct {
	TokenID   domain.TicketTokenID
	ReceiptID string
	// SoldCount is the tier's sold count after this issuance
	SoldCount int64
	// HolderQuantity is the recipient's ticket count after this issuance
	HolderQuantity int64
	// Price is the tier unit price in canonical units
	Price *big.Int
	// Paid is the settled amount in minor units
	Paid *big.Int
	// Commission and Remainder are the settlement split of Paid
	Commission *big.Int
	Remainder  *big.Int
	Currency   domain.Currency
}

// SettlePaymentInput describes a direct payment settlement
type SettlePaymentInput struct {
	Payer string
	// Payee is the primary beneficiary, credited before the commission recipient
	Payee string
	// Amount is the payment in minor units of Currency
	Amount   *big.Int
	Currency domain.Currency
	// CommissionPct and CommissionRecipient describe the commission share;
	// a zero percentage skips the commission credit entirely
	CommissionPct       uint8
	CommissionRecipient string
	// Nonce is consumed when the engine runs in signed mode
	Nonce *NonceConsumption
	// Cooldown is the per-payer settlement cooldown window; zero disables it
	Cooldown time.Duration
	Now      time.Time
}

// SettlePaymentResult reports a committed settlement
type SettlePaymentResult struct {
	ReceiptID  string
	Commission *big.Int
	Remainder  *big.Int
	SettledAt  time.Time
}

// WithdrawInput describes a full-balance withdrawal. Balances are zeroed before
// transfer is invoked; a transfer error rolls the zeroing back.
type WithdrawInput struct {
	Owner    string
	Transfer TransferFunc
}

// WithdrawResult reports the withdrawn amounts per currency (zero when nothing
// was pending in that currency)
type WithdrawResult struct {
	ReceiptID  string
	ETHAmount  *big.Int
	USDCAmount *big.Int
}

// ClaimRefundInput describes a refund claim against a cancelled event
type ClaimRefundInput struct {
	EventID string
	Owner   string
}

// ClaimRefundResult reports a committed refund credit
type ClaimRefundResult struct {
	ReceiptID string
	Amount    *big.Int
	Currency  domain.Currency
}

// UpdatePaymentLimitsInput replaces a currency's payment bounds
type UpdatePaymentLimitsInput struct {
	Currency          domain.Currency
	MinAmount         *big.Int
	MaxAmount         *big.Int
	VerifiedMaxAmount *big.Int
	Actor             string
}

// SetVerificationInput grants or revokes an address's verified status
type SetVerificationInput struct {
	Address  string
	Verified bool
	Actor    string
}

// InvalidateNonceInput permanently revokes a signer's authorization counter
type InvalidateNonceInput struct {
	Signer string
	Actor  string
}

// SetPausedInput pauses or resumes the engine's financial operations
type SetPausedInput struct {
	Paused bool
	Actor  string
}

// ReceiptFilter narrows and paginates receipt list queries
type ReceiptFilter struct {
	// Kinds restricts to the given receipt kinds when non-empty
	Kinds  []domain.ReceiptKind
	Limit  int
	Offset uint64
}

// TicketHoldingRecord is a holding row joined with its event and tier identifiers
type TicketHoldingRecord struct {
	TokenID   string          `gorm:"column:token_id"`
	Owner     string          `gorm:"column:owner"`
	EventID   string          `gorm:"column:event_id"`
	TierID    string          `gorm:"column:tier_id"`
	Quantity  int64           `gorm:"column:quantity"`
	PaidTotal string          `gorm:"column:paid_total"`
	Currency  domain.Currency `gorm:"column:currency"`
}

// Store defines the interface for database operations
type Store interface {
	// CreateEvent creates an event and all of its tiers atomically
	CreateEvent(ctx context.Context, input CreateEventInput) (*schema.Event, error)
	// GetEventByEventID retrieves an event with its tiers by external key
	GetEventByEventID(ctx context.Context, eventID string) (*schema.Event, error)
	// GetEventsByFilter retrieves events matching the filter plus the total count
	GetEventsByFilter(ctx context.Context, filter EventFilter) ([]schema.Event, uint64, error)
	// TransitionEventStatus validates and applies a lifecycle transition under a row lock
	TransitionEventStatus(ctx context.Context, input TransitionEventStatusInput) (*schema.Event, error)
	// ListExpiredPublishedEvents retrieves published events whose sales window has closed
	ListExpiredPublishedEvents(ctx context.Context, now time.Time, limit int) ([]schema.Event, error)
	// UpdateEventFee changes an event's commission percentage
	UpdateEventFee(ctx context.Context, input UpdateEventFeeInput) (*schema.Event, error)

	// GetTier retrieves one tier by event key and tier key
	GetTier(ctx context.Context, eventID string, tierID string) (*schema.EventTier, error)
	// UpdateTierPrice changes a tier's unit price on a draft or published event
	UpdateTierPrice(ctx context.Context, input UpdateTierPriceInput) (*schema.EventTier, error)

	// IssueTicket performs the pay-then-mint issuance in one transaction
	IssueTicket(ctx context.Context, input IssueTicketInput) (*IssueTicketResult, error)
	// SettlePayment performs a direct payment settlement in one transaction
	SettlePayment(ctx context.Context, input SettlePaymentInput) (*SettlePaymentResult, error)
	// WithdrawBalance zeroes the owner's balances and invokes the external transfer
	WithdrawBalance(ctx context.Context, input WithdrawInput) (*WithdrawResult, error)
	// ClaimRefund credits an owner's paid totals back for a cancelled event
	ClaimRefund(ctx context.Context, input ClaimRefundInput) (*ClaimRefundResult, error)

	// GetBalances retrieves the owner's ledger rows across currencies
	GetBalances(ctx context.Context, owner string) ([]schema.Balance, error)
	// GetTicketHoldingsByOwner retrieves the owner's holdings with event context
	GetTicketHoldingsByOwner(ctx context.Context, owner string, limit int, offset uint64) ([]TicketHoldingRecord, uint64, error)

	// GetSignerNonce retrieves a signer's counter row, nil when none exists yet
	GetSignerNonce(ctx context.Context, signer string) (*schema.SignerNonce, error)
	// InvalidateNonce permanently revokes a signer's counter
	InvalidateNonce(ctx context.Context, input InvalidateNonceInput) error

	// GetPaymentLimit retrieves a currency's payment bounds, nil when unconfigured
	GetPaymentLimit(ctx context.Context, currency domain.Currency) (*schema.PaymentLimit, error)
	// UpdatePaymentLimits replaces a currency's payment bounds
	UpdatePaymentLimits(ctx context.Context, input UpdatePaymentLimitsInput) error
	// IsVerified reports whether the address holds verified status
	IsVerified(ctx context.Context, address string) (bool, error)
	// SetVerificationStatus grants or revokes verified status
	SetVerificationStatus(ctx context.Context, input SetVerificationInput) error
	// SetEnginePaused pauses or resumes financial operations
	SetEnginePaused(ctx context.Context, input SetPausedInput) error
	// IsEnginePaused reports the engine pause flag
	IsEnginePaused(ctx context.Context) (bool, error)

	// GetReceipts retrieves receipts matching the filter plus the total count
	GetReceipts(ctx context.Context, filter ReceiptFilter) ([]schema.Receipt, uint64, error)
	// GetReceiptsAfterCursor retrieves receipts past the cursor in cursor order
	GetReceiptsAfterCursor(ctx context.Context, cursor int64, limit int) ([]schema.Receipt, error)

	// SetKeyValue stores an arbitrary key-value pair
	SetKeyValue(ctx context.Context, key string, value string) error
	// GetKeyValue retrieves a value by key, empty string when absent
	GetKeyValue(ctx context.Context, key string) (string, error)
}
