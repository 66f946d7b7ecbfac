package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Currency represents a settlement currency supported by the engine
type Currency string

const (
	CurrencyETH  Currency = "ETH"
	CurrencyUSDC Currency = "USDC"
)

// Currencies returns every currency the engine settles in
func Currencies() []Currency {
	return []Currency{CurrencyETH, CurrencyUSDC}
}

// IsValidCurrency checks if a currency is supported
func IsValidCurrency(currency Currency) bool {
	return currency == CurrencyETH || currency == CurrencyUSDC
}

// Decimals returns the number of fractional digits of the currency's minor unit
func (c Currency) Decimals() int {
	if c == CurrencyUSDC {
		return USDC_DECIMALS
	}
	return CANONICAL_DECIMALS
}

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// IsValidEventStatus checks if a status is valid
func IsValidEventStatus(status EventStatus) bool {
	return status == EventStatusDraft ||
		status == EventStatusPublished ||
		status == EventStatusCancelled ||
		status == EventStatusCompleted
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Draft events can only be published; published events can be cancelled or
// completed; cancelled events can be published again (reactivation). Completed
// is terminal.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusDraft:
		return next == EventStatusPublished
	case EventStatusPublished:
		return next == EventStatusCancelled || next == EventStatusCompleted
	case EventStatusCancelled:
		return next == EventStatusPublished
	default:
		return false
	}
}

// TicketTokenID is the canonical identifier of a ticket class in format
// keccak256(eventID:tierID), hex-encoded, so any party can recompute it
// from the public event and tier identifiers
type TicketTokenID string

// NewTicketTokenID derives the token identifier for an event tier
func NewTicketTokenID(eventID string, tierID string) TicketTokenID {
	return TicketTokenID(crypto.Keccak256Hash([]byte(fmt.Sprintf("%s:%s", eventID, tierID))).Hex())
}

// String returns the string representation of the TicketTokenID
func (t TicketTokenID) String() string {
	return string(t)
}

// Caller identifies the authenticated originator of an operation
type Caller struct {
	Address string
	Admin   bool
}

// ReceiptKind classifies entries in the audit journal
type ReceiptKind string

const (
	ReceiptEventCreated     ReceiptKind = "event.created"
	ReceiptEventPublished   ReceiptKind = "event.published"
	ReceiptEventCancelled   ReceiptKind = "event.cancelled"
	ReceiptEventCompleted   ReceiptKind = "event.completed"
	ReceiptEventReactivated ReceiptKind = "event.reactivated"
	ReceiptTierPriceUpdated ReceiptKind = "tier.price_updated"
	ReceiptTicketIssued     ReceiptKind = "ticket.issued"
	ReceiptPaymentSettled   ReceiptKind = "payment.settled"
	ReceiptBalanceWithdrawn ReceiptKind = "balance.withdrawn"
	ReceiptRefundClaimed    ReceiptKind = "refund.claimed"
	ReceiptLimitsUpdated    ReceiptKind = "limits.updated"
	ReceiptFeeUpdated       ReceiptKind = "fee.updated"
	ReceiptVerificationSet  ReceiptKind = "verification.updated"
	ReceiptNonceInvalidated ReceiptKind = "nonce.invalidated"
	ReceiptEnginePaused     ReceiptKind = "engine.paused"
	ReceiptEngineUnpaused   ReceiptKind = "engine.unpaused"
)

// Receipt represents a single audit journal entry
// This is the standard format published to NATS
type Receipt struct {
	ID        string          `json:"id"`         // ULID, lexicographically sortable by creation time
	Kind      ReceiptKind     `json:"kind"`       // e.g., "ticket.issued", "payment.settled"
	Payload   json.RawMessage `json:"payload"`    // kind-specific payload
	CreatedAt time.Time       `json:"created_at"` // journal append time
}

// Subject returns the NATS subject the receipt is published under
func (r *Receipt) Subject(prefix string) string {
	return fmt.Sprintf("%s.%s", prefix, r.Kind)
}

// PaymentSettledPayload is the receipt payload for a completed settlement
type PaymentSettledPayload struct {
	Payer               string   `json:"payer"`
	Payee               string   `json:"payee"`
	Currency            Currency `json:"currency"`
	Amount              string   `json:"amount"`               // settled amount in minor units
	Commission          string   `json:"commission"`           // commission share in minor units
	CommissionRecipient string   `json:"commission_recipient"` // empty when commission is zero
	Remainder           string   `json:"remainder"`            // payee share in minor units
}

// TicketIssuedPayload is the receipt payload for a ticket issuance
type TicketIssuedPayload struct {
	EventID   string   `json:"event_id"`
	TierID    string   `json:"tier_id"`
	TokenID   string   `json:"token_id"`
	Recipient string   `json:"recipient"`
	Payer     string   `json:"payer"`
	Currency  Currency `json:"currency"`
	PricePaid string   `json:"price_paid"` // minor units
}

// BalanceWithdrawnPayload is the receipt payload for a balance withdrawal
type BalanceWithdrawnPayload struct {
	Owner      string `json:"owner"`
	ETHAmount  string `json:"eth_amount"`  // minor units, "0" when nothing was pending
	USDCAmount string `json:"usdc_amount"` // minor units, "0" when nothing was pending
}

// RefundClaimedPayload is the receipt payload for a refund claim against a
// cancelled event
type RefundClaimedPayload struct {
	EventID  string   `json:"event_id"`
	Owner    string   `json:"owner"`
	Currency Currency `json:"currency"`
	Amount   string   `json:"amount"` // minor units
}

// EventCreatedPayload is the receipt payload for a newly created event
type EventCreatedPayload struct {
	EventID             string   `json:"event_id"`
	Organizer           string   `json:"organizer"`
	Currency            Currency `json:"currency"`
	CommissionPct       uint8    `json:"commission_pct"`
	CommissionRecipient string   `json:"commission_recipient"`
	TierCount           int      `json:"tier_count"`
}

// EventLifecyclePayload is the receipt payload for lifecycle transitions
// (published, cancelled, completed, reactivated)
type EventLifecyclePayload struct {
	EventID string      `json:"event_id"`
	Status  EventStatus `json:"status"`
	Actor   string      `json:"actor"`
}

// TierPriceUpdatedPayload is the receipt payload for a tier price change
type TierPriceUpdatedPayload struct {
	EventID string `json:"event_id"`
	TierID  string `json:"tier_id"`
	Price   string `json:"price"` // canonical units
	Actor   string `json:"actor"`
}

// LimitsUpdatedPayload is the receipt payload for a payment-limit change
type LimitsUpdatedPayload struct {
	Currency          Currency `json:"currency"`
	MinAmount         string   `json:"min_amount"`          // minor units
	MaxAmount         string   `json:"max_amount"`          // minor units
	VerifiedMaxAmount string   `json:"verified_max_amount"` // minor units
	Actor             string   `json:"actor"`
}

// FeeUpdatedPayload is the receipt payload for an event commission change
type FeeUpdatedPayload struct {
	EventID       string `json:"event_id"`
	CommissionPct uint8  `json:"commission_pct"`
	Actor         string `json:"actor"`
}

// VerificationUpdatedPayload is the receipt payload for a verified-status change
type VerificationUpdatedPayload struct {
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
	Actor    string `json:"actor"`
}

// NonceInvalidatedPayload is the receipt payload for a signer revocation
type NonceInvalidatedPayload struct {
	Signer string `json:"signer"`
	Actor  string `json:"actor"`
}

// EnginePausePayload is the receipt payload for pause and unpause
type EnginePausePayload struct {
	Actor string `json:"actor"`
}

// ParseAmount parses a non-negative integer amount expressed in minor units
func ParseAmount(s string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a base-10 integer", ErrInvalidAmount, s)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	return amount, nil
}

// NormalizeAddress normalizes an address to its EIP-55 checksummed form
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}

// IsValidAddress checks if an address is a well-formed, non-zero hex address
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	return common.HexToAddress(address) != (common.Address{})
}
