package dto

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/feral-file/ff-boxoffice/internal/currency"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/store"
	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

// TierResponse represents one tier of an event. TokenID is derived from the
// event and tier keys, so holders can verify it independently.
type TierResponse struct {
	TierID       string `json:"tier_id"`
	TokenID      string `json:"token_id"`
	Price        string `json:"price"` // canonical 18-decimal units
	PriceDisplay string `json:"price_display"`
	MaxQuantity  int64  `json:"max_quantity"`
	SoldCount    int64  `json:"sold_count"`
	Active       bool   `json:"active"`
}

// EventResponse represents an event with its tiers
type EventResponse struct {
	EventID             string             `json:"event_id"`
	Name                string             `json:"name"`
	Description         *string            `json:"description,omitempty"`
	Organizer           string             `json:"organizer"`
	Status              domain.EventStatus `json:"status"`
	Currency            domain.Currency    `json:"currency"`
	CommissionPct       uint8              `json:"commission_pct"`
	CommissionRecipient string             `json:"commission_recipient,omitempty"`
	StartTime           time.Time          `json:"start_time"`
	EndTime             time.Time          `json:"end_time"`
	Tiers               []TierResponse     `json:"tiers,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events []EventResponse `json:"items"`
	Offset uint64          `json:"offset"`
	Total  uint64          `json:"total"`
}

// TicketIssuedResponse represents a committed ticket issuance
type TicketIssuedResponse struct {
	TokenID        string          `json:"token_id"`
	ReceiptID      string          `json:"receipt_id"`
	EventID        string          `json:"event_id"`
	TierID         string          `json:"tier_id"`
	Recipient      string          `json:"recipient"`
	Payer          string          `json:"payer"`
	Currency       domain.Currency `json:"currency"`
	Price          string          `json:"price"` // canonical units
	Paid           string          `json:"paid"`  // minor units
	PaidDisplay    string          `json:"paid_display"`
	Commission     string          `json:"commission"` // minor units
	Remainder      string          `json:"remainder"`  // minor units
	SoldCount      int64           `json:"sold_count"`
	HolderQuantity int64           `json:"holder_quantity"`
}

// PaymentSettledResponse represents a committed direct payment
type PaymentSettledResponse struct {
	ReceiptID     string          `json:"receipt_id"`
	Payer         string          `json:"payer"`
	Payee         string          `json:"payee"`
	Currency      domain.Currency `json:"currency"`
	Amount        string          `json:"amount"` // minor units
	AmountDisplay string          `json:"amount_display"`
	Commission    string          `json:"commission"` // minor units
	Remainder     string          `json:"remainder"`  // minor units
	SettledAt     time.Time       `json:"settled_at"`
}

// WithdrawalResponse represents a completed withdrawal across currencies
type WithdrawalResponse struct {
	ReceiptID         string `json:"receipt_id"`
	Owner             string `json:"owner"`
	ETHAmount         string `json:"eth_amount"` // minor units, "0" when nothing was pending
	ETHAmountDisplay  string `json:"eth_amount_display"`
	USDCAmount        string `json:"usdc_amount"` // minor units, "0" when nothing was pending
	USDCAmountDisplay string `json:"usdc_amount_display"`
}

// RefundResponse represents a committed refund claim
type RefundResponse struct {
	ReceiptID     string          `json:"receipt_id"`
	EventID       string          `json:"event_id"`
	Owner         string          `json:"owner"`
	Currency      domain.Currency `json:"currency"`
	Amount        string          `json:"amount"` // minor units
	AmountDisplay string          `json:"amount_display"`
}

// BalanceResponse represents one owner's ledger row in one currency
type BalanceResponse struct {
	Owner                 string          `json:"owner"`
	Currency              domain.Currency `json:"currency"`
	Pending               string          `json:"pending"` // minor units
	PendingDisplay        string          `json:"pending_display"`
	WithdrawnTotal        string          `json:"withdrawn_total"` // minor units
	WithdrawnTotalDisplay string          `json:"withdrawn_total_display"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// BalanceListResponse represents an owner's balances across currencies
type BalanceListResponse struct {
	Balances []BalanceResponse `json:"items"`
}

// HoldingResponse represents a ticket holding with its event context
type HoldingResponse struct {
	TokenID          string          `json:"token_id"`
	EventID          string          `json:"event_id"`
	TierID           string          `json:"tier_id"`
	Owner            string          `json:"owner"`
	Quantity         int64           `json:"quantity"`
	Currency         domain.Currency `json:"currency"`
	PaidTotal        string          `json:"paid_total"` // minor units
	PaidTotalDisplay string          `json:"paid_total_display"`
}

// HoldingListResponse represents a paginated list of holdings
type HoldingListResponse struct {
	Holdings []HoldingResponse `json:"items"`
	Offset   uint64            `json:"offset"`
	Total    uint64            `json:"total"`
}

// ReceiptResponse represents one audit journal entry
type ReceiptResponse struct {
	Cursor    int64              `json:"cursor"`
	ReceiptID string             `json:"receipt_id"`
	Kind      domain.ReceiptKind `json:"kind"`
	Payload   json.RawMessage    `json:"payload,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// ReceiptListResponse represents a paginated list of receipts
type ReceiptListResponse struct {
	Receipts []ReceiptResponse `json:"items"`
	Offset   uint64            `json:"offset"`
	Total    uint64            `json:"total"`
}

// EngineStateResponse reports the engine pause flag
type EngineStateResponse struct {
	Paused bool `json:"paused"`
}

// displayMinor renders a stored minor-unit amount for humans. Malformed
// stored values render as-is rather than hiding the row.
func displayMinor(amount string, cur domain.Currency) string {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return amount
	}
	return currency.Display(v, cur)
}

// displayCanonical renders a stored canonical-unit amount for humans
func displayCanonical(amount string) string {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return amount
	}
	return currency.DisplayCanonical(v)
}

// MapTierToDTO maps a schema.EventTier to TierResponse
func MapTierToDTO(eventID string, tier *schema.EventTier) *TierResponse {
	return &TierResponse{
		TierID:       tier.TierID,
		TokenID:      domain.NewTicketTokenID(eventID, tier.TierID).String(),
		Price:        tier.Price,
		PriceDisplay: displayCanonical(tier.Price),
		MaxQuantity:  tier.MaxQuantity,
		SoldCount:    tier.SoldCount,
		Active:       tier.Active,
	}
}

// MapEventToDTO maps a schema.Event to EventResponse
func MapEventToDTO(event *schema.Event) *EventResponse {
	dto := &EventResponse{
		EventID:             event.EventID,
		Name:                event.Name,
		Description:         event.Description,
		Organizer:           event.Organizer,
		Status:              event.Status,
		Currency:            event.Currency,
		CommissionPct:       event.CommissionPct,
		CommissionRecipient: event.CommissionRecipient,
		StartTime:           event.StartTime,
		EndTime:             event.EndTime,
		CreatedAt:           event.CreatedAt,
		UpdatedAt:           event.UpdatedAt,
	}

	for i := range event.Tiers {
		dto.Tiers = append(dto.Tiers, *MapTierToDTO(event.EventID, &event.Tiers[i]))
	}

	return dto
}

// MapEventListToDTO maps a page of events to EventListResponse
func MapEventListToDTO(events []schema.Event, offset uint64, total uint64) *EventListResponse {
	items := make([]EventResponse, 0, len(events))
	for i := range events {
		items = append(items, *MapEventToDTO(&events[i]))
	}
	return &EventListResponse{Events: items, Offset: offset, Total: total}
}

// MapIssueTicketResultToDTO maps a store.IssueTicketResult to TicketIssuedResponse
func MapIssueTicketResultToDTO(eventID, tierID, recipient, payer string, result *store.IssueTicketResult) *TicketIssuedResponse {
	return &TicketIssuedResponse{
		TokenID:        result.TokenID.String(),
		ReceiptID:      result.ReceiptID,
		EventID:        eventID,
		TierID:         tierID,
		Recipient:      domain.NormalizeAddress(recipient),
		Payer:          domain.NormalizeAddress(payer),
		Currency:       result.Currency,
		Price:          result.Price.String(),
		Paid:           result.Paid.String(),
		PaidDisplay:    currency.Display(result.Paid, result.Currency),
		Commission:     result.Commission.String(),
		Remainder:      result.Remainder.String(),
		SoldCount:      result.SoldCount,
		HolderQuantity: result.HolderQuantity,
	}
}

// MapSettlePaymentResultToDTO maps a store.SettlePaymentResult to PaymentSettledResponse
func MapSettlePaymentResultToDTO(payer, payee string, amount *big.Int, cur domain.Currency, result *store.SettlePaymentResult) *PaymentSettledResponse {
	return &PaymentSettledResponse{
		ReceiptID:     result.ReceiptID,
		Payer:         domain.NormalizeAddress(payer),
		Payee:         domain.NormalizeAddress(payee),
		Currency:      cur,
		Amount:        amount.String(),
		AmountDisplay: currency.Display(amount, cur),
		Commission:    result.Commission.String(),
		Remainder:     result.Remainder.String(),
		SettledAt:     result.SettledAt,
	}
}

// MapWithdrawResultToDTO maps a store.WithdrawResult to WithdrawalResponse
func MapWithdrawResultToDTO(owner string, result *store.WithdrawResult) *WithdrawalResponse {
	return &WithdrawalResponse{
		ReceiptID:         result.ReceiptID,
		Owner:             domain.NormalizeAddress(owner),
		ETHAmount:         result.ETHAmount.String(),
		ETHAmountDisplay:  currency.Display(result.ETHAmount, domain.CurrencyETH),
		USDCAmount:        result.USDCAmount.String(),
		USDCAmountDisplay: currency.Display(result.USDCAmount, domain.CurrencyUSDC),
	}
}

// MapClaimRefundResultToDTO maps a store.ClaimRefundResult to RefundResponse
func MapClaimRefundResultToDTO(eventID, owner string, result *store.ClaimRefundResult) *RefundResponse {
	return &RefundResponse{
		ReceiptID:     result.ReceiptID,
		EventID:       eventID,
		Owner:         domain.NormalizeAddress(owner),
		Currency:      result.Currency,
		Amount:        result.Amount.String(),
		AmountDisplay: currency.Display(result.Amount, result.Currency),
	}
}

// MapBalanceToDTO maps a schema.Balance to BalanceResponse
func MapBalanceToDTO(balance *schema.Balance) *BalanceResponse {
	return &BalanceResponse{
		Owner:                 balance.Owner,
		Currency:              balance.Currency,
		Pending:               balance.Pending,
		PendingDisplay:        displayMinor(balance.Pending, balance.Currency),
		WithdrawnTotal:        balance.WithdrawnTotal,
		WithdrawnTotalDisplay: displayMinor(balance.WithdrawnTotal, balance.Currency),
		UpdatedAt:             balance.UpdatedAt,
	}
}

// MapHoldingToDTO maps a store.TicketHoldingRecord to HoldingResponse
func MapHoldingToDTO(record *store.TicketHoldingRecord) *HoldingResponse {
	return &HoldingResponse{
		TokenID:          record.TokenID,
		EventID:          record.EventID,
		TierID:           record.TierID,
		Owner:            record.Owner,
		Quantity:         record.Quantity,
		Currency:         record.Currency,
		PaidTotal:        record.PaidTotal,
		PaidTotalDisplay: displayMinor(record.PaidTotal, record.Currency),
	}
}

// MapReceiptToDTO maps a schema.Receipt to ReceiptResponse
func MapReceiptToDTO(receipt *schema.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		Cursor:    receipt.Cursor,
		ReceiptID: receipt.ReceiptID,
		Kind:      receipt.Kind,
		Payload:   json.RawMessage(receipt.Payload),
		CreatedAt: receipt.CreatedAt,
	}
}
