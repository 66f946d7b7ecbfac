package dto

import (
	"fmt"
	"time"

	apierrors "github.com/feral-file/ff-boxoffice/internal/api/shared/errors"
	"github.com/feral-file/ff-boxoffice/internal/authz"
	"github.com/feral-file/ff-boxoffice/internal/boxoffice"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/settlement"
)

// TierRequest represents one tier of a new event
type TierRequest struct {
	TierID string `json:"tier_id"`
	// Price is the unit price in canonical 18-decimal units
	Price       string `json:"price"`
	MaxQuantity int64  `json:"max_quantity"`
}

// CreateEventRequest represents the request body for creating an event.
// The authenticated caller becomes the organizer.
type CreateEventRequest struct {
	EventID             string        `json:"event_id"`
	Name                string        `json:"name"`
	Description         *string       `json:"description,omitempty"`
	Currency            string        `json:"currency"`
	CommissionPct       uint8         `json:"commission_pct"`
	CommissionRecipient string        `json:"commission_recipient,omitempty"`
	StartTime           time.Time     `json:"start_time"`
	EndTime             time.Time     `json:"end_time"`
	Tiers               []TierRequest `json:"tiers"`
}

// Validate validates the request body. Shape checks only; the service owns
// the semantic rules (currency support, price bounds, time ordering).
func (r *CreateEventRequest) Validate() error {
	// Validate: event key must be provided
	if r.EventID == "" {
		return apierrors.NewValidationError("event_id is required")
	}

	// Validate: display name must be provided
	if r.Name == "" {
		return apierrors.NewValidationError("name is required")
	}

	// Validate: currency must be provided
	if r.Currency == "" {
		return apierrors.NewValidationError("currency is required")
	}

	// Validate: sales window must be provided
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return apierrors.NewValidationError("start_time and end_time are required")
	}

	// Validate: at least one tier must be provided
	if len(r.Tiers) == 0 {
		return apierrors.NewValidationError("tiers is required and must not be empty")
	}

	// Validate: tier prices must be well-formed amounts
	for _, tier := range r.Tiers {
		if tier.TierID == "" {
			return apierrors.NewValidationError("tier_id is required for every tier")
		}
		if _, err := domain.ParseAmount(tier.Price); err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("invalid price for tier %s: %s", tier.TierID, tier.Price))
		}
	}

	return nil
}

// ToInput converts the request into the service form
func (r *CreateEventRequest) ToInput() (boxoffice.CreateEventRequest, error) {
	tiers := make([]boxoffice.TierRequest, 0, len(r.Tiers))
	for _, tier := range r.Tiers {
		price, err := domain.ParseAmount(tier.Price)
		if err != nil {
			return boxoffice.CreateEventRequest{}, err
		}
		tiers = append(tiers, boxoffice.TierRequest{
			TierID:      tier.TierID,
			Price:       price,
			MaxQuantity: tier.MaxQuantity,
		})
	}

	return boxoffice.CreateEventRequest{
		EventID:             r.EventID,
		Name:                r.Name,
		Description:         r.Description,
		Currency:            domain.Currency(r.Currency),
		CommissionPct:       r.CommissionPct,
		CommissionRecipient: r.CommissionRecipient,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		Tiers:               tiers,
	}, nil
}

// IssueTicketRequest represents the request body for a paid ticket purchase
type IssueTicketRequest struct {
	EventID   string `json:"event_id"`
	TierID    string `json:"tier_id"`
	Recipient string `json:"recipient"`
	Payer     string `json:"payer"`
	// Payment is the submitted payment in minor units of the event currency
	Payment string `json:"payment"`
	// Authorization is required in signed mode and ignored in open mode
	Authorization *authz.Authorization `json:"authorization,omitempty"`
}

// Validate validates the request body
func (r *IssueTicketRequest) Validate() error {
	// Validate: event and tier keys must be provided
	if r.EventID == "" {
		return apierrors.NewValidationError("event_id is required")
	}
	if r.TierID == "" {
		return apierrors.NewValidationError("tier_id is required")
	}

	// Validate: recipient and payer must be valid addresses
	if !domain.IsValidAddress(r.Recipient) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid recipient address: %s", r.Recipient))
	}
	if !domain.IsValidAddress(r.Payer) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid payer address: %s", r.Payer))
	}

	// Validate: payment must be a well-formed amount
	if _, err := domain.ParseAmount(r.Payment); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid payment amount: %s", r.Payment))
	}

	return nil
}

// ToInput converts the request into the service form
func (r *IssueTicketRequest) ToInput() (boxoffice.IssueTicketRequest, error) {
	payment, err := domain.ParseAmount(r.Payment)
	if err != nil {
		return boxoffice.IssueTicketRequest{}, err
	}

	return boxoffice.IssueTicketRequest{
		EventID:       r.EventID,
		TierID:        r.TierID,
		Recipient:     r.Recipient,
		Payer:         r.Payer,
		Payment:       payment,
		Authorization: r.Authorization,
	}, nil
}

// SettlePaymentRequest represents the request body for a direct payment
type SettlePaymentRequest struct {
	Payer string `json:"payer"`
	Payee string `json:"payee"`
	// Amount is the payment in minor units of Currency
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
	CommissionPct       uint8  `json:"commission_pct"`
	CommissionRecipient string `json:"commission_recipient,omitempty"`
	// Authorization is required in signed mode and ignored in open mode
	Authorization *authz.Authorization `json:"authorization,omitempty"`
}

// Validate validates the request body
func (r *SettlePaymentRequest) Validate() error {
	// Validate: payer and payee must be valid addresses
	if !domain.IsValidAddress(r.Payer) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid payer address: %s", r.Payer))
	}
	if !domain.IsValidAddress(r.Payee) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid payee address: %s", r.Payee))
	}

	// Validate: currency must be provided
	if r.Currency == "" {
		return apierrors.NewValidationError("currency is required")
	}

	// Validate: amount must be a well-formed amount
	if _, err := domain.ParseAmount(r.Amount); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("invalid amount: %s", r.Amount))
	}

	return nil
}

// ToInput converts the request into the engine form
func (r *SettlePaymentRequest) ToInput() (settlement.SettleRequest, error) {
	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return settlement.SettleRequest{}, err
	}

	return settlement.SettleRequest{
		Payer:               r.Payer,
		Payee:               r.Payee,
		Amount:              amount,
		Currency:            domain.Currency(r.Currency),
		CommissionPct:       r.CommissionPct,
		CommissionRecipient: r.CommissionRecipient,
		Authorization:       r.Authorization,
	}, nil
}

// WithdrawRequest represents the request body for a full-balance withdrawal
type WithdrawRequest struct {
	Owner string `json:"owner"`
}

// Validate validates the request body
func (r *WithdrawRequest) Validate() error {
	// Validate: owner must be a valid address
	if !domain.IsValidAddress(r.Owner) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid owner address: %s", r.Owner))
	}
	return nil
}

// RefundRequest represents the request body for a refund claim
type RefundRequest struct {
	EventID string `json:"event_id"`
	Owner   string `json:"owner"`
}

// Validate validates the request body
func (r *RefundRequest) Validate() error {
	// Validate: event key must be provided
	if r.EventID == "" {
		return apierrors.NewValidationError("event_id is required")
	}

	// Validate: owner must be a valid address
	if !domain.IsValidAddress(r.Owner) {
		return apierrors.NewValidationError(fmt.Sprintf("invalid owner address: %s", r.Owner))
	}
	return nil
}

// UpdateTierPriceRequest represents the request body for a tier price change
type UpdateTierPriceRequest struct {
	// Price is the new unit price in canonical 18-decimal units
	Price string `json:"price"`
}

// UpdateEventFeeRequest represents the request body for a commission change
type UpdateEventFeeRequest struct {
	CommissionPct uint8 `json:"commission_pct"`
}

// UpdateLimitsRequest represents the request body for replacing a currency's
// payment bounds, all in minor units
type UpdateLimitsRequest struct {
	MinAmount         string `json:"min_amount"`
	MaxAmount         string `json:"max_amount"`
	VerifiedMaxAmount string `json:"verified_max_amount"`
}

// ToInput converts the request into the engine form. The currency comes from
// the route path.
func (r *UpdateLimitsRequest) ToInput(currency domain.Currency) (settlement.UpdateLimitsRequest, error) {
	minAmount, err := domain.ParseAmount(r.MinAmount)
	if err != nil {
		return settlement.UpdateLimitsRequest{}, fmt.Errorf("min_amount: %w", err)
	}
	maxAmount, err := domain.ParseAmount(r.MaxAmount)
	if err != nil {
		return settlement.UpdateLimitsRequest{}, fmt.Errorf("max_amount: %w", err)
	}
	verifiedMax, err := domain.ParseAmount(r.VerifiedMaxAmount)
	if err != nil {
		return settlement.UpdateLimitsRequest{}, fmt.Errorf("verified_max_amount: %w", err)
	}

	return settlement.UpdateLimitsRequest{
		Currency:          currency,
		MinAmount:         minAmount,
		MaxAmount:         maxAmount,
		VerifiedMaxAmount: verifiedMax,
	}, nil
}
