// Package boxoffice implements the event and ticket ledger: event creation and
// lifecycle, tier pricing, paid ticket issuance, and refund claims. It owns the
// inventory rules; monetary movement inside an issuance is delegated to the
// store transaction so payment and mint commit or roll back together.
package boxoffice

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/authz"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/settlement"
	"github.com/feral-file/ff-boxoffice/internal/store"
	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

// Config holds the box office issuance policy
type Config struct {
	// Mode selects signed or open authorization for ticket purchases
	Mode authz.Mode
	// Cooldown is the per-payer window between successful settlements.
	// Zero disables the cooldown.
	Cooldown time.Duration
}

// TierRequest describes one tier of a new event
type TierRequest struct {
	// TierID is the caller-chosen tier identifier, unique within the event
	TierID string
	// Price is the unit price in canonical 18-decimal units
	Price *big.Int
	// MaxQuantity is the tier capacity
	MaxQuantity int64
}

// CreateEventRequest describes a new event. The caller becomes the organizer.
type CreateEventRequest struct {
	EventID             string
	Name                string
	Description         *string
	Currency            domain.Currency
	CommissionPct       uint8
	CommissionRecipient string
	StartTime           time.Time
	EndTime             time.Time
	Tiers               []TierRequest
}

// IssueTicketRequest describes a paid ticket purchase
type IssueTicketRequest struct {
	EventID string
	TierID  string
	// Recipient is the address receiving the ticket
	Recipient string
	// Payer is the address paying for it
	Payer string
	// Payment is the submitted payment in minor units of the event currency
	Payment *big.Int
	// Authorization is required in signed mode and ignored in open mode
	Authorization *authz.Authorization
}

// Service is the box office service
//
//go:generate mockgen -source=service.go -destination=../mocks/boxoffice.go -package=mocks -mock_names=Service=MockBoxOfficeService
type Service interface {
	// CreateEvent validates and creates an event with all of its tiers
	CreateEvent(ctx context.Context, caller domain.Caller, req CreateEventRequest) (*schema.Event, error)

	// PublishEvent opens a draft event for sale
	PublishEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error)

	// CancelEvent cancels a published event, opening it for refund claims
	CancelEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error)

	// CompleteEvent closes a published event permanently
	CompleteEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error)

	// ReactivateEvent reopens a cancelled event; refused once refunds were claimed
	ReactivateEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error)

	// UpdateTierPrice changes a tier's unit price within the configured bounds
	UpdateTierPrice(ctx context.Context, caller domain.Caller, eventID string, tierID string, price *big.Int) (*schema.EventTier, error)

	// UpdateEventFee changes an event's commission percentage
	UpdateEventFee(ctx context.Context, caller domain.Caller, eventID string, commissionPct uint8) (*schema.Event, error)

	// IssueTicket validates, authorizes, and commits a paid ticket purchase
	IssueTicket(ctx context.Context, req IssueTicketRequest) (*store.IssueTicketResult, error)

	// ClaimRefund credits the owner's paid amounts back for a cancelled event
	ClaimRefund(ctx context.Context, eventID string, owner string) (*store.ClaimRefundResult, error)

	// GetEvent retrieves an event with its tiers
	GetEvent(ctx context.Context, eventID string) (*schema.Event, error)

	// ListEvents retrieves events matching the filter plus the total count
	ListEvents(ctx context.Context, filter store.EventFilter) ([]schema.Event, uint64, error)

	// GetTier retrieves one tier of an event
	GetTier(ctx context.Context, eventID string, tierID string) (*schema.EventTier, error)

	// GetTicketHoldings retrieves the owner's holdings with event context
	GetTicketHoldings(ctx context.Context, owner string, limit int, offset uint64) ([]store.TicketHoldingRecord, uint64, error)

	// GetBalances retrieves the owner's pending balances across currencies
	GetBalances(ctx context.Context, owner string) ([]schema.Balance, error)

	// GetReceipts retrieves receipts matching the filter plus the total count
	GetReceipts(ctx context.Context, filter store.ReceiptFilter) ([]schema.Receipt, uint64, error)
}

type service struct {
	config   Config
	store    store.Store
	verifier authz.Verifier
	clock    adapter.Clock
}

// NewService creates a box office service
func NewService(
	config Config,
	st store.Store,
	verifier authz.Verifier,
	clock adapter.Clock,
) Service {
	return &service{
		config:   config,
		store:    st,
		verifier: verifier,
		clock:    clock,
	}
}

// validAddress rejects malformed or zero addresses and returns the
// checksummed form so ledger keys never split on hex casing
func validAddress(address string) (string, error) {
	if !domain.IsValidAddress(address) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAddress, address)
	}
	return domain.NormalizeAddress(address), nil
}

// requireOrganizer admits the event's organizer and admin callers
func requireOrganizer(caller domain.Caller, event *schema.Event) error {
	if caller.Admin || strings.EqualFold(caller.Address, event.Organizer) {
		return nil
	}
	return fmt.Errorf("%w: caller %s is not the event organizer", domain.ErrUnauthorized, caller.Address)
}

func validTierPrice(price *big.Int) error {
	if price == nil || price.Cmp(domain.MinTicketPrice) < 0 || price.Cmp(domain.MaxTicketPrice) > 0 {
		return fmt.Errorf("%w: tier price must lie within [%s, %s]",
			domain.ErrPriceOutOfRange, domain.MinTicketPrice, domain.MaxTicketPrice)
	}
	return nil
}

// CreateEvent validates and creates an event with all of its tiers
func (s *service) CreateEvent(ctx context.Context, caller domain.Caller, req CreateEventRequest) (*schema.Event, error) {
	organizer, err := validAddress(caller.Address)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidCurrency(req.Currency) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, req.Currency)
	}
	if req.CommissionPct > domain.MAX_COMMISSION_PCT {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPercentage, req.CommissionPct)
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, fmt.Errorf("%w: start time must precede end time", domain.ErrInvalidTimeRange)
	}

	commissionRecipient := ""
	if req.CommissionPct > 0 {
		commissionRecipient, err = validAddress(req.CommissionRecipient)
		if err != nil {
			return nil, err
		}
	} else if req.CommissionRecipient != "" {
		commissionRecipient = domain.NormalizeAddress(req.CommissionRecipient)
	}

	if len(req.Tiers) == 0 || len(req.Tiers) > domain.MAX_TIERS_PER_EVENT {
		return nil, fmt.Errorf("%w: event must have between 1 and %d tiers",
			domain.ErrInvalidTierConfig, domain.MAX_TIERS_PER_EVENT)
	}

	tiers := make([]store.CreateTierInput, 0, len(req.Tiers))
	seen := make(map[string]struct{}, len(req.Tiers))
	for _, tier := range req.Tiers {
		if tier.TierID == "" {
			return nil, fmt.Errorf("%w: tier id is required", domain.ErrInvalidTierConfig)
		}
		if _, ok := seen[tier.TierID]; ok {
			return nil, fmt.Errorf("%w: duplicate tier id %q", domain.ErrInvalidTierConfig, tier.TierID)
		}
		seen[tier.TierID] = struct{}{}

		if err := validTierPrice(tier.Price); err != nil {
			return nil, err
		}
		if tier.MaxQuantity <= 0 {
			return nil, fmt.Errorf("%w: tier %q capacity must be positive", domain.ErrInvalidTierConfig, tier.TierID)
		}

		tiers = append(tiers, store.CreateTierInput{
			TierID:      tier.TierID,
			Price:       tier.Price,
			MaxQuantity: tier.MaxQuantity,
		})
	}

	event, err := s.store.CreateEvent(ctx, store.CreateEventInput{
		EventID:             req.EventID,
		Name:                req.Name,
		Description:         req.Description,
		Organizer:           organizer,
		Currency:            req.Currency,
		CommissionPct:       req.CommissionPct,
		CommissionRecipient: commissionRecipient,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		Tiers:               tiers,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Event created",
		zap.String("event_id", event.EventID),
		zap.String("organizer", organizer),
		zap.Int("tiers", len(tiers)))

	return event, nil
}

// transition loads the event, checks the caller, and applies the lifecycle change
func (s *service) transition(ctx context.Context, caller domain.Caller, eventID string, next domain.EventStatus) (*schema.Event, error) {
	event, err := s.store.GetEventByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
	}
	if err := requireOrganizer(caller, event); err != nil {
		return nil, err
	}

	updated, err := s.store.TransitionEventStatus(ctx, store.TransitionEventStatusInput{
		EventID:    eventID,
		NextStatus: next,
		Actor:      caller.Address,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Event status changed",
		zap.String("event_id", eventID),
		zap.String("status", string(updated.Status)),
		zap.String("actor", caller.Address))

	return updated, nil
}

// PublishEvent opens a draft event for sale
func (s *service) PublishEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error) {
	return s.transition(ctx, caller, eventID, domain.EventStatusPublished)
}

// CancelEvent cancels a published event, opening it for refund claims
func (s *service) CancelEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error) {
	return s.transition(ctx, caller, eventID, domain.EventStatusCancelled)
}

// CompleteEvent closes a published event permanently
func (s *service) CompleteEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error) {
	return s.transition(ctx, caller, eventID, domain.EventStatusCompleted)
}

// ReactivateEvent reopens a cancelled event; refused once refunds were claimed
func (s *service) ReactivateEvent(ctx context.Context, caller domain.Caller, eventID string) (*schema.Event, error) {
	return s.transition(ctx, caller, eventID, domain.EventStatusPublished)
}

// UpdateTierPrice changes a tier's unit price within the configured bounds
func (s *service) UpdateTierPrice(ctx context.Context, caller domain.Caller, eventID string, tierID string, price *big.Int) (*schema.EventTier, error) {
	if err := validTierPrice(price); err != nil {
		return nil, err
	}

	event, err := s.store.GetEventByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
	}
	if err := requireOrganizer(caller, event); err != nil {
		return nil, err
	}

	tier, err := s.store.UpdateTierPrice(ctx, store.UpdateTierPriceInput{
		EventID: eventID,
		TierID:  tierID,
		Price:   price,
		Actor:   caller.Address,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Tier price updated",
		zap.String("event_id", eventID),
		zap.String("tier_id", tierID),
		zap.String("price", price.String()))

	return tier, nil
}

// UpdateEventFee changes an event's commission percentage
func (s *service) UpdateEventFee(ctx context.Context, caller domain.Caller, eventID string, commissionPct uint8) (*schema.Event, error) {
	if !caller.Admin {
		return nil, fmt.Errorf("%w: caller %s lacks the admin capability", domain.ErrUnauthorized, caller.Address)
	}
	if commissionPct > domain.MAX_COMMISSION_PCT {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPercentage, commissionPct)
	}

	event, err := s.store.UpdateEventFee(ctx, store.UpdateEventFeeInput{
		EventID:       eventID,
		CommissionPct: commissionPct,
		Actor:         caller.Address,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Event fee updated",
		zap.String("event_id", eventID),
		zap.Uint8("commission_pct", commissionPct))

	return event, nil
}

// IssueTicket validates, authorizes, and commits a paid ticket purchase
func (s *service) IssueTicket(ctx context.Context, req IssueTicketRequest) (*store.IssueTicketResult, error) {
	recipient, err := validAddress(req.Recipient)
	if err != nil {
		return nil, err
	}
	payer, err := validAddress(req.Payer)
	if err != nil {
		return nil, err
	}
	if req.Payment == nil || req.Payment.Sign() < 0 {
		return nil, fmt.Errorf("%w: payment is required", domain.ErrInvalidAmount)
	}

	// The event currency anchors the authorization binding; the authoritative
	// state checks run again inside the issuance transaction.
	event, err := s.store.GetEventByEventID(ctx, req.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, req.EventID)
	}

	nonce, err := settlement.Authorize(ctx, s.config.Mode, s.verifier, req.Authorization, authz.Binding{
		Payer:     payer,
		Recipient: recipient,
		Currency:  event.Currency,
		Amount:    req.Payment,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.store.IssueTicket(ctx, store.IssueTicketInput{
		EventID:   req.EventID,
		TierID:    req.TierID,
		Recipient: recipient,
		Payer:     payer,
		Payment:   req.Payment,
		Nonce:     nonce,
		Cooldown:  s.config.Cooldown,
		Now:       s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Ticket issued",
		zap.String("token_id", result.TokenID.String()),
		zap.String("event_id", req.EventID),
		zap.String("tier_id", req.TierID),
		zap.String("recipient", recipient),
		zap.String("paid", result.Paid.String()),
		zap.String("receipt_id", result.ReceiptID))

	return result, nil
}

// ClaimRefund credits the owner's paid amounts back for a cancelled event
func (s *service) ClaimRefund(ctx context.Context, eventID string, owner string) (*store.ClaimRefundResult, error) {
	normalized, err := validAddress(owner)
	if err != nil {
		return nil, err
	}

	result, err := s.store.ClaimRefund(ctx, store.ClaimRefundInput{
		EventID: eventID,
		Owner:   normalized,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Refund claimed",
		zap.String("event_id", eventID),
		zap.String("owner", normalized),
		zap.String("amount", result.Amount.String()),
		zap.String("currency", string(result.Currency)),
		zap.String("receipt_id", result.ReceiptID))

	return result, nil
}

// GetEvent retrieves an event with its tiers
func (s *service) GetEvent(ctx context.Context, eventID string) (*schema.Event, error) {
	event, err := s.store.GetEventByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEventNotFound, eventID)
	}
	return event, nil
}

// ListEvents retrieves events matching the filter plus the total count
func (s *service) ListEvents(ctx context.Context, filter store.EventFilter) ([]schema.Event, uint64, error) {
	return s.store.GetEventsByFilter(ctx, filter)
}

// GetTier retrieves one tier of an event
func (s *service) GetTier(ctx context.Context, eventID string, tierID string) (*schema.EventTier, error) {
	tier, err := s.store.GetTier(ctx, eventID, tierID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}
	if tier == nil {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrTierNotFound, eventID, tierID)
	}
	return tier, nil
}

// GetTicketHoldings retrieves the owner's holdings with event context
func (s *service) GetTicketHoldings(ctx context.Context, owner string, limit int, offset uint64) ([]store.TicketHoldingRecord, uint64, error) {
	normalized, err := validAddress(owner)
	if err != nil {
		return nil, 0, err
	}
	return s.store.GetTicketHoldingsByOwner(ctx, normalized, limit, offset)
}

// GetBalances retrieves the owner's pending balances across currencies
func (s *service) GetBalances(ctx context.Context, owner string) ([]schema.Balance, error) {
	normalized, err := validAddress(owner)
	if err != nil {
		return nil, err
	}
	return s.store.GetBalances(ctx, normalized)
}

// GetReceipts retrieves receipts matching the filter plus the total count
func (s *service) GetReceipts(ctx context.Context, filter store.ReceiptFilter) ([]schema.Receipt, uint64, error) {
	return s.store.GetReceipts(ctx, filter)
}
