package store

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestEvent creates a test event input with a general and a vip tier.
// Prices are canonical 18-decimal units; the sales window is already open.
func buildTestEvent(eventID, organizer string) CreateEventInput {
	now := time.Now().UTC()
	description := "An evening of generative audio"
	return CreateEventInput{
		EventID:             eventID,
		Name:                "Test Event",
		Description:         &description,
		Organizer:           organizer,
		Currency:            domain.CurrencyETH,
		CommissionPct:       10,
		CommissionRecipient: "0xfee0000000000000000000000000000000000001",
		StartTime:           now.Add(-time.Hour),
		EndTime:             now.Add(24 * time.Hour),
		Tiers: []CreateTierInput{
			{TierID: "general", Price: big.NewInt(100000000000000000), MaxQuantity: 100},
			{TierID: "vip", Price: big.NewInt(500000000000000000), MaxQuantity: 2},
		},
	}
}

// buildTestLimits creates payment bounds for a currency
func buildTestLimits(cur domain.Currency) UpdatePaymentLimitsInput {
	return UpdatePaymentLimitsInput{
		Currency:          cur,
		MinAmount:         big.NewInt(100000),
		MaxAmount:         big.NewInt(5000000),
		VerifiedMaxAmount: big.NewInt(100000000),
		Actor:             "did:key:zAdmin",
	}
}

// publishTestEvent creates an event and moves it to published
func publishTestEvent(t *testing.T, store Store, input CreateEventInput) {
	ctx := context.Background()

	_, err := store.CreateEvent(ctx, input)
	require.NoError(t, err)

	_, err = store.TransitionEventStatus(ctx, TransitionEventStatusInput{
		EventID:    input.EventID,
		NextStatus: domain.EventStatusPublished,
		Actor:      input.Organizer,
	})
	require.NoError(t, err)
}

// buyTicket issues one ticket in open mode with no cooldown
func buyTicket(t *testing.T, store Store, eventID, tierID, recipient, payer string, payment *big.Int) *IssueTicketResult {
	result, err := store.IssueTicket(context.Background(), IssueTicketInput{
		EventID:   eventID,
		TierID:    tierID,
		Recipient: recipient,
		Payer:     payer,
		Payment:   payment,
		Now:       time.Now().UTC(),
	})
	require.NoError(t, err)
	return result
}

// transferCall records one invocation of a withdrawal transfer
type transferCall struct {
	currency domain.Currency
	to       string
	amount   *big.Int
}

// recordingTransfer returns a TransferFunc that records calls and succeeds
func recordingTransfer(calls *[]transferCall) TransferFunc {
	return func(ctx context.Context, cur domain.Currency, to string, amount *big.Int) error {
		*calls = append(*calls, transferCall{currency: cur, to: to, amount: amount})
		return nil
	}
}

// =============================================================================
// Test: CreateEvent
// =============================================================================

func testCreateEvent(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("successful create returns draft event with tiers and receipt", func(t *testing.T) {
		input := buildTestEvent("evt-create-1", "0xorganizer0000000000000000000000000000001")

		event, err := store.CreateEvent(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, input.EventID, event.EventID)
		assert.Equal(t, input.Name, event.Name)
		assert.Equal(t, input.Organizer, event.Organizer)
		assert.Equal(t, domain.EventStatusDraft, event.Status)
		assert.Equal(t, domain.CurrencyETH, event.Currency)
		assert.Equal(t, uint8(10), event.CommissionPct)
		assert.Equal(t, 2, event.TierCount)

		// Verify tiers were created with the event
		fetched, err := store.GetEventByEventID(ctx, input.EventID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		require.Len(t, fetched.Tiers, 2)
		assert.Equal(t, "general", fetched.Tiers[0].TierID)
		assert.Equal(t, "100000000000000000", fetched.Tiers[0].Price)
		assert.Equal(t, int64(100), fetched.Tiers[0].MaxQuantity)
		assert.Equal(t, int64(0), fetched.Tiers[0].SoldCount)
		assert.True(t, fetched.Tiers[0].Active)
		assert.Equal(t, "vip", fetched.Tiers[1].TierID)

		// Verify the receipt was appended
		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptEventCreated},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, receipts, 1)

		var payload domain.EventCreatedPayload
		require.NoError(t, json.Unmarshal(receipts[0].Payload, &payload))
		assert.Equal(t, input.EventID, payload.EventID)
		assert.Equal(t, input.Organizer, payload.Organizer)
		assert.Equal(t, 2, payload.TierCount)
	})

	t.Run("duplicate event key is rejected", func(t *testing.T) {
		input := buildTestEvent("evt-create-2", "0xorganizer0000000000000000000000000000001")

		_, err := store.CreateEvent(ctx, input)
		require.NoError(t, err)

		_, err = store.CreateEvent(ctx, input)
		assert.ErrorIs(t, err, domain.ErrEventExists)
	})

	t.Run("get non-existent event returns nil", func(t *testing.T) {
		event, err := store.GetEventByEventID(ctx, "evt-does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, event)
	})
}

// =============================================================================
// Test: GetEventsByFilter
// =============================================================================

func testGetEventsByFilter(t *testing.T, store Store) {
	ctx := context.Background()

	organizerA := "0xorganizerA000000000000000000000000000001"
	organizerB := "0xorganizerB000000000000000000000000000001"

	_, err := store.CreateEvent(ctx, buildTestEvent("evt-filter-a1", organizerA))
	require.NoError(t, err)
	publishTestEvent(t, store, buildTestEvent("evt-filter-a2", organizerA))
	_, err = store.CreateEvent(ctx, buildTestEvent("evt-filter-b1", organizerB))
	require.NoError(t, err)

	t.Run("filter by organizer", func(t *testing.T) {
		events, total, err := store.GetEventsByFilter(ctx, EventFilter{
			Organizer: &organizerA,
			Limit:     10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, events, 2)
		// Newest first
		assert.Equal(t, "evt-filter-a2", events[0].EventID)
		assert.Equal(t, "evt-filter-a1", events[1].EventID)
	})

	t.Run("filter by status", func(t *testing.T) {
		published := domain.EventStatusPublished
		events, total, err := store.GetEventsByFilter(ctx, EventFilter{
			Status: &published,
			Limit:  10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, events, 1)
		assert.Equal(t, "evt-filter-a2", events[0].EventID)
	})

	t.Run("pagination returns total alongside the page", func(t *testing.T) {
		events, total, err := store.GetEventsByFilter(ctx, EventFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Len(t, events, 2)

		events, total, err = store.GetEventsByFilter(ctx, EventFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, events, 1)
		assert.Equal(t, "evt-filter-a1", events[0].EventID)
	})
}

// =============================================================================
// Test: TransitionEventStatus
// =============================================================================

func testTransitionEventStatus(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000002"

	t.Run("draft to published", func(t *testing.T) {
		_, err := store.CreateEvent(ctx, buildTestEvent("evt-trans-1", organizer))
		require.NoError(t, err)

		event, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-1",
			NextStatus: domain.EventStatusPublished,
			Actor:      organizer,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusPublished, event.Status)

		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptEventPublished},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, receipts, 1)
	})

	t.Run("published to completed", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-trans-2", organizer))

		event, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-2",
			NextStatus: domain.EventStatusCompleted,
			Actor:      organizer,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusCompleted, event.Status)
	})

	t.Run("draft cannot jump to completed", func(t *testing.T) {
		_, err := store.CreateEvent(ctx, buildTestEvent("evt-trans-3", organizer))
		require.NoError(t, err)

		_, err = store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-3",
			NextStatus: domain.EventStatusCompleted,
			Actor:      organizer,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-trans-4", organizer))
		_, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-4",
			NextStatus: domain.EventStatusCompleted,
			Actor:      organizer,
		})
		require.NoError(t, err)

		_, err = store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-4",
			NextStatus: domain.EventStatusCancelled,
			Actor:      organizer,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
	})

	t.Run("cancelled event can be reactivated before any refund", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-trans-5", organizer))
		_, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-5",
			NextStatus: domain.EventStatusCancelled,
			Actor:      organizer,
		})
		require.NoError(t, err)

		event, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-5",
			NextStatus: domain.EventStatusPublished,
			Actor:      organizer,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.EventStatusPublished, event.Status)

		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptEventReactivated},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, receipts, 1)
	})

	t.Run("reactivation is refused once a refund was claimed", func(t *testing.T) {
		buyer := "0xbuyertrans6000000000000000000000000000001"
		publishTestEvent(t, store, buildTestEvent("evt-trans-6", organizer))
		buyTicket(t, store, "evt-trans-6", "general", buyer, buyer, big.NewInt(100000000000000000))

		_, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-6",
			NextStatus: domain.EventStatusCancelled,
			Actor:      organizer,
		})
		require.NoError(t, err)

		_, err = store.ClaimRefund(ctx, ClaimRefundInput{EventID: "evt-trans-6", Owner: buyer})
		require.NoError(t, err)

		_, err = store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-6",
			NextStatus: domain.EventStatusPublished,
			Actor:      organizer,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-trans-missing",
			NextStatus: domain.EventStatusPublished,
			Actor:      organizer,
		})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

// =============================================================================
// Test: UpdateEventFee
// =============================================================================

func testUpdateEventFee(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000003"

	t.Run("update changes the split of subsequent issuances", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-fee-1", organizer))

		event, err := store.UpdateEventFee(ctx, UpdateEventFeeInput{
			EventID:       "evt-fee-1",
			CommissionPct: 25,
			Actor:         "did:key:zAdmin",
		})
		require.NoError(t, err)
		assert.Equal(t, uint8(25), event.CommissionPct)

		result := buyTicket(t, store, "evt-fee-1", "general",
			"0xbuyerfee1000000000000000000000000000001",
			"0xbuyerfee1000000000000000000000000000001",
			big.NewInt(100000000000000000))
		assert.Equal(t, "25000000000000000", result.Commission.String())
		assert.Equal(t, "75000000000000000", result.Remainder.String())

		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptFeeUpdated},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, receipts, 1)

		var payload domain.FeeUpdatedPayload
		require.NoError(t, json.Unmarshal(receipts[0].Payload, &payload))
		assert.Equal(t, "evt-fee-1", payload.EventID)
		assert.Equal(t, uint8(25), payload.CommissionPct)
	})

	t.Run("update is allowed on completed events", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-fee-2", organizer))
		_, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-fee-2",
			NextStatus: domain.EventStatusCompleted,
			Actor:      organizer,
		})
		require.NoError(t, err)

		event, err := store.UpdateEventFee(ctx, UpdateEventFeeInput{
			EventID:       "evt-fee-2",
			CommissionPct: 0,
			Actor:         "did:key:zAdmin",
		})
		require.NoError(t, err)
		assert.Equal(t, uint8(0), event.CommissionPct)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := store.UpdateEventFee(ctx, UpdateEventFeeInput{
			EventID:       "evt-fee-missing",
			CommissionPct: 5,
			Actor:         "did:key:zAdmin",
		})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

// =============================================================================
// Test: UpdateTierPrice
// =============================================================================

func testUpdateTierPrice(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000004"

	t.Run("update on a draft event", func(t *testing.T) {
		_, err := store.CreateEvent(ctx, buildTestEvent("evt-price-1", organizer))
		require.NoError(t, err)

		tier, err := store.UpdateTierPrice(ctx, UpdateTierPriceInput{
			EventID: "evt-price-1",
			TierID:  "general",
			Price:   big.NewInt(200000000000000000),
			Actor:   organizer,
		})
		require.NoError(t, err)
		assert.Equal(t, "200000000000000000", tier.Price)

		fetched, err := store.GetTier(ctx, "evt-price-1", "general")
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "200000000000000000", fetched.Price)
	})

	t.Run("update on a published event changes the quoted price", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-price-2", organizer))

		_, err := store.UpdateTierPrice(ctx, UpdateTierPriceInput{
			EventID: "evt-price-2",
			TierID:  "general",
			Price:   big.NewInt(300000000000000000),
			Actor:   organizer,
		})
		require.NoError(t, err)

		// The old price no longer settles
		_, err = store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-price-2",
			TierID:    "general",
			Recipient: "0xbuyerprice200000000000000000000000000001",
			Payer:     "0xbuyerprice200000000000000000000000000001",
			Payment:   big.NewInt(100000000000000000),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

		result := buyTicket(t, store, "evt-price-2", "general",
			"0xbuyerprice200000000000000000000000000001",
			"0xbuyerprice200000000000000000000000000001",
			big.NewInt(300000000000000000))
		assert.Equal(t, "300000000000000000", result.Paid.String())
	})

	t.Run("update is refused on completed events", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-price-3", organizer))
		_, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-price-3",
			NextStatus: domain.EventStatusCompleted,
			Actor:      organizer,
		})
		require.NoError(t, err)

		_, err = store.UpdateTierPrice(ctx, UpdateTierPriceInput{
			EventID: "evt-price-3",
			TierID:  "general",
			Price:   big.NewInt(1),
			Actor:   organizer,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := store.CreateEvent(ctx, buildTestEvent("evt-price-4", organizer))
		require.NoError(t, err)

		_, err = store.UpdateTierPrice(ctx, UpdateTierPriceInput{
			EventID: "evt-price-4",
			TierID:  "backstage",
			Price:   big.NewInt(1),
			Actor:   organizer,
		})
		assert.ErrorIs(t, err, domain.ErrTierNotFound)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := store.UpdateTierPrice(ctx, UpdateTierPriceInput{
			EventID: "evt-price-missing",
			TierID:  "general",
			Price:   big.NewInt(1),
			Actor:   organizer,
		})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

// =============================================================================
// Test: IssueTicket
// =============================================================================

func testIssueTicket(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000005"
	feeRecipient := "0xfee0000000000000000000000000000000000001"

	t.Run("successful issuance splits the payment and mints the holding", func(t *testing.T) {
		buyer := "0xbuyerissue100000000000000000000000000001"
		publishTestEvent(t, store, buildTestEvent("evt-issue-1", organizer))

		result := buyTicket(t, store, "evt-issue-1", "general", buyer, buyer,
			big.NewInt(100000000000000000))
		assert.Equal(t, int64(1), result.SoldCount)
		assert.Equal(t, int64(1), result.HolderQuantity)
		assert.Equal(t, "100000000000000000", result.Paid.String())
		assert.Equal(t, "10000000000000000", result.Commission.String())
		assert.Equal(t, "90000000000000000", result.Remainder.String())
		assert.Equal(t, domain.CurrencyETH, result.Currency)
		assert.Equal(t, domain.NewTicketTokenID("evt-issue-1", "general"), result.TokenID)
		assert.NotEmpty(t, result.ReceiptID)

		// Organizer got the remainder, the commission recipient got the rest
		balances, err := store.GetBalances(ctx, organizer)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "90000000000000000", balances[0].Pending)

		balances, err = store.GetBalances(ctx, feeRecipient)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "10000000000000000", balances[0].Pending)

		// Receipt payload carries the settlement detail
		receipts, _, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptTicketIssued},
			Limit: 1,
		})
		require.NoError(t, err)
		require.Len(t, receipts, 1)

		var payload domain.TicketIssuedPayload
		require.NoError(t, json.Unmarshal(receipts[0].Payload, &payload))
		assert.Equal(t, "evt-issue-1", payload.EventID)
		assert.Equal(t, "general", payload.TierID)
		assert.Equal(t, buyer, payload.Recipient)
		assert.Equal(t, "100000000000000000", payload.PricePaid)
	})

	t.Run("repeat purchase accumulates the holding", func(t *testing.T) {
		buyer := "0xbuyerissue200000000000000000000000000001"
		publishTestEvent(t, store, buildTestEvent("evt-issue-2", organizer))

		buyTicket(t, store, "evt-issue-2", "general", buyer, buyer, big.NewInt(100000000000000000))
		result := buyTicket(t, store, "evt-issue-2", "general", buyer, buyer, big.NewInt(100000000000000000))
		assert.Equal(t, int64(2), result.SoldCount)
		assert.Equal(t, int64(2), result.HolderQuantity)

		records, total, err := store.GetTicketHoldingsByOwner(ctx, buyer, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, records, 1)
		assert.Equal(t, int64(2), records[0].Quantity)
		assert.Equal(t, "200000000000000000", records[0].PaidTotal)
	})

	t.Run("incorrect payment is rejected and nothing settles", func(t *testing.T) {
		buyer := "0xbuyerissue300000000000000000000000000001"
		publishTestEvent(t, store, buildTestEvent("evt-issue-3", organizer))

		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-3",
			TierID:    "general",
			Recipient: buyer,
			Payer:     buyer,
			Payment:   big.NewInt(99999999999999999),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

		_, err = store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-3",
			TierID:    "general",
			Recipient: buyer,
			Payer:     buyer,
			Payment:   nil,
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

		// The failed attempts left no trace
		tier, err := store.GetTier(ctx, "evt-issue-3", "general")
		require.NoError(t, err)
		require.NotNil(t, tier)
		assert.Equal(t, int64(0), tier.SoldCount)

		balances, err := store.GetBalances(ctx, buyer)
		require.NoError(t, err)
		assert.Len(t, balances, 0)
	})

	t.Run("draft event does not sell", func(t *testing.T) {
		_, err := store.CreateEvent(ctx, buildTestEvent("evt-issue-4", organizer))
		require.NoError(t, err)

		_, err = store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-4",
			TierID:    "general",
			Recipient: "0xbuyerissue400000000000000000000000000001",
			Payer:     "0xbuyerissue400000000000000000000000000001",
			Payment:   big.NewInt(100000000000000000),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrEventNotActive)
	})

	t.Run("sales window is enforced", func(t *testing.T) {
		input := buildTestEvent("evt-issue-5", organizer)
		now := time.Now().UTC()
		input.StartTime = now.Add(time.Hour)
		input.EndTime = now.Add(2 * time.Hour)
		publishTestEvent(t, store, input)

		// Before the window opens
		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-5",
			TierID:    "general",
			Recipient: "0xbuyerissue500000000000000000000000000001",
			Payer:     "0xbuyerissue500000000000000000000000000001",
			Payment:   big.NewInt(100000000000000000),
			Now:       now,
		})
		assert.ErrorIs(t, err, domain.ErrEventNotActive)

		// After it closes
		_, err = store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-5",
			TierID:    "general",
			Recipient: "0xbuyerissue500000000000000000000000000001",
			Payer:     "0xbuyerissue500000000000000000000000000001",
			Payment:   big.NewInt(100000000000000000),
			Now:       now.Add(3 * time.Hour),
		})
		assert.ErrorIs(t, err, domain.ErrEventNotActive)

		// The window boundary itself still sells
		result, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-5",
			TierID:    "general",
			Recipient: "0xbuyerissue500000000000000000000000000001",
			Payer:     "0xbuyerissue500000000000000000000000000001",
			Payment:   big.NewInt(100000000000000000),
			Now:       input.EndTime,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.SoldCount)
	})

	t.Run("tier capacity is enforced", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-issue-6", organizer))
		buyer := "0xbuyerissue600000000000000000000000000001"

		buyTicket(t, store, "evt-issue-6", "vip", buyer, buyer, big.NewInt(500000000000000000))
		buyTicket(t, store, "evt-issue-6", "vip", buyer, buyer, big.NewInt(500000000000000000))

		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-6",
			TierID:    "vip",
			Recipient: buyer,
			Payer:     buyer,
			Payment:   big.NewInt(500000000000000000),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrTierSoldOut)
	})

	t.Run("unknown tier", func(t *testing.T) {
		publishTestEvent(t, store, buildTestEvent("evt-issue-7", organizer))

		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-7",
			TierID:    "backstage",
			Recipient: "0xbuyerissue700000000000000000000000000001",
			Payer:     "0xbuyerissue700000000000000000000000000001",
			Payment:   big.NewInt(100000000000000000),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrTierNotFound)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-missing",
			TierID:    "general",
			Recipient: "0xbuyerissue800000000000000000000000000001",
			Payer:     "0xbuyerissue800000000000000000000000000001",
			Payment:   big.NewInt(100000000000000000),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})

	t.Run("zero commission leaves everything with the organizer", func(t *testing.T) {
		freeOrganizer := "0xorganizerzero00000000000000000000000001"
		input := buildTestEvent("evt-issue-8", freeOrganizer)
		input.CommissionPct = 0
		input.CommissionRecipient = ""
		publishTestEvent(t, store, input)

		result := buyTicket(t, store, "evt-issue-8", "general",
			"0xbuyerissue900000000000000000000000000001",
			"0xbuyerissue900000000000000000000000000001",
			big.NewInt(100000000000000000))
		assert.Equal(t, "0", result.Commission.String())
		assert.Equal(t, "100000000000000000", result.Remainder.String())

		balances, err := store.GetBalances(ctx, freeOrganizer)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "100000000000000000", balances[0].Pending)
	})

	t.Run("usdc prices settle in minor units", func(t *testing.T) {
		usdcOrganizer := "0xorganizerusdc00000000000000000000000001"
		input := buildTestEvent("evt-issue-9", usdcOrganizer)
		input.Currency = domain.CurrencyUSDC
		// 5 USDC in canonical units
		input.Tiers = []CreateTierInput{
			{TierID: "general", Price: big.NewInt(5000000000000000000), MaxQuantity: 10},
		}
		publishTestEvent(t, store, input)

		buyer := "0xbuyerusdc0000000000000000000000000000001"

		// Canonical units are not a valid payment
		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-9",
			TierID:    "general",
			Recipient: buyer,
			Payer:     buyer,
			Payment:   big.NewInt(5000000000000000000),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

		result := buyTicket(t, store, "evt-issue-9", "general", buyer, buyer, big.NewInt(5000000))
		assert.Equal(t, "5000000", result.Paid.String())
		assert.Equal(t, "500000", result.Commission.String())
		assert.Equal(t, "4500000", result.Remainder.String())

		balances, err := store.GetBalances(ctx, usdcOrganizer)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, domain.CurrencyUSDC, balances[0].Currency)
		assert.Equal(t, "4500000", balances[0].Pending)
	})

	t.Run("dust price below one minor unit does not sell", func(t *testing.T) {
		input := buildTestEvent("evt-issue-10", organizer)
		input.Currency = domain.CurrencyUSDC
		// Truncates to zero at 6 decimals
		input.Tiers = []CreateTierInput{
			{TierID: "general", Price: big.NewInt(100000000000), MaxQuantity: 10},
		}
		publishTestEvent(t, store, input)

		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-issue-10",
			TierID:    "general",
			Recipient: "0xbuyerdust0000000000000000000000000000001",
			Payer:     "0xbuyerdust0000000000000000000000000000001",
			Payment:   big.NewInt(0),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrAmountTooSmall)
	})
}

// =============================================================================
// Test: Authorization Nonces
// =============================================================================

func testAuthorizationNonces(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000006"
	publishTestEvent(t, store, buildTestEvent("evt-nonce-1", organizer))

	signer := "0xsigner00000000000000000000000000000000001"
	price := big.NewInt(100000000000000000)

	buy := func(nonce uint64, payment *big.Int) error {
		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-nonce-1",
			TierID:    "general",
			Recipient: signer,
			Payer:     signer,
			Payment:   payment,
			Nonce:     &NonceConsumption{Signer: signer, Nonce: nonce},
			Now:       time.Now().UTC(),
		})
		return err
	}

	t.Run("counter is nil before first use", func(t *testing.T) {
		counter, err := store.GetSignerNonce(ctx, signer)
		require.NoError(t, err)
		assert.Nil(t, counter)
	})

	t.Run("first use must carry nonce zero", func(t *testing.T) {
		err := buy(5, price)
		assert.ErrorIs(t, err, domain.ErrInvalidAuthorization)

		require.NoError(t, buy(0, price))

		counter, err := store.GetSignerNonce(ctx, signer)
		require.NoError(t, err)
		require.NotNil(t, counter)
		assert.Equal(t, uint64(1), counter.Nonce)
		assert.False(t, counter.Revoked)
	})

	t.Run("consumed nonce cannot be replayed", func(t *testing.T) {
		err := buy(0, price)
		assert.ErrorIs(t, err, domain.ErrInvalidAuthorization)

		require.NoError(t, buy(1, price))
	})

	t.Run("failed settlement does not consume the nonce", func(t *testing.T) {
		err := buy(2, big.NewInt(1))
		assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

		counter, err := store.GetSignerNonce(ctx, signer)
		require.NoError(t, err)
		require.NotNil(t, counter)
		assert.Equal(t, uint64(2), counter.Nonce)

		// The same authorization still settles
		require.NoError(t, buy(2, price))
	})

	t.Run("revocation blocks further settlements", func(t *testing.T) {
		err := store.InvalidateNonce(ctx, InvalidateNonceInput{Signer: signer, Actor: "did:key:zAdmin"})
		require.NoError(t, err)

		counter, err := store.GetSignerNonce(ctx, signer)
		require.NoError(t, err)
		require.NotNil(t, counter)
		assert.True(t, counter.Revoked)

		err = buy(3, price)
		assert.ErrorIs(t, err, domain.ErrInvalidAuthorization)
	})

	t.Run("double revocation is rejected", func(t *testing.T) {
		err := store.InvalidateNonce(ctx, InvalidateNonceInput{Signer: signer, Actor: "did:key:zAdmin"})
		assert.ErrorIs(t, err, domain.ErrAlreadySet)
	})

	t.Run("revoking an unused signer blocks its first use", func(t *testing.T) {
		fresh := "0xsigner00000000000000000000000000000000002"
		err := store.InvalidateNonce(ctx, InvalidateNonceInput{Signer: fresh, Actor: "did:key:zAdmin"})
		require.NoError(t, err)

		_, err = store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-nonce-1",
			TierID:    "general",
			Recipient: fresh,
			Payer:     fresh,
			Payment:   price,
			Nonce:     &NonceConsumption{Signer: fresh, Nonce: 0},
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAuthorization)
	})
}

// =============================================================================
// Test: Settlement Cooldown
// =============================================================================

func testSettlementCooldown(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000007"
	publishTestEvent(t, store, buildTestEvent("evt-cool-1", organizer))
	require.NoError(t, store.UpdatePaymentLimits(ctx, buildTestLimits(domain.CurrencyUSDC)))

	price := big.NewInt(100000000000000000)
	base := time.Now().UTC()

	buyAt := func(payer string, at time.Time, payment *big.Int) error {
		_, err := store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-cool-1",
			TierID:    "general",
			Recipient: payer,
			Payer:     payer,
			Payment:   payment,
			Cooldown:  time.Minute,
			Now:       at,
		})
		return err
	}

	t.Run("second settlement inside the window is rejected", func(t *testing.T) {
		payer := "0xpayercool100000000000000000000000000001"
		require.NoError(t, buyAt(payer, base, price))

		err := buyAt(payer, base.Add(10*time.Second), price)
		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})

	t.Run("other payers are unaffected", func(t *testing.T) {
		err := buyAt("0xpayercool200000000000000000000000000001", base.Add(10*time.Second), price)
		require.NoError(t, err)
	})

	t.Run("the window passes", func(t *testing.T) {
		payer := "0xpayercool100000000000000000000000000001"
		require.NoError(t, buyAt(payer, base.Add(2*time.Minute), price))
	})

	t.Run("failed settlements do not start a window", func(t *testing.T) {
		payer := "0xpayercool300000000000000000000000000001"
		err := buyAt(payer, base, big.NewInt(1))
		assert.ErrorIs(t, err, domain.ErrIncorrectPayment)

		require.NoError(t, buyAt(payer, base.Add(time.Second), price))
	})

	t.Run("the window spans issuance and direct settlement", func(t *testing.T) {
		payer := "0xpayercool400000000000000000000000000001"
		require.NoError(t, buyAt(payer, base, price))

		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    payer,
			Payee:    "0xpayeecool000000000000000000000000000001",
			Amount:   big.NewInt(1000000),
			Currency: domain.CurrencyUSDC,
			Cooldown: time.Minute,
			Now:      base.Add(30 * time.Second),
		})
		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})
}

// =============================================================================
// Test: SettlePayment
// =============================================================================

func testSettlePayment(t *testing.T, store Store) {
	ctx := context.Background()
	feeRecipient := "0xfee0000000000000000000000000000000000002"

	t.Run("unconfigured currency is rejected", func(t *testing.T) {
		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    "0xpayersettle1000000000000000000000000001",
			Payee:    "0xpayeesettle1000000000000000000000000001",
			Amount:   big.NewInt(1000000),
			Currency: domain.CurrencyUSDC,
			Now:      time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidLimitConfig)
	})

	require.NoError(t, store.UpdatePaymentLimits(ctx, buildTestLimits(domain.CurrencyUSDC)))

	t.Run("successful settlement credits payee and commission recipient", func(t *testing.T) {
		payee := "0xpayeesettle2000000000000000000000000001"
		result, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:               "0xpayersettle2000000000000000000000000001",
			Payee:               payee,
			Amount:              big.NewInt(1000000),
			Currency:            domain.CurrencyUSDC,
			CommissionPct:       5,
			CommissionRecipient: feeRecipient,
			Now:                 time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, "50000", result.Commission.String())
		assert.Equal(t, "950000", result.Remainder.String())
		assert.NotEmpty(t, result.ReceiptID)

		balances, err := store.GetBalances(ctx, payee)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "950000", balances[0].Pending)

		balances, err = store.GetBalances(ctx, feeRecipient)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "50000", balances[0].Pending)

		receipts, _, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptPaymentSettled},
			Limit: 1,
		})
		require.NoError(t, err)
		require.Len(t, receipts, 1)

		var payload domain.PaymentSettledPayload
		require.NoError(t, json.Unmarshal(receipts[0].Payload, &payload))
		assert.Equal(t, payee, payload.Payee)
		assert.Equal(t, "1000000", payload.Amount)
		assert.Equal(t, "50000", payload.Commission)
	})

	t.Run("amounts at the bounds settle", func(t *testing.T) {
		for _, amount := range []int64{100000, 5000000} {
			_, err := store.SettlePayment(ctx, SettlePaymentInput{
				Payer:    "0xpayersettle3000000000000000000000000001",
				Payee:    "0xpayeesettle3000000000000000000000000001",
				Amount:   big.NewInt(amount),
				Currency: domain.CurrencyUSDC,
				Now:      time.Now().UTC(),
			})
			require.NoError(t, err)
		}
	})

	t.Run("amount below the minimum is rejected", func(t *testing.T) {
		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    "0xpayersettle4000000000000000000000000001",
			Payee:    "0xpayeesettle4000000000000000000000000001",
			Amount:   big.NewInt(50000),
			Currency: domain.CurrencyUSDC,
			Now:      time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrBelowMinimum)
	})

	t.Run("amount above the maximum is rejected for unverified payees", func(t *testing.T) {
		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    "0xpayersettle5000000000000000000000000001",
			Payee:    "0xpayeesettle5000000000000000000000000001",
			Amount:   big.NewInt(6000000),
			Currency: domain.CurrencyUSDC,
			Now:      time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrAboveMaximum)
	})

	t.Run("verification unlocks the higher ceiling", func(t *testing.T) {
		payee := "0xpayeesettle6000000000000000000000000001"
		require.NoError(t, store.SetVerificationStatus(ctx, SetVerificationInput{
			Address:  payee,
			Verified: true,
			Actor:    "did:key:zAdmin",
		}))

		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    "0xpayersettle6000000000000000000000000001",
			Payee:    payee,
			Amount:   big.NewInt(6000000),
			Currency: domain.CurrencyUSDC,
			Now:      time.Now().UTC(),
		})
		require.NoError(t, err)

		// The verified ceiling still binds
		_, err = store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    "0xpayersettle6000000000000000000000000001",
			Payee:    payee,
			Amount:   big.NewInt(200000000),
			Currency: domain.CurrencyUSDC,
			Now:      time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrAboveMaximum)
	})

	t.Run("zero commission skips the commission credit", func(t *testing.T) {
		payee := "0xpayeesettle7000000000000000000000000001"
		result, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    "0xpayersettle7000000000000000000000000001",
			Payee:    payee,
			Amount:   big.NewInt(1000000),
			Currency: domain.CurrencyUSDC,
			Now:      time.Now().UTC(),
		})
		require.NoError(t, err)
		assert.Equal(t, "0", result.Commission.String())

		balances, err := store.GetBalances(ctx, payee)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "1000000", balances[0].Pending)
	})

	t.Run("commission without a recipient is rejected", func(t *testing.T) {
		payee := "0xpayeesettle8000000000000000000000000001"
		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:         "0xpayersettle8000000000000000000000000001",
			Payee:         payee,
			Amount:        big.NewInt(1000000),
			Currency:      domain.CurrencyUSDC,
			CommissionPct: 10,
			Now:           time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)

		// The payee credit rolled back with the transaction
		balances, err := store.GetBalances(ctx, payee)
		require.NoError(t, err)
		assert.Len(t, balances, 0)
	})

	t.Run("payee as its own commission recipient keeps the full amount", func(t *testing.T) {
		payee := "0xpayeesettle9000000000000000000000000001"
		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:               "0xpayersettle9000000000000000000000000001",
			Payee:               payee,
			Amount:              big.NewInt(1000000),
			Currency:            domain.CurrencyUSDC,
			CommissionPct:       10,
			CommissionRecipient: payee,
			Now:                 time.Now().UTC(),
		})
		require.NoError(t, err)

		balances, err := store.GetBalances(ctx, payee)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "1000000", balances[0].Pending)
	})
}

// =============================================================================
// Test: WithdrawBalance
// =============================================================================

func testWithdrawBalance(t *testing.T, store Store) {
	ctx := context.Background()
	require.NoError(t, store.UpdatePaymentLimits(ctx, buildTestLimits(domain.CurrencyETH)))
	require.NoError(t, store.UpdatePaymentLimits(ctx, buildTestLimits(domain.CurrencyUSDC)))

	payer := "0xpayerwithdraw000000000000000000000000001"

	settle := func(payee string, cur domain.Currency, amount int64) {
		_, err := store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    payer,
			Payee:    payee,
			Amount:   big.NewInt(amount),
			Currency: cur,
			Now:      time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	t.Run("withdrawal pays out all currencies and zeroes the ledger", func(t *testing.T) {
		owner := "0xownerwithdraw100000000000000000000000001"
		settle(owner, domain.CurrencyETH, 3000000)
		settle(owner, domain.CurrencyUSDC, 1000000)

		var calls []transferCall
		result, err := store.WithdrawBalance(ctx, WithdrawInput{
			Owner:    owner,
			Transfer: recordingTransfer(&calls),
		})
		require.NoError(t, err)
		assert.Equal(t, "3000000", result.ETHAmount.String())
		assert.Equal(t, "1000000", result.USDCAmount.String())
		assert.NotEmpty(t, result.ReceiptID)

		require.Len(t, calls, 2)
		assert.Equal(t, domain.CurrencyETH, calls[0].currency)
		assert.Equal(t, owner, calls[0].to)
		assert.Equal(t, "3000000", calls[0].amount.String())
		assert.Equal(t, domain.CurrencyUSDC, calls[1].currency)
		assert.Equal(t, "1000000", calls[1].amount.String())

		balances, err := store.GetBalances(ctx, owner)
		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, "0", balances[0].Pending)
		assert.Equal(t, "3000000", balances[0].WithdrawnTotal)
		assert.Equal(t, "0", balances[1].Pending)
		assert.Equal(t, "1000000", balances[1].WithdrawnTotal)
	})

	t.Run("second withdrawal finds nothing", func(t *testing.T) {
		owner := "0xownerwithdraw100000000000000000000000001"
		var calls []transferCall
		_, err := store.WithdrawBalance(ctx, WithdrawInput{
			Owner:    owner,
			Transfer: recordingTransfer(&calls),
		})
		assert.ErrorIs(t, err, domain.ErrNothingToWithdraw)
		assert.Len(t, calls, 0)
	})

	t.Run("withdrawn totals accumulate across withdrawals", func(t *testing.T) {
		owner := "0xownerwithdraw100000000000000000000000001"
		settle(owner, domain.CurrencyUSDC, 200000)

		var calls []transferCall
		result, err := store.WithdrawBalance(ctx, WithdrawInput{
			Owner:    owner,
			Transfer: recordingTransfer(&calls),
		})
		require.NoError(t, err)
		assert.Equal(t, "0", result.ETHAmount.String())
		assert.Equal(t, "200000", result.USDCAmount.String())

		balances, err := store.GetBalances(ctx, owner)
		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, "1200000", balances[1].WithdrawnTotal)
	})

	t.Run("unknown owner has nothing to withdraw", func(t *testing.T) {
		var calls []transferCall
		_, err := store.WithdrawBalance(ctx, WithdrawInput{
			Owner:    "0xownerwithdraw900000000000000000000000001",
			Transfer: recordingTransfer(&calls),
		})
		assert.ErrorIs(t, err, domain.ErrNothingToWithdraw)
	})

	t.Run("transfer failure rolls the whole withdrawal back", func(t *testing.T) {
		owner := "0xownerwithdraw200000000000000000000000001"
		settle(owner, domain.CurrencyETH, 2000000)
		settle(owner, domain.CurrencyUSDC, 500000)

		var calls []transferCall
		_, err := store.WithdrawBalance(ctx, WithdrawInput{
			Owner: owner,
			Transfer: func(ctx context.Context, cur domain.Currency, to string, amount *big.Int) error {
				calls = append(calls, transferCall{currency: cur, to: to, amount: amount})
				if cur == domain.CurrencyUSDC {
					return errors.New("rpc unavailable")
				}
				return nil
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransferFailed)
		// The first transfer went out before the second failed
		assert.Len(t, calls, 2)

		// Both ledger rows keep their pending amounts
		balances, err := store.GetBalances(ctx, owner)
		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, "2000000", balances[0].Pending)
		assert.Equal(t, "0", balances[0].WithdrawnTotal)
		assert.Equal(t, "500000", balances[1].Pending)
		assert.Equal(t, "0", balances[1].WithdrawnTotal)
	})
}

// =============================================================================
// Test: ClaimRefund
// =============================================================================

func testClaimRefund(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000008"
	buyer := "0xbuyerrefund000000000000000000000000000001"
	price := big.NewInt(100000000000000000)

	publishTestEvent(t, store, buildTestEvent("evt-refund-1", organizer))
	buyTicket(t, store, "evt-refund-1", "general", buyer, buyer, price)
	buyTicket(t, store, "evt-refund-1", "general", buyer, buyer, price)

	t.Run("refund against a live event is refused", func(t *testing.T) {
		_, err := store.ClaimRefund(ctx, ClaimRefundInput{EventID: "evt-refund-1", Owner: buyer})
		assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
	})

	_, err := store.TransitionEventStatus(ctx, TransitionEventStatusInput{
		EventID:    "evt-refund-1",
		NextStatus: domain.EventStatusCancelled,
		Actor:      organizer,
	})
	require.NoError(t, err)

	t.Run("claim credits exactly what was paid", func(t *testing.T) {
		result, err := store.ClaimRefund(ctx, ClaimRefundInput{EventID: "evt-refund-1", Owner: buyer})
		require.NoError(t, err)
		assert.Equal(t, "200000000000000000", result.Amount.String())
		assert.Equal(t, domain.CurrencyETH, result.Currency)
		assert.NotEmpty(t, result.ReceiptID)

		balances, err := store.GetBalances(ctx, buyer)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "200000000000000000", balances[0].Pending)

		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptRefundClaimed},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, receipts, 1)

		var payload domain.RefundClaimedPayload
		require.NoError(t, json.Unmarshal(receipts[0].Payload, &payload))
		assert.Equal(t, "evt-refund-1", payload.EventID)
		assert.Equal(t, buyer, payload.Owner)
		assert.Equal(t, "200000000000000000", payload.Amount)
	})

	t.Run("second claim is refused", func(t *testing.T) {
		_, err := store.ClaimRefund(ctx, ClaimRefundInput{EventID: "evt-refund-1", Owner: buyer})
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	})

	t.Run("owner without holdings has nothing to refund", func(t *testing.T) {
		_, err := store.ClaimRefund(ctx, ClaimRefundInput{
			EventID: "evt-refund-1",
			Owner:   "0xbuyerrefund900000000000000000000000000001",
		})
		assert.ErrorIs(t, err, domain.ErrNothingToRefund)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := store.ClaimRefund(ctx, ClaimRefundInput{EventID: "evt-refund-missing", Owner: buyer})
		assert.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}

// =============================================================================
// Test: GetTicketHoldingsByOwner
// =============================================================================

func testGetTicketHoldingsByOwner(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000009"
	owner := "0xholder0000000000000000000000000000000001"

	publishTestEvent(t, store, buildTestEvent("evt-hold-1", organizer))

	usdcInput := buildTestEvent("evt-hold-2", organizer)
	usdcInput.Currency = domain.CurrencyUSDC
	usdcInput.Tiers = []CreateTierInput{
		{TierID: "general", Price: big.NewInt(5000000000000000000), MaxQuantity: 10},
	}
	publishTestEvent(t, store, usdcInput)

	buyTicket(t, store, "evt-hold-1", "general", owner, owner, big.NewInt(100000000000000000))
	buyTicket(t, store, "evt-hold-2", "general", owner, owner, big.NewInt(5000000))

	t.Run("holdings carry their event and tier context", func(t *testing.T) {
		records, total, err := store.GetTicketHoldingsByOwner(ctx, owner, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, records, 2)

		assert.Equal(t, "evt-hold-1", records[0].EventID)
		assert.Equal(t, "general", records[0].TierID)
		assert.Equal(t, domain.NewTicketTokenID("evt-hold-1", "general").String(), records[0].TokenID)
		assert.Equal(t, int64(1), records[0].Quantity)
		assert.Equal(t, "100000000000000000", records[0].PaidTotal)
		assert.Equal(t, domain.CurrencyETH, records[0].Currency)

		assert.Equal(t, "evt-hold-2", records[1].EventID)
		assert.Equal(t, domain.CurrencyUSDC, records[1].Currency)
		assert.Equal(t, "5000000", records[1].PaidTotal)
	})

	t.Run("pagination returns total alongside the page", func(t *testing.T) {
		records, total, err := store.GetTicketHoldingsByOwner(ctx, owner, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, records, 1)

		records, total, err = store.GetTicketHoldingsByOwner(ctx, owner, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, records, 1)
		assert.Equal(t, "evt-hold-2", records[0].EventID)
	})

	t.Run("owner without holdings gets an empty page", func(t *testing.T) {
		records, total, err := store.GetTicketHoldingsByOwner(ctx,
			"0xholder9990000000000000000000000000000001", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), total)
		assert.Len(t, records, 0)
	})
}

// =============================================================================
// Test: GetBalances
// =============================================================================

func testGetBalances(t *testing.T, store Store) {
	ctx := context.Background()
	require.NoError(t, store.UpdatePaymentLimits(ctx, buildTestLimits(domain.CurrencyETH)))
	require.NoError(t, store.UpdatePaymentLimits(ctx, buildTestLimits(domain.CurrencyUSDC)))

	t.Run("unknown owner has no rows", func(t *testing.T) {
		balances, err := store.GetBalances(ctx, "0xownerbal9900000000000000000000000000001")
		require.NoError(t, err)
		assert.Len(t, balances, 0)
	})

	t.Run("rows are ordered by currency", func(t *testing.T) {
		owner := "0xownerbal1000000000000000000000000000001"
		for _, cur := range []domain.Currency{domain.CurrencyUSDC, domain.CurrencyETH} {
			_, err := store.SettlePayment(ctx, SettlePaymentInput{
				Payer:    "0xpayerbal1000000000000000000000000000001",
				Payee:    owner,
				Amount:   big.NewInt(1000000),
				Currency: cur,
				Now:      time.Now().UTC(),
			})
			require.NoError(t, err)
		}

		balances, err := store.GetBalances(ctx, owner)
		require.NoError(t, err)
		require.Len(t, balances, 2)
		assert.Equal(t, domain.CurrencyETH, balances[0].Currency)
		assert.Equal(t, domain.CurrencyUSDC, balances[1].Currency)
	})
}

// =============================================================================
// Test: ListExpiredPublishedEvents
// =============================================================================

func testListExpiredPublishedEvents(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000010"
	now := time.Now().UTC()

	older := buildTestEvent("evt-expired-1", organizer)
	older.StartTime = now.Add(-4 * time.Hour)
	older.EndTime = now.Add(-2 * time.Hour)
	publishTestEvent(t, store, older)

	newer := buildTestEvent("evt-expired-2", organizer)
	newer.StartTime = now.Add(-3 * time.Hour)
	newer.EndTime = now.Add(-time.Hour)
	publishTestEvent(t, store, newer)

	// Still selling, must not be listed
	publishTestEvent(t, store, buildTestEvent("evt-expired-3", organizer))

	// Expired but still draft, must not be listed
	stale := buildTestEvent("evt-expired-4", organizer)
	stale.EndTime = now.Add(-time.Hour)
	_, err := store.CreateEvent(ctx, stale)
	require.NoError(t, err)

	t.Run("lists only published events past their end time", func(t *testing.T) {
		events, err := store.ListExpiredPublishedEvents(ctx, now, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		// Oldest ending first
		assert.Equal(t, "evt-expired-1", events[0].EventID)
		assert.Equal(t, "evt-expired-2", events[1].EventID)
	})

	t.Run("limit caps the batch", func(t *testing.T) {
		events, err := store.ListExpiredPublishedEvents(ctx, now, 1)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "evt-expired-1", events[0].EventID)
	})
}

// =============================================================================
// Test: Engine Pause
// =============================================================================

func testEnginePause(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000011"
	admin := "did:key:zAdmin"

	t.Run("engine starts unpaused", func(t *testing.T) {
		paused, err := store.IsEnginePaused(ctx)
		require.NoError(t, err)
		assert.False(t, paused)
	})

	t.Run("pause blocks financial operations", func(t *testing.T) {
		require.NoError(t, store.SetEnginePaused(ctx, SetPausedInput{Paused: true, Actor: admin}))

		paused, err := store.IsEnginePaused(ctx)
		require.NoError(t, err)
		assert.True(t, paused)

		_, err = store.IssueTicket(ctx, IssueTicketInput{
			EventID:   "evt-pause-any",
			TierID:    "general",
			Recipient: "0xbuyerpause0000000000000000000000000000001",
			Payer:     "0xbuyerpause0000000000000000000000000000001",
			Payment:   big.NewInt(1),
			Now:       time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrEnginePaused)

		_, err = store.SettlePayment(ctx, SettlePaymentInput{
			Payer:    "0xpayerpause0000000000000000000000000000001",
			Payee:    "0xpayeepause0000000000000000000000000000001",
			Amount:   big.NewInt(1000000),
			Currency: domain.CurrencyUSDC,
			Now:      time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrEnginePaused)

		var calls []transferCall
		_, err = store.WithdrawBalance(ctx, WithdrawInput{
			Owner:    "0xownerpause0000000000000000000000000000001",
			Transfer: recordingTransfer(&calls),
		})
		assert.ErrorIs(t, err, domain.ErrEnginePaused)

		_, err = store.ClaimRefund(ctx, ClaimRefundInput{
			EventID: "evt-pause-any",
			Owner:   "0xbuyerpause0000000000000000000000000000001",
		})
		assert.ErrorIs(t, err, domain.ErrEnginePaused)
	})

	t.Run("lifecycle and admin operations keep working while paused", func(t *testing.T) {
		_, err := store.CreateEvent(ctx, buildTestEvent("evt-pause-1", organizer))
		require.NoError(t, err)

		_, err = store.TransitionEventStatus(ctx, TransitionEventStatusInput{
			EventID:    "evt-pause-1",
			NextStatus: domain.EventStatusPublished,
			Actor:      organizer,
		})
		require.NoError(t, err)
	})

	t.Run("pausing a paused engine is rejected", func(t *testing.T) {
		err := store.SetEnginePaused(ctx, SetPausedInput{Paused: true, Actor: admin})
		assert.ErrorIs(t, err, domain.ErrAlreadySet)
	})

	t.Run("unpause restores financial operations", func(t *testing.T) {
		require.NoError(t, store.SetEnginePaused(ctx, SetPausedInput{Paused: false, Actor: admin}))

		result := buyTicket(t, store, "evt-pause-1", "general",
			"0xbuyerpause1000000000000000000000000000001",
			"0xbuyerpause1000000000000000000000000000001",
			big.NewInt(100000000000000000))
		assert.Equal(t, int64(1), result.SoldCount)

		// Both flips left receipts
		_, pausedTotal, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptEnginePaused},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), pausedTotal)

		_, unpausedTotal, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptEngineUnpaused},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), unpausedTotal)
	})

	t.Run("unpausing an unpaused engine is rejected", func(t *testing.T) {
		err := store.SetEnginePaused(ctx, SetPausedInput{Paused: false, Actor: admin})
		assert.ErrorIs(t, err, domain.ErrAlreadySet)
	})
}

// =============================================================================
// Test: Payment Limits
// =============================================================================

func testPaymentLimits(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("unconfigured currency returns nil", func(t *testing.T) {
		limit, err := store.GetPaymentLimit(ctx, domain.CurrencyETH)
		require.NoError(t, err)
		assert.Nil(t, limit)
	})

	t.Run("update creates the bounds", func(t *testing.T) {
		require.NoError(t, store.UpdatePaymentLimits(ctx, buildTestLimits(domain.CurrencyETH)))

		limit, err := store.GetPaymentLimit(ctx, domain.CurrencyETH)
		require.NoError(t, err)
		require.NotNil(t, limit)
		assert.Equal(t, "100000", limit.MinAmount)
		assert.Equal(t, "5000000", limit.MaxAmount)
		assert.Equal(t, "100000000", limit.VerifiedMaxAmount)
	})

	t.Run("update overwrites existing bounds", func(t *testing.T) {
		input := buildTestLimits(domain.CurrencyETH)
		input.MinAmount = big.NewInt(200000)
		require.NoError(t, store.UpdatePaymentLimits(ctx, input))

		limit, err := store.GetPaymentLimit(ctx, domain.CurrencyETH)
		require.NoError(t, err)
		require.NotNil(t, limit)
		assert.Equal(t, "200000", limit.MinAmount)

		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptLimitsUpdated},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, receipts, 2)

		var payload domain.LimitsUpdatedPayload
		require.NoError(t, json.Unmarshal(receipts[0].Payload, &payload))
		assert.Equal(t, "200000", payload.MinAmount)
	})
}

// =============================================================================
// Test: Verification
// =============================================================================

func testVerification(t *testing.T, store Store) {
	ctx := context.Background()
	address := "0xverified000000000000000000000000000000001"
	admin := "did:key:zAdmin"

	t.Run("addresses start unverified", func(t *testing.T) {
		verified, err := store.IsVerified(ctx, address)
		require.NoError(t, err)
		assert.False(t, verified)
	})

	t.Run("grant and revoke", func(t *testing.T) {
		require.NoError(t, store.SetVerificationStatus(ctx, SetVerificationInput{
			Address: address, Verified: true, Actor: admin,
		}))

		verified, err := store.IsVerified(ctx, address)
		require.NoError(t, err)
		assert.True(t, verified)

		require.NoError(t, store.SetVerificationStatus(ctx, SetVerificationInput{
			Address: address, Verified: false, Actor: admin,
		}))

		verified, err = store.IsVerified(ctx, address)
		require.NoError(t, err)
		assert.False(t, verified)
	})

	t.Run("setting the current status is rejected", func(t *testing.T) {
		err := store.SetVerificationStatus(ctx, SetVerificationInput{
			Address: address, Verified: false, Actor: admin,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadySet)

		require.NoError(t, store.SetVerificationStatus(ctx, SetVerificationInput{
			Address: address, Verified: true, Actor: admin,
		}))
		err = store.SetVerificationStatus(ctx, SetVerificationInput{
			Address: address, Verified: true, Actor: admin,
		})
		assert.ErrorIs(t, err, domain.ErrAlreadySet)
	})
}

// =============================================================================
// Test: Receipts
// =============================================================================

func testReceipts(t *testing.T, store Store) {
	ctx := context.Background()
	organizer := "0xorganizer0000000000000000000000000000012"
	buyer := "0xbuyerreceipt00000000000000000000000000001"

	publishTestEvent(t, store, buildTestEvent("evt-receipt-1", organizer))
	buyTicket(t, store, "evt-receipt-1", "general", buyer, buyer, big.NewInt(100000000000000000))

	t.Run("receipts list newest first with totals", func(t *testing.T) {
		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		require.Len(t, receipts, 3)
		assert.Equal(t, domain.ReceiptTicketIssued, receipts[0].Kind)
		assert.Equal(t, domain.ReceiptEventPublished, receipts[1].Kind)
		assert.Equal(t, domain.ReceiptEventCreated, receipts[2].Kind)

		// ULID receipt identifiers
		for _, receipt := range receipts {
			assert.Len(t, receipt.ReceiptID, 26)
		}
	})

	t.Run("kind filter narrows the list", func(t *testing.T) {
		receipts, total, err := store.GetReceipts(ctx, ReceiptFilter{
			Kinds: []domain.ReceiptKind{domain.ReceiptEventCreated, domain.ReceiptEventPublished},
			Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, receipts, 2)
	})

	t.Run("cursor pagination walks in insertion order", func(t *testing.T) {
		all, err := store.GetReceiptsAfterCursor(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, domain.ReceiptEventCreated, all[0].Kind)
		assert.Less(t, all[0].Cursor, all[1].Cursor)
		assert.Less(t, all[1].Cursor, all[2].Cursor)

		rest, err := store.GetReceiptsAfterCursor(ctx, all[0].Cursor, 10)
		require.NoError(t, err)
		require.Len(t, rest, 2)
		assert.Equal(t, all[1].Cursor, rest[0].Cursor)

		tail, err := store.GetReceiptsAfterCursor(ctx, all[2].Cursor, 10)
		require.NoError(t, err)
		assert.Len(t, tail, 0)
	})
}

// =============================================================================
// Test: KeyValueStore
// =============================================================================

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("set and get key-value", func(t *testing.T) {
		key := "test:key1"
		value := "value1"

		err := store.SetKeyValue(ctx, key, value)
		require.NoError(t, err)

		retrievedValue, err := store.GetKeyValue(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, retrievedValue)
	})

	t.Run("set empty value", func(t *testing.T) {
		key := "test:key2"
		err := store.SetKeyValue(ctx, key, "")
		require.NoError(t, err)

		retrievedValue, err := store.GetKeyValue(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "", retrievedValue)
	})

	t.Run("get non-existent key returns empty string", func(t *testing.T) {
		value, err := store.GetKeyValue(ctx, "nonexistent:key")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("update existing key", func(t *testing.T) {
		key := "test:key3"

		err := store.SetKeyValue(ctx, key, "value1")
		require.NoError(t, err)

		err = store.SetKeyValue(ctx, key, "value2")
		require.NoError(t, err)

		value, err := store.GetKeyValue(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "value2", value)
	})
}

// RunStoreTests runs the full suite against a store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateEvent", testCreateEvent},
		{"GetEventsByFilter", testGetEventsByFilter},
		{"TransitionEventStatus", testTransitionEventStatus},
		{"UpdateEventFee", testUpdateEventFee},
		{"UpdateTierPrice", testUpdateTierPrice},
		{"IssueTicket", testIssueTicket},
		{"AuthorizationNonces", testAuthorizationNonces},
		{"SettlementCooldown", testSettlementCooldown},
		{"SettlePayment", testSettlePayment},
		{"WithdrawBalance", testWithdrawBalance},
		{"ClaimRefund", testClaimRefund},
		{"GetTicketHoldingsByOwner", testGetTicketHoldingsByOwner},
		{"GetBalances", testGetBalances},
		{"ListExpiredPublishedEvents", testListExpiredPublishedEvents},
		{"EnginePause", testEnginePause},
		{"PaymentLimits", testPaymentLimits},
		{"Verification", testVerification},
		{"Receipts", testReceipts},
		{"KeyValueStore", testKeyValueStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
