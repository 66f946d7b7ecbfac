package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-boxoffice/internal/api/middleware"
	"github.com/feral-file/ff-boxoffice/internal/api/rest/dto"
	apierrors "github.com/feral-file/ff-boxoffice/internal/api/shared/errors"
	"github.com/feral-file/ff-boxoffice/internal/boxoffice"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/ratelimit"
	"github.com/feral-file/ff-boxoffice/internal/settlement"
	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// CreateEvent creates an event; the authenticated caller becomes the organizer
	// POST /api/v1/events
	CreateEvent(c *gin.Context)

	// GetEvent retrieves an event with its tiers
	// GET /api/v1/events/:id
	GetEvent(c *gin.Context)

	// ListEvents retrieves events with optional filters
	// GET /api/v1/events?status=<status>&organizer=<address>&limit=<limit>&offset=<offset>
	ListEvents(c *gin.Context)

	// GetTier retrieves one tier of an event
	// GET /api/v1/events/:id/tiers/:tier
	GetTier(c *gin.Context)

	// PublishEvent opens a draft event for sale (requires authentication)
	// POST /api/v1/events/:id/publish
	PublishEvent(c *gin.Context)

	// CancelEvent cancels a published event (requires authentication)
	// POST /api/v1/events/:id/cancel
	CancelEvent(c *gin.Context)

	// CompleteEvent closes a published event permanently (requires authentication)
	// POST /api/v1/events/:id/complete
	CompleteEvent(c *gin.Context)

	// ReactivateEvent reopens a cancelled event (requires authentication)
	// POST /api/v1/events/:id/reactivate
	ReactivateEvent(c *gin.Context)

	// UpdateTierPrice changes a tier's unit price (requires authentication)
	// PATCH /api/v1/events/:id/tiers/:tier/price
	UpdateTierPrice(c *gin.Context)

	// IssueTicket validates, authorizes, and commits a paid ticket purchase
	// (ingress rate-limited per payer)
	// POST /api/v1/tickets
	IssueTicket(c *gin.Context)

	// SettlePayment validates, authorizes, and commits a direct payment
	// (ingress rate-limited per payer)
	// POST /api/v1/payments
	SettlePayment(c *gin.Context)

	// Withdraw pays out the owner's pending balances in all currencies
	// POST /api/v1/withdrawals
	Withdraw(c *gin.Context)

	// ClaimRefund credits the owner's paid amounts back for a cancelled event
	// POST /api/v1/refunds
	ClaimRefund(c *gin.Context)

	// GetBalances retrieves the owner's pending balances across currencies
	// GET /api/v1/balances/:owner
	GetBalances(c *gin.Context)

	// GetTicketHoldings retrieves the owner's holdings with event context
	// GET /api/v1/tickets/:owner?limit=<limit>&offset=<offset>
	GetTicketHoldings(c *gin.Context)

	// ListReceipts retrieves audit journal entries, newest first
	// GET /api/v1/receipts?kind=<kind1>&kind=<kind2>&limit=<limit>&offset=<offset>
	ListReceipts(c *gin.Context)

	// UpdatePaymentLimits replaces a currency's payment bounds (admin)
	// PUT /api/v1/admin/limits/:currency
	UpdatePaymentLimits(c *gin.Context)

	// UpdateEventFee changes an event's commission percentage (admin)
	// PUT /api/v1/admin/events/:id/fee
	UpdateEventFee(c *gin.Context)

	// SetVerified grants an address the verified payment ceiling (admin)
	// POST /api/v1/admin/verified/:address
	SetVerified(c *gin.Context)

	// RemoveVerified revokes an address's verified status (admin)
	// DELETE /api/v1/admin/verified/:address
	RemoveVerified(c *gin.Context)

	// InvalidateNonce permanently revokes a signer's authorizations (admin)
	// POST /api/v1/admin/nonces/:address/invalidate
	InvalidateNonce(c *gin.Context)

	// Pause suspends all financial operations (admin)
	// POST /api/v1/admin/pause
	Pause(c *gin.Context)

	// Unpause resumes financial operations (admin)
	// POST /api/v1/admin/unpause
	Unpause(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	boxoffice  boxoffice.Service
	settlement settlement.Engine
	limiter    ratelimit.Limiter
}

// NewHandler creates a new REST API handler. The limiter may be nil, which
// disables ingress rate limiting.
func NewHandler(box boxoffice.Service, engine settlement.Engine, limiter ratelimit.Limiter) Handler {
	return &handler{
		boxoffice:  box,
		settlement: engine,
		limiter:    limiter,
	}
}

// requireCaller extracts the authenticated caller or responds 401. The auth
// middleware guarantees the caller on protected routes.
func requireCaller(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError("Authentication required"))
	}
	return caller, ok
}

// allowIngress checks the payer against the ingress limiter. Limiter errors
// fail open: transport protection must not take payments down with it.
func (h *handler) allowIngress(c *gin.Context, payer string) bool {
	if h.limiter == nil {
		return true
	}

	// Lowercase the key so hex casing never splits a payer's budget
	decision, err := h.limiter.Allow(c.Request.Context(), strings.ToLower(payer))
	if err != nil {
		logger.WarnCtx(c.Request.Context(), "Ingress rate limit check failed",
			zap.Error(err),
			zap.String("payer", payer),
		)
		return true
	}
	if !decision.Allowed {
		respondRateLimited(c, decision.RetryAfter)
		return false
	}
	return true
}

// CreateEvent creates an event with all of its tiers
func (h *handler) CreateEvent(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		respondValidationError(c, err)
		return
	}

	event, err := h.boxoffice.CreateEvent(c.Request.Context(), caller, input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEventToDTO(event))
}

// GetEvent retrieves an event with its tiers
func (h *handler) GetEvent(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		respondBadRequest(c, "Event ID is required")
		return
	}

	event, err := h.boxoffice.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToDTO(event))
}

// ListEvents retrieves events with optional filters
func (h *handler) ListEvents(c *gin.Context) {
	queryParams, err := ParseListEventsQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	events, total, err := h.boxoffice.ListEvents(c.Request.Context(), queryParams.ToFilter())
	if err != nil {
		respondInternalError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, dto.MapEventListToDTO(events, queryParams.Offset, total))
}

// GetTier retrieves one tier of an event
func (h *handler) GetTier(c *gin.Context) {
	eventID := c.Param("id")
	tierID := c.Param("tier")
	if eventID == "" || tierID == "" {
		respondBadRequest(c, "Event ID and tier ID are required")
		return
	}

	tier, err := h.boxoffice.GetTier(c.Request.Context(), eventID, tierID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapTierToDTO(eventID, tier))
}

// transitionEvent runs one lifecycle transition for the authenticated caller
func (h *handler) transitionEvent(
	c *gin.Context,
	transition func(caller domain.Caller, eventID string) (*schema.Event, error),
) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	event, err := transition(caller, c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToDTO(event))
}

// PublishEvent opens a draft event for sale
func (h *handler) PublishEvent(c *gin.Context) {
	h.transitionEvent(c, func(caller domain.Caller, eventID string) (*schema.Event, error) {
		return h.boxoffice.PublishEvent(c.Request.Context(), caller, eventID)
	})
}

// CancelEvent cancels a published event, opening it for refund claims
func (h *handler) CancelEvent(c *gin.Context) {
	h.transitionEvent(c, func(caller domain.Caller, eventID string) (*schema.Event, error) {
		return h.boxoffice.CancelEvent(c.Request.Context(), caller, eventID)
	})
}

// CompleteEvent closes a published event permanently
func (h *handler) CompleteEvent(c *gin.Context) {
	h.transitionEvent(c, func(caller domain.Caller, eventID string) (*schema.Event, error) {
		return h.boxoffice.CompleteEvent(c.Request.Context(), caller, eventID)
	})
}

// ReactivateEvent reopens a cancelled event
func (h *handler) ReactivateEvent(c *gin.Context) {
	h.transitionEvent(c, func(caller domain.Caller, eventID string) (*schema.Event, error) {
		return h.boxoffice.ReactivateEvent(c.Request.Context(), caller, eventID)
	})
}

// UpdateTierPrice changes a tier's unit price
func (h *handler) UpdateTierPrice(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	eventID := c.Param("id")
	tierID := c.Param("tier")

	var req dto.UpdateTierPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}

	price, err := domain.ParseAmount(req.Price)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	tier, err := h.boxoffice.UpdateTierPrice(c.Request.Context(), caller, eventID, tierID, price)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapTierToDTO(eventID, tier))
}

// IssueTicket validates, authorizes, and commits a paid ticket purchase
func (h *handler) IssueTicket(c *gin.Context) {
	var req dto.IssueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	if !h.allowIngress(c, req.Payer) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.boxoffice.IssueTicket(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated,
		dto.MapIssueTicketResultToDTO(req.EventID, req.TierID, req.Recipient, req.Payer, result))
}

// SettlePayment validates, authorizes, and commits a direct payment
func (h *handler) SettlePayment(c *gin.Context) {
	var req dto.SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	if !h.allowIngress(c, req.Payer) {
		return
	}

	input, err := req.ToInput()
	if err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.settlement.Settle(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK,
		dto.MapSettlePaymentResultToDTO(req.Payer, req.Payee, input.Amount, input.Currency, result))
}

// Withdraw pays out the owner's pending balances in all currencies
func (h *handler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.settlement.Withdraw(c.Request.Context(), req.Owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapWithdrawResultToDTO(req.Owner, result))
}

// ClaimRefund credits the owner's paid amounts back for a cancelled event
func (h *handler) ClaimRefund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.boxoffice.ClaimRefund(c.Request.Context(), req.EventID, req.Owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapClaimRefundResultToDTO(req.EventID, req.Owner, result))
}

// GetBalances retrieves the owner's pending balances across currencies
func (h *handler) GetBalances(c *gin.Context) {
	owner := c.Param("owner")

	balances, err := h.boxoffice.GetBalances(c.Request.Context(), owner)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response := dto.BalanceListResponse{Balances: make([]dto.BalanceResponse, 0, len(balances))}
	for i := range balances {
		response.Balances = append(response.Balances, *dto.MapBalanceToDTO(&balances[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetTicketHoldings retrieves the owner's holdings with event context
func (h *handler) GetTicketHoldings(c *gin.Context) {
	owner := c.Param("owner")

	queryParams, err := ParseListHoldingsQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	holdings, total, err := h.boxoffice.GetTicketHoldings(
		c.Request.Context(), owner, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response := dto.HoldingListResponse{
		Holdings: make([]dto.HoldingResponse, 0, len(holdings)),
		Offset:   queryParams.Offset,
		Total:    total,
	}
	for i := range holdings {
		response.Holdings = append(response.Holdings, *dto.MapHoldingToDTO(&holdings[i]))
	}

	c.JSON(http.StatusOK, response)
}

// ListReceipts retrieves audit journal entries, newest first
func (h *handler) ListReceipts(c *gin.Context) {
	queryParams, err := ParseListReceiptsQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	receipts, total, err := h.boxoffice.GetReceipts(c.Request.Context(), queryParams.ToFilter())
	if err != nil {
		respondInternalError(c, err, "Failed to list receipts")
		return
	}

	response := dto.ReceiptListResponse{
		Receipts: make([]dto.ReceiptResponse, 0, len(receipts)),
		Offset:   queryParams.Offset,
		Total:    total,
	}
	for i := range receipts {
		response.Receipts = append(response.Receipts, *dto.MapReceiptToDTO(&receipts[i]))
	}

	c.JSON(http.StatusOK, response)
}

// UpdatePaymentLimits replaces a currency's payment bounds
func (h *handler) UpdatePaymentLimits(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	cur := domain.Currency(c.Param("currency"))
	if !domain.IsValidCurrency(cur) {
		respondValidationError(c, fmt.Errorf("unsupported currency: %s", cur))
		return
	}

	var req dto.UpdateLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}

	input, err := req.ToInput(cur)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.settlement.UpdatePaymentLimits(c.Request.Context(), caller, input); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateEventFee changes an event's commission percentage
func (h *handler) UpdateEventFee(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateEventFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}

	event, err := h.boxoffice.UpdateEventFee(c.Request.Context(), caller, c.Param("id"), req.CommissionPct)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToDTO(event))
}

// SetVerified grants an address the verified payment ceiling
func (h *handler) SetVerified(c *gin.Context) {
	h.setVerification(c, true)
}

// RemoveVerified revokes an address's verified status
func (h *handler) RemoveVerified(c *gin.Context) {
	h.setVerification(c, false)
}

func (h *handler) setVerification(c *gin.Context, verified bool) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	err := h.settlement.SetVerificationStatus(c.Request.Context(), caller, c.Param("address"), verified)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// InvalidateNonce permanently revokes a signer's authorizations
func (h *handler) InvalidateNonce(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.settlement.InvalidateNonce(c.Request.Context(), caller, c.Param("address")); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Pause suspends all financial operations
func (h *handler) Pause(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.settlement.Pause(c.Request.Context(), caller); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EngineStateResponse{Paused: true})
}

// Unpause resumes financial operations
func (h *handler) Unpause(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.settlement.Unpause(c.Request.Context(), caller); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EngineStateResponse{Paused: false})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-boxoffice-api",
	})
}
