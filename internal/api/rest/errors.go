package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-boxoffice/internal/api/shared/errors"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error. Errors that are
// already API errors pass through without double wrapping.
func respondValidationError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusUnprocessableEntity, apiErr)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(err.Error()))
}

// respondInternalError responds with an internal server error and logs it.
// The wire message stays generic; the cause goes to the log only.
func respondInternalError(c *gin.Context, err error, message string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondRateLimited responds with 429 and a Retry-After hint
func respondRateLimited(c *gin.Context, retryAfter time.Duration) {
	if retryAfter > 0 {
		seconds := int((retryAfter + time.Second - 1) / time.Second)
		c.Header("Retry-After", strconv.Itoa(seconds))
	}
	c.JSON(http.StatusTooManyRequests, apierrors.NewRateLimitedError("Too many requests"))
}

// respondDomainError maps domain sentinel errors onto stable error codes and
// HTTP statuses. Anything unrecognized becomes a logged 500 with a generic
// message so internals never leak.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidPercentage),
		errors.Is(err, domain.ErrInvalidTimeRange),
		errors.Is(err, domain.ErrInvalidTierConfig),
		errors.Is(err, domain.ErrPriceOutOfRange),
		errors.Is(err, domain.ErrInvalidLimitConfig),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, domain.ErrAboveMaximum),
		errors.Is(err, domain.ErrIncorrectPayment):
		c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(err.Error()))

	case errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrTierNotFound):
		c.JSON(http.StatusNotFound, apierrors.NewNotFoundError("Not found", err.Error()))

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError("Forbidden", err.Error()))

	case errors.Is(err, domain.ErrInvalidAuthorization):
		c.JSON(http.StatusForbidden,
			apierrors.New(apierrors.ErrCodeInvalidAuthorization, "Invalid authorization", err.Error()))

	case errors.Is(err, domain.ErrExpiredAuthorization):
		c.JSON(http.StatusForbidden,
			apierrors.New(apierrors.ErrCodeAuthorizationExpired, "Authorization expired", err.Error()))

	case errors.Is(err, domain.ErrEventExists),
		errors.Is(err, domain.ErrEventNotActive),
		errors.Is(err, domain.ErrInvalidStatusChange),
		errors.Is(err, domain.ErrTierSoldOut),
		errors.Is(err, domain.ErrNothingToWithdraw),
		errors.Is(err, domain.ErrNothingToRefund),
		errors.Is(err, domain.ErrAlreadyClaimed),
		errors.Is(err, domain.ErrAlreadySet):
		c.JSON(http.StatusConflict, apierrors.NewConflictError("Conflict", err.Error()))

	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests,
			apierrors.NewRateLimitedError("Rate limited", err.Error()))

	case errors.Is(err, domain.ErrEnginePaused):
		c.JSON(http.StatusServiceUnavailable,
			apierrors.New(apierrors.ErrCodeEnginePaused, "Engine is paused", err.Error()))

	case errors.Is(err, domain.ErrTransferFailed):
		// Payout failures need operator attention
		logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusBadGateway,
			apierrors.New(apierrors.ErrCodeTransferFailed, "Transfer failed", err.Error()))

	default:
		respondInternalError(c, err, "Internal server error")
	}
}
