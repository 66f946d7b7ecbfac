package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller lacks the capability for an operation
	ErrUnauthorized = errors.New("caller not authorized")

	// ErrEnginePaused is returned when a mutating operation hits a paused engine
	ErrEnginePaused = errors.New("engine is paused")

	// ErrInvalidAddress is returned when an address is malformed or zero
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidAmount is returned when an amount is malformed or negative
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency is returned when a currency is not supported
	ErrInvalidCurrency = errors.New("unsupported currency")

	// ErrInvalidPercentage is returned when a percentage is outside [0, 100]
	ErrInvalidPercentage = errors.New("percentage out of range")

	// ErrInvalidTimeRange is returned when a sales window is empty or inverted
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidTierConfig is returned when an event's tier list is malformed
	ErrInvalidTierConfig = errors.New("invalid tier configuration")

	// ErrPriceOutOfRange is returned when a tier price is outside the configured bounds
	ErrPriceOutOfRange = errors.New("price out of range")

	// ErrInvalidLimitConfig is returned when payment limits are not strictly increasing
	ErrInvalidLimitConfig = errors.New("invalid payment limit configuration")

	// ErrEventExists is returned when creating an event whose key is already taken
	ErrEventExists = errors.New("event already exists")

	// ErrEventNotFound is returned when an event is not found
	ErrEventNotFound = errors.New("event not found")

	// ErrTierNotFound is returned when an event tier is not found
	ErrTierNotFound = errors.New("tier not found")

	// ErrEventNotActive is returned when issuance hits an event that is not
	// published or whose sales window is closed
	ErrEventNotActive = errors.New("event not active")

	// ErrInvalidStatusChange is returned on a lifecycle transition the state machine forbids
	ErrInvalidStatusChange = errors.New("invalid status change")

	// ErrTierSoldOut is returned when a tier has no remaining supply
	ErrTierSoldOut = errors.New("tier sold out")

	// ErrIncorrectPayment is returned when the submitted payment does not equal the quoted price
	ErrIncorrectPayment = errors.New("incorrect payment amount")

	// ErrExpiredAuthorization is returned when an authorization deadline has passed
	ErrExpiredAuthorization = errors.New("authorization expired")

	// ErrInvalidAuthorization is returned when a signature does not recover the
	// trusted signer or the nonce does not match
	ErrInvalidAuthorization = errors.New("invalid authorization")

	// ErrAmountTooSmall is returned when a non-zero canonical amount truncates
	// to zero in the target currency's precision
	ErrAmountTooSmall = errors.New("amount too small after scaling")

	// ErrBelowMinimum is returned when an amount is below the currency's minimum
	ErrBelowMinimum = errors.New("amount below minimum")

	// ErrAboveMaximum is returned when an amount exceeds the applicable maximum
	ErrAboveMaximum = errors.New("amount above maximum")

	// ErrRateLimited is returned when a payer is still within the settlement cooldown
	ErrRateLimited = errors.New("rate limited")

	// ErrTransferFailed is returned when the external transfer primitive reports failure
	ErrTransferFailed = errors.New("transfer failed")

	// ErrNothingToWithdraw is returned when a withdrawal finds no pending balance
	ErrNothingToWithdraw = errors.New("nothing to withdraw")

	// ErrNothingToRefund is returned when a refund claim finds no holdings to refund
	ErrNothingToRefund = errors.New("nothing to refund")

	// ErrAlreadyClaimed is returned when a refund was already claimed for the event
	ErrAlreadyClaimed = errors.New("refund already claimed")

	// ErrAlreadySet is returned when an idempotent admin toggle is already in the requested state
	ErrAlreadySet = errors.New("already in requested state")
)
