// Package settlement implements the payment settlement engine: payment-bound
// validation, signed-authorization enforcement, commission splitting, and
// pooled balance withdrawal. Every monetary mutation runs inside one store
// transaction; the engine layers policy on top of it (authorization mode,
// cooldown, admin capability) and never touches the ledger directly.
package settlement

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/authz"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/store"
)

// Config holds the engine's settlement policy
type Config struct {
	// Mode selects signed or open authorization
	Mode authz.Mode
	// Cooldown is the per-payer window between successful settlements.
	// Zero disables the cooldown.
	Cooldown time.Duration
}

// TransferClient executes external payouts during withdrawal. Implementations
// must be synchronous: a nil return means the funds left the platform.
//
//go:generate mockgen -source=engine.go -destination=../mocks/settlement.go -package=mocks -mock_names=TransferClient=MockTransferClient,Engine=MockSettlementEngine
type TransferClient interface {
	// Transfer sends amount (minor units) of currency to the recipient
	Transfer(ctx context.Context, currency domain.Currency, to string, amount *big.Int) error
}

// SettleRequest describes a direct payment to settle
type SettleRequest struct {
	Payer               string
	Payee               string
	Amount              *big.Int
	Currency            domain.Currency
	CommissionPct       uint8
	CommissionRecipient string
	// Authorization is required in signed mode and ignored in open mode
	Authorization *authz.Authorization
}

// UpdateLimitsRequest replaces a currency's payment bounds, all in minor units
type UpdateLimitsRequest struct {
	Currency          domain.Currency
	MinAmount         *big.Int
	MaxAmount         *big.Int
	VerifiedMaxAmount *big.Int
}

// Engine is the payment settlement service
type Engine interface {
	// QuoteAndValidate checks an amount against the currency's configured
	// bounds for the given payee. Read-only; the same check runs again
	// inside the settlement transaction.
	QuoteAndValidate(ctx context.Context, amount *big.Int, currency domain.Currency, payee string) error

	// Settle validates, authorizes, and commits a direct payment
	Settle(ctx context.Context, req SettleRequest) (*store.SettlePaymentResult, error)

	// Withdraw pays out the owner's pending balances in all currencies
	Withdraw(ctx context.Context, owner string) (*store.WithdrawResult, error)

	// SetVerificationStatus grants or revokes an address's verified status
	SetVerificationStatus(ctx context.Context, caller domain.Caller, address string, verified bool) error

	// UpdatePaymentLimits replaces a currency's payment bounds
	UpdatePaymentLimits(ctx context.Context, caller domain.Caller, req UpdateLimitsRequest) error

	// InvalidateNonce permanently revokes a signer's authorizations
	InvalidateNonce(ctx context.Context, caller domain.Caller, signer string) error

	// Pause suspends all financial operations
	Pause(ctx context.Context, caller domain.Caller) error

	// Unpause resumes financial operations
	Unpause(ctx context.Context, caller domain.Caller) error

	// Paused reports whether the engine is paused
	Paused(ctx context.Context) (bool, error)
}

type engine struct {
	config   Config
	store    store.Store
	verifier authz.Verifier
	transfer TransferClient
	clock    adapter.Clock
}

// NewEngine creates a settlement engine
func NewEngine(
	config Config,
	st store.Store,
	verifier authz.Verifier,
	transfer TransferClient,
	clock adapter.Clock,
) Engine {
	return &engine{
		config:   config,
		store:    st,
		verifier: verifier,
		transfer: transfer,
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

func requireAdmin(caller domain.Caller) error {
	if !caller.Admin {
		return fmt.Errorf("%w: caller %s lacks the admin capability", domain.ErrUnauthorized, caller.Address)
	}
	return nil
}

// QuoteAndValidate checks an amount against the currency's configured bounds
func (e *engine) QuoteAndValidate(ctx context.Context, amount *big.Int, currency domain.Currency, payee string) error {
	if !domain.IsValidCurrency(currency) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, currency)
	}
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}

	limit, err := e.store.GetPaymentLimit(ctx, currency)
	if err != nil {
		return fmt.Errorf("failed to get payment limit: %w", err)
	}
	if limit == nil {
		return fmt.Errorf("%w: no limits configured for %s", domain.ErrInvalidLimitConfig, currency)
	}

	minAmount, err := domain.ParseAmount(limit.MinAmount)
	if err != nil {
		return fmt.Errorf("failed to parse min amount: %w", err)
	}
	maxAmount, err := domain.ParseAmount(limit.MaxAmount)
	if err != nil {
		return fmt.Errorf("failed to parse max amount: %w", err)
	}
	verifiedMax, err := domain.ParseAmount(limit.VerifiedMaxAmount)
	if err != nil {
		return fmt.Errorf("failed to parse verified max amount: %w", err)
	}

	verified, err := e.store.IsVerified(ctx, domain.NormalizeAddress(payee))
	if err != nil {
		return fmt.Errorf("failed to check verification status: %w", err)
	}

	ceiling := maxAmount
	if verified {
		ceiling = verifiedMax
	}

	if amount.Cmp(minAmount) < 0 {
		return fmt.Errorf("%w: %s is below the %s minimum %s", domain.ErrBelowMinimum, amount, currency, minAmount)
	}
	if amount.Cmp(ceiling) > 0 {
		return fmt.Errorf("%w: %s exceeds the %s ceiling %s", domain.ErrAboveMaximum, amount, currency, ceiling)
	}

	return nil
}

// Authorize runs the mode-dependent authorization step shared by direct
// settlement and ticket issuance. In signed mode it verifies the signature,
// binds the payload to the concrete payment, and returns the nonce to consume
// inside the enclosing transaction. In open mode it returns nil so no nonce
// is touched.
func Authorize(ctx context.Context, mode authz.Mode, verifier authz.Verifier, auth *authz.Authorization, binding authz.Binding) (*store.NonceConsumption, error) {
	if mode == authz.ModeOpen {
		return nil, nil
	}

	if auth == nil {
		return nil, fmt.Errorf("%w: authorization required", domain.ErrInvalidAuthorization)
	}

	signer, err := verifier.Verify(ctx, *auth)
	if err != nil {
		return nil, err
	}

	if err := auth.Payload.Matches(binding); err != nil {
		return nil, err
	}

	return &store.NonceConsumption{
		Signer: signer.Hex(),
		Nonce:  auth.Payload.Nonce,
	}, nil
}

// Settle validates, authorizes, and commits a direct payment
func (e *engine) Settle(ctx context.Context, req SettleRequest) (*store.SettlePaymentResult, error) {
	payer, err := validAddress(req.Payer)
	if err != nil {
		return nil, err
	}
	payee, err := validAddress(req.Payee)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidCurrency(req.Currency) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, req.Currency)
	}
	if req.Amount == nil || req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: settlement amount must be positive", domain.ErrInvalidAmount)
	}
	if req.CommissionPct > domain.MAX_COMMISSION_PCT {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidPercentage, req.CommissionPct)
	}

	commissionRecipient := ""
	if req.CommissionPct > 0 {
		commissionRecipient, err = validAddress(req.CommissionRecipient)
		if err != nil {
			return nil, err
		}
	}

	nonce, err := Authorize(ctx, e.config.Mode, e.verifier, req.Authorization, authz.Binding{
		Payer:     payer,
		Recipient: payee,
		Currency:  req.Currency,
		Amount:    req.Amount,
	})
	if err != nil {
		return nil, err
	}

	result, err := e.store.SettlePayment(ctx, store.SettlePaymentInput{
		Payer:               payer,
		Payee:               payee,
		Amount:              req.Amount,
		Currency:            req.Currency,
		CommissionPct:       req.CommissionPct,
		CommissionRecipient: commissionRecipient,
		Nonce:               nonce,
		Cooldown:            e.config.Cooldown,
		Now:                 e.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Payment settled",
		zap.String("payer", payer),
		zap.String("payee", payee),
		zap.String("currency", string(req.Currency)),
		zap.String("amount", req.Amount.String()),
		zap.String("commission", result.Commission.String()),
		zap.String("receipt_id", result.ReceiptID))

	return result, nil
}

// Withdraw pays out the owner's pending balances in all currencies
func (e *engine) Withdraw(ctx context.Context, owner string) (*store.WithdrawResult, error) {
	normalized, err := validAddress(owner)
	if err != nil {
		return nil, err
	}

	result, err := e.store.WithdrawBalance(ctx, store.WithdrawInput{
		Owner: normalized,
		Transfer: func(ctx context.Context, currency domain.Currency, to string, amount *big.Int) error {
			return e.transfer.Transfer(ctx, currency, to, amount)
		},
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Balance withdrawn",
		zap.String("owner", normalized),
		zap.String("eth_amount", result.ETHAmount.String()),
		zap.String("usdc_amount", result.USDCAmount.String()),
		zap.String("receipt_id", result.ReceiptID))

	return result, nil
}

// SetVerificationStatus grants or revokes an address's verified status
func (e *engine) SetVerificationStatus(ctx context.Context, caller domain.Caller, address string, verified bool) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	normalized, err := validAddress(address)
	if err != nil {
		return err
	}

	return e.store.SetVerificationStatus(ctx, store.SetVerificationInput{
		Address:  normalized,
		Verified: verified,
		Actor:    caller.Address,
	})
}

// UpdatePaymentLimits replaces a currency's payment bounds
func (e *engine) UpdatePaymentLimits(ctx context.Context, caller domain.Caller, req UpdateLimitsRequest) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if !domain.IsValidCurrency(req.Currency) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, req.Currency)
	}
	if req.MinAmount == nil || req.MaxAmount == nil || req.VerifiedMaxAmount == nil {
		return fmt.Errorf("%w: all three bounds are required", domain.ErrInvalidLimitConfig)
	}
	if req.MinAmount.Sign() <= 0 {
		return fmt.Errorf("%w: minimum must be positive", domain.ErrInvalidLimitConfig)
	}
	if req.MinAmount.Cmp(req.MaxAmount) >= 0 || req.MaxAmount.Cmp(req.VerifiedMaxAmount) >= 0 {
		return fmt.Errorf("%w: bounds must satisfy min < max < verified max", domain.ErrInvalidLimitConfig)
	}

	return e.store.UpdatePaymentLimits(ctx, store.UpdatePaymentLimitsInput{
		Currency:          req.Currency,
		MinAmount:         req.MinAmount,
		MaxAmount:         req.MaxAmount,
		VerifiedMaxAmount: req.VerifiedMaxAmount,
		Actor:             caller.Address,
	})
}

// InvalidateNonce permanently revokes a signer's authorizations
func (e *engine) InvalidateNonce(ctx context.Context, caller domain.Caller, signer string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	normalized, err := validAddress(signer)
	if err != nil {
		return err
	}

	return e.store.InvalidateNonce(ctx, store.InvalidateNonceInput{
		Signer: normalized,
		Actor:  caller.Address,
	})
}

// Pause suspends all financial operations
func (e *engine) Pause(ctx context.Context, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return e.store.SetEnginePaused(ctx, store.SetPausedInput{Paused: true, Actor: caller.Address})
}

// Unpause resumes financial operations
func (e *engine) Unpause(ctx context.Context, caller domain.Caller) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return e.store.SetEnginePaused(ctx, store.SetPausedInput{Paused: false, Actor: caller.Address})
}

// Paused reports whether the engine is paused
func (e *engine) Paused(ctx context.Context) (bool, error) {
	return e.store.IsEnginePaused(ctx)
}
