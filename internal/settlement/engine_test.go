package settlement_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-boxoffice/internal/authz"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/mocks"
	"github.com/feral-file/ff-boxoffice/internal/settlement"
	"github.com/feral-file/ff-boxoffice/internal/store"
	"github.com/feral-file/ff-boxoffice/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const (
	testPayer     = "0x1111111111111111111111111111111111111111"
	testPayee     = "0x2222222222222222222222222222222222222222"
	testFeeWallet = "0x3333333333333333333333333333333333333333"
	testSigner    = "0x4444444444444444444444444444444444444444"
)

var (
	testNow      = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	testAdmin    = domain.Caller{Address: "did:key:zAdminOps", Admin: true}
	testNonAdmin = domain.Caller{Address: testPayer}
)

// testEngineMocks contains all the mocks needed for testing the settlement engine
type testEngineMocks struct {
	ctrl       *gomock.Controller
	store      *mocks.MockStore
	verifier   *mocks.MockVerifier
	transfer   *mocks.MockTransferClient
	clock      *mocks.MockClock
	subject    settlement.Engine
	testConfig settlement.Config
}

// setupTest creates all the mocks and the settlement engine for testing
func setupTest(t *testing.T, mode authz.Mode) *testEngineMocks {
	ctrl := gomock.NewController(t)

	mockStore := mocks.NewMockStore(ctrl)
	mockVerifier := mocks.NewMockVerifier(ctrl)
	mockTransfer := mocks.NewMockTransferClient(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	testConfig := settlement.Config{
		Mode:     mode,
		Cooldown: time.Minute,
	}

	subject := settlement.NewEngine(testConfig, mockStore, mockVerifier, mockTransfer, mockClock)

	return &testEngineMocks{
		ctrl:       ctrl,
		store:      mockStore,
		verifier:   mockVerifier,
		transfer:   mockTransfer,
		clock:      mockClock,
		subject:    subject,
		testConfig: testConfig,
	}
}

// tearDownTest cleans up the test mocks
func tearDownTest(tm *testEngineMocks) {
	tm.ctrl.Finish()
}

func buildSettleRequest() settlement.SettleRequest {
	return settlement.SettleRequest{
		Payer:               testPayer,
		Payee:               testPayee,
		Amount:              big.NewInt(500_000),
		Currency:            domain.CurrencyUSDC,
		CommissionPct:       10,
		CommissionRecipient: testFeeWallet,
	}
}

// buildAuthorization wraps the request in a payload the mocked verifier will
// accept. The signature bytes are never inspected because Verify is mocked.
func buildAuthorization(req settlement.SettleRequest, nonce uint64) authz.Authorization {
	return authz.Authorization{
		Payload: authz.Payload{
			Domain:    "boxoffice.feralfile.com",
			ChainID:   11155111,
			Payer:     req.Payer,
			Recipient: req.Payee,
			Currency:  req.Currency,
			Amount:    req.Amount.String(),
			Nonce:     nonce,
			Deadline:  testNow.Add(time.Hour).Unix(),
		},
		Signature: "0x" + strings.Repeat("ab", 65),
	}
}

func TestEngine_Settle_OpenMode(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	req := buildSettleRequest()

	tm.clock.EXPECT().Now().Return(testNow)
	tm.store.EXPECT().
		SettlePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.SettlePaymentInput) (*store.SettlePaymentResult, error) {
			assert.Equal(t, testPayer, input.Payer)
			assert.Equal(t, testPayee, input.Payee)
			assert.Equal(t, domain.CurrencyUSDC, input.Currency)
			assert.Equal(t, "500000", input.Amount.String())
			assert.Equal(t, uint8(10), input.CommissionPct)
			assert.Equal(t, testFeeWallet, input.CommissionRecipient)
			assert.Nil(t, input.Nonce)
			assert.Equal(t, time.Minute, input.Cooldown)
			assert.Equal(t, testNow, input.Now)

			return &store.SettlePaymentResult{
				ReceiptID:  "01JC5ZK7Q2M4N6P8R9S0T1V2W3",
				Commission: big.NewInt(50_000),
				Remainder:  big.NewInt(450_000),
				SettledAt:  testNow,
			}, nil
		})

	result, err := tm.subject.Settle(context.Background(), req)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "01JC5ZK7Q2M4N6P8R9S0T1V2W3", result.ReceiptID)
	assert.Equal(t, "50000", result.Commission.String())
	assert.Equal(t, "450000", result.Remainder.String())
}

func TestEngine_Settle_SignedMode(t *testing.T) {
	tm := setupTest(t, authz.ModeSigned)
	defer tearDownTest(tm)

	req := buildSettleRequest()
	auth := buildAuthorization(req, 7)
	req.Authorization = &auth

	tm.verifier.EXPECT().
		Verify(gomock.Any(), auth).
		Return(common.HexToAddress(testSigner), nil)
	tm.clock.EXPECT().Now().Return(testNow)
	tm.store.EXPECT().
		SettlePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.SettlePaymentInput) (*store.SettlePaymentResult, error) {
			require.NotNil(t, input.Nonce)
			assert.Equal(t, common.HexToAddress(testSigner).Hex(), input.Nonce.Signer)
			assert.Equal(t, uint64(7), input.Nonce.Nonce)

			return &store.SettlePaymentResult{
				ReceiptID:  "01JC5ZK7Q2M4N6P8R9S0T1V2W4",
				Commission: big.NewInt(50_000),
				Remainder:  big.NewInt(450_000),
				SettledAt:  testNow,
			}, nil
		})

	result, err := tm.subject.Settle(context.Background(), req)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "01JC5ZK7Q2M4N6P8R9S0T1V2W4", result.ReceiptID)
}

func TestEngine_Settle_SignedModeMissingAuthorization(t *testing.T) {
	tm := setupTest(t, authz.ModeSigned)
	defer tearDownTest(tm)

	req := buildSettleRequest()

	result, err := tm.subject.Settle(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidAuthorization)
	assert.Nil(t, result)
}

func TestEngine_Settle_SignedModeRejectedSignature(t *testing.T) {
	tm := setupTest(t, authz.ModeSigned)
	defer tearDownTest(tm)

	req := buildSettleRequest()
	auth := buildAuthorization(req, 7)
	req.Authorization = &auth

	tm.verifier.EXPECT().
		Verify(gomock.Any(), auth).
		Return(common.Address{}, fmt.Errorf("%w: deadline passed", domain.ErrExpiredAuthorization))

	result, err := tm.subject.Settle(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrExpiredAuthorization)
	assert.Nil(t, result)
}

func TestEngine_Settle_SignedModeBindingMismatch(t *testing.T) {
	tm := setupTest(t, authz.ModeSigned)
	defer tearDownTest(tm)

	req := buildSettleRequest()
	auth := buildAuthorization(req, 7)
	// A valid signature over a different amount must not authorize this settlement
	auth.Payload.Amount = "999"
	req.Authorization = &auth

	tm.verifier.EXPECT().
		Verify(gomock.Any(), auth).
		Return(common.HexToAddress(testSigner), nil)

	result, err := tm.subject.Settle(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidAuthorization)
	assert.Nil(t, result)
}

func TestEngine_Settle_InvalidInput(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(req *settlement.SettleRequest)
		wantErr error
	}{
		{
			name:    "malformed payer",
			mutate:  func(req *settlement.SettleRequest) { req.Payer = "not-an-address" },
			wantErr: domain.ErrInvalidAddress,
		},
		{
			name:    "zero payer",
			mutate:  func(req *settlement.SettleRequest) { req.Payer = domain.ETHEREUM_ZERO_ADDRESS },
			wantErr: domain.ErrInvalidAddress,
		},
		{
			name:    "malformed payee",
			mutate:  func(req *settlement.SettleRequest) { req.Payee = "0x123" },
			wantErr: domain.ErrInvalidAddress,
		},
		{
			name:    "invalid currency",
			mutate:  func(req *settlement.SettleRequest) { req.Currency = domain.Currency("DOGE") },
			wantErr: domain.ErrInvalidCurrency,
		},
		{
			name:    "nil amount",
			mutate:  func(req *settlement.SettleRequest) { req.Amount = nil },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "zero amount",
			mutate:  func(req *settlement.SettleRequest) { req.Amount = big.NewInt(0) },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(req *settlement.SettleRequest) { req.Amount = big.NewInt(-1) },
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:    "percentage above maximum",
			mutate:  func(req *settlement.SettleRequest) { req.CommissionPct = 101 },
			wantErr: domain.ErrInvalidPercentage,
		},
		{
			name:    "missing commission recipient",
			mutate:  func(req *settlement.SettleRequest) { req.CommissionRecipient = "" },
			wantErr: domain.ErrInvalidAddress,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTest(t, authz.ModeOpen)
			defer tearDownTest(tm)

			req := buildSettleRequest()
			tc.mutate(&req)

			result, err := tm.subject.Settle(context.Background(), req)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestEngine_Settle_ChecksumsLedgerKeys(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	payerLower := "0xabcdef1234567890abcdef1234567890abcdef12"
	payeeLower := "0xfedcba0987654321fedcba0987654321fedcba09"

	req := buildSettleRequest()
	req.Payer = payerLower
	req.Payee = payeeLower
	req.CommissionPct = 0
	req.CommissionRecipient = ""

	tm.clock.EXPECT().Now().Return(testNow)
	tm.store.EXPECT().
		SettlePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.SettlePaymentInput) (*store.SettlePaymentResult, error) {
			assert.Equal(t, common.HexToAddress(payerLower).Hex(), input.Payer)
			assert.Equal(t, common.HexToAddress(payeeLower).Hex(), input.Payee)
			assert.Empty(t, input.CommissionRecipient)

			return &store.SettlePaymentResult{
				ReceiptID:  "01JC5ZK7Q2M4N6P8R9S0T1V2W5",
				Commission: big.NewInt(0),
				Remainder:  big.NewInt(500_000),
				SettledAt:  testNow,
			}, nil
		})

	_, err := tm.subject.Settle(context.Background(), req)

	assert.NoError(t, err)
}

func TestEngine_QuoteAndValidate(t *testing.T) {
	limit := &schema.PaymentLimit{
		Currency:          domain.CurrencyUSDC,
		MinAmount:         "100000",
		MaxAmount:         "5000000",
		VerifiedMaxAmount: "100000000",
	}

	testCases := []struct {
		name     string
		amount   *big.Int
		currency domain.Currency
		limit    *schema.PaymentLimit
		verified bool
		wantErr  error
	}{
		{
			name:     "amount within bounds",
			amount:   big.NewInt(500_000),
			currency: domain.CurrencyUSDC,
			limit:    limit,
		},
		{
			name:     "at minimum",
			amount:   big.NewInt(100_000),
			currency: domain.CurrencyUSDC,
			limit:    limit,
		},
		{
			name:     "at unverified maximum",
			amount:   big.NewInt(5_000_000),
			currency: domain.CurrencyUSDC,
			limit:    limit,
		},
		{
			name:     "below minimum",
			amount:   big.NewInt(99_999),
			currency: domain.CurrencyUSDC,
			limit:    limit,
			wantErr:  domain.ErrBelowMinimum,
		},
		{
			name:     "above unverified maximum",
			amount:   big.NewInt(5_000_001),
			currency: domain.CurrencyUSDC,
			limit:    limit,
			wantErr:  domain.ErrAboveMaximum,
		},
		{
			name:     "verified payee unlocks the higher ceiling",
			amount:   big.NewInt(50_000_000),
			currency: domain.CurrencyUSDC,
			limit:    limit,
			verified: true,
		},
		{
			name:     "above verified maximum",
			amount:   big.NewInt(100_000_001),
			currency: domain.CurrencyUSDC,
			limit:    limit,
			verified: true,
			wantErr:  domain.ErrAboveMaximum,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTest(t, authz.ModeOpen)
			defer tearDownTest(tm)

			tm.store.EXPECT().GetPaymentLimit(gomock.Any(), tc.currency).Return(tc.limit, nil)
			tm.store.EXPECT().IsVerified(gomock.Any(), testPayee).Return(tc.verified, nil)

			err := tm.subject.QuoteAndValidate(context.Background(), tc.amount, tc.currency, testPayee)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEngine_QuoteAndValidate_NoLimitsConfigured(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	tm.store.EXPECT().GetPaymentLimit(gomock.Any(), domain.CurrencyETH).Return(nil, nil)

	err := tm.subject.QuoteAndValidate(context.Background(), big.NewInt(1_000), domain.CurrencyETH, testPayee)

	assert.ErrorIs(t, err, domain.ErrInvalidLimitConfig)
}

func TestEngine_QuoteAndValidate_InvalidInput(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	err := tm.subject.QuoteAndValidate(context.Background(), big.NewInt(1_000), domain.Currency("DOGE"), testPayee)
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)

	err = tm.subject.QuoteAndValidate(context.Background(), nil, domain.CurrencyETH, testPayee)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = tm.subject.QuoteAndValidate(context.Background(), big.NewInt(-5), domain.CurrencyETH, testPayee)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestEngine_Withdraw(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	tm.transfer.EXPECT().
		Transfer(gomock.Any(), domain.CurrencyETH, testPayee, big.NewInt(750)).
		Return(nil)
	tm.store.EXPECT().
		WithdrawBalance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input store.WithdrawInput) (*store.WithdrawResult, error) {
			assert.Equal(t, testPayee, input.Owner)
			require.NotNil(t, input.Transfer)

			// The closure must reach the transfer client
			require.NoError(t, input.Transfer(ctx, domain.CurrencyETH, input.Owner, big.NewInt(750)))

			return &store.WithdrawResult{
				ReceiptID:  "01JC5ZK7Q2M4N6P8R9S0T1V2W6",
				ETHAmount:  big.NewInt(750),
				USDCAmount: big.NewInt(0),
			}, nil
		})

	result, err := tm.subject.Withdraw(context.Background(), testPayee)

	assert.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "750", result.ETHAmount.String())
	assert.Equal(t, "0", result.USDCAmount.String())
}

func TestEngine_Withdraw_TransferFailure(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	tm.transfer.EXPECT().
		Transfer(gomock.Any(), domain.CurrencyETH, testPayee, big.NewInt(750)).
		Return(errors.New("rpc timeout"))
	tm.store.EXPECT().
		WithdrawBalance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input store.WithdrawInput) (*store.WithdrawResult, error) {
			err := input.Transfer(ctx, domain.CurrencyETH, input.Owner, big.NewInt(750))
			require.Error(t, err)

			return nil, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
		})

	result, err := tm.subject.Withdraw(context.Background(), testPayee)

	assert.ErrorIs(t, err, domain.ErrTransferFailed)
	assert.Nil(t, result)
}

func TestEngine_Withdraw_InvalidOwner(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	result, err := tm.subject.Withdraw(context.Background(), "not-an-address")

	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	assert.Nil(t, result)
}

func TestEngine_SetVerificationStatus(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	tm.store.EXPECT().
		SetVerificationStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.SetVerificationInput) error {
			assert.Equal(t, testPayee, input.Address)
			assert.True(t, input.Verified)
			assert.Equal(t, testAdmin.Address, input.Actor)
			return nil
		})

	err := tm.subject.SetVerificationStatus(context.Background(), testAdmin, testPayee, true)

	assert.NoError(t, err)
}

func TestEngine_SetVerificationStatus_NonAdmin(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	err := tm.subject.SetVerificationStatus(context.Background(), testNonAdmin, testPayee, true)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEngine_UpdatePaymentLimits(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	tm.store.EXPECT().
		UpdatePaymentLimits(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.UpdatePaymentLimitsInput) error {
			assert.Equal(t, domain.CurrencyUSDC, input.Currency)
			assert.Equal(t, "100000", input.MinAmount.String())
			assert.Equal(t, "5000000", input.MaxAmount.String())
			assert.Equal(t, "100000000", input.VerifiedMaxAmount.String())
			assert.Equal(t, testAdmin.Address, input.Actor)
			return nil
		})

	err := tm.subject.UpdatePaymentLimits(context.Background(), testAdmin, settlement.UpdateLimitsRequest{
		Currency:          domain.CurrencyUSDC,
		MinAmount:         big.NewInt(100_000),
		MaxAmount:         big.NewInt(5_000_000),
		VerifiedMaxAmount: big.NewInt(100_000_000),
	})

	assert.NoError(t, err)
}

func TestEngine_UpdatePaymentLimits_InvalidBounds(t *testing.T) {
	testCases := []struct {
		name    string
		req     settlement.UpdateLimitsRequest
		wantErr error
	}{
		{
			name: "invalid currency",
			req: settlement.UpdateLimitsRequest{
				Currency:          domain.Currency("DOGE"),
				MinAmount:         big.NewInt(1),
				MaxAmount:         big.NewInt(2),
				VerifiedMaxAmount: big.NewInt(3),
			},
			wantErr: domain.ErrInvalidCurrency,
		},
		{
			name: "missing bound",
			req: settlement.UpdateLimitsRequest{
				Currency:  domain.CurrencyETH,
				MinAmount: big.NewInt(1),
				MaxAmount: big.NewInt(2),
			},
			wantErr: domain.ErrInvalidLimitConfig,
		},
		{
			name: "zero minimum",
			req: settlement.UpdateLimitsRequest{
				Currency:          domain.CurrencyETH,
				MinAmount:         big.NewInt(0),
				MaxAmount:         big.NewInt(2),
				VerifiedMaxAmount: big.NewInt(3),
			},
			wantErr: domain.ErrInvalidLimitConfig,
		},
		{
			name: "minimum not below maximum",
			req: settlement.UpdateLimitsRequest{
				Currency:          domain.CurrencyETH,
				MinAmount:         big.NewInt(2),
				MaxAmount:         big.NewInt(2),
				VerifiedMaxAmount: big.NewInt(3),
			},
			wantErr: domain.ErrInvalidLimitConfig,
		},
		{
			name: "maximum not below verified maximum",
			req: settlement.UpdateLimitsRequest{
				Currency:          domain.CurrencyETH,
				MinAmount:         big.NewInt(1),
				MaxAmount:         big.NewInt(3),
				VerifiedMaxAmount: big.NewInt(3),
			},
			wantErr: domain.ErrInvalidLimitConfig,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTest(t, authz.ModeOpen)
			defer tearDownTest(tm)

			err := tm.subject.UpdatePaymentLimits(context.Background(), testAdmin, tc.req)

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEngine_UpdatePaymentLimits_NonAdmin(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	err := tm.subject.UpdatePaymentLimits(context.Background(), testNonAdmin, settlement.UpdateLimitsRequest{
		Currency:          domain.CurrencyETH,
		MinAmount:         big.NewInt(1),
		MaxAmount:         big.NewInt(2),
		VerifiedMaxAmount: big.NewInt(3),
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEngine_InvalidateNonce(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	signerLower := strings.ToLower(testSigner)

	tm.store.EXPECT().
		InvalidateNonce(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input store.InvalidateNonceInput) error {
			assert.Equal(t, common.HexToAddress(testSigner).Hex(), input.Signer)
			assert.Equal(t, testAdmin.Address, input.Actor)
			return nil
		})

	err := tm.subject.InvalidateNonce(context.Background(), testAdmin, signerLower)

	assert.NoError(t, err)
}

func TestEngine_InvalidateNonce_NonAdmin(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	err := tm.subject.InvalidateNonce(context.Background(), testNonAdmin, testSigner)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestEngine_PauseResume(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	tm.store.EXPECT().
		SetEnginePaused(gomock.Any(), store.SetPausedInput{Paused: true, Actor: testAdmin.Address}).
		Return(nil)
	tm.store.EXPECT().
		SetEnginePaused(gomock.Any(), store.SetPausedInput{Paused: false, Actor: testAdmin.Address}).
		Return(nil)
	tm.store.EXPECT().IsEnginePaused(gomock.Any()).Return(true, nil)

	assert.NoError(t, tm.subject.Pause(context.Background(), testAdmin))
	assert.NoError(t, tm.subject.Unpause(context.Background(), testAdmin))

	paused, err := tm.subject.Paused(context.Background())
	assert.NoError(t, err)
	assert.True(t, paused)
}

func TestEngine_Pause_NonAdmin(t *testing.T) {
	tm := setupTest(t, authz.ModeOpen)
	defer tearDownTest(tm)

	assert.ErrorIs(t, tm.subject.Pause(context.Background(), testNonAdmin), domain.ErrUnauthorized)
	assert.ErrorIs(t, tm.subject.Unpause(context.Background(), testNonAdmin), domain.ErrUnauthorized)
}
