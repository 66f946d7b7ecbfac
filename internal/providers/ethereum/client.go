// Package ethereum implements the on-chain payout primitive behind
// withdrawal: native value transfers for ETH and ERC-20 transfers for
// token currencies, signed locally with the platform payout key.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"go.uber.org/zap"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/domain"
	"github.com/feral-file/ff-boxoffice/internal/logger"
	"github.com/feral-file/ff-boxoffice/internal/settlement"
)

const (
	// receiptPollInterval is how often waitMined checks for the receipt
	receiptPollInterval = time.Second

	// chainProbeTimeout bounds the chain id check at construction
	chainProbeTimeout = 10 * time.Second
)

// erc20TransferABI covers the single ERC-20 method payouts need
const erc20TransferABI = `[{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"}]`

// Config holds the payout client configuration
type Config struct {
	// ChainID the connected node must report; transactions are
	// EIP-155 signed against it
	ChainID int64

	// PrivateKeyHex is the payout wallet's secp256k1 key in hex,
	// with or without the 0x prefix
	PrivateKeyHex string

	// TokenAddresses maps ERC-20 currencies to their contract addresses.
	// Currencies without an entry cannot be paid out.
	TokenAddresses map[domain.Currency]string

	// ConfirmTimeout bounds the wait for a payout transaction to be mined.
	// Defaults to 90 seconds.
	ConfirmTimeout time.Duration
}

type client struct {
	config Config
	key    *ecdsa.PrivateKey
	from   common.Address
	signer types.Signer
	tokens map[domain.Currency]common.Address
	erc20  abi.ABI
	eth    adapter.EthClient
	clock  adapter.Clock

	// mu covers nonce acquisition through broadcast so concurrent
	// withdrawals never reuse a nonce
	mu sync.Mutex
}

// NewClient creates a payout client. It probes the node's chain id and
// refuses to start against the wrong network.
func NewClient(config Config, eth adapter.EthClient, clock adapter.Clock) (settlement.TransferClient, error) {
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid payout client config: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(config.PrivateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse payout key: %w", err)
	}

	tokens := make(map[domain.Currency]common.Address, len(config.TokenAddresses))
	for currency, address := range config.TokenAddresses {
		if !domain.IsValidAddress(address) {
			return nil, fmt.Errorf("%w: token contract for %s: %q", domain.ErrInvalidAddress, currency, address)
		}
		tokens[currency] = common.HexToAddress(address)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20TransferABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-20 ABI: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), chainProbeTimeout)
	defer cancel()

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if chainID.Int64() != config.ChainID {
		return nil, fmt.Errorf("connected node reports chain id %d, expected %d", chainID.Int64(), config.ChainID)
	}

	c := &client{
		config: config,
		key:    key,
		from:   crypto.PubkeyToAddress(key.PublicKey),
		signer: types.NewEIP155Signer(chainID),
		tokens: tokens,
		erc20:  parsed,
		eth:    eth,
		clock:  clock,
	}

	logger.Info("Payout client initialized",
		zap.String("from", c.from.Hex()),
		zap.Int64("chain_id", config.ChainID),
		zap.Int("token_currencies", len(tokens)))

	return c, nil
}

// Transfer sends amount (minor units) of currency to the recipient and
// blocks until the transaction is mined. A nil return means the payout
// is on chain.
func (c *client) Transfer(ctx context.Context, currency domain.Currency, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("invalid payout amount for %s", currency)
	}
	if !domain.IsValidAddress(to) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAddress, to)
	}

	signed, err := c.sendPayout(ctx, currency, common.HexToAddress(to), amount)
	if err != nil {
		return err
	}

	receipt, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("payout transaction %s reverted", signed.Hash().Hex())
	}

	logger.InfoCtx(ctx, "Payout confirmed",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("currency", string(currency)),
		zap.String("to", to),
		zap.String("amount", amount.String()),
		zap.Uint64("block_number", receipt.BlockNumber.Uint64()))

	return nil
}

// sendPayout builds, signs, and broadcasts the payout transaction
func (c *client) sendPayout(ctx context.Context, currency domain.Currency, to common.Address, amount *big.Int) (*types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Native transfers carry the amount as value; token transfers carry
	// ERC-20 transfer calldata to the token contract instead
	dest := to
	value := amount
	var data []byte
	if currency != domain.CurrencyETH {
		token, ok := c.tokens[currency]
		if !ok {
			return nil, fmt.Errorf("no token contract configured for currency %s", currency)
		}

		packed, err := c.erc20.Pack("transfer", to, amount)
		if err != nil {
			return nil, fmt.Errorf("failed to pack transfer data: %w", err)
		}

		dest = token
		value = big.NewInt(0)
		data = packed
	}

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gas := params.TxGas
	if data != nil {
		gas, err = c.eth.EstimateGas(ctx, ethereum.CallMsg{
			From: c.from,
			To:   &dest,
			Data: data,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &dest,
		Value:    value,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, c.signer, c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Payout transaction sent",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("currency", string(currency)),
		zap.Uint64("nonce", nonce))

	return signed, nil
}

// waitMined polls for the receipt until the transaction is mined or the
// confirm timeout elapses
func (c *client) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	deadline := c.clock.Now().Add(c.config.ConfirmTimeout)

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			logger.WarnCtx(ctx, "Receipt lookup failed, will retry",
				zap.Error(err),
				zap.String("tx_hash", txHash.Hex()))
		}

		if c.clock.Now().After(deadline) {
			return nil, fmt.Errorf("transaction %s not mined within %s", txHash.Hex(), c.config.ConfirmTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(receiptPollInterval):
		}
	}
}

func validateConfig(config *Config) error {
	if config.ChainID <= 0 {
		return errors.New("chain_id must be positive")
	}

	if config.PrivateKeyHex == "" {
		return errors.New("private key is required")
	}

	if config.ConfirmTimeout <= 0 {
		config.ConfirmTimeout = 90 * time.Second
	}

	return nil
}
