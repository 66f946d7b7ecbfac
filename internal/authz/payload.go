// Package authz verifies detached payment authorizations. An authorization is
// a JSON payload canonicalized with JCS (RFC 8785), hashed with the EIP-191
// personal-message prefix, and signed by the platform's trusted signer key.
// The payload embeds the deployment domain name and chain ID so a signature
// produced for one deployment can never be replayed against another.
package authz

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// Payload is the signed authorization content. Amounts are expressed in the
// currency's minor units; the deadline is unix seconds.
type Payload struct {
	Domain    string          `json:"domain"`
	ChainID   uint64          `json:"chain_id"`
	Payer     string          `json:"payer"`
	Recipient string          `json:"recipient"`
	Currency  domain.Currency `json:"currency"`
	Amount    string          `json:"amount"`
	Nonce     uint64          `json:"nonce"`
	Deadline  int64           `json:"deadline"`
}

// Authorization carries a payload together with its 65-byte hex signature
type Authorization struct {
	Payload   Payload `json:"payload"`
	Signature string  `json:"signature"`
}

// Binding pins an authorization to one concrete settlement. A valid signature
// over a payload for a different payer, recipient, currency, or amount must
// not authorize this one.
type Binding struct {
	Payer     string
	Recipient string
	Currency  domain.Currency
	Amount    *big.Int
}

// Matches checks that the payload commits to exactly the bound settlement.
// Address comparison is case-insensitive; amounts compare as decimal strings.
func (p Payload) Matches(b Binding) error {
	if !strings.EqualFold(p.Payer, b.Payer) ||
		!strings.EqualFold(p.Recipient, b.Recipient) ||
		p.Currency != b.Currency ||
		p.Amount != b.Amount.String() {
		return fmt.Errorf("%w: payload does not match the submitted settlement", domain.ErrInvalidAuthorization)
	}
	return nil
}

// Digest computes the EIP-191 digest of the canonicalized payload. Both the
// signing side and the verifying side must run the same canonicalization, so
// the JSON field order a client happens to produce never matters.
func (p Payload) Digest(canonicalizer adapter.JCS, jsonCodec adapter.JSON) ([]byte, error) {
	raw, err := jsonCodec.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	canonical, err := canonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize payload: %w", err)
	}

	return accounts.TextHash(canonical), nil
}

// SignPayload signs a payload with the given key and returns the complete
// authorization. The recovery byte is shifted to the 27/28 convention wallets
// produce, which Verify normalizes back before recovery.
func SignPayload(payload Payload, key *ecdsa.PrivateKey) (Authorization, error) {
	digest, err := payload.Digest(adapter.NewJCS(), adapter.NewJSON())
	if err != nil {
		return Authorization{}, err
	}

	sig, err := crypto.Sign(digest, key)
	if err != nil {
		return Authorization{}, fmt.Errorf("failed to sign payload: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27

	return Authorization{
		Payload:   payload,
		Signature: hexutil.Encode(sig),
	}, nil
}
