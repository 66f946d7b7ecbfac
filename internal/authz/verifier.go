package authz

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// Mode selects how settlements are authorized
type Mode string

const (
	// ModeSigned requires every settlement to carry a valid authorization
	ModeSigned Mode = "signed"
	// ModeOpen skips signature verification entirely
	ModeOpen Mode = "open"
)

// IsValidMode checks if a mode is valid
func IsValidMode(mode Mode) bool {
	return mode == ModeSigned || mode == ModeOpen
}

// Config holds the deployment's authorization domain parameters
type Config struct {
	DomainName    string
	ChainID       uint64
	TrustedSigner common.Address
}

// Verifier checks payment authorizations against the trusted signer key.
// Verification is stateless: deadline, domain binding, and signature only.
// Nonce consumption belongs to the settlement transaction so that a replayed
// authorization fails atomically with everything else.
//
//go:generate mockgen -source=verifier.go -destination=../mocks/authz.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	Verify(ctx context.Context, auth Authorization) (common.Address, error)
}

type verifier struct {
	config Config
	clock  adapter.Clock
	jcs    adapter.JCS
	json   adapter.JSON
}

// NewVerifier creates a verifier bound to one deployment domain
func NewVerifier(config Config, clock adapter.Clock, jcs adapter.JCS, json adapter.JSON) Verifier {
	return &verifier{
		config: config,
		clock:  clock,
		jcs:    jcs,
		json:   json,
	}
}

// Verify checks the authorization and returns the recovered signer address.
// The deadline check runs first so an expired authorization reports
// domain.ErrExpiredAuthorization even when the signature is also garbage.
func (v *verifier) Verify(_ context.Context, auth Authorization) (common.Address, error) {
	payload := auth.Payload

	if v.clock.Now().Unix() > payload.Deadline {
		return common.Address{}, fmt.Errorf("%w: deadline %d has passed",
			domain.ErrExpiredAuthorization, payload.Deadline)
	}

	if payload.Domain != v.config.DomainName || payload.ChainID != v.config.ChainID {
		return common.Address{}, fmt.Errorf("%w: payload bound to domain %q chain %d",
			domain.ErrInvalidAuthorization, payload.Domain, payload.ChainID)
	}

	digest, err := payload.Digest(v.jcs, v.json)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %s", domain.ErrInvalidAuthorization, err)
	}

	sig, err := hexutil.Decode(auth.Signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: malformed signature encoding", domain.ErrInvalidAuthorization)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: signature must be %d bytes, got %d",
			domain.ErrInvalidAuthorization, crypto.SignatureLength, len(sig))
	}

	// Wallets produce v in {27, 28}; SigToPub wants the raw recovery id.
	recovery := make([]byte, crypto.SignatureLength)
	copy(recovery, sig)
	if recovery[crypto.RecoveryIDOffset] >= 27 {
		recovery[crypto.RecoveryIDOffset] -= 27
	}

	pubKey, err := crypto.SigToPub(digest, recovery)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: signature recovery failed", domain.ErrInvalidAuthorization)
	}

	signer := crypto.PubkeyToAddress(*pubKey)
	if signer != v.config.TrustedSigner {
		return common.Address{}, fmt.Errorf("%w: recovered signer %s is not trusted",
			domain.ErrInvalidAuthorization, signer.Hex())
	}

	return signer, nil
}
