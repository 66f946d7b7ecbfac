// Package currency converts canonical-precision amounts into each settlement
// currency's native minor units and back. Canonical amounts carry 18 fractional
// digits regardless of currency; scaling down always truncates toward zero.
package currency

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-boxoffice/internal/domain"
)

// ToMinorUnits converts a canonical amount to the currency's minor units.
// Scaling down truncates toward zero. A non-zero canonical amount that
// truncates to zero fails with domain.ErrAmountTooSmall so that callers never
// silently settle a zero payment.
func ToMinorUnits(canonical *big.Int, currency domain.Currency) (*big.Int, error) {
	if !domain.IsValidCurrency(currency) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, currency)
	}
	if canonical == nil || canonical.Sign() < 0 {
		return nil, fmt.Errorf("%w: canonical amount must be non-negative", domain.ErrInvalidAmount)
	}

	shift := domain.CANONICAL_DECIMALS - currency.Decimals()
	if shift == 0 {
		return new(big.Int).Set(canonical), nil
	}

	minor := new(big.Int).Quo(canonical, pow10(shift))
	if minor.Sign() == 0 && canonical.Sign() != 0 {
		return nil, fmt.Errorf("%w: %s canonical units is below one %s minor unit",
			domain.ErrAmountTooSmall, canonical.String(), currency)
	}
	return minor, nil
}

// FromMinorUnits converts minor units of a currency back to canonical
// precision. Scaling up is exact.
func FromMinorUnits(minor *big.Int, currency domain.Currency) (*big.Int, error) {
	if !domain.IsValidCurrency(currency) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCurrency, currency)
	}
	if minor == nil || minor.Sign() < 0 {
		return nil, fmt.Errorf("%w: minor amount must be non-negative", domain.ErrInvalidAmount)
	}

	shift := domain.CANONICAL_DECIMALS - currency.Decimals()
	if shift == 0 {
		return new(big.Int).Set(minor), nil
	}
	return new(big.Int).Mul(minor, pow10(shift)), nil
}

// Display renders an amount of minor units as a human-readable decimal string,
// e.g. 1500000 USDC minor units renders as "1.5". For ledger arithmetic use
// the big.Int forms; this is presentation only.
func Display(minor *big.Int, currency domain.Currency) string {
	if minor == nil {
		minor = big.NewInt(0)
	}
	return decimal.NewFromBigInt(minor, -int32(currency.Decimals())).String()
}

// DisplayCanonical renders a canonical 18-decimal amount as a decimal string.
// Tier prices are stored in canonical units, so their display form is
// currency-independent.
func DisplayCanonical(canonical *big.Int) string {
	if canonical == nil {
		canonical = big.NewInt(0)
	}
	return decimal.NewFromBigInt(canonical, -int32(domain.CANONICAL_DECIMALS)).String()
}

func pow10(exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}
