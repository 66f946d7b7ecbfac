package domain

import "math/big"

const (
	// Amount precision constants
	CANONICAL_DECIMALS = 18
	USDC_DECIMALS      = 6

	// Event constraints
	MAX_TIERS_PER_EVENT = 10
	MAX_COMMISSION_PCT  = 100

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)

// Tier price bounds in canonical 18-decimal units. The floor admits dust
// prices on purpose: issuance rejects them later only if they scale to zero
// in the settlement currency.
var (
	MinTicketPrice = big.NewInt(1)
	MaxTicketPrice = new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))
)
