package domain

import "math/big"

var hundred = big.NewInt(100)

// SplitCommission divides amount into the commission share and the payee
// remainder: commission = floor(amount * pct / 100), remainder = amount -
// commission. The two parts always sum to amount exactly; the truncated
// fraction stays with the payee.
func SplitCommission(amount *big.Int, pct uint8) (commission *big.Int, remainder *big.Int) {
	commission = new(big.Int).Mul(amount, big.NewInt(int64(pct)))
	commission.Quo(commission, hundred)
	remainder = new(big.Int).Sub(amount, commission)
	return commission, remainder
}
