package contract

import (
	"math/bits"

	"github.com/holiman/uint256"
)

var mintRateScale = uint256.NewInt(MintRateScale)

// mintAmount is floor(rate * amount / 1e9). The product is taken in 256 bits so only a
// quotient that does not fit 64 bits fails.
func mintAmount(rate, amount uint64) (uint64, error) {
	prod := new(uint256.Int).Mul(uint256.NewInt(rate), uint256.NewInt(amount))
	prod.Div(prod, mintRateScale)
	if !prod.IsUint64() {
		return 0, fail(ErrArithmeticOverflow, "mint for %d at rate %d exceeds u64", amount, rate)
	}
	return prod.Uint64(), nil
}

var percentBase = uint256.NewInt(PercentBase)

// pctOf truncates x * pct / 100. Validated ratios never exceed 100 so the result fits.
func pctOf(x uint64, pct uint8) uint64 {
	prod := new(uint256.Int).Mul(uint256.NewInt(x), uint256.NewInt(uint64(pct)))
	return prod.Div(prod, percentBase).Uint64()
}

// splitFee returns the 95% payout and the fee that keeps the remainder.
// Example payload: splitFee(101) == (95, 6)
func splitFee(x uint64) (net, fee uint64) {
	net = pctOf(x, uint8(PoolSharePct))
	return net, x - net
}

// checkedAdd reports false on u64 overflow.
func checkedAdd(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// ratioSum adds percentages as ints so u8 wraparound cannot fake a 100.
func ratioSum(pcts ...uint8) int {
	total := 0
	for _, p := range pcts {
		total += int(p)
	}
	return total
}
