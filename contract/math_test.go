package contract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAmount(t *testing.T) {
	cases := []struct {
		rate, amount, want uint64
	}{
		{2_000_000_000, 1_000_000_000, 2_000_000_000},
		{1_000_000_000, 7, 7},
		{500_000_000, 3, 1},
		{1, 999_999_999, 0},
		{math.MaxUint64, 1_000_000_000, math.MaxUint64},
	}
	for _, tc := range cases {
		got, err := mintAmount(tc.rate, tc.amount)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "rate %d amount %d", tc.rate, tc.amount)
	}

	_, err := mintAmount(math.MaxUint64, 1_000_000_001)
	requireCode(t, err, ErrArithmeticOverflow)
}

func TestPctOf(t *testing.T) {
	assert.Equal(t, uint64(33), pctOf(100, 33))
	assert.Equal(t, uint64(2), pctOf(7, 33))
	assert.Equal(t, uint64(0), pctOf(math.MaxUint64, 0))
	assert.Equal(t, uint64(math.MaxUint64), pctOf(math.MaxUint64, 100))
	assert.Equal(t, uint64(9_223_372_036_854_775_807), pctOf(math.MaxUint64, 50))
}

// TestSplitFee checks the fee keeps the remainder so we dont break it again.
func TestSplitFee(t *testing.T) {
	for _, x := range []uint64{0, 1, 19, 20, 101, 1_000_000_007, math.MaxUint64} {
		net, fee := splitFee(x)
		assert.Equal(t, x, net+fee, "x=%d", x)
		assert.Equal(t, pctOf(x, 95), net)
	}
	net, fee := splitFee(101)
	assert.Equal(t, uint64(95), net)
	assert.Equal(t, uint64(6), fee)
}

func TestCheckedAdd(t *testing.T) {
	sum, ok := checkedAdd(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = checkedAdd(math.MaxUint64, 1)
	assert.False(t, ok)
}

func TestRatioSum(t *testing.T) {
	assert.Equal(t, 100, ratioSum(20, 30, 50))
	assert.Equal(t, 356, ratioSum(255, 101))
	assert.Equal(t, 0, ratioSum())
}
