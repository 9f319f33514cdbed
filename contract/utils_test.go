package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := map[string]uint32{
		"1000":                      1000,
		"2025-09-03T00:00:00":       1756857600,
		"2025-09-03T02:00:00+02:00": 1756857600,
		"0":                         0,
	}
	for in, want := range cases {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "tomorrow", "-1", "4294967296"} {
		_, err := ParseTimestamp(in)
		assert.Error(t, err, in)
	}
}

func TestErrorShape(t *testing.T) {
	err := NewError(ErrTransferFailed, assert.AnError, "pledge %d", 5)
	assert.Equal(t, "TransferFailed: pledge 5: "+assert.AnError.Error(), err.Error())
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "TransferFailed", CodeOf(err))
	assert.Equal(t, KindExternal, err.Kind)
	assert.Equal(t, "external", err.Kind.String())

	plain := fail(ErrWrongOwner, "")
	assert.Equal(t, "WrongOwner", plain.Error())
	kind, ok := KindOf(plain)
	assert.True(t, ok)
	assert.Equal(t, KindValidation, kind)

	assert.Equal(t, "Internal", CodeOf(assert.AnError))
	_, ok = KindOf(assert.AnError)
	assert.False(t, ok)
}
