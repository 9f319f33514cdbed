package sdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressParsing(t *testing.T) {
	addr, err := AddressFromString("So11111111111111111111111111111111111111112")
	require.NoError(t, err)
	assert.Equal(t, NativeMint, addr)
	assert.True(t, IsNative(addr))
	assert.False(t, addr.IsZero())
	assert.True(t, ZeroAddress.IsZero())

	_, err = AddressFromString("0OIl")
	require.Error(t, err)

	assert.Equal(t, addr, AddressFromBytes(addr.Bytes()))
	b := addr.Bytes()
	b[0] ^= 0xff
	assert.Equal(t, NativeMint, addr, "Bytes returns a copy")
}

func TestAddressJSON(t *testing.T) {
	addr := NewAddress()
	raw, err := json.Marshal(struct{ A Address }{addr})
	require.NoError(t, err)
	assert.JSONEq(t, `{"A":"`+addr.String()+`"}`, string(raw))

	var back struct{ A Address }
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, addr, back.A)
}

// TestDeriveAddress checks derivation is deterministic and seed sensitive so we dont break it again.
func TestDeriveAddress(t *testing.T) {
	program := NewAddress()
	operator := NewAddress()

	a1, bump1, err := DeriveAddress(program, []byte("project"), operator.Bytes())
	require.NoError(t, err)
	a2, bump2, err := DeriveAddress(program, []byte("project"), operator.Bytes())
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, bump1, bump2)

	other, _, err := DeriveAddress(program, []byte("donate"), operator.Bytes())
	require.NoError(t, err)
	assert.NotEqual(t, a1, other)
}

func TestEnvSigners(t *testing.T) {
	alice, bob := NewAddress(), NewAddress()
	env := SignedBy(alice, bob)
	assert.Equal(t, alice, env.Sender)
	assert.True(t, env.VerifySigner(alice))
	assert.True(t, env.VerifySigner(bob))
	assert.False(t, env.VerifySigner(NewAddress()))
	assert.False(t, env.VerifySigner(ZeroAddress))
	assert.False(t, Env{Sender: alice}.VerifySigner(alice))
}
