package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetasbox/sdk"
)

// TestIndexChunks checks the index rolls into a new chunk when one is full so we dont break it again.
func TestIndexChunks(t *testing.T) {
	store := NewMemStore()
	base := projectIndexKey()
	var want []sdk.Address

	require.NoError(t, store.Update(func(st State) error {
		for i := 0; i < maxChunkSize+3; i++ {
			addr := sdk.NewAddress()
			want = append(want, addr)
			addToIndex(st, base, addr)
		}
		// duplicates are ignored
		addToIndex(st, base, want[0])
		addToIndex(st, base, want[maxChunkSize+1])
		return nil
	}))

	require.NoError(t, store.View(func(st State) error {
		assert.Equal(t, 2, getChunkCount(st, base))
		assert.Equal(t, want, listIndex(st, base))
		return nil
	}))
}

func TestIndexEmpty(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.View(func(st State) error {
		assert.Zero(t, getChunkCount(st, donorIndexKey(sdk.NewAddress())))
		assert.Empty(t, listIndex(st, donorIndexKey(sdk.NewAddress())))
		return nil
	}))
}

func TestKeysArePrefixed(t *testing.T) {
	addr := sdk.NewAddress()
	assert.Equal(t, byte(kProject), projectKey(addr)[0])
	assert.Equal(t, byte(kDonor), donorKey(addr)[0])
	assert.Len(t, projectKey(addr), 1+sdk.AddressLength)
	assert.NotEqual(t, donorIndexKey(addr), donorIndexKey(sdk.NewAddress()))
	assert.Equal(t, string([]byte{kPlatform}), platformKey())
}
