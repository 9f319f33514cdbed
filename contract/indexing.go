package contract

// maintaining index keys for listing ledgers without scanning the store

import (
	"strconv"

	"zetasbox/sdk"
)

// chunkCounterKey stores the number of chunks for a base index.
func chunkCounterKey(base string) string {
	return base + ":chunks"
}

func chunkKey(base string, chunk int) string {
	return base + ":" + strconv.Itoa(chunk)
}

// getChunkCount reads the chunk counter, zero when the index is empty.
func getChunkCount(st State, baseKey string) int {
	ptr := st.Get(chunkCounterKey(baseKey))
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.Atoi(*ptr)
	return n
}

func setChunkCount(st State, baseKey string, n int) {
	st.Set(chunkCounterKey(baseKey), strconv.Itoa(n))
}

// decodeChunk splits a chunk value into its packed 32 byte addresses.
func decodeChunk(val string) []sdk.Address {
	out := make([]sdk.Address, 0, len(val)/sdk.AddressLength)
	for i := 0; i+sdk.AddressLength <= len(val); i += sdk.AddressLength {
		out = append(out, sdk.AddressFromBytes([]byte(val[i:i+sdk.AddressLength])))
	}
	return out
}

// addToIndex appends addr to the last chunk with space, or opens a new chunk. Duplicates are skipped.
func addToIndex(st State, baseKey string, addr sdk.Address) {
	chunks := getChunkCount(st, baseKey)
	for i := 0; i < chunks; i++ {
		ptr := st.Get(chunkKey(baseKey, i))
		if ptr == nil {
			continue
		}
		for _, e := range decodeChunk(*ptr) {
			if e == addr {
				return
			}
		}
	}
	if chunks > 0 {
		last := chunkKey(baseKey, chunks-1)
		var cur string
		if ptr := st.Get(last); ptr != nil {
			cur = *ptr
		}
		if len(cur)/sdk.AddressLength < maxChunkSize {
			st.Set(last, cur+string(addr[:]))
			return
		}
	}
	st.Set(chunkKey(baseKey, chunks), string(addr[:]))
	setChunkCount(st, baseKey, chunks+1)
}

// listIndex returns every address of the index in insertion order.
func listIndex(st State, baseKey string) []sdk.Address {
	chunks := getChunkCount(st, baseKey)
	var out []sdk.Address
	for i := 0; i < chunks; i++ {
		ptr := st.Get(chunkKey(baseKey, i))
		if ptr == nil {
			continue
		}
		out = append(out, decodeChunk(*ptr)...)
	}
	return out
}
