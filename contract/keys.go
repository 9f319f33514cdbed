package contract

import "zetasbox/sdk"

// addressKey prefixes the raw 32 address bytes, keeps keys fixed size and sortable.
func addressKey(prefix byte, addr sdk.Address) string {
	var buf [1 + sdk.AddressLength]byte
	buf[0] = prefix
	copy(buf[1:], addr[:])
	return string(buf[:])
}

// platformKey is the single PlatformConfig slot.
func platformKey() string {
	return string([]byte{kPlatform})
}

// projectKey builds a storage key for a project ledger by its address.
func projectKey(addr sdk.Address) string {
	return addressKey(kProject, addr)
}

// donorKey builds a storage key for a donor ledger by its address.
func donorKey(addr sdk.Address) string {
	return addressKey(kDonor, addr)
}

// projectIndexKey is the base of the chunked index of all projects.
func projectIndexKey() string {
	return string([]byte{kProjectIndex})
}

// donorIndexKey is the base of the chunked donor index of one project.
func donorIndexKey(project sdk.Address) string {
	return addressKey(kDonorIndex, project)
}
