package sdk

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Address is a 32-byte account identity (wallets, mints, token accounts, ledger records).
type Address solana.PublicKey

// AddressLength is the raw size of an Address.
const AddressLength = solana.PublicKeyLength

// ZeroAddress is the all-zero identity, never a valid account.
var ZeroAddress Address

// AddressFromString parses a base58 encoded identity.
// Example payload: sdk.AddressFromString("So11111111111111111111111111111111111111112")
func AddressFromString(s string) (Address, error) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return Address(pk), nil
}

// MustAddress is AddressFromString for constants, it panics on bad input.
func MustAddress(s string) Address {
	return Address(solana.MustPublicKeyFromBase58(s))
}

// AddressFromBytes copies a 32-byte slice into an Address.
func AddressFromBytes(b []byte) Address {
	return Address(solana.PublicKeyFromBytes(b))
}

// NewAddress returns a fresh random identity, handy for wallets and accounts in tests.
func NewAddress() Address {
	return Address(solana.NewWallet().PublicKey())
}

// DeriveAddress finds the program-owned address for the seeds and returns it with its bump.
// Example payload: sdk.DeriveAddress(programID, []byte("project"), operator.Bytes())
func DeriveAddress(programID Address, seeds ...[]byte) (Address, uint8, error) {
	pk, bump, err := solana.FindProgramAddress(seeds, solana.PublicKey(programID))
	if err != nil {
		return ZeroAddress, 0, fmt.Errorf("derive address: %w", err)
	}
	return Address(pk), bump, nil
}

// String returns the base58 form used in logs and events.
func (a Address) String() string {
	return solana.PublicKey(a).String()
}

// Bytes returns a copy of the raw 32 bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, len(a))
	copy(out, a[:])
	return out
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// MarshalText renders the base58 form, so JSON output shows readable addresses.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
