package sdk

import "github.com/gagliardetto/solana-go"

// NativeMint is the sentinel mint of the pledge currency (wrapped native SOL).
var NativeMint = Address(solana.SolMint)

// IsNative reports whether mint is the pledge currency sentinel.
func IsNative(mint Address) bool {
	return mint == NativeMint
}
