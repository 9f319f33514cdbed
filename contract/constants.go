package contract

import "zetasbox/sdk"

// -----------------------------------------------------------------------------
// Program
// -----------------------------------------------------------------------------

// DefaultProgramID owns every derived ledger address unless configured otherwise.
var DefaultProgramID = sdk.MustAddress("AaRJMWropnNyyaTRdJUjsSvBk9WdBwpMBY1vRmwz7rE")

// Derivation seeds for ledger addresses.
const (
	SeedProject  = "project"
	SeedDonate   = "donate"
	SeedPlatform = "platform"
)

// -----------------------------------------------------------------------------
// Arithmetic
// -----------------------------------------------------------------------------

const (
	// MintRateScale is the fixed point scale of InitMintRate.
	MintRateScale uint64 = 1_000_000_000
	// PercentBase is the sum every ratio group must reach.
	PercentBase = 100
	// PoolSharePct is what the pool (or operator) keeps of every pledge payout, the rest is the fee.
	PoolSharePct uint64 = 95
)

// -----------------------------------------------------------------------------
// Timing
// -----------------------------------------------------------------------------

// GracePeriod is 15 days in seconds. After the window closes plus this grace, refunds open
// unconditionally and seeding is no longer possible.
const GracePeriod uint64 = 1_296_000

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kPlatform holds the single PlatformConfig record.
	kPlatform byte = 0x01
	// kProject prefixes encoded ProjectLedger records, keyed by ledger address.
	kProject byte = 0x02
	// kDonor prefixes encoded DonorLedger records, keyed by ledger address.
	kDonor byte = 0x03
	// kProjectIndex is the chunked list of every project ledger address.
	kProjectIndex byte = 0x04
	// kDonorIndex is the chunked list of donor ledgers per project.
	kDonorIndex byte = 0x05
)

// -----------------------------------------------------------------------------
// Index
// -----------------------------------------------------------------------------

// maxChunkSize splits indexes so a single value never grows past what a host kv accepts.
const maxChunkSize = 1024
