package contract

import "zetasbox/sdk"

// -----------------------------------------------------------------------------
// Pool State
// -----------------------------------------------------------------------------

// PoolPhase tells whether a campaign is still raising or its liquidity pool exists.
type PoolPhase uint8

const (
	PoolFundraising PoolPhase = 0
	PoolSeeded      PoolPhase = 1
)

func (p PoolPhase) String() string {
	switch p {
	case PoolFundraising:
		return "fundraising"
	case PoolSeeded:
		return "seeded"
	default:
		return "unknown"
	}
}

// PoolState is Fundraising or PoolSeeded(ID). The transition happens once and never reverses.
type PoolState struct {
	Phase PoolPhase
	ID    sdk.Address
}

// Fundraising is the initial pool state of every project.
func Fundraising() PoolState { return PoolState{Phase: PoolFundraising} }

// Seeded marks the pool created under id.
func Seeded(id sdk.Address) PoolState { return PoolState{Phase: PoolSeeded, ID: id} }

// IsSeeded reports whether the liquidity pool was created.
func (p PoolState) IsSeeded() bool { return p.Phase == PoolSeeded }

// -----------------------------------------------------------------------------
// Ratios & Window
// -----------------------------------------------------------------------------

// Window is the inclusive pledge acceptance interval in unix seconds.
type Window struct {
	Start uint32
	End   uint32
}

// SolSplit divides raw pledges between the project and the pool.
type SolSplit struct {
	ProjectPct uint8
	PoolPct    uint8
}

// TokenSplit divides minted tokens between project, pool and donors.
type TokenSplit struct {
	ProjectPct uint8
	PoolPct    uint8
	DonorPct   uint8
}

// -----------------------------------------------------------------------------
// Ledgers
// -----------------------------------------------------------------------------

// ProjectLedger is the per-campaign record. Field order matches the persisted layout.
type ProjectLedger struct {
	Address sdk.Address // derived, not persisted

	Bump            uint8
	TokenMint       sdk.Address
	ProjectWallet   sdk.Address
	TotalDonated    uint64
	Window          Window
	MinGoal         uint64
	MaxCap          uint64
	SolSplit        SolSplit
	Pool            PoolState
	InitMintRate    uint64
	TokenSplit      TokenSplit
	SolForProject   uint64
	SolForPool      uint64
	TokenForProject uint64
	// TokenForPool is not reset by seed_pool. Once the pool is seeded it records what the
	// pool received and is no longer owed to anyone.
	TokenForPool    uint64
	TotalMinted     uint64
	PledgeVault     sdk.Address
	TokenVault      sdk.Address
	DonorCount      uint64
	ProjectClaimed  bool
}

// DonorStatus is the terminal path a donor ledger took, if any.
type DonorStatus uint8

const (
	DonorOpen     DonorStatus = 0
	DonorClaimed  DonorStatus = 1
	DonorRefunded DonorStatus = 2
)

func (s DonorStatus) String() string {
	switch s {
	case DonorOpen:
		return "open"
	case DonorClaimed:
		return "claimed"
	case DonorRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// DonorLedger is the per (project, contributor) record.
type DonorLedger struct {
	Address sdk.Address // derived, not persisted

	Bump        uint8
	Project     sdk.Address
	Donated     uint64
	Entitlement uint64
	Contributor sdk.Address
	Status      DonorStatus
}

// PlatformConfig is the global singleton. Only Owner may change it.
type PlatformConfig struct {
	FeeRoute sdk.Address
	Owner    sdk.Address
}

// -----------------------------------------------------------------------------
// Operation Arguments
// -----------------------------------------------------------------------------

// CreateProjectArgs configures a new campaign. The operator is the env sender.
type CreateProjectArgs struct {
	TokenMint    sdk.Address
	PledgeVault  sdk.Address
	TokenVault   sdk.Address
	Window       Window
	MinGoal      uint64
	MaxCap       uint64
	SolSplit     SolSplit
	TokenSplit   TokenSplit
	InitMintRate uint64
}

// SeedPoolArgs carries the operator accounts and pool parameters for seed_pool.
// CoinAccount receives the pool tokens, PcAccount the pool share of pledges.
// PlatformLpAccount is the platform owner's account for the pool LP mint; every LP token the
// pool issues to the operator ends up there.
type SeedPoolArgs struct {
	Nonce             uint8
	OpenTime          uint64
	CoinAccount       sdk.Address
	PcAccount         sdk.Address
	PlatformLpAccount sdk.Address
}

// ProjectClaimArgs names the operator accounts receiving the project share.
type ProjectClaimArgs struct {
	TokenTo  sdk.Address
	PledgeTo sdk.Address
}

// SeedResult reports what seed_pool moved.
type SeedResult struct {
	PoolID       sdk.Address
	TokenToPool  uint64
	PledgeToPool uint64
	Fee          uint64
	LpMint       sdk.Address
	LpToPlatform uint64
}

// ClaimResult reports what a settlement paid out.
type ClaimResult struct {
	Minted  uint64
	Tokens  uint64
	Pledge  uint64
	Fee     uint64
	Revoked bool
}
