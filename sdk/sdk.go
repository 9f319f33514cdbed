package sdk

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrMintNotFound      = errors.New("mint not found")
	ErrOwnerMismatch     = errors.New("account owner mismatch")
	ErrMintMismatch      = errors.New("account mint mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrBadAuthority      = errors.New("authority does not match")
	ErrAuthorityRevoked  = errors.New("mint authority revoked")
	ErrSupplyOverflow    = errors.New("supply overflow")
	ErrPoolExists        = errors.New("liquidity pool already exists")
)

// PoolParams describes the liquidity pool the operator seeds after a successful raise.
// Coin is the project token, Pc is the pledge currency.
type PoolParams struct {
	Nonce       uint8
	OpenTime    uint64
	CoinMint    Address
	PcMint      Address
	CoinAccount Address
	PcAccount   Address
	CoinAmount  uint64
	PcAmount    uint64
	Authority   Address
}

// PoolReceipt is what a created pool hands back. LpAccount is owned by the params Authority
// and holds every LP token minted at creation.
type PoolReceipt struct {
	ID        Address
	LpMint    Address
	LpAccount Address
}

// Capabilities are the host primitives the ledger core calls. Every call is atomic on its own;
// a failing call aborts the enclosing operation.
type Capabilities interface {
	// VerifyOwnership fails unless account exists and is owned by expectedOwner.
	VerifyOwnership(account, expectedOwner Address) error
	// VerifyMintIdentity fails unless account exists and holds expectedMint.
	VerifyMintIdentity(account, expectedMint Address) error
	// MintAuthority returns the live mint authority, ok is false once it was revoked.
	MintAuthority(mint Address) (authority Address, ok bool, err error)
	// BalanceOf fails unless account exists.
	BalanceOf(account Address) (uint64, error)
	TransferValue(from, to Address, amount uint64, authority Address) error
	MintValue(mint, to Address, amount uint64, authority Address) error
	RevokeMintAuthority(mint, authority Address) error
	CreateLiquidityPool(params PoolParams) (PoolReceipt, error)
}

// Transactional is implemented by hosts that can roll back effects made since a checkpoint.
// The returned func restores the checkpointed state.
type Transactional interface {
	Checkpoint() (rollback func())
}
