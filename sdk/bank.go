package sdk

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/holiman/uint256"
)

// TokenAccount is a balance of one mint held by one owner.
type TokenAccount struct {
	Owner   Address
	Mint    Address
	Balance uint64
}

// MintInfo tracks a token mint; Authority is nil once minting was revoked.
type MintInfo struct {
	Authority *Address
	Supply    uint64
}

// Pool is a liquidity pool created through CreateLiquidityPool.
type Pool struct {
	ID        Address
	CoinVault Address
	PcVault   Address
	LpMint    Address
	Params    PoolParams
}

// injected is a pending failure, it fires after skip successful calls.
type injected struct {
	skip int
	err  error
}

// Bank is an in-memory host implementing Capabilities. It backs the tests and the simulator.
type Bank struct {
	mu       sync.Mutex
	accounts map[Address]*TokenAccount
	mints    map[Address]*MintInfo
	pools    map[Address]*Pool
	failures map[string]*injected
	poolProg Address
}

// Fault injection op names for FailNext.
const (
	OpTransfer = "transfer"
	OpMint     = "mint"
	OpRevoke   = "revoke"
	OpPool     = "pool"
)

var _ Capabilities = (*Bank)(nil)
var _ Transactional = (*Bank)(nil)

// NewBank creates an empty host. The native mint is registered without authority.
func NewBank() *Bank {
	b := &Bank{
		accounts: map[Address]*TokenAccount{},
		mints:    map[Address]*MintInfo{},
		pools:    map[Address]*Pool{},
		failures: map[string]*injected{},
		poolProg: NewAddress(),
	}
	b.mints[NativeMint] = &MintInfo{}
	return b
}

// CreateMint registers a new token mint controlled by authority.
func (b *Bank) CreateMint(authority Address) Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	mint := NewAddress()
	auth := authority
	b.mints[mint] = &MintInfo{Authority: &auth}
	return mint
}

// OpenAccount creates an empty token account for owner.
func (b *Bank) OpenAccount(owner, mint Address) Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	addr := NewAddress()
	b.accounts[addr] = &TokenAccount{Owner: owner, Mint: mint}
	return addr
}

// Deposit credits native currency out of thin air, it is how wallets get funded.
func (b *Bank) Deposit(account Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[account]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if !IsNative(acc.Mint) {
		return fmt.Errorf("%w: deposits only take native currency", ErrMintMismatch)
	}
	sum, carry := bits.Add64(acc.Balance, amount, 0)
	if carry != 0 {
		return ErrSupplyOverflow
	}
	acc.Balance = sum
	return nil
}

// Balance returns the balance of account or zero when unknown.
func (b *Bank) Balance(account Address) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if acc, ok := b.accounts[account]; ok {
		return acc.Balance
	}
	return 0
}

// Account returns a copy of the account.
func (b *Bank) Account(account Address) (TokenAccount, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[account]
	if !ok {
		return TokenAccount{}, false
	}
	return *acc, true
}

// Mint returns a copy of the mint info.
func (b *Bank) Mint(mint Address) (MintInfo, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.mints[mint]
	if !ok {
		return MintInfo{}, false
	}
	return *m, true
}

// Pool returns the pool created under id.
func (b *Bank) Pool(id Address) (Pool, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pools[id]
	if !ok {
		return Pool{}, false
	}
	return *p, true
}

// FailNext makes the next call of op fail with err. Used to test abort paths.
func (b *Bank) FailNext(op string, err error) {
	b.FailAfter(op, 0, err)
}

// FailAfter lets skip calls of op pass and fails the one after with err.
func (b *Bank) FailAfter(op string, skip int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = &injected{skip: skip, err: err}
}

// takeFailure pops an injected failure, caller holds the lock.
func (b *Bank) takeFailure(op string) error {
	f, ok := b.failures[op]
	if !ok {
		return nil
	}
	if f.skip > 0 {
		f.skip--
		return nil
	}
	delete(b.failures, op)
	return f.err
}

func (b *Bank) VerifyOwnership(account, expectedOwner Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[account]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if acc.Owner != expectedOwner {
		return fmt.Errorf("%w: %s owned by %s", ErrOwnerMismatch, account, acc.Owner)
	}
	return nil
}

func (b *Bank) VerifyMintIdentity(account, expectedMint Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[account]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if acc.Mint != expectedMint {
		return fmt.Errorf("%w: %s holds %s", ErrMintMismatch, account, acc.Mint)
	}
	return nil
}

func (b *Bank) MintAuthority(mint Address) (Address, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m, ok := b.mints[mint]
	if !ok {
		return ZeroAddress, false, fmt.Errorf("%w: %s", ErrMintNotFound, mint)
	}
	if m.Authority == nil {
		return ZeroAddress, false, nil
	}
	return *m.Authority, true, nil
}

func (b *Bank) BalanceOf(account Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	acc, ok := b.accounts[account]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	return acc.Balance, nil
}

func (b *Bank) TransferValue(from, to Address, amount uint64, authority Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.takeFailure(OpTransfer); err != nil {
		return err
	}
	return b.transferLocked(from, to, amount, authority)
}

func (b *Bank) transferLocked(from, to Address, amount uint64, authority Address) error {
	src, ok := b.accounts[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, from)
	}
	dst, ok := b.accounts[to]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, to)
	}
	if src.Owner != authority {
		return fmt.Errorf("%w: %s is not owner of %s", ErrBadAuthority, authority, from)
	}
	if src.Mint != dst.Mint {
		return fmt.Errorf("%w: %s -> %s", ErrMintMismatch, src.Mint, dst.Mint)
	}
	if src.Balance < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, src.Balance, amount)
	}
	if from == to {
		return nil
	}
	sum, carry := bits.Add64(dst.Balance, amount, 0)
	if carry != 0 {
		return ErrSupplyOverflow
	}
	src.Balance -= amount
	dst.Balance = sum
	return nil
}

func (b *Bank) MintValue(mint, to Address, amount uint64, authority Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.takeFailure(OpMint); err != nil {
		return err
	}
	m, ok := b.mints[mint]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMintNotFound, mint)
	}
	if m.Authority == nil {
		return ErrAuthorityRevoked
	}
	if *m.Authority != authority {
		return fmt.Errorf("%w: %s", ErrBadAuthority, authority)
	}
	dst, ok := b.accounts[to]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, to)
	}
	if dst.Mint != mint {
		return fmt.Errorf("%w: %s holds %s", ErrMintMismatch, to, dst.Mint)
	}
	supply, c1 := bits.Add64(m.Supply, amount, 0)
	balance, c2 := bits.Add64(dst.Balance, amount, 0)
	if c1 != 0 || c2 != 0 {
		return ErrSupplyOverflow
	}
	m.Supply = supply
	dst.Balance = balance
	return nil
}

func (b *Bank) RevokeMintAuthority(mint, authority Address) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.takeFailure(OpRevoke); err != nil {
		return err
	}
	m, ok := b.mints[mint]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMintNotFound, mint)
	}
	if m.Authority == nil {
		return ErrAuthorityRevoked
	}
	if *m.Authority != authority {
		return fmt.Errorf("%w: %s", ErrBadAuthority, authority)
	}
	m.Authority = nil
	return nil
}

// PoolAddresses returns the pool id and LP mint a pool of the two mints is created under.
func (b *Bank) PoolAddresses(coinMint, pcMint Address) (id, lpMint Address, err error) {
	id, _, err = DeriveAddress(b.poolProg, []byte("amm"), coinMint.Bytes(), pcMint.Bytes())
	if err != nil {
		return ZeroAddress, ZeroAddress, err
	}
	lpMint, _, err = DeriveAddress(b.poolProg, []byte("lp"), id.Bytes())
	if err != nil {
		return ZeroAddress, ZeroAddress, err
	}
	return id, lpMint, nil
}

// CreateLiquidityPool draws both sides from the operator accounts into fresh pool vaults and
// mints floor(sqrt(coin × pc)) LP tokens to a new LP account of the authority.
func (b *Bank) CreateLiquidityPool(params PoolParams) (PoolReceipt, error) {
	id, lpMint, err := b.PoolAddresses(params.CoinMint, params.PcMint)
	if err != nil {
		return PoolReceipt{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.takeFailure(OpPool); err != nil {
		return PoolReceipt{}, err
	}
	if _, exists := b.pools[id]; exists {
		return PoolReceipt{}, fmt.Errorf("%w: %s", ErrPoolExists, id)
	}
	// both legs succeed or the pool is not created
	restore := b.snapshotLocked()
	pool := &Pool{ID: id, CoinVault: NewAddress(), PcVault: NewAddress(), LpMint: lpMint, Params: params}
	b.accounts[pool.CoinVault] = &TokenAccount{Owner: id, Mint: params.CoinMint}
	b.accounts[pool.PcVault] = &TokenAccount{Owner: id, Mint: params.PcMint}

	if err := b.transferLocked(params.CoinAccount, pool.CoinVault, params.CoinAmount, params.Authority); err != nil {
		restore()
		return PoolReceipt{}, err
	}
	if err := b.transferLocked(params.PcAccount, pool.PcVault, params.PcAmount, params.Authority); err != nil {
		restore()
		return PoolReceipt{}, err
	}

	liquidity := lpSupply(params.CoinAmount, params.PcAmount)
	auth := id
	b.mints[lpMint] = &MintInfo{Authority: &auth, Supply: liquidity}
	receipt := PoolReceipt{ID: id, LpMint: lpMint, LpAccount: NewAddress()}
	b.accounts[receipt.LpAccount] = &TokenAccount{Owner: params.Authority, Mint: lpMint, Balance: liquidity}
	b.pools[id] = pool
	return receipt, nil
}

// lpSupply is the initial liquidity of a constant product pool. sqrt(2^64 × 2^64) fits u64.
func lpSupply(coin, pc uint64) uint64 {
	product := new(uint256.Int).Mul(uint256.NewInt(coin), uint256.NewInt(pc))
	return product.Sqrt(product).Uint64()
}

// Checkpoint captures the whole bank and returns a func that puts it back.
func (b *Bank) Checkpoint() func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	restore := b.snapshotLocked()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		restore()
	}
}

func (b *Bank) snapshotLocked() func() {
	accounts := make(map[Address]*TokenAccount, len(b.accounts))
	for k, v := range b.accounts {
		cp := *v
		accounts[k] = &cp
	}
	mints := make(map[Address]*MintInfo, len(b.mints))
	for k, v := range b.mints {
		cp := *v
		if v.Authority != nil {
			auth := *v.Authority
			cp.Authority = &auth
		}
		mints[k] = &cp
	}
	pools := make(map[Address]*Pool, len(b.pools))
	for k, v := range b.pools {
		cp := *v
		pools[k] = &cp
	}
	return func() {
		b.accounts = accounts
		b.mints = mints
		b.pools = pools
	}
}
