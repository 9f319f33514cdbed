package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"zetasbox/sdk"
)

const (
	windowStart uint32 = 100
	windowEnd   uint32 = 1000
)

// harness is one ledger wired to an in-memory bank with the platform initialized.
type harness struct {
	t        *testing.T
	bank     *sdk.Bank
	store    *MemStore
	ctrl     *Controller
	admin    sdk.Address
	feeRoute sdk.Address
	events   []Event
}

// contributor is a donor identity with a funded wallet and an open ledger.
type contributor struct {
	id     sdk.Address
	ledger sdk.Address
	wallet sdk.Address
	tokens sdk.Address
}

// campaign is a created project plus the operator accounts it settles into.
type campaign struct {
	operator sdk.Address
	project  *ProjectLedger
	coin     sdk.Address
	pc       sdk.Address
	tokenTo  sdk.Address
	pledgeTo sdk.Address
	lpMint   sdk.Address
	lpTo     sdk.Address
}

// Setup an instance of a test ledger with an initialized platform.
func setupHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := newBareHarness(t, opts)
	h.admin = sdk.NewAddress()
	h.feeRoute = h.bank.OpenAccount(h.admin, sdk.NativeMint)
	_, err := h.ctrl.InitPlatform(sdk.SignedBy(h.admin), h.feeRoute)
	require.NoError(t, err)
	h.events = nil
	return h
}

// newBareHarness skips init_platform.
func newBareHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{t: t, bank: sdk.NewBank(), store: NewMemStore()}
	ctrl, err := NewController(h.store, h.bank, opts)
	require.NoError(t, err)
	h.ctrl = ctrl
	require.NoError(t, ctrl.Subscribe(h.record))
	return h
}

func (h *harness) record(ev Event) {
	h.events = append(h.events, ev)
}

// defaultArgs: rate 2.0, pledges 40 project / 60 pool, tokens 20 project / 30 pool / 50 donors.
func defaultArgs() CreateProjectArgs {
	return CreateProjectArgs{
		Window:       Window{Start: windowStart, End: windowEnd},
		MinGoal:      100,
		MaxCap:       1_000_000_000_000,
		SolSplit:     SolSplit{ProjectPct: 40, PoolPct: 60},
		TokenSplit:   TokenSplit{ProjectPct: 20, PoolPct: 30, DonorPct: 50},
		InitMintRate: 2_000_000_000,
	}
}

// prepare derives the project address of a new operator and opens mint and vaults for it.
func (h *harness) prepare(args CreateProjectArgs) (sdk.Address, CreateProjectArgs) {
	h.t.Helper()
	operator := sdk.NewAddress()
	addr, err := h.ctrl.ProjectAddress(operator)
	require.NoError(h.t, err)
	args.TokenMint = h.bank.CreateMint(addr)
	args.PledgeVault = h.bank.OpenAccount(addr, sdk.NativeMint)
	args.TokenVault = h.bank.OpenAccount(addr, args.TokenMint)
	return operator, args
}

// newCampaign creates a project, mutate may adjust the default arguments.
func (h *harness) newCampaign(mutate func(*CreateProjectArgs)) *campaign {
	h.t.Helper()
	args := defaultArgs()
	if mutate != nil {
		mutate(&args)
	}
	operator, args := h.prepare(args)
	p, err := h.ctrl.CreateProject(sdk.SignedBy(operator), args)
	require.NoError(h.t, err)
	_, lpMint, err := h.bank.PoolAddresses(p.TokenMint, sdk.NativeMint)
	require.NoError(h.t, err)
	return &campaign{
		operator: operator,
		project:  p,
		coin:     h.bank.OpenAccount(operator, p.TokenMint),
		pc:       h.bank.OpenAccount(operator, sdk.NativeMint),
		tokenTo:  h.bank.OpenAccount(operator, p.TokenMint),
		pledgeTo: h.bank.OpenAccount(operator, sdk.NativeMint),
		lpMint:   lpMint,
		lpTo:     h.bank.OpenAccount(h.admin, lpMint),
	}
}

// join funds a new contributor and opens its donor ledger on c.
func (h *harness) join(c *campaign, funds uint64) *contributor {
	h.t.Helper()
	d := &contributor{id: sdk.NewAddress()}
	d.wallet = h.bank.OpenAccount(d.id, sdk.NativeMint)
	d.tokens = h.bank.OpenAccount(d.id, c.project.TokenMint)
	require.NoError(h.t, h.bank.Deposit(d.wallet, funds))
	l, err := h.ctrl.InitDonate(sdk.SignedBy(d.id), c.project.Address)
	require.NoError(h.t, err)
	d.ledger = l.Address
	return d
}

func (h *harness) donate(c *campaign, d *contributor, amount uint64, now uint32) (*DonorLedger, error) {
	return h.ctrl.Donate(sdk.SignedBy(d.id), c.project.Address, d.ledger, d.wallet, amount, now)
}

func (h *harness) seed(c *campaign, now uint32) (*SeedResult, error) {
	return h.ctrl.SeedPool(sdk.SignedBy(c.operator), c.project.Address, SeedPoolArgs{
		Nonce:             1,
		OpenTime:          uint64(now),
		CoinAccount:       c.coin,
		PcAccount:         c.pc,
		PlatformLpAccount: c.lpTo,
	}, now)
}

func (h *harness) claimProject(c *campaign) (*ClaimResult, error) {
	return h.ctrl.SettleProjectClaim(sdk.SignedBy(c.operator), c.project.Address, ProjectClaimArgs{
		TokenTo:  c.tokenTo,
		PledgeTo: c.pledgeTo,
	})
}

func (h *harness) claimDonor(c *campaign, d *contributor) (*ClaimResult, error) {
	return h.ctrl.SettleDonorClaim(sdk.SignedBy(d.id), c.project.Address, d.ledger, d.tokens)
}

func (h *harness) refund(c *campaign, d *contributor, now uint32) (uint64, error) {
	return h.ctrl.Refund(sdk.SignedBy(d.id), c.project.Address, d.ledger, d.wallet, now)
}

func (h *harness) project(c *campaign) *ProjectLedger {
	h.t.Helper()
	p, err := h.ctrl.Project(c.project.Address)
	require.NoError(h.t, err)
	return p
}

func (h *harness) donor(d *contributor) *DonorLedger {
	h.t.Helper()
	l, err := h.ctrl.Donor(d.ledger)
	require.NoError(h.t, err)
	return l
}

// dump captures every committed key and value so tests can prove nothing changed.
func (h *harness) dump() map[string]string {
	out := map[string]string{}
	keys := h.store.Keys()
	_ = h.store.View(func(st State) error {
		for _, k := range keys {
			out[k] = *st.Get(k)
		}
		return nil
	})
	return out
}

// requireCode asserts err carries code.
func requireCode(t *testing.T, err error, code error) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, errors.Is(err, code), "want %v, got %v", code, err)
}
