package store

import (
	"errors"
	"testing"

	badgerdb "github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"zetasbox/contract"
	"zetasbox/sdk"
)

func openTest(t *testing.T) *Badger {
	t.Helper()
	db, err := Open("", true, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBadgerUpdateAndView(t *testing.T) {
	db := openTest(t)

	require.NoError(t, db.Update(func(st contract.State) error {
		st.Set("a", "1")
		assert.Equal(t, "1", *st.Get("a"))
		return nil
	}))

	boom := errors.New("boom")
	err := db.Update(func(st contract.State) error {
		st.Set("a", "2")
		st.Set("b", "3")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, db.View(func(st contract.State) error {
		require.NotNil(t, st.Get("a"))
		assert.Equal(t, "1", *st.Get("a"))
		assert.Nil(t, st.Get("b"))
		return nil
	}))

	require.NoError(t, db.Update(func(st contract.State) error {
		st.Delete("a")
		return nil
	}))
	require.NoError(t, db.View(func(st contract.State) error {
		assert.Nil(t, st.Get("a"))
		return nil
	}))
}

func TestBadgerViewIsReadOnly(t *testing.T) {
	db := openTest(t)
	err := db.View(func(st contract.State) error {
		st.Set("a", "1")
		return nil
	})
	assert.ErrorIs(t, err, badgerdb.ErrReadOnlyTxn)
}

// TestBadgerBacksController checks a campaign runs on the durable store so we dont break it again.
func TestBadgerBacksController(t *testing.T) {
	db := openTest(t)
	bank := sdk.NewBank()
	ctrl, err := contract.NewController(db, bank, contract.Options{})
	require.NoError(t, err)

	admin := sdk.NewAddress()
	_, err = ctrl.InitPlatform(sdk.SignedBy(admin), bank.OpenAccount(admin, sdk.NativeMint))
	require.NoError(t, err)

	operator := sdk.NewAddress()
	project, err := ctrl.ProjectAddress(operator)
	require.NoError(t, err)
	mint := bank.CreateMint(project)
	p, err := ctrl.CreateProject(sdk.SignedBy(operator), contract.CreateProjectArgs{
		TokenMint:    mint,
		PledgeVault:  bank.OpenAccount(project, sdk.NativeMint),
		TokenVault:   bank.OpenAccount(project, mint),
		Window:       contract.Window{Start: 0, End: 100},
		MinGoal:      10,
		MaxCap:       1_000,
		SolSplit:     contract.SolSplit{ProjectPct: 50, PoolPct: 50},
		TokenSplit:   contract.TokenSplit{ProjectPct: 10, PoolPct: 40, DonorPct: 50},
		InitMintRate: contract.MintRateScale,
	})
	require.NoError(t, err)

	donor := sdk.NewAddress()
	wallet := bank.OpenAccount(donor, sdk.NativeMint)
	require.NoError(t, bank.Deposit(wallet, 100))
	l, err := ctrl.InitDonate(sdk.SignedBy(donor), p.Address)
	require.NoError(t, err)
	_, err = ctrl.Donate(sdk.SignedBy(donor), p.Address, l.Address, wallet, 100, 50)
	require.NoError(t, err)

	// over the cap: nothing reaches badger
	require.NoError(t, bank.Deposit(wallet, 1_000))
	_, err = ctrl.Donate(sdk.SignedBy(donor), p.Address, l.Address, wallet, 1_000, 50)
	assert.ErrorIs(t, err, contract.ErrDonationCapExceeded)

	got, err := ctrl.Project(p.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got.TotalDonated)
	assert.Equal(t, uint64(1), got.DonorCount)

	donors, err := ctrl.Donors(p.Address)
	require.NoError(t, err)
	require.Len(t, donors, 1)
	assert.Equal(t, uint64(50), donors[0].Entitlement)
}

func TestBadgerOnDisk(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir, false, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(st contract.State) error {
		st.Set("k", "v")
		return nil
	}))
	require.NoError(t, db.Close())

	db, err = Open(dir, false, nil)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.View(func(st contract.State) error {
		got := st.Get("k")
		require.NotNil(t, got)
		assert.Equal(t, "v", *got)
		return nil
	}))
}
