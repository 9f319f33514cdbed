package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetasbox/sdk"
)

func sampleProject() *ProjectLedger {
	return &ProjectLedger{
		Bump:            254,
		TokenMint:       sdk.NewAddress(),
		ProjectWallet:   sdk.NewAddress(),
		TotalDonated:    1_000,
		Window:          Window{Start: 100, End: 1000},
		MinGoal:         100,
		MaxCap:          10_000,
		SolSplit:        SolSplit{ProjectPct: 40, PoolPct: 60},
		Pool:            Seeded(sdk.NewAddress()),
		InitMintRate:    2_000_000_000,
		TokenSplit:      TokenSplit{ProjectPct: 20, PoolPct: 30, DonorPct: 50},
		SolForProject:   400,
		TokenForProject: 400,
		TokenForPool:    600,
		TotalMinted:     2_000,
		PledgeVault:     sdk.NewAddress(),
		TokenVault:      sdk.NewAddress(),
		DonorCount:      3,
		ProjectClaimed:  true,
	}
}

// TestProjectLedgerLayout checks field order and widths of the persisted record so we dont break it again.
func TestProjectLedgerLayout(t *testing.T) {
	p := sampleProject()
	data := EncodeProjectLedger(p)
	require.Len(t, data, 256)

	assert.Equal(t, byte(254), data[0])
	assert.Equal(t, p.TokenMint.Bytes(), data[1:33])
	// window start sits after bump, two addresses and totalDonated, big endian u32
	assert.Equal(t, []byte{0, 0, 0, 100}, data[73:77])
	// pool tag then id
	assert.Equal(t, byte(PoolSeeded), data[99])
	assert.Equal(t, p.Pool.ID.Bytes(), data[100:132])
	assert.Equal(t, byte(1), data[255])

	got, err := DecodeProjectLedger(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	p.Pool = Fundraising()
	assert.Len(t, EncodeProjectLedger(p), 224)
}

func TestProjectLedgerDecodeErrors(t *testing.T) {
	data := EncodeProjectLedger(sampleProject())

	_, err := DecodeProjectLedger(data[:len(data)-1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")

	_, err = DecodeProjectLedger(append(append([]byte{}, data...), 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing")

	bad := append([]byte{}, data...)
	bad[99] = 7
	_, err = DecodeProjectLedger(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pool tag")
}

func TestDonorLedgerCodec(t *testing.T) {
	d := &DonorLedger{
		Bump:        9,
		Project:     sdk.NewAddress(),
		Donated:     50,
		Entitlement: 25,
		Contributor: sdk.NewAddress(),
		Status:      DonorRefunded,
	}
	data := EncodeDonorLedger(d)
	require.Len(t, data, 82)

	got, err := DecodeDonorLedger(data)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	data[81] = 3
	_, err = DecodeDonorLedger(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status")
}

func TestPlatformConfigCodec(t *testing.T) {
	cfg := &PlatformConfig{FeeRoute: sdk.NewAddress(), Owner: sdk.NewAddress()}
	data := EncodePlatformConfig(cfg)
	require.Len(t, data, 64)
	assert.Equal(t, cfg.FeeRoute.Bytes(), data[:32])

	got, err := DecodePlatformConfig(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = DecodePlatformConfig(data[:40])
	require.Error(t, err)
}
