package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zetasbox/sdk"
)

// TestDonorSettlementPaths checks each terminal path can only be taken once so we dont break it again.
func TestDonorSettlementPaths(t *testing.T) {
	cases := []struct {
		status     DonorStatus
		path       DonorStatus
		idempotent bool
		replay     bool
		code       error
	}{
		{DonorOpen, DonorClaimed, false, false, nil},
		{DonorOpen, DonorRefunded, false, false, nil},
		{DonorClaimed, DonorClaimed, false, false, ErrAlreadySettled},
		{DonorClaimed, DonorClaimed, true, true, nil},
		{DonorRefunded, DonorRefunded, false, false, ErrAlreadySettled},
		{DonorRefunded, DonorRefunded, true, true, nil},
		{DonorRefunded, DonorClaimed, true, false, ErrClaimNotEligible},
		{DonorClaimed, DonorRefunded, true, false, ErrRefundNotEligible},
	}
	for _, tc := range cases {
		d := newDonorLedger(sdk.NewAddress(), 1, sdk.NewAddress(), sdk.NewAddress())
		d.Status = tc.status
		replay, err := d.settlement(tc.path, tc.idempotent)
		if tc.code != nil {
			requireCode(t, err, tc.code)
			continue
		}
		require.NoError(t, err, "%s -> %s", tc.status, tc.path)
		assert.Equal(t, tc.replay, replay, "%s -> %s", tc.status, tc.path)
	}
}

func TestDonorBelongsTo(t *testing.T) {
	project, contributor := sdk.NewAddress(), sdk.NewAddress()
	d := newDonorLedger(sdk.NewAddress(), 1, project, contributor)

	require.NoError(t, d.belongsTo(project, contributor))
	requireCode(t, d.belongsTo(sdk.NewAddress(), contributor), ErrLedgerMismatch)
	requireCode(t, d.belongsTo(project, sdk.NewAddress()), ErrLedgerMismatch)
}

func TestDonorCredit(t *testing.T) {
	d := newDonorLedger(sdk.NewAddress(), 1, sdk.NewAddress(), sdk.NewAddress())
	d.credit(donationPlan{Amount: 10, DonorTokens: 7})
	d.credit(donationPlan{Amount: 5, DonorTokens: 3})
	assert.Equal(t, uint64(15), d.Donated)
	assert.Equal(t, uint64(10), d.Entitlement)
	assert.Equal(t, "open", d.Status.String())
}
