package contract

import "zetasbox/sdk"

func newDonorLedger(addr sdk.Address, bump uint8, project, contributor sdk.Address) *DonorLedger {
	return &DonorLedger{
		Address:     addr,
		Bump:        bump,
		Project:     project,
		Contributor: contributor,
		Status:      DonorOpen,
	}
}

// belongsTo checks the ledger was opened for this project by this contributor.
func (d *DonorLedger) belongsTo(project, contributor sdk.Address) error {
	if d.Project != project || d.Contributor != contributor {
		return fail(ErrLedgerMismatch, "donor ledger %s belongs to %s on %s", d.Address, d.Contributor, d.Project)
	}
	return nil
}

// credit adds the pledge and the donor token share of a plan.
func (d *DonorLedger) credit(plan donationPlan) {
	d.Donated += plan.Amount
	d.Entitlement += plan.DonorTokens
}

// settlement decides what a terminal call pays. replay is true when the path was already
// taken and the caller allows zero payouts.
func (d *DonorLedger) settlement(path DonorStatus, idempotent bool) (replay bool, err error) {
	switch d.Status {
	case DonorOpen:
		return false, nil
	case path:
		if idempotent {
			return true, nil
		}
		return false, fail(ErrAlreadySettled, "donor ledger %s already %s", d.Address, d.Status)
	default:
		if path == DonorClaimed {
			return false, fail(ErrClaimNotEligible, "donor ledger %s was %s", d.Address, d.Status)
		}
		return false, fail(ErrRefundNotEligible, "donor ledger %s was %s", d.Address, d.Status)
	}
}
