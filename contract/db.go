package contract

import (
	"fmt"

	"zetasbox/sdk"
)

////////////////////////////////////////////////////////////////////////////////
// Ledger persistence helpers
////////////////////////////////////////////////////////////////////////////////

func saveProject(st State, p *ProjectLedger) {
	st.Set(projectKey(p.Address), string(EncodeProjectLedger(p)))
}

func projectExists(st State, addr sdk.Address) bool {
	return st.Get(projectKey(addr)) != nil
}

func loadProject(st State, addr sdk.Address) (*ProjectLedger, error) {
	ptr := st.Get(projectKey(addr))
	if ptr == nil {
		return nil, fail(ErrProjectNotFound, "project %s", addr)
	}
	p, err := DecodeProjectLedger([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", addr, err)
	}
	p.Address = addr
	return p, nil
}

func saveDonor(st State, d *DonorLedger) {
	st.Set(donorKey(d.Address), string(EncodeDonorLedger(d)))
}

func donorExists(st State, addr sdk.Address) bool {
	return st.Get(donorKey(addr)) != nil
}

func loadDonor(st State, addr sdk.Address) (*DonorLedger, error) {
	ptr := st.Get(donorKey(addr))
	if ptr == nil {
		return nil, fail(ErrDonorNotFound, "donor ledger %s", addr)
	}
	d, err := DecodeDonorLedger([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("load donor %s: %w", addr, err)
	}
	d.Address = addr
	return d, nil
}

// listProjects loads every indexed project ledger.
func listProjects(st State) ([]*ProjectLedger, error) {
	addrs := listIndex(st, projectIndexKey())
	out := make([]*ProjectLedger, 0, len(addrs))
	for _, a := range addrs {
		p, err := loadProject(st, a)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// listDonors loads every donor ledger opened on a project.
func listDonors(st State, project sdk.Address) ([]*DonorLedger, error) {
	addrs := listIndex(st, donorIndexKey(project))
	out := make([]*DonorLedger, 0, len(addrs))
	for _, a := range addrs {
		d, err := loadDonor(st, a)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
