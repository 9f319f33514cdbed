package contract

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"zetasbox/sdk"
)

// SnapshotVersion is bumped whenever the exported layout changes.
const SnapshotVersion = 1

// Snapshot is a self contained export of one project with its donors and the platform config.
type Snapshot struct {
	Version  uint            `cbor:"1,keyasint"`
	Project  ProjectLedger   `cbor:"2,keyasint"`
	Donors   []DonorLedger   `cbor:"3,keyasint"`
	Platform *PlatformConfig `cbor:"4,keyasint,omitempty"`
}

var snapshotEnc = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// Accrued sums the token quantities still held by the ledgers. Before any settlement this
// equals Project.TotalMinted.
func (s *Snapshot) Accrued() uint64 {
	total := s.Project.TokenForPool + s.Project.TokenForProject
	for _, d := range s.Donors {
		total += d.Entitlement
	}
	return total
}

// Pledged sums what donors still have recorded as pledged.
func (s *Snapshot) Pledged() uint64 {
	var total uint64
	for _, d := range s.Donors {
		total += d.Donated
	}
	return total
}

// Snapshot exports project in deterministic CBOR.
func (c *Controller) Snapshot(project sdk.Address) ([]byte, error) {
	var snap Snapshot
	err := c.store.View(func(st State) error {
		p, err := loadProject(st, project)
		if err != nil {
			return err
		}
		donors, err := listDonors(st, project)
		if err != nil {
			return err
		}
		snap = Snapshot{Version: SnapshotVersion, Project: *p}
		for _, d := range donors {
			snap.Donors = append(snap.Donors, *d)
		}
		if isPlatformInitialized(st) {
			if snap.Platform, err = loadPlatform(st); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotEnc.Marshal(&snap)
}

// DecodeSnapshot parses bytes produced by Controller.Snapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("decode snapshot: unsupported version %d", snap.Version)
	}
	return &snap, nil
}
