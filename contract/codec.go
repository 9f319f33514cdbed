package contract

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"zetasbox/sdk"
)

type binWriter struct {
	buf bytes.Buffer
}

// newWriter spins up a fresh writer so we dont leak old bytes between encodes.
func newWriter() *binWriter { return &binWriter{} }

// bytes returns the accumulated buffer, tiny helper but keeps code tidy.
func (w *binWriter) bytes() []byte { return w.buf.Bytes() }

// writeBool squashes bools into a single byte flag for deterministic payloads.
func (w *binWriter) writeBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *binWriter) writeUint8(v uint8) {
	w.buf.WriteByte(v)
}

// writeUint32 is used for timestamps, they are 32 bit seconds on the ledger.
func (w *binWriter) writeUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// writeUint64 writes big endian numbers so tooling can read them without guessing.
func (w *binWriter) writeUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// writeAddress dumps the raw 32 bytes, no length prefix needed.
func (w *binWriter) writeAddress(a sdk.Address) {
	w.buf.Write(a[:])
}

// writePool writes the variant tag followed by the id only when seeded.
func (w *binWriter) writePool(p PoolState) {
	w.writeUint8(uint8(p.Phase))
	if p.IsSeeded() {
		w.writeAddress(p.ID)
	}
}

type binReader struct {
	data []byte
	pos  int
}

var errUnexpectedEOF = errors.New("unexpected EOF")

func newReader(data []byte) *binReader {
	return &binReader{data: data}
}

func (r *binReader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, errUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *binReader) readBool() (bool, error) {
	b, err := r.readByte()
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

func (r *binReader) readUint32() (uint32, error) {
	if r.pos+4 > len(r.data) {
		return 0, errUnexpectedEOF
	}
	val := binary.BigEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return val, nil
}

// readUint64 decodes big endian integers for totals and buckets.
func (r *binReader) readUint64() (uint64, error) {
	if r.pos+8 > len(r.data) {
		return 0, errUnexpectedEOF
	}
	val := binary.BigEndian.Uint64(r.data[r.pos : r.pos+8])
	r.pos += 8
	return val, nil
}

func (r *binReader) readAddress() (sdk.Address, error) {
	if r.pos+sdk.AddressLength > len(r.data) {
		return sdk.ZeroAddress, errUnexpectedEOF
	}
	a := sdk.AddressFromBytes(r.data[r.pos : r.pos+sdk.AddressLength])
	r.pos += sdk.AddressLength
	return a, nil
}

func (r *binReader) readPool() (PoolState, error) {
	tag, err := r.readByte()
	if err != nil {
		return PoolState{}, err
	}
	switch PoolPhase(tag) {
	case PoolFundraising:
		return Fundraising(), nil
	case PoolSeeded:
		id, err := r.readAddress()
		if err != nil {
			return PoolState{}, err
		}
		return Seeded(id), nil
	default:
		return PoolState{}, fmt.Errorf("invalid pool tag %d", tag)
	}
}

// done fails when trailing bytes are left, a sign the layout drifted.
func (r *binReader) done() error {
	if r.pos != len(r.data) {
		return fmt.Errorf("%d trailing bytes", len(r.data)-r.pos)
	}
	return nil
}

// readAll runs the reads in order and stops at the first failure.
func readAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// EncodeProjectLedger packs a ledger in persisted field order.
// Example payload: EncodeProjectLedger(&ProjectLedger{MinGoal: 100, MaxCap: 1000})
func EncodeProjectLedger(p *ProjectLedger) []byte {
	w := newWriter()
	w.writeUint8(p.Bump)
	w.writeAddress(p.TokenMint)
	w.writeAddress(p.ProjectWallet)
	w.writeUint64(p.TotalDonated)
	w.writeUint32(p.Window.Start)
	w.writeUint32(p.Window.End)
	w.writeUint64(p.MinGoal)
	w.writeUint64(p.MaxCap)
	w.writeUint8(p.SolSplit.ProjectPct)
	w.writeUint8(p.SolSplit.PoolPct)
	w.writePool(p.Pool)
	w.writeUint64(p.InitMintRate)
	w.writeUint8(p.TokenSplit.ProjectPct)
	w.writeUint8(p.TokenSplit.PoolPct)
	w.writeUint8(p.TokenSplit.DonorPct)
	w.writeUint64(p.SolForProject)
	w.writeUint64(p.SolForPool)
	w.writeUint64(p.TokenForProject)
	w.writeUint64(p.TokenForPool)
	w.writeUint64(p.TotalMinted)
	w.writeAddress(p.PledgeVault)
	w.writeAddress(p.TokenVault)
	w.writeUint64(p.DonorCount)
	w.writeBool(p.ProjectClaimed)
	return w.bytes()
}

// DecodeProjectLedger is the inverse of EncodeProjectLedger. Address is left to the caller.
func DecodeProjectLedger(data []byte) (*ProjectLedger, error) {
	r := newReader(data)
	p := &ProjectLedger{}
	u8 := func(dst *uint8) func() error {
		return func() (err error) { *dst, err = r.readByte(); return }
	}
	u32 := func(dst *uint32) func() error {
		return func() (err error) { *dst, err = r.readUint32(); return }
	}
	u64 := func(dst *uint64) func() error {
		return func() (err error) { *dst, err = r.readUint64(); return }
	}
	addr := func(dst *sdk.Address) func() error {
		return func() (err error) { *dst, err = r.readAddress(); return }
	}
	err := readAll(
		u8(&p.Bump),
		addr(&p.TokenMint),
		addr(&p.ProjectWallet),
		u64(&p.TotalDonated),
		u32(&p.Window.Start),
		u32(&p.Window.End),
		u64(&p.MinGoal),
		u64(&p.MaxCap),
		u8(&p.SolSplit.ProjectPct),
		u8(&p.SolSplit.PoolPct),
		func() (err error) { p.Pool, err = r.readPool(); return },
		u64(&p.InitMintRate),
		u8(&p.TokenSplit.ProjectPct),
		u8(&p.TokenSplit.PoolPct),
		u8(&p.TokenSplit.DonorPct),
		u64(&p.SolForProject),
		u64(&p.SolForPool),
		u64(&p.TokenForProject),
		u64(&p.TokenForPool),
		u64(&p.TotalMinted),
		addr(&p.PledgeVault),
		addr(&p.TokenVault),
		u64(&p.DonorCount),
		func() (err error) { p.ProjectClaimed, err = r.readBool(); return },
		r.done,
	)
	if err != nil {
		return nil, fmt.Errorf("decode project ledger: %w", err)
	}
	return p, nil
}

// EncodeDonorLedger packs a donor ledger in persisted field order.
func EncodeDonorLedger(d *DonorLedger) []byte {
	w := newWriter()
	w.writeUint8(d.Bump)
	w.writeAddress(d.Project)
	w.writeUint64(d.Donated)
	w.writeUint64(d.Entitlement)
	w.writeAddress(d.Contributor)
	w.writeUint8(uint8(d.Status))
	return w.bytes()
}

// DecodeDonorLedger is the inverse of EncodeDonorLedger.
func DecodeDonorLedger(data []byte) (*DonorLedger, error) {
	r := newReader(data)
	d := &DonorLedger{}
	var status uint8
	err := readAll(
		func() (err error) { d.Bump, err = r.readByte(); return },
		func() (err error) { d.Project, err = r.readAddress(); return },
		func() (err error) { d.Donated, err = r.readUint64(); return },
		func() (err error) { d.Entitlement, err = r.readUint64(); return },
		func() (err error) { d.Contributor, err = r.readAddress(); return },
		func() (err error) { status, err = r.readByte(); return },
		r.done,
	)
	if err != nil {
		return nil, fmt.Errorf("decode donor ledger: %w", err)
	}
	if status > uint8(DonorRefunded) {
		return nil, fmt.Errorf("decode donor ledger: invalid status %d", status)
	}
	d.Status = DonorStatus(status)
	return d, nil
}

// EncodePlatformConfig writes fee route then owner.
func EncodePlatformConfig(cfg *PlatformConfig) []byte {
	w := newWriter()
	w.writeAddress(cfg.FeeRoute)
	w.writeAddress(cfg.Owner)
	return w.bytes()
}

// DecodePlatformConfig is the inverse of EncodePlatformConfig.
func DecodePlatformConfig(data []byte) (*PlatformConfig, error) {
	r := newReader(data)
	cfg := &PlatformConfig{}
	err := readAll(
		func() (err error) { cfg.FeeRoute, err = r.readAddress(); return },
		func() (err error) { cfg.Owner, err = r.readAddress(); return },
		r.done,
	)
	if err != nil {
		return nil, fmt.Errorf("decode platform config: %w", err)
	}
	return cfg, nil
}
