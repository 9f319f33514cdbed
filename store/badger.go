package store

import (
	"errors"
	"fmt"
	"os"

	badgerdb "github.com/dgraph-io/badger/v3"
	"go.uber.org/zap"

	"zetasbox/contract"
)

// Badger is a durable contract.Store. Each Update is one serializable badger transaction.
type Badger struct {
	db  *badgerdb.DB
	log *zap.Logger
}

var _ contract.Store = (*Badger)(nil)

// Open opens (or creates) the database in dir. inMemory ignores dir and keeps nothing on disk.
func Open(dir string, inMemory bool, log *zap.Logger) (*Badger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("badger")

	var opts badgerdb.Options
	if inMemory {
		opts = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
		opts = badgerdb.DefaultOptions(dir)
	}
	opts = opts.WithLogger(&badgerLogger{log: log.Sugar()})
	opts.NumCompactors = 2
	opts.BlockCacheSize = 32 << 20
	opts.IndexCacheSize = 16 << 20

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	log.Info("store opened", zap.String("dir", dir), zap.Bool("in_memory", inMemory))
	return &Badger{db: db, log: log}, nil
}

// Close flushes and closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}

func (b *Badger) Update(fn func(contract.State) error) error {
	err := b.db.Update(func(txn *badgerdb.Txn) error {
		st := &txnState{txn: txn}
		if err := fn(st); err != nil {
			return err
		}
		return st.err
	})
	if errors.Is(err, badgerdb.ErrConflict) {
		return fmt.Errorf("badger commit: %w", err)
	}
	return err
}

func (b *Badger) View(fn func(contract.State) error) error {
	return b.db.View(func(txn *badgerdb.Txn) error {
		st := &txnState{txn: txn, readOnly: true}
		if err := fn(st); err != nil {
			return err
		}
		return st.err
	})
}

// txnState adapts a badger transaction to contract.State. The first storage error is kept and
// fails the enclosing Update, since State itself has no error returns.
type txnState struct {
	txn      *badgerdb.Txn
	readOnly bool
	err      error
}

func (s *txnState) keep(err error) {
	if s.err == nil && err != nil {
		s.err = err
	}
}

func (s *txnState) Get(key string) *string {
	item, err := s.txn.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, badgerdb.ErrKeyNotFound) {
			s.keep(fmt.Errorf("badger get: %w", err))
		}
		return nil
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		s.keep(fmt.Errorf("badger value: %w", err))
		return nil
	}
	out := string(val)
	return &out
}

func (s *txnState) Set(key, value string) {
	if s.readOnly {
		s.keep(badgerdb.ErrReadOnlyTxn)
		return
	}
	s.keep(s.txn.Set([]byte(key), []byte(value)))
}

func (s *txnState) Delete(key string) {
	if s.readOnly {
		s.keep(badgerdb.ErrReadOnlyTxn)
		return
	}
	s.keep(s.txn.Delete([]byte(key)))
}

// badgerLogger routes badger's own logging into zap.
type badgerLogger struct {
	log *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}
