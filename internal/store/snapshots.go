package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/ident"
)

const snapshotPrefix = "hgx:snap:"

// Snapshots stores whole documents as MessagePack blobs in BadgerDB,
// keyed hgx:snap:<name>. Writes replace; there is no history.
type Snapshots struct {
	db *badger.DB
}

// OpenSnapshots opens a snapshot store in dir. With inMemory the store
// keeps nothing on disk and dir may be empty.
func OpenSnapshots(dir string, inMemory bool) (*Snapshots, error) {
	if !inMemory && dir == "" {
		return nil, errors.New("store: snapshot dir is required for on-disk mode")
	}
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(badgerLogger{slog.Default()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshots: %w", err)
	}
	return &Snapshots{db: db}, nil
}

// Close closes the underlying database.
func (s *Snapshots) Close() error {
	return s.db.Close()
}

func snapshotKey(name string) []byte {
	return []byte(snapshotPrefix + name)
}

// PutSnapshot stores doc under name.
func PutSnapshot[N ident.ID](_ context.Context, s *Snapshots, name string, doc *codec.Document[N]) error {
	if name == "" {
		return errors.New("put snapshot: empty name")
	}
	payload, err := msgpack.Marshal(doc)
	if err != nil {
		return fmt.Errorf("put snapshot %q: %w", name, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(snapshotKey(name), payload)
	})
}

// GetSnapshot reads the document stored under name.
func GetSnapshot[N ident.ID](_ context.Context, s *Snapshots, name string) (*codec.Document[N], error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotKey(name))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("snapshot %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	var doc codec.Document[N]
	if err := msgpack.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", name, err)
	}
	return &doc, nil
}

// List returns the stored snapshot names in key order.
func (s *Snapshots) List(_ context.Context) ([]string, error) {
	prefix := []byte(snapshotPrefix)
	names := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = false
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, snapshotPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return names, nil
}

// Delete removes the snapshot stored under name. Returns ErrNotFound if
// there is none.
func (s *Snapshots) Delete(_ context.Context, name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(snapshotKey(name)); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("snapshot %q: %w", name, ErrNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(snapshotKey(name))
	})
}

// badgerLogger routes badger's warnings and errors to slog and drops
// its info and debug chatter.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(f, v...)), "component", "badger")
}

func (l badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(f, v...)), "component", "badger")
}

func (badgerLogger) Infof(string, ...interface{})  {}
func (badgerLogger) Debugf(string, ...interface{}) {}
