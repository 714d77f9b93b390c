// Package store provides disk-backed storage for large searches.
//
// [BadgerClosedList] implements search.ClosedList on BadgerDB so duplicate
// detection can outgrow memory. Keys are the compact encoding produced by
// search.EncodeKey; values are empty.
package store

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v4"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/perm"
	"github.com/matzehuels/orbit/pkg/search"
)

// keyPrefix namespaces closed-list entries within the database.
const keyPrefix = 'c'

// BadgerClosedList is a search.ClosedList stored in BadgerDB.
// It is safe for concurrent use.
type BadgerClosedList struct {
	db *badger.DB

	// mu serializes inserts so that the read and write of one insert never
	// conflict with another transaction.
	mu    sync.Mutex
	count int
}

var _ search.ClosedList = (*BadgerClosedList)(nil)

// Options configures OpenClosedList.
type Options struct {
	// Dir is the database directory. Empty keeps everything in memory.
	Dir string

	// Logger receives BadgerDB's own messages. Nil silences them.
	Logger *log.Logger
}

// OpenClosedList opens or creates a closed list. Keys already present in
// an existing directory count as closed.
func OpenClosedList(opts Options) (*BadgerClosedList, error) {
	dbOpts := badger.DefaultOptions(opts.Dir)
	if opts.Dir == "" {
		dbOpts = dbOpts.WithInMemory(true)
	}
	dbOpts.Logger = nil
	if opts.Logger != nil {
		dbOpts.Logger = badgerLogger{opts.Logger}
	}
	dbOpts.MetricsEnabled = false

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("open closed list: %w", err)
	}
	cl := &BadgerClosedList{db: db}
	if opts.Dir != "" {
		if cl.count, err = countKeys(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return cl, nil
}

func countKeys(db *badger.DB) (int, error) {
	n := 0
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         []byte{keyPrefix},
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count closed states: %w", err)
	}
	return n, nil
}

func encode(key perm.State) []byte {
	return search.EncodeKey([]byte{keyPrefix}, key)
}

// Insert implements search.ClosedList.
func (c *BadgerClosedList) Insert(key perm.State) (bool, error) {
	k := encode(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	added := false
	err := c.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		if err == nil {
			return nil
		}
		if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		added = true
		return txn.Set(k, nil)
	})
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "insert closed state")
	}
	if added {
		c.count++
	}
	return added, nil
}

// Contains implements search.ClosedList.
func (c *BadgerClosedList) Contains(key perm.State) (bool, error) {
	k := encode(key)
	found := false
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(k)
		switch {
		case err == nil:
			found = true
			return nil
		case stderrors.Is(err, badger.ErrKeyNotFound):
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err, "look up closed state")
	}
	return found, nil
}

// Len implements search.ClosedList.
func (c *BadgerClosedList) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Each calls fn for every closed key in key order until fn returns an
// error, which Each then returns.
func (c *BadgerClosedList) Each(fn func(perm.State) error) error {
	return c.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         []byte{keyPrefix},
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			st, err := search.DecodeKey(it.Item().Key()[1:])
			if err != nil {
				return err
			}
			if err := fn(st); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close flushes and closes the database.
func (c *BadgerClosedList) Close() error {
	return c.db.Close()
}

// badgerLogger routes BadgerDB messages to a charmbracelet logger. Badger's
// info messages are routine and go to debug.
type badgerLogger struct {
	l *log.Logger
}

func (b badgerLogger) Errorf(format string, args ...any)   { b.l.Errorf(format, args...) }
func (b badgerLogger) Warningf(format string, args ...any) { b.l.Warnf(format, args...) }
func (b badgerLogger) Infof(format string, args ...any)    { b.l.Debugf(format, args...) }
func (b badgerLogger) Debugf(format string, args ...any)   { b.l.Debugf(format, args...) }
