package search

import (
	"bytes"
	"encoding/binary"
	"hash/maphash"
	"sync"

	"github.com/matzehuels/orbit/pkg/errors"
	"github.com/matzehuels/orbit/pkg/observability"
	"github.com/matzehuels/orbit/pkg/perm"
)

// ClosedList records the keys of states a search has closed.
type ClosedList interface {
	// Insert adds key and reports whether it was new.
	Insert(key perm.State) (bool, error)

	// Contains reports whether key has been inserted.
	Contains(key perm.State) (bool, error)

	// Len returns the number of distinct keys.
	Len() int

	Close() error
}

// CloseState inserts the key of state into closed and reports whether the
// state is new. A state whose key is already present is a duplicate of a
// state closed earlier, possibly a symmetric one.
func (p *Pruner) CloseState(closed ClosedList, state perm.State) (bool, error) {
	inserted, err := closed.Insert(p.StateKey(state))
	if err != nil {
		return false, err
	}
	if !inserted {
		observability.Search().OnDuplicate(p.mode.String())
	}
	return inserted, nil
}

// EncodeKey appends the compact encoding of a state key to dst: the
// number of variables followed by each value, all as uvarints.
func EncodeKey(dst []byte, key perm.State) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(key)))
	for _, v := range key {
		dst = binary.AppendUvarint(dst, uint64(v))
	}
	return dst
}

// DecodeKey reverses EncodeKey.
func DecodeKey(b []byte) (perm.State, error) {
	n, k := binary.Uvarint(b)
	if k <= 0 || n > uint64(len(b)) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "corrupt state key")
	}
	b = b[k:]
	out := make(perm.State, n)
	for i := range out {
		v, k := binary.Uvarint(b)
		if k <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "corrupt state key")
		}
		out[i] = int(v)
		b = b[k:]
	}
	if len(b) != 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "trailing bytes in state key")
	}
	return out, nil
}

const defaultPoolSize = 32 * 1024

// MemoryClosedList is an in-memory ClosedList. Encoded keys live in large
// shared buffers and are indexed by an open-addressed hash table.
type MemoryClosedList struct {
	mu       sync.Mutex
	seed     maphash.Seed
	table    map[uint64][]byte
	pool     []byte
	poolUsed int
}

// NewMemoryClosedList creates an empty in-memory closed list.
func NewMemoryClosedList() *MemoryClosedList {
	return &MemoryClosedList{
		seed:  maphash.MakeSeed(),
		table: make(map[uint64][]byte),
	}
}

// lookup returns the slot of enc and whether it is occupied by enc.
// Collisions probe successive slots.
func (m *MemoryClosedList) lookup(enc []byte) (uint64, bool) {
	h := maphash.Bytes(m.seed, enc)
	existing, found := m.table[h]
	for found {
		if bytes.Equal(existing, enc) {
			return h, true
		}
		h++
		existing, found = m.table[h]
	}
	return h, false
}

// Insert implements ClosedList.
func (m *MemoryClosedList) Insert(key perm.State) (bool, error) {
	var buf [64]byte
	enc := EncodeKey(buf[:0], key)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.table == nil {
		return false, errors.New(errors.ErrCodeInvalidState, "closed list is closed")
	}
	slot, found := m.lookup(enc)
	if found {
		return false, nil
	}

	if m.poolUsed+len(enc) > cap(m.pool) {
		m.pool = make([]byte, max(defaultPoolSize, len(enc)))
		m.poolUsed = 0
	}
	m.table[slot] = append(m.pool[m.poolUsed:m.poolUsed], enc...)
	m.poolUsed += len(enc)
	return true, nil
}

// Contains implements ClosedList.
func (m *MemoryClosedList) Contains(key perm.State) (bool, error) {
	var buf [64]byte
	enc := EncodeKey(buf[:0], key)

	m.mu.Lock()
	defer m.mu.Unlock()
	_, found := m.lookup(enc)
	return found, nil
}

// Len implements ClosedList.
func (m *MemoryClosedList) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.table)
}

// Close releases the stored keys. Further inserts fail.
func (m *MemoryClosedList) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table = nil
	m.pool = nil
	m.poolUsed = 0
	return nil
}
