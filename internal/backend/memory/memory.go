// Package memory implements backend.Backend entirely in memory, with
// copy-on-write semantics on write-transaction commit: readers never see a
// partially-applied write. This is the default backend.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/arx-os/s4d/internal/backend"
	"github.com/arx-os/s4d/internal/logger"
	apperrors "github.com/arx-os/s4d/pkg/errors"
)

type tableData map[string][]byte
type multimapData map[string]map[string][]byte

// Backend holds the current committed snapshot: one generation of tables
// and multimaps, swapped wholesale on each write commit.
type Backend struct {
	mu        sync.RWMutex
	tables    map[string]tableData
	multimaps map[string]multimapData
}

// New returns an empty Backend.
func New() *Backend {
	return &Backend{
		tables:    make(map[string]tableData),
		multimaps: make(map[string]multimapData),
	}
}

func (b *Backend) snapshot() (map[string]tableData, map[string]multimapData) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tables, b.multimaps
}

// BeginRead returns a consistent read-only view over the backend's current
// generation.
func (b *Backend) BeginRead(ctx context.Context) (backend.ReadTxn, error) {
	tables, multimaps := b.snapshot()
	return &readTxn{tables: tables, multimaps: multimaps}, nil
}

// BeginWrite stages mutations against a deep copy of the current
// generation; Commit atomically publishes it as the new generation.
func (b *Backend) BeginWrite(ctx context.Context) (backend.WriteTxn, error) {
	tables, multimaps := b.snapshot()
	staged := &writeTxn{
		id:        uuid.New(),
		backend:   b,
		tables:    cloneTables(tables),
		multimaps: cloneMultimaps(multimaps),
	}
	return staged, nil
}

func cloneTables(src map[string]tableData) map[string]tableData {
	out := make(map[string]tableData, len(src))
	for name, t := range src {
		nt := make(tableData, len(t))
		for k, v := range t {
			nt[k] = v
		}
		out[name] = nt
	}
	return out
}

func cloneMultimaps(src map[string]multimapData) map[string]multimapData {
	out := make(map[string]multimapData, len(src))
	for name, m := range src {
		nm := make(multimapData, len(m))
		for k, vs := range m {
			nvs := make(map[string][]byte, len(vs))
			for vk, v := range vs {
				nvs[vk] = v
			}
			nm[k] = nvs
		}
		out[name] = nm
	}
	return out
}

type readTxn struct {
	tables    map[string]tableData
	multimaps map[string]multimapData
}

func (r *readTxn) OpenTable(name string) (backend.Table, error) {
	t, ok := r.tables[name]
	if !ok {
		t = make(tableData)
	}
	return &memTable{data: t, readOnly: true}, nil
}

func (r *readTxn) OpenMultimap(name string) (backend.Multimap, error) {
	m, ok := r.multimaps[name]
	if !ok {
		m = make(multimapData)
	}
	return &memMultimap{data: m, readOnly: true}, nil
}

func (r *readTxn) Close() error { return nil }

type writeTxn struct {
	id        uuid.UUID
	backend   *Backend
	tables    map[string]tableData
	multimaps map[string]multimapData
	done      bool
}

func (w *writeTxn) OpenTable(name string) (backend.Table, error) {
	if w.done {
		return nil, apperrors.New(apperrors.CodeBackendTable, "transaction already closed")
	}
	t, ok := w.tables[name]
	if !ok {
		t = make(tableData)
		w.tables[name] = t
	}
	return &memTable{data: t}, nil
}

func (w *writeTxn) OpenMultimap(name string) (backend.Multimap, error) {
	if w.done {
		return nil, apperrors.New(apperrors.CodeBackendTable, "transaction already closed")
	}
	m, ok := w.multimaps[name]
	if !ok {
		m = make(multimapData)
		w.multimaps[name] = m
	}
	return &memMultimap{data: m}, nil
}

func (w *writeTxn) Commit() error {
	if w.done {
		return apperrors.New(apperrors.CodeBackendCommit, "transaction already closed")
	}
	w.backend.mu.Lock()
	w.backend.tables = w.tables
	w.backend.multimaps = w.multimaps
	w.backend.mu.Unlock()
	w.done = true
	logger.Log.WithField("txn_id", w.id).Debug("committed memory write transaction")
	return nil
}

func (w *writeTxn) Rollback() error {
	w.done = true
	return nil
}

func (w *writeTxn) Close() error { return w.Rollback() }

type memTable struct {
	data     tableData
	readOnly bool
}

func (t *memTable) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	v, ok := t.data[string(key)]
	return v, ok, nil
}

func (t *memTable) Insert(ctx context.Context, key, value []byte) error {
	if t.readOnly {
		return apperrors.New(apperrors.CodeBackendIO, "write on a read-only transaction")
	}
	t.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (t *memTable) Remove(ctx context.Context, key []byte) error {
	if t.readOnly {
		return apperrors.New(apperrors.CodeBackendIO, "write on a read-only transaction")
	}
	delete(t.data, string(key))
	return nil
}

func (t *memTable) Iterate(ctx context.Context, fn func(key, value []byte) bool) error {
	for k, v := range t.data {
		if !fn([]byte(k), v) {
			break
		}
	}
	return nil
}

type memMultimap struct {
	data     multimapData
	readOnly bool
}

func (m *memMultimap) Get(ctx context.Context, key []byte) ([][]byte, error) {
	vs, ok := m.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([][]byte, 0, len(vs))
	for _, v := range vs {
		out = append(out, v)
	}
	return out, nil
}

func (m *memMultimap) Insert(ctx context.Context, key, value []byte) error {
	if m.readOnly {
		return apperrors.New(apperrors.CodeBackendIO, "write on a read-only transaction")
	}
	vs, ok := m.data[string(key)]
	if !ok {
		vs = make(map[string][]byte)
		m.data[string(key)] = vs
	}
	vs[string(value)] = append([]byte(nil), value...)
	return nil
}

func (m *memMultimap) Remove(ctx context.Context, key, value []byte) error {
	if m.readOnly {
		return apperrors.New(apperrors.CodeBackendIO, "write on a read-only transaction")
	}
	vs, ok := m.data[string(key)]
	if !ok {
		return nil
	}
	delete(vs, string(value))
	if len(vs) == 0 {
		delete(m.data, string(key))
	}
	return nil
}

func (m *memMultimap) Iterate(ctx context.Context, fn func(key, value []byte) bool) error {
	for k, vs := range m.data {
		for _, v := range vs {
			if !fn([]byte(k), v) {
				return nil
			}
		}
	}
	return nil
}
