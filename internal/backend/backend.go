// Package backend defines the durable key-value store capability the core
// can optionally persist through: named tables are either single-value
// maps or multimaps, accessed through begin-read/begin-write transactions.
package backend

import "context"

// Table is a single-value map: bytes -> bytes.
type Table interface {
	Get(ctx context.Context, key []byte) (value []byte, ok bool, err error)
	Insert(ctx context.Context, key, value []byte) error
	Remove(ctx context.Context, key []byte) error
	Iterate(ctx context.Context, fn func(key, value []byte) bool) error
}

// Multimap is a bytes -> set-of-bytes map.
type Multimap interface {
	Get(ctx context.Context, key []byte) (values [][]byte, err error)
	Insert(ctx context.Context, key, value []byte) error
	Remove(ctx context.Context, key, value []byte) error
	Iterate(ctx context.Context, fn func(key, value []byte) bool) error
}

// ReadTxn is a read-only view over a backend's tables, consistent for its
// whole lifetime.
type ReadTxn interface {
	OpenTable(name string) (Table, error)
	OpenMultimap(name string) (Multimap, error)
	Close() error
}

// WriteTxn is an exclusive, atomic view: either every staged mutation lands
// on Commit, or none do.
type WriteTxn interface {
	ReadTxn
	Commit() error
	Rollback() error
}

// Backend is the durable key-value store capability itself.
type Backend interface {
	BeginRead(ctx context.Context) (ReadTxn, error)
	BeginWrite(ctx context.Context) (WriteTxn, error)
}
