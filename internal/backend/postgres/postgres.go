// Package postgres implements backend.Backend over a Postgres database via
// sqlx and lib/pq: each named single-value table becomes `single_<name>
// (key bytea primary key, value bytea)` and each named multimap becomes
// `multi_<name> (key bytea, value bytea, primary key(key,value))` -- the
// naming convention carried over from the system this module replaces.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/arx-os/s4d/internal/backend"
	apperrors "github.com/arx-os/s4d/pkg/errors"
)

// Backend opens transactions against a single Postgres connection pool.
type Backend struct {
	db *sqlx.DB
}

// Open connects to dsn and returns a ready Backend.
func Open(dsn string) (*Backend, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendBegin, "connect to postgres", err)
	}
	return &Backend{db: db}, nil
}

// Close closes the underlying connection pool.
func (b *Backend) Close() error {
	return b.db.Close()
}

func singleTableName(name string) string { return "single_" + name }
func multiTableName(name string) string  { return "multi_" + name }

// EnsureTable creates the backing single-value table for name if absent.
func (b *Backend) EnsureTable(ctx context.Context, name string) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key bytea PRIMARY KEY, value bytea NOT NULL)`, singleTableName(name))
	if _, err := b.db.ExecContext(ctx, q); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendTable, "create single table "+name, err)
	}
	return nil
}

// EnsureMultimap creates the backing multimap table for name if absent.
func (b *Backend) EnsureMultimap(ctx context.Context, name string) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key bytea NOT NULL, value bytea NOT NULL, PRIMARY KEY(key, value))`, multiTableName(name))
	if _, err := b.db.ExecContext(ctx, q); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendTable, "create multi table "+name, err)
	}
	return nil
}

// BeginRead opens a read-only transaction.
func (b *Backend) BeginRead(ctx context.Context) (backend.ReadTxn, error) {
	tx, err := b.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendBegin, "begin read transaction", err)
	}
	return &txn{ctx: ctx, tx: tx}, nil
}

// BeginWrite opens a read-write transaction.
func (b *Backend) BeginWrite(ctx context.Context) (backend.WriteTxn, error) {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendBegin, "begin write transaction", err)
	}
	return &txn{ctx: ctx, tx: tx}, nil
}

// txn wraps one *sqlx.Tx for both read and write views: Postgres enforces
// read-only at the driver level, so the Go wrapper needs no extra state.
type txn struct {
	ctx context.Context
	tx  *sqlx.Tx
}

func (t *txn) OpenTable(name string) (backend.Table, error) {
	return &pgTable{ctx: t.ctx, tx: t.tx, name: singleTableName(name)}, nil
}

func (t *txn) OpenMultimap(name string) (backend.Multimap, error) {
	return &pgMultimap{ctx: t.ctx, tx: t.tx, name: multiTableName(name)}, nil
}

func (t *txn) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendCommit, "commit transaction", err)
	}
	return nil
}

func (t *txn) Rollback() error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return apperrors.Wrap(apperrors.CodeBackendCommit, "rollback transaction", err)
	}
	return nil
}

func (t *txn) Close() error { return t.Rollback() }

type pgTable struct {
	ctx  context.Context
	tx   *sqlx.Tx
	name string
}

func (p *pgTable) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	var value []byte
	q := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.name)
	err := p.tx.GetContext(ctx, &value, q, key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.CodeBackendIO, "get from "+p.name, err)
	}
	return value, true, nil
}

func (p *pgTable) Insert(ctx context.Context, key, value []byte) error {
	q := fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, p.name)
	if _, err := p.tx.ExecContext(ctx, q, key, value); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "insert into "+p.name, err)
	}
	return nil
}

func (p *pgTable) Remove(ctx context.Context, key []byte) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.name)
	if _, err := p.tx.ExecContext(ctx, q, key); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "delete from "+p.name, err)
	}
	return nil
}

func (p *pgTable) Iterate(ctx context.Context, fn func(key, value []byte) bool) error {
	q := fmt.Sprintf(`SELECT key, value FROM %s`, p.name)
	rows, err := p.tx.QueryContext(ctx, q)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "iterate "+p.name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return apperrors.Wrap(apperrors.CodeBackendIO, "scan row in "+p.name, err)
		}
		if !fn(key, value) {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "iterate "+p.name, err)
	}
	return nil
}

type pgMultimap struct {
	ctx  context.Context
	tx   *sqlx.Tx
	name string
}

func (p *pgMultimap) Get(ctx context.Context, key []byte) ([][]byte, error) {
	var values [][]byte
	q := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.name)
	if err := p.tx.SelectContext(ctx, &values, q, key); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeBackendIO, "get from "+p.name, err)
	}
	return values, nil
}

func (p *pgMultimap) Insert(ctx context.Context, key, value []byte) error {
	q := fmt.Sprintf(`INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT DO NOTHING`, p.name)
	if _, err := p.tx.ExecContext(ctx, q, key, value); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "insert into "+p.name, err)
	}
	return nil
}

func (p *pgMultimap) Remove(ctx context.Context, key, value []byte) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE key = $1 AND value = $2`, p.name)
	if _, err := p.tx.ExecContext(ctx, q, key, value); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "delete from "+p.name, err)
	}
	return nil
}

func (p *pgMultimap) Iterate(ctx context.Context, fn func(key, value []byte) bool) error {
	q := fmt.Sprintf(`SELECT key, value FROM %s`, p.name)
	rows, err := p.tx.QueryContext(ctx, q)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "iterate "+p.name, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return apperrors.Wrap(apperrors.CodeBackendIO, "scan row in "+p.name, err)
		}
		if !fn(key, value) {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(apperrors.CodeBackendIO, "iterate "+p.name, err)
	}
	return nil
}
