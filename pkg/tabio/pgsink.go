package tabio

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// PGSink stages output tables into a Postgres schema via COPY, inside a
// single transaction: Commit publishes every table at once, Abort rolls
// everything back. Useful when analysts want the node/relationship
// tables queryable relationally alongside the graph import.
type PGSink struct {
	conn   *pgx.Conn
	tx     pgx.Tx
	schema string
}

// NewPGSink connects with the given DSN and opens the staging
// transaction in the given schema (created if absent).
func NewPGSink(ctx context.Context, dsn, schema string) (*PGSink, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("begin staging transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		tx.Rollback(ctx)
		conn.Close(ctx)
		return nil, fmt.Errorf("create schema %s: %w", schema, err)
	}

	return &PGSink{conn: conn, tx: tx, schema: schema}, nil
}

// WriteTable replaces the named table in the staging schema and bulk
// loads the rows with COPY. All columns are text; typing is left to the
// consumers of the staging schema.
func (s *PGSink) WriteTable(ctx context.Context, name string, t *Table) error {
	ident := pgx.Identifier{s.schema, name}

	if _, err := s.tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
		return fmt.Errorf("drop staging table %s: %w", name, err)
	}

	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = pgx.Identifier{c}.Sanitize() + " text"
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", ident.Sanitize(), strings.Join(cols, ", "))
	if _, err := s.tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create staging table %s: %w", name, err)
	}

	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		vals := make([]any, len(row))
		for j, cell := range row {
			vals[j] = cell
		}
		rows[i] = vals
	}

	if _, err := s.tx.CopyFrom(ctx, ident, t.Columns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy into %s: %w", name, err)
	}
	return nil
}

// Commit commits the staging transaction and closes the connection.
func (s *PGSink) Commit(ctx context.Context) error {
	defer s.conn.Close(ctx)
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit staging transaction: %w", err)
	}
	return nil
}

// Abort rolls the staging transaction back and closes the connection.
func (s *PGSink) Abort(ctx context.Context) error {
	defer s.conn.Close(ctx)
	if err := s.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("rollback staging transaction: %w", err)
	}
	return nil
}
