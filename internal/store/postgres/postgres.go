// Package postgres implements the store contracts over a pgx connection
// pool with raw parameterized SQL. Identifier strings (table and column
// names) only ever come from the whitelist in the store package.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"frictlistAPI/internal/store"
)

type Store struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) CountByID(ctx context.Context, table store.Table, id int64) (int, error) {
	col, ok := table.IDColumn()
	if !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	// Identifiers are interpolated from the fixed enum above; the id is a
	// bound parameter.
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", table, col)

	var count int
	if err := s.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s rows: %w", table, err)
	}
	return count, nil
}
