// Package identity validates referenced ids before any mutation proceeds.
package identity

import (
	"context"
	"fmt"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/store"
)

type Guard struct {
	counter store.IdentityCounter
}

func NewGuard(counter store.IdentityCounter) *Guard {
	return &Guard{counter: counter}
}

// Validate checks that id is non-negative and matches exactly one row of
// the whitelisted table. Callers validate every referenced id, in a fixed
// order, before touching storage.
func (g *Guard) Validate(ctx context.Context, table store.Table, id int64) error {
	if id < 0 {
		return apperr.ErrInvalidID
	}

	count, err := g.counter.CountByID(ctx, table, id)
	if err != nil {
		return fmt.Errorf("failed to validate %s id %d: %w", table, id, err)
	}
	if count != 1 {
		return apperr.ErrNotFoundOrAmbiguous
	}
	return nil
}
