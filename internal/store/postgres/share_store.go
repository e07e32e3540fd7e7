package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"frictlistAPI/internal/types/share"
)

// Shares implements store.ShareStore.
type Shares struct {
	db *pgxpool.Pool
}

func NewShares(db *pgxpool.Pool) *Shares {
	return &Shares{db: db}
}

func (s *Shares) Insert(ctx context.Context, sh *share.Share) (int64, error) {
	query := `
	INSERT INTO share (uid, share_type, share_status, mate_id, share_datetime)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING share_id
	`

	var shareID int64
	err := s.db.QueryRow(ctx, query, sh.UID, sh.Type, sh.Status, sh.MateID, sh.Datetime).Scan(&shareID)
	if err != nil {
		return 0, fmt.Errorf("failed to create share: %w", err)
	}
	return shareID, nil
}

func (s *Shares) AndroidEmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM android_app_list WHERE email = $1`, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check waitlist email: %w", err)
	}
	return count != 0, nil
}

func (s *Shares) InsertAndroidEmail(ctx context.Context, email string, at time.Time) error {
	if _, err := s.db.Exec(ctx, `INSERT INTO android_app_list (email, add_datetime) VALUES ($1, $2)`, email, at); err != nil {
		return fmt.Errorf("failed to add waitlist email: %w", err)
	}
	return nil
}
