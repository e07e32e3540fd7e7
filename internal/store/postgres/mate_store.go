package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/types/feed"
	"frictlistAPI/internal/types/mate"
	"frictlistAPI/internal/types/user"
)

// Mates implements store.MateStore.
type Mates struct {
	db *pgxpool.Pool
}

func NewMates(db *pgxpool.Pool) *Mates {
	return &Mates{db: db}
}

func (s *Mates) Insert(ctx context.Context, m *mate.Mate) (int64, error) {
	query := `
	INSERT INTO mate (uid, mate_first_name, mate_last_name, mate_gender, accepted, deleted, last_update)
	VALUES ($1, $2, $3, $4, 0, FALSE, $5)
	RETURNING mate_id
	`

	var mateID int64
	err := s.db.QueryRow(ctx, query, m.UID, m.FirstName, m.LastName, m.Gender, m.LastUpdate).Scan(&mateID)
	if err != nil {
		return 0, fmt.Errorf("failed to create mate: %w", err)
	}
	return mateID, nil
}

func (s *Mates) UpdateIdentity(ctx context.Context, mateID int64, first, last string, gender int, at time.Time) (int64, error) {
	query := `
	UPDATE mate
	SET mate_first_name = $1, mate_last_name = $2, mate_gender = $3, last_update = $4
	WHERE mate_id = $5
	`

	tag, err := s.db.Exec(ctx, query, first, last, gender, at, mateID)
	if err != nil {
		return 0, fmt.Errorf("failed to update mate: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Mates) TombstoneCascade(ctx context.Context, mateID int64, at time.Time) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
	UPDATE frict SET deleted = TRUE, delete_datetime = $1
	WHERE mate_id = $2 AND (deleted IS NULL OR deleted = FALSE)
	`, at, mateID)
	if err != nil {
		return fmt.Errorf("failed to tombstone fricts: %w", err)
	}

	tag, err := tx.Exec(ctx, `
	UPDATE mate SET deleted = TRUE, last_update = $1 WHERE mate_id = $2
	`, at, mateID)
	if err != nil {
		return fmt.Errorf("failed to tombstone mate: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return apperr.ErrUpdateFailed
	}

	return tx.Commit(ctx)
}

func (s *Mates) Withdraw(ctx context.Context, mateID int64) (int64, error) {
	tag, err := s.db.Exec(ctx, `UPDATE mate SET accepted = $1 WHERE mate_id = $2`, mate.AcceptedWithdrawn, mateID)
	if err != nil {
		return 0, fmt.Errorf("failed to withdraw mate: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Mates) Accepted(ctx context.Context, mateID int64) (int, error) {
	var accepted int
	if err := s.db.QueryRow(ctx, `SELECT accepted FROM mate WHERE mate_id = $1`, mateID).Scan(&accepted); err != nil {
		return 0, fmt.Errorf("failed to get accepted state: %w", err)
	}
	return accepted, nil
}

func (s *Mates) Name(ctx context.Context, mateID int64) (string, string, error) {
	var first, last string
	err := s.db.QueryRow(ctx, `SELECT mate_first_name, mate_last_name FROM mate WHERE mate_id = $1`, mateID).Scan(&first, &last)
	if err != nil {
		return "", "", fmt.Errorf("failed to get mate name: %w", err)
	}
	return first, last, nil
}

func (s *Mates) OwnerName(ctx context.Context, mateID int64) (string, string, error) {
	query := `
	SELECT u.first_name, u.last_name
	FROM users u JOIN mate m ON m.uid = u.uid
	WHERE m.mate_id = $1
	`
	var first, last string
	if err := s.db.QueryRow(ctx, query, mateID).Scan(&first, &last); err != nil {
		return "", "", fmt.Errorf("failed to get mate owner name: %w", err)
	}
	return first, last, nil
}

func (s *Mates) OwnerDevice(ctx context.Context, mateID int64) (user.Device, error) {
	query := `
	SELECT u.token, u.platform
	FROM users u JOIN mate m ON m.uid = u.uid
	WHERE m.mate_id = $1
	`
	var d user.Device
	if err := s.db.QueryRow(ctx, query, mateID).Scan(&d.Token, &d.Platform); err != nil {
		return user.Device{}, fmt.Errorf("failed to get owner device: %w", err)
	}
	return d, nil
}

func (s *Mates) CounterpartDevice(ctx context.Context, mateID int64) (user.Device, error) {
	query := `
	SELECT u.token, u.platform
	FROM users u JOIN request r ON r.uid = u.uid
	WHERE r.mate_id = $1
	`
	var d user.Device
	if err := s.db.QueryRow(ctx, query, mateID).Scan(&d.Token, &d.Platform); err != nil {
		return user.Device{}, fmt.Errorf("failed to get counterpart device: %w", err)
	}
	return d, nil
}

func (s *Mates) ActiveByOwner(ctx context.Context, uid int64) ([]feed.OwnedMate, error) {
	query := `
	SELECT m.mate_id, m.uid, m.mate_first_name, m.mate_last_name, m.mate_gender,
	       m.accepted, m.deleted, m.last_update, r.uid AS counterpart_uid
	FROM mate m
	LEFT JOIN request r ON r.mate_id = m.mate_id
	WHERE m.uid = $1 AND (m.deleted IS NULL OR m.deleted = FALSE)
	ORDER BY m.mate_id ASC
	`

	rows, err := s.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list mates: %w", err)
	}
	defer rows.Close()

	var out []feed.OwnedMate
	for rows.Next() {
		var om feed.OwnedMate
		err := rows.Scan(
			&om.Mate.MateID,
			&om.Mate.UID,
			&om.Mate.FirstName,
			&om.Mate.LastName,
			&om.Mate.Gender,
			&om.Mate.Accepted,
			&om.Mate.Deleted,
			&om.Mate.LastUpdate,
			&om.CounterpartUID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mate row: %w", err)
		}
		out = append(out, om)
	}
	return out, rows.Err()
}
