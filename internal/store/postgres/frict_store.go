package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/types/frict"
)

// Fricts implements store.FrictStore. Every write routes through the Edit
// type so a side can only ever touch its own column set.
type Fricts struct {
	db *pgxpool.Pool
}

func NewFricts(db *pgxpool.Pool) *Fricts {
	return &Fricts{db: db}
}

func (s *Fricts) Insert(ctx context.Context, mateID int64, e frict.Edit, at time.Time) (int64, error) {
	var query string
	switch e.Side {
	case frict.CreatorSide:
		query = `
		INSERT INTO frict (mate_id, frict_from_date, frict_rating, frict_base, notes, creation_datetime, last_update, creator, lat, lon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)
		RETURNING frict_id
		`
	case frict.CounterpartSide:
		query = `
		INSERT INTO frict (mate_id, frict_from_date, mate_rating, frict_base, mate_notes, creation_datetime, mate_last_update, creator, lat, lon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)
		RETURNING frict_id
		`
	default:
		return 0, apperr.ErrInvalidCreatorFlag
	}

	var frictID int64
	err := s.db.QueryRow(ctx, query, mateID, e.FromDate, e.Rating, e.Base, e.Notes, at, at, e.Lat, e.Lon).Scan(&frictID)
	if err != nil {
		return 0, fmt.Errorf("failed to create frict: %w", err)
	}
	return frictID, nil
}

func (s *Fricts) Update(ctx context.Context, frictID int64, e frict.Edit, at time.Time) (int64, error) {
	var query string
	switch e.Side {
	case frict.CreatorSide:
		query = `
		UPDATE frict
		SET frict_from_date = $1, frict_rating = $2, frict_base = $3, notes = $4, lat = $5, lon = $6, last_update = $7
		WHERE frict_id = $8
		`
	case frict.CounterpartSide:
		query = `
		UPDATE frict
		SET frict_from_date = $1, mate_rating = $2, frict_base = $3, mate_notes = $4, lat = $5, lon = $6, mate_last_update = $7
		WHERE frict_id = $8
		`
	default:
		return 0, apperr.ErrInvalidCreatorFlag
	}

	tag, err := s.db.Exec(ctx, query, e.FromDate, e.Rating, e.Base, e.Notes, e.Lat, e.Lon, at, frictID)
	if err != nil {
		return 0, fmt.Errorf("failed to update frict: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Fricts) Remove(ctx context.Context, frictID int64, side frict.Side, at time.Time) (int64, error) {
	var query string
	switch side {
	case frict.CreatorSide:
		// The not-yet-deleted predicate makes a second removal affect zero
		// rows, which the caller reports as a failed update.
		query = `
		UPDATE frict SET deleted = TRUE, delete_datetime = $1
		WHERE frict_id = $2 AND (deleted IS NULL OR deleted = FALSE)
		`
	case frict.CounterpartSide:
		query = `
		UPDATE frict SET mate_deleted = TRUE, mate_last_update = $1
		WHERE frict_id = $2 AND (mate_deleted IS NULL OR mate_deleted = FALSE)
		`
	default:
		return 0, apperr.ErrInvalidCreatorFlag
	}

	tag, err := s.db.Exec(ctx, query, at, frictID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove frict: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Fricts) FromDate(ctx context.Context, frictID int64) (string, error) {
	var date string
	if err := s.db.QueryRow(ctx, `SELECT frict_from_date FROM frict WHERE frict_id = $1`, frictID).Scan(&date); err != nil {
		return "", fmt.Errorf("failed to get frict date: %w", err)
	}
	return date, nil
}

func (s *Fricts) ByMate(ctx context.Context, mateID int64) ([]frict.Frict, error) {
	query := `
	SELECT frict_id, mate_id, creator, frict_from_date, frict_base, lat, lon,
	       frict_rating, notes, deleted, creation_datetime, delete_datetime, last_update,
	       mate_rating, mate_notes, mate_deleted, mate_last_update
	FROM frict
	WHERE mate_id = $1
	ORDER BY frict_id ASC
	`

	rows, err := s.db.Query(ctx, query, mateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fricts: %w", err)
	}
	defer rows.Close()

	var out []frict.Frict
	for rows.Next() {
		var f frict.Frict
		err := rows.Scan(
			&f.FrictID,
			&f.MateID,
			&f.Author,
			&f.FromDate,
			&f.Base,
			&f.Lat,
			&f.Lon,
			&f.Creator.Rating,
			&f.Creator.Notes,
			&f.Creator.Deleted,
			&f.Creator.CreationDatetime,
			&f.Creator.DeleteDatetime,
			&f.Creator.LastUpdate,
			&f.Counterpart.Rating,
			&f.Counterpart.Notes,
			&f.Counterpart.Deleted,
			&f.Counterpart.LastUpdate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan frict row: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
