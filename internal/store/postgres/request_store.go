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

// Requests implements store.RequestStore.
type Requests struct {
	db *pgxpool.Pool
}

func NewRequests(db *pgxpool.Pool) *Requests {
	return &Requests{db: db}
}

func (s *Requests) Insert(ctx context.Context, r *mate.Request) (int64, error) {
	query := `
	INSERT INTO request (mate_id, uid, request_datetime, request_status)
	VALUES ($1, $2, $3, 0)
	RETURNING request_id
	`

	var requestID int64
	err := s.db.QueryRow(ctx, query, r.MateID, r.UID, r.RequestDatetime).Scan(&requestID)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	return requestID, nil
}

func (s *Requests) Respond(ctx context.Context, requestID, mateID int64, status int, at time.Time) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE mate SET accepted = $1 WHERE mate_id = $2`, status, mateID)
	if err != nil {
		return fmt.Errorf("failed to update mate accepted state: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return apperr.ErrUpdateFailed
	}

	tag, err = tx.Exec(ctx, `
	UPDATE request SET request_status = $1, accept_datetime = $2 WHERE request_id = $3
	`, status, at, requestID)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return apperr.ErrUpdateFailed
	}

	return tx.Commit(ctx)
}

func (s *Requests) RecipientDevice(ctx context.Context, requestID int64) (user.Device, error) {
	query := `
	SELECT u.token, u.platform
	FROM request r JOIN users u ON u.uid = r.uid
	WHERE r.request_id = $1
	`
	var d user.Device
	if err := s.db.QueryRow(ctx, query, requestID).Scan(&d.Token, &d.Platform); err != nil {
		return user.Device{}, fmt.Errorf("failed to get recipient device: %w", err)
	}
	return d, nil
}

func (s *Requests) SenderDevice(ctx context.Context, requestID int64) (user.Device, error) {
	query := `
	SELECT u.token, u.platform
	FROM request r
	JOIN mate m ON m.mate_id = r.mate_id
	JOIN users u ON u.uid = m.uid
	WHERE r.request_id = $1
	`
	var d user.Device
	if err := s.db.QueryRow(ctx, query, requestID).Scan(&d.Token, &d.Platform); err != nil {
		return user.Device{}, fmt.Errorf("failed to get sender device: %w", err)
	}
	return d, nil
}

func (s *Requests) InboxForRecipient(ctx context.Context, uid int64) ([]feed.InboxEntry, error) {
	query := `
	SELECT r.request_id, r.mate_id, r.uid, r.request_status, r.request_datetime, r.accept_datetime,
	       m.uid, m.mate_first_name, m.mate_last_name, m.mate_gender, m.accepted, m.deleted, m.last_update,
	       u.uid, u.first_name, u.last_name, u.username, u.gender, u.birthdate
	FROM request r
	JOIN mate m ON m.mate_id = r.mate_id
	JOIN users u ON u.uid = m.uid
	WHERE r.uid = $1
	ORDER BY r.request_id ASC
	`

	rows, err := s.db.Query(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load request inbox: %w", err)
	}
	defer rows.Close()

	var out []feed.InboxEntry
	for rows.Next() {
		var e feed.InboxEntry
		err := rows.Scan(
			&e.Request.RequestID,
			&e.Request.MateID,
			&e.Request.UID,
			&e.Request.Status,
			&e.Request.RequestDatetime,
			&e.Request.AcceptDatetime,
			&e.Mate.UID,
			&e.Mate.FirstName,
			&e.Mate.LastName,
			&e.Mate.Gender,
			&e.Mate.Accepted,
			&e.Mate.Deleted,
			&e.Mate.LastUpdate,
			&e.Sender.UID,
			&e.Sender.FirstName,
			&e.Sender.LastName,
			&e.Sender.Username,
			&e.Sender.Gender,
			&e.Sender.Birthdate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inbox row: %w", err)
		}
		e.Mate.MateID = e.Request.MateID
		out = append(out, e)
	}
	return out, rows.Err()
}
