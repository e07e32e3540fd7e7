package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/types/feed"
	"frictlistAPI/internal/types/user"
)

// Users implements store.UserStore.
type Users struct {
	db *pgxpool.Pool
}

func NewUsers(db *pgxpool.Pool) *Users {
	return &Users{db: db}
}

func (s *Users) Insert(ctx context.Context, u *user.User) (int64, error) {
	query := `
	INSERT INTO users (email, username, password, first_name, last_name, birthdate, gender, creation_datetime, platform, token)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING uid
	`

	var uid int64
	err := s.db.QueryRow(
		ctx,
		query,
		u.Email,
		u.Username,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Birthdate,
		u.Gender,
		u.CreatedAt,
		u.Platform,
		u.DeviceToken,
	).Scan(&uid)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return uid, nil
}

func (s *Users) ByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
	SELECT uid, email, username, password, first_name, last_name, birthdate, gender, platform, token, creation_datetime
	FROM users
	WHERE username = $1
	`
	return s.scanUser(s.db.QueryRow(ctx, query, username))
}

func (s *Users) ByUID(ctx context.Context, uid int64) (*user.User, error) {
	query := `
	SELECT uid, email, username, password, first_name, last_name, birthdate, gender, platform, token, creation_datetime
	FROM users
	WHERE uid = $1
	`
	return s.scanUser(s.db.QueryRow(ctx, query, uid))
}

func (s *Users) scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.UID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Birthdate,
		&u.Gender,
		&u.Platform,
		&u.DeviceToken,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFoundOrAmbiguous
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *Users) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count != 0, nil
}

func (s *Users) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count != 0, nil
}

func (s *Users) UpdateDeviceToken(ctx context.Context, uid int64, token string) error {
	if _, err := s.db.Exec(ctx, `UPDATE users SET token = $1 WHERE uid = $2`, token, uid); err != nil {
		return fmt.Errorf("failed to update device token: %w", err)
	}
	return nil
}

func (s *Users) Name(ctx context.Context, uid int64) (string, string, error) {
	var first, last string
	err := s.db.QueryRow(ctx, `SELECT first_name, last_name FROM users WHERE uid = $1`, uid).Scan(&first, &last)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user name: %w", err)
	}
	return first, last, nil
}

func (s *Users) Device(ctx context.Context, uid int64) (user.Device, error) {
	var d user.Device
	err := s.db.QueryRow(ctx, `SELECT token, platform FROM users WHERE uid = $1`, uid).Scan(&d.Token, &d.Platform)
	if err != nil {
		return user.Device{}, fmt.Errorf("failed to get device: %w", err)
	}
	return d, nil
}

func (s *Users) Search(ctx context.Context, uid int64, first, last string, gender int) ([]feed.SearchRow, error) {
	// An existing linking request is resolved through the caller's own mate
	// entries, whichever direction the link was made in.
	query := `
	SELECT u.uid, u.username, u.birthdate,
	       COALESCE(
	           (SELECT r.request_id FROM mate m JOIN request r ON r.mate_id = m.mate_id
	            WHERE m.uid = $1 AND r.uid = u.uid LIMIT 1),
	           (SELECT r.request_id FROM mate m JOIN request r ON r.mate_id = m.mate_id
	            WHERE m.uid = u.uid AND r.uid = $1 LIMIT 1)
	       ) AS request_id
	FROM users u
	WHERE u.first_name = $2 AND u.last_name = $3 AND u.gender = $4 AND u.uid != $1
	ORDER BY u.username ASC
	`

	rows, err := s.db.Query(ctx, query, uid, first, last, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var results []feed.SearchRow
	for rows.Next() {
		var r feed.SearchRow
		if err := rows.Scan(&r.UID, &r.Username, &r.Birthdate, &r.RequestID); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
