package share

import "time"

const (
	TypeSMS   = 0
	TypeEmail = 1
)

const (
	StatusSent      = 0
	StatusCancelled = 1
	StatusFailed    = 2
	StatusSaved     = 3
)

// Share is append-only telemetry recorded when a user tries to share the
// app with a mate. It is never read back by the core.
type Share struct {
	ShareID  int64     `json:"share_id" db:"share_id"`
	UID      int64     `json:"uid" db:"uid"`
	Type     int       `json:"share_type" db:"share_type"`
	Status   int       `json:"share_status" db:"share_status"`
	MateID   int64     `json:"mate_id" db:"mate_id"`
	Datetime time.Time `json:"share_datetime" db:"share_datetime"`
}

type AddShareRequest struct {
	Type   int   `json:"share_type"`
	Status int   `json:"share_status"`
	MateID int64 `json:"mate_id"`
}
