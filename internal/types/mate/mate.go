package mate

import "time"

// Accepted states of a mate entry. Pending until the counterpart answers a
// linking request; withdrawn is set when a linked counterpart removes the
// relationship from their side (the owner's row itself is never touched by
// the counterpart).
const (
	AcceptedPending   = 0
	AcceptedShared    = 1
	AcceptedRejected  = -1
	AcceptedWithdrawn = -2
)

// Request statuses mirror the accepted states a response can produce.
const (
	RequestPending  = 0
	RequestAccepted = 1
	RequestRejected = -1
)

// Mate is one user's private contact-book entry for a relationship partner.
// It may exist with no counterpart account at all, or be linked through a
// Request. Identity fields are owned exclusively by the creating user.
type Mate struct {
	MateID     int64     `json:"mate_id" db:"mate_id"`
	UID        int64     `json:"uid" db:"uid"`
	FirstName  string    `json:"mate_first_name" db:"mate_first_name"`
	LastName   string    `json:"mate_last_name" db:"mate_last_name"`
	Gender     int       `json:"mate_gender" db:"mate_gender"`
	Accepted   int       `json:"accepted" db:"accepted"`
	Deleted    bool      `json:"deleted" db:"deleted"`
	LastUpdate time.Time `json:"last_update" db:"last_update"`
}

// Shared reports whether the relationship timeline is visible to both sides.
func (m *Mate) Shared() bool {
	return m.Accepted > 0
}

// Request is a proposal to link a mate entry to a real counterpart account.
// UID is the recipient. Requests are never deleted; a rejected or withdrawn
// one stays as history.
type Request struct {
	RequestID       int64      `json:"request_id" db:"request_id"`
	MateID          int64      `json:"mate_id" db:"mate_id"`
	UID             int64      `json:"uid" db:"uid"`
	Status          int        `json:"request_status" db:"request_status"`
	RequestDatetime time.Time  `json:"request_datetime" db:"request_datetime"`
	AcceptDatetime  *time.Time `json:"accept_datetime" db:"accept_datetime"`
}

type AddMateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    int    `json:"gender"`
}

type SendRequestRequest struct {
	MateID  int64 `json:"mate_id"`
	MateUID int64 `json:"mate_uid"`
}

type RespondRequestRequest struct {
	MateID int64 `json:"mate_id"`
	Status int   `json:"status"`
}
