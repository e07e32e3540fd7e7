package store

import (
	"context"
	"time"

	"frictlistAPI/internal/types/feed"
	"frictlistAPI/internal/types/frict"
	"frictlistAPI/internal/types/mate"
	"frictlistAPI/internal/types/share"
	"frictlistAPI/internal/types/user"
)

// Table is the closed set of entities the identity guard may probe. Table
// and id-column names never come from request input.
type Table string

const (
	TableUser    Table = "users"
	TableMate    Table = "mate"
	TableRequest Table = "request"
	TableFrict   Table = "frict"
	TableShare   Table = "share"
)

var idColumns = map[Table]string{
	TableUser:    "uid",
	TableMate:    "mate_id",
	TableRequest: "request_id",
	TableFrict:   "frict_id",
	TableShare:   "share_id",
}

// IDColumn returns the primary-key column for a whitelisted table and
// whether the table is known at all.
func (t Table) IDColumn() (string, bool) {
	col, ok := idColumns[t]
	return col, ok
}

// IdentityCounter backs the identity guard.
type IdentityCounter interface {
	// CountByID returns how many rows of table carry the given id.
	CountByID(ctx context.Context, table Table, id int64) (int, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *user.User) (int64, error)
	ByUsername(ctx context.Context, username string) (*user.User, error)
	ByUID(ctx context.Context, uid int64) (*user.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// UpdateDeviceToken overwrites the stored push token.
	UpdateDeviceToken(ctx context.Context, uid int64, token string) error
	Name(ctx context.Context, uid int64) (first, last string, err error)
	Device(ctx context.Context, uid int64) (user.Device, error)
	// Search finds users by exact name and gender, excluding the caller,
	// resolving an existing linking request through the caller's mates.
	Search(ctx context.Context, uid int64, first, last string, gender int) ([]feed.SearchRow, error)
}

type MateStore interface {
	Insert(ctx context.Context, m *mate.Mate) (int64, error)
	// UpdateIdentity rewrites the owner-only identity fields, returning the
	// affected-row count.
	UpdateIdentity(ctx context.Context, mateID int64, first, last string, gender int, at time.Time) (int64, error)
	// TombstoneCascade soft-deletes every live frict under the mate and then
	// the mate itself, atomically. The mate update must affect exactly one
	// row or the whole cascade rolls back.
	TombstoneCascade(ctx context.Context, mateID int64, at time.Time) error
	// Withdraw marks the relationship terminated from the counterpart's
	// side (accepted = -2) without touching the owner's row otherwise.
	Withdraw(ctx context.Context, mateID int64) (int64, error)
	Accepted(ctx context.Context, mateID int64) (int, error)
	// Name returns the contact name recorded on the mate entry.
	Name(ctx context.Context, mateID int64) (first, last string, err error)
	// OwnerName returns the profile name of the user owning the mate entry.
	OwnerName(ctx context.Context, mateID int64) (first, last string, err error)
	// OwnerDevice resolves the mate owner's push device via mate.uid.
	OwnerDevice(ctx context.Context, mateID int64) (user.Device, error)
	// CounterpartDevice resolves the linked counterpart's push device via
	// the request on the mate.
	CounterpartDevice(ctx context.Context, mateID int64) (user.Device, error)
	// ActiveByOwner lists a user's non-deleted mates in insertion order with
	// counterpart uids resolved.
	ActiveByOwner(ctx context.Context, uid int64) ([]feed.OwnedMate, error)
}

type RequestStore interface {
	Insert(ctx context.Context, r *mate.Request) (int64, error)
	// Respond atomically sets the mate's accepted state and the request's
	// status and accept_datetime. Either update affecting a row count other
	// than one rolls the whole thing back with apperr.ErrUpdateFailed.
	Respond(ctx context.Context, requestID, mateID int64, status int, at time.Time) error
	// RecipientDevice resolves the device of the user a request was sent to.
	RecipientDevice(ctx context.Context, requestID int64) (user.Device, error)
	// SenderDevice resolves the device of the user who sent a request,
	// through the request's mate entry to its owner.
	SenderDevice(ctx context.Context, requestID int64) (user.Device, error)
	// InboxForRecipient returns every request addressed to uid joined with
	// its mate entry and the sender's profile, unfiltered, in request order.
	InboxForRecipient(ctx context.Context, uid int64) ([]feed.InboxEntry, error)
}

type FrictStore interface {
	// Insert stores a new frict authored by one side; only that side's
	// column set is populated.
	Insert(ctx context.Context, mateID int64, e frict.Edit, at time.Time) (int64, error)
	// Update applies one side's edit to its own column set plus the shared
	// fields, returning the affected-row count.
	Update(ctx context.Context, frictID int64, e frict.Edit, at time.Time) (int64, error)
	// Remove tombstones the caller's own side. A second call for the same
	// side affects zero rows.
	Remove(ctx context.Context, frictID int64, side frict.Side, at time.Time) (int64, error)
	FromDate(ctx context.Context, frictID int64) (string, error)
	// ByMate lists every frict of a mate, tombstoned or not, id ascending.
	ByMate(ctx context.Context, mateID int64) ([]frict.Frict, error)
}

type ShareStore interface {
	Insert(ctx context.Context, s *share.Share) (int64, error)
	// AndroidEmailExists and InsertAndroidEmail back the Android waitlist.
	AndroidEmailExists(ctx context.Context, email string) (bool, error)
	InsertAndroidEmail(ctx context.Context, email string, at time.Time) error
}
