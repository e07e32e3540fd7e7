package feed

import (
	"strconv"
	"strings"
	"time"

	"frictlistAPI/internal/types/frict"
	"frictlistAPI/internal/types/mate"
)

// Flag lines identifying the kind of a tab-separated result table. Clients
// read the first line before parsing rows.
const (
	FlagFrictlist     = "frictlist"
	FlagNotifications = "notifications"
	FlagUserSearch    = "user_search"
)

// UserHeader is the profile block emitted before the frictlist rows.
type UserHeader struct {
	FirstName string
	LastName  string
	Birthdate string
	Gender    int
}

func (h UserHeader) TabRow() string {
	return strings.Join([]string{h.FirstName, h.LastName, h.Birthdate, strconv.Itoa(h.Gender)}, "\t")
}

// InboxEntry is the raw join of a request addressed to a user with the mate
// entry it proposes and the profile of the mate's owner (the sender). The
// feed builder filters and orders these; the store does not.
type InboxEntry struct {
	Request mate.Request
	Mate    mate.Mate
	Sender  SenderProfile
}

type SenderProfile struct {
	UID       int64
	FirstName string
	LastName  string
	Username  string
	Gender    int
	Birthdate string
}

// OwnedMate is one of a user's own mate entries plus the counterpart uid
// resolved through a linking request, when one exists.
type OwnedMate struct {
	Mate           mate.Mate
	CounterpartUID *int64
}

// FrictlistRow is one line of the frictlist table: a mate entry and at most
// one of its fricts. A mate without fricts yields a single row with the
// frict columns empty.
type FrictlistRow struct {
	MateID         int64
	Accepted       int
	CounterpartUID *int64
	MateFirstName  string
	MateLastName   string
	MateGender     int
	Frict          *frict.Frict
}

func (r FrictlistRow) TabRow() string {
	cols := []string{
		strconv.FormatInt(r.MateID, 10),
		strconv.Itoa(r.Accepted),
		int64PtrCol(r.CounterpartUID),
		r.MateFirstName,
		r.MateLastName,
		strconv.Itoa(r.MateGender),
	}
	cols = append(cols, frictCols(r.Frict)...)
	return strings.Join(cols, "\t")
}

// NotificationRow is one line of the notification feed: a request made to
// the viewer, the sender's profile, and at most one visible frict of the
// proposed mate entry.
type NotificationRow struct {
	RequestID     int64
	MateID        int64
	RequestStatus int
	Sender        SenderProfile
	Frict         *frict.Frict
	// MateFirstName is the name the sender recorded for the viewer; the
	// feed is ordered by it.
	MateFirstName string
	MateLastName  string
	// CreatorDeletedMate marks a relationship the sender has since
	// tombstoned; it is surfaced so the viewer learns it ended.
	CreatorDeletedMate bool
}

func (r NotificationRow) TabRow() string {
	cols := []string{
		strconv.FormatInt(r.RequestID, 10),
		strconv.FormatInt(r.MateID, 10),
		strconv.Itoa(r.RequestStatus),
		r.Sender.FirstName,
		r.Sender.LastName,
		r.Sender.Username,
		strconv.Itoa(r.Sender.Gender),
		r.Sender.Birthdate,
	}
	cols = append(cols, frictCols(r.Frict)...)
	cols = append(cols, boolCol(r.CreatorDeletedMate))
	return strings.Join(cols, "\t")
}

// SearchRow is one line of the user-search table.
type SearchRow struct {
	UID       int64
	Username  string
	Birthdate string
	RequestID *int64
}

func (r SearchRow) TabRow() string {
	return strings.Join([]string{
		strconv.FormatInt(r.UID, 10),
		r.Username,
		r.Birthdate,
		int64PtrCol(r.RequestID),
	}, "\t")
}

// frictCols renders the twelve frict columns shared by the frictlist and
// notification tables; all empty when the row has no frict.
func frictCols(f *frict.Frict) []string {
	if f == nil {
		return []string{"", "", "", "", "", "", "", "", "", "", "", ""}
	}
	return []string{
		strconv.FormatInt(f.FrictID, 10),
		f.FromDate,
		intPtrCol(f.Creator.Rating),
		strconv.Itoa(f.Base),
		strPtrCol(f.Creator.Notes),
		boolCol(f.Creator.Deleted),
		intPtrCol(f.Counterpart.Rating),
		strPtrCol(f.Counterpart.Notes),
		boolCol(f.Counterpart.Deleted),
		strconv.Itoa(int(f.Author)),
		strconv.FormatFloat(f.Lat, 'f', -1, 64),
		strconv.FormatFloat(f.Lon, 'f', -1, 64),
	}
}

func int64PtrCol(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func intPtrCol(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func strPtrCol(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func boolCol(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Timestamp comparisons in the visibility rule treat a missing time as
// "never", which always loses an "is after" test.
func After(t *time.Time, ref *time.Time) bool {
	if t == nil || ref == nil {
		return false
	}
	return t.After(*ref)
}
