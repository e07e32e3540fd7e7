package services

import (
	"context"
	"sort"
	"time"

	"frictlistAPI/internal/identity"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/feed"
	"frictlistAPI/internal/types/frict"
	"frictlistAPI/internal/types/mate"
	"frictlistAPI/internal/types/user"
)

// In-memory store fakes. Each one implements just enough behavior for the
// service under test; error injection happens through the exported fields.

type fakeCounter struct {
	rows map[store.Table]map[int64]int
}

func (c *fakeCounter) CountByID(_ context.Context, table store.Table, id int64) (int, error) {
	return c.rows[table][id], nil
}

// guardWith builds a guard that considers exactly the given ids present.
func guardWith(rows map[store.Table][]int64) *identity.Guard {
	counts := make(map[store.Table]map[int64]int)
	for table, ids := range rows {
		counts[table] = make(map[int64]int)
		for _, id := range ids {
			counts[table][id]++
		}
	}
	return identity.NewGuard(&fakeCounter{rows: counts})
}

type fakeUsers struct {
	users      map[int64]*user.User
	nextID     int64
	searchRows []feed.SearchRow
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[int64]*user.User)}
}

func (f *fakeUsers) Insert(_ context.Context, u *user.User) (int64, error) {
	f.nextID++
	u.UID = f.nextID
	f.users[u.UID] = u
	return u.UID, nil
}

func (f *fakeUsers) ByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeUsers) ByUID(_ context.Context, uid int64) (*user.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, errNotFound
	}
	return u, nil
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UpdateDeviceToken(_ context.Context, uid int64, token string) error {
	u, ok := f.users[uid]
	if !ok {
		return errNotFound
	}
	u.DeviceToken = token
	return nil
}

func (f *fakeUsers) Name(_ context.Context, uid int64) (string, string, error) {
	u, ok := f.users[uid]
	if !ok {
		return "", "", errNotFound
	}
	return u.FirstName, u.LastName, nil
}

func (f *fakeUsers) Device(_ context.Context, uid int64) (user.Device, error) {
	u, ok := f.users[uid]
	if !ok {
		return user.Device{}, errNotFound
	}
	return user.Device{Token: u.DeviceToken, Platform: u.Platform}, nil
}

func (f *fakeUsers) Search(_ context.Context, _ int64, _, _ string, _ int) ([]feed.SearchRow, error) {
	return f.searchRows, nil
}

type fakeMates struct {
	mates       map[int64]*mate.Mate
	nextID      int64
	fricts      *fakeFricts
	ownerNames  map[int64][2]string
	ownerDevs   map[int64]user.Device
	counterDevs map[int64]user.Device
	owned       map[int64][]feed.OwnedMate
	cascadeErr  error
}

func newFakeMates() *fakeMates {
	return &fakeMates{
		mates:       make(map[int64]*mate.Mate),
		ownerNames:  make(map[int64][2]string),
		ownerDevs:   make(map[int64]user.Device),
		counterDevs: make(map[int64]user.Device),
		owned:       make(map[int64][]feed.OwnedMate),
	}
}

func (f *fakeMates) Insert(_ context.Context, m *mate.Mate) (int64, error) {
	f.nextID++
	m.MateID = f.nextID
	f.mates[m.MateID] = m
	return m.MateID, nil
}

func (f *fakeMates) UpdateIdentity(_ context.Context, mateID int64, first, last string, gender int, at time.Time) (int64, error) {
	m, ok := f.mates[mateID]
	if !ok {
		return 0, nil
	}
	m.FirstName, m.LastName, m.Gender, m.LastUpdate = first, last, gender, at
	return 1, nil
}

func (f *fakeMates) TombstoneCascade(_ context.Context, mateID int64, at time.Time) error {
	if f.cascadeErr != nil {
		return f.cascadeErr
	}
	m, ok := f.mates[mateID]
	if !ok {
		return errNotFound
	}
	if f.fricts != nil {
		for _, fr := range f.fricts.fricts {
			if fr.MateID == mateID && !fr.Creator.Deleted {
				fr.Creator.Deleted = true
				t := at
				fr.Creator.DeleteDatetime = &t
			}
		}
	}
	m.Deleted = true
	m.LastUpdate = at
	return nil
}

func (f *fakeMates) Withdraw(_ context.Context, mateID int64) (int64, error) {
	m, ok := f.mates[mateID]
	if !ok {
		return 0, nil
	}
	m.Accepted = mate.AcceptedWithdrawn
	return 1, nil
}

func (f *fakeMates) Accepted(_ context.Context, mateID int64) (int, error) {
	m, ok := f.mates[mateID]
	if !ok {
		return 0, errNotFound
	}
	return m.Accepted, nil
}

func (f *fakeMates) Name(_ context.Context, mateID int64) (string, string, error) {
	m, ok := f.mates[mateID]
	if !ok {
		return "", "", errNotFound
	}
	return m.FirstName, m.LastName, nil
}

func (f *fakeMates) OwnerName(_ context.Context, mateID int64) (string, string, error) {
	name, ok := f.ownerNames[mateID]
	if !ok {
		return "", "", errNotFound
	}
	return name[0], name[1], nil
}

func (f *fakeMates) OwnerDevice(_ context.Context, mateID int64) (user.Device, error) {
	return f.ownerDevs[mateID], nil
}

func (f *fakeMates) CounterpartDevice(_ context.Context, mateID int64) (user.Device, error) {
	return f.counterDevs[mateID], nil
}

func (f *fakeMates) ActiveByOwner(_ context.Context, uid int64) ([]feed.OwnedMate, error) {
	return f.owned[uid], nil
}

type fakeRequests struct {
	requests   map[int64]*mate.Request
	nextID     int64
	mates      *fakeMates
	recipDevs  map[int64]user.Device
	senderDevs map[int64]user.Device
	inbox      map[int64][]feed.InboxEntry
	respondErr error
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{
		requests:   make(map[int64]*mate.Request),
		recipDevs:  make(map[int64]user.Device),
		senderDevs: make(map[int64]user.Device),
		inbox:      make(map[int64][]feed.InboxEntry),
	}
}

func (f *fakeRequests) Insert(_ context.Context, r *mate.Request) (int64, error) {
	f.nextID++
	r.RequestID = f.nextID
	f.requests[r.RequestID] = r
	return r.RequestID, nil
}

func (f *fakeRequests) Respond(_ context.Context, requestID, mateID int64, status int, at time.Time) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	r, ok := f.requests[requestID]
	if !ok {
		return errNotFound
	}
	r.Status = status
	t := at
	r.AcceptDatetime = &t
	if f.mates != nil {
		if m, ok := f.mates.mates[mateID]; ok {
			m.Accepted = status
		}
	}
	return nil
}

func (f *fakeRequests) RecipientDevice(_ context.Context, requestID int64) (user.Device, error) {
	return f.recipDevs[requestID], nil
}

func (f *fakeRequests) SenderDevice(_ context.Context, requestID int64) (user.Device, error) {
	return f.senderDevs[requestID], nil
}

func (f *fakeRequests) InboxForRecipient(_ context.Context, uid int64) ([]feed.InboxEntry, error) {
	return f.inbox[uid], nil
}

type fakeFricts struct {
	fricts map[int64]*frict.Frict
	nextID int64
}

func newFakeFricts() *fakeFricts {
	return &fakeFricts{fricts: make(map[int64]*frict.Frict)}
}

func (f *fakeFricts) Insert(_ context.Context, mateID int64, e frict.Edit, at time.Time) (int64, error) {
	f.nextID++
	fr := &frict.Frict{
		FrictID:  f.nextID,
		MateID:   mateID,
		Author:   e.Side,
		FromDate: e.FromDate,
		Base:     e.Base,
		Lat:      e.Lat,
		Lon:      e.Lon,
	}
	rating, notes, t := e.Rating, e.Notes, at
	if e.Side == frict.CreatorSide {
		fr.Creator.Rating = &rating
		fr.Creator.Notes = &notes
		fr.Creator.CreationDatetime = &t
		fr.Creator.LastUpdate = &t
	} else {
		fr.Counterpart.Rating = &rating
		fr.Counterpart.Notes = &notes
		fr.Counterpart.LastUpdate = &t
	}
	f.fricts[fr.FrictID] = fr
	return fr.FrictID, nil
}

func (f *fakeFricts) Update(_ context.Context, frictID int64, e frict.Edit, at time.Time) (int64, error) {
	fr, ok := f.fricts[frictID]
	if !ok {
		return 0, nil
	}
	fr.FromDate, fr.Base, fr.Lat, fr.Lon = e.FromDate, e.Base, e.Lat, e.Lon
	rating, notes, t := e.Rating, e.Notes, at
	if e.Side == frict.CreatorSide {
		fr.Creator.Rating = &rating
		fr.Creator.Notes = &notes
		fr.Creator.LastUpdate = &t
	} else {
		fr.Counterpart.Rating = &rating
		fr.Counterpart.Notes = &notes
		fr.Counterpart.LastUpdate = &t
	}
	f.fricts[frictID] = fr
	return 1, nil
}

func (f *fakeFricts) Remove(_ context.Context, frictID int64, side frict.Side, at time.Time) (int64, error) {
	fr, ok := f.fricts[frictID]
	if !ok {
		return 0, nil
	}
	t := at
	if side == frict.CreatorSide {
		if fr.Creator.Deleted {
			return 0, nil
		}
		fr.Creator.Deleted = true
		fr.Creator.DeleteDatetime = &t
		fr.Creator.LastUpdate = &t
	} else {
		if fr.Counterpart.Deleted {
			return 0, nil
		}
		fr.Counterpart.Deleted = true
		fr.Counterpart.LastUpdate = &t
	}
	return 1, nil
}

func (f *fakeFricts) FromDate(_ context.Context, frictID int64) (string, error) {
	fr, ok := f.fricts[frictID]
	if !ok {
		return "", errNotFound
	}
	return fr.FromDate, nil
}

func (f *fakeFricts) ByMate(_ context.Context, mateID int64) ([]frict.Frict, error) {
	var out []frict.Frict
	for _, fr := range f.fricts {
		if fr.MateID == mateID {
			out = append(out, *fr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FrictID < out[j].FrictID })
	return out, nil
}

// recorderNotifier captures notification calls for assertion.
type recorderNotifier struct {
	requestsSent     []int64
	responses        []bool
	frictsAdded      []int64
	frictsUpdated    []int64
	lastEditor       frict.Side
	lastResponderUID int64
	lastSenderUID    int64
}

func (n *recorderNotifier) NotifyRequestSent(senderUID, requestID int64) {
	n.lastSenderUID = senderUID
	n.requestsSent = append(n.requestsSent, requestID)
}

func (n *recorderNotifier) NotifyRequestResponded(responderUID, requestID int64, accepted bool) {
	n.lastResponderUID = responderUID
	n.responses = append(n.responses, accepted)
}

func (n *recorderNotifier) NotifyFrictAdded(mateID int64, editor frict.Side) {
	n.lastEditor = editor
	n.frictsAdded = append(n.frictsAdded, mateID)
}

func (n *recorderNotifier) NotifyFrictUpdated(mateID, frictID int64, editor frict.Side) {
	n.lastEditor = editor
	n.frictsUpdated = append(n.frictsUpdated, frictID)
}

type notFoundError struct{}

func (notFoundError) Error() string { return "no rows in result set" }

var errNotFound = notFoundError{}
