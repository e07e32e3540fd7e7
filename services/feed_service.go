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
)

// FeedService computes the read-only views: a user's own frictlist and the
// notification feed of requests made to them. Both are pure functions of
// stored state; nothing here writes or pushes.
type FeedService struct {
	guard    *identity.Guard
	users    store.UserStore
	mates    store.MateStore
	requests store.RequestStore
	fricts   store.FrictStore
}

func NewFeedService(guard *identity.Guard, users store.UserStore, mates store.MateStore, requests store.RequestStore, fricts store.FrictStore) *FeedService {
	return &FeedService{guard: guard, users: users, mates: mates, requests: requests, fricts: fricts}
}

// BuildFeed returns the visible notification rows for uid.
//
// A request survives when the proposed mate entry is not withdrawn and
// either still live, or tombstoned after the viewer accepted — a deletion
// that post-dates acceptance must still surface as "this relationship
// ended". A frict of a surviving mate is visible when it was deleted after
// acceptance, is not deleted at all, or was created after acceptance; this
// keeps everything that changed since the viewer accepted discoverable,
// tombstoned or not, while hiding rows whose whole life predates the link.
func (s *FeedService) BuildFeed(ctx context.Context, uid int64) ([]feed.NotificationRow, error) {
	if err := s.guard.Validate(ctx, store.TableUser, uid); err != nil {
		return nil, err
	}

	entries, err := s.requests.InboxForRecipient(ctx, uid)
	if err != nil {
		return nil, err
	}

	// Stage one: surviving requests, ordered by sender first name with
	// request order breaking ties.
	var surviving []feed.InboxEntry
	for _, e := range entries {
		if e.Mate.Accepted == mate.AcceptedWithdrawn {
			continue
		}
		if e.Mate.Deleted && !acceptedBeforeUpdate(e) {
			continue
		}
		surviving = append(surviving, e)
	}
	sort.SliceStable(surviving, func(i, j int) bool {
		return surviving[i].Sender.FirstName < surviving[j].Sender.FirstName
	})

	// Stage two: left-join each surviving mate's fricts and apply the
	// visibility rule. A mate without fricts still yields one row; a mate
	// whose every frict is invisible yields none.
	var rows []feed.NotificationRow
	for _, e := range surviving {
		fricts, err := s.fricts.ByMate(ctx, e.Mate.MateID)
		if err != nil {
			return nil, err
		}

		if len(fricts) == 0 {
			rows = append(rows, notificationRow(e, nil))
			continue
		}
		for i := range fricts {
			if frictVisible(&fricts[i], e.Request.AcceptDatetime) {
				rows = append(rows, notificationRow(e, &fricts[i]))
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MateFirstName < rows[j].MateFirstName
	})
	return rows, nil
}

// acceptedBeforeUpdate reports whether the viewer accepted the request
// before the mate entry was last touched, i.e. the tombstone came after the
// relationship existed.
func acceptedBeforeUpdate(e feed.InboxEntry) bool {
	return e.Request.AcceptDatetime != nil && e.Request.AcceptDatetime.Before(e.Mate.LastUpdate)
}

func frictVisible(f *frict.Frict, accept *time.Time) bool {
	if feed.After(f.Creator.DeleteDatetime, accept) {
		return true
	}
	if !f.Creator.Deleted {
		return true
	}
	return feed.After(f.Creator.CreationDatetime, accept)
}

func notificationRow(e feed.InboxEntry, f *frict.Frict) feed.NotificationRow {
	return feed.NotificationRow{
		RequestID:          e.Request.RequestID,
		MateID:             e.Mate.MateID,
		RequestStatus:      e.Request.Status,
		Sender:             e.Sender,
		Frict:              f,
		MateFirstName:      e.Mate.FirstName,
		MateLastName:       e.Mate.LastName,
		CreatorDeletedMate: e.Mate.Deleted,
	}
}

// Frictlist returns uid's profile header and every row of their own list:
// all non-deleted mate entries with all of their fricts, tombstoned fricts
// included (clients render the delete flags themselves).
func (s *FeedService) Frictlist(ctx context.Context, uid int64) (feed.UserHeader, []feed.FrictlistRow, error) {
	if err := s.guard.Validate(ctx, store.TableUser, uid); err != nil {
		return feed.UserHeader{}, nil, err
	}

	u, err := s.users.ByUID(ctx, uid)
	if err != nil {
		return feed.UserHeader{}, nil, err
	}
	header := feed.UserHeader{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Birthdate: u.Birthdate,
		Gender:    u.Gender,
	}

	owned, err := s.mates.ActiveByOwner(ctx, uid)
	if err != nil {
		return feed.UserHeader{}, nil, err
	}

	var rows []feed.FrictlistRow
	for _, om := range owned {
		fricts, err := s.fricts.ByMate(ctx, om.Mate.MateID)
		if err != nil {
			return feed.UserHeader{}, nil, err
		}

		if len(fricts) == 0 {
			rows = append(rows, frictlistRow(om, nil))
			continue
		}
		for i := range fricts {
			rows = append(rows, frictlistRow(om, &fricts[i]))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MateFirstName < rows[j].MateFirstName
	})
	return header, rows, nil
}

func frictlistRow(om feed.OwnedMate, f *frict.Frict) feed.FrictlistRow {
	return feed.FrictlistRow{
		MateID:         om.Mate.MateID,
		Accepted:       om.Mate.Accepted,
		CounterpartUID: om.CounterpartUID,
		MateFirstName:  om.Mate.FirstName,
		MateLastName:   om.Mate.LastName,
		MateGender:     om.Mate.Gender,
		Frict:          f,
	}
}
