package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frictlistAPI/internal/identity"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/feed"
	"frictlistAPI/internal/types/frict"
	"frictlistAPI/internal/types/mate"
	"frictlistAPI/internal/types/user"
	"frictlistAPI/middleware"
	"frictlistAPI/services"
)

// Stubs embed the store interfaces so only the methods a handler path
// actually reaches need implementing.

type allowAllCounter struct{}

func (allowAllCounter) CountByID(context.Context, store.Table, int64) (int, error) { return 1, nil }

type stubUsers struct{ store.UserStore }

func (stubUsers) ByUID(context.Context, int64) (*user.User, error) {
	return &user.User{UID: 9, FirstName: "Maya", LastName: "Reed", Birthdate: "1990-03-14", Gender: 2}, nil
}

type stubMates struct{ store.MateStore }

func (stubMates) ActiveByOwner(context.Context, int64) ([]feed.OwnedMate, error) {
	return []feed.OwnedMate{
		{Mate: mate.Mate{MateID: 1, FirstName: "Ann", LastName: "Lee", Gender: 1, Accepted: mate.AcceptedShared}},
	}, nil
}

type stubRequests struct{ store.RequestStore }

func (stubRequests) InboxForRecipient(context.Context, int64) ([]feed.InboxEntry, error) {
	return []feed.InboxEntry{
		{
			Request: mate.Request{RequestID: 4, MateID: 1, UID: 9},
			Mate:    mate.Mate{MateID: 1, FirstName: "Maya", LastName: "Reed"},
			Sender:  feed.SenderProfile{UID: 7, FirstName: "Ann", LastName: "Lee", Username: "annlee", Gender: 1, Birthdate: "1992-07-01"},
		},
	}, nil
}

type stubFricts struct{ store.FrictStore }

func (stubFricts) ByMate(_ context.Context, mateID int64) ([]frict.Frict, error) {
	rating := 8
	return []frict.Frict{
		{FrictID: 2, MateID: mateID, Author: frict.CreatorSide, FromDate: "2014-04-30", Base: 3,
			Creator: frict.CreatorColumns{Rating: &rating}},
	}, nil
}

func newTestFeedHandler() *FeedHandler {
	svc := services.NewFeedService(
		identity.NewGuard(allowAllCounter{}),
		stubUsers{}, stubMates{}, stubRequests{}, stubFricts{},
	)
	return NewFeedHandler(svc)
}

func authedRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, int64(9))
	return r.WithContext(ctx)
}

func TestGetFrictlistRendersTable(t *testing.T) {
	w := httptest.NewRecorder()
	newTestFeedHandler().GetFrictlist(w, authedRequest("GET", "/api/v1/frictlist"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, feed.FlagFrictlist, lines[0])
	assert.Equal(t, "Maya\tReed\t1990-03-14\t2", lines[1])

	row := strings.Split(lines[2], "\t")
	require.Len(t, row, 18)
	assert.Equal(t, "1", row[0], "mate_id")
	assert.Equal(t, "Ann", row[3])
	assert.Equal(t, "2", row[6], "frict_id")
	assert.Equal(t, "2014-04-30", row[7])
	assert.Equal(t, "8", row[8], "creator rating")
}

func TestGetNotificationsRendersTable(t *testing.T) {
	w := httptest.NewRecorder()
	newTestFeedHandler().GetNotifications(w, authedRequest("GET", "/api/v1/notifications"))

	require.Equal(t, http.StatusOK, w.Code)

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, feed.FlagNotifications, lines[0])

	row := strings.Split(lines[1], "\t")
	require.Len(t, row, 21)
	assert.Equal(t, "4", row[0], "request_id")
	assert.Equal(t, "annlee", row[5])
	assert.Equal(t, "0", row[20], "mate not tombstoned")
}

func TestFeedEndpointsRequireAuth(t *testing.T) {
	h := newTestFeedHandler()

	for _, serve := range []http.HandlerFunc{h.GetFrictlist, h.GetNotifications} {
		w := httptest.NewRecorder()
		serve(w, httptest.NewRequest("GET", "/api/v1/frictlist", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
