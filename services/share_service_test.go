package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/share"
)

type fakeShares struct {
	shares        []*share.Share
	androidEmails map[string]bool
}

func newFakeShares() *fakeShares {
	return &fakeShares{androidEmails: make(map[string]bool)}
}

func (f *fakeShares) Insert(_ context.Context, s *share.Share) (int64, error) {
	f.shares = append(f.shares, s)
	s.ShareID = int64(len(f.shares))
	return s.ShareID, nil
}

func (f *fakeShares) AndroidEmailExists(_ context.Context, email string) (bool, error) {
	return f.androidEmails[email], nil
}

func (f *fakeShares) InsertAndroidEmail(_ context.Context, email string, _ time.Time) error {
	f.androidEmails[email] = true
	return nil
}

func newShareService(uids ...int64) (*ShareService, *fakeShares) {
	shares := newFakeShares()
	guard := guardWith(map[store.Table][]int64{store.TableUser: uids})
	return NewShareService(guard, shares), shares
}

func TestAddShareRecordsTelemetry(t *testing.T) {
	svc, shares := newShareService(7)

	shareID, err := svc.AddShare(context.Background(), 7, share.TypeEmail, share.StatusSent, 3)
	require.NoError(t, err)
	require.Equal(t, int64(1), shareID)

	s := shares.shares[0]
	assert.Equal(t, int64(7), s.UID)
	assert.Equal(t, share.TypeEmail, s.Type)
	assert.Equal(t, int64(3), s.MateID)
}

func TestAddShareValidatesEnums(t *testing.T) {
	svc, _ := newShareService(7)

	_, err := svc.AddShare(context.Background(), 7, 2, share.StatusSent, 3)
	assert.ErrorIs(t, err, apperr.ErrInvalidShareType)

	_, err = svc.AddShare(context.Background(), 7, share.TypeSMS, 4, 3)
	assert.ErrorIs(t, err, apperr.ErrInvalidShareStatus)

	_, err = svc.AddShare(context.Background(), 99, share.TypeSMS, share.StatusSent, 3)
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrAmbiguous)
}

func TestJoinAndroidList(t *testing.T) {
	svc, _ := newShareService()

	require.NoError(t, svc.JoinAndroidList(context.Background(), "maya@example.com"))

	err := svc.JoinAndroidList(context.Background(), "maya@example.com")
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)

	err = svc.JoinAndroidList(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrMissingField)
}
