package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/frict"
)

func testTime() time.Time {
	return time.Date(2014, 5, 1, 12, 0, 0, 0, time.UTC)
}

func editBy(creator int) frict.Edit {
	side, _ := frict.ParseSide(creator)
	return frict.Edit{
		Side:     side,
		FromDate: "2014-04-30",
		Base:     3,
		Rating:   8,
		Notes:    "pier",
	}
}

func newFrictService(guard map[store.Table][]int64) (*FrictService, *fakeFricts, *recorderNotifier) {
	fricts := newFakeFricts()
	notifier := &recorderNotifier{}
	return NewFrictService(guardWith(guard), fricts, notifier), fricts, notifier
}

func TestAddFrictWritesOwnSideOnly(t *testing.T) {
	svc, fricts, notifier := newFrictService(map[store.Table][]int64{store.TableMate: {1}})

	frictID, err := svc.AddFrict(context.Background(), 1, 3, "2014-04-30", 8, "pier", 1, 42.5, -70.8)
	require.NoError(t, err)

	f := fricts.fricts[frictID]
	require.NotNil(t, f.Creator.Rating)
	assert.Equal(t, 8, *f.Creator.Rating)
	assert.Nil(t, f.Counterpart.Rating, "the creating side must never touch counterpart columns")
	assert.Equal(t, frict.CreatorSide, f.Author)
	assert.Equal(t, []int64{1}, notifier.frictsAdded)
	assert.Equal(t, frict.CreatorSide, notifier.lastEditor)
}

func TestAddFrictCounterpartSide(t *testing.T) {
	svc, fricts, _ := newFrictService(map[store.Table][]int64{store.TableMate: {1}})

	frictID, err := svc.AddFrict(context.Background(), 1, 3, "2014-04-30", 8, "pier", 0, 0, 0)
	require.NoError(t, err)

	f := fricts.fricts[frictID]
	require.NotNil(t, f.Counterpart.Rating)
	assert.Equal(t, 8, *f.Counterpart.Rating)
	assert.Nil(t, f.Creator.Rating)
}

func TestAddFrictInvalidCreatorFlag(t *testing.T) {
	svc, _, notifier := newFrictService(map[store.Table][]int64{store.TableMate: {1}})

	_, err := svc.AddFrict(context.Background(), 1, 3, "2014-04-30", 8, "pier", 5, 0, 0)
	assert.ErrorIs(t, err, apperr.ErrInvalidCreatorFlag)
	assert.Empty(t, notifier.frictsAdded)
}

func TestAddFrictUnknownMate(t *testing.T) {
	svc, _, _ := newFrictService(nil)

	_, err := svc.AddFrict(context.Background(), 1, 3, "2014-04-30", 8, "pier", 1, 0, 0)
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrAmbiguous)
}

func TestUpdateFrictNotifiesEditor(t *testing.T) {
	svc, fricts, notifier := newFrictService(map[store.Table][]int64{
		store.TableMate:  {1},
		store.TableFrict: {1},
	})
	fricts.Insert(context.Background(), 1, editBy(1), testTime())

	_, err := svc.UpdateFrict(context.Background(), 1, 1, 4, "2014-05-02", 9, "again", 0, 0, 0)
	require.NoError(t, err)

	f := fricts.fricts[1]
	assert.Equal(t, "2014-05-02", f.FromDate)
	require.NotNil(t, f.Counterpart.Rating)
	assert.Equal(t, 9, *f.Counterpart.Rating)
	assert.Equal(t, []int64{1}, notifier.frictsUpdated)
	assert.Equal(t, frict.CounterpartSide, notifier.lastEditor)
}

func TestUpdateFrictMissingRow(t *testing.T) {
	svc, _, notifier := newFrictService(map[store.Table][]int64{
		store.TableMate:  {1},
		store.TableFrict: {1},
	})

	_, err := svc.UpdateFrict(context.Background(), 1, 1, 4, "2014-05-02", 9, "again", 1, 0, 0)
	assert.ErrorIs(t, err, apperr.ErrUpdateFailed)
	assert.Empty(t, notifier.frictsUpdated)
}

func TestRemoveFrictIsNotIdempotent(t *testing.T) {
	svc, fricts, _ := newFrictService(map[store.Table][]int64{store.TableFrict: {1}})
	fricts.Insert(context.Background(), 1, editBy(1), testTime())

	_, err := svc.RemoveFrict(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, fricts.fricts[1].Creator.Deleted)

	// The row is already tombstoned on this side; a second remove hits
	// nothing and must fail.
	_, err = svc.RemoveFrict(context.Background(), 1, 1)
	assert.ErrorIs(t, err, apperr.ErrUpdateFailed)
}

func TestRemoveFrictSidesAreIndependent(t *testing.T) {
	svc, fricts, _ := newFrictService(map[store.Table][]int64{store.TableFrict: {1}})
	fricts.Insert(context.Background(), 1, editBy(1), testTime())

	_, err := svc.RemoveFrict(context.Background(), 1, 1)
	require.NoError(t, err)

	_, err = svc.RemoveFrict(context.Background(), 1, 0)
	require.NoError(t, err)

	f := fricts.fricts[1]
	assert.True(t, f.Creator.Deleted)
	assert.True(t, f.Counterpart.Deleted)
}
