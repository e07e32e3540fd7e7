package services

import (
	"context"
	"fmt"
	"time"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/identity"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/frict"
)

// FrictService edits the shared timeline. Each call carries a creator flag
// naming which side is writing; the edit only ever reaches that side's
// column set, which is what keeps concurrent two-sided editing safe without
// locks or merging.
type FrictService struct {
	guard    *identity.Guard
	fricts   store.FrictStore
	notifier Notifier
}

func NewFrictService(guard *identity.Guard, fricts store.FrictStore, notifier Notifier) *FrictService {
	return &FrictService{guard: guard, fricts: fricts, notifier: notifier}
}

// AddFrict appends a timeline item under a mate entry. If the relationship
// is shared, the opposite side's device is notified.
func (s *FrictService) AddFrict(ctx context.Context, mateID int64, base int, fromDate string, rating int, notes string, creator int, lat, lon float64) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableMate, mateID); err != nil {
		return 0, err
	}

	side, ok := frict.ParseSide(creator)
	if !ok {
		return 0, apperr.ErrInvalidCreatorFlag
	}

	frictID, err := s.fricts.Insert(ctx, mateID, frict.Edit{
		Side:     side,
		FromDate: fromDate,
		Base:     base,
		Rating:   rating,
		Notes:    notes,
		Lat:      lat,
		Lon:      lon,
	}, time.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrInsertFailed, err)
	}
	if frictID <= 0 {
		return 0, apperr.ErrInsertFailed
	}

	s.notifier.NotifyFrictAdded(mateID, side)
	return frictID, nil
}

// UpdateFrict rewrites the calling side's values and the shared fields of
// an existing item. If shared, the opposite side is notified with the
// item's stored from-date.
func (s *FrictService) UpdateFrict(ctx context.Context, frictID, mateID int64, base int, fromDate string, rating int, notes string, creator int, lat, lon float64) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableFrict, frictID); err != nil {
		return 0, err
	}
	if err := s.guard.Validate(ctx, store.TableMate, mateID); err != nil {
		return 0, err
	}

	side, ok := frict.ParseSide(creator)
	if !ok {
		return 0, apperr.ErrInvalidCreatorFlag
	}

	affected, err := s.fricts.Update(ctx, frictID, frict.Edit{
		Side:     side,
		FromDate: fromDate,
		Base:     base,
		Rating:   rating,
		Notes:    notes,
		Lat:      lat,
		Lon:      lon,
	}, time.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrUpdateFailed, err)
	}
	if affected != 1 {
		return 0, apperr.ErrUpdateFailed
	}

	s.notifier.NotifyFrictUpdated(mateID, frictID, side)
	return frictID, nil
}

// RemoveFrict tombstones the caller's own side of an item. The counterpart
// keeps their view until they remove it themselves.
func (s *FrictService) RemoveFrict(ctx context.Context, frictID int64, creator int) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableFrict, frictID); err != nil {
		return 0, err
	}

	side, ok := frict.ParseSide(creator)
	if !ok {
		return 0, apperr.ErrInvalidCreatorFlag
	}

	affected, err := s.fricts.Remove(ctx, frictID, side, time.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrUpdateFailed, err)
	}
	if affected != 1 {
		return 0, apperr.ErrUpdateFailed
	}
	return frictID, nil
}
