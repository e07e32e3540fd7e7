package services

import (
	"context"
	"fmt"
	"time"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/identity"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/frict"
	"frictlistAPI/internal/types/mate"
)

// Notifier is the outbound edge of every mutating operation. The push
// dispatcher implements it; tests stub it.
type Notifier interface {
	NotifyRequestSent(senderUID, requestID int64)
	NotifyRequestResponded(responderUID, requestID int64, accepted bool)
	NotifyFrictAdded(mateID int64, editor frict.Side)
	NotifyFrictUpdated(mateID, frictID int64, editor frict.Side)
}

// MateService manages the lifecycle of mate entries and their optional link
// to a counterpart account.
type MateService struct {
	guard    *identity.Guard
	mates    store.MateStore
	requests store.RequestStore
	notifier Notifier
}

func NewMateService(guard *identity.Guard, mates store.MateStore, requests store.RequestStore, notifier Notifier) *MateService {
	return &MateService{guard: guard, mates: mates, requests: requests, notifier: notifier}
}

// AddMate creates an unlinked contact-book entry for uid.
func (s *MateService) AddMate(ctx context.Context, uid int64, firstName, lastName string, gender int) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableUser, uid); err != nil {
		return 0, err
	}

	mateID, err := s.mates.Insert(ctx, &mate.Mate{
		UID:        uid,
		FirstName:  firstName,
		LastName:   lastName,
		Gender:     gender,
		LastUpdate: time.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrInsertFailed, err)
	}
	if mateID <= 0 {
		return 0, apperr.ErrInsertFailed
	}
	return mateID, nil
}

// UpdateMate rewrites the identity fields of one of uid's mate entries.
func (s *MateService) UpdateMate(ctx context.Context, uid, mateID int64, firstName, lastName string, gender int) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableUser, uid); err != nil {
		return 0, err
	}
	if err := s.guard.Validate(ctx, store.TableMate, mateID); err != nil {
		return 0, err
	}

	affected, err := s.mates.UpdateIdentity(ctx, mateID, firstName, lastName, gender, time.Now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrUpdateFailed, err)
	}
	if affected != 1 {
		return 0, apperr.ErrUpdateFailed
	}
	return mateID, nil
}

// RemoveMate ends a relationship. The entry's owner (creator=1) tombstones
// every live frict and then the entry itself; a linked counterpart
// (creator=0) does not own the row and instead marks the relationship
// withdrawn, which silences it in their feed without destroying history.
func (s *MateService) RemoveMate(ctx context.Context, mateID int64, creator int) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableMate, mateID); err != nil {
		return 0, err
	}

	switch creator {
	case 1:
		if err := s.mates.TombstoneCascade(ctx, mateID, time.Now()); err != nil {
			return 0, err
		}
	case 0:
		affected, err := s.mates.Withdraw(ctx, mateID)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", apperr.ErrUpdateFailed, err)
		}
		if affected != 1 {
			return 0, apperr.ErrUpdateFailed
		}
	default:
		return 0, apperr.ErrInvalidCreatorFlag
	}
	return mateID, nil
}

// SendRequest proposes linking one of uid's mate entries to the real
// account mateUID, and notifies that account's device.
func (s *MateService) SendRequest(ctx context.Context, uid, mateID, mateUID int64) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableUser, uid); err != nil {
		return 0, err
	}
	if err := s.guard.Validate(ctx, store.TableUser, mateUID); err != nil {
		return 0, err
	}
	if err := s.guard.Validate(ctx, store.TableMate, mateID); err != nil {
		return 0, err
	}

	requestID, err := s.requests.Insert(ctx, &mate.Request{
		MateID:          mateID,
		UID:             mateUID,
		RequestDatetime: time.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperr.ErrInsertFailed, err)
	}
	if requestID <= 0 {
		return 0, apperr.ErrInsertFailed
	}

	s.notifier.NotifyRequestSent(uid, requestID)
	return requestID, nil
}

// RespondRequest accepts (1) or rejects (-1) a pending link request. The
// mate's accepted state and the request's status move together or not at
// all; the original sender is notified of the outcome.
func (s *MateService) RespondRequest(ctx context.Context, uid, requestID, mateID int64, status int) (int, error) {
	if err := s.guard.Validate(ctx, store.TableUser, uid); err != nil {
		return 0, err
	}
	if err := s.guard.Validate(ctx, store.TableMate, mateID); err != nil {
		return 0, err
	}
	if status != mate.RequestAccepted && status != mate.RequestRejected {
		return 0, apperr.ErrInvalidStatus
	}

	if err := s.requests.Respond(ctx, requestID, mateID, status, time.Now()); err != nil {
		return 0, err
	}

	s.notifier.NotifyRequestResponded(uid, requestID, status == mate.RequestAccepted)
	return status, nil
}
