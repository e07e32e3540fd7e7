package services

import (
	"context"
	"time"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/identity"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/share"
)

// ShareService records share-attempt telemetry and the Android waitlist.
type ShareService struct {
	guard  *identity.Guard
	shares store.ShareStore
}

func NewShareService(guard *identity.Guard, shares store.ShareStore) *ShareService {
	return &ShareService{guard: guard, shares: shares}
}

// AddShare appends one telemetry row for a share attempt. The row is never
// read back, but the operation still fails loudly on bad input.
func (s *ShareService) AddShare(ctx context.Context, uid int64, shareType, shareStatus int, mateID int64) (int64, error) {
	if err := s.guard.Validate(ctx, store.TableUser, uid); err != nil {
		return 0, err
	}
	if shareType < share.TypeSMS || shareType > share.TypeEmail {
		return 0, apperr.ErrInvalidShareType
	}
	if shareStatus < share.StatusSent || shareStatus > share.StatusSaved {
		return 0, apperr.ErrInvalidShareStatus
	}

	shareID, err := s.shares.Insert(ctx, &share.Share{
		UID:      uid,
		Type:     shareType,
		Status:   shareStatus,
		MateID:   mateID,
		Datetime: time.Now(),
	})
	if err != nil {
		return 0, err
	}
	if shareID <= 0 {
		return 0, apperr.ErrInsertFailed
	}
	return shareID, nil
}

// JoinAndroidList signs an email address up to be told when the Android
// build ships.
func (s *ShareService) JoinAndroidList(ctx context.Context, email string) error {
	if email == "" {
		return apperr.ErrMissingField
	}

	exists, err := s.shares.AndroidEmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return apperr.ErrDuplicateEmail
	}

	return s.shares.InsertAndroidEmail(ctx, email, time.Now())
}
