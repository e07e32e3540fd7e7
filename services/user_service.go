package services

import (
	"context"
	"time"

	"frictlistAPI/internal/apperr"
	"frictlistAPI/internal/password"
	"frictlistAPI/internal/store"
	"frictlistAPI/internal/types/feed"
	"frictlistAPI/internal/types/user"
)

type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// SignUp creates an account and returns its uid. Email and username must
// both be free.
func (s *UserService) SignUp(ctx context.Context, req *user.SignUpRequest) (int64, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return 0, apperr.ErrMissingField
	}

	emailTaken, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return 0, err
	}
	if emailTaken {
		return 0, apperr.ErrDuplicateEmail
	}

	usernameTaken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return 0, err
	}
	if usernameTaken {
		return 0, apperr.ErrDuplicateUsername
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return 0, err
	}

	token := req.Token
	if token == user.TokenAbsent {
		token = ""
	}

	uid, err := s.users.Insert(ctx, &user.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Birthdate:    req.Birthdate,
		Gender:       req.Gender,
		Platform:     req.Platform,
		DeviceToken:  token,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return 0, err
	}
	if uid <= 0 {
		return 0, apperr.ErrInsertFailed
	}
	return uid, nil
}

// SignIn verifies credentials, registers the presented device token for
// push, and returns the account uid.
func (s *UserService) SignIn(ctx context.Context, username, plaintext, token string) (int64, error) {
	u, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return 0, err
	}

	if !password.Verify(plaintext, u.PasswordHash) {
		return 0, apperr.ErrCredentialMismatch
	}

	if err := s.RegisterDeviceToken(ctx, u.UID, token); err != nil {
		return 0, err
	}
	return u.UID, nil
}

// RegisterDeviceToken stores the push token for uid. An empty or sentinel
// token is silently ignored; a client without push set up is normal.
func (s *UserService) RegisterDeviceToken(ctx context.Context, uid int64, token string) error {
	if uid <= 0 || token == "" || token == user.TokenAbsent {
		return nil
	}
	return s.users.UpdateDeviceToken(ctx, uid, token)
}

func (s *UserService) Profile(ctx context.Context, uid int64) (*user.User, error) {
	return s.users.ByUID(ctx, uid)
}

// SearchMates finds accounts matching a name and gender, excluding the
// caller, with any existing linking request between the two resolved per
// match.
func (s *UserService) SearchMates(ctx context.Context, uid int64, first, last string, gender int) ([]feed.SearchRow, error) {
	return s.users.Search(ctx, uid, first, last, gender)
}
