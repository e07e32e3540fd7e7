package apperr

import "errors"

// Sentinel errors returned by the core operations. Handlers map these to
// HTTP status codes; the store layer wraps driver errors before they cross
// this boundary.
var (
	// ErrInvalidID means a referenced id was negative or absent.
	ErrInvalidID = errors.New("invalid id")

	// ErrNotFoundOrAmbiguous means an id matched zero rows or more than one.
	ErrNotFoundOrAmbiguous = errors.New("id not found or not unique")

	// ErrInvalidCreatorFlag means a creator flag outside {0, 1} was supplied.
	ErrInvalidCreatorFlag = errors.New("creator flag must be 0 or 1")

	// ErrInvalidStatus means a request response outside {accept, reject}.
	ErrInvalidStatus = errors.New("status must be 1 (accept) or -1 (reject)")

	ErrInvalidShareType   = errors.New("share type must be 0 (sms) or 1 (email)")
	ErrInvalidShareStatus = errors.New("share status must be between 0 and 3")

	// ErrInsertFailed means the store reported no generated id.
	ErrInsertFailed = errors.New("insert failed")

	// ErrUpdateFailed means the affected-row count was not the expected 1.
	ErrUpdateFailed = errors.New("update failed")

	ErrCredentialMismatch = errors.New("wrong password")
	ErrDuplicateEmail     = errors.New("email address already in use")
	ErrDuplicateUsername  = errors.New("username already in use")

	ErrMissingField = errors.New("required field missing")
)
