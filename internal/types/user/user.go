package user

import "time"

const (
	PlatformIOS     = 1
	PlatformAndroid = 2
)

// TokenAbsent is the sentinel some clients send when they have no device
// token yet. It is treated the same as an empty token everywhere.
const TokenAbsent = "(null)"

type User struct {
	UID          int64     `json:"uid" db:"uid"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Birthdate    string    `json:"birthdate" db:"birthdate"`
	Gender       int       `json:"gender" db:"gender"`
	Platform     int       `json:"platform" db:"platform"`
	DeviceToken  string    `json:"-" db:"token"`
	CreatedAt    time.Time `json:"created_at" db:"creation_datetime"`
}

// Device is what push dispatch needs to pick a transport.
type Device struct {
	Token    string
	Platform int
}

// HasToken reports whether the device can actually be pushed to.
func (d Device) HasToken() bool {
	return d.Token != "" && d.Token != TokenAbsent
}

type SignUpRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required,min=6,max=255"`
	Gender    int    `json:"gender"`
	Birthdate string `json:"birthdate"`
	Platform  int    `json:"platform"`
	Token     string `json:"token"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Token    string `json:"token"`
}
