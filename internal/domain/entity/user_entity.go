package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/oksasatya/go-hexagonal-users/internal/domain/valueobject"
)

var (
	ErrInvalidUser = errors.New("invalid user")
	ErrMissingID   = errors.New("user id is required")
)

// User is the aggregate root for user domain.
// It owns its Email and HashedPassword; every mutation goes through a method
// so id, email and password are always present.
type User struct {
	id        string
	email     valueobject.Email
	password  valueobject.HashedPassword
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// RegisterUser creates a new active user stamped with now.
func RegisterUser(id string, email valueobject.Email, password valueobject.HashedPassword, now time.Time) (*User, error) {
	now = now.UTC()
	return RestoreUser(id, email, password, true, now, now)
}

// RestoreUser rebuilds a user from persisted state.
func RestoreUser(id string, email valueobject.Email, password valueobject.HashedPassword, active bool, createdAt, updatedAt time.Time) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}
	if email.IsZero() {
		return nil, errors.Join(ErrInvalidUser, errors.New("email is required"))
	}
	if password.IsZero() {
		return nil, errors.Join(ErrInvalidUser, errors.New("password is required"))
	}
	return &User{
		id:        id,
		email:     email,
		password:  password,
		active:    active,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
	}, nil
}

func (u *User) ID() string                           { return u.id }
func (u *User) Email() valueobject.Email             { return u.email }
func (u *User) Password() valueobject.HashedPassword { return u.password }
func (u *User) IsActive() bool                       { return u.active }
func (u *User) CreatedAt() time.Time                 { return u.createdAt }
func (u *User) UpdatedAt() time.Time                 { return u.updatedAt }

// ChangeEmail replaces the address. Setting the current address again is a no-op
// and does not touch updatedAt.
func (u *User) ChangeEmail(email valueobject.Email, now time.Time) error {
	if email.IsZero() {
		return errors.Join(ErrInvalidUser, errors.New("email is required"))
	}
	if u.email.Equals(email) {
		return nil
	}
	u.email = email
	u.touch(now)
	return nil
}

// ChangePassword replaces the hash and bumps updatedAt.
func (u *User) ChangePassword(password valueobject.HashedPassword, now time.Time) error {
	if password.IsZero() {
		return errors.Join(ErrInvalidUser, errors.New("password is required"))
	}
	if u.password.Encoded() == password.Encoded() {
		return nil
	}
	u.password = password
	u.touch(now)
	return nil
}

func (u *User) Activate(now time.Time) {
	if !u.active {
		u.active = true
		u.touch(now)
	}
}

func (u *User) Deactivate(now time.Time) {
	if u.active {
		u.active = false
		u.touch(now)
	}
}

// Clone returns an independent copy; adapters hand out copies, never their own instance.
func (u *User) Clone() *User {
	c := *u
	return &c
}

func (u *User) touch(now time.Time) {
	u.updatedAt = now.UTC()
}
