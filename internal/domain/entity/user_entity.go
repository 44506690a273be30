package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root for the user domain.
// ID and CreatedAt are fixed at construction; UpdatedAt stays nil until the first
// successful update.
type User struct {
	ID           UserID
	Name         UserName
	EmailAddress *SecretEmailAddress
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// UserRaw is the unchecked storage shape of a User. It only lives between a
// storage read and UserFromRaw.
type UserRaw struct {
	ID           uuid.UUID
	Name         string
	EmailAddress string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Now is the clock used for entity timestamps, truncated to the precision
// PostgreSQL stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewUser assigns a fresh ID and creation time.
func NewUser(name UserName, email *SecretEmailAddress) *User {
	return &User{
		ID:           NewUserID(),
		Name:         name,
		EmailAddress: email,
		CreatedAt:    Now(),
	}
}

// UserFromRaw re-validates a stored row. Storage is never trusted to hold valid data.
func UserFromRaw(raw UserRaw) (*User, error) {
	name, err := NewUserName(raw.Name)
	if err != nil {
		return nil, err
	}
	email, err := NewSecretEmailAddress(raw.EmailAddress)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           UserID(raw.ID),
		Name:         name,
		EmailAddress: email,
		CreatedAt:    raw.CreatedAt.UTC(),
	}
	if raw.UpdatedAt != nil {
		t := raw.UpdatedAt.UTC()
		u.UpdatedAt = &t
	}
	return u, nil
}

// Raw exposes the email address on purpose: the result is bound for storage.
func (u *User) Raw() UserRaw {
	raw := UserRaw{
		ID:        u.ID.UUID(),
		Name:      u.Name.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.EmailAddress != nil {
		raw.EmailAddress = u.EmailAddress.ExposeSecret().String()
	}
	return raw
}

// Clone deep-copies the user, including its secret.
func (u *User) Clone() *User {
	c := *u
	c.EmailAddress = u.EmailAddress.Clone()
	if u.UpdatedAt != nil {
		t := *u.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// Equal compares every field, the email address by value.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u.ID != other.ID || !u.Name.Equal(other.Name) || !u.CreatedAt.Equal(other.CreatedAt) {
		return false
	}
	if (u.UpdatedAt == nil) != (other.UpdatedAt == nil) {
		return false
	}
	if u.UpdatedAt != nil && !u.UpdatedAt.Equal(*other.UpdatedAt) {
		return false
	}
	if (u.EmailAddress == nil) != (other.EmailAddress == nil) {
		return false
	}
	return u.EmailAddress == nil || u.EmailAddress.ExposeSecret().Equal(other.EmailAddress.ExposeSecret())
}

// Destroy wipes the user's secret fields.
func (u *User) Destroy() {
	if u == nil {
		return
	}
	u.EmailAddress.Destroy()
}
