package entity

import (
	"time"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
)

// UserField names a mutable field of User. The values double as the transport tags.
type UserField string

const (
	FieldName         UserField = "Name"
	FieldEmailAddress UserField = "EmailAddress"
)

// ErrEmptyUpdates is returned for an update request without operations.
var ErrEmptyUpdates = apperror.Validation("List of updates was empty")

// UserUpdate sets one mutable field to an already validated value.
// The set of implementations is closed: SetName and SetEmailAddress.
type UserUpdate interface {
	Field() UserField
	applyTo(u *User)
}

type SetName struct {
	Value UserName
}

func (SetName) Field() UserField { return FieldName }

func (s SetName) applyTo(u *User) { u.Name = s.Value }

type SetEmailAddress struct {
	Value *SecretEmailAddress
}

func (SetEmailAddress) Field() UserField { return FieldEmailAddress }

func (s SetEmailAddress) applyTo(u *User) { u.EmailAddress = s.Value.Clone() }

// ParseUserUpdate validates one operation received from a client.
func ParseUserUpdate(field, value string) (UserUpdate, error) {
	switch UserField(field) {
	case FieldName:
		name, err := NewUserName(value)
		if err != nil {
			return nil, err
		}
		return SetName{Value: name}, nil
	case FieldEmailAddress:
		email, err := NewSecretEmailAddress(value)
		if err != nil {
			return nil, err
		}
		return SetEmailAddress{Value: email}, nil
	default:
		msg := "Unknown update type " + field + ". Expected one of: Name, EmailAddress"
		rejected("updates", "unknown_type", msg)
		return nil, apperror.Validation(msg)
	}
}

// ValidateUpdates rejects an empty list; a no-op update is an error.
func ValidateUpdates(updates []UserUpdate) error {
	if len(updates) == 0 {
		return ErrEmptyUpdates
	}
	return nil
}

// ApplyUpdates applies updates in order, so the last operation on a field wins,
// and stamps UpdatedAt with now.
func ApplyUpdates(u *User, updates []UserUpdate, now time.Time) error {
	if err := ValidateUpdates(updates); err != nil {
		return err
	}
	for _, upd := range updates {
		upd.applyTo(u)
	}
	stamp := now.UTC()
	u.UpdatedAt = &stamp
	return nil
}
