package entity

import (
	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
)

// UserID is the opaque identifier of a user. It wraps a time-ordered UUIDv7.
type UserID uuid.UUID

// NewUserID generates a fresh time-ordered identifier.
func NewUserID() UserID {
	id, err := uuid.NewV7()
	if err != nil {
		// the v7 generator only fails when the random source does
		return UserID(uuid.New())
	}
	return UserID(id)
}

// ParseUserID parses an identifier received from a client.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		rejected("id", "format", "Invalid user id")
		return UserID{}, apperror.Validation("Invalid user id")
	}
	return UserID(id), nil
}

func (id UserID) UUID() uuid.UUID { return uuid.UUID(id) }

func (id UserID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
