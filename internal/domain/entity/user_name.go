package entity

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
)

const MaxUserNameLength = 100

// UserName is a trimmed, non-empty display name of at most MaxUserNameLength graphemes.
type UserName struct {
	value string
}

// NewUserName validates raw and returns the trimmed name.
func NewUserName(raw string) (UserName, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		msg := "User name cannot be empty"
		rejected("name", "empty", msg)
		return UserName{}, apperror.Validation(msg)
	}
	if uniseg.GraphemeClusterCount(trimmed) > MaxUserNameLength {
		msg := fmt.Sprintf("User name is too long. Maximum valid length is %d", MaxUserNameLength)
		rejected("name", "too_long", msg)
		return UserName{}, apperror.Validation(msg)
	}
	return UserName{value: trimmed}, nil
}

// MustUserName is NewUserName for literals known to be valid. It panics otherwise.
func MustUserName(raw string) UserName {
	n, err := NewUserName(raw)
	if err != nil {
		panic(err)
	}
	return n
}

func (n UserName) String() string { return n.value }

func (n UserName) Equal(other UserName) bool { return n.value == other.value }

func (n UserName) IsZero() bool { return n.value == "" }
