package entity

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
)

const MaxEmailAddressLength = 100

// ForbiddenEmailCharacters may not appear anywhere in an email address.
var ForbiddenEmailCharacters = []rune{'/', '(', ')', '"', '<', '>', '\\', '{', '}'}

// EmailAddress is a loosely validated email-like value. Its bytes are owned by the
// value so Zeroize can overwrite them. Wrap it in a Secret before it leaves the
// constructor's caller.
type EmailAddress struct {
	value []byte
}

// SecretEmailAddress is how email addresses travel inside a User.
type SecretEmailAddress = Secret[*EmailAddress]

// NewEmailAddress checks, in order: the @ symbol, emptiness, length, forbidden
// characters. The first failing rule decides the error message.
func NewEmailAddress(raw string) (*EmailAddress, error) {
	trimmed := strings.TrimSpace(raw)

	if !strings.ContainsRune(trimmed, '@') {
		msg := "Email address must have the @ symbol"
		rejected("email_address", "missing_at", msg)
		return nil, apperror.Validation(msg)
	}
	if trimmed == "" {
		msg := "Email address cannot be empty"
		rejected("email_address", "empty", msg)
		return nil, apperror.Validation(msg)
	}
	if uniseg.GraphemeClusterCount(trimmed) > MaxEmailAddressLength {
		msg := fmt.Sprintf("Email address is too long. Maximum valid length is %d", MaxEmailAddressLength)
		rejected("email_address", "too_long", msg)
		return nil, apperror.Validation(msg)
	}
	if strings.ContainsAny(trimmed, string(ForbiddenEmailCharacters)) {
		msg := "Email address is not valid. It should not contain any of the following characters: " + forbiddenList()
		rejected("email_address", "forbidden_character", msg)
		return nil, apperror.Validation(msg)
	}
	return &EmailAddress{value: []byte(trimmed)}, nil
}

// NewSecretEmailAddress validates raw and wraps the result.
func NewSecretEmailAddress(raw string) (*SecretEmailAddress, error) {
	e, err := NewEmailAddress(raw)
	if err != nil {
		return nil, err
	}
	return NewSecret(e), nil
}

// MustSecretEmailAddress panics when raw is not a valid email address.
func MustSecretEmailAddress(raw string) *SecretEmailAddress {
	s, err := NewSecretEmailAddress(raw)
	if err != nil {
		panic(err)
	}
	return s
}

func forbiddenList() string {
	parts := make([]string, 0, len(ForbiddenEmailCharacters))
	for _, r := range ForbiddenEmailCharacters {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, ", ")
}

// String returns the plaintext. Reach it through Secret.ExposeSecret.
func (e *EmailAddress) String() string {
	if e == nil {
		return ""
	}
	return string(e.value)
}

func (e *EmailAddress) Equal(other *EmailAddress) bool {
	if e == nil || other == nil {
		return e == other
	}
	return bytes.Equal(e.value, other.value)
}

// Clone returns a copy that does not share backing memory.
func (e *EmailAddress) Clone() *EmailAddress {
	if e == nil {
		return nil
	}
	return &EmailAddress{value: bytes.Clone(e.value)}
}

// Zeroize overwrites the backing bytes and empties the value.
func (e *EmailAddress) Zeroize() {
	if e == nil {
		return
	}
	clear(e.value)
	e.value = nil
}
