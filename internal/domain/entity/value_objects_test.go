package entity_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
)

type ValueObjectsSuite struct {
	suite.Suite
}

func TestValueObjectsSuite(t *testing.T) {
	suite.Run(t, new(ValueObjectsSuite))
}

func (s *ValueObjectsSuite) TestUserNameConstruction() {
	s.Run("trims surrounding whitespace", func() {
		name, err := entity.NewUserName("  Jon Jonsson \t")
		s.Require().NoError(err)
		s.Equal("Jon Jonsson", name.String())
	})

	s.Run("rejects empty and whitespace only", func() {
		for _, raw := range []string{"", "   ", "\n\t "} {
			_, err := entity.NewUserName(raw)
			s.Require().ErrorIs(err, apperror.ErrValidation)
			s.Equal("User name cannot be empty", err.Error())
		}
	})

	s.Run("accepts exactly 100 graphemes", func() {
		_, err := entity.NewUserName(strings.Repeat("a", 100))
		s.NoError(err)
	})

	s.Run("rejects 101 graphemes", func() {
		_, err := entity.NewUserName(strings.Repeat("a", 101))
		s.Require().ErrorIs(err, apperror.ErrValidation)
		s.Equal("User name is too long. Maximum valid length is 100", err.Error())
	})

	s.Run("counts graphemes, not bytes or runes", func() {
		// e + combining acute accent: two runes, one grapheme
		_, err := entity.NewUserName(strings.Repeat("e\u0301", 100))
		s.NoError(err)

		_, err = entity.NewUserName(strings.Repeat("\U0001F1F8\U0001F1EA", 100))
		s.NoError(err)

		_, err = entity.NewUserName(strings.Repeat("\U0001F1F8\U0001F1EA", 101))
		s.ErrorIs(err, apperror.ErrValidation)
	})

	s.Run("length is checked after trimming", func() {
		_, err := entity.NewUserName("   " + strings.Repeat("a", 100) + "   ")
		s.NoError(err)
	})

	s.Run("equality uses the trimmed value", func() {
		a := entity.MustUserName(" Ada ")
		b := entity.MustUserName("Ada")
		s.True(a.Equal(b))
	})

	s.Run("must panics on invalid input", func() {
		s.Panics(func() { entity.MustUserName(" ") })
	})
}

func (s *ValueObjectsSuite) TestEmailAddressConstruction() {
	forbidden := "Email address is not valid. It should not contain any of the following characters: /, (, ), \", <, >, \\, {, }"

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"plain address", "some@email.com", "some@email.com", ""},
		{"trimmed", "  some@email.com \n", "some@email.com", ""},
		{"no grammar check beyond the rules", "@", "@", ""},
		{"no grammar check with spaces", "not an @ address", "not an @ address", ""},
		{"missing at", "not an email address", "", "Email address must have the @ symbol"},
		{"empty is reported as missing at", "", "", "Email address must have the @ symbol"},
		{"whitespace is reported as missing at", "   ", "", "Email address must have the @ symbol"},
		{"missing at wins over forbidden", "a/b", "", "Email address must have the @ symbol"},
		{"too long", strings.Repeat("a", 99) + "@b", "", "Email address is too long. Maximum valid length is 100"},
		{"too long wins over forbidden", strings.Repeat("/", 99) + "@b", "", "Email address is too long. Maximum valid length is 100"},
		{"exactly 100", strings.Repeat("a", 98) + "@b", strings.Repeat("a", 98) + "@b", ""},
		{"slash", "invalid_email/@domain.com", "", forbidden},
		{"open paren", "a(@b", "", forbidden},
		{"close paren", "a)@b", "", forbidden},
		{"double quote", "a\"@b", "", forbidden},
		{"angle brackets", "<a@b>", "", forbidden},
		{"backslash", "a\\@b", "", forbidden},
		{"braces", "{a@b}", "", forbidden},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			email, err := entity.NewEmailAddress(tt.input)
			if tt.wantErr != "" {
				s.Require().ErrorIs(err, apperror.ErrValidation)
				s.Equal(tt.wantErr, err.Error())
				s.Nil(email)
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.want, email.String())
		})
	}
}

func (s *ValueObjectsSuite) TestEmailAddressEquality() {
	a, err := entity.NewEmailAddress(" me@mail.com ")
	s.Require().NoError(err)
	b, err := entity.NewEmailAddress("me@mail.com")
	s.Require().NoError(err)

	s.True(a.Equal(b))
	s.True(a.Equal(a.Clone()))
	s.False(a.Equal(nil))
}

func (s *ValueObjectsSuite) TestUserID() {
	s.Run("new ids are version 7 and ordered", func() {
		a := entity.NewUserID()
		b := entity.NewUserID()
		s.Equal(uuid.Version(7), a.UUID().Version())
		s.NotEqual(a, b)
		s.LessOrEqual(a.String()[:8], b.String()[:8])
	})

	s.Run("parse round trips", func() {
		id := entity.NewUserID()
		parsed, err := entity.ParseUserID(id.String())
		s.Require().NoError(err)
		s.Equal(id, parsed)
	})

	s.Run("parse rejects garbage and nil", func() {
		for _, raw := range []string{"", "not-a-uuid", uuid.Nil.String(), "../../etc/passwd"} {
			_, err := entity.ParseUserID(raw)
			s.Require().ErrorIs(err, apperror.ErrValidation)
			s.Equal("Invalid user id", err.Error())
		}
	})
}
