package game

import (
	"errors"
	"strings"
	"unicode"
)

const minPasswordLength = 8

var (
	// ErrPasswordTooShort rejects passwords under the minimum length.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrPasswordTooSimple rejects passwords missing a required character class.
	ErrPasswordTooSimple = errors.New("password too simple")
	// ErrPasswordIsName rejects passwords that reuse the character name.
	ErrPasswordIsName = errors.New("password must differ from name")
)

// ValidatePassword applies the complexity and reuse rules used during
// character creation.
func ValidatePassword(name, password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if strings.EqualFold(name, password) {
		return ErrPasswordIsName
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return ErrPasswordTooSimple
	}
	return nil
}
