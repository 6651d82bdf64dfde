// Package validation holds the pure input validators shared by the route
// handlers. Validators never touch the database; uniqueness checks live in
// the store layer.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMinLen = 2
	UsernameMaxLen = 20
	PasswordMinLen = 6
	ContentMinLen  = 5
	ContentMaxLen  = 300
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 2 characters")
	ErrUsernameTooLong  = errors.New("username must be no more than 20 characters")
	ErrUsernameCharset  = errors.New("username may only contain letters, digits, dots and underscores")
	ErrUsernameDots     = errors.New("username must not start or end with a dot, or contain consecutive dots")
	ErrEmailInvalid     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must have at least six characters")
	ErrContentTooShort  = errors.New("content must be at least 5 characters")
	ErrContentTooLong   = errors.New("content must be no longer than 300 characters")
	ErrCodeFormat       = errors.New("verification code must be exactly 6 digits")
)

var (
	usernameCharset = regexp.MustCompile(`^[A-Za-z0-9._]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codePattern     = regexp.MustCompile(`^[0-9]{6}$`)
)

func Username(username string) error {
	if utf8.RuneCountInString(username) < UsernameMinLen {
		return ErrUsernameTooShort
	}
	if utf8.RuneCountInString(username) > UsernameMaxLen {
		return ErrUsernameTooLong
	}
	if !usernameCharset.MatchString(username) {
		return ErrUsernameCharset
	}
	if strings.HasPrefix(username, ".") || strings.HasSuffix(username, ".") ||
		strings.Contains(username, "..") {
		return ErrUsernameDots
	}
	return nil
}

func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func Password(password string) error {
	if utf8.RuneCountInString(password) < PasswordMinLen {
		return ErrPasswordTooShort
	}
	return nil
}

// Content validates message text. Callers sanitize before validating so the
// length check applies to what will actually be stored.
func Content(content string) error {
	n := utf8.RuneCountInString(content)
	if n < ContentMinLen {
		return ErrContentTooShort
	}
	if n > ContentMaxLen {
		return ErrContentTooLong
	}
	return nil
}

func VerifyCode(code string) error {
	if !codePattern.MatchString(code) {
		return ErrCodeFormat
	}
	return nil
}
