// Package validate holds the canonical field rules for user records.
//
// The same rules run in the browser (web/static/js/registration.js) as a
// usability gate; this package is the trust boundary. Messages match the
// client so both surfaces tell the user the same thing.
package validate

import (
	"regexp"
	"strings"
	"time"

	"troywings/internal/registration/models"
	dErrors "troywings/pkg/domain-errors"
)

const (
	// MinAge and MaxAge bound the derived age, inclusive, at validation time.
	MinAge = 18
	MaxAge = 100

	minNameLen    = 3
	minAddressLen = 10
	minPhoneDigit = 10
	maxPhoneDigit = 15
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z ]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

// FieldError reports a single failed rule.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FullName checks the full name rules.
func FullName(v string) *FieldError {
	return name("fullName", v, "Full name is required")
}

// FatherName checks the father's name rules.
func FatherName(v string) *FieldError {
	return name("fatherName", v, "Father's name is required")
}

func name(field, v, requiredMsg string) *FieldError {
	v = strings.TrimSpace(v)
	if v == "" {
		return &FieldError{field, requiredMsg}
	}
	if len(v) < minNameLen {
		return &FieldError{field, "Name must be at least 3 characters long"}
	}
	if !namePattern.MatchString(v) {
		return &FieldError{field, "Name should only contain letters and spaces"}
	}
	return nil
}

// DateOfBirth checks that the derived age is within bounds as of now.
func DateOfBirth(v, now time.Time) *FieldError {
	if v.IsZero() {
		return &FieldError{"dateOfBirth", "Date of birth is required"}
	}
	age := Age(v, now)
	if age < MinAge {
		return &FieldError{"dateOfBirth", "You must be at least 18 years old"}
	}
	if age > MaxAge {
		return &FieldError{"dateOfBirth", "Please enter a valid date of birth"}
	}
	return nil
}

// Age computes whole years between birth and now, subtracting one year when
// now's month/day precedes the birth month/day.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Email checks the local@domain.tld shape.
func Email(v string) *FieldError {
	v = strings.TrimSpace(v)
	if v == "" {
		return &FieldError{"email", "Email address is required"}
	}
	if !emailPattern.MatchString(v) {
		return &FieldError{"email", "Please enter a valid email address"}
	}
	return nil
}

// Address checks the address rules.
func Address(v string) *FieldError {
	v = strings.TrimSpace(v)
	if v == "" {
		return &FieldError{"address", "Address is required"}
	}
	if len(v) < minAddressLen {
		return &FieldError{"address", "Please enter a complete address (minimum 10 characters)"}
	}
	return nil
}

// Phone checks the optional phone rules: when present, 10-15 digits after
// stripping formatting.
func Phone(v *string) *FieldError {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	digits := Digits(*v)
	if len(digits) < minPhoneDigit || len(digits) > maxPhoneDigit {
		return &FieldError{"phone", "Please enter a valid phone number (10-15 digits)"}
	}
	return nil
}

// Digits strips every non-digit character.
func Digits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// Registration validates a complete record, aggregating every failed rule
// into one validation error.
func Registration(u models.User, now time.Time) error {
	return combine(collect(u, now, true))
}

// Update validates an update payload. The birth date is checked only when
// set: an update that leaves the stored birth date untouched carries none.
func Update(u models.User, now time.Time) error {
	return combine(collect(u, now, !u.DateOfBirth.IsZero()))
}

func collect(u models.User, now time.Time, checkDOB bool) []FieldError {
	var errs []FieldError
	appendErr := func(fe *FieldError) {
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	appendErr(FullName(u.FullName))
	appendErr(FatherName(u.FatherName))
	if checkDOB {
		appendErr(DateOfBirth(u.DateOfBirth, now))
	}
	appendErr(Email(u.Email))
	appendErr(Address(u.Address))
	appendErr(Phone(u.Phone))
	return errs
}

func combine(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, len(errs))
	for i, fe := range errs {
		parts[i] = fe.Error()
	}
	return dErrors.New(dErrors.CodeValidation, strings.Join(parts, "; "))
}
