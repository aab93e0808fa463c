package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"troywings/internal/registration/models"
	dErrors "troywings/pkg/domain-errors"
)

// Fixed clock so age boundaries are deterministic.
var now = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestFullName(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"empty rejected", "", "Full name is required"},
		{"whitespace only rejected", "   ", "Full name is required"},
		{"too short rejected", "Jo", "Name must be at least 3 characters long"},
		{"digits rejected", "John3 Smith", "Name should only contain letters and spaces"},
		{"punctuation rejected", "John-Smith", "Name should only contain letters and spaces"},
		{"minimum length accepted", "Joe", ""},
		{"letters and spaces accepted", "John Smith", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FullName(tt.value)
			if tt.wantMsg == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, "fullName", err.Field)
		})
	}
}

func TestFatherNameUsesOwnRequiredMessage(t *testing.T) {
	err := FatherName("")
	require.NotNil(t, err)
	assert.Equal(t, "Father's name is required", err.Message)

	assert.Nil(t, FatherName("Robert Smith"))
}

func TestDateOfBirthBoundaries(t *testing.T) {
	birthday := func(age int) time.Time {
		return now.AddDate(-age, 0, 0)
	}

	tests := []struct {
		name  string
		birth time.Time
		ok    bool
	}{
		{"age 17 rejected", birthday(17), false},
		{"age 18 accepted", birthday(18), true},
		{"age 100 accepted", birthday(100), true},
		{"age 101 rejected", birthday(101), false},
		{"zero date rejected", time.Time{}, false},
		{"day before 18th birthday rejected", birthday(18).AddDate(0, 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DateOfBirth(tt.birth, now)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}

func TestAgeSubtractsYearBeforeBirthday(t *testing.T) {
	birth := time.Date(2000, time.August, 20, 0, 0, 0, 0, time.UTC)

	// June 15, 2026 is before the August birthday
	assert.Equal(t, 25, Age(birth, now))
	// On the birthday itself the year counts
	assert.Equal(t, 26, Age(birth, time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"a@b.c", true},
		{"john@x.com", true},
		{"a@b", false},
		{"a b@c.com", false},
		{"a@b c.com", false},
		{"", false},
		{"no-at-sign.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := Email(tt.value)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	assert.NotNil(t, Address(""))
	assert.NotNil(t, Address("short"))
	assert.Nil(t, Address("123 Main Street"))
}

func TestPhone(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		value *string
		ok    bool
	}{
		{"nil accepted", nil, true},
		{"empty accepted", str(""), true},
		{"ten digits accepted", str("1234567890"), true},
		{"formatted accepted", str("+91 98765 43210"), true},
		{"fifteen digits accepted", str("123456789012345"), true},
		{"three digits rejected", str("123"), false},
		{"sixteen digits rejected", str("1234567890123456"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Phone(tt.value)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
			}
		})
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "919876543210", Digits("+91 98765-43210"))
	assert.Equal(t, "", Digits("abc"))
}

func validUser() models.User {
	return models.User{
		FullName:    "John Smith",
		FatherName:  "Robert Smith",
		DateOfBirth: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Email:       "john@x.com",
		Address:     "123 Main Street",
	}
}

func TestRegistrationAggregatesFailures(t *testing.T) {
	u := validUser()
	u.FullName = "Jo"
	u.Email = "a@b"

	err := Registration(u, now)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, dErrors.Message(err), "at least 3 characters")
	assert.Contains(t, dErrors.Message(err), "valid email")
}

func TestRegistrationAcceptsValidRecord(t *testing.T) {
	assert.NoError(t, Registration(validUser(), now))
}

func TestUpdateSkipsBirthDateWhenUnset(t *testing.T) {
	u := validUser()
	u.DateOfBirth = time.Time{}

	assert.NoError(t, Update(u, now))
	require.Error(t, Registration(u, now))
}

func TestUpdateChecksBirthDateWhenSet(t *testing.T) {
	u := validUser()
	u.DateOfBirth = now.AddDate(-10, 0, 0) // age 10

	err := Update(u, now)
	require.Error(t, err)
	assert.Contains(t, dErrors.Message(err), "at least 18 years old")
}
