package models

import (
	"fmt"
	"time"
)

// User is a registered person's record.
//
// Invariants:
//   - ID is assigned by the store on creation and immutable thereafter;
//     zero means unsaved.
//   - All fields except Phone are mandatory.
//   - The age derived from DateOfBirth was in [18, 100] at validation time.
//     Validity is evaluated against "now", so a record near the boundary can
//     drift out of range as time passes; that is accepted behavior.
type User struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	FatherName  string    `json:"fatherName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Phone       *string   `json:"phone"`
}

// DateLayout is the wire format for birth dates.
const DateLayout = "2006-01-02"

// ParseDate accepts an ISO date, falling back to a full RFC 3339 timestamp
// for clients that serialize Date objects.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// RegisterRequest is the JSON payload for POST /register.
type RegisterRequest struct {
	FullName    string  `json:"fullName"`
	FatherName  string  `json:"fatherName"`
	DateOfBirth string  `json:"dateOfBirth"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone"`
}

// ToUser converts the payload into an unsaved record. An unparseable birth
// date yields a zero DateOfBirth, which validation then rejects.
func (r RegisterRequest) ToUser() User {
	dob, _ := ParseDate(r.DateOfBirth)
	return User{
		FullName:    r.FullName,
		FatherName:  r.FatherName,
		DateOfBirth: dob,
		Email:       r.Email,
		Address:     r.Address,
		Phone:       r.Phone,
	}
}

// UpdateRequest is the JSON payload for POST /users/{id}. DateOfBirth is
// optional; whether it is written at all is a server-side policy decision.
type UpdateRequest struct {
	ID          int64   `json:"id"`
	FullName    string  `json:"fullName"`
	FatherName  string  `json:"fatherName"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	Phone       *string `json:"phone"`
	DateOfBirth string  `json:"dateOfBirth,omitempty"`
}

// ToUser converts the payload into a record keyed by ID.
func (r UpdateRequest) ToUser() User {
	var dob time.Time
	if r.DateOfBirth != "" {
		dob, _ = ParseDate(r.DateOfBirth)
	}
	return User{
		ID:          r.ID,
		FullName:    r.FullName,
		FatherName:  r.FatherName,
		DateOfBirth: dob,
		Email:       r.Email,
		Address:     r.Address,
		Phone:       r.Phone,
	}
}

// SubmitResult is the envelope returned by the register and update
// endpoints.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
