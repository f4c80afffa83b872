// Package models holds verifier and HR accounts.
package models

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	id "veriport/pkg/domain"
	dErrors "veriport/pkg/domain-errors"
	"veriport/pkg/email"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
	MaxNameLength     = 100
)

// Account is a portal login. Verifiers submit verifications; HR roles review
// appeals.
type Account struct {
	ID           id.AccountID    `json:"id"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	FullName     string          `json:"full_name"`
	CompanyName  string          `json:"company_name,omitempty"`
	Role         id.Role         `json:"role"`
	Permissions  []id.Permission `json:"permissions"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	LastLoginAt  *time.Time      `json:"last_login_at,omitempty"`
}

// Can reports whether the account holds p.
func (a *Account) Can(p id.Permission) bool {
	return id.Can(a.Role, a.Permissions, p)
}

func (a *Account) Clone() *Account {
	c := *a
	c.Permissions = slices.Clone(a.Permissions)
	if a.LastLoginAt != nil {
		t := *a.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}

// ValidatePassword checks length only. bcrypt ignores input past 72 bytes.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	if len(password) > MaxPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "password must be at most 72 bytes")
	}
	return nil
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		return dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if n > MaxNameLength {
		return dErrors.New(dErrors.CodeValidation, "full name must be at most 100 characters")
	}
	return nil
}

// ValidateCompanyEmail requires a well formed address on a non-personal
// domain.
func ValidateCompanyEmail(address string) error {
	if !email.IsValid(address) {
		return dErrors.New(dErrors.CodeValidation, "invalid email address")
	}
	if email.IsPersonal(address) {
		return dErrors.New(dErrors.CodeValidation, "please use your company email address")
	}
	return nil
}
