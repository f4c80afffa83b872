package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "veriport/pkg/domain-errors"
)

// Sequential identifier prefixes. Verification and appeal IDs are human
// readable ("VER000042") and allocated by scanning the owning collection.
const (
	VerificationPrefix = "VER"
	AppealPrefix       = "APP"
)

const maxEmployeeIDLength = 32

var (
	verificationIDPattern = regexp.MustCompile(`^VER\d{6,}$`)
	appealIDPattern       = regexp.MustCompile(`^APP\d{6,}$`)
	employeeIDPattern     = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)
)

// VerificationID identifies a stored verification record.
type VerificationID string

// AppealID identifies an appeal.
type AppealID string

// EmployeeID is the authoritative employee key, always upper-case.
type EmployeeID string

// AccountID identifies a verifier or admin account.
type AccountID uuid.UUID

func (v VerificationID) String() string { return string(v) }
func (a AppealID) String() string       { return string(a) }
func (e EmployeeID) String() string     { return string(e) }
func (a AccountID) String() string      { return uuid.UUID(a).String() }

// IsNil reports whether the account ID is the zero UUID.
func (a AccountID) IsNil() bool { return uuid.UUID(a) == uuid.Nil }

// MarshalText renders the canonical UUID form so JSON output is a string.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*a = AccountID(u)
	return nil
}

// NewAccountID returns a random account ID.
func NewAccountID() AccountID { return AccountID(uuid.New()) }

// ParseVerificationID validates a path or body supplied verification ID.
func ParseVerificationID(s string) (VerificationID, error) {
	s = strings.TrimSpace(s)
	if !verificationIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid verification id")
	}
	return VerificationID(s), nil
}

// ParseAppealID validates a path supplied appeal ID.
func ParseAppealID(s string) (AppealID, error) {
	s = strings.TrimSpace(s)
	if !appealIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid appeal id")
	}
	return AppealID(s), nil
}

// ParseEmployeeID trims and upper-cases s before validating it.
func ParseEmployeeID(s string) (EmployeeID, error) {
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid employee id")
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "employee id is required")
	}
	if len(s) > maxEmployeeIDLength || !employeeIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid employee id")
	}
	return EmployeeID(s), nil
}

// ParseAccountID parses a non-nil UUID account ID.
func ParseAccountID(s string) (AccountID, error) {
	if s == "" {
		return AccountID{}, dErrors.New(dErrors.CodeInvalidInput, "account id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return AccountID{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid account id")
	}
	if u == uuid.Nil {
		return AccountID{}, dErrors.New(dErrors.CodeInvalidInput, "account id must not be nil")
	}
	return AccountID(u), nil
}
