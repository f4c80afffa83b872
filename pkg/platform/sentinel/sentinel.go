package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// and services translate them into domain errors.
//
//   - ErrNotFound: no record under the key
//   - ErrConflict: a record with the same key already exists
//   - ErrAlreadyUsed: a one-per-parent resource already exists (second appeal for a verification)
//   - ErrInvalidState: conditional update lost because the record left the expected state
//   - ErrUnavailable: backing service temporarily unavailable
//
// Validation failures are not storage facts; use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
