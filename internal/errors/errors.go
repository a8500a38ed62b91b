// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrDataNotFound    = errors.New("data not found")
	ErrDatabaseError   = errors.New("database error")
	ErrConfigInvalid   = errors.New("invalid configuration")
	ErrSnapshotStale   = errors.New("snapshot not refreshed yet")
	ErrMalformedRecord = errors.New("malformed record")
)

// RecordError reports a problem with a single idea record at the ingestion
// boundary. Records with recoverable problems are normalized or excluded,
// never fatal; this type carries context for the log line.
type RecordError struct {
	ID     string
	Symbol string
	Field  string
	Reason string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record %s (%s) field %s: %s: %v", e.ID, e.Symbol, e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("record %s (%s) field %s: %s", e.ID, e.Symbol, e.Field, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError creates a new RecordError.
func NewRecordError(id, symbol, field, reason string, err error) *RecordError {
	return &RecordError{ID: id, Symbol: symbol, Field: field, Reason: reason, Err: err}
}

// Is reports whether target matches err or any wrapped error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
