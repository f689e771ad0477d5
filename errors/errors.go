package errors

import "fmt"

// StoreError wraps a failure while loading a record or user file with
// context about where it occurred.
type StoreError struct {
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error reading %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrNotAList          = fmt.Errorf("top-level JSON value is not a list")
	ErrBadCredentials    = fmt.Errorf("unknown user or wrong password")
	ErrEmptySeries       = fmt.Errorf("empty series")
	ErrEmptyDistribution = fmt.Errorf("empty distribution")
	ErrNoRulesFile       = fmt.Errorf("rules file not found")
)
