package pipeline

import "errors"

// ExtractionError wraps failures in fetching, reading, or parsing a document.
// These are considered transient and eligible for retry.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return "failed to extract contract data: " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ProcessingError marks a permanent failure that retrying cannot fix,
// such as a contract record that no longer exists.
type ProcessingError struct {
	Msg string
}

func (e *ProcessingError) Error() string { return e.Msg }

func retryable(err error) bool {
	var perm *ProcessingError
	return !errors.As(err, &perm)
}
