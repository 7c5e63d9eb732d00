package transcript

import (
	"errors"
	"fmt"
)

var (
	ErrTranscriptsDisabled = errors.New("transcripts disabled for this video")
	ErrNoTranscriptFound   = errors.New("no transcript found for requested languages")
	ErrVideoUnavailable    = errors.New("video unavailable")
	ErrEmptyTranscript     = errors.New("empty transcript returned")
)

// UnexpectedError wraps a provider failure outside the known taxonomy.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// IsExpected reports whether err is one of the domain outcomes a caller can
// act on, as opposed to an unexpected provider failure.
func IsExpected(err error) bool {
	return errors.Is(err, ErrTranscriptsDisabled) ||
		errors.Is(err, ErrNoTranscriptFound) ||
		errors.Is(err, ErrVideoUnavailable) ||
		errors.Is(err, ErrEmptyTranscript)
}

// classify leaves domain errors as they are and wraps everything else.
func classify(err error) error {
	if err == nil || IsExpected(err) {
		return err
	}
	var ue *UnexpectedError
	if errors.As(err, &ue) {
		return err
	}
	return &UnexpectedError{Err: err}
}
