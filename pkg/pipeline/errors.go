package pipeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSourceUnavailable is returned when no valid video source is found.
	ErrSourceUnavailable = errors.New("pipeline: video source unavailable")

	// ErrSurfaceUnavailable is returned when a capture surface cannot be
	// created or reused.
	ErrSurfaceUnavailable = errors.New("pipeline: drawing surface unavailable")

	// ErrConcurrentSession is returned when a session start is requested
	// while another session is active. The active session is untouched.
	ErrConcurrentSession = errors.New("pipeline: capture session already active")
)

// InvalidRequestError reports malformed schedule inputs. It is rejected
// before any source I/O happens.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("pipeline: invalid capture request: %s", e.Reason)
}

// StuckVideoError reports that the consecutive-duplicate bound was exceeded,
// meaning the source failed to advance despite repeated seeks.
type StuckVideoError struct {
	Duplicates int
}

func (e *StuckVideoError) Error() string {
	return fmt.Sprintf("pipeline: video stuck, %d consecutive identical frames", e.Duplicates)
}

// SeekTimeoutError reports that the primary capture path exceeded its
// deadline. It triggers the fallback capture and is only surfaced to the
// caller when the fallback itself fails.
type SeekTimeoutError struct {
	Elapsed  time.Duration
	Deadline time.Duration
}

func (e *SeekTimeoutError) Error() string {
	return fmt.Sprintf("pipeline: primary capture exceeded deadline (%s elapsed, %s allowed)", e.Elapsed, e.Deadline)
}

// EncodingError wraps a failure of the external encoding engine. No partial
// blob is returned alongside it.
type EncodingError struct {
	Engine string
	Err    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("pipeline: encoding failed (%s): %v", e.Engine, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
