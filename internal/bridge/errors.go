package bridge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSubscriptionUnavailable is returned when native registration fails or a
	// subscription already exists in this process. It is not retryable without
	// remediation such as granting Accessibility permission.
	ErrSubscriptionUnavailable = errors.New("focus subscription unavailable")

	// ErrAlreadyStopped is returned by a second Stop on the same Observer.
	ErrAlreadyStopped = errors.New("observer already stopped")

	// ErrInvalidHandle is returned for operations on a nil or foreign handle.
	ErrInvalidHandle = errors.New("invalid observer handle")

	// ErrNoInterrupt is returned when the event source offers no way to stop
	// its run loop. Such a loop ends only when the process exits.
	ErrNoInterrupt = errors.New("event source cannot be interrupted; its run loop ends at process exit")

	// ErrMainThreadRequired is returned when a main-thread-bound source is
	// asked to run on a background worker.
	ErrMainThreadRequired = errors.New("event source must run on the main thread")

	// ErrLoopRunning is returned when a driver's run loop is started twice.
	ErrLoopRunning = errors.New("run loop already running")
)

// DecodeError reports native text that was not valid UTF-8. The affected fields
// were delivered with U+FFFD substitutions.
type DecodeError struct {
	Fields []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("marshaling decode failure: invalid UTF-8 in %s", strings.Join(e.Fields, ", "))
}
