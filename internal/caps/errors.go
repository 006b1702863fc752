package caps

import (
	"errors"
	"fmt"
)

// Status is the closed set of results a capability query can report.
type Status int

const (
	StatusSuccess Status = iota
	StatusInvalidParameter
	StatusResolutionNotSupported
	StatusUnsupportedAttribute

	// Unregistered (profile, entrypoint) pairs and failures outside the
	// capability rules, as the VA status codes report them.
	StatusUnsupportedProfile
	StatusUnsupportedEntrypoint
	StatusOperationFailed
)

var statusNames = map[Status]string{
	StatusSuccess:                "SUCCESS",
	StatusInvalidParameter:       "INVALID_PARAMETER",
	StatusResolutionNotSupported: "RESOLUTION_NOT_SUPPORTED",
	StatusUnsupportedAttribute:   "UNSUPPORTED_ATTRIBUTE",
	StatusUnsupportedProfile:     "UNSUPPORTED_PROFILE",
	StatusUnsupportedEntrypoint:  "UNSUPPORTED_ENTRYPOINT",
	StatusOperationFailed:        "OPERATION_FAILED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(%d)", int(s))
}

// Error is a capability error carrying a Status.
type Error struct {
	Status  Status
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Status.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Status, so callers can use the
// sentinels below with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Status == e.Status && t.Op == "" && t.Message == ""
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidParameter       = &Error{Status: StatusInvalidParameter}
	ErrResolutionNotSupported = &Error{Status: StatusResolutionNotSupported}
	ErrUnsupportedAttribute   = &Error{Status: StatusUnsupportedAttribute}
	ErrUnsupportedProfile     = &Error{Status: StatusUnsupportedProfile}
	ErrUnsupportedEntrypoint  = &Error{Status: StatusUnsupportedEntrypoint}

	ErrNotInitialized      = errors.New("capabilities not initialized")
	ErrAlreadyInitialized  = errors.New("capabilities already initialized")
	ErrFrozen              = errors.New("capability table is frozen")
	ErrDuplicateGeneration = errors.New("generation already registered")
	ErrUnknownGeneration   = errors.New("no capabilities registered for generation")
)

// NewError creates a new capability error.
func NewError(status Status, op, message string) *Error {
	return &Error{
		Status:  status,
		Op:      op,
		Message: message,
	}
}

// StatusOf maps an error to its Status. nil is success; errors that carry
// no Status report StatusOperationFailed.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusOperationFailed
}
