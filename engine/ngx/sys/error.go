package sys

import (
	"errors"
	"fmt"
)

var (
	ErrFeatureMismatch      = errors.New("feature type mismatch")
	ErrNotSupported         = errors.New("feature not supported on this platform")
	ErrDriverUpdateRequired = errors.New("driver update required")
	ErrReleased             = errors.New("used after release")
	ErrMissingInput         = errors.New("missing evaluation input")
	ErrMissingParameters    = errors.New("missing create parameters")
	ErrInvalidString        = errors.New("string cannot be passed to NGX")
	ErrQualityUnsupported   = errors.New("quality level not supported")
	ErrNotImplemented       = errors.New("not implemented for this backend")
)

// ResultError is a failed NGX call. Code is kept verbatim.
type ResultError struct {
	Op   string
	Code Result
}

func (e *ResultError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("NGX call failed: %s", ResultString(e.Code, true))
	}
	return fmt.Sprintf("%s failed: %s", e.Op, ResultString(e.Code, true))
}

// Is lets errors.Is match on the code alone.
func (e *ResultError) Is(target error) bool {
	t, ok := target.(*ResultError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Op == "" || t.Op == e.Op)
}

// OtherError is a wrapper-level failure that never reached the SDK or
// was derived from values it returned.
type OtherError struct {
	Message string
	Err     error
}

func (e *OtherError) Error() string {
	return e.Message
}

func (e *OtherError) Unwrap() error {
	return e.Err
}

func NewOtherError(kind error, format string, args ...interface{}) *OtherError {
	return &OtherError{
		Message: fmt.Sprintf(format, args...),
		Err:     kind,
	}
}

// ResultCode extracts the NGX code from err, if it carries one.
func ResultCode(err error) (Result, bool) {
	var re *ResultError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return 0, false
}
