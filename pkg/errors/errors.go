// Package errors provides the s4d error taxonomy: input-bounds errors,
// backend errors, and invariant violations.
package errors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorCode identifies the class of an AppError.
type ErrorCode string

const (
	// Input-bounds errors (caller-recoverable).
	CodeZOutOfRange        ErrorCode = "Z_OUT_OF_RANGE"
	CodeFOutOfRange        ErrorCode = "F_OUT_OF_RANGE"
	CodeXOutOfRange        ErrorCode = "X_OUT_OF_RANGE"
	CodeYOutOfRange        ErrorCode = "Y_OUT_OF_RANGE"
	CodeTOutOfRange        ErrorCode = "T_OUT_OF_RANGE"
	CodeLatitudeOutOfRange ErrorCode = "LATITUDE_OUT_OF_RANGE"
	CodeLongitudeOutOfRange ErrorCode = "LONGITUDE_OUT_OF_RANGE"
	CodeAltitudeOutOfRange ErrorCode = "ALTITUDE_OUT_OF_RANGE"
	CodeInvalidPolygon     ErrorCode = "INVALID_POLYGON"
	CodeZoomTooDeep        ErrorCode = "ZOOM_TOO_DEEP"

	// Backend errors (propagated opaquely).
	CodeBackendBegin  ErrorCode = "BACKEND_BEGIN"
	CodeBackendCommit ErrorCode = "BACKEND_COMMIT"
	CodeBackendTable  ErrorCode = "BACKEND_TABLE"
	CodeBackendIO     ErrorCode = "BACKEND_IO"

	// Invariant violations. Returned as ordinary AppErrors (nothing in the
	// module panics with them); the same code also marks malformed input
	// such as wrong-length byte encodings, unparsable ids, and bad config.
	CodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"
)

// Sentinel errors for errors.Is comparisons that don't need AppError context.
var (
	ErrNotFound     = errors.New("region not found")
	ErrMalformed    = errors.New("malformed encoding")
	ErrNotConstructible = errors.New("value not constructible under current bounds")
)

// AppError carries a code, a human message, optional structured details,
// and the wrapped cause.
type AppError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with no wrapped cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError wrapping err. Backend causes are annotated with
// a stack trace via github.com/pkg/errors so a failed commit or query can
// be traced back to its call site in logs, not just its message.
func Wrap(code ErrorCode, message string, err error) *AppError {
	if isBackendCode(code) {
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func isBackendCode(code ErrorCode) bool {
	switch code {
	case CodeBackendBegin, CodeBackendCommit, CodeBackendTable, CodeBackendIO:
		return true
	default:
		return false
	}
}

// WithDetails attaches a key/value pair and returns the receiver for chaining.
func (e *AppError) WithDetails(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// ZOutOfRange builds the error for a zoom exceeding MaxZoom.
func ZOutOfRange(z int) *AppError {
	return New(CodeZOutOfRange, fmt.Sprintf("zoom %d exceeds max zoom", z)).WithDetails("z", z)
}

// FOutOfRange builds the error for an altitude index outside [FMin(z), FMax(z)].
func FOutOfRange(z int, f int64) *AppError {
	return New(CodeFOutOfRange, fmt.Sprintf("f=%d out of range at z=%d", f, z)).
		WithDetails("z", z).WithDetails("f", f)
}

// XOutOfRange builds the error for an X index outside [0, XYMax(z)].
func XOutOfRange(z int, x uint64) *AppError {
	return New(CodeXOutOfRange, fmt.Sprintf("x=%d out of range at z=%d", x, z)).
		WithDetails("z", z).WithDetails("x", x)
}

// YOutOfRange builds the error for a Y index outside [0, XYMax(z)].
func YOutOfRange(z int, y uint64) *AppError {
	return New(CodeYOutOfRange, fmt.Sprintf("y=%d out of range at z=%d", y, z)).
		WithDetails("z", z).WithDetails("y", y)
}

// TOutOfRange builds the error for time arithmetic over/underflow.
func TOutOfRange(current, offset int64) *AppError {
	return New(CodeTOutOfRange, fmt.Sprintf("time arithmetic overflow: current=%d offset=%d", current, offset)).
		WithDetails("current", current).WithDetails("offset", offset)
}

// LatitudeOutOfRange builds the error for a latitude outside WGS-84/Web-Mercator limits.
func LatitudeOutOfRange(lat float64) *AppError {
	return New(CodeLatitudeOutOfRange, fmt.Sprintf("latitude %.6f outside [-85.0511, 85.0511]", lat)).
		WithDetails("lat", lat)
}

// LongitudeOutOfRange builds the error for a longitude outside [-180, 180].
func LongitudeOutOfRange(lon float64) *AppError {
	return New(CodeLongitudeOutOfRange, fmt.Sprintf("longitude %.6f outside [-180, 180]", lon)).
		WithDetails("lon", lon)
}

// AltitudeOutOfRange builds the error for an altitude that cannot be represented.
func AltitudeOutOfRange(alt float64) *AppError {
	return New(CodeAltitudeOutOfRange, fmt.Sprintf("altitude %.3f out of range", alt)).
		WithDetails("alt", alt)
}
