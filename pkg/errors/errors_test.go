package errors

import (
	"errors"
	"testing"
)

func TestNewHasNoCause(t *testing.T) {
	err := New(CodeZOutOfRange, "zoom too deep")
	if err.Code != CodeZOutOfRange {
		t.Errorf("Code = %v, want %v", err.Code, CodeZOutOfRange)
	}
	if err.Unwrap() != nil {
		t.Error("New should not wrap a cause")
	}
	if err.Error() != "Z_OUT_OF_RANGE: zoom too deep" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(CodeBackendIO, "insert failed", cause)

	if !errors.Is(wrapped, cause) {
		t.Error("Wrap should preserve the cause for errors.Is")
	}
	if wrapped.Error() != "BACKEND_IO: insert failed: connection refused" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestWithDetailsChaining(t *testing.T) {
	err := New(CodeFOutOfRange, "f out of range").
		WithDetails("z", 4).
		WithDetails("f", 9)

	if err.Details["z"] != 4 {
		t.Errorf("Details[z] = %v, want 4", err.Details["z"])
	}
	if err.Details["f"] != 9 {
		t.Errorf("Details[f] = %v, want 9", err.Details["f"])
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(CodeInvariantViolation, "unreachable")
	if !Is(err, CodeInvariantViolation) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, CodeBackendIO) {
		t.Error("Is should not match an unrelated code")
	}
	if Is(errors.New("plain"), CodeBackendIO) {
		t.Error("Is should report false for a non-AppError")
	}
}

func TestBuilders(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"ZOutOfRange", ZOutOfRange(32), CodeZOutOfRange},
		{"FOutOfRange", FOutOfRange(4, 99), CodeFOutOfRange},
		{"XOutOfRange", XOutOfRange(4, 999), CodeXOutOfRange},
		{"YOutOfRange", YOutOfRange(4, 999), CodeYOutOfRange},
		{"TOutOfRange", TOutOfRange(10, -100), CodeTOutOfRange},
		{"LatitudeOutOfRange", LatitudeOutOfRange(91), CodeLatitudeOutOfRange},
		{"LongitudeOutOfRange", LongitudeOutOfRange(181), CodeLongitudeOutOfRange},
		{"AltitudeOutOfRange", AltitudeOutOfRange(1e9), CodeAltitudeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.Details == nil {
				t.Error("builder should attach details")
			}
		})
	}
}

func TestSentinelErrors(t *testing.T) {
	if ErrNotFound.Error() != "region not found" {
		t.Errorf("ErrNotFound.Error() = %q", ErrNotFound.Error())
	}
	if ErrMalformed.Error() != "malformed encoding" {
		t.Errorf("ErrMalformed.Error() = %q", ErrMalformed.Error())
	}
	if ErrNotConstructible.Error() != "value not constructible under current bounds" {
		t.Errorf("ErrNotConstructible.Error() = %q", ErrNotConstructible.Error())
	}
}
