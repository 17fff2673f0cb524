package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPaperSize, "unknown paper size: %s", "B4")

	if err.Code != ErrCodeInvalidPaperSize {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidPaperSize)
	}
	if err.Message != "unknown paper size: B4" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Error("New should not set a cause")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStreetNetwork, cause, "failed to retrieve street network")

	if err.Cause != cause {
		t.Error("Wrap should preserve cause")
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDistanceExceeded, "distance 60000m exceeds maximum 50000m")

	if !Is(err, ErrCodeDistanceExceeded) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is should not match plain errors")
	}

	// Code matching works through wrapping.
	wrapped := fmt.Errorf("generate: %w", err)
	if !Is(wrapped, ErrCodeDistanceExceeded) {
		t.Error("Is should unwrap fmt-wrapped errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeThemeNotFound, "no such theme")); got != ErrCodeThemeNotFound {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeNetwork, stderrors.New("dial tcp: timeout"), "overpass request failed")
	if got := UserMessage(err); got != "overpass request failed" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "bad format")
	if err.Error() != "INVALID_FORMAT: bad format" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := Wrap(ErrCodeNetwork, stderrors.New("eof"), "fetch failed")
	if wrapped.Error() != "NETWORK_ERROR: fetch failed: eof" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}
