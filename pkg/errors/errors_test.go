package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "block %q has no variants", "MM1")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	want := `block "MM1" has no variants`
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := Wrap(ErrCodeLogFile, cause, "opening %s", "out.csv")
	if err.Code != ErrCodeLogFile {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeLogFile)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "bad"), ErrCodeInvalidInput, true},
		{"mismatched code", New(ErrCodeInvalidInput, "bad"), ErrCodeLogFile, false},
		{"plain error", fmt.Errorf("plain"), ErrCodeInvalidInput, false},
		{"wrapped stdlib error", fmt.Errorf("wrap: %w", New(ErrCodeUnknownStrategy, "bad tag")), ErrCodeUnknownStrategy, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidConfig, "bad config")); got != ErrCodeInvalidConfig {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidConfig)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInternal, "something broke")
	if got := UserMessage(err); got != "something broke" {
		t.Errorf("UserMessage() = %q, want %q", got, "something broke")
	}
	plain := fmt.Errorf("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain error")
	}
}

func TestErrorString(t *testing.T) {
	withoutCause := New(ErrCodeInvalidInput, "bad input")
	want := "INVALID_INPUT: bad input"
	if got := withoutCause.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := fmt.Errorf("permission denied")
	withCause := Wrap(ErrCodeLogFile, cause, "opening out.csv")
	want = "LOG_FILE_ERROR: opening out.csv: permission denied"
	if got := withCause.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
