package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	cause := fmt.Errorf("disk full")

	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "with cause",
			err:      NewStorageError(ErrCodeStoreFailed, "write failed", cause),
			expected: "STORE_FAILED: write failed (caused by: disk full)",
		},
		{
			name:     "without cause",
			err:      NewValidationError(ErrCodeInvalidRequest, "bad body", nil),
			expected: "INVALID_REQUEST: bad body",
		},
		{
			name:     "internal",
			err:      NewInternalError(ErrCodeAnalysisFailed, "Analysis failed", nil),
			expected: "ANALYSIS_FAILED: Analysis failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", NewNotFoundError(ErrCodeResumeNotFound, "missing", nil))

	if got := TypeOf(wrapped); got != ErrorTypeNotFound {
		t.Errorf("Expected type '%s', got '%s'", ErrorTypeNotFound, got)
	}
	if got := TypeOf(fmt.Errorf("plain")); got != ErrorTypeInternal {
		t.Errorf("Expected type '%s' for a plain error, got '%s'", ErrorTypeInternal, got)
	}
}

func TestLogErrorExpandsAppError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelDebug)

	err := NewIOError(ErrCodeFileNotFound, "no such resume", nil).WithContext("file", "cv.txt")
	logger.LogError(fmt.Errorf("upload: %w", err), "Upload failed", "request_id", "abc")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("Expected a JSON log record, got %q: %v", buf.String(), err)
	}

	expected := map[string]any{
		"msg":        "Upload failed",
		"error_type": "io",
		"error_code": ErrCodeFileNotFound,
		"file":       "cv.txt",
		"request_id": "abc",
	}
	for key, want := range expected {
		if record[key] != want {
			t.Errorf("Expected %s '%v', got '%v'", key, want, record[key])
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if _, err := New(level); err != nil {
			t.Errorf("Expected level '%s' to be accepted, got: %v", level, err)
		}
	}

	_, err := New("verbose")
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Expected invalid log level error, got %v", err)
	}
}
