package intake

import (
	stderrors "errors"
	"testing"

	"resumescore/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestExtractAcceptsText(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		data        []byte
		expected    string
	}{
		{"txt", "resume.txt", "", []byte("Java developer"), "Java developer"},
		{"markdown upper case", "CV.MD", "application/octet-stream", []byte("# Java"), "# Java"},
		{"no extension with text type", "resume", "text/plain; charset=utf-8", []byte("Spring Boot"), "Spring Boot"},
		{"byte order mark", "resume.txt", "", []byte("\uFEFFJUnit"), "JUnit"},
		{"invalid utf8", "resume.txt", "", []byte("Java\xffSQL"), "Java\uFFFDSQL"},
		{"empty content", "empty.txt", "", nil, ""},
	}

	e := NewExtractor(1024)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := e.Extract(tt.fileName, tt.contentType, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.Content)
			assert.Equal(t, int64(len(tt.data)), doc.Size)
		})
	}
}

func TestExtractRejects(t *testing.T) {
	tests := []struct {
		name        string
		fileName    string
		contentType string
		data        []byte
		code        string
	}{
		{"pdf", "resume.pdf", "application/pdf", []byte("%PDF-1.7"), errors.ErrCodeUnsupportedFormat},
		{"docx", "resume.docx", "", []byte("PK"), errors.ErrCodeUnsupportedFormat},
		{"pdf named txt type", "resume.pdf", "text/plain", []byte("x"), errors.ErrCodeUnsupportedFormat},
		{"no extension binary", "resume", "application/octet-stream", []byte("x"), errors.ErrCodeUnsupportedFormat},
		{"blank name", "  ", "", []byte("x"), errors.ErrCodeInvalidRequest},
		{"too large", "big.txt", "", make([]byte, 33), errors.ErrCodeFileTooLarge},
	}

	e := NewExtractor(32)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(tt.fileName, tt.contentType, tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.code, appErrorCode(t, err))
		})
	}
}

func TestExtractUnsupportedMessage(t *testing.T) {
	_, err := NewExtractor(0).Extract("resume.pdf", "", []byte("x"))

	var appErr *errors.AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ParseFailureMessage, appErr.Message)
	assert.Equal(t, ".pdf", appErr.Context["extension"])
}
