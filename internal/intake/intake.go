// Package intake turns uploaded resume files into analyzable text.
package intake

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"resumescore/internal/errors"
	"resumescore/internal/utils"
)

// ParseFailureMessage is shown to users when a file cannot be read as text
const ParseFailureMessage = "Failed to parse resume. Please check the file format."

// Document is an accepted resume file
type Document struct {
	FileName string
	Content  string
	Size     int64
}

// Extractor validates uploads and extracts their text
type Extractor struct {
	maxSize int64
}

// NewExtractor creates an extractor rejecting files over maxSize bytes.
// A non-positive maxSize disables the limit.
func NewExtractor(maxSize int64) *Extractor {
	return &Extractor{maxSize: maxSize}
}

// Extract accepts plain text and markdown files. The file name extension
// decides the format; contentType is consulted only when there is none.
func (e *Extractor) Extract(fileName, contentType string, data []byte) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Document{}, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"File name is required", nil)
	}

	size := int64(len(data))
	if e.maxSize > 0 && size > e.maxSize {
		return Document{}, errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("File %s is %s, the limit is %s", fileName,
				utils.FormatFileSize(size), utils.FormatFileSize(e.maxSize)), nil).
			WithContext("file", fileName)
	}

	if !isText(fileName, contentType) {
		return Document{}, errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			ParseFailureMessage, nil).
			WithContext("file", fileName).
			WithContext("extension", utils.GetFileExtension(fileName))
	}

	return Document{
		FileName: fileName,
		Content:  decodeText(data),
		Size:     size,
	}, nil
}

func isText(fileName, contentType string) bool {
	if utils.GetFileExtension(fileName) == "" {
		return utils.IsTextMediaType(contentType)
	}
	return utils.IsTextFile(fileName)
}

// decodeText drops a UTF-8 byte order mark and replaces invalid sequences
func decodeText(data []byte) string {
	text := strings.TrimPrefix(string(data), "\uFEFF")
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "\uFFFD")
}
