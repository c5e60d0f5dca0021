package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsTextFile(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"resume.txt", true},
		{"RESUME.MD", true},
		{"notes.markdown", true},
		{"cv.text", true},
		{"resume.pdf", false},
		{"resume.docx", false},
		{"resume", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := IsTextFile(tt.filename); got != tt.expected {
				t.Errorf("Expected IsTextFile(%q) = %v, got %v", tt.filename, tt.expected, got)
			}
		})
	}
}

func TestIsTextMediaType(t *testing.T) {
	tests := map[string]bool{
		"text/plain; charset=utf-8": true,
		"text/markdown":             true,
		"application/pdf":           false,
		"":                          false,
		";;":                        false,
	}

	for contentType, expected := range tests {
		if got := IsTextMediaType(contentType); got != expected {
			t.Errorf("Expected IsTextMediaType(%q) = %v, got %v", contentType, expected, got)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := map[int64]string{
		512:                 "512 B",
		1024:                "1.0 KB",
		1024 * 1024 * 3 / 2: "1.5 MB",
	}

	for size, expected := range tests {
		if got := FormatFileSize(size); got != expected {
			t.Errorf("Expected FormatFileSize(%d) = '%s', got '%s'", size, expected, got)
		}
	}
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(path, []byte("java"), 0600); err != nil {
		t.Fatalf("Failed to write input file: %v", err)
	}

	if err := ValidateInputFile(path); err != nil {
		t.Errorf("Expected no error for an existing file, got: %v", err)
	}

	tests := []struct {
		name     string
		filename string
		errorMsg string
	}{
		{"empty name", "", "filename cannot be empty"},
		{"missing file", filepath.Join(dir, "missing.txt"), "file does not exist"},
		{"directory", dir, "path is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.filename)
			if err == nil || !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing '%s', got %v", tt.errorMsg, err)
			}
		})
	}
}

func TestValidateOutputFileCreatesDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "nested", "result.json")

	if err := ValidateOutputFile(out); err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	info, err := os.Stat(filepath.Dir(out))
	if err != nil {
		t.Fatalf("Expected output directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory", filepath.Dir(out))
	}
	if err := ValidateOutputFile(""); err != nil {
		t.Errorf("Expected empty output file to be accepted, got: %v", err)
	}
}
