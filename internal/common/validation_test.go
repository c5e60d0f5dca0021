package common

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
		expectedError    string
	}{
		{
			name:             "valid format - json",
			format:           "json",
			supportedFormats: []string{"json", "text", "markdown"},
		},
		{
			name:             "valid format - markdown",
			format:           "markdown",
			supportedFormats: []string{"json", "text", "markdown"},
		},
		{
			name:             "invalid format - yaml",
			format:           "yaml",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'yaml'. Supported formats: [json text markdown]",
		},
		{
			name:             "case sensitive - JSON uppercase",
			format:           "JSON",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format 'JSON'. Supported formats: [json text markdown]",
		},
		{
			name:             "empty format string",
			format:           "",
			supportedFormats: []string{"json", "text", "markdown"},
			expectError:      true,
			expectedError:    "unsupported output format ''. Supported formats: [json text markdown]",
		},
		{
			name:             "no configured formats allows anything",
			format:           "xml",
			supportedFormats: nil,
		},
		{
			name:             "narrowed to json",
			format:           "text",
			supportedFormats: []string{"json"},
			expectError:      true,
			expectedError:    "unsupported output format 'text'. Supported formats: [json]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got none")
				}
				if err.Error() != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestResolveOutputFormat(t *testing.T) {
	configured := []string{"json", "text", "markdown"}

	tests := []struct {
		name          string
		requested     string
		defaultFormat string
		supported     []string
		expected      string
		expectedError string
	}{
		{
			name:          "flag wins over default",
			requested:     "markdown",
			defaultFormat: "json",
			supported:     configured,
			expected:      "markdown",
		},
		{
			name:          "falls back to default",
			defaultFormat: "text",
			supported:     configured,
			expected:      "text",
		},
		{
			name:          "outside configured formats",
			requested:     "yaml",
			defaultFormat: "json",
			supported:     configured,
			expectedError: "unsupported output format 'yaml'",
		},
		{
			name:          "unrestricted but unrenderable",
			requested:     "xml",
			defaultFormat: "json",
			expectedError: "no formatter available for output format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ResolveOutputFormat(tt.requested, tt.defaultFormat, tt.supported)

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("Expected error but got format %q", format)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("Expected error containing '%s', got '%s'", tt.expectedError, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if format != tt.expected {
				t.Errorf("Expected format %q, got %q", tt.expected, format)
			}
		})
	}
}
