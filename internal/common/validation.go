package common

import (
	"fmt"
	"slices"

	"resumescore/internal/formatters"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return fmt.Errorf("unsupported output format '%s'. Supported formats: %v",
		format, supportedFormats)
}

// ResolveOutputFormat picks the requested format, or the configured default
// when none was requested, and checks that something can render it
func ResolveOutputFormat(requested, defaultFormat string, supportedFormats []string) (string, error) {
	format := requested
	if format == "" {
		format = defaultFormat
	}

	if err := ValidateOutputFormat(format, supportedFormats); err != nil {
		return "", err
	}

	if !slices.Contains(formatters.GlobalRegistry.GetSupportedFormats(), format) {
		return "", fmt.Errorf("no formatter available for output format '%s'", format)
	}

	return format, nil
}
