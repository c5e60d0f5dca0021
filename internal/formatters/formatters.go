package formatters

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"resumescore/internal/types"
)

const timeLayout = "2006-01-02 15:04:05 MST"

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "AnalysisResult", &AnalysisTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisResult", &AnalysisMarkdownFormatter{})
	registry.RegisterFormatter("text", "AnalysisHistory", &HistoryTextFormatter{})
	registry.RegisterFormatter("markdown", "AnalysisHistory", &HistoryMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeSummaries", &ResumeListTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeSummaries", &ResumeListMarkdownFormatter{})
	registry.RegisterFormatter("text", "CatalogListing", &CatalogTextFormatter{})
	registry.RegisterFormatter("markdown", "CatalogListing", &CatalogMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats, sorted
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.AnalysisResult:
		return "AnalysisResult"
	case []types.AnalysisResult:
		return "AnalysisHistory"
	case []types.ResumeSummary:
		return "ResumeSummaries"
	case types.CatalogListing:
		return "CatalogListing"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// AnalysisTextFormatter renders a single analysis as plain text
type AnalysisTextFormatter struct{}

func (atf *AnalysisTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME ANALYSIS ===\n\n")
	if result.ResumeID != "" {
		fmt.Fprintf(&output, "Resume: %s\n", result.ResumeID)
	}
	fmt.Fprintf(&output, "Score: %d/100\n", result.Score)
	fmt.Fprintf(&output, "Java Expertise: %d/100\n\n", result.JavaExpertise)
	output.WriteString("Assessment:\n")
	output.WriteString(result.OverallAssessment)
	output.WriteString("\n\n")

	output.WriteString("=== DETECTED SKILLS ===\n")
	if len(result.Skills) == 0 {
		output.WriteString("No catalog skills detected.\n")
	}
	for i, skill := range result.Skills {
		fmt.Fprintf(&output, "%d. %s (%s, relevance %d)\n", i+1, skill.Name, skill.Level, skill.Relevance)
	}
	output.WriteString("\n")

	writeTextList(&output, "STRENGTHS", result.Strengths)
	writeTextList(&output, "WEAKNESSES", result.Weaknesses)

	output.WriteString("=== RECOMMENDATIONS ===\n")
	for i, recommendation := range result.Recommendations {
		fmt.Fprintf(&output, "%d. %s\n", i+1, recommendation)
	}

	return output.String(), nil
}

func (atf *AnalysisTextFormatter) SupportedType() string {
	return "AnalysisResult"
}

func writeTextList(output *strings.Builder, title string, items []string) {
	fmt.Fprintf(output, "=== %s ===\n", title)
	for _, item := range items {
		fmt.Fprintf(output, "- %s\n", item)
	}
	output.WriteString("\n")
}

// AnalysisMarkdownFormatter renders a single analysis as markdown
type AnalysisMarkdownFormatter struct{}

func (amf *AnalysisMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected AnalysisResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Analysis\n\n")
	if result.ResumeID != "" {
		fmt.Fprintf(&output, "**Resume:** `%s`\n\n", result.ResumeID)
	}
	fmt.Fprintf(&output, "**Score:** %d/100\n\n", result.Score)
	fmt.Fprintf(&output, "**Java Expertise:** %d/100\n\n", result.JavaExpertise)
	output.WriteString("## Assessment\n\n")
	output.WriteString(result.OverallAssessment)
	output.WriteString("\n\n")

	output.WriteString("## Detected Skills\n\n")
	if len(result.Skills) == 0 {
		output.WriteString("No catalog skills detected.\n\n")
	} else {
		output.WriteString("| Skill | Level | Relevance |\n")
		output.WriteString("|---|---|---|\n")
		for _, skill := range result.Skills {
			fmt.Fprintf(&output, "| %s | %s | %d |\n", skill.Name, skill.Level, skill.Relevance)
		}
		output.WriteString("\n")
	}

	writeMarkdownList(&output, "Strengths", result.Strengths)
	writeMarkdownList(&output, "Weaknesses", result.Weaknesses)

	output.WriteString("## Recommendations\n\n")
	for i, recommendation := range result.Recommendations {
		fmt.Fprintf(&output, "%d. %s\n", i+1, recommendation)
	}

	return output.String(), nil
}

func (amf *AnalysisMarkdownFormatter) SupportedType() string {
	return "AnalysisResult"
}

func writeMarkdownList(output *strings.Builder, title string, items []string) {
	fmt.Fprintf(output, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(output, "- %s\n", item)
	}
	output.WriteString("\n")
}

// HistoryTextFormatter lists recorded analyses, one per line
type HistoryTextFormatter struct{}

func (htf *HistoryTextFormatter) Format(data any) (string, error) {
	history, ok := data.([]types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected []AnalysisResult, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== ANALYSIS HISTORY ===\n\n")
	if len(history) == 0 {
		output.WriteString("No analyses recorded.\n")
	}
	for i, result := range history {
		fmt.Fprintf(&output, "%d. %s  score %d/100  skills %d  %s\n",
			i+1, result.ResumeID, result.Score, len(result.Skills), result.OverallAssessment)
	}
	return output.String(), nil
}

func (htf *HistoryTextFormatter) SupportedType() string {
	return "AnalysisHistory"
}

// HistoryMarkdownFormatter lists recorded analyses as a table
type HistoryMarkdownFormatter struct{}

func (hmf *HistoryMarkdownFormatter) Format(data any) (string, error) {
	history, ok := data.([]types.AnalysisResult)
	if !ok {
		return "", fmt.Errorf("expected []AnalysisResult, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Analysis History\n\n")
	if len(history) == 0 {
		output.WriteString("No analyses recorded.\n")
		return output.String(), nil
	}

	output.WriteString("| # | Resume | Score | Skills | Assessment |\n")
	output.WriteString("|---|---|---|---|---|\n")
	for i, result := range history {
		fmt.Fprintf(&output, "| %d | `%s` | %d | %d | %s |\n",
			i+1, result.ResumeID, result.Score, len(result.Skills), result.OverallAssessment)
	}
	return output.String(), nil
}

func (hmf *HistoryMarkdownFormatter) SupportedType() string {
	return "AnalysisHistory"
}

// ResumeListTextFormatter lists uploaded resumes
type ResumeListTextFormatter struct{}

func (rtf *ResumeListTextFormatter) Format(data any) (string, error) {
	resumes, ok := data.([]types.ResumeSummary)
	if !ok {
		return "", fmt.Errorf("expected []ResumeSummary, got %T", data)
	}

	var output strings.Builder
	output.WriteString("=== RESUMES ===\n\n")
	if len(resumes) == 0 {
		output.WriteString("No resumes uploaded.\n")
	}
	for _, r := range resumes {
		fmt.Fprintf(&output, "%s  %s  uploaded %s  %s\n",
			r.ID, r.FileName, r.UploadDate.Format(timeLayout), analyzedLabel(r.Analyzed))
	}
	return output.String(), nil
}

func (rtf *ResumeListTextFormatter) SupportedType() string {
	return "ResumeSummaries"
}

// ResumeListMarkdownFormatter lists uploaded resumes as a table
type ResumeListMarkdownFormatter struct{}

func (rmf *ResumeListMarkdownFormatter) Format(data any) (string, error) {
	resumes, ok := data.([]types.ResumeSummary)
	if !ok {
		return "", fmt.Errorf("expected []ResumeSummary, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Resumes\n\n")
	if len(resumes) == 0 {
		output.WriteString("No resumes uploaded.\n")
		return output.String(), nil
	}

	output.WriteString("| ID | File | Uploaded | Status |\n")
	output.WriteString("|---|---|---|---|\n")
	for _, r := range resumes {
		fmt.Fprintf(&output, "| `%s` | %s | %s | %s |\n",
			r.ID, r.FileName, r.UploadDate.Format(timeLayout), analyzedLabel(r.Analyzed))
	}
	return output.String(), nil
}

func (rmf *ResumeListMarkdownFormatter) SupportedType() string {
	return "ResumeSummaries"
}

func analyzedLabel(analyzed bool) string {
	if analyzed {
		return "analyzed"
	}
	return "pending"
}

// CatalogTextFormatter lists the active skill catalog
type CatalogTextFormatter struct{}

func (ctf *CatalogTextFormatter) Format(data any) (string, error) {
	catalog, ok := data.(types.CatalogListing)
	if !ok {
		return "", fmt.Errorf("expected CatalogListing, got %T", data)
	}

	var output strings.Builder
	fmt.Fprintf(&output, "=== SKILL CATALOG (%d skills, %s) ===\n\n", len(catalog.Skills), catalog.Source)
	for _, skill := range catalog.Skills {
		output.WriteString(skill)
		output.WriteString("\n")
	}
	return output.String(), nil
}

func (ctf *CatalogTextFormatter) SupportedType() string {
	return "CatalogListing"
}

// CatalogMarkdownFormatter lists the active skill catalog as markdown
type CatalogMarkdownFormatter struct{}

func (cmf *CatalogMarkdownFormatter) Format(data any) (string, error) {
	catalog, ok := data.(types.CatalogListing)
	if !ok {
		return "", fmt.Errorf("expected CatalogListing, got %T", data)
	}

	var output strings.Builder
	output.WriteString("# Skill Catalog\n\n")
	fmt.Fprintf(&output, "**Source:** %s\n\n", catalog.Source)
	for _, skill := range catalog.Skills {
		fmt.Fprintf(&output, "- %s\n", skill)
	}
	return output.String(), nil
}

func (cmf *CatalogMarkdownFormatter) SupportedType() string {
	return "CatalogListing"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
