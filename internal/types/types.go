package types

import "time"

// SkillLevel is the proficiency inferred for a detected skill
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// Resume represents an uploaded resume and its extracted text
type Resume struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
	Content    string    `json:"content"`
	Analyzed   bool      `json:"analyzed"`
}

// DetectedSkill represents one catalog skill found in a resume
type DetectedSkill struct {
	Name      string     `json:"name"`
	Relevance int        `json:"relevance"` // 0-100
	Level     SkillLevel `json:"level"`
}

// AnalysisResult represents the scored analysis of a single resume
type AnalysisResult struct {
	ResumeID          string          `json:"resumeId"`
	Score             int             `json:"score"`
	Skills            []DetectedSkill `json:"skills"` // at most 10, relevance descending
	Strengths         []string        `json:"strengths"`
	Weaknesses        []string        `json:"weaknesses"`
	Recommendations   []string        `json:"recommendations"`
	OverallAssessment string          `json:"overallAssessment"`
	JavaExpertise     int             `json:"javaExpertise"`
}

// ResumeSummary is a listing view of a resume without its content
type ResumeSummary struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
	Analyzed   bool      `json:"analyzed"`
}

// Summary returns the listing view of r
func (r Resume) Summary() ResumeSummary {
	return ResumeSummary{
		ID:         r.ID,
		FileName:   r.FileName,
		UploadDate: r.UploadDate,
		Analyzed:   r.Analyzed,
	}
}

// CatalogListing describes the active skill catalog
type CatalogListing struct {
	Source string   `json:"source"` // catalog file path, or "built-in"
	Skills []string `json:"skills"`
}
