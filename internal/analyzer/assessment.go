package analyzer

const (
	assessmentStrong     = "Strong Java developer candidate with comprehensive skills across the Java ecosystem. Shows expertise in key technologies and frameworks."
	assessmentSolid      = "Solid Java developer with good foundation. Some areas could be strengthened, but overall a promising candidate."
	assessmentDeveloping = "Developing Java programmer with basic skill set. Would benefit from more experience with enterprise Java frameworks and modern development practices."
	assessmentEntry      = "Entry-level candidate with limited Java experience. Requires significant training and mentoring."
)

// ComposeAssessment maps an overall score onto its summary band
func ComposeAssessment(score int, cfg AssessmentConfig) string {
	switch {
	case score >= cfg.Strong:
		return assessmentStrong
	case score >= cfg.Solid:
		return assessmentSolid
	case score >= cfg.Developing:
		return assessmentDeveloping
	default:
		return assessmentEntry
	}
}
