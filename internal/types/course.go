package types

// CourseRecord is a read-only course corpus entry. Embedding is nil when the
// course has not been embedded yet.
type CourseRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Level       string    `json:"level,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// CourseScore is a course with its raw and blended relevance signals.
// Similarity is the raw cosine similarity; LexicalScore is the raw hit count;
// CoverageScore is hits divided by the number of missing skills.
type CourseScore struct {
	Course        CourseRecord `json:"course"`
	Similarity    float64      `json:"similarity"`
	LexicalScore  float64      `json:"lexical_score"`
	CoverageScore float64      `json:"coverage_score"`
	BlendedScore  float64      `json:"blended_score"`
	MatchedSkills []string     `json:"matched_skills,omitempty"`
}
