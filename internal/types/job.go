package types

// SkillFields holds the four skill-bearing fields of a job corpus row.
type SkillFields struct {
	Language  []string `json:"language"`
	Database  []string `json:"database"`
	Platform  []string `json:"platform"`
	Framework []string `json:"framework"`
}

// RawJob is one row of the jobs corpus as supplied by a corpus provider.
type RawJob struct {
	Title          string    `json:"title"`
	AnnualComp     *float64  `json:"annual_comp"`
	WorkExperience *float64  `json:"work_experience"`
	Language       RawSkills `json:"language"`
	Database       RawSkills `json:"database"`
	Platform       RawSkills `json:"platform"`
	Framework      RawSkills `json:"framework"`
}

// JobRecord is a normalized jobs corpus row. Nil numeric fields are treated
// as zero by the ranking computation.
type JobRecord struct {
	Title          string      `json:"title"`
	AnnualComp     *float64    `json:"annual_comp"`
	WorkExperience *float64    `json:"work_experience"`
	Skills         SkillFields `json:"skills"`
}

// Comp returns the annual compensation, or 0 when missing.
func (j *JobRecord) Comp() float64 {
	if j.AnnualComp == nil {
		return 0
	}
	return *j.AnnualComp
}

// Experience returns the required years of experience, or 0 when missing.
func (j *JobRecord) Experience() float64 {
	if j.WorkExperience == nil {
		return 0
	}
	return *j.WorkExperience
}
