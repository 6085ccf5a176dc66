package types

// NormalizationStats are corpus-wide min/max/range values for the raw salary
// and experience components. Ranges are floored at a positive epsilon.
type NormalizationStats struct {
	SalaryComponentMin       float64 `json:"salary_component_min"`
	SalaryComponentMax       float64 `json:"salary_component_max"`
	SalaryComponentRange     float64 `json:"salary_component_range"`
	ExperienceComponentMin   float64 `json:"experience_component_min"`
	ExperienceComponentMax   float64 `json:"experience_component_max"`
	ExperienceComponentRange float64 `json:"experience_component_range"`
}

// TransitionEdge is a scored move from the user's current job to a target job.
// Lower weight is a more favorable transition.
type TransitionEdge struct {
	TargetTitle    string   `json:"target_title"`
	Weight         float64  `json:"weight"`
	MissingSkills  []string `json:"missing_skills"`
	OverlapSkills  []string `json:"overlap_skills"`
	MissingCount   int      `json:"missing_count"`
	OverlapCount   int      `json:"overlap_count"`
	AnnualComp     *float64 `json:"annual_comp,omitempty"`
	WorkExperience *float64 `json:"work_experience,omitempty"`
}
