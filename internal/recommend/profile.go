package recommend

import (
	"fmt"
	"strings"

	"github.com/jonathan/career-pathways/internal/skills"
	"github.com/jonathan/career-pathways/internal/titles"
	"github.com/jonathan/career-pathways/internal/types"
)

// Profile field names reported in MissingFields.
const (
	FieldJobTitle        = "job_title"
	FieldSkills          = "skills"
	FieldSalary          = "salary"
	FieldYearsExperience = "years_experience"
)

// monthsPerYear converts monthly salaries to annual.
const monthsPerYear = 12

// BuildProfile converts a provider profile into ranking input. It reports
// every required field that is absent: job title and skills always, salary
// and years of experience only when strict is set. Absent numerics that are
// not required count as zero. A non-nil resolver canonicalizes the title.
func BuildProfile(raw *types.RawProfile, strict bool, resolver *titles.Resolver) (types.UserProfile, []string) {
	var missing []string
	profile := types.UserProfile{}

	title := strings.TrimSpace(raw.JobTitle)
	if title == "" {
		missing = append(missing, FieldJobTitle)
	} else if resolver != nil {
		title = resolver.Canonicalize(title)
	}
	profile.JobTitle = title

	profile.Skills = skills.Normalize(raw.Skills).Items()
	if len(profile.Skills) == 0 {
		missing = append(missing, FieldSkills)
	}

	switch {
	case raw.Salary != nil:
		profile.AnnualSalary = *raw.Salary
		if raw.SalaryPeriod == types.SalaryMonthly {
			profile.AnnualSalary *= monthsPerYear
		}
	case strict:
		missing = append(missing, FieldSalary)
	}

	switch {
	case raw.YearsExperience != nil:
		profile.YearsExperience = *raw.YearsExperience
	case strict:
		missing = append(missing, FieldYearsExperience)
	}

	return profile, missing
}

// incompleteReason is the human-readable explanation for a cannot_rank result.
func incompleteReason(missing []string) string {
	return fmt.Sprintf("profile is missing required fields: %s", strings.Join(missing, ", "))
}
