package ranking

import (
	"github.com/jonathan/career-pathways/internal/skills"
	"github.com/jonathan/career-pathways/internal/types"
)

// Components are the three normalized inputs of a transition weight.
type Components struct {
	Salary     float64 `json:"salary"`
	Skill      float64 `json:"skill"`
	Experience float64 `json:"experience"`
}

// Weighted combines the components into a single weight.
func (c Components) Weighted(w Weights) float64 {
	return w.Salary*c.Salary + w.Skill*c.Skill + w.Experience*c.Experience
}

// ComputeComponents normalizes the salary and experience differences against
// stats and derives the skill component as 1 - Jaccard(user, job).
func ComputeComponents(profile *types.UserProfile, job *types.JobRecord, stats types.NormalizationStats) Components {
	return computeComponents(profile, skills.NewSet(profile.Skills...), job, skills.FromFields(job.Skills), stats)
}

// Weight returns the transition weight for moving from the profile's job to
// job. Lower is better. Missing salary or experience on either side counts
// as zero. The result depends only on its arguments.
func Weight(profile *types.UserProfile, job *types.JobRecord, stats types.NormalizationStats, w Weights) float64 {
	return ComputeComponents(profile, job, stats).Weighted(w)
}

func computeComponents(profile *types.UserProfile, userSkills *skills.Set, job *types.JobRecord, jobSkills *skills.Set, stats types.NormalizationStats) Components {
	raw := rawComponentsFor(profile, job)
	return Components{
		Salary:     normalize(raw.salary, stats.SalaryComponentMin, stats.SalaryComponentRange),
		Skill:      1 - skills.Jaccard(userSkills, jobSkills),
		Experience: normalize(raw.experience, stats.ExperienceComponentMin, stats.ExperienceComponentRange),
	}
}

// normalize applies (value - min) / range. Stats built by ComputeStats always
// carry a positive range; hand-built stats with a non-positive range yield 0.
func normalize(value, lo, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return (value - lo) / span
}
