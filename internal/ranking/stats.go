package ranking

import (
	"github.com/jonathan/career-pathways/internal/types"
)

// rawComponents are the un-normalized salary and experience differences for
// one job.
type rawComponents struct {
	salary     float64
	experience float64
}

// rawComponentsFor computes the raw differences between a profile and a job.
// A salary increase yields a negative salary component. A job that asks for
// less experience than the user has contributes zero.
func rawComponentsFor(profile *types.UserProfile, job *types.JobRecord) rawComponents {
	return rawComponents{
		salary:     profile.AnnualSalary - job.Comp(),
		experience: max(0, job.Experience()-profile.YearsExperience),
	}
}

// ComputeStats derives corpus-wide normalization ranges in two passes: the
// first materializes the raw components of every job, the second takes
// min/max over them. Ranges are floored at epsilon (DefaultEpsilon when
// epsilon <= 0).
func ComputeStats(profile *types.UserProfile, jobs []types.JobRecord, epsilon float64) types.NormalizationStats {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}

	// Pass 1
	raws := make([]rawComponents, len(jobs))
	for i := range jobs {
		raws[i] = rawComponentsFor(profile, &jobs[i])
	}

	// Pass 2
	var stats types.NormalizationStats
	for i, raw := range raws {
		if i == 0 {
			stats.SalaryComponentMin, stats.SalaryComponentMax = raw.salary, raw.salary
			stats.ExperienceComponentMin, stats.ExperienceComponentMax = raw.experience, raw.experience
			continue
		}
		stats.SalaryComponentMin = min(stats.SalaryComponentMin, raw.salary)
		stats.SalaryComponentMax = max(stats.SalaryComponentMax, raw.salary)
		stats.ExperienceComponentMin = min(stats.ExperienceComponentMin, raw.experience)
		stats.ExperienceComponentMax = max(stats.ExperienceComponentMax, raw.experience)
	}
	stats.SalaryComponentRange = max(stats.SalaryComponentMax-stats.SalaryComponentMin, epsilon)
	stats.ExperienceComponentRange = max(stats.ExperienceComponentMax-stats.ExperienceComponentMin, epsilon)

	return stats
}
