package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pathways/internal/types"
)

func ptr(v float64) *float64 { return &v }

func dataEngineer() types.JobRecord {
	return types.JobRecord{
		Title:          "Data Engineer",
		AnnualComp:     ptr(95000),
		WorkExperience: ptr(5),
		Skills: types.SkillFields{
			Language: []string{"python"},
			Platform: []string{"docker", "aws"},
		},
	}
}

func analyst() *types.UserProfile {
	return &types.UserProfile{
		JobTitle:        "Data Analyst",
		Skills:          []string{"python", "sql"},
		AnnualSalary:    72000,
		YearsExperience: 3,
	}
}

func TestWeight_WorkedExample(t *testing.T) {
	job := dataEngineer()
	stats := types.NormalizationStats{
		SalaryComponentMin:       -23000,
		SalaryComponentMax:       10000,
		SalaryComponentRange:     33000,
		ExperienceComponentMin:   0,
		ExperienceComponentMax:   4,
		ExperienceComponentRange: 4,
	}

	c := ComputeComponents(analyst(), &job, stats)
	assert.InDelta(t, 0.0, c.Salary, 1e-9)
	assert.InDelta(t, 0.75, c.Skill, 1e-9)
	assert.InDelta(t, 0.5, c.Experience, 1e-9)

	assert.InDelta(t, 2.0, Weight(analyst(), &job, stats, DefaultWeights()), 1e-9)
}

func TestWeight_MissingNumericsCountAsZero(t *testing.T) {
	job := types.JobRecord{
		Title:  "Mystery Job",
		Skills: types.SkillFields{Language: []string{"python"}},
	}
	profile := &types.UserProfile{Skills: []string{"python"}}
	stats := ComputeStats(profile, []types.JobRecord{job}, DefaultEpsilon)

	c := ComputeComponents(profile, &job, stats)
	assert.Equal(t, 0.0, c.Salary)
	assert.Equal(t, 0.0, c.Skill)
	assert.Equal(t, 0.0, c.Experience)
}

func TestWeight_ExperienceSurplusIsNotPenalized(t *testing.T) {
	job := types.JobRecord{Title: "Junior Dev", WorkExperience: ptr(1)}
	profile := &types.UserProfile{YearsExperience: 10}
	raw := rawComponentsFor(profile, &job)
	assert.Equal(t, 0.0, raw.experience)
}

func TestWeight_SalaryIncreaseIsFavorable(t *testing.T) {
	profile := &types.UserProfile{Skills: []string{"go"}, AnnualSalary: 50000}
	jobs := []types.JobRecord{
		{Title: "Paid More", AnnualComp: ptr(90000), Skills: types.SkillFields{Language: []string{"go"}}},
		{Title: "Paid Less", AnnualComp: ptr(30000), Skills: types.SkillFields{Language: []string{"go"}}},
	}
	stats := ComputeStats(profile, jobs, DefaultEpsilon)
	w := DefaultWeights()

	assert.Less(t, Weight(profile, &jobs[0], stats, w), Weight(profile, &jobs[1], stats, w))
}

func TestWeight_Deterministic(t *testing.T) {
	job := dataEngineer()
	jobs := []types.JobRecord{job}
	stats := ComputeStats(analyst(), jobs, DefaultEpsilon)

	first := Weight(analyst(), &job, stats, DefaultWeights())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Weight(analyst(), &job, stats, DefaultWeights()))
	}
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	require.NoError(t, Weights{Skill: 1}.Validate())
	assert.Error(t, Weights{}.Validate())
	assert.Error(t, Weights{Salary: -1, Skill: 1}.Validate())
}

func TestComputeStats_TwoPassRanges(t *testing.T) {
	profile := analyst()
	jobs := []types.JobRecord{
		dataEngineer(),
		{Title: "Analyst II", AnnualComp: ptr(62000), WorkExperience: ptr(7)},
		{Title: "Intern"},
	}

	stats := ComputeStats(profile, jobs, DefaultEpsilon)
	assert.Equal(t, -23000.0, stats.SalaryComponentMin)
	assert.Equal(t, 72000.0, stats.SalaryComponentMax)
	assert.Equal(t, 95000.0, stats.SalaryComponentRange)
	assert.Equal(t, 0.0, stats.ExperienceComponentMin)
	assert.Equal(t, 4.0, stats.ExperienceComponentMax)
	assert.Equal(t, 4.0, stats.ExperienceComponentRange)
}

func TestComputeStats_DegenerateRangeIsFloored(t *testing.T) {
	profile := &types.UserProfile{Skills: []string{"go"}, AnnualSalary: 100000, YearsExperience: 5}
	jobs := []types.JobRecord{
		{Title: "A", AnnualComp: ptr(100000), WorkExperience: ptr(5), Skills: types.SkillFields{Language: []string{"go"}}},
		{Title: "B", AnnualComp: ptr(100000), WorkExperience: ptr(5), Skills: types.SkillFields{Language: []string{"go", "rust"}}},
	}

	stats := ComputeStats(profile, jobs, 0)
	assert.Equal(t, DefaultEpsilon, stats.SalaryComponentRange)
	assert.Equal(t, DefaultEpsilon, stats.ExperienceComponentRange)

	for i := range jobs {
		w := Weight(profile, &jobs[i], stats, DefaultWeights())
		assert.False(t, math.IsNaN(w) || math.IsInf(w, 0), "weight must be finite")
	}
}

func TestComputeStats_EmptyCorpus(t *testing.T) {
	stats := ComputeStats(analyst(), nil, DefaultEpsilon)
	assert.Equal(t, DefaultEpsilon, stats.SalaryComponentRange)
	assert.Equal(t, DefaultEpsilon, stats.ExperienceComponentRange)
}
