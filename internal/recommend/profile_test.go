package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-pathways/internal/titles"
	"github.com/jonathan/career-pathways/internal/types"
)

func TestBuildProfile(t *testing.T) {
	tests := []struct {
		name        string
		raw         types.RawProfile
		strict      bool
		wantMissing []string
		wantSalary  float64
	}{
		{
			name:       "annual salary is kept",
			raw:        types.RawProfile{JobTitle: "Dev", Skills: types.SkillsFromList("go"), Salary: ptr(90000), YearsExperience: ptr(2)},
			strict:     true,
			wantSalary: 90000,
		},
		{
			name:       "monthly salary is annualized",
			raw:        types.RawProfile{JobTitle: "Dev", Skills: types.SkillsFromList("go"), Salary: ptr(1000), SalaryPeriod: types.SalaryMonthly, YearsExperience: ptr(2)},
			strict:     true,
			wantSalary: 12000,
		},
		{
			name:        "title and skills are always required",
			raw:         types.RawProfile{Skills: types.RawSkills{}},
			strict:      false,
			wantMissing: []string{FieldJobTitle, FieldSkills},
		},
		{
			name:        "strict mode requires numerics",
			raw:         types.RawProfile{JobTitle: "Dev", Skills: types.SkillsFromList("go")},
			strict:      true,
			wantMissing: []string{FieldSalary, FieldYearsExperience},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, missing := BuildProfile(&tt.raw, tt.strict, nil)
			assert.Equal(t, tt.wantMissing, missing)
			assert.Equal(t, tt.wantSalary, profile.AnnualSalary)
		})
	}
}

func TestBuildProfile_CanonicalizesTitle(t *testing.T) {
	resolver := titles.NewResolver([]string{"AI/ML engineer", "Data analyst"}, nil, 0)
	raw := types.RawProfile{JobTitle: "  ML Engineer ", Skills: types.SkillsFromList("python")}

	profile, missing := BuildProfile(&raw, false, resolver)
	assert.Empty(t, missing)
	assert.Equal(t, "AI/ML engineer", profile.JobTitle)
}
