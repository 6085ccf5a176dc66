package types

import "github.com/google/uuid"

// SalaryPeriod describes how a provider reported compensation.
type SalaryPeriod string

const (
	// SalaryAnnual is the default reporting period.
	SalaryAnnual SalaryPeriod = "annual"
	// SalaryMonthly salaries are multiplied by 12 before ranking.
	SalaryMonthly SalaryPeriod = "monthly"
)

// RawProfile is a user profile as supplied by a profile provider. Any field may
// be absent; completeness is checked before ranking.
type RawProfile struct {
	UserID          uuid.UUID    `json:"user_id"`
	JobTitle        string       `json:"job_title"`
	Skills          RawSkills    `json:"skills"`
	Salary          *float64     `json:"salary,omitempty"`
	SalaryPeriod    SalaryPeriod `json:"salary_period,omitempty"`
	Currency        string       `json:"currency,omitempty"`
	YearsExperience *float64     `json:"years_experience,omitempty"`
}

// UserProfile is the canonical, read-only ranking input.
// Skills holds lowercase, trimmed, unique tokens in first-seen order.
type UserProfile struct {
	JobTitle        string   `json:"job_title"`
	Skills          []string `json:"skills"`
	AnnualSalary    float64  `json:"annual_salary"`
	YearsExperience float64  `json:"years_experience"`
}
