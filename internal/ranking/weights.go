// Package ranking scores and orders career transitions from a user's current
// job to every job in a corpus.
package ranking

import (
	"errors"
	"fmt"
)

// Default weights for the transition weight components. Skill fit dominates;
// salary is a secondary signal.
const (
	DefaultSalaryWeight     = 0.5
	DefaultSkillWeight      = 2.0
	DefaultExperienceWeight = 1.0

	// DefaultEpsilon floors normalization ranges so a degenerate corpus never
	// divides by zero.
	DefaultEpsilon = 1.0
)

// Weights are relative importance multipliers for the three components of a
// transition weight.
type Weights struct {
	Salary     float64 `json:"salary" koanf:"salary" validate:"gte=0"`
	Skill      float64 `json:"skill" koanf:"skill" validate:"gte=0"`
	Experience float64 `json:"experience" koanf:"experience" validate:"gte=0"`
}

// DefaultWeights returns the default component weights.
func DefaultWeights() Weights {
	return Weights{
		Salary:     DefaultSalaryWeight,
		Skill:      DefaultSkillWeight,
		Experience: DefaultExperienceWeight,
	}
}

// Validate rejects negative weights and an all-zero weight vector.
func (w Weights) Validate() error {
	if w.Salary < 0 || w.Skill < 0 || w.Experience < 0 {
		return fmt.Errorf("transition weights must be non-negative: %+v", w)
	}
	if w.Salary == 0 && w.Skill == 0 && w.Experience == 0 {
		return errors.New("at least one transition weight must be positive")
	}
	return nil
}
