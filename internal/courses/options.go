// Package courses ranks a course corpus against the skills a user is missing
// for a target job, blending semantic, lexical and coverage signals.
package courses

import (
	"fmt"
)

const (
	// DefaultK is the number of courses returned when a request does not say.
	DefaultK = 10
	// DefaultQuerySkillLimit caps how many missing skills go into the query text.
	DefaultQuerySkillLimit = 8

	DefaultSemanticWeight = 0.6
	DefaultLexicalWeight  = 0.25
	DefaultCoverageWeight = 0.15
)

// BlendWeights combine the normalized signals into the blended score.
type BlendWeights struct {
	Semantic float64 `json:"semantic" koanf:"semantic" validate:"gte=0"`
	Lexical  float64 `json:"lexical" koanf:"lexical" validate:"gte=0"`
	Coverage float64 `json:"coverage" koanf:"coverage" validate:"gte=0"`
}

// DefaultBlendWeights returns 0.6 semantic, 0.25 lexical, 0.15 coverage.
func DefaultBlendWeights() BlendWeights {
	return BlendWeights{
		Semantic: DefaultSemanticWeight,
		Lexical:  DefaultLexicalWeight,
		Coverage: DefaultCoverageWeight,
	}
}

// Options configure a Matcher.
type Options struct {
	DefaultK        int
	QuerySkillLimit int
	Weights         BlendWeights
	// KeepUnembedded retains courses without a usable embedding and scores
	// them with a semantic similarity of 0. By default they are dropped.
	KeepUnembedded bool
	// Workers spreads per-course scoring across goroutines.
	Workers int
}

// DefaultOptions returns the default matcher configuration.
func DefaultOptions() Options {
	return Options{
		DefaultK:        DefaultK,
		QuerySkillLimit: DefaultQuerySkillLimit,
		Weights:         DefaultBlendWeights(),
		Workers:         1,
	}
}

func (o Options) withDefaults() Options {
	if o.DefaultK <= 0 {
		o.DefaultK = DefaultK
	}
	if o.QuerySkillLimit <= 0 {
		o.QuerySkillLimit = DefaultQuerySkillLimit
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	return o
}

// Validate rejects negative blend weights.
func (o Options) Validate() error {
	w := o.Weights
	if w.Semantic < 0 || w.Lexical < 0 || w.Coverage < 0 {
		return fmt.Errorf("blend weights must be non-negative: %+v", w)
	}
	return nil
}
