package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-pathways/internal/embedding"
)

// ValidationError reports an invalid configuration.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return "config error: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Validate checks field ranges and cross-field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ValidationError{Message: "invalid field values", Cause: err}
	}

	if err := c.Ranking.Weights.Validate(); err != nil {
		return &ValidationError{Message: "ranking weights", Cause: err}
	}
	w := c.Courses.Weights
	if w.Semantic+w.Lexical+w.Coverage == 0 {
		return &ValidationError{Message: "course blend weights", Cause: errors.New("at least one weight must be positive")}
	}
	if c.Embedding.Provider == embedding.BackendGemini && c.Embedding.APIKey == "" {
		return &ValidationError{Message: "embedding.api_key (GEMINI_API_KEY) is required for the gemini provider"}
	}
	return nil
}

// DataSource returns the configured corpus source, preferring the snapshot.
// It fails when neither is set.
func (c *Config) DataSource() (kind, location string, err error) {
	switch {
	case c.Snapshot.Path != "":
		return "snapshot", c.Snapshot.Path, nil
	case c.Database.URL != "":
		return "postgres", c.Database.URL, nil
	default:
		return "", "", &ValidationError{Message: "either database.url (DATABASE_URL) or snapshot.path is required"}
	}
}
