// Package config loads layered configuration for the CLI and the HTTP server.
package config

import (
	"time"

	"github.com/jonathan/career-pathways/internal/courses"
	"github.com/jonathan/career-pathways/internal/embedding"
	"github.com/jonathan/career-pathways/internal/logging"
	"github.com/jonathan/career-pathways/internal/ranking"
)

// Config is the full application configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Snapshot  SnapshotConfig  `koanf:"snapshot"`
	Embedding EmbeddingConfig `koanf:"embedding"`
	Ranking   RankingConfig   `koanf:"ranking"`
	Courses   CoursesConfig   `koanf:"courses"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   logging.Config  `koanf:"logging"`
}

// DatabaseConfig points at the Postgres corpora.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// SnapshotConfig points at an offline SQLite snapshot.
type SnapshotConfig struct {
	Path string `koanf:"path"`
}

// EmbeddingConfig selects the encoder backend.
type EmbeddingConfig struct {
	Provider          string        `koanf:"provider" validate:"oneof=gemini hashing"`
	Model             string        `koanf:"model"`
	APIKey            string        `koanf:"api_key"`
	Dimensions        int           `koanf:"dimensions" validate:"gte=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int           `koanf:"burst" validate:"gte=0"`
	BreakerFailures   uint32        `koanf:"breaker_failures"`
	BreakerTimeout    time.Duration `koanf:"breaker_timeout"`
}

// RankingConfig tunes the transition ranker.
type RankingConfig struct {
	Weights ranking.Weights `koanf:"weights"`
	Epsilon float64         `koanf:"epsilon" validate:"gt=0"`
	Workers int             `koanf:"workers" validate:"gte=0"`
}

// CoursesConfig tunes the course matcher.
type CoursesConfig struct {
	Weights         courses.BlendWeights `koanf:"weights"`
	TopK            int                  `koanf:"top_k" validate:"gt=0"`
	QuerySkillLimit int                  `koanf:"query_skill_limit" validate:"gt=0"`
	KeepUnembedded  bool                 `koanf:"keep_unembedded"`
	Workers         int                  `koanf:"workers" validate:"gte=0"`
}

// RecommendConfig tunes the end-to-end pipeline.
type RecommendConfig struct {
	TopN int `koanf:"top_n" validate:"gt=0"`
	// StrictProfile requires salary and years of experience before ranking.
	StrictProfile bool `koanf:"strict_profile"`
	Concurrency   int  `koanf:"concurrency" validate:"gt=0"`
	// TitleThreshold is the minimum fuzzy score for title canonicalization.
	TitleThreshold float64 `koanf:"title_threshold" validate:"gte=0,lte=100"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int           `koanf:"port" validate:"gt=0,lte=65535"`
	RateLimitRPS   float64       `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int           `koanf:"rate_limit_burst" validate:"gte=0"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

func defaultConfig() *Config {
	gemini := embedding.DefaultGeminiConfig()
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:          embedding.BackendHashing,
			Model:             gemini.Model,
			Dimensions:        embedding.DefaultHashingDimensions,
			RequestsPerSecond: gemini.RequestsPerSecond,
			Burst:             gemini.Burst,
			BreakerFailures:   gemini.Breaker.FailureThreshold,
			BreakerTimeout:    gemini.Breaker.Timeout,
		},
		Ranking: RankingConfig{
			Weights: ranking.DefaultWeights(),
			Epsilon: ranking.DefaultEpsilon,
			Workers: 4,
		},
		Courses: CoursesConfig{
			Weights:         courses.DefaultBlendWeights(),
			TopK:            courses.DefaultK,
			QuerySkillLimit: courses.DefaultQuerySkillLimit,
			Workers:         4,
		},
		Recommend: RecommendConfig{
			TopN:           3,
			StrictProfile:  true,
			Concurrency:    3,
			TitleThreshold: 75,
		},
		Server: ServerConfig{
			Port:           8080,
			RateLimitRPS:   5,
			RateLimitBurst: 10,
			RequestTimeout: 30 * time.Second,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Default returns the built-in defaults.
func Default() *Config {
	return defaultConfig()
}

// EmbeddingFactoryConfig converts the embedding section for the embedding
// package.
func (c *Config) EmbeddingFactoryConfig() embedding.Config {
	gemini := embedding.DefaultGeminiConfig()
	gemini.APIKey = c.Embedding.APIKey
	if c.Embedding.Model != "" {
		gemini.Model = c.Embedding.Model
	}
	if c.Embedding.Provider == embedding.BackendGemini {
		gemini.Dimensions = c.Embedding.Dimensions
	}
	gemini.RequestsPerSecond = c.Embedding.RequestsPerSecond
	gemini.Burst = c.Embedding.Burst
	if c.Embedding.BreakerFailures > 0 {
		gemini.Breaker.FailureThreshold = c.Embedding.BreakerFailures
	}
	if c.Embedding.BreakerTimeout > 0 {
		gemini.Breaker.Timeout = c.Embedding.BreakerTimeout
	}

	return embedding.Config{
		Backend:           c.Embedding.Provider,
		Gemini:            gemini,
		HashingDimensions: c.Embedding.Dimensions,
	}
}

// RankingOptions converts the ranking section.
func (c *Config) RankingOptions() ranking.Options {
	return ranking.Options{
		Weights: c.Ranking.Weights,
		Epsilon: c.Ranking.Epsilon,
		Workers: c.Ranking.Workers,
	}
}

// MatcherOptions converts the courses section.
func (c *Config) MatcherOptions() courses.Options {
	return courses.Options{
		DefaultK:        c.Courses.TopK,
		QuerySkillLimit: c.Courses.QuerySkillLimit,
		Weights:         c.Courses.Weights,
		KeepUnembedded:  c.Courses.KeepUnembedded,
		Workers:         c.Courses.Workers,
	}
}
