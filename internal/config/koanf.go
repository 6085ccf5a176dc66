package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"career-pathways.yaml",
	"career-pathways.yml",
	"config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// envMappings maps environment variables (lowercased) onto koanf paths.
var envMappings = map[string]string{
	"database_url":  "database.url",
	"snapshot_path": "snapshot.path",

	"embedding_provider":            "embedding.provider",
	"embedding_model":               "embedding.model",
	"gemini_api_key":                "embedding.api_key",
	"embedding_dimensions":          "embedding.dimensions",
	"embedding_requests_per_second": "embedding.requests_per_second",
	"embedding_burst":               "embedding.burst",
	"embedding_breaker_failures":    "embedding.breaker_failures",
	"embedding_breaker_timeout":     "embedding.breaker_timeout",

	"ranking_weight_salary":     "ranking.weights.salary",
	"ranking_weight_skill":      "ranking.weights.skill",
	"ranking_weight_experience": "ranking.weights.experience",
	"ranking_epsilon":           "ranking.epsilon",
	"ranking_workers":           "ranking.workers",

	"courses_weight_semantic":   "courses.weights.semantic",
	"courses_weight_lexical":    "courses.weights.lexical",
	"courses_weight_coverage":   "courses.weights.coverage",
	"courses_top_k":             "courses.top_k",
	"courses_query_skill_limit": "courses.query_skill_limit",
	"courses_keep_unembedded":   "courses.keep_unembedded",
	"courses_workers":           "courses.workers",

	"recommend_top_n":           "recommend.top_n",
	"recommend_strict_profile":  "recommend.strict_profile",
	"recommend_concurrency":     "recommend.concurrency",
	"recommend_title_threshold": "recommend.title_threshold",

	"port":                    "server.port",
	"server_rate_limit_rps":   "server.rate_limit_rps",
	"server_rate_limit_burst": "server.rate_limit_burst",
	"server_request_timeout":  "server.request_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

// Load layers struct defaults, an optional YAML file and environment
// variables, in increasing priority, then validates the result. An explicit
// path must exist; otherwise CONFIG_PATH and DefaultConfigPaths are searched.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps known variables and skips everything else.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
