package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathways/internal/config"
	"github.com/jonathan/career-pathways/internal/courses"
	"github.com/jonathan/career-pathways/internal/db"
	"github.com/jonathan/career-pathways/internal/embedding"
	"github.com/jonathan/career-pathways/internal/ingestion"
	"github.com/jonathan/career-pathways/internal/logging"
	"github.com/jonathan/career-pathways/internal/recommend"
	"github.com/jonathan/career-pathways/internal/schemas"
	"github.com/jonathan/career-pathways/internal/snapshot"
)

// corpusStore is implemented by both the Postgres and the snapshot stores.
type corpusStore interface {
	recommend.Store
	ingestion.CourseStore
}

var (
	_ corpusStore = (*db.DB)(nil)
	_ corpusStore = (*snapshot.Store)(nil)
)

// loadConfig loads the layered configuration and initializes logging.
func loadConfig(verbose bool) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, logging.Init(cfg.Logging), nil
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// applySourceFlags lets --database-url and --snapshot override the config.
func applySourceFlags(cfg *config.Config, databaseURL, snapshotPath string) {
	if databaseURL != "" {
		cfg.Database.URL = databaseURL
	}
	if snapshotPath != "" {
		cfg.Snapshot.Path = snapshotPath
	}
}

// openStore opens the configured corpus source. The returned function
// releases it.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (corpusStore, func(), error) {
	kind, location, err := cfg.DataSource()
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case "snapshot":
		store, err := snapshot.Open(location)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open snapshot %s: %w", location, err)
		}
		logger.Debug().Str("path", location).Msg("using snapshot store")
		return store, func() { _ = store.Close() }, nil
	default:
		database, err := db.Connect(ctx, location)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to prepare database schema: %w", err)
		}
		logger.Debug().Msg("using postgres store")
		return database, database.Close, nil
	}
}

// newEncoderProvider returns the lazily-initialized shared encoder.
func newEncoderProvider(cfg *config.Config, logger zerolog.Logger) *embedding.Provider {
	return embedding.NewProvider(embedding.NewFactory(cfg.EmbeddingFactoryConfig(), logger), logger)
}

// newService wires the recommendation pipeline over store.
func newService(cfg *config.Config, store recommend.Store, encoders *embedding.Provider, logger zerolog.Logger) (*recommend.Service, error) {
	matcher, err := courses.NewMatcher(encoders, cfg.MatcherOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create course matcher: %w", err)
	}

	svcCfg := recommend.DefaultConfig()
	svcCfg.TopN = cfg.Recommend.TopN
	svcCfg.StrictProfile = cfg.Recommend.StrictProfile
	svcCfg.Concurrency = cfg.Recommend.Concurrency
	svcCfg.TitleThreshold = cfg.Recommend.TitleThreshold
	svcCfg.CoursesPerPathway = cfg.Courses.TopK
	svcCfg.Ranking = cfg.RankingOptions()

	return recommend.NewService(store, matcher, svcCfg, logger)
}

// readJSONFile validates path against a bundled schema and decodes it.
func readJSONFile(path, schemaName string, dst any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.ValidateDocument(schemaName, content); err != nil {
		return fmt.Errorf("invalid %s: %w", path, err)
	}
	if err := json.Unmarshal(content, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSONFile writes v as indented JSON. Output validation against
// schemaName is a safety check and only warns.
func writeJSONFile(path string, v any, schemaName string) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := writeFile(path, content); err != nil {
		return err
	}
	if schemaName != "" {
		if err := schemas.ValidateDocument(schemaName, content); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}
	return nil
}

func writeFile(path string, content []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(content))
	return err
}
