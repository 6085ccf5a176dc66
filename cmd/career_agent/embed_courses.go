package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathways/internal/ingestion"
)

var embedCoursesCmd = &cobra.Command{
	Use:   "embed-courses",
	Short: "Compute and store course embeddings",
	Long: `Embeds "{title} {description}" for every course whose embedding is missing or does not
match the configured encoder, and stores the vectors in the corpus store.`,
	RunE: runEmbedCourses,
}

var (
	embedCoursesDatabaseURL string
	embedCoursesSnapshot    string
	embedCoursesForce       bool
	embedCoursesLimit       int
	embedCoursesConcurrency int
	embedCoursesVerbose     bool
)

func init() {
	embedCoursesCmd.Flags().StringVar(&embedCoursesDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	embedCoursesCmd.Flags().StringVar(&embedCoursesSnapshot, "snapshot", "", "Path to a SQLite snapshot to embed instead of Postgres")
	embedCoursesCmd.Flags().BoolVar(&embedCoursesForce, "force", false, "Re-embed every course")
	embedCoursesCmd.Flags().IntVar(&embedCoursesLimit, "limit", 0, "Maximum courses to embed (0 means all)")
	embedCoursesCmd.Flags().IntVar(&embedCoursesConcurrency, "concurrency", 4, "Parallel embedding requests")
	embedCoursesCmd.Flags().BoolVarP(&embedCoursesVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(embedCoursesCmd)
}

func runEmbedCourses(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, logger, err := loadConfig(embedCoursesVerbose)
	if err != nil {
		return err
	}
	applySourceFlags(cfg, embedCoursesDatabaseURL, embedCoursesSnapshot)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	encoders := newEncoderProvider(cfg, logger)
	defer func() { _ = encoders.Close() }()

	report, err := ingestion.EmbedCourses(ctx, store, encoders, ingestion.EmbedOptions{
		Force:       embedCoursesForce,
		Concurrency: embedCoursesConcurrency,
		Limit:       embedCoursesLimit,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to embed courses: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Embedded %d of %d courses with %s (%d skipped, %d failed)\n",
		report.Embedded, report.Total, report.Encoder, report.Skipped, report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d courses failed to embed", report.Failed)
	}
	return nil
}
