package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathways/internal/db"
	"github.com/jonathan/career-pathways/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Copy the Postgres corpora into a SQLite snapshot",
	Long: `Copies user profiles, the jobs corpus and the course corpus (with embeddings) from
Postgres into a single SQLite file that every ranking command accepts via --snapshot.`,
	RunE: runSnapshot,
}

var (
	snapshotDatabaseURL string
	snapshotOutput      string
)

func init() {
	snapshotCmd.Flags().StringVar(&snapshotDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	snapshotCmd.Flags().StringVarP(&snapshotOutput, "out", "o", "", "Path to the output SQLite file (required)")

	if err := snapshotCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, logger, err := loadConfig(false)
	if err != nil {
		return err
	}
	applySourceFlags(cfg, snapshotDatabaseURL, "")
	if cfg.Database.URL == "" {
		return errors.New("--database-url or DATABASE_URL is required")
	}

	source, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer source.Close()
	if err := source.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare database schema: %w", err)
	}

	dst, err := snapshot.Open(snapshotOutput)
	if err != nil {
		return fmt.Errorf("failed to open snapshot %s: %w", snapshotOutput, err)
	}
	defer func() { _ = dst.Close() }()

	report, err := snapshot.Copy(ctx, source, dst, logger)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d profiles, %d jobs and %d courses (%d embedded) to %s\n",
		report.Profiles, report.Jobs, report.Courses, report.Embedded, snapshotOutput)
	return nil
}
