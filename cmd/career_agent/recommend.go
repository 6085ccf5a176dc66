package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathways/internal/observability"
	"github.com/jonathan/career-pathways/internal/recommend"
	"github.com/jonathan/career-pathways/internal/rendering"
	"github.com/jonathan/career-pathways/internal/schemas"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend career pathways and courses for a stored user",
	Long: `Loads a user's profile from Postgres or a snapshot, ranks their best career transitions
and attaches the best matching courses to each. Prints JSON or a Markdown report.`,
	RunE: runRecommend,
}

var (
	recommendUserID        string
	recommendDatabaseURL   string
	recommendSnapshot      string
	recommendFormat        string
	recommendTemplate      string
	recommendOutput        string
	recommendTopN          int
	recommendCoursesPerJob int
	recommendVerbose       bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendUserID, "user-id", "u", "", "User UUID (required)")
	recommendCmd.Flags().StringVar(&recommendDatabaseURL, "database-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	recommendCmd.Flags().StringVar(&recommendSnapshot, "snapshot", "", "Path to a SQLite snapshot to read instead of Postgres")
	recommendCmd.Flags().StringVarP(&recommendFormat, "format", "f", formatJSON, "Output format: json or markdown")
	recommendCmd.Flags().StringVarP(&recommendTemplate, "template", "t", "", "Markdown template overriding the built-in report")
	recommendCmd.Flags().StringVarP(&recommendOutput, "out", "o", "", "Output file (defaults to stdout)")
	recommendCmd.Flags().IntVarP(&recommendTopN, "top-n", "n", 0, "Number of pathways (0 uses recommend.top_n)")
	recommendCmd.Flags().IntVar(&recommendCoursesPerJob, "courses-per-job", 0, "Courses per pathway (0 uses courses.top_k)")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Print the recommendation summary to stderr")

	if err := recommendCmd.MarkFlagRequired("user-id"); err != nil {
		panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
	}

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)

	userID, err := uuid.Parse(recommendUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id %q: %w", recommendUserID, err)
	}
	if recommendFormat != formatJSON && recommendFormat != formatMarkdown {
		return fmt.Errorf("invalid --format %q: must be %s or %s", recommendFormat, formatJSON, formatMarkdown)
	}

	cfg, logger, err := loadConfig(recommendVerbose)
	if err != nil {
		return err
	}
	applySourceFlags(cfg, recommendDatabaseURL, recommendSnapshot)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	encoders := newEncoderProvider(cfg, logger)
	defer func() { _ = encoders.Close() }()

	svc, err := newService(cfg, store, encoders, logger)
	if err != nil {
		return err
	}

	rec, err := svc.Recommend(ctx, userID, recommend.Options{
		TopN:              recommendTopN,
		CoursesPerPathway: recommendCoursesPerJob,
	})
	if err != nil {
		return fmt.Errorf("failed to build recommendation: %w", err)
	}

	if recommendVerbose {
		observability.NewPrinter(os.Stderr).PrintRecommendation(rec)
	}

	if recommendFormat == formatMarkdown {
		var report string
		if recommendTemplate != "" {
			report, err = rendering.RenderMarkdownFile(rec, recommendTemplate)
		} else {
			report, err = rendering.RenderMarkdown(rec)
		}
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		if recommendOutput == "" {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), report)
			return nil
		}
		if err := writeFile(recommendOutput, []byte(report)); err != nil {
			return err
		}
	} else {
		if recommendOutput == "" {
			return printJSON(cmd, rec)
		}
		if err := writeJSONFile(recommendOutput, rec, schemas.RecommendationSchema); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d pathways (%s) to %s\n",
		len(rec.Pathways), rec.Status, recommendOutput)
	return nil
}
