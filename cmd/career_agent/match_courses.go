package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathways/internal/courses"
	"github.com/jonathan/career-pathways/internal/observability"
	"github.com/jonathan/career-pathways/internal/schemas"
	"github.com/jonathan/career-pathways/internal/types"
)

var matchCoursesCmd = &cobra.Command{
	Use:   "match-courses",
	Short: "Rank courses for a target job's missing skills",
	Long: `Ranks a course corpus for a skill gap. Courses mentioning an overlap skill are excluded,
duplicates are dropped, and the rest are ordered by a blend of embedding similarity,
lexical skill hits and skill coverage.`,
	RunE: runMatchCourses,
}

var (
	matchCoursesCorpus  string
	matchCoursesTitle   string
	matchCoursesMissing []string
	matchCoursesOverlap []string
	matchCoursesK       int
	matchCoursesOutput  string
	matchCoursesVerbose bool
)

func init() {
	matchCoursesCmd.Flags().StringVarP(&matchCoursesCorpus, "courses", "c", "", "Path to input course corpus JSON file (required)")
	matchCoursesCmd.Flags().StringVarP(&matchCoursesTitle, "title", "t", "", "Target job title (required)")
	matchCoursesCmd.Flags().StringSliceVar(&matchCoursesMissing, "missing", nil, "Comma-separated skills the courses should teach")
	matchCoursesCmd.Flags().StringSliceVar(&matchCoursesOverlap, "overlap", nil, "Comma-separated skills the user already has")
	matchCoursesCmd.Flags().IntVar(&matchCoursesK, "k", 0, "Number of courses to return (0 uses courses.top_k)")
	matchCoursesCmd.Flags().StringVarP(&matchCoursesOutput, "out", "o", "", "Path to output course scores JSON file (required)")
	matchCoursesCmd.Flags().BoolVarP(&matchCoursesVerbose, "verbose", "v", false, "Print the ranked courses")

	for _, name := range []string{"courses", "title", "out"} {
		if err := matchCoursesCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(matchCoursesCmd)
}

func runMatchCourses(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, logger, err := loadConfig(matchCoursesVerbose)
	if err != nil {
		return err
	}

	var corpus []types.CourseRecord
	if err := readJSONFile(matchCoursesCorpus, schemas.CoursesSchema, &corpus); err != nil {
		return err
	}

	encoders := newEncoderProvider(cfg, logger)
	defer func() { _ = encoders.Close() }()

	matcher, err := courses.NewMatcher(encoders, cfg.MatcherOptions(), logger)
	if err != nil {
		return fmt.Errorf("failed to create course matcher: %w", err)
	}
	scores, err := matcher.Match(ctx, corpus, courses.MatchRequest{
		TargetTitle:   matchCoursesTitle,
		MissingSkills: matchCoursesMissing,
		OverlapSkills: matchCoursesOverlap,
		K:             matchCoursesK,
	})
	if err != nil {
		return fmt.Errorf("failed to match courses: %w", err)
	}

	if matchCoursesVerbose {
		observability.NewPrinter(os.Stderr).PrintCourses(matchCoursesTitle, scores)
	}

	if err := writeJSONFile(matchCoursesOutput, scores, schemas.CourseScoresSchema); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully matched %d of %d courses to %s\n",
		len(scores), len(corpus), matchCoursesOutput)
	return nil
}
