package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pathways/internal/observability"
	"github.com/jonathan/career-pathways/internal/recommend"
	"github.com/jonathan/career-pathways/internal/schemas"
	"github.com/jonathan/career-pathways/internal/types"
)

var rankTransitionsCmd = &cobra.Command{
	Use:   "rank-transitions",
	Short: "Rank the jobs a profile can transition into",
	Long: `Deterministically ranks every job in a jobs corpus against a user profile by transition
weight (salary change, skill overlap, experience gap), best first, and writes the edges as JSON.`,
	RunE: runRankTransitions,
}

var (
	rankTransitionsProfile string
	rankTransitionsJobs    string
	rankTransitionsOutput  string
	rankTransitionsLimit   int
	rankTransitionsVerbose bool
)

func init() {
	rankTransitionsCmd.Flags().StringVarP(&rankTransitionsProfile, "profile", "p", "", "Path to input profile JSON file (required)")
	rankTransitionsCmd.Flags().StringVarP(&rankTransitionsJobs, "jobs", "j", "", "Path to input jobs corpus JSON file (required)")
	rankTransitionsCmd.Flags().StringVarP(&rankTransitionsOutput, "out", "o", "", "Path to output transitions JSON file (required)")
	rankTransitionsCmd.Flags().IntVarP(&rankTransitionsLimit, "limit", "n", 0, "Maximum number of transitions (0 uses recommend.top_n)")
	rankTransitionsCmd.Flags().BoolVarP(&rankTransitionsVerbose, "verbose", "v", false, "Print the profile and ranked transitions")

	for _, name := range []string{"profile", "jobs", "out"} {
		if err := rankTransitionsCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(rankTransitionsCmd)
}

func runRankTransitions(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg, logger, err := loadConfig(rankTransitionsVerbose)
	if err != nil {
		return err
	}

	// 1. Load inputs
	var profile types.RawProfile
	if err := readJSONFile(rankTransitionsProfile, schemas.ProfileSchema, &profile); err != nil {
		return err
	}
	var jobs []types.RawJob
	if err := readJSONFile(rankTransitionsJobs, schemas.JobsSchema, &jobs); err != nil {
		return err
	}

	// 2. Rank
	encoders := newEncoderProvider(cfg, logger)
	defer func() { _ = encoders.Close() }()

	svc, err := newService(cfg, &recommend.MemoryStore{Jobs: jobs}, encoders, logger)
	if err != nil {
		return err
	}
	result, err := svc.RankProfile(ctx, &profile, rankTransitionsLimit)
	if err != nil {
		return fmt.Errorf("failed to rank transitions: %w", err)
	}
	if result.Status == types.StatusCannotRank {
		return fmt.Errorf("cannot rank profile: %s", result.Reason)
	}

	if rankTransitionsVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintProfile(result.Profile)
		printer.PrintTransitions(result.Transitions)
	}

	// 3. Write
	if err := writeJSONFile(rankTransitionsOutput, result.Transitions, schemas.TransitionsSchema); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully ranked %d transitions from %d jobs to %s\n",
		len(result.Transitions), len(jobs), rankTransitionsOutput)
	return nil
}
