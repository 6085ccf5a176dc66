package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/jonathan/career-pathways/internal/skills"
	"github.com/jonathan/career-pathways/internal/types"
)

// minJobsPerWorker keeps small corpora on a single goroutine.
const minJobsPerWorker = 256

// Options control a ranking run.
type Options struct {
	Weights Weights
	// Epsilon floors the normalization ranges; DefaultEpsilon when <= 0.
	Epsilon float64
	// Workers spreads per-job scoring across goroutines; 1 or less scores inline.
	Workers int
	// Limit truncates the ranked result; 0 keeps every edge.
	Limit int
}

// DefaultOptions returns options with default weights and sequential scoring.
func DefaultOptions() Options {
	return Options{Weights: DefaultWeights(), Epsilon: DefaultEpsilon, Workers: 1}
}

// RankTransitions scores every job in the corpus against the profile and
// returns edges ordered best first: ascending weight, then fewer missing
// skills, then more overlap skills, then title. Jobs whose title matches the
// user's current title (case-insensitively) and jobs sharing no skill with
// the user are excluded. Normalization stats always cover the whole corpus.
func RankTransitions(ctx context.Context, profile *types.UserProfile, jobs []types.JobRecord, opts Options) ([]types.TransitionEdge, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, err
	}

	stats := ComputeStats(profile, jobs, opts.Epsilon)
	userSkills := skills.NewSet(profile.Skills...)
	currentTitle := foldTitle(profile.JobTitle)

	scored := make([]*types.TransitionEdge, len(jobs))
	scoreRange := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			scored[i] = scoreJob(profile, userSkills, currentTitle, &jobs[i], stats, opts.Weights)
		}
	}

	workers := effectiveWorkers(opts.Workers, len(jobs))
	if workers <= 1 {
		scoreRange(0, len(jobs))
	} else {
		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		chunk := (len(jobs) + workers - 1) / workers
		for lo := 0; lo < len(jobs); lo += chunk {
			lo, hi := lo, min(lo+chunk, len(jobs))
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}
				scoreRange(lo, hi)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to score transitions: %w", err)
		}
	}

	edges := make([]types.TransitionEdge, 0, len(jobs))
	for _, edge := range scored {
		if edge != nil {
			edges = append(edges, *edge)
		}
	}

	SortEdges(edges)

	if opts.Limit > 0 && len(edges) > opts.Limit {
		edges = edges[:opts.Limit]
	}
	return edges, nil
}

// SortEdges orders edges by ascending weight, then fewer missing skills, then
// more overlap skills, then lexicographic title.
func SortEdges(edges []types.TransitionEdge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return edgeLess(&edges[i], &edges[j])
	})
}

func edgeLess(a, b *types.TransitionEdge) bool {
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	if a.MissingCount != b.MissingCount {
		return a.MissingCount < b.MissingCount
	}
	if a.OverlapCount != b.OverlapCount {
		return a.OverlapCount > b.OverlapCount
	}
	return a.TargetTitle < b.TargetTitle
}

// scoreJob builds the edge for one job, or returns nil when the job is the
// user's current job or shares no skill with the user.
func scoreJob(profile *types.UserProfile, userSkills *skills.Set, currentTitle string, job *types.JobRecord, stats types.NormalizationStats, w Weights) *types.TransitionEdge {
	if currentTitle != "" && foldTitle(job.Title) == currentTitle {
		return nil
	}

	jobSkills := skills.FromFields(job.Skills)
	overlap := jobSkills.Intersect(userSkills)
	if overlap.Len() == 0 {
		return nil
	}
	missing := jobSkills.Difference(userSkills)

	return &types.TransitionEdge{
		TargetTitle:    job.Title,
		Weight:         computeComponents(profile, userSkills, job, jobSkills, stats).Weighted(w),
		MissingSkills:  missing.Items(),
		OverlapSkills:  overlap.Items(),
		MissingCount:   missing.Len(),
		OverlapCount:   overlap.Len(),
		AnnualComp:     job.AnnualComp,
		WorkExperience: job.WorkExperience,
	}
}

// SameTitle reports whether two job titles match case-insensitively.
func SameTitle(a, b string) bool {
	return foldTitle(a) == foldTitle(b)
}

func foldTitle(title string) string {
	return cases.Fold().String(strings.TrimSpace(title))
}

func effectiveWorkers(requested, jobs int) int {
	if requested <= 1 || jobs < 2*minJobsPerWorker {
		return 1
	}
	return min(requested, jobs/minJobsPerWorker)
}
