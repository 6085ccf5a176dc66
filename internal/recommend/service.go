package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-pathways/internal/courses"
	"github.com/jonathan/career-pathways/internal/metrics"
	"github.com/jonathan/career-pathways/internal/ranking"
	"github.com/jonathan/career-pathways/internal/skills"
	"github.com/jonathan/career-pathways/internal/titles"
	"github.com/jonathan/career-pathways/internal/types"
)

// Config tunes the pipeline.
type Config struct {
	// TopN is the number of pathways returned.
	TopN int
	// CoursesPerPathway caps the courses per pathway; the matcher default
	// applies when <= 0.
	CoursesPerPathway int
	// StrictProfile requires salary and years of experience.
	StrictProfile bool
	// Concurrency bounds parallel course matching.
	Concurrency int
	// CanonicalizeTitles maps the user's title onto corpus titles first.
	CanonicalizeTitles bool
	TitleThreshold     float64
	Ranking            ranking.Options
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		TopN:               3,
		StrictProfile:      true,
		Concurrency:        3,
		CanonicalizeTitles: true,
		TitleThreshold:     titles.DefaultThreshold,
		Ranking:            ranking.DefaultOptions(),
	}
}

// Options override Config per request.
type Options struct {
	TopN              int `json:"top_n,omitempty" validate:"gte=0,lte=50"`
	CoursesPerPathway int `json:"courses_per_job,omitempty" validate:"gte=0,lte=100"`
}

// TransitionResult is the outcome of ranking a profile without courses.
type TransitionResult struct {
	Status        types.RecommendationStatus `json:"status"`
	Reason        string                     `json:"reason,omitempty"`
	MissingFields []string                   `json:"missing_fields,omitempty"`
	Profile       *types.UserProfile         `json:"profile,omitempty"`
	Transitions   []types.TransitionEdge     `json:"transitions"`
}

// Service runs recommendations against a Store.
type Service struct {
	store   Store
	matcher *courses.Matcher
	cfg     Config
	logger  zerolog.Logger
}

// NewService creates a recommendation service.
func NewService(store Store, matcher *courses.Matcher, cfg Config, logger zerolog.Logger) (*Service, error) {
	if store == nil || matcher == nil {
		return nil, errors.New("recommend: store and matcher are required")
	}
	if err := cfg.Ranking.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranking config: %w", err)
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultConfig().TopN
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &Service{
		store:   store,
		matcher: matcher,
		cfg:     cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Recommend builds the full recommendation for userID. It returns
// ErrProfileNotFound when the user has no profile, and a cannot_rank result
// (not an error) when the profile is incomplete.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID, opts Options) (*types.Recommendation, error) {
	start := time.Now()
	logger := s.logger.With().Str("user_id", userID.String()).Logger()

	raw, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if raw == nil {
		metrics.RecommendationsTotal.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("user %s: %w", userID, ErrProfileNotFound)
	}

	transitions, err := s.rank(ctx, raw, s.topN(opts))
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	rec := &types.Recommendation{
		UserID:        userID,
		Status:        transitions.Status,
		Reason:        transitions.Reason,
		MissingFields: transitions.MissingFields,
		Profile:       transitions.Profile,
		CurrentTitle:  raw.JobTitle,
		Pathways:      []types.Pathway{},
	}
	if transitions.Status == types.StatusCannotRank {
		metrics.RecommendationsTotal.WithLabelValues(string(types.StatusCannotRank)).Inc()
		logger.Info().Strs("missing_fields", transitions.MissingFields).Msg("profile incomplete, cannot rank")
		return rec, nil
	}

	pathways, err := s.attachCourses(ctx, transitions.Transitions, s.coursesPerPathway(opts))
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	rec.Pathways = pathways

	metrics.RecommendationsTotal.WithLabelValues(string(types.StatusOK)).Inc()
	logger.Info().
		Int("pathways", len(pathways)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation complete")
	return rec, nil
}

// RankProfile ranks transitions for a profile supplied by the caller.
// limit <= 0 uses the configured TopN.
func (s *Service) RankProfile(ctx context.Context, raw *types.RawProfile, limit int) (*TransitionResult, error) {
	if raw == nil {
		return nil, ErrProfileNotFound
	}
	return s.rank(ctx, raw, s.topN(Options{TopN: limit}))
}

// MatchCourses runs the course matcher against the course corpus.
func (s *Service) MatchCourses(ctx context.Context, req courses.MatchRequest) ([]types.CourseScore, error) {
	corpus, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return s.matcher.Match(ctx, corpus, req)
}

func (s *Service) rank(ctx context.Context, raw *types.RawProfile, limit int) (*TransitionResult, error) {
	rawJobs, err := s.store.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs := skills.NormalizeJobs(rawJobs)

	var resolver *titles.Resolver
	if s.cfg.CanonicalizeTitles {
		resolver = titles.NewResolver(jobTitles(jobs), nil, s.cfg.TitleThreshold)
	}

	profile, missing := BuildProfile(raw, s.cfg.StrictProfile, resolver)
	if len(missing) > 0 {
		return &TransitionResult{
			Status:        types.StatusCannotRank,
			Reason:        incompleteReason(missing),
			MissingFields: missing,
			Transitions:   []types.TransitionEdge{},
		}, nil
	}

	opts := s.cfg.Ranking
	opts.Limit = limit

	start := time.Now()
	edges, err := ranking.RankTransitions(ctx, &profile, jobs, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to rank transitions: %w", err)
	}
	metrics.RecordRanking(time.Since(start), len(jobs), len(edges))

	s.logger.Debug().
		Str("job_title", profile.JobTitle).
		Int("jobs", len(jobs)).
		Int("edges", len(edges)).
		Msg("ranked transitions")

	return &TransitionResult{
		Status:      types.StatusOK,
		Profile:     &profile,
		Transitions: edges,
	}, nil
}

// attachCourses matches courses for every edge concurrently and returns the
// pathways in rank order.
func (s *Service) attachCourses(ctx context.Context, edges []types.TransitionEdge, k int) ([]types.Pathway, error) {
	pathways := make([]types.Pathway, len(edges))
	if len(edges) == 0 {
		return pathways, nil
	}

	corpus, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, edge := range edges {
		g.Go(func() error {
			scores, err := s.matcher.Match(gCtx, corpus, courses.MatchRequest{
				TargetTitle:   edge.TargetTitle,
				MissingSkills: edge.MissingSkills,
				OverlapSkills: edge.OverlapSkills,
				K:             k,
			})
			if err != nil {
				return fmt.Errorf("failed to match courses for %q: %w", edge.TargetTitle, err)
			}
			pathways[i] = types.Pathway{Rank: i + 1, Transition: edge, Courses: scores}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pathways, nil
}

func (s *Service) topN(opts Options) int {
	if opts.TopN > 0 {
		return opts.TopN
	}
	return s.cfg.TopN
}

func (s *Service) coursesPerPathway(opts Options) int {
	if opts.CoursesPerPathway > 0 {
		return opts.CoursesPerPathway
	}
	return s.cfg.CoursesPerPathway
}

func jobTitles(jobs []types.JobRecord) []string {
	out := make([]string, len(jobs))
	for i := range jobs {
		out[i] = jobs[i].Title
	}
	return out
}
