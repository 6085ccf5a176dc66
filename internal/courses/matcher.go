package courses

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-pathways/internal/embedding"
	"github.com/jonathan/career-pathways/internal/metrics"
	"github.com/jonathan/career-pathways/internal/skills"
	"github.com/jonathan/career-pathways/internal/types"
)

const minCoursesPerWorker = 128

// EncoderSource hands out the shared query encoder.
type EncoderSource interface {
	Get(ctx context.Context) (embedding.Encoder, error)
}

// MatchRequest describes the skill gap to find courses for.
type MatchRequest struct {
	TargetTitle string `json:"target_title" validate:"required"`
	// MissingSkills are the skills the courses should teach.
	MissingSkills []string `json:"missing_skills"`
	// OverlapSkills are skills the user already has; courses mentioning any
	// of them are not recommended.
	OverlapSkills []string `json:"overlap_skills"`
	// K caps the result; the matcher's default applies when <= 0.
	K int `json:"k,omitempty" validate:"gte=0"`
}

// Matcher ranks course corpora for skill gaps.
type Matcher struct {
	encoders EncoderSource
	opts     Options
	logger   zerolog.Logger
}

// NewMatcher creates a matcher that encodes queries with the encoder from
// encoders.
func NewMatcher(encoders EncoderSource, opts Options, logger zerolog.Logger) (*Matcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Matcher{
		encoders: encoders,
		opts:     opts.withDefaults(),
		logger:   logger.With().Str("component", "course_matcher").Logger(),
	}, nil
}

// QueryText builds the text embedded for a request: the target title followed
// by at most limit missing skills.
func QueryText(title string, missing []string, limit int) string {
	if len(missing) > limit {
		missing = missing[:limit]
	}
	if len(missing) == 0 {
		return title
	}
	return fmt.Sprintf("%s: %s", title, strings.Join(missing, ", "))
}

// candidate carries a course through scoring.
type candidate struct {
	score  types.CourseScore
	usable bool
}

// Match returns the top courses for req, best first. Courses mentioning an
// overlap skill are dropped, duplicates collapse to their first occurrence,
// and courses without a usable embedding are dropped unless KeepUnembedded is
// set. An empty candidate set yields an empty result. Only encoder failures
// are returned as errors.
func (m *Matcher) Match(ctx context.Context, corpus []types.CourseRecord, req MatchRequest) ([]types.CourseScore, error) {
	start := time.Now()
	defer func() { metrics.CourseMatchDuration.Observe(time.Since(start).Seconds()) }()

	missing := skills.NormalizeStrings(req.MissingSkills)

	pool := excludeOverlap(corpus, req.OverlapSkills)
	metrics.RecordCourseStage("overlap_excluded", len(corpus)-len(pool))
	deduped := dedupe(pool)
	metrics.RecordCourseStage("duplicate", len(pool)-len(deduped))

	if len(deduped) == 0 {
		return []types.CourseScore{}, nil
	}

	encoder, err := m.encoders.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize encoder: %w", err)
	}
	query, err := encoder.Encode(ctx, QueryText(req.TargetTitle, missing, m.opts.QuerySkillLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to encode course query: %w", err)
	}

	candidates, err := m.score(ctx, deduped, query, missing)
	if err != nil {
		return nil, err
	}

	scored := make([]types.CourseScore, 0, len(candidates))
	for _, c := range candidates {
		if c.usable {
			scored = append(scored, c.score)
		}
	}
	metrics.RecordCourseStage("unembedded", len(candidates)-len(scored))
	metrics.RecordCourseStage("scored", len(scored))

	blend(scored, m.opts.Weights)
	SortScores(scored)

	k := req.K
	if k <= 0 {
		k = m.opts.DefaultK
	}
	if len(scored) > k {
		scored = scored[:k]
	}

	m.logger.Debug().
		Str("target_title", req.TargetTitle).
		Int("corpus", len(corpus)).
		Int("candidates", len(deduped)).
		Int("returned", len(scored)).
		Dur("elapsed", time.Since(start)).
		Msg("matched courses")

	return scored, nil
}

// score computes the raw semantic, lexical and coverage signals per course.
func (m *Matcher) score(ctx context.Context, courses []types.CourseRecord, query []float32, missing []string) ([]candidate, error) {
	out := make([]candidate, len(courses))
	scoreRange := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = scoreCourse(&courses[i], query, missing, m.opts.KeepUnembedded)
		}
	}

	workers := m.opts.Workers
	if workers <= 1 || len(courses) < 2*minCoursesPerWorker {
		scoreRange(0, len(courses))
		return out, nil
	}
	workers = min(workers, len(courses)/minCoursesPerWorker)

	g, gCtx := errgroup.WithContext(ctx)
	chunk := (len(courses) + workers - 1) / workers
	for lo := 0; lo < len(courses); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(courses))
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			scoreRange(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to score courses: %w", err)
	}
	return out, nil
}

func scoreCourse(course *types.CourseRecord, query []float32, missing []string, keepUnembedded bool) candidate {
	similarity, ok := embedding.CosineSimilarity(query, course.Embedding)
	if !ok {
		if !keepUnembedded {
			return candidate{}
		}
		similarity = 0
	}

	hits := lexicalHits(searchText(course), missing)
	coverage := 0.0
	if len(missing) > 0 {
		coverage = float64(len(hits)) / float64(len(missing))
	}

	return candidate{
		usable: true,
		score: types.CourseScore{
			Course:        *course,
			Similarity:    similarity,
			LexicalScore:  float64(len(hits)),
			CoverageScore: coverage,
			MatchedSkills: hits,
		},
	}
}

// blend min-max normalizes each signal across scores and writes the weighted
// sum into BlendedScore. A signal with zero range normalizes to 0.
func blend(scores []types.CourseScore, w BlendWeights) {
	semantic := minMax(scores, func(s *types.CourseScore) float64 { return s.Similarity })
	lexical := minMax(scores, func(s *types.CourseScore) float64 { return s.LexicalScore })
	coverage := minMax(scores, func(s *types.CourseScore) float64 { return s.CoverageScore })

	for i := range scores {
		scores[i].BlendedScore = w.Semantic*semantic[i] + w.Lexical*lexical[i] + w.Coverage*coverage[i]
	}
}

func minMax(scores []types.CourseScore, value func(*types.CourseScore) float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	lo, hi := value(&scores[0]), value(&scores[0])
	for i := range scores {
		v := value(&scores[i])
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i := range scores {
		out[i] = (value(&scores[i]) - lo) / span
	}
	return out
}

// SortScores orders scores by descending blended, semantic, lexical and
// coverage scores, then ascending title and ID.
func SortScores(scores []types.CourseScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		a, b := &scores[i], &scores[j]
		if a.BlendedScore != b.BlendedScore {
			return a.BlendedScore > b.BlendedScore
		}
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.LexicalScore != b.LexicalScore {
			return a.LexicalScore > b.LexicalScore
		}
		if a.CoverageScore != b.CoverageScore {
			return a.CoverageScore > b.CoverageScore
		}
		if a.Course.Title != b.Course.Title {
			return a.Course.Title < b.Course.Title
		}
		return a.Course.ID < b.Course.ID
	})
}
