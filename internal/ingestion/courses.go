package ingestion

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-pathways/internal/embedding"
	"github.com/jonathan/career-pathways/internal/types"
)

// CourseStore lists courses and persists their embeddings.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]types.CourseRecord, error)
	UpsertCourseEmbedding(ctx context.Context, courseID, model string, vec []float32) error
}

// PendingLister is implemented by stores that select the courses needing an
// embedding themselves. EmbedCourses prefers it unless a forced run is asked.
type PendingLister interface {
	ListCoursesNeedingEmbedding(ctx context.Context, model string, dims int) ([]types.CourseRecord, error)
}

// EncoderSource hands out the shared encoder.
type EncoderSource interface {
	Get(ctx context.Context) (embedding.Encoder, error)
}

// EmbeddingText is the text embedded for a course: its title followed by its
// plain-text description.
func EmbeddingText(course *types.CourseRecord) string {
	return strings.TrimSpace(course.Title + " " + CourseDescription(course.Description))
}

// NeedsEmbedding reports whether a course lacks an embedding of the given
// width.
func NeedsEmbedding(course *types.CourseRecord, dims int) bool {
	return len(course.Embedding) == 0 || len(course.Embedding) != dims
}

// EmbedOptions control an embedding run.
type EmbedOptions struct {
	// Force re-embeds every course, not only missing or mismatched ones.
	Force       bool
	Concurrency int
	// Limit caps the number of courses embedded; 0 means no cap.
	Limit int
}

// EmbedReport summarizes an embedding run.
type EmbedReport struct {
	Encoder  string `json:"encoder"`
	Total    int    `json:"total"`
	Skipped  int    `json:"skipped"`
	Embedded int    `json:"embedded"`
	Failed   int    `json:"failed"`
}

// EmbedCourses computes and stores embeddings for courses that need them.
// A course whose encoding or upsert fails is logged and counted; the run
// continues. Context cancellation aborts the run.
func EmbedCourses(ctx context.Context, store CourseStore, encoders EncoderSource, opts EmbedOptions, logger zerolog.Logger) (*EmbedReport, error) {
	logger = logger.With().Str("component", "course_embedder").Logger()

	encoder, err := encoders.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize encoder: %w", err)
	}

	pending, total, err := pendingCourses(ctx, store, encoder, opts.Force)
	if err != nil {
		return nil, err
	}

	report := &EmbedReport{Encoder: encoder.Name(), Total: total}
	if opts.Limit > 0 && len(pending) > opts.Limit {
		pending = pending[:opts.Limit]
	}
	report.Skipped = total - len(pending)

	var embedded, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Concurrency, 1))
	for _, course := range pending {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			vec, err := encoder.Encode(gCtx, EmbeddingText(&course))
			if err == nil {
				err = store.UpsertCourseEmbedding(gCtx, course.ID, encoder.Name(), vec)
			}
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				failed.Add(1)
				logger.Warn().Err(err).Str("course_id", course.ID).Msg("failed to embed course")
				return nil
			}
			embedded.Add(1)
			return nil
		})
	}
	waitErr := g.Wait()

	report.Embedded = int(embedded.Load())
	report.Failed = int(failed.Load())
	if waitErr != nil {
		return report, fmt.Errorf("embedding run aborted: %w", waitErr)
	}

	logger.Info().
		Str("encoder", report.Encoder).
		Int("total", report.Total).
		Int("embedded", report.Embedded).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("course embedding complete")
	return report, nil
}

// pendingCourses returns the courses to embed and the size of the corpus they
// were selected from.
func pendingCourses(ctx context.Context, store CourseStore, encoder embedding.Encoder, force bool) ([]types.CourseRecord, int, error) {
	if lister, ok := store.(PendingLister); ok && !force {
		pending, err := lister.ListCoursesNeedingEmbedding(ctx, encoder.Name(), encoder.Dimensions())
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list courses needing embeddings: %w", err)
		}
		return pending, len(pending), nil
	}

	courses, err := store.ListCourses(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	pending := make([]types.CourseRecord, 0, len(courses))
	for i := range courses {
		if force || NeedsEmbedding(&courses[i], encoder.Dimensions()) {
			pending = append(pending, courses[i])
		}
	}
	return pending, len(courses), nil
}
