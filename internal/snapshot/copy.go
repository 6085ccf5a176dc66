package snapshot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/career-pathways/internal/types"
)

// Source is a live store that can be copied into a snapshot.
type Source interface {
	ListProfiles(ctx context.Context) ([]types.RawProfile, error)
	ListJobs(ctx context.Context) ([]types.RawJob, error)
	ListCourses(ctx context.Context) ([]types.CourseRecord, error)
}

// CopyReport counts the rows written to a snapshot.
type CopyReport struct {
	Profiles int `json:"profiles"`
	Jobs     int `json:"jobs"`
	Courses  int `json:"courses"`
	// Embedded counts courses that carried an embedding.
	Embedded int `json:"embedded"`
}

// Copy reads every corpus from src and replaces dst's contents with them.
func Copy(ctx context.Context, src Source, dst *Store, logger zerolog.Logger) (*CopyReport, error) {
	profiles, err := src.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	jobs, err := src.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	courses, err := src.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read courses: %w", err)
	}

	if err := dst.Replace(ctx, &Data{Profiles: profiles, Jobs: jobs, Courses: courses}); err != nil {
		return nil, err
	}

	report := &CopyReport{Profiles: len(profiles), Jobs: len(jobs), Courses: len(courses)}
	for i := range courses {
		if len(courses[i].Embedding) > 0 {
			report.Embedded++
		}
	}
	logger.Info().
		Str("component", "snapshot").
		Int("profiles", report.Profiles).
		Int("jobs", report.Jobs).
		Int("courses", report.Courses).
		Int("embedded", report.Embedded).
		Msg("snapshot written")
	return report, nil
}
