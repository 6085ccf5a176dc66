// Package recommend runs the end-to-end career recommendation pipeline: it
// loads a user's profile, ranks transitions to every job in the corpus and
// finds courses covering each recommended job's skill gap.
package recommend

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jonathan/career-pathways/internal/types"
)

// ErrProfileNotFound is returned when the user has no profile record.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileProvider loads user profiles. GetProfile returns nil, nil when the
// user has no profile.
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.RawProfile, error)
}

// JobProvider lists the jobs corpus.
type JobProvider interface {
	ListJobs(ctx context.Context) ([]types.RawJob, error)
}

// CourseProvider lists the course corpus with stored embeddings.
type CourseProvider interface {
	ListCourses(ctx context.Context) ([]types.CourseRecord, error)
}

// Store provides all three corpora.
type Store interface {
	ProfileProvider
	JobProvider
	CourseProvider
}

// MemoryStore is a Store over in-memory slices, used for file-based CLI runs
// and tests.
type MemoryStore struct {
	Profiles map[uuid.UUID]*types.RawProfile
	Jobs     []types.RawJob
	Courses  []types.CourseRecord
}

func (m *MemoryStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.RawProfile, error) {
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (m *MemoryStore) ListJobs(context.Context) ([]types.RawJob, error) {
	return m.Jobs, nil
}

func (m *MemoryStore) ListCourses(context.Context) ([]types.CourseRecord, error) {
	return m.Courses, nil
}
