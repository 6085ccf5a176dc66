package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pathways/internal/types"
)

func ptr(v float64) *float64 { return &v }

type memorySource struct {
	data Data
}

func (m *memorySource) ListProfiles(context.Context) ([]types.RawProfile, error) {
	return m.data.Profiles, nil
}

func (m *memorySource) ListJobs(context.Context) ([]types.RawJob, error) {
	return m.data.Jobs, nil
}

func (m *memorySource) ListCourses(context.Context) ([]types.CourseRecord, error) {
	return m.data.Courses, nil
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func fixture() *memorySource {
	return &memorySource{data: Data{
		Profiles: []types.RawProfile{{
			UserID:          uuid.MustParse("0b6f1f59-8f53-4a8e-9b44-6a1f2f0c9d11"),
			JobTitle:        "Data analyst",
			Skills:          types.SkillsFromText("['Python', 'SQL']"),
			Salary:          ptr(5000),
			SalaryPeriod:    types.SalaryMonthly,
			Currency:        "SGD",
			YearsExperience: nil,
		}},
		Jobs: []types.RawJob{
			{Title: "Data engineer", AnnualComp: ptr(95000), Language: types.SkillsFromList("Python"), Platform: types.SkillsFromText("Docker, AWS")},
			{Title: "Chef"},
		},
		Courses: []types.CourseRecord{
			{ID: "c2", Title: "SQL", Embedding: []float32{0.5, -0.25}},
			{ID: "c1", Title: "Docker", Provider: "Coursera", URL: "https://example.com/docker"},
		},
	}}
}

func TestCopy_PreservesCorpora(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	src := fixture()

	report, err := Copy(ctx, src, store, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, &CopyReport{Profiles: 1, Jobs: 2, Courses: 2, Embedded: 1}, report)

	profile, err := store.GetProfile(ctx, src.data.Profiles[0].UserID)
	require.NoError(t, err)
	assert.Equal(t, &src.data.Profiles[0], profile)

	jobs, err := store.ListJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, src.data.Jobs, jobs, "jobs keep insertion order and skill shapes")

	courses, err := store.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "c1", courses[0].ID)
	assert.Nil(t, courses[0].Embedding)
	assert.Equal(t, []float32{0.5, -0.25}, courses[1].Embedding)

	created, err := store.CreatedAt(ctx)
	require.NoError(t, err)
	assert.False(t, created.IsZero())
}

func TestCopy_ReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := Copy(ctx, fixture(), store, zerolog.Nop())
	require.NoError(t, err)
	_, err = Copy(ctx, &memorySource{data: Data{Jobs: []types.RawJob{{Title: "Only"}}}}, store, zerolog.Nop())
	require.NoError(t, err)

	jobs, err := store.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Only", jobs[0].Title)

	profiles, err := store.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestGetProfile_Missing(t *testing.T) {
	profile, err := openTestStore(t).GetProfile(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestCourseEmbeddings(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	_, err := Copy(ctx, fixture(), store, zerolog.Nop())
	require.NoError(t, err)

	pending, err := store.ListCoursesNeedingEmbedding(ctx, "hashing:2", 2)
	require.NoError(t, err)
	assert.Len(t, pending, 2, "c2 was embedded by a different model")

	require.NoError(t, store.UpsertCourseEmbedding(ctx, "c1", "hashing:2", []float32{1, 0}))
	require.NoError(t, store.UpsertCourseEmbedding(ctx, "c2", "hashing:2", []float32{0, 1}))

	pending, err = store.ListCoursesNeedingEmbedding(ctx, "hashing:2", 2)
	require.NoError(t, err)
	assert.Empty(t, pending)

	pending, err = store.ListCoursesNeedingEmbedding(ctx, "hashing:2", 3)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	assert.ErrorContains(t, store.UpsertCourseEmbedding(ctx, "missing", "m", []float32{1}), "not found")
}

func TestVectorCodec(t *testing.T) {
	vec := []float32{1.5, -2, 0, 3.25}
	got, err := decodeVector(encodeVector(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, got)

	_, err = decodeVector([]byte{1, 2, 3})
	assert.Error(t, err)
	assert.Nil(t, vectorArg(nil))
}
