package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pathways/internal/embedding"
	"github.com/jonathan/career-pathways/internal/snapshot"
	"github.com/jonathan/career-pathways/internal/types"
)

var analystID = uuid.MustParse("3d5f2c1a-9b8e-4c7d-a6f5-e4d3c2b1a098")

func ptr(v float64) *float64 { return &v }

// isolateConfig pins the configuration to offline, deterministic defaults
// regardless of the developer's environment.
func isolateConfig(t *testing.T) {
	t.Helper()
	configPath = ""
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SNAPSHOT_PATH", "")
	t.Setenv("EMBEDDING_PROVIDER", "hashing")
	t.Setenv("EMBEDDING_DIMENSIONS", "384")
	t.Setenv("LOG_LEVEL", "error")
	t.Chdir(t.TempDir())
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	return cmd, &out
}

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	content, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func testJobs() []map[string]any {
	return []map[string]any{
		{"title": "Data engineer", "annual_comp": 95000, "work_experience": 4, "language": "Python, Scala", "platform": []string{"Docker", "AWS"}},
		{"title": "Data analyst", "annual_comp": 70000, "language": []string{"Python", "SQL"}},
		{"title": "BI developer", "annual_comp": 80000, "database": []string{"SQL", "Snowflake"}},
		{"title": "Chef", "annual_comp": 40000, "platform": []string{"Oven"}},
	}
}

func testCourses(t *testing.T, embedded bool) []types.CourseRecord {
	t.Helper()
	list := []types.CourseRecord{
		{ID: "c1", Title: "Docker for Data Teams", URL: "https://example.com/c1", Description: "Ship containers with docker on aws"},
		{ID: "c2", Title: "SQL Basics", URL: "https://example.com/c2", Description: "Write sql queries"},
		{ID: "c3", Title: "Scala Fundamentals", URL: "https://example.com/c3", Description: "Functional programming in scala"},
	}
	if !embedded {
		return list
	}
	enc := embedding.NewHashingEncoder(embedding.DefaultHashingDimensions)
	for i := range list {
		vec, err := enc.Encode(context.Background(), list[i].Title+" "+list[i].Description)
		require.NoError(t, err)
		list[i].Embedding = vec
	}
	return list
}

// newTestSnapshot writes a snapshot with one complete analyst profile.
func newTestSnapshot(t *testing.T, embedded bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.db")
	store, err := snapshot.Open(path)
	require.NoError(t, err)
	defer store.Close()

	err = store.Replace(context.Background(), &snapshot.Data{
		Profiles: []types.RawProfile{{
			UserID:          analystID,
			JobTitle:        "Data analyst",
			Skills:          types.SkillsFromList("Python", "SQL"),
			Salary:          ptr(60000),
			SalaryPeriod:    types.SalaryAnnual,
			YearsExperience: ptr(3),
		}},
		Jobs: []types.RawJob{
			{
				Title:          "Data engineer",
				AnnualComp:     ptr(95000),
				WorkExperience: ptr(4),
				Language:       types.SkillsFromList("Python", "Scala"),
				Platform:       types.SkillsFromList("Docker", "AWS"),
			},
			{Title: "Data analyst", AnnualComp: ptr(70000), Language: types.SkillsFromList("Python", "SQL")},
		},
		Courses: testCourses(t, embedded),
	})
	require.NoError(t, err)
	return path
}
