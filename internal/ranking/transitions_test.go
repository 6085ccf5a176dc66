package ranking

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-pathways/internal/types"
)

func TestRankTransitions_ExcludesCurrentTitleAndZeroOverlap(t *testing.T) {
	profile := analyst()
	jobs := []types.JobRecord{
		{Title: "data analyst", Skills: types.SkillFields{Language: []string{"python", "sql"}}},
		{Title: "Chef", Skills: types.SkillFields{Platform: []string{"oven"}}},
		dataEngineer(),
	}

	edges, err := RankTransitions(context.Background(), profile, jobs, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, edges, 1)

	edge := edges[0]
	assert.Equal(t, "Data Engineer", edge.TargetTitle)
	assert.Equal(t, []string{"docker", "aws"}, edge.MissingSkills)
	assert.Equal(t, []string{"python"}, edge.OverlapSkills)
	assert.Equal(t, 2, edge.MissingCount)
	assert.Equal(t, 1, edge.OverlapCount)
	require.NotNil(t, edge.AnnualComp)
	assert.Equal(t, 95000.0, *edge.AnnualComp)
}

func TestRankTransitions_TieBreakOrdering(t *testing.T) {
	profile := &types.UserProfile{JobTitle: "Developer", Skills: []string{"go", "sql"}}

	// All four jobs share one skill; weights differ only by skill component.
	jobs := []types.JobRecord{
		{Title: "Zeta", Skills: types.SkillFields{Language: []string{"go", "rust"}}},
		{Title: "Alpha", Skills: types.SkillFields{Language: []string{"go", "rust"}}},
		{Title: "Beta", Skills: types.SkillFields{Language: []string{"go"}}},
		{Title: "Gamma", Skills: types.SkillFields{Language: []string{"go", "rust", "c"}}},
	}

	edges, err := RankTransitions(context.Background(), profile, jobs, DefaultOptions())
	require.NoError(t, err)

	titles := make([]string, len(edges))
	for i, e := range edges {
		titles[i] = e.TargetTitle
	}
	assert.Equal(t, []string{"Beta", "Alpha", "Zeta", "Gamma"}, titles)
}

func TestSortEdges_MissingThenOverlapThenTitle(t *testing.T) {
	edges := []types.TransitionEdge{
		{TargetTitle: "C", Weight: 1, MissingCount: 1, OverlapCount: 1},
		{TargetTitle: "B", Weight: 1, MissingCount: 1, OverlapCount: 3},
		{TargetTitle: "A", Weight: 1, MissingCount: 2, OverlapCount: 5},
		{TargetTitle: "D", Weight: 0.5, MissingCount: 9, OverlapCount: 0},
		{TargetTitle: "A", Weight: 1, MissingCount: 1, OverlapCount: 1},
	}

	SortEdges(edges)

	got := make([]string, len(edges))
	for i, e := range edges {
		got[i] = e.TargetTitle
	}
	assert.Equal(t, []string{"D", "B", "A", "C", "A"}, got)
}

func TestRankTransitions_Limit(t *testing.T) {
	profile := analyst()
	jobs := []types.JobRecord{
		dataEngineer(),
		{Title: "BI Developer", Skills: types.SkillFields{Database: []string{"sql"}}},
		{Title: "ML Engineer", Skills: types.SkillFields{Language: []string{"python"}, Framework: []string{"pytorch"}}},
	}

	opts := DefaultOptions()
	opts.Limit = 2
	edges, err := RankTransitions(context.Background(), profile, jobs, opts)
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestRankTransitions_RejectsInvalidWeights(t *testing.T) {
	opts := DefaultOptions()
	opts.Weights = Weights{}
	_, err := RankTransitions(context.Background(), analyst(), []types.JobRecord{dataEngineer()}, opts)
	assert.Error(t, err)
}

func TestRankTransitions_ParallelMatchesSequential(t *testing.T) {
	profile := analyst()
	languages := []string{"python", "go", "rust", "java", "sql"}

	jobs := make([]types.JobRecord, 0, 2000)
	for i := 0; i < 2000; i++ {
		jobs = append(jobs, types.JobRecord{
			Title:          fmt.Sprintf("Job %04d", i),
			AnnualComp:     ptr(float64(40000 + (i%50)*1000)),
			WorkExperience: ptr(float64(i % 9)),
			Skills: types.SkillFields{
				Language: []string{languages[i%len(languages)], languages[(i+1)%len(languages)]},
			},
		})
	}

	sequential, err := RankTransitions(context.Background(), profile, jobs, DefaultOptions())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Workers = 4
	parallel, err := RankTransitions(context.Background(), profile, jobs, opts)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestRankTransitions_CancelledContext(t *testing.T) {
	profile := analyst()
	jobs := make([]types.JobRecord, 1024)
	for i := range jobs {
		jobs[i] = dataEngineer()
		jobs[i].Title = fmt.Sprintf("DE %d", i)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.Workers = 2
	_, err := RankTransitions(ctx, profile, jobs, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSameTitle(t *testing.T) {
	assert.True(t, SameTitle("Data Analyst", "  data ANALYST "))
	assert.False(t, SameTitle("Data Analyst", "Data Engineer"))
}
