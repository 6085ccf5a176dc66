package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddCanonicalizes(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Add(" Docker"))
	assert.False(t, s.Add("docker"))
	assert.False(t, s.Add("  "))
	assert.True(t, s.Has("DOCKER"))
	assert.Equal(t, 1, s.Len())
}

func TestSet_ItemsIsACopy(t *testing.T) {
	s := NewSet("go")
	items := s.Items()
	items[0] = "mutated"
	assert.Equal(t, []string{"go"}, s.Items())
}

func TestSet_Operations(t *testing.T) {
	user := NewSet("python", "sql")
	job := NewSet("python", "docker", "aws")

	assert.Equal(t, []string{"python"}, job.Intersect(user).Items())
	assert.Equal(t, []string{"docker", "aws"}, job.Difference(user).Items())
	assert.Equal(t, []string{"python", "sql", "docker", "aws"}, user.Union(job).Items())
}

func TestJaccard(t *testing.T) {
	user := NewSet("python", "sql")
	job := NewSet("python", "docker", "aws")

	assert.InDelta(t, 0.25, Jaccard(user, job), 1e-12)
	assert.Equal(t, Jaccard(user, job), Jaccard(job, user), "jaccard must be symmetric")
	assert.Equal(t, 1.0, Jaccard(user, user))
	assert.Equal(t, 0.0, Jaccard(NewSet(), NewSet()))
	assert.Equal(t, 0.0, Jaccard(user, NewSet("rust")))
}

func TestJaccard_SymmetricAcrossPairs(t *testing.T) {
	sets := []*Set{
		NewSet(),
		NewSet("go"),
		NewSet("go", "rust"),
		NewSet("rust", "python", "sql"),
		NewSet("sql"),
	}
	for _, a := range sets {
		for _, b := range sets {
			assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
		}
	}
}
