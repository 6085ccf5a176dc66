package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"Developer, back-end",
	"Developer, front-end",
	"Data scientist",
	"Data engineer",
	"Data scientist",
}

func TestResolve(t *testing.T) {
	r := NewResolver(corpus, nil, 0)

	tests := []struct {
		name  string
		input string
		title string
		kind  MatchKind
	}{
		{name: "corpus title ignores case", input: "data SCIENTIST", title: "Data scientist", kind: MatchCorpus},
		{name: "exact synonym", input: "  Backend   Dev ", title: "Developer, back-end", kind: MatchSynonym},
		{name: "synonym inside input", input: "Senior Backend Developer", title: "Developer, back-end", kind: MatchPartial},
		{name: "longest synonym wins", input: "lead financial analyst", title: "Financial analyst or engineer", kind: MatchPartial},
		{name: "input inside synonym", input: "machine learning", title: "AI/ML engineer", kind: MatchPartial},
		{name: "fuzzy token sort", input: "back end Developer", title: "Developer, back-end", kind: MatchFuzzy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := r.Resolve(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.title, res.Title)
			assert.Equal(t, tt.kind, res.Kind)
		})
	}
}

func TestResolve_ShortSynonymsNeedWholeWords(t *testing.T) {
	r := NewResolver(nil, nil, 0)

	_, ok := r.Resolve("Dean")
	assert.False(t, ok, "\"de\" must not match inside another word")

	res, ok := r.Resolve("ex-DE")
	require.True(t, ok)
	assert.Equal(t, "Data engineer", res.Title)
}

func TestResolve_NoMatch(t *testing.T) {
	r := NewResolver(corpus, nil, 0)

	res, ok := r.Resolve("Astronaut")
	assert.False(t, ok)
	assert.Equal(t, MatchNone, res.Kind)

	_, ok = r.Resolve("   ")
	assert.False(t, ok)
}

func TestResolve_SingleWordDoesNotMatchInsideSynonyms(t *testing.T) {
	r := NewResolver([]string{"AI/ML engineer", "Developer, AI apps or physical AI"}, nil, 0)

	for _, input := range []string{"Engineer", "Developer"} {
		res, ok := r.Resolve(input)
		assert.False(t, ok, input)
		assert.Equal(t, MatchNone, res.Kind, input)
	}
}

func TestResolve_CustomSynonymsAndThreshold(t *testing.T) {
	r := NewResolver([]string{"Site reliability engineer"}, map[string]string{"SRE": "Site reliability engineer"}, 99)

	res, ok := r.Resolve("sre")
	require.True(t, ok)
	assert.Equal(t, MatchSynonym, res.Kind)

	_, ok = r.Resolve("reliability engineer site lead")
	assert.False(t, ok)
}

func TestCanonicalize(t *testing.T) {
	r := NewResolver(corpus, nil, 0)
	assert.Equal(t, "Data engineer", r.Canonicalize("data engineer"))
	assert.Equal(t, "Astronaut", r.Canonicalize("  Astronaut "))
}

func TestDefaultSynonyms_IsACopy(t *testing.T) {
	s := DefaultSynonyms()
	s["backend dev"] = "changed"
	assert.Equal(t, "Developer, back-end", DefaultSynonyms()["backend dev"])
}

func TestTokenSortRatio(t *testing.T) {
	assert.Equal(t, 100.0, TokenSortRatio("Engineer Data", "data engineer"))
	assert.Equal(t, 100.0, TokenSortRatio("", ""))
	assert.InDelta(t, 72.73, TokenSortRatio("data sci", "Data scientist"), 0.01)
	assert.Equal(t, 0.0, TokenSortRatio("abc", "xyz"))
	assert.Less(t, TokenSortRatio("Astronaut", "Data scientist"), float64(DefaultThreshold))
}
