// Package titles maps free-form job titles onto the titles used by the jobs
// corpus.
package titles

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultThreshold is the minimum token-sort ratio for a fuzzy match.
const DefaultThreshold = 75

// MatchKind records how a title was resolved.
type MatchKind string

const (
	MatchNone    MatchKind = "none"
	MatchCorpus  MatchKind = "corpus"
	MatchSynonym MatchKind = "synonym"
	MatchPartial MatchKind = "partial"
	MatchFuzzy   MatchKind = "fuzzy"
)

// Resolution is the outcome of resolving one title.
type Resolution struct {
	Input string    `json:"input"`
	Title string    `json:"title"`
	Kind  MatchKind `json:"kind"`
	Score float64   `json:"score,omitempty"`
}

// Resolver canonicalizes job titles. It is safe for concurrent use.
type Resolver struct {
	synonyms  map[string]string
	partials  []partialSynonym
	corpus    []string
	byLower   map[string]string
	threshold float64
}

type partialSynonym struct {
	phrase  string
	pattern *regexp.Regexp
	title   string
}

// NewResolver builds a resolver over the distinct corpus titles. A nil
// synonyms map selects the built-in dictionary; threshold <= 0 selects
// DefaultThreshold.
func NewResolver(corpus []string, synonyms map[string]string, threshold float64) *Resolver {
	if synonyms == nil {
		synonyms = defaultSynonyms
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	r := &Resolver{
		synonyms:  make(map[string]string, len(synonyms)),
		byLower:   make(map[string]string, len(corpus)),
		threshold: threshold,
	}
	for phrase, title := range synonyms {
		phrase = normalizeInput(phrase)
		if phrase == "" {
			continue
		}
		r.synonyms[phrase] = title
		r.partials = append(r.partials, partialSynonym{
			phrase:  phrase,
			pattern: regexp.MustCompile(`(^|[^\pL\pN])` + regexp.QuoteMeta(phrase) + `($|[^\pL\pN])`),
			title:   title,
		})
	}
	// Longer phrases are more specific; ties break alphabetically.
	sort.Slice(r.partials, func(i, j int) bool {
		a, b := r.partials[i].phrase, r.partials[j].phrase
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})

	for _, title := range corpus {
		key := normalizeInput(title)
		if key == "" {
			continue
		}
		if _, dup := r.byLower[key]; dup {
			continue
		}
		r.byLower[key] = title
		r.corpus = append(r.corpus, title)
	}
	return r
}

// Resolve maps input onto a corpus title. It tries, in order: an exact
// corpus title, an exact synonym, a synonym phrase appearing as whole words
// in the input (or a multi-word input as whole words in a synonym phrase), and
// finally the corpus title with the best token-sort ratio at or above the
// threshold. ok is false when nothing matched.
func (r *Resolver) Resolve(input string) (res Resolution, ok bool) {
	res = Resolution{Input: input, Kind: MatchNone}
	cleaned := normalizeInput(input)
	if cleaned == "" {
		return res, false
	}

	if title, found := r.byLower[cleaned]; found {
		res.Title, res.Kind = title, MatchCorpus
		return res, true
	}
	if title, found := r.synonyms[cleaned]; found {
		res.Title, res.Kind = title, MatchSynonym
		return res, true
	}

	// A lone word such as "engineer" appears in too many phrases to pick one.
	var inputPattern *regexp.Regexp
	if strings.Contains(cleaned, " ") {
		inputPattern = regexp.MustCompile(`(^|[^\pL\pN])` + regexp.QuoteMeta(cleaned) + `($|[^\pL\pN])`)
	}
	for _, p := range r.partials {
		if p.pattern.MatchString(cleaned) || (inputPattern != nil && inputPattern.MatchString(p.phrase)) {
			res.Title, res.Kind = p.title, MatchPartial
			return res, true
		}
	}

	best, bestScore := "", -1.0
	for _, title := range r.corpus {
		score := TokenSortRatio(input, title)
		if score > bestScore {
			best, bestScore = title, score
		}
	}
	if best != "" && bestScore >= r.threshold {
		res.Title, res.Kind, res.Score = best, MatchFuzzy, bestScore
		return res, true
	}
	return res, false
}

// Canonicalize returns the resolved title, or the trimmed input when nothing
// matched.
func (r *Resolver) Canonicalize(input string) string {
	if res, ok := r.Resolve(input); ok {
		return res.Title
	}
	return strings.TrimSpace(input)
}

func normalizeInput(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
