package skills

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/jonathan/career-pathways/internal/types"
)

// decoder is one attempt in the normalization chain. ok=false passes the
// input on to the next attempt.
type decoder func(text string) (tokens []string, ok bool)

// textDecoders is the ordered fallback chain for string-shaped skills.
// The first decoder that succeeds wins.
var textDecoders = []decoder{
	decodeJSONSequence,
	decodeLiteralSequence,
	splitDelimited,
}

// Normalize converts a skills field of unknown shape into a canonical set.
// It never fails: an unusable value yields an empty set.
func Normalize(raw types.RawSkills) *Set {
	switch raw.Kind {
	case types.SkillsList:
		return NewSet(raw.List...)
	case types.SkillsText:
		for _, decode := range textDecoders {
			if tokens, ok := decode(raw.Text); ok {
				return NewSet(tokens...)
			}
		}
		return NewSet()
	default:
		return NewSet()
	}
}

// NormalizeStrings is Normalize for callers that already hold a sequence.
func NormalizeStrings(list []string) []string {
	return NewSet(list...).Items()
}

// FromFields unions the four skill fields of a job, in language, database,
// platform, framework order.
func FromFields(fields types.SkillFields) *Set {
	out := NewSet(fields.Language...)
	for _, group := range [][]string{fields.Database, fields.Platform, fields.Framework} {
		for _, token := range group {
			out.Add(token)
		}
	}
	return out
}

// NormalizeJob resolves every skill field of a raw corpus row.
func NormalizeJob(raw types.RawJob) types.JobRecord {
	return types.JobRecord{
		Title:          strings.TrimSpace(raw.Title),
		AnnualComp:     raw.AnnualComp,
		WorkExperience: raw.WorkExperience,
		Skills: types.SkillFields{
			Language:  Normalize(raw.Language).Items(),
			Database:  Normalize(raw.Database).Items(),
			Platform:  Normalize(raw.Platform).Items(),
			Framework: Normalize(raw.Framework).Items(),
		},
	}
}

// NormalizeJobs resolves a whole raw corpus, preserving order.
func NormalizeJobs(raw []types.RawJob) []types.JobRecord {
	jobs := make([]types.JobRecord, 0, len(raw))
	for _, r := range raw {
		jobs = append(jobs, NormalizeJob(r))
	}
	return jobs
}

// decodeJSONSequence strictly decodes a JSON array. Non-string scalars are
// kept in their textual form; nulls are dropped.
func decodeJSONSequence(text string) ([]string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var items []any
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, false
	}
	tokens := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case string:
			tokens = append(tokens, v)
		case float64, bool:
			raw, _ := json.Marshal(v)
			tokens = append(tokens, string(raw))
		default:
			return nil, false
		}
	}
	return tokens, true
}

// splitDelimited treats the text as comma-delimited free text.
func splitDelimited(text string) ([]string, bool) {
	parts := strings.Split(text, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	return tokens, true
}
