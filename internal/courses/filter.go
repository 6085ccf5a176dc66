package courses

import (
	"strings"

	"github.com/jonathan/career-pathways/internal/skills"
	"github.com/jonathan/career-pathways/internal/types"
)

// searchText is the lowercased "title description" text that substring
// checks run against.
func searchText(c *types.CourseRecord) string {
	return skills.Canonical(c.Title + " " + c.Description)
}

// excludeOverlap drops courses whose text mentions any skill the user already
// has. Empty skills never match.
func excludeOverlap(courses []types.CourseRecord, overlap []string) []types.CourseRecord {
	needles := skills.NormalizeStrings(overlap)
	if len(needles) == 0 {
		return courses
	}

	kept := make([]types.CourseRecord, 0, len(courses))
	for i := range courses {
		text := searchText(&courses[i])
		if !containsAny(text, needles) {
			kept = append(kept, courses[i])
		}
	}
	return kept
}

type dedupKey struct {
	title       string
	description string
}

// dedupe keeps the first course for each (lowercase title, lowercase
// description) pair.
func dedupe(courses []types.CourseRecord) []types.CourseRecord {
	seen := make(map[dedupKey]struct{}, len(courses))
	kept := make([]types.CourseRecord, 0, len(courses))
	for _, c := range courses {
		key := dedupKey{strings.ToLower(c.Title), strings.ToLower(c.Description)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, c)
	}
	return kept
}

// lexicalHits returns the missing skills that occur in text, in input order.
func lexicalHits(text string, missing []string) []string {
	var hits []string
	for _, skill := range missing {
		if strings.Contains(text, skill) {
			hits = append(hits, skill)
		}
	}
	return hits
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
