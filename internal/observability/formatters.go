// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-pathways/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintProfile outputs the canonical profile used for ranking.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:       %s\n", profile.JobTitle))
	sb.WriteString(fmt.Sprintf("Salary:      %.0f\n", profile.AnnualSalary))
	sb.WriteString(fmt.Sprintf("Experience:  %g years\n", profile.YearsExperience))
	sb.WriteString(fmt.Sprintf("Skills:      %s", strings.Join(profile.Skills, ", ")))

	p.printBox("USER PROFILE", sb.String())
}

// PrintTransitions outputs the top ranked transitions with their skill gaps.
func (p *Printer) PrintTransitions(edges []types.TransitionEdge) {
	if len(edges) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total transitions ranked: %d\n\n", len(edges)))

	count := min(len(edges), maxItemsToShow)
	for i := 0; i < count; i++ {
		edge := edges[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, edge.TargetTitle))
		sb.WriteString(fmt.Sprintf("    Weight: %.3f  (missing %d, overlap %d)\n", edge.Weight, edge.MissingCount, edge.OverlapCount))
		if len(edge.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Learn: %s\n", truncate(strings.Join(edge.MissingSkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(edges) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more transitions", len(edges)-maxItemsToShow))
	}

	p.printBox("TOP TRANSITIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCourses outputs the top matched courses for one target job.
func (p *Printer) PrintCourses(targetTitle string, scores []types.CourseScore) {
	if len(scores) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Courses for %s: %d\n\n", targetTitle, len(scores)))

	count := min(len(scores), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := scores[i]
		sb.WriteString(fmt.Sprintf("• %s\n", s.Course.Title))
		sb.WriteString(fmt.Sprintf("  Score: %.2f (sem %.2f, lex %.0f, cov %.2f)\n",
			s.BlendedScore, s.Similarity, s.LexicalScore, s.CoverageScore))
		if len(s.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("  [%s]\n", truncate(strings.Join(s.MatchedSkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(scores) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more courses", len(scores)-maxItemsToShow))
	}

	p.printBox("MATCHED COURSES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendation outputs the profile, then each pathway's courses, or
// the missing profile fields when ranking was not possible.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendation(rec *types.Recommendation) {
	if rec == nil {
		return
	}
	if rec.Status == types.StatusCannotRank {
		var sb strings.Builder
		sb.WriteString("Profile is missing:\n\n")
		for _, field := range rec.MissingFields {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", field))
		}
		p.printBox("CANNOT RANK", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	p.PrintProfile(rec.Profile)
	if len(rec.Pathways) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO TRANSITIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	edges := make([]types.TransitionEdge, len(rec.Pathways))
	for i, pathway := range rec.Pathways {
		edges[i] = pathway.Transition
	}
	p.PrintTransitions(edges)
	for _, pathway := range rec.Pathways {
		p.PrintCourses(pathway.Transition.TargetTitle, pathway.Courses)
	}
}
