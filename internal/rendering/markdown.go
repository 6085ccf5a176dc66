package rendering

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonathan/career-pathways/internal/types"
)

// MaxSkillsPerPathway caps the skills listed under each pathway.
const MaxSkillsPerPathway = 5

// CourseSearchURL is the fallback link for a skill no matched course covers.
const CourseSearchURL = "https://www.coursera.org/search?query="

//go:embed templates/recommendation.md.tmpl
var defaultTemplate string

// ReportData is the data passed to a report template.
type ReportData struct {
	Status       types.RecommendationStatus
	Reason       string
	CurrentTitle string
	Pathways     []PathwaySection
}

// PathwaySection is one ranked pathway in a report.
type PathwaySection struct {
	Rank       int
	Title      string
	Salary     string
	Experience string
	Skills     []SkillLink
}

// SkillLink pairs a missing skill with the course recommended for it.
type SkillLink struct {
	Skill string
	Title string
	URL   string
}

var amounts = message.NewPrinter(language.English)

// RenderMarkdown renders rec with the built-in report template.
func RenderMarkdown(rec *types.Recommendation) (string, error) {
	tmpl, err := newTemplate(defaultTemplate)
	if err != nil {
		return "", err
	}
	return execute(tmpl, rec)
}

// RenderMarkdownFile renders rec with the template at templatePath.
func RenderMarkdownFile(rec *types.Recommendation, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return execute(tmpl, rec)
}

func execute(tmpl *template.Template, rec *types.Recommendation) (string, error) {
	if rec == nil {
		return "", &RenderError{Message: "recommendation is nil"}
	}
	var result strings.Builder
	if err := tmpl.Execute(&result, BuildReportData(rec)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a report template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return newTemplate(string(content))
}

func newTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("recommendation").Funcs(template.FuncMap{
		"md": EscapeMarkdown,
	}).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// BuildReportData flattens a recommendation into template data. Each of the
// first MaxSkillsPerPathway missing skills links to the highest ranked course
// that mentions it, or to a course search when none does.
func BuildReportData(rec *types.Recommendation) *ReportData {
	data := &ReportData{
		Status:       rec.Status,
		Reason:       rec.Reason,
		CurrentTitle: rec.CurrentTitle,
	}
	if data.CurrentTitle == "" && rec.Profile != nil {
		data.CurrentTitle = rec.Profile.JobTitle
	}

	for _, p := range rec.Pathways {
		edge := p.Transition
		section := PathwaySection{
			Rank:       p.Rank,
			Title:      edge.TargetTitle,
			Salary:     formatSalary(edge.AnnualComp),
			Experience: formatExperience(edge.WorkExperience),
		}
		missing := edge.MissingSkills
		if len(missing) > MaxSkillsPerPathway {
			missing = missing[:MaxSkillsPerPathway]
		}
		for _, skill := range missing {
			section.Skills = append(section.Skills, linkSkill(skill, p.Courses))
		}
		data.Pathways = append(data.Pathways, section)
	}
	return data
}

func linkSkill(skill string, courses []types.CourseScore) SkillLink {
	for i := range courses {
		for _, matched := range courses[i].MatchedSkills {
			if matched == skill {
				c := &courses[i].Course
				return SkillLink{Skill: skill, Title: c.Title, URL: c.URL}
			}
		}
	}
	return SkillLink{
		Skill: skill,
		Title: fmt.Sprintf("Learn %s - Search on Coursera", skill),
		URL:   SearchURL(skill),
	}
}

// SearchURL returns the course search link for skill.
func SearchURL(skill string) string {
	return CourseSearchURL + strings.ReplaceAll(url.QueryEscape(skill), "+", "%20")
}

func formatSalary(comp *float64) string {
	if comp == nil {
		return "N/A"
	}
	return amounts.Sprintf("$%.0f", *comp)
}

func formatExperience(years *float64) string {
	if years == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*years, 'f', -1, 64) + " years"
}
