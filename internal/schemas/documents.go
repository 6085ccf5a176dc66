package schemas

import (
	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/career-pathways/schemas"
)

// Schemas bundled with the binary.
const (
	ProfileSchema        = "profile.schema.json"
	JobsSchema           = "jobs.schema.json"
	CoursesSchema        = "courses.schema.json"
	TransitionsSchema    = "transitions.schema.json"
	CourseScoresSchema   = "course_scores.schema.json"
	RecommendationSchema = "recommendation.schema.json"
)

// ValidateDocument validates data against one of the bundled schemas.
func ValidateDocument(schemaName string, data []byte) error {
	schema, err := schemafiles.Files.ReadFile(schemaName)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema is not bundled",
			Cause:   err,
		}
	}

	return validate(schemaName, gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
}
