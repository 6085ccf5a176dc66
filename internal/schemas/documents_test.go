package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		doc     string
		wantErr bool
	}{
		{
			name:   "profile with list skills",
			schema: ProfileSchema,
			doc:    `{"job_title": "Data analyst", "skills": ["Python", "SQL"], "salary": 5000, "salary_period": "monthly", "years_experience": 3}`,
		},
		{
			name:   "profile with encoded skills and null numerics",
			schema: ProfileSchema,
			doc:    `{"job_title": "Data analyst", "skills": "['Python']", "salary": null}`,
		},
		{
			name:    "profile with object skills",
			schema:  ProfileSchema,
			doc:     `{"job_title": "Data analyst", "skills": {"python": true}}`,
			wantErr: true,
		},
		{
			name:    "profile with unknown salary period",
			schema:  ProfileSchema,
			doc:     `{"job_title": "Dev", "skills": [], "salary_period": "weekly"}`,
			wantErr: true,
		},
		{
			name:   "jobs corpus",
			schema: JobsSchema,
			doc:    `[{"title": "Data engineer", "annual_comp": 95000, "language": "Python, Scala", "platform": ["Docker"]}, {"title": "Chef"}]`,
		},
		{
			name:    "job without title",
			schema:  JobsSchema,
			doc:     `[{"annual_comp": 1}]`,
			wantErr: true,
		},
		{
			name:   "courses",
			schema: CoursesSchema,
			doc:    `[{"id": "c1", "title": "Docker", "embedding": [0.1, 0.2]}]`,
		},
		{
			name:   "transitions",
			schema: TransitionsSchema,
			doc:    `[{"target_title": "Data engineer", "weight": 1.5, "missing_skills": ["aws"], "overlap_skills": ["python"], "missing_count": 1, "overlap_count": 1}]`,
		},
		{
			name:    "transition without overlap",
			schema:  TransitionsSchema,
			doc:     `[{"target_title": "Chef", "weight": 3, "missing_skills": ["oven"], "overlap_skills": [], "missing_count": 1, "overlap_count": 0}]`,
			wantErr: true,
		},
		{
			name:   "course scores",
			schema: CourseScoresSchema,
			doc:    `[{"course": {"id": "c1", "title": "Docker"}, "similarity": 0.4, "lexical_score": 1, "coverage_score": 0.5, "blended_score": 0.8}]`,
		},
		{
			name:    "cannot_rank recommendation needs a reason",
			schema:  RecommendationSchema,
			doc:     `{"user_id": "6f1c7c1e-4a9e-4a4f-9e55-1b2c3d4e5f60", "status": "cannot_rank", "pathways": []}`,
			wantErr: true,
		},
		{
			name:   "cannot_rank recommendation",
			schema: RecommendationSchema,
			doc:    `{"user_id": "6f1c7c1e-4a9e-4a4f-9e55-1b2c3d4e5f60", "status": "cannot_rank", "reason": "missing salary", "missing_fields": ["salary"], "pathways": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.schema, []byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("nope.schema.json", []byte(`{}`))
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
