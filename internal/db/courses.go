package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-pathways/internal/ingestion"
	"github.com/jonathan/career-pathways/internal/types"
)

const courseSelect = `SELECT c.url, c.source, c.title, c.level, c.duration, c.description_full, e.embedding
	FROM all_courses c
	LEFT JOIN course_embeddings e ON e.course_url = c.url`

// ListCourses returns the course corpus with stored embeddings. Descriptions
// are reduced from scraped HTML to plain text.
func (db *DB) ListCourses(ctx context.Context) ([]types.CourseRecord, error) {
	rows, err := db.pool.Query(ctx, courseSelect+` ORDER BY c.url`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return collectCourses(rows)
}

// ListCoursesNeedingEmbedding returns courses with no embedding, or with one
// produced by a different model or of a different width.
func (db *DB) ListCoursesNeedingEmbedding(ctx context.Context, model string, dims int) ([]types.CourseRecord, error) {
	rows, err := db.pool.Query(ctx,
		courseSelect+`
		 WHERE e.embedding IS NULL OR e.model IS DISTINCT FROM $1 OR cardinality(e.embedding) <> $2
		 ORDER BY c.url`,
		model, dims,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses needing embeddings: %w", err)
	}
	return collectCourses(rows)
}

// UpsertCourseEmbedding stores the embedding for a course, replacing any
// previous one.
func (db *DB) UpsertCourseEmbedding(ctx context.Context, courseID, model string, vec []float32) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO course_embeddings (course_url, model, embedding, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (course_url) DO UPDATE SET model = $2, embedding = $3, updated_at = NOW()`,
		courseID, model, vec,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert course embedding: %w", err)
	}
	return nil
}

func collectCourses(rows pgx.Rows) ([]types.CourseRecord, error) {
	defer rows.Close()

	var courses []types.CourseRecord
	for rows.Next() {
		var (
			c                                     types.CourseRecord
			source, title, level, duration, descr *string
		)
		if err := rows.Scan(&c.ID, &source, &title, &level, &duration, &descr, &c.Embedding); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		c.URL = c.ID
		c.Provider = derefString(source)
		c.Title = derefString(title)
		c.Level = derefString(level)
		c.Duration = derefString(duration)
		c.Description = ingestion.CourseDescription(derefString(descr))
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}
