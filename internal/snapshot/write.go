package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonathan/career-pathways/internal/types"
)

// Data is the full content of a snapshot.
type Data struct {
	Profiles []types.RawProfile
	Jobs     []types.RawJob
	Courses  []types.CourseRecord
}

// Replace overwrites the snapshot contents in a single transaction.
func (s *Store) Replace(ctx context.Context, data *Data) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"profiles", "jobs", "courses"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("snapshot: clear %s: %w", table, err)
		}
	}
	if err = insertProfiles(ctx, tx, data.Profiles); err != nil {
		return err
	}
	if err = insertJobs(ctx, tx, data.Jobs); err != nil {
		return err
	}
	if err = insertCourses(ctx, tx, data.Courses); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES ('created_at', ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("snapshot: write metadata: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("snapshot: commit: %w", err)
	}
	return nil
}

// CreatedAt returns when the snapshot was last written, or the zero time
// for an empty snapshot.
func (s *Store) CreatedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'created_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("snapshot: read metadata: %w", err)
	}
	return time.Parse(time.RFC3339, value)
}

// UpsertCourseEmbedding stores an embedding for an existing course.
func (s *Store) UpsertCourseEmbedding(ctx context.Context, courseID, model string, vec []float32) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE courses SET model = ?, embedding = ? WHERE id = ?`,
		model, vectorArg(vec), courseID,
	)
	if err != nil {
		return fmt.Errorf("snapshot: upsert embedding: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("snapshot: course %q not found", courseID)
	}
	return nil
}

func insertProfiles(ctx context.Context, tx *sql.Tx, profiles []types.RawProfile) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO profiles (user_id, job_title, skills, salary, salary_period, currency, years_experience)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("snapshot: prepare profiles: %w", err)
	}
	defer stmt.Close()

	for i := range profiles {
		p := &profiles[i]
		skills, err := encodeSkills(p.Skills)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, p.UserID.String(), p.JobTitle, skills,
			p.Salary, string(p.SalaryPeriod), p.Currency, p.YearsExperience); err != nil {
			return fmt.Errorf("snapshot: insert profile %s: %w", p.UserID, err)
		}
	}
	return nil
}

func insertJobs(ctx context.Context, tx *sql.Tx, jobs []types.RawJob) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO jobs (title, annual_comp, work_experience, language, database_skills, platform, framework)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("snapshot: prepare jobs: %w", err)
	}
	defer stmt.Close()

	for i := range jobs {
		j := &jobs[i]
		fields := make([]any, 0, 4)
		for _, raw := range []types.RawSkills{j.Language, j.Database, j.Platform, j.Framework} {
			text, err := encodeSkills(raw)
			if err != nil {
				return err
			}
			fields = append(fields, text)
		}
		args := append([]any{j.Title, j.AnnualComp, j.WorkExperience}, fields...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("snapshot: insert job %q: %w", j.Title, err)
		}
	}
	return nil
}

func insertCourses(ctx context.Context, tx *sql.Tx, courses []types.CourseRecord) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO courses (id, title, provider, url, description, level, duration, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("snapshot: prepare courses: %w", err)
	}
	defer stmt.Close()

	for i := range courses {
		c := &courses[i]
		if _, err := stmt.ExecContext(ctx, c.ID, c.Title, c.Provider, c.URL, c.Description,
			c.Level, c.Duration, vectorArg(c.Embedding)); err != nil {
			return fmt.Errorf("snapshot: insert course %s: %w", c.ID, err)
		}
	}
	return nil
}
