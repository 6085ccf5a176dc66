package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/career-pathways/internal/types"
)

const profileColumns = `user_id, job_title, skills, salary, salary_period, currency, years_experience`

// GetProfile returns the stored profile for userID, or nil, nil when absent.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*types.RawProfile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`,
		userID.String(),
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot: get profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns every stored profile ordered by user id.
func (s *Store) ListProfiles(ctx context.Context) ([]types.RawProfile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []types.RawProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("snapshot: scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*types.RawProfile, error) {
	var (
		p                  types.RawProfile
		id, skills, period string
		salary, years      sql.NullFloat64
	)
	if err := row.Scan(&id, &p.JobTitle, &skills, &salary, &period, &p.Currency, &years); err != nil {
		return nil, err
	}
	var err error
	if p.UserID, err = parseUserID(id); err != nil {
		return nil, err
	}
	if p.Skills, err = decodeSkills(skills); err != nil {
		return nil, err
	}
	p.SalaryPeriod = types.SalaryPeriod(period)
	p.Salary = nullableFloat(salary)
	p.YearsExperience = nullableFloat(years)
	return &p, nil
}

// ListJobs returns the jobs corpus in insertion order.
func (s *Store) ListJobs(ctx context.Context) ([]types.RawJob, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, annual_comp, work_experience, language, database_skills, platform, framework
		 FROM jobs ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.RawJob
	for rows.Next() {
		var (
			job                    types.RawJob
			comp, exp              sql.NullFloat64
			lang, dbs, plat, frame string
		)
		if err := rows.Scan(&job.Title, &comp, &exp, &lang, &dbs, &plat, &frame); err != nil {
			return nil, fmt.Errorf("snapshot: scan job: %w", err)
		}
		job.AnnualComp = nullableFloat(comp)
		job.WorkExperience = nullableFloat(exp)
		for _, f := range []struct {
			text string
			dst  *types.RawSkills
		}{
			{lang, &job.Language}, {dbs, &job.Database}, {plat, &job.Platform}, {frame, &job.Framework},
		} {
			if *f.dst, err = decodeSkills(f.text); err != nil {
				return nil, err
			}
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

const courseColumns = `id, title, provider, url, description, level, duration, embedding`

// ListCourses returns the course corpus ordered by id.
func (s *Store) ListCourses(ctx context.Context) ([]types.CourseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list courses: %w", err)
	}
	return collectCourses(rows)
}

// ListCoursesNeedingEmbedding returns courses without an embedding from model
// of width dims.
func (s *Store) ListCoursesNeedingEmbedding(ctx context.Context, model string, dims int) ([]types.CourseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses
		 WHERE embedding IS NULL OR model <> ? OR length(embedding) <> ?
		 ORDER BY id`,
		model, 4*dims,
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list courses needing embeddings: %w", err)
	}
	return collectCourses(rows)
}

func collectCourses(rows *sql.Rows) ([]types.CourseRecord, error) {
	defer rows.Close()

	var courses []types.CourseRecord
	for rows.Next() {
		var (
			c    types.CourseRecord
			blob []byte
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Provider, &c.URL, &c.Description, &c.Level, &c.Duration, &blob); err != nil {
			return nil, fmt.Errorf("snapshot: scan course: %w", err)
		}
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("course %s: %w", c.ID, err)
		}
		c.Embedding = vec
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
