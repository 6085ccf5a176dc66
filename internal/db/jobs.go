package db

import (
	"context"
	"fmt"

	"github.com/jonathan/career-pathways/internal/types"
)

// ListJobs returns the jobs corpus in insertion order. Rows without a job
// title are skipped.
func (db *DB) ListJobs(ctx context.Context) ([]types.RawJob, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job, top_language, top_database, top_platform, top_framework, work_exp, yearly_comp
		 FROM stackoverflow_jobs_2025
		 WHERE job IS NOT NULL AND job <> ''
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.RawJob
	for rows.Next() {
		var (
			job                                  types.RawJob
			language, database, platform, frames []byte
		)
		if err := rows.Scan(&job.Title, &language, &database, &platform, &frames, &job.WorkExperience, &job.AnnualComp); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if job.Language, err = decodeSkills("top_language", language); err != nil {
			return nil, err
		}
		if job.Database, err = decodeSkills("top_database", database); err != nil {
			return nil, err
		}
		if job.Platform, err = decodeSkills("top_platform", platform); err != nil {
			return nil, err
		}
		if job.Framework, err = decodeSkills("top_framework", frames); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}
