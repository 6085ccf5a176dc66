package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-pathways/internal/types"
)

const profileColumns = `id, job_title, skills, median_salary::float8, currency, years_experience::float8`

// GetProfile loads a user's profile. It returns nil, nil when the user does
// not exist. median_salary is an annual figure.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.RawProfile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM users WHERE id = $1`,
		userID,
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns every user profile ordered by id.
func (db *DB) ListProfiles(ctx context.Context) ([]types.RawProfile, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+profileColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []types.RawProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

func scanProfile(row pgx.Row) (*types.RawProfile, error) {
	var (
		p         types.RawProfile
		title     *string
		skillsRaw []byte
		currency  *string
	)
	if err := row.Scan(&p.UserID, &title, &skillsRaw, &p.Salary, &currency, &p.YearsExperience); err != nil {
		return nil, err
	}
	skills, err := decodeSkills("skills", skillsRaw)
	if err != nil {
		return nil, err
	}
	p.JobTitle = derefString(title)
	p.Skills = skills
	p.Currency = derefString(currency)
	p.SalaryPeriod = types.SalaryAnnual
	return &p, nil
}
