// internal/profiles/repository.go

package profiles

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	UpsertWorkerProfile(ctx context.Context, p *WorkerProfile) error
	GetWorkerProfile(ctx context.Context, userID int64) (*WorkerProfile, error)
	UpsertEmployerProfile(ctx context.Context, p *EmployerProfile) error
	GetEmployerProfile(ctx context.Context, userID int64) (*EmployerProfile, error)
	SetWorkerAvatar(ctx context.Context, userID int64, url string) error
	SetEmployerLogo(ctx context.Context, userID int64, url string) error
	SetEmployerVerified(ctx context.Context, userID int64, verified bool) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) UpsertWorkerProfile(ctx context.Context, p *WorkerProfile) error {
	query := `
		INSERT INTO worker_profiles (
			user_id, display_name, bio, skills, preferred_job_types,
			expected_salary_min, expected_salary_max, city, region,
			availability, experience_years
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			preferred_job_types = EXCLUDED.preferred_job_types,
			expected_salary_min = EXCLUDED.expected_salary_min,
			expected_salary_max = EXCLUDED.expected_salary_max,
			city = EXCLUDED.city,
			region = EXCLUDED.region,
			availability = EXCLUDED.availability,
			experience_years = EXCLUDED.experience_years,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.DisplayName, p.Bio, p.Skills, p.PreferredJobTypes,
		p.ExpectedSalaryMin, p.ExpectedSalaryMax, p.City, p.Region,
		p.Availability, p.ExperienceYears,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) GetWorkerProfile(ctx context.Context, userID int64) (*WorkerProfile, error) {
	var p WorkerProfile
	err := r.db.GetContext(ctx, &p,
		`SELECT * FROM worker_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) UpsertEmployerProfile(ctx context.Context, p *EmployerProfile) error {
	query := `
		INSERT INTO employer_profiles (
			user_id, company_name, description, website, city, region
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			description = EXCLUDED.description,
			website = EXCLUDED.website,
			city = EXCLUDED.city,
			region = EXCLUDED.region,
			updated_at = NOW()
		RETURNING id, is_verified, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.CompanyName, p.Description, p.Website, p.City, p.Region,
	).Scan(&p.ID, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) GetEmployerProfile(ctx context.Context, userID int64) (*EmployerProfile, error) {
	var p EmployerProfile
	err := r.db.GetContext(ctx, &p,
		`SELECT * FROM employer_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) SetWorkerAvatar(ctx context.Context, userID int64, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE worker_profiles SET avatar_url = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, url)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) SetEmployerLogo(ctx context.Context, userID int64, url string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employer_profiles SET logo_url = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, url)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *postgresRepository) SetEmployerVerified(ctx context.Context, userID int64, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employer_profiles SET is_verified = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, verified)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
