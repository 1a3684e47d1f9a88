// internal/jobs/repository.go

package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrNoBoostCredits = errors.New("no boost credits available")
)

type Repository interface {
	CreateJob(ctx context.Context, job *JobPost) error
	UpdateJob(ctx context.Context, job *JobPost) error
	SetStatus(ctx context.Context, jobID int64, status string) error
	GetJob(ctx context.Context, jobID int64) (*JobPost, error)
	ListEmployerJobs(ctx context.Context, employerID int64) ([]*JobPost, error)
	ListActiveJobs(ctx context.Context, limit, offset int) ([]*JobPost, error)
	BoostJob(ctx context.Context, jobID, employerID int64, duration time.Duration) (*time.Time, int, error)
	CloseExpiredJobs(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateJob(ctx context.Context, job *JobPost) error {
	query := `
		INSERT INTO job_posts (
			employer_id, title, description, job_type, salary_min, salary_max,
			city, region, required_skills, schedule_days, shift, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		job.EmployerID, job.Title, job.Description, job.JobType,
		job.SalaryMin, job.SalaryMax, job.City, job.Region,
		job.RequiredSkills, job.ScheduleDays, job.Shift, job.Status, job.ExpiresAt,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *postgresRepository) UpdateJob(ctx context.Context, job *JobPost) error {
	query := `
		UPDATE job_posts SET
			title = $2, description = $3, job_type = $4,
			salary_min = $5, salary_max = $6, city = $7, region = $8,
			required_skills = $9, schedule_days = $10, shift = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		job.ID, job.Title, job.Description, job.JobType,
		job.SalaryMin, job.SalaryMax, job.City, job.Region,
		job.RequiredSkills, job.ScheduleDays, job.Shift,
	).Scan(&job.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrJobNotFound
	}
	return err
}

func (r *postgresRepository) SetStatus(ctx context.Context, jobID int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_posts SET status = $2, updated_at = NOW() WHERE id = $1`,
		jobID, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *postgresRepository) GetJob(ctx context.Context, jobID int64) (*JobPost, error) {
	var job JobPost
	err := r.db.GetContext(ctx, &job, `SELECT * FROM job_posts WHERE id = $1`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *postgresRepository) ListEmployerJobs(ctx context.Context, employerID int64) ([]*JobPost, error) {
	jobs := []*JobPost{}
	err := r.db.SelectContext(ctx, &jobs,
		`SELECT * FROM job_posts WHERE employer_id = $1 ORDER BY created_at DESC`,
		employerID)
	return jobs, err
}

// ListActiveJobs returns active posts, currently boosted ones first.
func (r *postgresRepository) ListActiveJobs(ctx context.Context, limit, offset int) ([]*JobPost, error) {
	jobs := []*JobPost{}
	query := `
		SELECT * FROM job_posts
		WHERE status = 'active'
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY
			(boost_expires_at IS NOT NULL AND boost_expires_at > NOW()) DESC,
			created_at DESC
		LIMIT $1 OFFSET $2
	`
	err := r.db.SelectContext(ctx, &jobs, query, limit, offset)
	return jobs, err
}

// BoostJob consumes one boost credit and stamps the post in a single
// transaction. The conditional UPDATE on users makes the credit check
// safe under concurrent requests.
func (r *postgresRepository) BoostJob(ctx context.Context, jobID, employerID int64, duration time.Duration) (*time.Time, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var remaining int
	err = tx.QueryRowxContext(ctx, `
		UPDATE users SET boost_credits = boost_credits - 1, updated_at = NOW()
		WHERE id = $1 AND boost_credits >= 1
		RETURNING boost_credits
	`, employerID).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNoBoostCredits
	}
	if err != nil {
		return nil, 0, err
	}

	var expiresAt time.Time
	err = tx.QueryRowxContext(ctx, `
		UPDATE job_posts SET boost_expires_at = NOW() + $3::interval, updated_at = NOW()
		WHERE id = $1 AND employer_id = $2 AND status = 'active'
		RETURNING boost_expires_at
	`, jobID, employerID, fmt.Sprintf("%d seconds", int(duration.Seconds()))).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrJobNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return &expiresAt, remaining, nil
}

// CloseExpiredJobs transitions active posts past their expiry date.
func (r *postgresRepository) CloseExpiredJobs(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE job_posts SET status = 'closed', updated_at = NOW()
		WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at <= NOW()
	`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
