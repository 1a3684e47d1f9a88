// internal/swipes/repository.go

package swipes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNoCredits       = errors.New("no swipe credits remaining")
	ErrAlreadySwiped   = errors.New("job already swiped")
	ErrNothingToRewind = errors.New("no interactions to rewind")
	ErrWorkerNotFound  = errors.New("worker profile not found")
	ErrJobNotAvailable = errors.New("job not found or not active")
)

type Repository interface {
	ConsumeSwipeCredit(ctx context.Context, workerID int64) (int, error)
	RefundSwipeCredit(ctx context.Context, workerID int64) error
	InsertInteraction(ctx context.Context, in *Interaction) error
	GetMostRecentInteraction(ctx context.Context, workerID int64) (*Interaction, error)
	RewindMostRecent(ctx context.Context, workerID int64) (int64, error)
	HasActiveApplication(ctx context.Context, workerID, jobID int64) (bool, error)
	GetWorkerView(ctx context.Context, workerID int64) (*WorkerView, error)
	GetActiveJobView(ctx context.Context, jobID int64) (*JobView, error)
	ListCandidateJobs(ctx context.Context, workerID int64) ([]*JobView, error)
	GetCredits(ctx context.Context, userID int64) (int, int, error)
	ResetDailySwipeCredits(ctx context.Context, amount int) (int64, error)
	GrantMonthlyBoostCredits(ctx context.Context, amount int) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// ConsumeSwipeCredit decrements the worker's swipe credits by one. The
// conditional UPDATE makes the check-and-decrement atomic so credits
// can never go negative under concurrent swipes.
func (r *postgresRepository) ConsumeSwipeCredit(ctx context.Context, workerID int64) (int, error) {
	var remaining int
	err := r.db.QueryRowxContext(ctx, `
		UPDATE users SET swipe_credits = swipe_credits - 1, updated_at = NOW()
		WHERE id = $1 AND swipe_credits >= 1
		RETURNING swipe_credits
	`, workerID).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoCredits
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

func (r *postgresRepository) RefundSwipeCredit(ctx context.Context, workerID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET swipe_credits = swipe_credits + 1, updated_at = NOW() WHERE id = $1`,
		workerID)
	return err
}

// InsertInteraction appends a ledger row. A partial unique index on
// (worker_id, job_id) WHERE NOT is_rewound turns the duplicate-swipe
// race into a clean conflict instead of a silent double row.
func (r *postgresRepository) InsertInteraction(ctx context.Context, in *Interaction) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO job_interactions (worker_id, job_id, action, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, in.WorkerID, in.JobID, in.Action, in.Score).Scan(&in.ID, &in.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrAlreadySwiped
	}
	return err
}

// GetMostRecentInteraction returns the worker's latest non-rewound
// swipe. Ties on created_at break by id, so the later insert wins.
func (r *postgresRepository) GetMostRecentInteraction(ctx context.Context, workerID int64) (*Interaction, error) {
	var in Interaction
	err := r.db.GetContext(ctx, &in, `
		SELECT * FROM job_interactions
		WHERE worker_id = $1 AND NOT is_rewound
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, workerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// RewindMostRecent flips is_rewound on the worker's latest active
// interaction and returns the affected job id. The subselect keeps the
// locate-and-flip in one statement.
func (r *postgresRepository) RewindMostRecent(ctx context.Context, workerID int64) (int64, error) {
	var jobID int64
	err := r.db.QueryRowxContext(ctx, `
		UPDATE job_interactions SET is_rewound = TRUE
		WHERE id = (
			SELECT id FROM job_interactions
			WHERE worker_id = $1 AND NOT is_rewound
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)
		RETURNING job_id
	`, workerID).Scan(&jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNothingToRewind
	}
	if err != nil {
		return 0, err
	}
	return jobID, nil
}

func (r *postgresRepository) HasActiveApplication(ctx context.Context, workerID, jobID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM job_interactions
			WHERE worker_id = $1 AND job_id = $2 AND action = 'apply' AND NOT is_rewound
		)
	`, workerID, jobID)
	return exists, err
}

func (r *postgresRepository) GetWorkerView(ctx context.Context, workerID int64) (*WorkerView, error) {
	var w WorkerView
	err := r.db.GetContext(ctx, &w, `
		SELECT user_id, skills, preferred_job_types, expected_salary_min,
		       expected_salary_max, city, region
		FROM worker_profiles WHERE user_id = $1
	`, workerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *postgresRepository) GetActiveJobView(ctx context.Context, jobID int64) (*JobView, error) {
	var j JobView
	err := r.db.GetContext(ctx, &j, `
		SELECT id, employer_id, title, description, job_type, salary_min,
		       salary_max, city, region, required_skills, boost_expires_at, created_at
		FROM job_posts
		WHERE id = $1 AND status = 'active'
		  AND (expires_at IS NULL OR expires_at > NOW())
	`, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotAvailable
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ListCandidateJobs returns every active job the worker has not
// actively swiped yet. Ordering and pagination happen in the service
// after scoring, so no LIMIT here.
func (r *postgresRepository) ListCandidateJobs(ctx context.Context, workerID int64) ([]*JobView, error) {
	jobs := []*JobView{}
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT j.id, j.employer_id, j.title, j.description, j.job_type,
		       j.salary_min, j.salary_max, j.city, j.region,
		       j.required_skills, j.boost_expires_at, j.created_at
		FROM job_posts j
		WHERE j.status = 'active'
		  AND (j.expires_at IS NULL OR j.expires_at > NOW())
		  AND NOT EXISTS (
			SELECT 1 FROM job_interactions i
			WHERE i.worker_id = $1 AND i.job_id = j.id AND NOT i.is_rewound
		  )
		ORDER BY j.created_at DESC
	`, workerID)
	return jobs, err
}

func (r *postgresRepository) GetCredits(ctx context.Context, userID int64) (int, int, error) {
	var row struct {
		SwipeCredits int `db:"swipe_credits"`
		BoostCredits int `db:"boost_credits"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT swipe_credits, boost_credits FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, 0, err
	}
	return row.SwipeCredits, row.BoostCredits, nil
}

// ResetDailySwipeCredits tops workers up to the free daily allowance.
// Users with an active paid subscription keep their purchased balance
// and are skipped.
func (r *postgresRepository) ResetDailySwipeCredits(ctx context.Context, amount int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET swipe_credits = $1, updated_at = NOW()
		WHERE role = 'worker'
		  AND status = 'active'
		  AND swipe_credits < $1
		  AND NOT EXISTS (
			SELECT 1 FROM user_subscriptions s
			WHERE s.user_id = users.id
			  AND s.status = 'active'
			  AND s.expires_at > NOW()
			  AND s.tier <> 'free'
		  )
	`, amount)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GrantMonthlyBoostCredits gives every non-subscribed active user a
// boost credit allowance.
func (r *postgresRepository) GrantMonthlyBoostCredits(ctx context.Context, amount int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET boost_credits = boost_credits + $1, updated_at = NOW()
		WHERE status = 'active'
		  AND NOT EXISTS (
			SELECT 1 FROM user_subscriptions s
			WHERE s.user_id = users.id
			  AND s.status = 'active'
			  AND s.expires_at > NOW()
			  AND s.tier <> 'free'
		  )
	`, amount)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
