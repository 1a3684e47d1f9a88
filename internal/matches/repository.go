// internal/matches/repository.go

package matches

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrMatchNotFound = errors.New("match not found")

type Repository interface {
	GetJobOwner(ctx context.Context, jobID int64) (int64, string, error)
	HasActiveApplication(ctx context.Context, workerID, jobID int64) (bool, error)
	UpsertMatch(ctx context.Context, jobID, workerID, employerID int64) (int64, error)
	GetMatch(ctx context.Context, matchID int64) (*Match, error)
	ListMatches(ctx context.Context, userID int64) ([]*MatchSummary, error)
	MarkOpened(ctx context.Context, matchID int64, byWorker bool) error
	DeleteConversation(ctx context.Context, matchID int64) error
	DeleteMatch(ctx context.Context, matchID int64) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetJobOwner(ctx context.Context, jobID int64) (int64, string, error) {
	var row struct {
		EmployerID int64  `db:"employer_id"`
		Title      string `db:"title"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT employer_id, title FROM job_posts WHERE id = $1`, jobID)
	if err != nil {
		return 0, "", err
	}
	return row.EmployerID, row.Title, nil
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

// UpsertMatch creates the match or returns the existing one. The
// UNIQUE (job_id, worker_id) constraint plus ON CONFLICT makes
// concurrent approvals converge on a single row.
func (r *postgresRepository) UpsertMatch(ctx context.Context, jobID, workerID, employerID int64) (int64, error) {
	var matchID int64
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO matches (job_id, worker_id, employer_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_id, worker_id) DO UPDATE SET job_id = EXCLUDED.job_id
		RETURNING id
	`, jobID, workerID, employerID).Scan(&matchID)
	return matchID, err
}

func (r *postgresRepository) GetMatch(ctx context.Context, matchID int64) (*Match, error) {
	var m Match
	err := r.db.GetContext(ctx, &m, `SELECT * FROM matches WHERE id = $1`, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepository) ListMatches(ctx context.Context, userID int64) ([]*MatchSummary, error) {
	summaries := []*MatchSummary{}
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT m.id, m.job_id, m.worker_id, m.employer_id,
		       j.title AS job_title,
		       COALESCE(wp.display_name, wu.username) AS worker_name,
		       ep.company_name,
		       m.is_opened_by_worker, m.is_opened_by_employer,
		       c.last_message_at,
		       m.created_at
		FROM matches m
		JOIN job_posts j ON j.id = m.job_id
		JOIN users wu ON wu.id = m.worker_id
		LEFT JOIN worker_profiles wp ON wp.user_id = m.worker_id
		LEFT JOIN employer_profiles ep ON ep.user_id = m.employer_id
		LEFT JOIN conversations c ON c.match_id = m.id
		WHERE m.worker_id = $1 OR m.employer_id = $1
		ORDER BY COALESCE(c.last_message_at, m.created_at) DESC
	`, userID)
	return summaries, err
}

func (r *postgresRepository) MarkOpened(ctx context.Context, matchID int64, byWorker bool) error {
	column := "is_opened_by_employer"
	if byWorker {
		column = "is_opened_by_worker"
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE matches SET `+column+` = TRUE WHERE id = $1`, matchID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteConversation(ctx context.Context, matchID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM conversations WHERE match_id = $1`, matchID)
	return err
}

func (r *postgresRepository) DeleteMatch(ctx context.Context, matchID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, matchID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMatchNotFound
	}
	return nil
}
