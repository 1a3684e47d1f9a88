// internal/admin/repository.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrVerificationNotFound = errors.New("verification request not found")
	ErrUserNotFound         = errors.New("user not found")
)

type Repository interface {
	CreateReport(ctx context.Context, report *Report) error
	ListReports(ctx context.Context, status string, limit, offset int) ([]*Report, error)
	ResolveReport(ctx context.Context, reportID int64, status string) error
	SetUserStatus(ctx context.Context, userID int64, status string) error
	UserExists(ctx context.Context, userID int64) (bool, error)
	CloseJob(ctx context.Context, jobID int64) error
	RecordAction(ctx context.Context, adminID int64, kind string, details json.RawMessage) (int64, error)
	ListActions(ctx context.Context, limit, offset int) ([]*AdminAction, error)
	CreateVerificationRequest(ctx context.Context, req *VerificationRequest) error
	ListVerificationRequests(ctx context.Context, status string, limit, offset int) ([]*VerificationRequest, error)
	DecideVerification(ctx context.Context, requestID int64, status string, note *string) (int64, error)
	SetEmployerVerified(ctx context.Context, userID int64, verified bool) error
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateReport(ctx context.Context, report *Report) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO reports (reporter_id, target_user_id, target_job_id, reason, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, updated_at
	`, report.ReporterID, report.TargetUserID, report.TargetJobID, report.Reason, report.Details).
		Scan(&report.ID, &report.Status, &report.CreatedAt, &report.UpdatedAt)
}

func (r *postgresRepository) ListReports(ctx context.Context, status string, limit, offset int) ([]*Report, error) {
	reports := []*Report{}
	query := `SELECT * FROM reports`
	args := []interface{}{limit, offset}
	if status != "" {
		query += ` WHERE status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &reports, query, args...)
	return reports, err
}

func (r *postgresRepository) ResolveReport(ctx context.Context, reportID int64, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`, reportID, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (r *postgresRepository) SetUserStatus(ctx context.Context, userID int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`, userID, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID)
	return exists, err
}

func (r *postgresRepository) CloseJob(ctx context.Context, jobID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_posts SET status = 'closed', updated_at = NOW() WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepository) RecordAction(ctx context.Context, adminID int64, kind string, details json.RawMessage) (int64, error) {
	var actionID int64
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO admin_actions (admin_id, kind, details)
		VALUES ($1, $2, $3)
		RETURNING id
	`, adminID, kind, details).Scan(&actionID)
	return actionID, err
}

func (r *postgresRepository) ListActions(ctx context.Context, limit, offset int) ([]*AdminAction, error) {
	actions := []*AdminAction{}
	err := r.db.SelectContext(ctx, &actions, `
		SELECT * FROM admin_actions
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return actions, err
}

func (r *postgresRepository) CreateVerificationRequest(ctx context.Context, req *VerificationRequest) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO verification_requests (user_id, document_url)
		VALUES ($1, $2)
		RETURNING id, status, created_at, updated_at
	`, req.UserID, req.DocumentURL).
		Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

func (r *postgresRepository) ListVerificationRequests(ctx context.Context, status string, limit, offset int) ([]*VerificationRequest, error) {
	requests := []*VerificationRequest{}
	query := `SELECT * FROM verification_requests`
	args := []interface{}{limit, offset}
	if status != "" {
		query += ` WHERE status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &requests, query, args...)
	return requests, err
}

// DecideVerification stamps a pending request and returns the
// requesting user's id.
func (r *postgresRepository) DecideVerification(ctx context.Context, requestID int64, status string, note *string) (int64, error) {
	var userID int64
	err := r.db.QueryRowxContext(ctx, `
		UPDATE verification_requests SET status = $2, note = $3, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING user_id
	`, requestID, status, note).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrVerificationNotFound
	}
	return userID, err
}

func (r *postgresRepository) SetEmployerVerified(ctx context.Context, userID int64, verified bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE employer_profiles SET is_verified = $2, updated_at = NOW()
		WHERE user_id = $1
	`, userID, verified)
	return err
}
