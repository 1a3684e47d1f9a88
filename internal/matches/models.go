// internal/matches/models.go

package matches

import "time"

// Match records mutual interest: the worker applied and the employer
// approved. Either side can delete it by unmatching.
type Match struct {
	ID                 int64     `db:"id" json:"id"`
	JobID              int64     `db:"job_id" json:"job_id"`
	WorkerID           int64     `db:"worker_id" json:"worker_id"`
	EmployerID         int64     `db:"employer_id" json:"employer_id"`
	IsOpenedByWorker   bool      `db:"is_opened_by_worker" json:"is_opened_by_worker"`
	IsOpenedByEmployer bool      `db:"is_opened_by_employer" json:"is_opened_by_employer"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// MatchSummary is a match joined with the details each participant
// sees in their match list.
type MatchSummary struct {
	ID                 int64      `db:"id" json:"id"`
	JobID              int64      `db:"job_id" json:"job_id"`
	WorkerID           int64      `db:"worker_id" json:"worker_id"`
	EmployerID         int64      `db:"employer_id" json:"employer_id"`
	JobTitle           string     `db:"job_title" json:"job_title"`
	WorkerName         string     `db:"worker_name" json:"worker_name"`
	CompanyName        *string    `db:"company_name" json:"company_name,omitempty"`
	IsOpenedByWorker   bool       `db:"is_opened_by_worker" json:"is_opened_by_worker"`
	IsOpenedByEmployer bool       `db:"is_opened_by_employer" json:"is_opened_by_employer"`
	LastMessageAt      *time.Time `db:"last_message_at" json:"last_message_at,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

type ApproveRequest struct {
	JobID       int64 `json:"job_id" validate:"required,min=1"`
	ApplicantID int64 `json:"applicant_id" validate:"required,min=1"`
}

type ApproveResponse struct {
	MatchID int64 `json:"match_id"`
}
