// internal/admin/models.go

package admin

import (
	"encoding/json"
	"time"
)

// Report states.
const (
	ReportOpen      = "open"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

// Verification request states.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Report is a user complaint about another user or a job post.
type Report struct {
	ID           int64     `db:"id" json:"id"`
	ReporterID   int64     `db:"reporter_id" json:"reporter_id"`
	TargetUserID *int64    `db:"target_user_id" json:"target_user_id,omitempty"`
	TargetJobID  *int64    `db:"target_job_id" json:"target_job_id,omitempty"`
	Reason       string    `db:"reason" json:"reason"`
	Details      *string   `db:"details" json:"details,omitempty"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AdminAction is the audit record of a moderation decision. Details
// holds the typed envelope for the action kind.
type AdminAction struct {
	ID        int64           `db:"id" json:"id"`
	AdminID   int64           `db:"admin_id" json:"admin_id"`
	Kind      string          `db:"kind" json:"kind"`
	Details   json.RawMessage `db:"details" json:"details"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// VerificationRequest is an employer's request to be marked verified,
// backed by an uploaded document.
type VerificationRequest struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	DocumentURL string    `db:"document_url" json:"document_url"`
	Status      string    `db:"status" json:"status"`
	Note        *string   `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateReportRequest struct {
	TargetUserID *int64  `json:"target_user_id" validate:"omitempty,min=1"`
	TargetJobID  *int64  `json:"target_job_id" validate:"omitempty,min=1"`
	Reason       string  `json:"reason" validate:"required,min=3,max=100"`
	Details      *string `json:"details" validate:"omitempty,max=2000"`
}

type ResolveReportRequest struct {
	Status     string `json:"status" validate:"required,oneof=resolved dismissed"`
	Resolution string `json:"resolution" validate:"required,min=3,max=500"`
}

type SuspendUserRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type VerificationDecisionRequest struct {
	Approve bool    `json:"approve"`
	Note    *string `json:"note" validate:"omitempty,max=500"`
}
