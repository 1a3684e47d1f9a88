// internal/admin/service.go

package admin

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/kindapp/kind-backend/internal/common/storage"
)

type Service interface {
	CreateReport(ctx context.Context, reporterID int64, req *CreateReportRequest) (*Report, error)
	ListReports(ctx context.Context, status string, limit, offset int) ([]*Report, error)
	ResolveReport(ctx context.Context, adminID, reportID int64, req *ResolveReportRequest) error
	WarnUser(ctx context.Context, adminID, userID int64, reason string) error
	SuspendUser(ctx context.Context, adminID, userID int64, reason string) error
	ReinstateUser(ctx context.Context, adminID, userID int64) error
	CloseJob(ctx context.Context, adminID, jobID int64, reason string) error
	ListActions(ctx context.Context, limit, offset int) ([]*AdminAction, error)
	RequestVerification(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (*VerificationRequest, error)
	ListVerificationRequests(ctx context.Context, status string, limit, offset int) ([]*VerificationRequest, error)
	DecideVerification(ctx context.Context, adminID, requestID int64, req *VerificationDecisionRequest) error
}

type service struct {
	repo     Repository
	uploader storage.Uploader
}

func NewService(repo Repository, uploader storage.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) CreateReport(ctx context.Context, reporterID int64, req *CreateReportRequest) (*Report, error) {
	report := &Report{
		ReporterID:   reporterID,
		TargetUserID: req.TargetUserID,
		TargetJobID:  req.TargetJobID,
		Reason:       req.Reason,
		Details:      req.Details,
	}
	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

func (s *service) ListReports(ctx context.Context, status string, limit, offset int) ([]*Report, error) {
	return s.repo.ListReports(ctx, status, clampLimit(limit), offset)
}

func (s *service) ResolveReport(ctx context.Context, adminID, reportID int64, req *ResolveReportRequest) error {
	if err := s.repo.ResolveReport(ctx, reportID, req.Status); err != nil {
		return err
	}
	return s.audit(ctx, adminID, &ResolveReportDetails{
		ReportID:   reportID,
		Status:     req.Status,
		Resolution: req.Resolution,
	})
}

// WarnUser records a warning in the audit log without touching the
// account's status.
func (s *service) WarnUser(ctx context.Context, adminID, userID int64, reason string) error {
	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return s.audit(ctx, adminID, &WarnUserDetails{UserID: userID, Reason: reason})
}

func (s *service) SuspendUser(ctx context.Context, adminID, userID int64, reason string) error {
	if err := s.repo.SetUserStatus(ctx, userID, "suspended"); err != nil {
		return err
	}
	return s.audit(ctx, adminID, &SuspendUserDetails{UserID: userID, Reason: reason})
}

func (s *service) ReinstateUser(ctx context.Context, adminID, userID int64) error {
	if err := s.repo.SetUserStatus(ctx, userID, "active"); err != nil {
		return err
	}
	return s.audit(ctx, adminID, &ReinstateUserDetails{UserID: userID})
}

func (s *service) CloseJob(ctx context.Context, adminID, jobID int64, reason string) error {
	if err := s.repo.CloseJob(ctx, jobID); err != nil {
		return err
	}
	return s.audit(ctx, adminID, &CloseJobDetails{JobID: jobID, Reason: reason})
}

func (s *service) ListActions(ctx context.Context, limit, offset int) ([]*AdminAction, error) {
	return s.repo.ListActions(ctx, clampLimit(limit), offset)
}

func (s *service) RequestVerification(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (*VerificationRequest, error) {
	url, err := s.uploader.Upload(ctx, "verification", header.Filename, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	req := &VerificationRequest{UserID: userID, DocumentURL: url}
	if err := s.repo.CreateVerificationRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create verification request: %w", err)
	}
	return req, nil
}

func (s *service) ListVerificationRequests(ctx context.Context, status string, limit, offset int) ([]*VerificationRequest, error) {
	return s.repo.ListVerificationRequests(ctx, status, clampLimit(limit), offset)
}

func (s *service) DecideVerification(ctx context.Context, adminID, requestID int64, req *VerificationDecisionRequest) error {
	status := VerificationRejected
	if req.Approve {
		status = VerificationApproved
	}

	userID, err := s.repo.DecideVerification(ctx, requestID, status, req.Note)
	if err != nil {
		return err
	}

	if req.Approve {
		if err := s.repo.SetEmployerVerified(ctx, userID, true); err != nil {
			return err
		}
	}

	return s.audit(ctx, adminID, &VerificationDecisionDetails{
		RequestID: requestID,
		Approved:  req.Approve,
		Note:      req.Note,
	})
}

func (s *service) audit(ctx context.Context, adminID int64, details ActionDetails) error {
	encoded, err := EncodeActionDetails(details)
	if err != nil {
		return err
	}
	_, err = s.repo.RecordAction(ctx, adminID, details.ActionKind(), encoded)
	return err
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
