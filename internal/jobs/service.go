// internal/jobs/service.go

package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotOwner is returned when a caller tries to manage a post they do
// not own. Handlers collapse it with ErrJobNotFound so outsiders cannot
// probe which IDs exist.
var ErrNotOwner = errors.New("job belongs to another employer")

const boostDuration = 7 * 24 * time.Hour

type Service interface {
	PostJob(ctx context.Context, employerID int64, req *CreateJobRequest) (*JobPost, error)
	UpdateJob(ctx context.Context, employerID, jobID int64, req *UpdateJobRequest) (*JobPost, error)
	ChangeStatus(ctx context.Context, employerID, jobID int64, status string) error
	BoostJob(ctx context.Context, employerID, jobID int64) (*BoostResponse, error)
	GetJob(ctx context.Context, jobID int64) (*JobPost, error)
	ListEmployerJobs(ctx context.Context, employerID int64) ([]*JobPost, error)
	ListActiveJobs(ctx context.Context, limit, offset int) ([]*JobPost, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PostJob(ctx context.Context, employerID int64, req *CreateJobRequest) (*JobPost, error) {
	job := &JobPost{
		EmployerID:     employerID,
		Title:          req.Title,
		Description:    req.Description,
		JobType:        req.JobType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		RequiredSkills: req.RequiredSkills,
		ScheduleDays:   req.ScheduleDays,
		Status:         StatusDraft,
	}
	if req.Shift != "" {
		job.Shift = &req.Shift
	}
	if req.Publish {
		job.Status = StatusActive
	}
	if req.City != "" {
		job.City = &req.City
	}
	if req.Region != "" {
		job.Region = &req.Region
	}
	if req.ExpiresInDays > 0 {
		expires := time.Now().AddDate(0, 0, req.ExpiresInDays)
		job.ExpiresAt = &expires
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job post: %w", err)
	}
	return job, nil
}

func (s *service) UpdateJob(ctx context.Context, employerID, jobID int64, req *UpdateJobRequest) (*JobPost, error) {
	job, err := s.ownedJob(ctx, employerID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.JobType != nil {
		job.JobType = *req.JobType
	}
	if req.SalaryMin != nil {
		job.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		job.SalaryMax = req.SalaryMax
	}
	if req.City != nil {
		job.City = req.City
	}
	if req.Region != nil {
		job.Region = req.Region
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = req.RequiredSkills
	}
	if req.ScheduleDays != nil {
		job.ScheduleDays = req.ScheduleDays
	}
	if req.Shift != nil {
		job.Shift = req.Shift
	}

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *service) ChangeStatus(ctx context.Context, employerID, jobID int64, status string) error {
	if _, err := s.ownedJob(ctx, employerID, jobID); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, jobID, status)
}

func (s *service) BoostJob(ctx context.Context, employerID, jobID int64) (*BoostResponse, error) {
	expiresAt, remaining, err := s.repo.BoostJob(ctx, jobID, employerID, boostDuration)
	if err != nil {
		return nil, err
	}
	return &BoostResponse{
		JobID:          jobID,
		BoostExpiresAt: *expiresAt,
		BoostCredits:   remaining,
	}, nil
}

func (s *service) GetJob(ctx context.Context, jobID int64) (*JobPost, error) {
	return s.repo.GetJob(ctx, jobID)
}

func (s *service) ListEmployerJobs(ctx context.Context, employerID int64) ([]*JobPost, error) {
	return s.repo.ListEmployerJobs(ctx, employerID)
}

func (s *service) ListActiveJobs(ctx context.Context, limit, offset int) ([]*JobPost, error) {
	return s.repo.ListActiveJobs(ctx, limit, offset)
}

func (s *service) ownedJob(ctx context.Context, employerID, jobID int64) (*JobPost, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.EmployerID != employerID {
		return nil, ErrNotOwner
	}
	return job, nil
}
