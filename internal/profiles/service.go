// internal/profiles/service.go

package profiles

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/kindapp/kind-backend/internal/common/storage"
)

type Service interface {
	UpsertWorkerProfile(ctx context.Context, userID int64, req *UpsertWorkerProfileRequest) (*WorkerProfile, error)
	GetWorkerProfile(ctx context.Context, userID int64) (*WorkerProfile, error)
	UpsertEmployerProfile(ctx context.Context, userID int64, req *UpsertEmployerProfileRequest) (*EmployerProfile, error)
	GetEmployerProfile(ctx context.Context, userID int64) (*EmployerProfile, error)
	UploadWorkerAvatar(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error)
	UploadEmployerLogo(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error)
}

type service struct {
	repo     Repository
	uploader storage.Uploader
}

func NewService(repo Repository, uploader storage.Uploader) Service {
	return &service{repo: repo, uploader: uploader}
}

func (s *service) UpsertWorkerProfile(ctx context.Context, userID int64, req *UpsertWorkerProfileRequest) (*WorkerProfile, error) {
	p := &WorkerProfile{
		UserID:            userID,
		DisplayName:       req.DisplayName,
		Skills:            req.Skills,
		PreferredJobTypes: req.PreferredJobTypes,
		ExpectedSalaryMin: req.ExpectedSalaryMin,
		ExpectedSalaryMax: req.ExpectedSalaryMax,
		Availability:      req.Availability,
		ExperienceYears:   req.ExperienceYears,
	}
	if p.Availability == "" {
		p.Availability = AvailabilityFlexible
	}
	if req.Bio != "" {
		p.Bio = &req.Bio
	}
	if req.City != "" {
		p.City = &req.City
	}
	if req.Region != "" {
		p.Region = &req.Region
	}

	if err := s.repo.UpsertWorkerProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save worker profile: %w", err)
	}
	return p, nil
}

func (s *service) GetWorkerProfile(ctx context.Context, userID int64) (*WorkerProfile, error) {
	return s.repo.GetWorkerProfile(ctx, userID)
}

func (s *service) UpsertEmployerProfile(ctx context.Context, userID int64, req *UpsertEmployerProfileRequest) (*EmployerProfile, error) {
	p := &EmployerProfile{
		UserID:      userID,
		CompanyName: req.CompanyName,
	}
	if req.Description != "" {
		p.Description = &req.Description
	}
	if req.Website != "" {
		p.Website = &req.Website
	}
	if req.City != "" {
		p.City = &req.City
	}
	if req.Region != "" {
		p.Region = &req.Region
	}

	if err := s.repo.UpsertEmployerProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save employer profile: %w", err)
	}
	return p, nil
}

func (s *service) GetEmployerProfile(ctx context.Context, userID int64) (*EmployerProfile, error) {
	return s.repo.GetEmployerProfile(ctx, userID)
}

func (s *service) UploadWorkerAvatar(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := s.uploader.Upload(ctx, "avatars", header.Filename, file)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetWorkerAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *service) UploadEmployerLogo(ctx context.Context, userID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	url, err := s.uploader.Upload(ctx, "logos", header.Filename, file)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetEmployerLogo(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
