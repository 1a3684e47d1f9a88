package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	jobs         map[int64]*JobPost
	nextID       int64
	boostCredits map[int64]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		jobs:         map[int64]*JobPost{},
		boostCredits: map[int64]int{},
	}
}

func (f *fakeRepository) CreateJob(ctx context.Context, job *JobPost) error {
	f.nextID++
	job.ID = f.nextID
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeRepository) UpdateJob(ctx context.Context, job *JobPost) error {
	if _, ok := f.jobs[job.ID]; !ok {
		return ErrJobNotFound
	}
	job.UpdatedAt = time.Now()
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeRepository) SetStatus(ctx context.Context, jobID int64, status string) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.Status = status
	return nil
}

func (f *fakeRepository) GetJob(ctx context.Context, jobID int64) (*JobPost, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeRepository) ListEmployerJobs(ctx context.Context, employerID int64) ([]*JobPost, error) {
	out := []*JobPost{}
	for _, job := range f.jobs {
		if job.EmployerID == employerID {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListActiveJobs(ctx context.Context, limit, offset int) ([]*JobPost, error) {
	out := []*JobPost{}
	for _, job := range f.jobs {
		if job.Status == StatusActive {
			out = append(out, job)
		}
	}
	return out, nil
}

func (f *fakeRepository) BoostJob(ctx context.Context, jobID, employerID int64, duration time.Duration) (*time.Time, int, error) {
	if f.boostCredits[employerID] < 1 {
		return nil, 0, ErrNoBoostCredits
	}
	job, ok := f.jobs[jobID]
	if !ok || job.EmployerID != employerID || job.Status != StatusActive {
		return nil, 0, ErrJobNotFound
	}
	f.boostCredits[employerID]--
	expires := time.Now().Add(duration)
	job.BoostExpiresAt = &expires
	return &expires, f.boostCredits[employerID], nil
}

func (f *fakeRepository) CloseExpiredJobs(ctx context.Context) (int64, error) {
	var n int64
	now := time.Now()
	for _, job := range f.jobs {
		if job.Status == StatusActive && job.ExpiresAt != nil && job.ExpiresAt.Before(now) {
			job.Status = StatusClosed
			n++
		}
	}
	return n, nil
}

func TestPostJobDraftByDefault(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	job, err := svc.PostJob(context.Background(), 2, &CreateJobRequest{
		Title:       "Dishwasher",
		Description: "Evening shift",
		JobType:     "kitchen",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, job.Status)
	assert.NotZero(t, job.ID)
	assert.Nil(t, job.ExpiresAt)
}

func TestPostJobPublishImmediately(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	job, err := svc.PostJob(context.Background(), 2, &CreateJobRequest{
		Title:         "Dishwasher",
		Description:   "Evening shift",
		JobType:       "kitchen",
		Publish:       true,
		ExpiresInDays: 14,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, job.Status)
	require.NotNil(t, job.ExpiresAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), *job.ExpiresAt, time.Minute)
}

func TestUpdateJobOwnerOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	ctx := context.Background()
	job, err := svc.PostJob(ctx, 2, &CreateJobRequest{Title: "Old", Description: "d", JobType: "kitchen"})
	require.NoError(t, err)

	title := "New"
	updated, err := svc.UpdateJob(ctx, 2, job.ID, &UpdateJobRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)

	_, err = svc.UpdateJob(ctx, 99, job.ID, &UpdateJobRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestChangeStatusOwnerOnly(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	ctx := context.Background()
	job, err := svc.PostJob(ctx, 2, &CreateJobRequest{Title: "t", Description: "d", JobType: "kitchen", Publish: true})
	require.NoError(t, err)

	require.NoError(t, svc.ChangeStatus(ctx, 2, job.ID, StatusPaused))
	assert.Equal(t, StatusPaused, repo.jobs[job.ID].Status)

	assert.ErrorIs(t, svc.ChangeStatus(ctx, 99, job.ID, StatusClosed), ErrNotOwner)
}

func TestBoostJob(t *testing.T) {
	repo := newFakeRepository()
	repo.boostCredits[2] = 1
	svc := NewService(repo)

	ctx := context.Background()
	job, err := svc.PostJob(ctx, 2, &CreateJobRequest{Title: "t", Description: "d", JobType: "kitchen", Publish: true})
	require.NoError(t, err)

	resp, err := svc.BoostJob(ctx, 2, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.BoostCredits)
	assert.True(t, resp.BoostExpiresAt.After(time.Now().Add(6*24*time.Hour)))

	_, err = svc.BoostJob(ctx, 2, job.ID)
	assert.ErrorIs(t, err, ErrNoBoostCredits, "boost credits are consumed")
}

func TestCloseExpiredJobsSweep(t *testing.T) {
	repo := newFakeRepository()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	repo.jobs[1] = &JobPost{ID: 1, Status: StatusActive, ExpiresAt: &past}
	repo.jobs[2] = &JobPost{ID: 2, Status: StatusActive, ExpiresAt: &future}
	repo.jobs[3] = &JobPost{ID: 3, Status: StatusActive}

	n, err := repo.CloseExpiredJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, StatusClosed, repo.jobs[1].Status)
	assert.Equal(t, StatusActive, repo.jobs[2].Status)
	assert.Equal(t, StatusActive, repo.jobs[3].Status)
}
