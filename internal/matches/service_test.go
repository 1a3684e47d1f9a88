package matches

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	jobOwners    map[int64]int64
	jobTitles    map[int64]string
	applications map[[2]int64]bool
	matches      map[int64]*Match
	matchKeys    map[[2]int64]int64
	nextID       int64

	conversationErr     error
	deletedConvos       []int64
	deletedMatches      []int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		jobOwners:    map[int64]int64{},
		jobTitles:    map[int64]string{},
		applications: map[[2]int64]bool{},
		matches:      map[int64]*Match{},
		matchKeys:    map[[2]int64]int64{},
	}
}

func (f *fakeRepository) GetJobOwner(ctx context.Context, jobID int64) (int64, string, error) {
	owner, ok := f.jobOwners[jobID]
	if !ok {
		return 0, "", sql.ErrNoRows
	}
	return owner, f.jobTitles[jobID], nil
}

func (f *fakeRepository) HasActiveApplication(ctx context.Context, workerID, jobID int64) (bool, error) {
	return f.applications[[2]int64{workerID, jobID}], nil
}

func (f *fakeRepository) UpsertMatch(ctx context.Context, jobID, workerID, employerID int64) (int64, error) {
	key := [2]int64{jobID, workerID}
	if id, ok := f.matchKeys[key]; ok {
		return id, nil
	}
	f.nextID++
	f.matchKeys[key] = f.nextID
	f.matches[f.nextID] = &Match{ID: f.nextID, JobID: jobID, WorkerID: workerID, EmployerID: employerID}
	return f.nextID, nil
}

func (f *fakeRepository) GetMatch(ctx context.Context, matchID int64) (*Match, error) {
	m, ok := f.matches[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

func (f *fakeRepository) ListMatches(ctx context.Context, userID int64) ([]*MatchSummary, error) {
	return nil, nil
}

func (f *fakeRepository) MarkOpened(ctx context.Context, matchID int64, byWorker bool) error {
	m, ok := f.matches[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	if byWorker {
		m.IsOpenedByWorker = true
	} else {
		m.IsOpenedByEmployer = true
	}
	return nil
}

func (f *fakeRepository) DeleteConversation(ctx context.Context, matchID int64) error {
	if f.conversationErr != nil {
		return f.conversationErr
	}
	f.deletedConvos = append(f.deletedConvos, matchID)
	return nil
}

func (f *fakeRepository) DeleteMatch(ctx context.Context, matchID int64) error {
	if _, ok := f.matches[matchID]; !ok {
		return ErrMatchNotFound
	}
	delete(f.matches, matchID)
	f.deletedMatches = append(f.deletedMatches, matchID)
	return nil
}

type fakeNotifier struct {
	created []int64
}

func (f *fakeNotifier) MatchCreated(ctx context.Context, workerID, employerID, matchID, jobID int64, jobTitle string) {
	f.created = append(f.created, matchID)
}

func seedApplication(repo *fakeRepository) {
	repo.jobOwners[10] = 2
	repo.jobTitles[10] = "Barista"
	repo.applications[[2]int64{1, 10}] = true
}

func TestApproveApplication(t *testing.T) {
	repo := newFakeRepository()
	seedApplication(repo)
	notifier := &fakeNotifier{}
	svc := NewService(repo, notifier)

	resp, err := svc.ApproveApplication(context.Background(), 2, &ApproveRequest{JobID: 10, ApplicantID: 1})
	require.NoError(t, err)

	assert.NotZero(t, resp.MatchID)
	assert.Equal(t, []int64{resp.MatchID}, notifier.created)
}

func TestApproveApplicationIdempotent(t *testing.T) {
	repo := newFakeRepository()
	seedApplication(repo)
	svc := NewService(repo, &fakeNotifier{})

	ctx := context.Background()
	first, err := svc.ApproveApplication(ctx, 2, &ApproveRequest{JobID: 10, ApplicantID: 1})
	require.NoError(t, err)

	second, err := svc.ApproveApplication(ctx, 2, &ApproveRequest{JobID: 10, ApplicantID: 1})
	require.NoError(t, err)

	assert.Equal(t, first.MatchID, second.MatchID, "double approval yields the same match")
	assert.Len(t, repo.matches, 1)
}

func TestApproveApplicationNotOwner(t *testing.T) {
	repo := newFakeRepository()
	seedApplication(repo)
	svc := NewService(repo, &fakeNotifier{})

	_, err := svc.ApproveApplication(context.Background(), 99, &ApproveRequest{JobID: 10, ApplicantID: 1})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestApproveApplicationUnknownJob(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeNotifier{})

	_, err := svc.ApproveApplication(context.Background(), 2, &ApproveRequest{JobID: 77, ApplicantID: 1})
	assert.ErrorIs(t, err, ErrUnauthorized, "missing job and foreign job look the same")
}

func TestApproveApplicationWithoutApplication(t *testing.T) {
	repo := newFakeRepository()
	repo.jobOwners[10] = 2
	svc := NewService(repo, &fakeNotifier{})

	_, err := svc.ApproveApplication(context.Background(), 2, &ApproveRequest{JobID: 10, ApplicantID: 1})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, repo.matches)
}

func TestUnmatchDeletesConversationFirst(t *testing.T) {
	repo := newFakeRepository()
	repo.matches[5] = &Match{ID: 5, JobID: 10, WorkerID: 1, EmployerID: 2}
	svc := NewService(repo, &fakeNotifier{})

	require.NoError(t, svc.Unmatch(context.Background(), 1, 5))

	assert.Equal(t, []int64{5}, repo.deletedConvos)
	assert.Equal(t, []int64{5}, repo.deletedMatches)
}

func TestUnmatchSurvivesConversationDeleteFailure(t *testing.T) {
	repo := newFakeRepository()
	repo.matches[5] = &Match{ID: 5, JobID: 10, WorkerID: 1, EmployerID: 2}
	repo.conversationErr = errors.New("conversation table locked")
	svc := NewService(repo, &fakeNotifier{})

	require.NoError(t, svc.Unmatch(context.Background(), 2, 5))
	assert.Equal(t, []int64{5}, repo.deletedMatches, "match removed despite conversation failure")
}

func TestUnmatchByStranger(t *testing.T) {
	repo := newFakeRepository()
	repo.matches[5] = &Match{ID: 5, JobID: 10, WorkerID: 1, EmployerID: 2}
	svc := NewService(repo, &fakeNotifier{})

	err := svc.Unmatch(context.Background(), 42, 5)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, repo.deletedMatches)
}

func TestUnmatchMissing(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeNotifier{})

	err := svc.Unmatch(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestOpenMatchPerSide(t *testing.T) {
	repo := newFakeRepository()
	repo.matches[5] = &Match{ID: 5, JobID: 10, WorkerID: 1, EmployerID: 2}
	svc := NewService(repo, &fakeNotifier{})

	ctx := context.Background()
	require.NoError(t, svc.OpenMatch(ctx, 1, 5))
	assert.True(t, repo.matches[5].IsOpenedByWorker)
	assert.False(t, repo.matches[5].IsOpenedByEmployer)

	require.NoError(t, svc.OpenMatch(ctx, 2, 5))
	assert.True(t, repo.matches[5].IsOpenedByEmployer)

	assert.ErrorIs(t, svc.OpenMatch(ctx, 42, 5), ErrUnauthorized)
}
