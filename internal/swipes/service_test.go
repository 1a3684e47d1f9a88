package swipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindapp/kind-backend/internal/common/cache"
)

// fakeRepository is an in-memory swipe ledger with a credit counter.
type fakeRepository struct {
	credits      map[int64]int
	boostCredits map[int64]int
	interactions []*Interaction
	nextID       int64
	workers      map[int64]*WorkerView
	jobs         map[int64]*JobView
	candidates   []*JobView
	subscribed   map[int64]bool

	consumeErr error
	insertErr  error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		credits:      map[int64]int{},
		boostCredits: map[int64]int{},
		workers:      map[int64]*WorkerView{},
		jobs:         map[int64]*JobView{},
		subscribed:   map[int64]bool{},
	}
}

func (f *fakeRepository) ConsumeSwipeCredit(ctx context.Context, workerID int64) (int, error) {
	if f.consumeErr != nil {
		return 0, f.consumeErr
	}
	if f.credits[workerID] < 1 {
		return 0, ErrNoCredits
	}
	f.credits[workerID]--
	return f.credits[workerID], nil
}

func (f *fakeRepository) RefundSwipeCredit(ctx context.Context, workerID int64) error {
	f.credits[workerID]++
	return nil
}

func (f *fakeRepository) InsertInteraction(ctx context.Context, in *Interaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, existing := range f.interactions {
		if existing.WorkerID == in.WorkerID && existing.JobID == in.JobID && !existing.IsRewound {
			return ErrAlreadySwiped
		}
	}
	f.nextID++
	in.ID = f.nextID
	in.CreatedAt = time.Now()
	f.interactions = append(f.interactions, in)
	return nil
}

func (f *fakeRepository) GetMostRecentInteraction(ctx context.Context, workerID int64) (*Interaction, error) {
	var latest *Interaction
	for _, in := range f.interactions {
		if in.WorkerID != workerID || in.IsRewound {
			continue
		}
		if latest == nil || in.ID > latest.ID {
			latest = in
		}
	}
	return latest, nil
}

func (f *fakeRepository) RewindMostRecent(ctx context.Context, workerID int64) (int64, error) {
	latest, _ := f.GetMostRecentInteraction(ctx, workerID)
	if latest == nil {
		return 0, ErrNothingToRewind
	}
	latest.IsRewound = true
	return latest.JobID, nil
}

func (f *fakeRepository) HasActiveApplication(ctx context.Context, workerID, jobID int64) (bool, error) {
	for _, in := range f.interactions {
		if in.WorkerID == workerID && in.JobID == jobID && in.Action == ActionApply && !in.IsRewound {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) GetWorkerView(ctx context.Context, workerID int64) (*WorkerView, error) {
	w, ok := f.workers[workerID]
	if !ok {
		return nil, ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeRepository) GetActiveJobView(ctx context.Context, jobID int64) (*JobView, error) {
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, ErrJobNotAvailable
	}
	return j, nil
}

func (f *fakeRepository) ListCandidateJobs(ctx context.Context, workerID int64) ([]*JobView, error) {
	return f.candidates, nil
}

func (f *fakeRepository) GetCredits(ctx context.Context, userID int64) (int, int, error) {
	return f.credits[userID], f.boostCredits[userID], nil
}

func (f *fakeRepository) ResetDailySwipeCredits(ctx context.Context, amount int) (int64, error) {
	var n int64
	for id, c := range f.credits {
		if f.subscribed[id] || c >= amount {
			continue
		}
		f.credits[id] = amount
		n++
	}
	return n, nil
}

func (f *fakeRepository) GrantMonthlyBoostCredits(ctx context.Context, amount int) (int64, error) {
	var n int64
	for id := range f.boostCredits {
		if f.subscribed[id] {
			continue
		}
		f.boostCredits[id] += amount
		n++
	}
	return n, nil
}

// fakeNotifier records application events.
type fakeNotifier struct {
	applications []int64
}

func (f *fakeNotifier) ApplicationReceived(ctx context.Context, employerID, workerID, jobID int64, jobTitle string) {
	f.applications = append(f.applications, jobID)
}

func newTestService(repo *fakeRepository, notifier Notifier) Service {
	return NewService(repo, cache.NewTTLCache(time.Minute), notifier, &Config{
		FeedCacheTTL:        time.Minute,
		FeedLimit:           50,
		RewindRefundsCredit: false,
	})
}

func seedJob(repo *fakeRepository, id int64) *JobView {
	job := &JobView{ID: id, EmployerID: 100, Title: "Cook", JobType: "kitchen"}
	repo.jobs[id] = job
	return job
}

func TestPerformSwipeConsumesCredit(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 3
	seedJob(repo, 10)
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.PerformSwipe(context.Background(), 1, &SwipeRequest{JobID: 10, Action: ActionApply})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CreditsRemaining)
	assert.Equal(t, ActionApply, resp.Action)
	assert.NotZero(t, resp.InteractionID)
	assert.Equal(t, []int64{10}, notifier.applications)
}

func TestPerformSwipeSkipAlsoConsumesCredit(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 1
	seedJob(repo, 10)
	notifier := &fakeNotifier{}
	svc := newTestService(repo, notifier)

	resp, err := svc.PerformSwipe(context.Background(), 1, &SwipeRequest{JobID: 10, Action: ActionSkip})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.CreditsRemaining)
	assert.Empty(t, notifier.applications, "skip must not notify the employer")
}

func TestPerformSwipeNoCredits(t *testing.T) {
	repo := newFakeRepository()
	seedJob(repo, 10)
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.PerformSwipe(context.Background(), 1, &SwipeRequest{JobID: 10, Action: ActionApply})
	assert.ErrorIs(t, err, ErrNoCredits)
	assert.Empty(t, repo.interactions, "no ledger row without a credit")
}

func TestPerformSwipeFailsClosedOnCreditError(t *testing.T) {
	repo := newFakeRepository()
	seedJob(repo, 10)
	repo.consumeErr = errors.New("connection reset")
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.PerformSwipe(context.Background(), 1, &SwipeRequest{JobID: 10, Action: ActionApply})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredits)
	assert.Empty(t, repo.interactions)
}

func TestPerformSwipeDuplicateRefundsCredit(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 5
	seedJob(repo, 10)
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.PerformSwipe(context.Background(), 1, &SwipeRequest{JobID: 10, Action: ActionApply})
	require.NoError(t, err)

	_, err = svc.PerformSwipe(context.Background(), 1, &SwipeRequest{JobID: 10, Action: ActionApply})
	assert.ErrorIs(t, err, ErrAlreadySwiped)
	assert.Equal(t, 4, repo.credits[1], "duplicate swipe must cost nothing")
	assert.Len(t, repo.interactions, 1)
}

func TestPerformSwipeUnknownJob(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 1
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.PerformSwipe(context.Background(), 1, &SwipeRequest{JobID: 99, Action: ActionApply})
	assert.ErrorIs(t, err, ErrJobNotAvailable)
	assert.Equal(t, 1, repo.credits[1], "credit untouched when the job is gone")
}

func TestRewindMostRecentSwipe(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 5
	seedJob(repo, 10)
	seedJob(repo, 11)
	svc := newTestService(repo, &fakeNotifier{})

	ctx := context.Background()
	_, err := svc.PerformSwipe(ctx, 1, &SwipeRequest{JobID: 10, Action: ActionSkip})
	require.NoError(t, err)
	_, err = svc.PerformSwipe(ctx, 1, &SwipeRequest{JobID: 11, Action: ActionApply})
	require.NoError(t, err)

	resp, err := svc.Rewind(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.JobID, "rewind targets the latest swipe")
	assert.False(t, resp.CreditRefunded)

	// The rewound job can be swiped again.
	_, err = svc.PerformSwipe(ctx, 1, &SwipeRequest{JobID: 11, Action: ActionSkip})
	assert.NoError(t, err)
}

func TestRewindTwiceNeedsTwoSwipes(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 5
	seedJob(repo, 10)
	svc := newTestService(repo, &fakeNotifier{})

	ctx := context.Background()
	_, err := svc.PerformSwipe(ctx, 1, &SwipeRequest{JobID: 10, Action: ActionApply})
	require.NoError(t, err)

	_, err = svc.Rewind(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Rewind(ctx, 1)
	assert.ErrorIs(t, err, ErrNothingToRewind, "single-step rewind only")
}

func TestRewindEmptyLedger(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo, &fakeNotifier{})

	_, err := svc.Rewind(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNothingToRewind)
}

func TestRewindRefundPolicy(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 1
	seedJob(repo, 10)
	svc := NewService(repo, cache.NewTTLCache(time.Minute), &fakeNotifier{}, &Config{
		FeedCacheTTL:        time.Minute,
		FeedLimit:           50,
		RewindRefundsCredit: true,
	})

	ctx := context.Background()
	_, err := svc.PerformSwipe(ctx, 1, &SwipeRequest{JobID: 10, Action: ActionApply})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.credits[1])

	resp, err := svc.Rewind(ctx, 1)
	require.NoError(t, err)
	assert.True(t, resp.CreditRefunded)
	assert.Equal(t, 1, repo.credits[1])
}

func TestGetMatchedJobsOrdersByScore(t *testing.T) {
	repo := newFakeRepository()
	boosted := time.Now().Add(time.Hour)
	repo.workers[1] = &WorkerView{
		UserID:            1,
		PreferredJobTypes: []string{"kitchen"},
		Skills:            []string{"cooking"},
	}
	repo.candidates = []*JobView{
		{ID: 2, JobType: "construction", BoostExpiresAt: &boosted},
		{ID: 3, JobType: "kitchen"},
		{ID: 1, JobType: "kitchen", RequiredSkills: []string{"cooking"}},
	}
	svc := newTestService(repo, &fakeNotifier{})

	feed, err := svc.GetMatchedJobs(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, int64(1), feed[0].Job.ID, "best score first")
	assert.Equal(t, int64(3), feed[1].Job.ID)
	assert.Equal(t, int64(2), feed[2].Job.ID, "a boost never outranks a better score")
	assert.Greater(t, feed[0].Score, feed[1].Score)
}

func TestGetMatchedJobsBoostBreaksTies(t *testing.T) {
	repo := newFakeRepository()
	boosted := time.Now().Add(time.Hour)
	repo.workers[1] = &WorkerView{
		UserID:            1,
		PreferredJobTypes: []string{"kitchen"},
	}
	repo.candidates = []*JobView{
		{ID: 1, JobType: "kitchen"},
		{ID: 2, JobType: "kitchen", BoostExpiresAt: &boosted},
	}
	svc := newTestService(repo, &fakeNotifier{})

	feed, err := svc.GetMatchedJobs(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	assert.Equal(t, feed[0].Score, feed[1].Score)
	assert.Equal(t, int64(2), feed[0].Job.ID, "boosted post wins the tie")
}

func TestGetMatchedJobsPaginatesAfterSorting(t *testing.T) {
	repo := newFakeRepository()
	repo.workers[1] = &WorkerView{
		UserID:            1,
		PreferredJobTypes: []string{"kitchen"},
		Skills:            []string{"cooking"},
	}
	repo.candidates = []*JobView{
		{ID: 1, JobType: "construction"},
		{ID: 2, JobType: "kitchen", RequiredSkills: []string{"cooking"}},
		{ID: 3, JobType: "kitchen"},
	}
	svc := newTestService(repo, &fakeNotifier{})

	ctx := context.Background()
	page, err := svc.GetMatchedJobs(ctx, 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(3), page[0].Job.ID, "offset counts in score order, not insertion order")

	page, err = svc.GetMatchedJobs(ctx, 1, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestGetMatchedJobsWithoutProfile(t *testing.T) {
	repo := newFakeRepository()
	repo.candidates = []*JobView{{ID: 1, JobType: "kitchen"}}
	svc := newTestService(repo, &fakeNotifier{})

	feed, err := svc.GetMatchedJobs(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, 0, feed[0].Score)
	assert.Empty(t, feed[0].Reasons)
}

func TestGetMatchedJobsUsesCache(t *testing.T) {
	repo := newFakeRepository()
	repo.candidates = []*JobView{{ID: 1, JobType: "kitchen"}}
	svc := newTestService(repo, &fakeNotifier{})

	ctx := context.Background()
	_, err := svc.GetMatchedJobs(ctx, 1, 10, 0)
	require.NoError(t, err)

	// A repo change is invisible until the cache is invalidated.
	repo.candidates = nil
	feed, err := svc.GetMatchedJobs(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestGetCredits(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 7
	repo.boostCredits[1] = 2
	svc := newTestService(repo, &fakeNotifier{})

	resp, err := svc.GetCredits(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.SwipeCredits)
	assert.Equal(t, 2, resp.BoostCredits)
}
