// internal/swipes/service.go

package swipes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/kindapp/kind-backend/internal/common/cache"
)

// Notifier is implemented by the notifications package. Failures are
// logged, never propagated to the swiping worker.
type Notifier interface {
	ApplicationReceived(ctx context.Context, employerID, workerID, jobID int64, jobTitle string)
}

type Config struct {
	FeedCacheTTL        time.Duration
	FeedLimit           int
	RewindRefundsCredit bool
}

type Service interface {
	PerformSwipe(ctx context.Context, workerID int64, req *SwipeRequest) (*SwipeResponse, error)
	Rewind(ctx context.Context, workerID int64) (*RewindResponse, error)
	GetMatchedJobs(ctx context.Context, workerID int64, limit, offset int) ([]*ScoredJob, error)
	GetCredits(ctx context.Context, userID int64) (*CreditsResponse, error)
}

type service struct {
	repo      Repository
	feedCache *cache.TTLCache
	notifier  Notifier
	config    *Config
}

func NewService(repo Repository, feedCache *cache.TTLCache, notifier Notifier, config *Config) Service {
	return &service{
		repo:      repo,
		feedCache: feedCache,
		notifier:  notifier,
		config:    config,
	}
}

// PerformSwipe records one ledger row for the worker against a job.
// Both apply and skip consume a swipe credit. The credit is consumed
// before the insert; if the insert then hits the active-interaction
// uniqueness constraint the credit is refunded, so a duplicate swipe
// costs nothing.
func (s *service) PerformSwipe(ctx context.Context, workerID int64, req *SwipeRequest) (*SwipeResponse, error) {
	job, err := s.repo.GetActiveJobView(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	remaining, err := s.repo.ConsumeSwipeCredit(ctx, workerID)
	if err != nil {
		if errors.Is(err, ErrNoCredits) {
			swipeLimitHits.Inc()
			return nil, err
		}
		// Fail closed: an unknown persistence error means no swipe.
		return nil, fmt.Errorf("failed to consume swipe credit: %w", err)
	}

	score := s.scoreFor(ctx, workerID, job)

	interaction := &Interaction{
		WorkerID: workerID,
		JobID:    req.JobID,
		Action:   req.Action,
		Score:    &score,
	}
	if err := s.repo.InsertInteraction(ctx, interaction); err != nil {
		if refundErr := s.repo.RefundSwipeCredit(ctx, workerID); refundErr != nil {
			log.Printf("Failed to refund swipe credit for user %d: %v", workerID, refundErr)
		}
		return nil, err
	}

	swipesTotal.WithLabelValues(req.Action).Inc()
	s.feedCache.Invalidate(feedCacheKey(workerID))

	if req.Action == ActionApply && s.notifier != nil {
		s.notifier.ApplicationReceived(ctx, job.EmployerID, workerID, job.ID, job.Title)
	}

	return &SwipeResponse{
		InteractionID:    interaction.ID,
		JobID:            req.JobID,
		Action:           req.Action,
		Score:            score,
		CreditsRemaining: remaining,
	}, nil
}

// Rewind undoes the worker's most recent swipe. Whether the consumed
// credit comes back is a policy decision, off by default.
func (s *service) Rewind(ctx context.Context, workerID int64) (*RewindResponse, error) {
	jobID, err := s.repo.RewindMostRecent(ctx, workerID)
	if err != nil {
		return nil, err
	}

	rewindsTotal.Inc()
	s.feedCache.Invalidate(feedCacheKey(workerID))

	refunded := false
	if s.config.RewindRefundsCredit {
		if err := s.repo.RefundSwipeCredit(ctx, workerID); err != nil {
			log.Printf("Failed to refund rewind credit for user %d: %v", workerID, err)
		} else {
			refunded = true
		}
	}

	return &RewindResponse{JobID: jobID, CreditRefunded: refunded}, nil
}

// GetMatchedJobs returns the worker's scored feed. Every active
// non-interacted job is scored, the full set is sorted by score with a
// boost breaking ties, and only then is the page cut. The sorted feed
// is memoized per worker in a short-TTL process cache and invalidated
// on every swipe and rewind.
func (s *service) GetMatchedJobs(ctx context.Context, workerID int64, limit, offset int) ([]*ScoredJob, error) {
	if limit <= 0 || limit > s.config.FeedLimit {
		limit = s.config.FeedLimit
	}

	key := feedCacheKey(workerID)
	if cached, ok := s.feedCache.Get(key); ok {
		feedCacheHits.Inc()
		return pageFeed(cached.([]*ScoredJob), limit, offset), nil
	}
	feedCacheMisses.Inc()

	jobs, err := s.repo.ListCandidateJobs(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate jobs: %w", err)
	}

	worker, err := s.repo.GetWorkerView(ctx, workerID)
	if err != nil && !errors.Is(err, ErrWorkerNotFound) {
		return nil, err
	}

	now := time.Now()
	feed := make([]*ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		scored := &ScoredJob{Job: job, Reasons: []string{}}
		if worker != nil {
			result := ScoreJob(worker, job)
			scored.Score = result.Total
			scored.Breakdown = result.Breakdown
			scored.Reasons = result.Reasons
			matchScores.Observe(float64(result.Total))
		}
		feed = append(feed, scored)
	}

	// Best score first. A boost only decides between equal scores;
	// remaining ties keep the newest-first repository order.
	sort.SliceStable(feed, func(i, j int) bool {
		if feed[i].Score != feed[j].Score {
			return feed[i].Score > feed[j].Score
		}
		bi := feed[i].Job.BoostExpiresAt != nil && feed[i].Job.BoostExpiresAt.After(now)
		bj := feed[j].Job.BoostExpiresAt != nil && feed[j].Job.BoostExpiresAt.After(now)
		return bi && !bj
	})

	s.feedCache.Set(key, feed)
	return pageFeed(feed, limit, offset), nil
}

func pageFeed(feed []*ScoredJob, limit, offset int) []*ScoredJob {
	if offset < 0 || offset >= len(feed) {
		return []*ScoredJob{}
	}
	page := feed[offset:]
	if len(page) > limit {
		page = page[:limit]
	}
	return page
}

func (s *service) GetCredits(ctx context.Context, userID int64) (*CreditsResponse, error) {
	swipe, boost, err := s.repo.GetCredits(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &CreditsResponse{SwipeCredits: swipe, BoostCredits: boost}, nil
}

// scoreFor computes the compatibility score for the ledger row. A
// missing worker profile scores 0 rather than blocking the swipe.
func (s *service) scoreFor(ctx context.Context, workerID int64, job *JobView) int {
	worker, err := s.repo.GetWorkerView(ctx, workerID)
	if err != nil {
		return 0
	}
	return ScoreJob(worker, job).Total
}

func feedCacheKey(workerID int64) string {
	return fmt.Sprintf("feed:%d", workerID)
}
