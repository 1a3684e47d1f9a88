// internal/swipes/scheduler.go
// Scheduled credit sweeps. The daily sweep tops free-tier workers up
// to the daily swipe allowance; the monthly sweep grants boost
// credits. Users with an active paid subscription are excluded from
// both.

package swipes

import (
	"context"
	"log"
	"time"
)

type SchedulerConfig struct {
	DailySwipeCredits   int
	MonthlyBoostCredits int
	ResetHour           int
}

type Scheduler struct {
	repo   Repository
	config *SchedulerConfig
	stop   chan struct{}
}

func NewScheduler(repo Repository, config *SchedulerConfig) *Scheduler {
	return &Scheduler{
		repo:   repo,
		config: config,
		stop:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.runDaily()
	go s.runMonthly()
	log.Println("Credit schedulers started")
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

// runDaily fires at the configured hour every day.
func (s *Scheduler) runDaily() {
	for {
		timer := time.NewTimer(untilNextHour(time.Now(), s.config.ResetHour))
		select {
		case <-timer.C:
			s.resetSwipeCredits()
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}

// runMonthly fires on the first day of each month at the reset hour.
func (s *Scheduler) runMonthly() {
	for {
		timer := time.NewTimer(untilNextMonth(time.Now(), s.config.ResetHour))
		select {
		case <-timer.C:
			s.grantBoostCredits()
		case <-s.stop:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) resetSwipeCredits() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.repo.ResetDailySwipeCredits(ctx, s.config.DailySwipeCredits)
	if err != nil {
		log.Printf("Daily swipe credit reset failed: %v", err)
		return
	}
	creditsGranted.WithLabelValues("swipe").Add(float64(n))
	log.Printf("Daily swipe credit reset topped up %d users", n)
}

func (s *Scheduler) grantBoostCredits() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.repo.GrantMonthlyBoostCredits(ctx, s.config.MonthlyBoostCredits)
	if err != nil {
		log.Printf("Monthly boost credit grant failed: %v", err)
		return
	}
	creditsGranted.WithLabelValues("boost").Add(float64(n))
	log.Printf("Monthly boost credit grant reached %d users", n)
}

func untilNextHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func untilNextMonth(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), 1, hour, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return next.Sub(now)
}
