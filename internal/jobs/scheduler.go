// internal/jobs/scheduler.go
// Background sweep that closes job posts past their expiry date.

package jobs

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	repo     Repository
	interval time.Duration
	stop     chan struct{}
}

func NewScheduler(repo Repository) *Scheduler {
	return &Scheduler{
		repo:     repo,
		interval: time.Hour,
		stop:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
	log.Println("Job expiry scheduler started")
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	closed, err := s.repo.CloseExpiredJobs(ctx)
	if err != nil {
		log.Printf("Job expiry sweep failed: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("Job expiry sweep closed %d posts", closed)
	}
}
