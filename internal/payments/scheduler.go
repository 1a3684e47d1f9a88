// internal/payments/scheduler.go
// Hourly sweep expiring lapsed subscriptions so the credit schedulers
// start topping those users up again.

package payments

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	repo Repository
	stop chan struct{}
}

func NewScheduler(repo Repository) *Scheduler {
	return &Scheduler{repo: repo, stop: make(chan struct{})}
}

func (s *Scheduler) Start() {
	go s.run()
	log.Println("Subscription expiry scheduler started")
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(time.Hour)
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
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.repo.ExpireSubscriptions(ctx)
	if err != nil {
		log.Printf("Subscription expiry sweep failed: %v", err)
		return
	}
	if n > 0 {
		subscriptionsExpired.Add(float64(n))
		log.Printf("Subscription expiry sweep expired %d subscriptions", n)
	}
}
