package swipes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyResetSkipsSubscribedUsers(t *testing.T) {
	repo := newFakeRepository()
	repo.credits[1] = 0
	repo.credits[2] = 3
	repo.subscribed[2] = true

	sched := NewScheduler(repo, &SchedulerConfig{
		DailySwipeCredits:   10,
		MonthlyBoostCredits: 1,
		ResetHour:           9,
	})
	sched.resetSwipeCredits()

	assert.Equal(t, 10, repo.credits[1], "free-tier worker topped up")
	assert.Equal(t, 3, repo.credits[2], "paid subscriber keeps the purchased balance")
}

func TestMonthlyBoostGrantSkipsSubscribedUsers(t *testing.T) {
	repo := newFakeRepository()
	repo.boostCredits[1] = 0
	repo.boostCredits[2] = 4
	repo.subscribed[2] = true

	sched := NewScheduler(repo, &SchedulerConfig{
		DailySwipeCredits:   10,
		MonthlyBoostCredits: 2,
		ResetHour:           9,
	})
	sched.grantBoostCredits()

	assert.Equal(t, 2, repo.boostCredits[1])
	assert.Equal(t, 4, repo.boostCredits[2], "paid subscriber is excluded from the grant")
}

func TestUntilNextHour(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, loc)

	// Reset hour still ahead today.
	d := untilNextHour(now, 20)
	assert.Equal(t, 5*time.Hour+30*time.Minute, d)

	// Reset hour already passed, rolls to tomorrow.
	d = untilNextHour(now, 0)
	assert.Equal(t, 9*time.Hour+30*time.Minute, d)

	// Exactly at the reset instant rolls a full day forward.
	at := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	assert.Equal(t, 24*time.Hour, untilNextHour(at, 0))
}

func TestUntilNextMonth(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, loc)

	d := untilNextMonth(now, 0)
	next := now.Add(d)
	assert.Equal(t, time.April, next.Month())
	assert.Equal(t, 1, next.Day())
	assert.Equal(t, 0, next.Hour())

	// Works across the year boundary.
	dec := time.Date(2026, 12, 31, 23, 0, 0, 0, loc)
	next = dec.Add(untilNextMonth(dec, 0))
	assert.Equal(t, 2027, next.Year())
	assert.Equal(t, time.January, next.Month())
	assert.Equal(t, 1, next.Day())
}
