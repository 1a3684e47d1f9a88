// internal/jobs/models.go

package jobs

import (
	"time"

	"github.com/lib/pq"
)

// Job post lifecycle states.
const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusPaused = "paused"
	StatusClosed = "closed"
)

// JobPost is a position published by an employer. Workers discover
// active posts through the swipe feed.
type JobPost struct {
	ID             int64          `db:"id" json:"id"`
	EmployerID     int64          `db:"employer_id" json:"employer_id"`
	Title          string         `db:"title" json:"title"`
	Description    string         `db:"description" json:"description"`
	JobType        string         `db:"job_type" json:"job_type"`
	SalaryMin      *int           `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax      *int           `db:"salary_max" json:"salary_max,omitempty"`
	City           *string        `db:"city" json:"city,omitempty"`
	Region         *string        `db:"region" json:"region,omitempty"`
	RequiredSkills pq.StringArray `db:"required_skills" json:"required_skills"`
	ScheduleDays   pq.StringArray `db:"schedule_days" json:"schedule_days"`
	Shift          *string        `db:"shift" json:"shift,omitempty"`
	Status         string         `db:"status" json:"status"`
	BoostExpiresAt *time.Time     `db:"boost_expires_at" json:"boost_expires_at,omitempty"`
	ExpiresAt      *time.Time     `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// IsBoosted reports whether the post currently has an active boost.
func (j *JobPost) IsBoosted(now time.Time) bool {
	return j.BoostExpiresAt != nil && j.BoostExpiresAt.After(now)
}
