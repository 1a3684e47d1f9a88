// internal/swipes/models.go

package swipes

import (
	"time"

	"github.com/lib/pq"
)

// Swipe actions a worker can record against a job.
const (
	ActionApply = "apply"
	ActionSkip  = "skip"
)

// Interaction is one row of the append-only swipe ledger. A rewind
// never deletes a row; it flips is_rewound on the latest one, so the
// full history stays auditable.
type Interaction struct {
	ID        int64     `db:"id" json:"id"`
	WorkerID  int64     `db:"worker_id" json:"worker_id"`
	JobID     int64     `db:"job_id" json:"job_id"`
	Action    string    `db:"action" json:"action"`
	Score     *int      `db:"score" json:"score,omitempty"`
	IsRewound bool      `db:"is_rewound" json:"is_rewound"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WorkerView is the slice of a worker profile the scorer needs.
type WorkerView struct {
	UserID            int64          `db:"user_id"`
	Skills            pq.StringArray `db:"skills"`
	PreferredJobTypes pq.StringArray `db:"preferred_job_types"`
	ExpectedSalaryMin *int           `db:"expected_salary_min"`
	ExpectedSalaryMax *int           `db:"expected_salary_max"`
	City              *string        `db:"city"`
	Region            *string        `db:"region"`
}

// JobView is the slice of a job post the scorer and feed need.
type JobView struct {
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
	BoostExpiresAt *time.Time     `db:"boost_expires_at" json:"boost_expires_at,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// ScoredJob pairs a candidate job with its compatibility score for the
// worker requesting the feed.
type ScoredJob struct {
	Job       *JobView       `json:"job"`
	Score     int            `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Reasons   []string       `json:"reasons"`
}
