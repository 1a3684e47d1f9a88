// internal/profiles/models.go

package profiles

import (
	"time"

	"github.com/lib/pq"
)

// Availability values for worker profiles.
const (
	AvailabilityFullTime  = "full_time"
	AvailabilityPartTime  = "part_time"
	AvailabilityFlexible  = "flexible"
	AvailabilityUnavailable = "unavailable"
)

// WorkerProfile is the searchable profile of a worker. The matching
// scorer reads skills, preferred job types, salary expectations and
// location from here.
type WorkerProfile struct {
	ID                int64          `db:"id" json:"id"`
	UserID            int64          `db:"user_id" json:"user_id"`
	DisplayName       string         `db:"display_name" json:"display_name"`
	Bio               *string        `db:"bio" json:"bio,omitempty"`
	Skills            pq.StringArray `db:"skills" json:"skills"`
	PreferredJobTypes pq.StringArray `db:"preferred_job_types" json:"preferred_job_types"`
	ExpectedSalaryMin *int           `db:"expected_salary_min" json:"expected_salary_min,omitempty"`
	ExpectedSalaryMax *int           `db:"expected_salary_max" json:"expected_salary_max,omitempty"`
	City              *string        `db:"city" json:"city,omitempty"`
	Region            *string        `db:"region" json:"region,omitempty"`
	Availability      string         `db:"availability" json:"availability"`
	ExperienceYears   int            `db:"experience_years" json:"experience_years"`
	AvatarURL         *string        `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// EmployerProfile describes the hiring side of the marketplace.
type EmployerProfile struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Website     *string   `db:"website" json:"website,omitempty"`
	City        *string   `db:"city" json:"city,omitempty"`
	Region      *string   `db:"region" json:"region,omitempty"`
	LogoURL     *string   `db:"logo_url" json:"logo_url,omitempty"`
	IsVerified  bool      `db:"is_verified" json:"is_verified"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
