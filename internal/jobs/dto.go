// internal/jobs/dto.go

package jobs

import "time"

type CreateJobRequest struct {
	Title          string   `json:"title" validate:"required,min=3,max=150"`
	Description    string   `json:"description" validate:"required,min=10,max=5000"`
	JobType        string   `json:"job_type" validate:"required,min=2,max=50"`
	SalaryMin      *int     `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      *int     `json:"salary_max" validate:"omitempty,min=0"`
	City           string   `json:"city" validate:"max=100"`
	Region         string   `json:"region" validate:"max=100"`
	RequiredSkills []string `json:"required_skills" validate:"max=30,dive,min=1,max=50"`
	ScheduleDays   []string `json:"schedule_days" validate:"max=7,dive,oneof=mon tue wed thu fri sat sun"`
	Shift          string   `json:"shift" validate:"omitempty,oneof=day night rotating"`
	ExpiresInDays  int      `json:"expires_in_days" validate:"omitempty,min=1,max=90"`
	Publish        bool     `json:"publish"`
}

type UpdateJobRequest struct {
	Title          *string  `json:"title" validate:"omitempty,min=3,max=150"`
	Description    *string  `json:"description" validate:"omitempty,min=10,max=5000"`
	JobType        *string  `json:"job_type" validate:"omitempty,min=2,max=50"`
	SalaryMin      *int     `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      *int     `json:"salary_max" validate:"omitempty,min=0"`
	City           *string  `json:"city" validate:"omitempty,max=100"`
	Region         *string  `json:"region" validate:"omitempty,max=100"`
	RequiredSkills []string `json:"required_skills" validate:"omitempty,max=30,dive,min=1,max=50"`
	ScheduleDays   []string `json:"schedule_days" validate:"omitempty,max=7,dive,oneof=mon tue wed thu fri sat sun"`
	Shift          *string  `json:"shift" validate:"omitempty,oneof=day night rotating"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused closed"`
}

type BoostResponse struct {
	JobID          int64     `json:"job_id"`
	BoostExpiresAt time.Time `json:"boost_expires_at"`
	BoostCredits   int       `json:"boost_credits_remaining"`
}
