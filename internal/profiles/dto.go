// internal/profiles/dto.go

package profiles

// UpsertWorkerProfileRequest creates or replaces the caller's worker profile.
type UpsertWorkerProfileRequest struct {
	DisplayName       string   `json:"display_name" validate:"required,min=2,max=100"`
	Bio               string   `json:"bio" validate:"max=2000"`
	Skills            []string `json:"skills" validate:"max=30,dive,min=1,max=50"`
	PreferredJobTypes []string `json:"preferred_job_types" validate:"max=10,dive,min=1,max=50"`
	ExpectedSalaryMin *int     `json:"expected_salary_min" validate:"omitempty,min=0"`
	ExpectedSalaryMax *int     `json:"expected_salary_max" validate:"omitempty,min=0"`
	City              string   `json:"city" validate:"max=100"`
	Region            string   `json:"region" validate:"max=100"`
	Availability      string   `json:"availability" validate:"omitempty,oneof=full_time part_time flexible unavailable"`
	ExperienceYears   int      `json:"experience_years" validate:"min=0,max=80"`
}

// UpsertEmployerProfileRequest creates or replaces the caller's employer profile.
type UpsertEmployerProfileRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=150"`
	Description string `json:"description" validate:"max=3000"`
	Website     string `json:"website" validate:"omitempty,url,max=200"`
	City        string `json:"city" validate:"max=100"`
	Region      string `json:"region" validate:"max=100"`
}
