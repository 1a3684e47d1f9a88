// internal/auth/models.go

package auth

import (
	"time"
)

// User roles
const (
	RoleWorker   = "worker"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// User statuses
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

// User represents an account on the platform. Workers and employers
// share the same table; role-specific data lives in the profiles package.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	City         *string    `json:"city,omitempty" db:"city"`
	Region       *string    `json:"region,omitempty" db:"region"`
	SwipeCredits int        `json:"swipe_credits" db:"swipe_credits"`
	BoostCredits int        `json:"boost_credits" db:"boost_credits"`
	Status       string     `json:"status" db:"status"`
	IsVerified   bool       `json:"is_verified" db:"is_verified"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty" db:"last_active_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Principal is the authenticated caller resolved once at the middleware
// boundary. Handlers never probe token or session shapes themselves.
type Principal struct {
	ID   int64
	Role string
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Request/response DTOs

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=worker employer"`
	City     string `json:"city,omitempty" validate:"omitempty,max=100"`
	Region   string `json:"region,omitempty" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthResponse struct {
	User   *User      `json:"user"`
	Tokens *TokenPair `json:"tokens"`
}
