// internal/payments/models.go

package payments

import "time"

// Credit types purchasable through packages.
const (
	CreditTypeSwipe = "swipe"
	CreditTypeBoost = "boost"
)

// Payment transaction states.
const (
	TxPending   = "pending"
	TxSucceeded = "succeeded"
	TxFailed    = "failed"
)

// Transaction kinds.
const (
	KindPackage      = "package"
	KindSubscription = "subscription"
)

// Subscription tiers. Free is the implicit default and never stored as
// an active paid subscription.
const (
	TierFree = "free"
	TierPlus = "plus"
	TierPro  = "pro"
)

// CreditPackage is a one-off purchasable bundle of credits.
type CreditPackage struct {
	ID         int64   `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	CreditType string  `db:"credit_type" json:"credit_type"`
	Credits    int     `db:"credits" json:"credits"`
	Price      float64 `db:"price" json:"price"`
	Currency   string  `db:"currency" json:"currency"`
	IsActive   bool    `db:"is_active" json:"is_active"`
}

// SubscriptionPlan is a recurring tier with a daily swipe allowance.
type SubscriptionPlan struct {
	ID                int64   `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	Tier              string  `db:"tier" json:"tier"`
	Price             float64 `db:"price" json:"price"`
	Currency          string  `db:"currency" json:"currency"`
	DurationDays      int     `db:"duration_days" json:"duration_days"`
	DailySwipeCredits int     `db:"daily_swipe_credits" json:"daily_swipe_credits"`
	IsActive          bool    `db:"is_active" json:"is_active"`
}

// PaymentTransaction tracks one checkout from creation to settlement.
// The invoice id is what the provider echoes back on redirect.
type PaymentTransaction struct {
	ID        int64     `db:"id" json:"id"`
	InvoiceID string    `db:"invoice_id" json:"invoice_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Kind      string    `db:"kind" json:"kind"`
	PackageID *int64    `db:"package_id" json:"package_id,omitempty"`
	PlanID    *int64    `db:"plan_id" json:"plan_id,omitempty"`
	Amount    float64   `db:"amount" json:"amount"`
	Currency  string    `db:"currency" json:"currency"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UserSubscription is a user's active or expired paid tier.
type UserSubscription struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	PlanID    int64     `db:"plan_id" json:"plan_id"`
	Tier      string    `db:"tier" json:"tier"`
	Status    string    `db:"status" json:"status"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CheckoutPackageRequest struct {
	PackageID int64 `json:"package_id" validate:"required,min=1"`
}

type CheckoutSubscriptionRequest struct {
	PlanID int64 `json:"plan_id" validate:"required,min=1"`
}

type CheckoutResponse struct {
	InvoiceID  string `json:"invoice_id"`
	PaymentURL string `json:"payment_url"`
}
