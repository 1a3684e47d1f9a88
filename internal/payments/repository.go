// internal/payments/repository.go

package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrPackageNotFound     = errors.New("credit package not found")
	ErrPlanNotFound        = errors.New("subscription plan not found")
	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrAlreadySettled      = errors.New("transaction already settled")
)

type Repository interface {
	ListPackages(ctx context.Context) ([]*CreditPackage, error)
	GetPackage(ctx context.Context, packageID int64) (*CreditPackage, error)
	ListPlans(ctx context.Context) ([]*SubscriptionPlan, error)
	GetPlan(ctx context.Context, planID int64) (*SubscriptionPlan, error)
	CreateTransaction(ctx context.Context, tx *PaymentTransaction) error
	GetTransactionByInvoice(ctx context.Context, invoiceID string) (*PaymentTransaction, error)
	SettlePackagePurchase(ctx context.Context, invoiceID string) (*PaymentTransaction, error)
	SettleSubscriptionPurchase(ctx context.Context, invoiceID string) (*PaymentTransaction, error)
	MarkFailed(ctx context.Context, invoiceID string) error
	GetActiveSubscription(ctx context.Context, userID int64) (*UserSubscription, error)
	ExpireSubscriptions(ctx context.Context) (int64, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListPackages(ctx context.Context) ([]*CreditPackage, error) {
	packages := []*CreditPackage{}
	err := r.db.SelectContext(ctx, &packages,
		`SELECT * FROM credit_packages WHERE is_active ORDER BY price`)
	return packages, err
}

func (r *postgresRepository) GetPackage(ctx context.Context, packageID int64) (*CreditPackage, error) {
	var p CreditPackage
	err := r.db.GetContext(ctx, &p,
		`SELECT * FROM credit_packages WHERE id = $1 AND is_active`, packageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) ListPlans(ctx context.Context) ([]*SubscriptionPlan, error) {
	plans := []*SubscriptionPlan{}
	err := r.db.SelectContext(ctx, &plans,
		`SELECT * FROM subscription_plans WHERE is_active ORDER BY price`)
	return plans, err
}

func (r *postgresRepository) GetPlan(ctx context.Context, planID int64) (*SubscriptionPlan, error) {
	var p SubscriptionPlan
	err := r.db.GetContext(ctx, &p,
		`SELECT * FROM subscription_plans WHERE id = $1 AND is_active`, planID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) CreateTransaction(ctx context.Context, tx *PaymentTransaction) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO payment_transactions (invoice_id, user_id, kind, package_id, plan_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		RETURNING id, created_at, updated_at
	`, tx.InvoiceID, tx.UserID, tx.Kind, tx.PackageID, tx.PlanID, tx.Amount, tx.Currency).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

func (r *postgresRepository) GetTransactionByInvoice(ctx context.Context, invoiceID string) (*PaymentTransaction, error) {
	var tx PaymentTransaction
	err := r.db.GetContext(ctx, &tx,
		`SELECT * FROM payment_transactions WHERE invoice_id = $1`, invoiceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// SettlePackagePurchase marks the transaction succeeded and credits
// the buyer in one database transaction. The status guard on the first
// UPDATE makes replayed success redirects no-ops.
func (r *postgresRepository) SettlePackagePurchase(ctx context.Context, invoiceID string) (*PaymentTransaction, error) {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback()

	tx, err := settleTransaction(ctx, dbTx, invoiceID)
	if err != nil {
		return nil, err
	}
	if tx.PackageID == nil {
		return nil, fmt.Errorf("transaction %s has no package", invoiceID)
	}

	var pkg CreditPackage
	if err := dbTx.GetContext(ctx, &pkg,
		`SELECT * FROM credit_packages WHERE id = $1`, *tx.PackageID); err != nil {
		return nil, err
	}

	column := "swipe_credits"
	if pkg.CreditType == CreditTypeBoost {
		column = "boost_credits"
	}
	_, err = dbTx.ExecContext(ctx,
		`UPDATE users SET `+column+` = `+column+` + $2, updated_at = NOW() WHERE id = $1`,
		tx.UserID, pkg.Credits)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, err
	}
	return tx, nil
}

// SettleSubscriptionPurchase marks the transaction succeeded and
// activates (or extends) the subscription.
func (r *postgresRepository) SettleSubscriptionPurchase(ctx context.Context, invoiceID string) (*PaymentTransaction, error) {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback()

	tx, err := settleTransaction(ctx, dbTx, invoiceID)
	if err != nil {
		return nil, err
	}
	if tx.PlanID == nil {
		return nil, fmt.Errorf("transaction %s has no plan", invoiceID)
	}

	var plan SubscriptionPlan
	if err := dbTx.GetContext(ctx, &plan,
		`SELECT * FROM subscription_plans WHERE id = $1`, *tx.PlanID); err != nil {
		return nil, err
	}

	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO user_subscriptions (user_id, plan_id, tier, status, starts_at, expires_at)
		VALUES ($1, $2, $3, 'active', NOW(), NOW() + ($4 || ' days')::interval)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_id = EXCLUDED.plan_id,
			tier = EXCLUDED.tier,
			status = 'active',
			starts_at = NOW(),
			expires_at = GREATEST(user_subscriptions.expires_at, NOW()) + ($4 || ' days')::interval
	`, tx.UserID, plan.ID, plan.Tier, plan.DurationDays)
	if err != nil {
		return nil, err
	}

	// Subscribers get their plan's daily allowance immediately.
	_, err = dbTx.ExecContext(ctx, `
		UPDATE users SET swipe_credits = GREATEST(swipe_credits, $2), updated_at = NOW()
		WHERE id = $1
	`, tx.UserID, plan.DailySwipeCredits)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(); err != nil {
		return nil, err
	}
	return tx, nil
}

func settleTransaction(ctx context.Context, dbTx *sqlx.Tx, invoiceID string) (*PaymentTransaction, error) {
	var tx PaymentTransaction
	err := dbTx.QueryRowxContext(ctx, `
		UPDATE payment_transactions SET status = 'succeeded', updated_at = NOW()
		WHERE invoice_id = $1 AND status = 'pending'
		RETURNING id, invoice_id, user_id, kind, package_id, plan_id, amount, currency, status, created_at, updated_at
	`, invoiceID).StructScan(&tx)
	if errors.Is(err, sql.ErrNoRows) {
		// Either unknown or already settled; disambiguate for the caller.
		var exists bool
		if checkErr := dbTx.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM payment_transactions WHERE invoice_id = $1)`,
			invoiceID); checkErr != nil {
			return nil, checkErr
		}
		if exists {
			return nil, ErrAlreadySettled
		}
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *postgresRepository) MarkFailed(ctx context.Context, invoiceID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions SET status = 'failed', updated_at = NOW()
		WHERE invoice_id = $1 AND status = 'pending'
	`, invoiceID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *postgresRepository) GetActiveSubscription(ctx context.Context, userID int64) (*UserSubscription, error) {
	var sub UserSubscription
	err := r.db.GetContext(ctx, &sub, `
		SELECT * FROM user_subscriptions
		WHERE user_id = $1 AND status = 'active' AND expires_at > NOW()
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *postgresRepository) ExpireSubscriptions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_subscriptions SET status = 'expired'
		WHERE status = 'active' AND expires_at <= NOW()
	`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
