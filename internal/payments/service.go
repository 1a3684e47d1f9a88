// internal/payments/service.go

package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrBadSignature   = errors.New("invalid payment signature")
	ErrAmountMismatch = errors.New("payment amount does not match invoice")
)

// Notifier is implemented by the notifications package.
type Notifier interface {
	PaymentSucceeded(ctx context.Context, userID int64, invoiceID string, amount float64, currency string)
	CreditsGranted(ctx context.Context, userID int64, creditType string, amount int)
}

type Service interface {
	ListPackages(ctx context.Context) ([]*CreditPackage, error)
	ListPlans(ctx context.Context) ([]*SubscriptionPlan, error)
	CreatePackageCheckout(ctx context.Context, userID int64, req *CheckoutPackageRequest) (*CheckoutResponse, error)
	CreateSubscriptionCheckout(ctx context.Context, userID int64, req *CheckoutSubscriptionRequest) (*CheckoutResponse, error)
	HandleSuccess(ctx context.Context, invoiceID, outSum, signature string) error
	HandleFailure(ctx context.Context, invoiceID string) error
	GetActiveSubscription(ctx context.Context, userID int64) (*UserSubscription, error)
}

type service struct {
	repo     Repository
	provider *CheckoutProvider
	notifier Notifier
}

func NewService(repo Repository, provider *CheckoutProvider, notifier Notifier) Service {
	return &service{repo: repo, provider: provider, notifier: notifier}
}

func (s *service) ListPackages(ctx context.Context) ([]*CreditPackage, error) {
	return s.repo.ListPackages(ctx)
}

func (s *service) ListPlans(ctx context.Context) ([]*SubscriptionPlan, error) {
	return s.repo.ListPlans(ctx)
}

func (s *service) CreatePackageCheckout(ctx context.Context, userID int64, req *CheckoutPackageRequest) (*CheckoutResponse, error) {
	pkg, err := s.repo.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	tx := &PaymentTransaction{
		InvoiceID: uuid.New().String(),
		UserID:    userID,
		Kind:      KindPackage,
		PackageID: &pkg.ID,
		Amount:    pkg.Price,
		Currency:  pkg.Currency,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create payment transaction: %w", err)
	}

	description := fmt.Sprintf("%s (%d %s credits)", pkg.Name, pkg.Credits, pkg.CreditType)
	transactionsCreated.WithLabelValues(KindPackage).Inc()

	return &CheckoutResponse{
		InvoiceID:  tx.InvoiceID,
		PaymentURL: s.provider.PaymentURL(tx.InvoiceID, tx.Amount, description),
	}, nil
}

func (s *service) CreateSubscriptionCheckout(ctx context.Context, userID int64, req *CheckoutSubscriptionRequest) (*CheckoutResponse, error) {
	plan, err := s.repo.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	tx := &PaymentTransaction{
		InvoiceID: uuid.New().String(),
		UserID:    userID,
		Kind:      KindSubscription,
		PlanID:    &plan.ID,
		Amount:    plan.Price,
		Currency:  plan.Currency,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create payment transaction: %w", err)
	}

	description := fmt.Sprintf("%s subscription (%d days)", plan.Name, plan.DurationDays)
	transactionsCreated.WithLabelValues(KindSubscription).Inc()

	return &CheckoutResponse{
		InvoiceID:  tx.InvoiceID,
		PaymentURL: s.provider.PaymentURL(tx.InvoiceID, tx.Amount, description),
	}, nil
}

// HandleSuccess settles a provider success redirect. Replays of an
// already-settled invoice succeed without crediting twice.
func (s *service) HandleSuccess(ctx context.Context, invoiceID, outSum, signature string) error {
	tx, err := s.repo.GetTransactionByInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	// The signature is computed over the stored amount, but a reported
	// amount that disagrees with the invoice is rejected outright.
	if outSum != formatAmount(tx.Amount) {
		return ErrAmountMismatch
	}
	if !s.provider.VerifyResultSignature(tx.Amount, invoiceID, signature) {
		return ErrBadSignature
	}

	var settled *PaymentTransaction
	switch tx.Kind {
	case KindSubscription:
		settled, err = s.repo.SettleSubscriptionPurchase(ctx, invoiceID)
	default:
		settled, err = s.repo.SettlePackagePurchase(ctx, invoiceID)
	}
	if errors.Is(err, ErrAlreadySettled) {
		return nil
	}
	if err != nil {
		return err
	}

	transactionsSettled.WithLabelValues(settled.Kind, TxSucceeded).Inc()

	if s.notifier != nil {
		s.notifier.PaymentSucceeded(ctx, settled.UserID, settled.InvoiceID, settled.Amount, settled.Currency)
		if settled.Kind == KindPackage && settled.PackageID != nil {
			if pkg, pkgErr := s.repo.GetPackage(ctx, *settled.PackageID); pkgErr == nil {
				s.notifier.CreditsGranted(ctx, settled.UserID, pkg.CreditType, pkg.Credits)
			}
		}
	}
	return nil
}

func (s *service) HandleFailure(ctx context.Context, invoiceID string) error {
	if err := s.repo.MarkFailed(ctx, invoiceID); err != nil {
		return err
	}
	transactionsSettled.WithLabelValues("any", TxFailed).Inc()
	return nil
}

func (s *service) GetActiveSubscription(ctx context.Context, userID int64) (*UserSubscription, error) {
	return s.repo.GetActiveSubscription(ctx, userID)
}
