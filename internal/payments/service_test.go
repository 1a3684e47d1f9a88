package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	packages     map[int64]*CreditPackage
	plans        map[int64]*SubscriptionPlan
	transactions map[string]*PaymentTransaction

	packageSettlements      int
	subscriptionSettlements int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		packages:     map[int64]*CreditPackage{},
		plans:        map[int64]*SubscriptionPlan{},
		transactions: map[string]*PaymentTransaction{},
	}
}

func (f *fakeRepository) ListPackages(ctx context.Context) ([]*CreditPackage, error) {
	out := []*CreditPackage{}
	for _, p := range f.packages {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepository) GetPackage(ctx context.Context, packageID int64) (*CreditPackage, error) {
	p, ok := f.packages[packageID]
	if !ok {
		return nil, ErrPackageNotFound
	}
	return p, nil
}

func (f *fakeRepository) ListPlans(ctx context.Context) ([]*SubscriptionPlan, error) {
	out := []*SubscriptionPlan{}
	for _, p := range f.plans {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepository) GetPlan(ctx context.Context, planID int64) (*SubscriptionPlan, error) {
	p, ok := f.plans[planID]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

func (f *fakeRepository) CreateTransaction(ctx context.Context, tx *PaymentTransaction) error {
	tx.Status = TxPending
	tx.CreatedAt = time.Now()
	f.transactions[tx.InvoiceID] = tx
	return nil
}

func (f *fakeRepository) GetTransactionByInvoice(ctx context.Context, invoiceID string) (*PaymentTransaction, error) {
	tx, ok := f.transactions[invoiceID]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

func (f *fakeRepository) settle(invoiceID string) (*PaymentTransaction, error) {
	tx, ok := f.transactions[invoiceID]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	if tx.Status != TxPending {
		return nil, ErrAlreadySettled
	}
	tx.Status = TxSucceeded
	return tx, nil
}

func (f *fakeRepository) SettlePackagePurchase(ctx context.Context, invoiceID string) (*PaymentTransaction, error) {
	tx, err := f.settle(invoiceID)
	if err == nil {
		f.packageSettlements++
	}
	return tx, err
}

func (f *fakeRepository) SettleSubscriptionPurchase(ctx context.Context, invoiceID string) (*PaymentTransaction, error) {
	tx, err := f.settle(invoiceID)
	if err == nil {
		f.subscriptionSettlements++
	}
	return tx, err
}

func (f *fakeRepository) MarkFailed(ctx context.Context, invoiceID string) error {
	tx, ok := f.transactions[invoiceID]
	if !ok {
		return ErrTransactionNotFound
	}
	if tx.Status == TxPending {
		tx.Status = TxFailed
	}
	return nil
}

func (f *fakeRepository) GetActiveSubscription(ctx context.Context, userID int64) (*UserSubscription, error) {
	return nil, nil
}

func (f *fakeRepository) ExpireSubscriptions(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeNotifier struct {
	payments []string
	credits  []int
}

func (f *fakeNotifier) PaymentSucceeded(ctx context.Context, userID int64, invoiceID string, amount float64, currency string) {
	f.payments = append(f.payments, invoiceID)
}

func (f *fakeNotifier) CreditsGranted(ctx context.Context, userID int64, creditType string, amount int) {
	f.credits = append(f.credits, amount)
}

func seedPackage(repo *fakeRepository) *CreditPackage {
	pkg := &CreditPackage{
		ID: 1, Name: "Swipe Pack 10", CreditType: CreditTypeSwipe,
		Credits: 10, Price: 49, Currency: "PHP", IsActive: true,
	}
	repo.packages[pkg.ID] = pkg
	return pkg
}

func TestCreatePackageCheckout(t *testing.T) {
	repo := newFakeRepository()
	seedPackage(repo)
	svc := NewService(repo, testProvider(), &fakeNotifier{})

	resp, err := svc.CreatePackageCheckout(context.Background(), 5, &CheckoutPackageRequest{PackageID: 1})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.InvoiceID)
	assert.Contains(t, resp.PaymentURL, "checkout.example.com")

	tx := repo.transactions[resp.InvoiceID]
	require.NotNil(t, tx)
	assert.Equal(t, TxPending, tx.Status)
	assert.Equal(t, KindPackage, tx.Kind)
	assert.Equal(t, int64(5), tx.UserID)
}

func TestCreatePackageCheckoutUnknownPackage(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testProvider(), &fakeNotifier{})

	_, err := svc.CreatePackageCheckout(context.Background(), 5, &CheckoutPackageRequest{PackageID: 9})
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestHandleSuccessSettlesAndNotifies(t *testing.T) {
	repo := newFakeRepository()
	seedPackage(repo)
	provider := testProvider()
	notifier := &fakeNotifier{}
	svc := NewService(repo, provider, notifier)

	ctx := context.Background()
	resp, err := svc.CreatePackageCheckout(ctx, 5, &CheckoutPackageRequest{PackageID: 1})
	require.NoError(t, err)

	sig := resultSignature(provider, 49, resp.InvoiceID)
	require.NoError(t, svc.HandleSuccess(ctx, resp.InvoiceID, "49.00", sig))

	assert.Equal(t, TxSucceeded, repo.transactions[resp.InvoiceID].Status)
	assert.Equal(t, []string{resp.InvoiceID}, notifier.payments)
	assert.Equal(t, []int{10}, notifier.credits)
}

func TestHandleSuccessReplayIsNoOp(t *testing.T) {
	repo := newFakeRepository()
	seedPackage(repo)
	provider := testProvider()
	notifier := &fakeNotifier{}
	svc := NewService(repo, provider, notifier)

	ctx := context.Background()
	resp, err := svc.CreatePackageCheckout(ctx, 5, &CheckoutPackageRequest{PackageID: 1})
	require.NoError(t, err)

	sig := resultSignature(provider, 49, resp.InvoiceID)
	require.NoError(t, svc.HandleSuccess(ctx, resp.InvoiceID, "49.00", sig))
	require.NoError(t, svc.HandleSuccess(ctx, resp.InvoiceID, "49.00", sig))

	assert.Equal(t, 1, repo.packageSettlements, "second redirect must not credit again")
	assert.Len(t, notifier.payments, 1)
}

func TestHandleSuccessBadSignature(t *testing.T) {
	repo := newFakeRepository()
	seedPackage(repo)
	svc := NewService(repo, testProvider(), &fakeNotifier{})

	ctx := context.Background()
	resp, err := svc.CreatePackageCheckout(ctx, 5, &CheckoutPackageRequest{PackageID: 1})
	require.NoError(t, err)

	err = svc.HandleSuccess(ctx, resp.InvoiceID, "49.00", "FORGED")
	assert.ErrorIs(t, err, ErrBadSignature)
	assert.Equal(t, TxPending, repo.transactions[resp.InvoiceID].Status)
}

func TestHandleSuccessAmountMismatch(t *testing.T) {
	repo := newFakeRepository()
	seedPackage(repo)
	provider := testProvider()
	svc := NewService(repo, provider, &fakeNotifier{})

	ctx := context.Background()
	resp, err := svc.CreatePackageCheckout(ctx, 5, &CheckoutPackageRequest{PackageID: 1})
	require.NoError(t, err)

	// Signature is valid for the stored amount, but the redirect
	// reports a different sum.
	sig := resultSignature(provider, 49, resp.InvoiceID)
	err = svc.HandleSuccess(ctx, resp.InvoiceID, "1.00", sig)
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.Equal(t, TxPending, repo.transactions[resp.InvoiceID].Status)
}

func TestHandleSuccessUnknownInvoice(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testProvider(), &fakeNotifier{})

	err := svc.HandleSuccess(context.Background(), "ghost", "49.00", "SIG")
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestSubscriptionCheckoutSettlesAsSubscription(t *testing.T) {
	repo := newFakeRepository()
	repo.plans[2] = &SubscriptionPlan{
		ID: 2, Name: "Kind Plus", Tier: TierPlus, Price: 149,
		Currency: "PHP", DurationDays: 30, DailySwipeCredits: 10, IsActive: true,
	}
	provider := testProvider()
	notifier := &fakeNotifier{}
	svc := NewService(repo, provider, notifier)

	ctx := context.Background()
	resp, err := svc.CreateSubscriptionCheckout(ctx, 5, &CheckoutSubscriptionRequest{PlanID: 2})
	require.NoError(t, err)

	sig := resultSignature(provider, 149, resp.InvoiceID)
	require.NoError(t, svc.HandleSuccess(ctx, resp.InvoiceID, "149.00", sig))

	assert.Equal(t, 1, repo.subscriptionSettlements)
	assert.Empty(t, notifier.credits, "subscriptions do not grant one-off credits")
}

func TestHandleFailure(t *testing.T) {
	repo := newFakeRepository()
	seedPackage(repo)
	svc := NewService(repo, testProvider(), &fakeNotifier{})

	ctx := context.Background()
	resp, err := svc.CreatePackageCheckout(ctx, 5, &CheckoutPackageRequest{PackageID: 1})
	require.NoError(t, err)

	require.NoError(t, svc.HandleFailure(ctx, resp.InvoiceID))
	assert.Equal(t, TxFailed, repo.transactions[resp.InvoiceID].Status)
}
