// internal/payments/metrics.go

package payments

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kind_payment_transactions_created_total",
		Help: "Checkout sessions created, by kind",
	}, []string{"kind"})

	transactionsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kind_payment_transactions_settled_total",
		Help: "Payment transactions settled, by kind and outcome",
	}, []string{"kind", "outcome"})

	subscriptionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kind_subscriptions_expired_total",
		Help: "Subscriptions transitioned to expired by the sweep",
	})
)
