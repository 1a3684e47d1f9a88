// internal/swipes/metrics.go

package swipes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	swipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kind_swipes_total",
		Help: "Total swipe actions recorded, by action",
	}, []string{"action"})

	swipeLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kind_swipe_limit_hits_total",
		Help: "Swipe attempts rejected for lack of credits",
	})

	rewindsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kind_rewinds_total",
		Help: "Successful swipe rewinds",
	})

	feedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kind_feed_cache_hits_total",
		Help: "Feed requests served from the in-process cache",
	})

	feedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kind_feed_cache_misses_total",
		Help: "Feed requests that recomputed scores",
	})

	creditsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kind_credits_granted_total",
		Help: "Users topped up by scheduled credit sweeps, by kind",
	}, []string{"kind"})

	matchScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kind_match_score",
		Help:    "Computed match scores for jobs shown in the feed",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})
)
