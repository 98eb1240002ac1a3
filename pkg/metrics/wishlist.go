package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WishlistMetrics records wishlist toggles and the conversion-scoring pipeline.
type WishlistMetrics struct {
	toggles         *prometheus.CounterVec
	scores          *prometheus.CounterVec
	fetchFailures   prometheus.Counter
	scoringDuration prometheus.Histogram
}

// NewWishlistMetrics registers the wishlist metrics on the provided registerer.
func NewWishlistMetrics(reg prometheus.Registerer) *WishlistMetrics {
	if reg == nil {
		return &WishlistMetrics{}
	}
	toggles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_toggles_total",
		Help: "Wishlist requests by action and resulting state.",
	}, []string{"action", "state"})
	scores := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wishlist_scores_total",
		Help: "Conversion scoring outcomes by source.",
	}, []string{"source"})
	fetchFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wishlist_order_history_failures_total",
		Help: "Order history fetches that returned no data.",
	})
	scoringDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wishlist_scoring_duration_seconds",
		Help:    "Duration of the fetch and score pipeline in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(toggles, scores, fetchFailures, scoringDuration)
	return &WishlistMetrics{
		toggles:         toggles,
		scores:          scores,
		fetchFailures:   fetchFailures,
		scoringDuration: scoringDuration,
	}
}

// IncToggle counts a wishlist request.
func (m *WishlistMetrics) IncToggle(action, state string) {
	if m == nil || m.toggles == nil {
		return
	}
	m.toggles.WithLabelValues(normalizeLabel(action), normalizeLabel(state)).Inc()
}

// IncScore counts a scoring outcome by its source.
func (m *WishlistMetrics) IncScore(source string) {
	if m == nil || m.scores == nil {
		return
	}
	m.scores.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFetchFailure counts an order history fetch that failed closed.
func (m *WishlistMetrics) IncFetchFailure() {
	if m == nil || m.fetchFailures == nil {
		return
	}
	m.fetchFailures.Inc()
}

// ObserveScoring records how long the scoring pipeline took.
func (m *WishlistMetrics) ObserveScoring(duration time.Duration) {
	if m == nil || m.scoringDuration == nil {
		return
	}
	m.scoringDuration.Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
