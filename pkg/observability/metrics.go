package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/fretwise/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one engine.
type Metrics struct {
	registry *prometheus.Registry

	PairsRanked      prometheus.Counter
	TransitionsTotal prometheus.Counter
	RankDuration     prometheus.Histogram
	BestScore        *prometheus.GaugeVec
	ChordsPicked     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PairsRanked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fretwise_pairs_ranked_total",
			Help: "Total number of chord pairs ranked",
		}),
		TransitionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fretwise_transitions_scored_total",
			Help: "Total number of variation transitions scored",
		}),
		RankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fretwise_pair_rank_duration_seconds",
			Help:    "Duration of ranking a single chord pair",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		BestScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fretwise_best_transition_score",
				Help: "Total score of the cheapest transition of the last ranking of a pair",
			},
			[]string{"pair"},
		),
		ChordsPicked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fretwise_chords_picked_total",
				Help: "Total number of representative variations picked",
			},
			[]string{"root", "variation"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fretwise_http_requests_total",
				Help: "Total number of HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fretwise_http_request_duration_seconds",
				Help: "Duration of HTTP requests by route",
			},
			[]string{"route"},
		),
	}

	m.registry.MustRegister(
		m.PairsRanked,
		m.TransitionsTotal,
		m.RankDuration,
		m.BestScore,
		m.ChordsPicked,
		m.HTTPRequests,
		m.HTTPDuration,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks records ranking and picking events.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnPairRanked: func(_ context.Context, e *domain.PairRankedEvent) {
			m.PairsRanked.Inc()
			m.TransitionsTotal.Add(float64(e.Transitions))
			m.RankDuration.Observe(e.Duration.Seconds())
			m.BestScore.WithLabelValues(e.Pair.String()).Set(e.Best.Total)
		},
		OnChordPicked: func(_ context.Context, e *domain.ChordPickedEvent) {
			m.ChordsPicked.WithLabelValues(e.Root, e.Variation).Inc()
		},
	}
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
