package observability

import (
	"context"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine collectors.
type Metrics struct {
	EntriesAdded  prometheus.Counter
	Builds        *prometheus.CounterVec
	BuildDuration prometheus.Histogram
	States        prometheus.Gauge
	Queries       *prometheus.CounterVec
	QueryDuration prometheus.Histogram
}

// NewMetrics creates the collectors without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		EntriesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "morphfst_entries_added_total",
			Help: "Total number of rule entries compiled into automata",
		}),
		Builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morphfst_builds_total",
				Help: "Total number of automaton builds",
			},
			[]string{"result"},
		),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "morphfst_build_duration_seconds",
			Help:    "Duration of automaton builds",
			Buckets: prometheus.DefBuckets,
		}),
		States: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "morphfst_automaton_states",
			Help: "Number of states in the last built automaton",
		}),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morphfst_queries_total",
				Help: "Total number of realization queries by walk status",
			},
			[]string{"status"},
		),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "morphfst_query_duration_seconds",
			Help:    "Duration of realization queries",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.EntriesAdded, m.Builds, m.BuildDuration, m.States, m.Queries, m.QueryDuration,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEntryAdded: func(_ context.Context, _ *domain.EntryEvent) {
			m.EntriesAdded.Inc()
		},
		OnBuildDone: func(_ context.Context, e *domain.BuildEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			} else {
				m.States.Set(float64(e.Stats.States))
			}
			m.Builds.WithLabelValues(result).Inc()
			m.BuildDuration.Observe(e.Duration.Seconds())
		},
		OnQueryDone: func(_ context.Context, e *domain.QueryEvent) {
			m.Queries.WithLabelValues(string(e.Status)).Inc()
			m.QueryDuration.Observe(e.Duration.Seconds())
		},
	}
}

// Merge combines hook sets; every non-nil callback runs in order.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		h := h
		if h.OnEntryAdded != nil {
			prev := out.OnEntryAdded
			out.OnEntryAdded = func(ctx context.Context, e *domain.EntryEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnEntryAdded(ctx, e)
			}
		}
		if h.OnBuildDone != nil {
			prev := out.OnBuildDone
			out.OnBuildDone = func(ctx context.Context, e *domain.BuildEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnBuildDone(ctx, e)
			}
		}
		if h.OnQueryDone != nil {
			prev := out.OnQueryDone
			out.OnQueryDone = func(ctx context.Context, e *domain.QueryEvent) {
				if prev != nil {
					prev(ctx, e)
				}
				h.OnQueryDone(ctx, e)
			}
		}
	}
	return out
}
