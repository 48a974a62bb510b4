package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/morphfst/pkg/domain"
	"github.com/aretw0/morphfst/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics holds the collectors fed by NewMetricsMiddleware.
type StoreMetrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewStoreMetrics creates the collectors and registers them with reg.
// A nil reg skips registration.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morphfst_store_operations_total",
				Help: "Total number of automaton store operations",
			},
			[]string{"op", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "morphfst_store_operation_duration_seconds",
				Help:    "Duration of automaton store operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Duration)
	}
	return m
}

type metricsMiddleware struct {
	next    ports.AutomatonStore
	metrics *StoreMetrics
}

// NewMetricsMiddleware counts and times every store operation.
func NewMetricsMiddleware(metrics *StoreMetrics) Middleware {
	return func(next ports.AutomatonStore) ports.AutomatonStore {
		return &metricsMiddleware{next: next, metrics: metrics}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.metrics.Operations.WithLabelValues(op, result).Inc()
	m.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, key string, a *domain.Automaton) (err error) {
	defer func(start time.Time) { m.observe("save", start, err) }(time.Now())
	return m.next.Save(ctx, key, a)
}

func (m *metricsMiddleware) Load(ctx context.Context, key string) (a *domain.Automaton, err error) {
	defer func(start time.Time) { m.observe("load", start, err) }(time.Now())
	return m.next.Load(ctx, key)
}

func (m *metricsMiddleware) Exists(ctx context.Context, key string) (ok bool, err error) {
	defer func(start time.Time) { m.observe("exists", start, err) }(time.Now())
	return m.next.Exists(ctx, key)
}

func (m *metricsMiddleware) Delete(ctx context.Context, key string) (err error) {
	defer func(start time.Time) { m.observe("delete", start, err) }(time.Now())
	return m.next.Delete(ctx, key)
}

func (m *metricsMiddleware) List(ctx context.Context) (keys []string, err error) {
	l, ok := list(m.next)
	if !ok {
		return nil, ErrListUnsupported
	}
	defer func(start time.Time) { m.observe("list", start, err) }(time.Now())
	return l.List(ctx)
}
