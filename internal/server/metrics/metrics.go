// Package metrics exposes Prometheus instrumentation for the dispatcher.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "paintmap"

// DispatchMetrics implements dispatch.Observer.
type DispatchMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewDispatchMetrics(reg prometheus.Registerer) (*DispatchMetrics, error) {
	m := &DispatchMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "requests_total",
			Help:      "Dispatched requests by function and outcome.",
		}, []string{"function", "succeed"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dispatch",
			Name:      "duration_seconds",
			Help:      "Time spent handling a dispatched request.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"function"}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *DispatchMetrics) Observe(function string, succeed bool, elapsed time.Duration) {
	m.requests.WithLabelValues(function, strconv.FormatBool(succeed)).Inc()
	m.duration.WithLabelValues(function).Observe(elapsed.Seconds())
}

// AccountCounter is anything that can report the number of live accounts.
type AccountCounter interface {
	Count(ctx context.Context) (int, error)
}

// RegisterAccountGauge publishes the live account count, read on scrape.
func RegisterAccountGauge(reg prometheus.Registerer, c AccountCounter) error {
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "accounts",
		Help:      "Number of registered accounts.",
	}, func() float64 {
		n, err := c.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(n)
	})
	return reg.Register(g)
}
