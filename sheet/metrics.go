package sheet

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"shuttleboard/internal/metrics"
)

// Metrics counts sheet downloads. A nil *Metrics records nothing.
type Metrics struct {
	downloads *prometheus.CounterVec
	failures  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// NewMetrics registers the fetch collectors on reg, reusing collectors that
// are already registered. A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	downloads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_download_count",
		Help: "Number of times the published sheet was downloaded",
	}, []string{"url"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_error_count",
		Help: "Number of times downloading the published sheet failed",
	}, []string{"url"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sheet_fetch_seconds",
		Help:    "Time spent downloading the published sheet",
		Buckets: prometheus.DefBuckets,
	}, []string{"url"})

	var err error
	if downloads, err = metrics.Register(reg, downloads); err != nil {
		return nil, err
	}
	if failures, err = metrics.Register(reg, failures); err != nil {
		return nil, err
	}
	if latency, err = metrics.Register(reg, latency); err != nil {
		return nil, err
	}

	return &Metrics{downloads: downloads, failures: failures, latency: latency}, nil
}

func (m *Metrics) observe(url string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(url).Observe(time.Since(started).Seconds())
	if err != nil {
		m.failures.WithLabelValues(url).Inc()
		return
	}
	m.downloads.WithLabelValues(url).Inc()
}
