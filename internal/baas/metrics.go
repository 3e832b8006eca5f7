package baas

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts BaaS traffic. A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	retries   *prometheus.CounterVec
	cacheHits *prometheus.CounterVec
}

// NewMetrics registers the BaaS collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baas_requests_total",
				Help: "Total number of requests sent to the BaaS.",
			},
			[]string{"client", "method", "status"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baas_retries_total",
				Help: "Total number of GET retries after a 429 answer.",
			},
			[]string{"client"},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baas_cache_hits_total",
				Help: "Total number of cached GETs served without a request.",
			},
			[]string{"client"},
		),
	}
	for _, c := range []prometheus.Collector{m.requests, m.retries, m.cacheHits} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) request(client, method string, status int) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(client, method, label).Inc()
}

func (m *Metrics) retry(client string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(client).Inc()
}

func (m *Metrics) hit(client string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(client).Inc()
}
