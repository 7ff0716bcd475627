package jikan

import (
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK             = "ok"
	outcomeNetworkError   = "network_error"
	outcomeHTTPStatus     = "http_status"
	outcomeInvalidPayload = "invalid_payload"
)

// Metrics compte et chronomètre les appels sortants vers le catalogue.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "showcase_jikan_requests_total",
			Help: "Requests sent to the Jikan API, by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "showcase_jikan_request_duration_seconds",
			Help:    "Jikan API request latency, by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, outcome).Inc()
	m.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

var reNumericSegment = regexp.MustCompile(`^\d+$`)

// knownEndpoints: les seules routes Jikan exposées en label. Le chemin vient parfois
// du client (/api/v1/list?endpoint=), tout le reste tombe dans endpointOther.
var knownEndpoints = map[string]struct{}{
	"top/anime":           {},
	"seasons/now":         {},
	"anime":               {},
	"anime/:id":           {},
	"anime/:id/streaming": {},
	"genres/anime":        {},
}

const endpointOther = "other"

// endpointLabel retire la query, remplace les identifiants numériques
// ("anime/5114/streaming" -> "anime/:id/streaming") et ramène toute route
// hors de knownEndpoints à "other".
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if reNumericSegment.MatchString(p) {
			parts[i] = ":id"
		}
	}
	label := strings.Join(parts, "/")
	if _, ok := knownEndpoints[label]; !ok {
		return endpointOther
	}
	return label
}
