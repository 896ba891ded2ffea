package metrics

import (
	"net/http"
	"strconv"
	"time"

	"symptom-drift/internal/domain/sdi"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics usa su propio registry para que tests y varios routers
// en el mismo proceso no choquen con el registry global.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	assessmentsTotal *prometheus.CounterVec
	normalizedScore  prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		assessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sdi_assessments_total",
			Help: "Computed assessments by risk color and trend.",
		}, []string{"color", "trend"}),
		normalizedScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sdi_normalized_score",
			Help:    "Distribution of normalized SDI scores.",
			Buckets: []float64{30, 55, 75, 100},
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.assessmentsTotal,
		m.normalizedScore,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// Middleware etiqueta por patrón de ruta de chi (no por path real)
// para no explotar la cardinalidad con IDs.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m == nil {
			return
		}
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveAssessment implementa assessments.Recorder.
func (m *Metrics) ObserveAssessment(res sdi.Result) {
	if m == nil {
		return
	}
	m.assessmentsTotal.WithLabelValues(string(res.Color), string(res.Trend)).Inc()
	m.normalizedScore.Observe(res.NormalizedScore)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
