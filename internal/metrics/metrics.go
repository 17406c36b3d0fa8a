package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"sync"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namaste_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	HTTPRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namaste_http_requests_total",
			Help: "Total number of handled page requests.",
		},
		[]string{"route", "status"},
	)
	BackendRequestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "namaste_backend_request_duration_seconds",
			Help:       "Duration of requests to the jobs backend.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"operation"},
	)
	JobCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "namaste_job_cache_lookups_total",
			Help: "Job cache lookups by result.",
		},
		[]string{"result"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "namaste_active_sessions",
			Help: "Number of browser sessions held in memory.",
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(HTTPRequestsCounter)
		prometheus.MustRegister(BackendRequestDuration)
		prometheus.MustRegister(JobCacheLookups)
		prometheus.MustRegister(ActiveSessions)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
