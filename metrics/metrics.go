package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check-in outcomes.
const (
	OutcomeSuccess             = "success"
	OutcomeCooldown            = "cooldown"
	OutcomeInsufficientCredits = "insufficient_credits"
	OutcomeNotFound            = "not_found"
	OutcomeError               = "error"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gymcredit",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymcredit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gymcredit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	checkIns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymcredit",
			Subsystem: "checkin",
			Name:      "attempts_total",
			Help:      "Check-in attempts by outcome.",
		},
		[]string{"outcome"},
	)

	creditsSpent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gymcredit",
			Subsystem: "checkin",
			Name:      "credits_spent_total",
			Help:      "Credits debited by successful check-ins.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		checkIns,
		creditsSpent,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func ObserveCheckIn(outcome string, credits int) {
	checkIns.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		creditsSpent.Add(float64(credits))
	}
}
