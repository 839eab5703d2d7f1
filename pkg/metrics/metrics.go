package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codearc_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codearc_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	courseCompletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codearc_course_completions_total",
			Help: "Courses completed by students (completion events fired).",
		},
	)

	notificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codearc_notifications_delivered_total",
			Help: "Notifications inserted, by delivery outcome.",
		},
		[]string{"outcome"},
	)
)

// Middleware records request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CourseCompleted records a completion event.
func CourseCompleted() {
	courseCompletions.Inc()
}

// NotificationDelivered records a successful notification insert.
func NotificationDelivered(count int) {
	notificationsDelivered.WithLabelValues("delivered").Add(float64(count))
}

// NotificationFailed records a swallowed delivery failure.
func NotificationFailed() {
	notificationsDelivered.WithLabelValues("failed").Inc()
}
