package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for monitoring submission flow and HTTP traffic
var (
	LeadsReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_received_total",
			Help: "Total number of lead submissions received",
		},
	)

	LeadsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_accepted_total",
			Help: "Total number of lead submissions accepted and delivered",
		},
	)

	LeadsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_rejected_total",
			Help: "Total number of rejected lead submissions by reason",
		},
		[]string{"reason"},
	)

	LeadDeliveryFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_delivery_failed_total",
			Help: "Total number of accepted submissions the gateway failed to deliver",
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(LeadsReceivedTotal)
	prometheus.MustRegister(LeadsAcceptedTotal)
	prometheus.MustRegister(LeadsRejectedTotal)
	prometheus.MustRegister(LeadDeliveryFailedTotal)
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
}

// Middleware records request count and duration for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
