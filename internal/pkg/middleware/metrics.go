package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	ordersVerifiedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_verified_total",
			Help: "Total number of fulfillment verification outcomes",
		},
		[]string{"result"},
	)

	gemAdjustmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gem_adjustments_total",
			Help: "Total number of gem ledger adjustments forwarded",
		},
		[]string{"type", "result"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(ordersVerifiedTotal)
	prometheus.MustRegister(gemAdjustmentsTotal)
}

// MetricsMiddleware 记录 HTTP 请求指标
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// PrometheusHandler 暴露 /metrics
func PrometheusHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RecordOrderVerified 记录核销结果 (verified / unverified)
func RecordOrderVerified(result string) {
	ordersVerifiedTotal.WithLabelValues(result).Inc()
}

// RecordGemAdjustment 记录宝石调整结果
func RecordGemAdjustment(adjustType, result string) {
	gemAdjustmentsTotal.WithLabelValues(adjustType, result).Inc()
}
