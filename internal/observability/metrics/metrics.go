package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures request-level health signals.
type HTTPMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// PurchaseMetrics counts purchase outcomes by status.
type PurchaseMetrics struct {
	purchasesTotal *prometheus.CounterVec
	writeConflicts prometheus.Counter
}

func NewHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	registerer.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func NewPurchaseMetrics(registerer prometheus.Registerer) *PurchaseMetrics {
	m := &PurchaseMetrics{
		purchasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_purchases_total",
			Help: "Purchase submissions by resulting status.",
		}, []string{"status"}),
		writeConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_purchase_write_conflicts_total",
			Help: "Trades rejected by the line-number uniqueness constraint.",
		}),
	}
	registerer.MustRegister(m.purchasesTotal, m.writeConflicts)
	return m
}

func (m *PurchaseMetrics) RecordPurchase(status string) {
	if m == nil {
		return
	}
	m.purchasesTotal.WithLabelValues(status).Inc()
}

func (m *PurchaseMetrics) RecordWriteConflict() {
	if m == nil {
		return
	}
	m.writeConflicts.Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
