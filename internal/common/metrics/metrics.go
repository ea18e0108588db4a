package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metch_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metch_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// ConnectedClients tracks live websocket connections
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "metch_relay_connected_clients",
		Help: "Number of live websocket connections",
	})

	// OnlineUsers tracks distinct online user identities
	OnlineUsers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "metch_relay_online_users",
		Help: "Number of distinct online users",
	})

	// EventsRelayed counts relayed events by type
	EventsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metch_relay_events_total",
		Help: "Total number of relayed events",
	}, []string{"event"})

	// EventsDropped counts events dropped because the target was offline or the buffer was full
	EventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metch_relay_events_dropped_total",
		Help: "Total number of dropped events",
	}, []string{"event", "reason"})

	// ActiveCalls tracks live call sessions
	ActiveCalls = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "metch_relay_active_calls",
		Help: "Number of live call sessions",
	})
)

// Middleware records request count and latency per route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the prometheus metrics endpoint
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
