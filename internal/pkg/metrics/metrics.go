package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by path, method and status"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency in seconds", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	ResizeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "image_resize_total", Help: "Resize operations by result (ok, cached, error)"},
		[]string{"result"},
	)
	ResizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "image_resize_duration_seconds", Help: "Time spent decoding, resizing and encoding", Buckets: prometheus.DefBuckets},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, ResizeTotal, ResizeDuration)
}

// Handler records request count and latency. Unmatched routes share one
// label so random paths do not grow the series count.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(dur)
		HTTPRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
