package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/state244/hub/internal/infrastructure/telemetry"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	Metrics *telemetry.Metrics
	// SkipPaths are not recorded (the scrape endpoint itself, health probes)
	SkipPaths []string
}

// HTTPMetrics records request counts, latency and in-flight requests.
// Routes are labelled by their pattern so ids do not explode cardinality.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if cfg.Metrics == nil {
		return func(c *gin.Context) { c.Next() }
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		// Event streams stay open for hours; only count them
		streaming := strings.HasSuffix(c.FullPath(), "/stream")

		start := time.Now()
		if !streaming {
			cfg.Metrics.HTTPInFlight.Inc()
			defer cfg.Metrics.HTTPInFlight.Dec()
		}

		c.Next()

		elapsed := time.Since(start)
		if streaming {
			elapsed = 0
		}
		cfg.Metrics.ObserveHTTP(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), elapsed)
	}
}
