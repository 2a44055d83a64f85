package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/state244/hub/internal/infrastructure/telemetry"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSWithConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://hub.example"}

	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://hub.example")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "https://hub.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("foreign origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", "https://hub.example")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", MaxRequestIDLength+1))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Len(t, rec.Body.String(), 36)
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(100))
	r.POST("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader([]byte("small"))))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader(bytes.Repeat([]byte("x"), 200)))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, dto.ErrCodeTooLarge, decode(t, rec).Code)
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	metrics := telemetry.NewMetrics("mwtest")

	r := gin.New()
	r.POST("/contact", RateLimit(RateLimitConfig{Limiter: limiter, Action: "contact", Metrics: metrics.Business()}),
		func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1").Code)
	second := send("10.0.0.1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, dto.ErrCodeRateLimited, decode(t, third).Code)

	// other clients have their own bucket
	assert.Equal(t, http.StatusCreated, send("10.0.0.2").Code)
	assert.Equal(t, 1, mustGatherCount(t, metrics, "mwtest_ai_quota_rejections_total"))
}

func mustGatherCount(t *testing.T, m *telemetry.Metrics, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(m.Registry(), name)
	require.NoError(t, err)
	return n
}

func TestIPRateLimiter_Prune(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	now = now.Add(10 * time.Minute)
	limiter.Allow("b")

	assert.Equal(t, 1, limiter.Prune(5*time.Minute))
	assert.Equal(t, 1, limiter.Remaining("a"))
	assert.Len(t, limiter.visitors, 1)
}

func TestSwaggerProtection(t *testing.T) {
	build := func(cfg SwaggerConfig) *gin.Engine {
		r := gin.New()
		r.GET("/swagger/index.html", SwaggerProtection(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	get := func(r *gin.Engine, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
		req.RemoteAddr = ip + ":4000"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNotFound, get(build(SwaggerConfig{}), "127.0.0.1"))
	assert.Equal(t, http.StatusOK, get(build(SwaggerConfig{Enabled: true}), "8.8.8.8"))

	restricted := build(SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "192.168.1.5"}})
	assert.Equal(t, http.StatusOK, get(restricted, "10.1.2.3"))
	assert.Equal(t, http.StatusOK, get(restricted, "192.168.1.5"))
	assert.Equal(t, http.StatusForbidden, get(restricted, "8.8.8.8"))
}

func TestHTTPMetrics(t *testing.T) {
	metrics := telemetry.NewMetrics("mwhttp")
	r := gin.New()
	r.Use(HTTPMetrics(HTTPMetricsConfig{Metrics: metrics, SkipPaths: []string{"/metrics"}}))
	r.GET("/api/v1/alliances/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/alliances/a", "/api/v1/alliances/b", "/metrics", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/v1/alliances/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.HTTPInFlight))
}

type validated struct {
	Tag    string `json:"tag" binding:"required,alliance_tag"`
	Status string `json:"recruitment_status" binding:"omitempty,recruitment_status"`
	Troop  string `json:"troop_type" binding:"omitempty,troop_type"`
	Name   string `json:"player_name" binding:"required,max=5"`
}

func TestValidations(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterValidations(v))
	v.SetTagName("binding")

	assert.NoError(t, v.Struct(validated{Tag: "WLF1", Status: "invite_only", Troop: "lancer", Name: "Ann"}))

	err := v.Struct(validated{Tag: "W", Status: "maybe", Troop: "cavalry", Name: "Too long name"})
	require.Error(t, err)
	details, ok := ValidationDetails(err)
	require.True(t, ok)

	fields := map[string]string{}
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Must be 2 to 5 letters or digits", fields["tag"])
	assert.Contains(t, fields["recruitment_status"], "invite_only")
	assert.Contains(t, fields["troop_type"], "marksman")
	assert.Equal(t, "Must be at most 5 characters", fields["player_name"])

	_, ok = ValidationDetails(assert.AnError)
	assert.False(t, ok)
}
