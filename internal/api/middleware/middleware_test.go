package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestCORS(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	tests := []struct {
		name           string
		method         string
		origin         string
		wantStatus     int
		wantCORSHeader bool
	}{
		{"simple GET request with origin", "GET", "http://localhost:5173", http.StatusOK, true},
		{"preflight OPTIONS request", "OPTIONS", "http://localhost:5173", http.StatusNoContent, true},
		{"no origin header", "GET", "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == "OPTIONS" {
				req.Header.Set("Access-Control-Request-Method", "PUT")
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCORSHeader {
				assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Equal(t, []string{"*"}, cfg.Origins)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
	assert.True(t, cfg.AllowsOrigin("http://anything.example"))
	assert.Contains(t, deskMethods, http.MethodPut)
	assert.Contains(t, deskHeaders, RequestIDHeader)
}

func TestCORSExposesRequestID(t *testing.T) {
	router := setupTestRouter()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), RequestIDHeader)
}

func TestCORSExplicitOrigins(t *testing.T) {
	cfg := CORSConfig{Origins: []string{"http://localhost:5173"}, MaxAge: time.Hour}
	router := setupTestRouter()
	router.Use(CORS(cfg))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.True(t, cfg.AllowsOrigin(""))
	assert.True(t, cfg.AllowsOrigin("http://localhost:5173"))
	assert.False(t, cfg.AllowsOrigin("http://evil.example"))
}

func TestRateLimit(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 2, Burst: 2}))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	// First 2 requests should succeed (burst capacity)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = "192.168.1.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Request %d should succeed", i+1)
	}

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.168.1.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimitDifferentClients(t *testing.T) {
	router := setupTestRouter()
	router.Use(RateLimit(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(addr string) int {
		req := httptest.NewRequest("GET", "/test", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("192.168.1.1:1234"))
	assert.Equal(t, http.StatusOK, send("192.168.1.2:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("192.168.1.1:1234"))
}

func TestRateLimitEvictsIdleClients(t *testing.T) {
	l := newIPLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1, IdleTimeout: time.Minute})
	now := time.Now()
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))
	assert.Equal(t, 2, l.size())

	now = now.Add(2 * time.Minute)
	assert.True(t, l.allow("10.0.0.3"))
	assert.Equal(t, 1, l.size())
}

func TestDefaultRateLimitConfig(t *testing.T) {
	cfg := DefaultRateLimitConfig()

	assert.Equal(t, 100, cfg.RequestsPerSecond)
	assert.Equal(t, 200, cfg.Burst)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout)
}

func TestRequestIDGenerated(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := setupTestRouter()
	router.Use(RequestID(zap.New(core)))

	var seen string
	var ctxLogger *zap.Logger
	router.GET("/test", func(c *gin.Context) {
		seen = GetRequestID(c)
		ctxLogger = logging.FromContext(c.Request.Context(), nil)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	header := w.Header().Get(RequestIDHeader)
	assert.True(t, id.IsRequestID(header), "unexpected request id %q", header)
	assert.Equal(t, header, seen)
	assert.NotNil(t, ctxLogger)

	entries := logs.FilterMessage("Request completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, header, entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	router := setupTestRouter()
	router.Use(RequestID(nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	incoming := id.NewRequestID().String()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "not-an-id\nwith-newline")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.True(t, id.IsRequestID(w.Header().Get(RequestIDHeader)))

	// A bare ULID without the request prefix is replaced too
	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, id.Default().GenerateString())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.True(t, id.IsRequestID(w.Header().Get(RequestIDHeader)))
}

func TestRequestIDLogsServerErrors(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	router := setupTestRouter()
	router.Use(RequestID(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/boom", nil))

	assert.Equal(t, 1, logs.FilterMessage("Request failed").Len())
}

func BenchmarkRateLimit(b *testing.B) {
	router := setupTestRouter()
	router.Use(RateLimit(DefaultRateLimitConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = "192.168.1.1:1234"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
