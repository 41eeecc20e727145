package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/plans", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("echoes the caller's id", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/plans", map[string]string{RequestIDKey: "wizard-42"})
		assert.Equal(t, "wizard-42", w.Header().Get(RequestIDKey))
		assert.Equal(t, "wizard-42", w.Body.String())
	})

	t.Run("assigns one when missing", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/plans", nil)
		id := w.Header().Get(RequestIDKey)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("replaces oversized ids", func(t *testing.T) {
		long := strings.Repeat("x", MaxRequestIDLength+1)
		w := serve(router, http.MethodGet, "/plans", map[string]string{RequestIDKey: long})
		assert.NotEqual(t, long, w.Header().Get(RequestIDKey))
		assert.LessOrEqual(t, len(w.Header().Get(RequestIDKey)), MaxRequestIDLength)
	})
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(RequestIDKey, strings.Repeat("a", MaxRequestIDLength+10))

	assert.Len(t, GetRequestID(c), MaxRequestIDLength)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newRouter := func(origins ...string) *gin.Engine {
		router := gin.New()
		router.Use(CORS(CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{"GET", "POST"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:       time.Hour,
		}))
		router.GET("/api/v1/benefit-plans", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("allowed origin gets credentials", func(t *testing.T) {
		w := serve(newRouter("https://enroll.example.com"), http.MethodGet, "/api/v1/benefit-plans",
			map[string]string{"Origin": "https://enroll.example.com"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://enroll.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), RequestIDKey)
	})

	t.Run("unknown origin gets no headers", func(t *testing.T) {
		w := serve(newRouter("https://enroll.example.com"), http.MethodGet, "/api/v1/benefit-plans",
			map[string]string{"Origin": "https://evil.example"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("empty allow list sends nothing", func(t *testing.T) {
		w := serve(newRouter(), http.MethodGet, "/api/v1/benefit-plans",
			map[string]string{"Origin": "https://enroll.example.com"})
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never allows credentials", func(t *testing.T) {
		w := serve(newRouter("*"), http.MethodGet, "/api/v1/benefit-plans",
			map[string]string{"Origin": "https://anywhere.example"})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight is answered with 204", func(t *testing.T) {
		w := serve(newRouter("https://enroll.example.com"), http.MethodOptions, "/api/v1/benefit-plans",
			map[string]string{
				"Origin":                        "https://enroll.example.com",
				"Access-Control-Request-Method": "POST",
			})
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from unknown origin is still 204", func(t *testing.T) {
		w := serve(newRouter("https://enroll.example.com"), http.MethodOptions, "/api/v1/benefit-plans",
			map[string]string{"Origin": "https://evil.example"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodGet, "/health", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
	assert.Contains(t, w.Header().Get("Permissions-Policy"), "camera=()")
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
