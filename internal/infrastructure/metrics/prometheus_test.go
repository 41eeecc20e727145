package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMetrics_Recorders(t *testing.T) {
	m := New()

	m.LeadCaptured("11-25")
	m.LeadCaptured("11-25")
	m.LeadCaptured("1-10")
	m.CalculationCompleted(decimal.NewFromInt(3705))
	m.ApplicationSubmitted()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.leadsCaptured.WithLabelValues("11-25")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.leadsCaptured.WithLabelValues("1-10")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ficaCalculations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.applicationsSubmitted))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ficaNetSavings))
}

func TestMetrics_GinMiddleware(t *testing.T) {
	m := New()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/api/v1/business-owners/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	for _, path := range []string{"/api/v1/business-owners/a", "/api/v1/business-owners/b", "/nowhere"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/v1/business-owners/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.LeadCaptured("26-50")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `bsc_leads_captured_total{bucket="26-50"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
