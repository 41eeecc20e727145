package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RobertWLight/BSC/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(limit int64) *gin.Engine {
		router := gin.New()
		router.Use(RequestID(), BodyLimit(limit))
		router.POST("/api/v1/leads", func(c *gin.Context) {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.String(http.StatusRequestEntityTooLarge, "read failed")
				return
			}
			c.String(http.StatusOK, "%d", len(body))
		})
		return router
	}

	post := func(router *gin.Engine, body string, chunked bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(body))
		if chunked {
			req.ContentLength = -1
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("passes small bodies", func(t *testing.T) {
		w := post(newRouter(64), `{"first_name":"Pat"}`, false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "20", w.Body.String())
	})

	t.Run("rejects a declared length over the limit", func(t *testing.T) {
		w := post(newRouter(16), strings.Repeat("x", 17), false)
		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("caps bodies without a declared length", func(t *testing.T) {
		w := post(newRouter(16), strings.Repeat("x", 40), true)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "read failed", w.Body.String())
	})

	t.Run("zero disables the limit", func(t *testing.T) {
		w := post(newRouter(0), strings.Repeat("x", 4096), false)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
