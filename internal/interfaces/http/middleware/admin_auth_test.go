package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RobertWLight/BSC/internal/infrastructure/auth"
	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s stubVerifier) Verify(string) (*auth.Claims, error) {
	return s.claims, s.err
}

func newAdminRouter(verifier TokenVerifier) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(AdminAuth(verifier, nil))
	router.GET("/admin/lead-stats", func(c *gin.Context) {
		claims := GetAdminClaims(c)
		if claims == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Scope)
	})
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestAdminAuth_WithIssuedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, err := auth.NewAdminTokenService(config.AdminConfig{
		TokenSecret: "admin-auth-test-secret-0123456789abcdef",
		TokenTTL:    time.Hour,
		Issuer:      "bsc-test",
	})
	require.NoError(t, err)

	session, err := svc.Issue()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/lead-stats", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+session.Token)
	w := httptest.NewRecorder()
	newAdminRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, auth.AdminScope, w.Body.String())
}

func TestAdminAuth_Rejections(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		verifier TokenVerifier
		wantCode string
	}{
		{"missing header", "", stubVerifier{}, dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", stubVerifier{}, dto.ErrCodeTokenInvalid},
		{"empty bearer", "Bearer   ", stubVerifier{}, dto.ErrCodeUnauthorized},
		{"expired token", "Bearer t", stubVerifier{err: auth.ErrExpiredToken}, dto.ErrCodeTokenExpired},
		{"invalid token", "Bearer t", stubVerifier{err: auth.ErrInvalidToken}, dto.ErrCodeTokenInvalid},
		{"invalid claims", "Bearer t", stubVerifier{err: auth.ErrInvalidClaims}, dto.ErrCodeTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/lead-stats", nil)
			req.Header.Set(RequestIDKey, "req-admin")
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			newAdminRouter(tt.verifier).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			info := decodeError(t, w)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.Equal(t, "req-admin", info.RequestID)
		})
	}
}

func TestAdminAuth_TokenFromAnotherSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer, err := auth.NewAdminTokenService(config.AdminConfig{TokenSecret: "first-secret-0123456789abcdef0123456789"})
	require.NoError(t, err)
	verifier, err := auth.NewAdminTokenService(config.AdminConfig{TokenSecret: "second-secret-0123456789abcdef012345678"})
	require.NoError(t, err)

	session, err := issuer.Issue()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/lead-stats", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+session.Token)
	w := httptest.NewRecorder()
	newAdminRouter(verifier).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeTokenInvalid, decodeError(t, w).Code)
}

func TestGetAdminClaims_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetAdminClaims(c))

	c.Set(AdminClaimsKey, "not-claims")
	assert.Nil(t, GetAdminClaims(c))
}
