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

	"github.com/algoreed/crs/internal/auth"
)

func newTestRouter(tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/protected", JWTAuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(SubjectKey)})
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	valid, err := tokens.GenerateJWT("clerk", auth.RoleOperator)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
	}

	router := newTestRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"subject":"clerk"}`, w.Body.String())
			}
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	router := newTestRouter(auth.NewTokenService("s", time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
