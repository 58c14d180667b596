package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerhq/facturas/internal/config"
	ierr "github.com/tallerhq/facturas/internal/errors"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/internal/types"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequestIDMiddleware, ErrorHandler(log))
	return router
}

func TestRequestIDMiddlewareGeneratesID(t *testing.T) {
	router := newTestRouter(t)

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = types.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(types.HeaderRequestID))
}

func TestRequestIDMiddlewareEchoesInboundID(t *testing.T) {
	router := newTestRouter(t)

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = types.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(types.HeaderRequestID, "req-123")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get(types.HeaderRequestID))
}

func TestErrorHandlerRendersHintAndDetails(t *testing.T) {
	router := newTestRouter(t)

	router.GET("/boom", func(c *gin.Context) {
		c.Error(ierr.NewError("invoice is locked by another user").
			WithHint("Currently being edited by Ana").
			WithReportableDetails(map[string]any{"holder_name": "Ana"}).
			Mark(ierr.ErrConflict))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Currently being edited by Ana", resp.Error.Display)
	assert.Equal(t, "Ana", resp.Error.Details["holder_name"])
}
