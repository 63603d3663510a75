package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter() (*gin.Engine, *test.Hook) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(RealIP(), AccessLog(logger))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/boom", func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") })
	return r, hook
}

func TestAccessLogUsesResolvedClientIP(t *testing.T) {
	r, hook := newLoggedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "203.0.113.7", entry.Data["client_ip"])
	require.Equal(t, "/ping", entry.Data["path"])
	require.Equal(t, http.StatusOK, entry.Data["status"])
}

func TestAccessLogPrefersLeftmostForwardedFor(t *testing.T) {
	r, hook := newLoggedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "198.51.100.4", hook.LastEntry().Data["client_ip"])
}

func TestAccessLogServerErrorsAtErrorLevel(t *testing.T) {
	r, hook := newLoggedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	require.Equal(t, http.StatusInternalServerError, hook.LastEntry().Data["status"])
}
