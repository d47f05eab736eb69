package middelware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"enquirydesk-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRequest(t *testing.T, origins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewCORSMiddleware(&models.Config{CORSOrigins: origins}).CORS())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORSExactOriginEchoedBack(t *testing.T) {
	w := corsRequest(t, []string{"https://admin.example.com"}, http.MethodGet, "https://admin.example.com")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSDisallowedOriginGetsNoAllowHeader(t *testing.T) {
	w := corsRequest(t, []string{"https://admin.example.com"}, http.MethodGet, "https://evil.example.net")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWildcardSubdomain(t *testing.T) {
	w := corsRequest(t, []string{"*.example.com"}, http.MethodGet, "https://staging.example.com")
	assert.Equal(t, "https://staging.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = corsRequest(t, []string{"*.example.com"}, http.MethodGet, "https://example.net")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowAllReflectsAnyOrigin(t *testing.T) {
	w := corsRequest(t, []string{"*"}, http.MethodGet, "https://anywhere.test")
	assert.Equal(t, "https://anywhere.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	w := corsRequest(t, []string{"*"}, http.MethodOptions, "https://anywhere.test")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
