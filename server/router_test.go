package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	httpHandler "linkedin-autoposter/interfaces/http"
	"linkedin-autoposter/usecase"
)

func TestInitiateRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var settings usecase.ISettingsUsecase
	r := InitiateRouter(RouterConfig{SecretKey: "k", AllowedOrigins: []string{"https://admin.example.com"}}, Handlers{
		Health:   httpHandler.NewHealthHandler(),
		OAuth:    httpHandler.NewLinkedInOAuthHandler(nil),
		Share:    httpHandler.NewShareHandler(nil),
		Settings: httpHandler.NewSettingsHandler(settings),
		ShareStream: func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		},
	})

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /healthz",
		"GET /auth/linkedin",
		"GET /auth/linkedin/callback",
		"GET /api/linkedin/status",
		"POST /api/linkedin/disconnect",
		"POST /api/linkedin/test-post",
		"GET /api/settings",
		"PUT /api/settings",
		"POST /api/content/events",
		"GET /api/content/:itemId/share-status",
		"PUT /api/content/:itemId/disable",
		"GET /api/share/stream",
	} {
		assert.True(t, routes[want], want)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// operator routes require a bearer token
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
