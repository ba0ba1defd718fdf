package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"linkedin-autoposter/infrastructure/utils"
)

const testSecret = "s3cret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/ping", Auth(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return r
}

func call(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newAuthRouter()

	now := time.Now()
	valid, err := utils.IssueOperatorToken("admin", testSecret, now, time.Hour)
	require.NoError(t, err)
	expired, err := utils.IssueOperatorToken("admin", testSecret, now.Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	wrongKey, err := utils.IssueOperatorToken("admin", "other", now, time.Hour)
	require.NoError(t, err)
	noSubject, err := utils.SignClaims(jwt.StandardClaims{ExpiresAt: now.Add(time.Hour).Unix()}, testSecret)
	require.NoError(t, err)

	w := call(r, "Bearer "+valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())

	for name, header := range map[string]string{
		"missing":    "",
		"not bearer": "Basic abc",
		"malformed":  "Bearer not-a-token",
		"expired":    "Bearer " + expired,
		"wrong key":  "Bearer " + wrongKey,
		"no subject": "Bearer " + noSubject,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, call(r, header).Code)
		})
	}
}
