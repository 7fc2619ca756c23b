package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colloq/colloq/internal/pkg/auth"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "nickname": GetNickname(c)})
	})
	router.GET("/admin", m.JWTAuth(), m.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/open", m.OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "isAdmin": c.GetBool(ContextIsAdmin)})
	})
	return router
}

func newTestJWT(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "colloq-test",
	})
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := newTestRouter(newTestJWT(time.Hour))

	rec := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	router := newTestRouter(newTestJWT(time.Hour))

	rec := doRequest(router, "/protected", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := newTestRouter(newTestJWT(time.Hour))

	rec := doRequest(router, "/protected", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	jwtService := newTestJWT(-time.Minute)
	router := newTestRouter(jwtService)

	token, _, err := jwtService.GenerateToken(7, "student@colloq.pl", "student42", false)
	require.NoError(t, err)

	rec := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService)

	token, _, err := jwtService.GenerateToken(7, "student@colloq.pl", "student42", false)
	require.NoError(t, err)

	rec := doRequest(router, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":7`)
	assert.Contains(t, rec.Body.String(), "student42")
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	router := newTestRouter(newTestJWT(time.Hour))

	rec := doRequest(router, "/open", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":0`)
}

func TestOptionalAuth_InvalidTokenIgnored(t *testing.T) {
	router := newTestRouter(newTestJWT(time.Hour))

	rec := doRequest(router, "/open", "Bearer not.a.token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":0`)
}

func TestOptionalAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService)

	token, _, err := jwtService.GenerateToken(1, "admin@colloq.pl", "admin", true)
	require.NoError(t, err)

	rec := doRequest(router, "/open", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"userId":1`)
	assert.Contains(t, rec.Body.String(), `"isAdmin":true`)
}

func TestAdminRequired_NonAdmin(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService)

	token, _, err := jwtService.GenerateToken(7, "student@colloq.pl", "student42", false)
	require.NoError(t, err)

	rec := doRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRequired_Admin(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService)

	token, _, err := jwtService.GenerateToken(1, "admin@colloq.pl", "admin", true)
	require.NoError(t, err)

	rec := doRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
