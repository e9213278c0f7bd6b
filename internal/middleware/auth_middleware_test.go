package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"courier-chat/config"
	"courier-chat/internal/services"
	"courier-chat/pkg/logger"
)

func newTestAuth(t *testing.T) *services.AuthService {
	t.Helper()
	return services.NewAuthService(nil, nil, logger.NewNop(), &config.Config{JWTSecret: "test-secret"})
}

func newTestRouter(auth *services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireLogin(auth), func(c *gin.Context) {
		username, _ := services.UsernameFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"username": username})
	})
	r.GET("/users/:username", RequireSameUser(auth), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireLogin_NoToken(t *testing.T) {
	r := newTestRouter(newTestAuth(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), `"status":401`)
}

func TestRequireLogin_BadToken(t *testing.T) {
	r := newTestRouter(newTestAuth(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireLogin_ValidToken(t *testing.T) {
	auth := newTestAuth(t)
	r := newTestRouter(auth)

	token, err := auth.IssueToken("alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestRequireLogin_QueryToken(t *testing.T) {
	auth := newTestAuth(t)
	r := newTestRouter(auth)

	token, err := auth.IssueToken("alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSameUser(t *testing.T) {
	auth := newTestAuth(t)
	r := newTestRouter(auth)

	token, err := auth.IssueToken("alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong identity is 401, not 403.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users/bob", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSameUser_NoToken(t *testing.T) {
	r := newTestRouter(newTestAuth(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
