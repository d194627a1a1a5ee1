package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"roopshree-backend/models"
	"roopshree-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, tokens *services.TokenService, roles ...models.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", AuthMiddleware(tokens))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": identity.Role})
	})
	return r
}

func accessTokenFor(t *testing.T, tokens *services.TokenService, role models.Role) string {
	t.Helper()
	pair, err := tokens.GenerateTokenPair(uuid.NewString(), "Tester", "tester@example.com", role)
	require.NoError(t, err)
	return pair.AccessToken
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newTestRouter(t, tokens)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newTestRouter(t, tokens)

	w := doGet(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with a different secret.
	other := services.NewTokenService("other-secret")
	w = doGet(r, accessTokenFor(t, other, models.RoleUser))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newTestRouter(t, tokens)

	pair, err := tokens.GenerateTokenPair(uuid.NewString(), "Tester", "tester@example.com", models.RoleUser)
	require.NoError(t, err)

	w := doGet(r, pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newTestRouter(t, tokens)

	w := doGet(r, accessTokenFor(t, tokens, models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newTestRouter(t, tokens, models.RoleAdmin)

	w := doGet(r, accessTokenFor(t, tokens, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(r, accessTokenFor(t, tokens, models.RoleDeliveryBoy))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(r, accessTokenFor(t, tokens, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesMultiple(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	r := newTestRouter(t, tokens, models.RoleUser, models.RoleAdmin)

	w := doGet(r, accessTokenFor(t, tokens, models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, accessTokenFor(t, tokens, models.RoleDeliveryBoy))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
