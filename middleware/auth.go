package middleware

import (
	"net/http"
	"strings"

	"roopshree-backend/models"
	"roopshree-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityContextKey is where the resolved caller identity is stored.
const IdentityContextKey = "identity"

// AuthMiddleware resolves the caller from the Bearer token. Every protected
// route runs this before any handler touches data.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.ValidateToken(tokenStr, "access")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		name, _ := claims["name"].(string)
		email, _ := claims["email"].(string)
		roleStr, _ := claims["role"].(string)
		role := models.Role(roleStr)
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(IdentityContextKey, models.Identity{
			UserID: userID,
			Name:   name,
			Email:  email,
			Role:   role,
		})
		c.Next()
	}
}

// RequireRoles is the access-policy table: each route names the roles allowed
// to reach it, checked once here instead of inside every handler.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !allowed[identity.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated caller stored by AuthMiddleware.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := val.(models.Identity)
	return identity, ok
}
