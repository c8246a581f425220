package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gwsanta/secret-santa-backend/config"
	"github.com/gwsanta/secret-santa-backend/internal/auth"
)

// AuthMiddleware handles JWT authentication and sets up the access context
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing in token"})
			return
		}

		user, err := authSvc.GetUserByID(uint(userIDFloat))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("access_context", CreateAccessContext(user))

		c.Next()
	}
}

// CreateAccessContext derives request permissions from the user's role.
// Participants get full access too: what they may touch is decided per
// resource (own assignment, own registration), not by a readonly bit.
func CreateAccessContext(user auth.User) AccessContext {
	accessContext := AccessContext{
		UserID:     user.ID,
		GameUserID: user.GameUserID,
		RoleName:   user.Role.RoleName,
	}

	switch user.Role.RoleName {
	case RoleSuperAdmin, RoleOrganizer, RoleParticipant:
		accessContext.PermissionType = "full"
	default:
		accessContext.PermissionType = "readonly"
	}

	return accessContext
}
