package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Nevenjbx/kompagni-api/internal/config"
	"github.com/Nevenjbx/kompagni-api/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// AuthMiddleware verifies the identity provider's bearer token. The token
// is issued and signed by the IdP; this service only checks the signature
// and extracts the subject.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}
		email, _ := claims["email"].(string)

		c.Set(ContextUserID, sub)
		c.Set(ContextUserEmail, email)

		c.Next()
	}
}

// RequireRole loads the synced local user and gates on its role. Roles live
// in the local users table (written by /users/sync), not in the token.
func RequireRole(db *gorm.DB, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(ContextUserID).(string)

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user_not_synced"})
			return
		}

		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_role"})
	}
}
