// middlewares/auth_middleware.go
package middlewares

import (
	"net/http"
	"strings"

	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity (userID, email, role) on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: err.Error()})
			return
		}

		id, ok := claims["userId"].(float64) // numbers arrive as float64 from JSON
		if !ok || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse{Success: false, Error: "userId claim missing"})
			return
		}

		c.Set("userID", uint(id))
		if email, _ := claims["email"].(string); email != "" {
			c.Set("email", email)
		}
		if role, _ := claims["role"].(string); role != "" {
			c.Set("role", role)
		}

		c.Next()
	}
}

// RequireNutritionist gates write endpoints reserved for professionals.
// Runs after AuthMiddleware.
func RequireNutritionist() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleNutritionist {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.APIResponse{Success: false, Error: "nutritionist role required"})
			return
		}
		c.Next()
	}
}
