package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/phonehub-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/phonehub-pos/pkg/utils"
)

const (
	operatorIDKey   = "operator_id"
	operatorNameKey = "operator_name"
)

// AuthMiddleware creates a JWT authentication middleware. It stores the
// operator of the token in the context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(operatorIDKey, claims.OperatorID)
		c.Set(operatorNameKey, claims.Name)

		c.Next()
	}
}

// GetOperatorID returns the authenticated operator, or uuid.Nil
func GetOperatorID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(operatorIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

// GetOperatorName returns the display name carried by the token
func GetOperatorName(c *gin.Context) string {
	return c.GetString(operatorNameKey)
}
