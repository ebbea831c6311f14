package middleware

import (
	"net/http"

	"github.com/baptisteba/PassChef/utils"
	"github.com/gin-gonic/gin"
)

// ClaimsKey is where AuthMiddleware stores the parsed token claims in the
// gin context.
const ClaimsKey = "userClaims"

// AuthMiddleware validates the x-auth-token header and attaches the claims
// to the request context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("x-auth-token")
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing x-auth-token header"})
			return
		}

		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the claims attached by AuthMiddleware.
func GetClaims(c *gin.Context) (*utils.JWTClaims, bool) {
	claimsVal, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := claimsVal.(*utils.JWTClaims)
	return claims, ok
}
