package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"school-api/internal/auth"
	"school-api/internal/domain"
)

const claimsContextKey = "authClaims"

// authenticate verifies the bearer token and attaches the claims to the
// request context. Every failure mode is a 401.
func (h *Handler) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing"})
		return
	}
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header"})
		return
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid authorization header"})
		return
	}

	claims, err := auth.VerifyToken(token, h.jwtSecret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	c.Set(claimsContextKey, claims)
	c.Next()
}

// authorize rejects authenticated users whose role is not in the allowed
// set. It must run after authenticate; a missing claims entry is a
// programming error in the route table.
func (h *Handler) authorize(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You do not have permission to perform this action"})
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		panic("authorize called without authenticate")
	}
	return value.(*auth.Claims)
}
