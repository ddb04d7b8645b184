package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/auth"
)

// Context keys set by the auth middleware
const (
	// ContextClaimsKey holds the verified *auth.Claims
	ContextClaimsKey = "claims"
	// ContextTokenKey holds the raw bearer token so it can be forwarded to
	// the notification channel
	ContextTokenKey = "token"
)

// AuthMiddleware validates identity claims on incoming requests
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the bearer credential and injects the identity claim
// into the request context. The token cookie is accepted as an earlier
// compatible transport.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			extracted, err := auth.ExtractBearerToken(authHeader)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
				return
			}
			tokenString = extracted
		} else if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: message})
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Set(ContextTokenKey, tokenString)

		c.Next()
	}
}

// ClaimsFromContext returns the identity claim the auth middleware stored
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// TokenFromContext returns the raw bearer token for forwarding
func TokenFromContext(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
