package http

import (
	"net/http"
	"strings"

	"github.com/clubnautico/club_service/internal/core/domain"
	"github.com/clubnautico/club_service/internal/core/ports"

	"github.com/gin-gonic/gin"
)

const (
	authorizationPayloadKey = "authorization_payload"
	authorizationErrorKey   = "authorization_error"
)

// AuthMiddleware derives the caller from a bearer token, or from the x-user-*
// headers when legacyHeaders is on. Requests without credentials, or with a
// token that fails verification, continue as anonymous. RequireRoles answers
// 401 for the latter.
func AuthMiddleware(tokenService ports.TokenService, legacyHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			fields := strings.Fields(header)
			if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
				c.Set(authorizationErrorKey, "invalid authorization header")
				c.Set(authorizationPayloadKey, &domain.Principal{})
				c.Next()
				return
			}

			payload, err := tokenService.VerifyToken(fields[1])
			if err != nil {
				c.Set(authorizationErrorKey, "invalid or expired token")
				c.Set(authorizationPayloadKey, &domain.Principal{})
				c.Next()
				return
			}
			c.Set(authorizationPayloadKey, payload)
			c.Next()
			return
		}

		payload := &domain.Principal{}
		if legacyHeaders {
			payload = &domain.Principal{
				UserID: strings.TrimSpace(c.GetHeader("x-user-id")),
				Email:  strings.TrimSpace(c.GetHeader("x-user-email")),
				Name:   strings.TrimSpace(c.GetHeader("x-user-name")),
				Role:   domain.NormalizeRole(c.GetHeader("x-user-role")),
			}
		}
		c.Set(authorizationPayloadKey, payload)
		c.Next()
	}
}

func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if msg := c.GetString(authorizationErrorKey); msg != "" {
			newErrorResponse(c, http.StatusUnauthorized, msg)
			return
		}
		payload, exists := getAuthPayload(c, authorizationPayloadKey)
		if !exists || !payload.HasRole(roles...) {
			newErrorResponse(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}

func productionMode(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(productionKey, production)
		c.Next()
	}
}

func getAuthPayload(c *gin.Context, key string) (*domain.Principal, bool) {
	value, exists := c.Get(key)
	if !exists {
		return &domain.Principal{}, false
	}
	payload, ok := value.(*domain.Principal)
	if !ok || payload == nil {
		return &domain.Principal{}, false
	}
	return payload, true
}
