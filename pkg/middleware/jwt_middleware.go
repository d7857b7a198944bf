package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"identity/pkg/utils"
)

const (
	ContextUserID = "user_id"
	ContextClaims = "claims"
)

type TokenVerifier interface {
	Verify(token string) (*utils.SessionClaims, error)
}

type RoleChecker interface {
	Authorize(ctx context.Context, userID string, requiredRoles []string) error
}

func extractBearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}

// JWTAuthMiddleware verifies the bearer token and stores its claims on the context.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.HandleServiceError(c, utils.Unauthorized(utils.MsgForbiddenResource))
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			utils.HandleServiceError(c, err)
			return
		}

		c.Set(ContextUserID, claims.ID)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RoleMiddleware re-checks the caller's role against the store on every request.
// It must run after JWTAuthMiddleware.
func RoleMiddleware(checker RoleChecker, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			utils.RespondError(c, http.StatusUnauthorized, utils.MsgForbiddenResource)
			c.Abort()
			return
		}

		if err := checker.Authorize(c.Request.Context(), userID, roles); err != nil {
			utils.HandleServiceError(c, err)
			return
		}

		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*utils.SessionClaims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.SessionClaims)
	return claims, ok
}
