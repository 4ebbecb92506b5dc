package middleware

import (
	"net/http"
	"strings"

	"gamebalance/internal/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// TokenValidator resolves a bearer token to the caller's identity.
type TokenValidator interface {
	ValidateToken(token string) (*identity.Identity, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the identity on the context.
func RequireAuth(validator TokenValidator, zapLogger *zap.Logger) gin.HandlerFunc {
	logger := zapLogger.Sugar()
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		ident, err := validator.ValidateToken(token)
		if err != nil {
			logger.Debugw("RequireAuth: token rejected", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// GetIdentity returns the authenticated caller, or an empty identity outside RequireAuth.
func GetIdentity(c *gin.Context) identity.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*identity.Identity); ok && ident != nil {
			return *ident
		}
	}
	return identity.Identity{}
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
