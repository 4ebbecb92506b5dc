package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamebalance/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type staticValidator map[string]*identity.Identity

func (v staticValidator) ValidateToken(token string) (*identity.Identity, error) {
	if ident, ok := v[token]; ok {
		return ident, nil
	}
	return nil, errors.New("invalid token")
}

func newAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	validator := staticValidator{"good": {UserID: "u1", Email: "a@b.c"}}
	engine.GET("/me", RequireAuth(validator, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, GetIdentity(c))
	})
	return engine
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", status: http.StatusOK},
		{name: "scheme is case insensitive", header: "bearer good", status: http.StatusOK},
	}

	engine := newAuthEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":"u1","email":"a@b.c","name":"","username":""}`, w.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestGetIdentityWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, identity.Identity{}, GetIdentity(c))
}
