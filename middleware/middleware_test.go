package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdl-cms/config"
	"bdl-cms/models"
	"bdl-cms/services"
)

func token(t *testing.T, id uint, role models.Role) string {
	t.Helper()
	tok, err := services.GenerateToken(&models.User{ID: id, Username: "u", Role: role})
	require.NoError(t, err)
	return tok
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentSession(c))
	})
	r.GET("/", handlers...)
	return r
}

func do(r http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware())

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	w := do(r, token(t, 7, models.Custom("Trésorière")))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
	assert.Contains(t, w.Body.String(), `"role":"custom:Trésorière"`)
	assert.Contains(t, w.Body.String(), `"can_vote":true`)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsExpiredAndForeignTokens(t *testing.T) {
	r := newRouter(AuthMiddleware())

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1, "role": "admin", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	s, err := expired.SignedString(config.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, s).Code)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "role": "admin"})
	s, err = foreign.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, s).Code)
}

func TestRoleGates(t *testing.T) {
	tests := []struct {
		name   string
		gate   gin.HandlerFunc
		role   models.Role
		status int
	}{
		{"admin passes admin gate", RequireAdmin(), models.Standard(models.RoleAdmin), http.StatusOK},
		{"bureau fails admin gate", RequireAdmin(), models.Standard(models.RoleBureau), http.StatusForbidden},
		{"bureau publishes", RequirePublisher(), models.Standard(models.RoleBureau), http.StatusOK},
		{"membre cannot publish", RequirePublisher(), models.Standard(models.RoleMembre), http.StatusForbidden},
		{"membre votes", RequireVoter(), models.Standard(models.RoleMembre), http.StatusOK},
		{"custom role votes", RequireVoter(), models.Custom("Secrétaire"), http.StatusOK},
		{"eleve cannot vote", RequireVoter(), models.Standard(models.RoleEleve), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(AuthMiddleware(), tt.gate)
			assert.Equal(t, tt.status, do(r, token(t, 1, tt.role)).Code)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newRouter(OptionalAuth(), RequireVoter())
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	r = newRouter(OptionalAuth())
	w := do(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)
}

func TestRateLimit(t *testing.T) {
	r := newRouter(RateLimit(0.001, 2))

	assert.Equal(t, http.StatusOK, do(r, "").Code)
	assert.Equal(t, http.StatusOK, do(r, "").Code)
	w := do(r, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestLimiterCacheReset(t *testing.T) {
	lc := newLimiterCache[int](1, 1)
	for i := 0; i < maxLimiters; i++ {
		lc.get(i)
	}
	first := lc.get(0)
	assert.Same(t, first, lc.get(0))

	lc.get(maxLimiters + 1)
	assert.Len(t, lc.limiters, 1)
}

func TestRequestLogger(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	r := newRouter(RequestLogger(log))
	assert.Equal(t, http.StatusOK, do(r, "").Code)
}
