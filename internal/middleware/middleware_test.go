package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
	err    error
	tokens []string
}

func (v *validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	v.tokens = append(v.tokens, token)
	return v.claims, v.err
}

type observerStub struct {
	mu    sync.Mutex
	paths []string
	codes []int
}

func (o *observerStub) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paths = append(o.paths, path)
	o.codes = append(o.codes, status)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func newProtectedRouter(validator TokenValidator, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWT(validator)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": Claims(c).UserID})
	})
	r.GET("/private", handlers...)
	return r
}

func TestJWTMiddleware(t *testing.T) {
	validator := &validatorStub{claims: &models.JWTClaims{UserID: 4, Role: models.RoleStaff}}
	r := newProtectedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"abc"}, validator.tokens)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	validator := &validatorStub{err: appErrors.Wrap(errors.New("expired"), appErrors.ErrUnauthorized.Code, http.StatusUnauthorized, "invalid token")}
	r := newProtectedRouter(validator)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer stale")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	student := &validatorStub{claims: &models.JWTClaims{UserID: 9, Role: models.RoleStudent}}
	admin := &validatorStub{claims: &models.JWTClaims{UserID: 1, Role: models.RoleAdmin}}

	for _, tc := range []struct {
		validator *validatorStub
		want      int
	}{
		{student, http.StatusForbidden},
		{admin, http.StatusOK},
	} {
		r := newProtectedRouter(tc.validator, models.RoleAdmin, models.RoleFaculty)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer t")
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(60, 2)
	assert.True(t, limiter.Allow("user:1"))
	assert.True(t, limiter.Allow("user:1"))
	assert.False(t, limiter.Allow("user:1"))
	assert.True(t, limiter.Allow("user:2"), "buckets are per caller")

	unlimited := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, unlimited.Allow("x"))
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings", NewRateLimiter(1, 1).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/bookings", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", errorCode(t, w))
}

func TestMetricsMiddlewareLabelsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &observerStub{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.GET("/bookings/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/12", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, []string{"/bookings/:id", "unmatched"}, observer.paths)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, observer.codes)
}

func TestResponseMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ResponseMeta())
	var captured map[string]interface{}
	r.GET("/conflicts", func(c *gin.Context) {
		SetCacheHit(c, true)
		captured = Meta(c)
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/conflicts", nil))

	require.NotNil(t, captured)
	assert.Equal(t, true, captured["cache_hit"])
}
