package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Roomio/config"
	roomio_redis "Roomio/services/redis"
	"Roomio/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware_test_secret_with_32_chars_min"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:      "test",
		SessionKey:  "session-key",
		JWTSecret:   testSecret,
		TokenTTL:    time.Hour,
		CORSOrigins: []string{"*"},
	}
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	SetUpMiddleware(r, testConfig())
	r.POST("/login/:id", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(UserIDKey, c.Param("id"))
		if err := s.Save(); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/me", AuthRequired(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": CurrentUserID(c)})
	})
	return r
}

func sessionCookie(t *testing.T, r *gin.Engine, userID string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login/"+userID, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestAuthRequired(t *testing.T) {
	r := newAuthRouter()
	token, err := utils.GenerateJWT("bearer-user", testSecret, time.Hour)
	require.NoError(t, err)
	cookie := sessionCookie(t, r, "session-user")

	tests := []struct {
		name       string
		header     string
		cookie     *http.Cookie
		wantStatus int
		wantUser   string
	}{
		{name: "bearer", header: "Bearer " + token, wantStatus: http.StatusOK, wantUser: "bearer-user"},
		{name: "bearer wins over session", header: "Bearer " + token, cookie: cookie, wantStatus: http.StatusOK, wantUser: "bearer-user"},
		{name: "session fallback", cookie: cookie, wantStatus: http.StatusOK, wantUser: "session-user"},
		{name: "invalid bearer does not fall back", header: "Bearer nope", cookie: cookie, wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "nothing", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantUser != "" {
				assert.JSONEq(t, `{"userId":"`+tt.wantUser+`"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return false, errors.New("redis down")
}

func rateLimitedRouter(l Limiter, perMinute int) *gin.Engine {
	r := gin.New()
	r.GET("/ping", RateLimit(l, perMinute), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := roomio_redis.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	limiters := map[string]Limiter{
		"memory": NewMemoryLimiter(),
		"redis":  rc,
	}
	for name, l := range limiters {
		t.Run(name, func(t *testing.T) {
			r := rateLimitedRouter(l, 2)
			assert.Equal(t, http.StatusOK, hit(r))
			assert.Equal(t, http.StatusOK, hit(r))
			assert.Equal(t, http.StatusTooManyRequests, hit(r))
		})
	}

	t.Run("fails open", func(t *testing.T) {
		r := rateLimitedRouter(failingLimiter{}, 1)
		assert.Equal(t, http.StatusOK, hit(r))
		assert.Equal(t, http.StatusOK, hit(r))
	})
}

func TestMemoryLimiterWindowResets(t *testing.T) {
	l := NewMemoryLimiter()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "k", 1, time.Minute)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "k", 1, time.Minute)
	assert.False(t, ok)

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "k", 1, time.Minute)
	assert.True(t, ok)

	l.Reset()
	ok, _ = l.Allow(ctx, "k", 1, time.Minute)
	assert.True(t, ok)
}
