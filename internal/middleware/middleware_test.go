package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/auth"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

type stubValidator map[string]*auth.Claims

func (s stubValidator) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, apperrors.ErrTokenNotFound
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(stubValidator{
		"good": {UserID: 7, Username: "alice", RegisteredClaims: jwt.RegisteredClaims{ID: "jti-7"}},
	}, zerolog.Nop())

	r := gin.New()
	whoami := func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok, "jti": CurrentTokenID(c)})
	}
	r.GET("/required", m.JWTAuth(), whoami)
	r.GET("/optional", m.OptionalAuth(), whoami)
	return r
}

func TestJWTAuth(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"bearer", "Bearer good", http.StatusOK},
		{"legacy token scheme", "Token good", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"revoked", "Bearer other", http.StatusUnauthorized},
		{"bad scheme", "Basic good", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/required", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			body := decodeBody(t, w)
			if tt.status == http.StatusOK {
				assert.Equal(t, float64(7), body["id"])
				assert.Equal(t, "jti-7", body["jti"])
			} else {
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["ok"])

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, true, decodeBody(t, w)["ok"])
}

func TestActingUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	claimed := func(v int64) *int64 { return &v }

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id, err := ActingUserID(c, claimed(3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	_, err = ActingUserID(c, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	c.Set(ContextUserID, int64(5))
	id, err = ActingUserID(c, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	id, err = ActingUserID(c, claimed(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	_, err = ActingUserID(c, claimed(3))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{apperrors.NewBadRequestError("Content is required"), http.StatusBadRequest, "Content is required"},
		{apperrors.ErrNoMessages, http.StatusNotFound, "No messages found"},
		{apperrors.ErrUsernameExists, http.StatusConflict, "Username already exists"},
		{apperrors.ErrActingForAnotherUser, http.StatusForbidden, "You cannot act on behalf of another user"},
		{apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials"), http.StatusUnauthorized, "Invalid credentials"},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized, "Token expired"},
		{errors.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, tt.err)

		assert.Equal(t, tt.status, w.Code, tt.message)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tt.message, body["error"])
		assert.NotEmpty(t, body["code"])
		assert.NotEmpty(t, body["timestamp"])
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, w)["error"])
}

func TestHandleValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	type payload struct {
		Email string `json:"email" binding:"required,email"`
	}

	bind := func(body string) error {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var p payload
		return c.ShouldBindJSON(&p)
	}

	resp := HandleValidationError(bind(`{}`))
	assert.Equal(t, "Email is required", resp.Error)
	resp = HandleValidationError(bind(`{"email":"nope"}`))
	assert.Equal(t, "Email must be a valid email address", resp.Error)
	resp = HandleValidationError(bind(`{"email":`))
	assert.Equal(t, "Invalid request format", resp.Error)
}

func TestBaseURLAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://app.tu.ac"}), BaseURL())
	r.GET("/url", func(c *gin.Context) {
		c.String(http.StatusOK, helpers.AbsoluteURL(c.Request.Context(), "/media/a.png"))
	})

	req := httptest.NewRequest(http.MethodGet, "/url", nil)
	req.Host = "api.tu.ac"
	req.Header.Set("Origin", "https://app.tu.ac")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://api.tu.ac/media/a.png", w.Body.String())
	assert.Equal(t, "https://app.tu.ac", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/url", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", NewRateLimiter(2).Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	unlimited := gin.New()
	unlimited.POST("/login", NewRateLimiter(0).Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		unlimited.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5)
	rl.now = func() time.Time { return clock }
	rl.lastSweep = clock

	rl.limiter("10.0.0.1")
	rl.limiter("10.0.0.2")
	assert.Equal(t, 2, len(rl.visitors))

	clock = clock.Add(5 * time.Minute)
	rl.limiter("10.0.0.2")
	assert.Equal(t, 2, len(rl.visitors))

	clock = clock.Add(limiterIdleTTL)
	rl.limiter("10.0.0.3")
	assert.Equal(t, 1, len(rl.visitors))
}

func TestBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var readErr error
	var limit int64
	r := gin.New()
	r.POST("/upload", BodyLimit(8), func(c *gin.Context) {
		limit = UploadLimit(c)
		_, readErr = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", io.MultiReader(strings.NewReader("0123456789"))))
	assert.True(t, IsBodyTooLarge(readErr))
	assert.Equal(t, int64(8), limit)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, readErr)
}
