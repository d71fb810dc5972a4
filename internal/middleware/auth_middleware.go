package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/auth"
)

// Context keys set by the auth middlewares
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextEmail    = "email"
	ContextTokenID  = "tokenID"
)

// TokenValidator checks a raw token against the signing key and the token store
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	validator TokenValidator
	logger    zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// tokenFromRequest reads the Authorization header, falling back to the
// query parameter Swagger UI sometimes uses.
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		return h
	}
	return c.Query("token")
}

func (m *AuthMiddleware) authenticate(c *gin.Context, header string) (*auth.Claims, error) {
	raw, err := auth.ExtractBearerToken(header)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid token format")
	}
	claims, err := m.validator.ValidateToken(c.Request.Context(), raw)
	if err != nil {
		return nil, err
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextTokenID, claims.ID)
	return claims, nil
}

// JWTAuth rejects requests without a valid, unrevoked token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := tokenFromRequest(c)
		if header == "" {
			HandleAPIError(c, apperrors.NewUnauthorizedError("Authentication credentials were not provided."))
			c.Abort()
			return
		}

		if _, err := m.authenticate(c, header); err != nil {
			m.logger.Debug().Err(err).Str("path", c.FullPath()).Msg("Token rejected")
			HandleAPIError(c, tokenError(err))
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := tokenFromRequest(c); header != "" {
			if _, err := m.authenticate(c, header); err != nil {
				m.logger.Debug().Err(err).Str("path", c.FullPath()).Msg("Ignoring invalid token on optional route")
			}
		}
		c.Next()
	}
}

// tokenError gives token failures a client-facing message
func tokenError(err error) error {
	if apperrors.Message(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, apperrors.ErrTokenExpired):
		return apperrors.NewCustomError(apperrors.ErrTokenExpired, "Token has expired")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		return apperrors.NewCustomError(apperrors.ErrTokenNotFound, "Invalid token.")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Invalid token.")
	default:
		return err
	}
}

// CurrentUserID returns the authenticated caller, if any
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// CurrentTokenID returns the jti of the token the request was authenticated with
func CurrentTokenID(c *gin.Context) string {
	return c.GetString(ContextTokenID)
}

// ActingUserID resolves the user a request acts for. An authenticated caller
// may only act for themself; an anonymous request must name the user.
func ActingUserID(c *gin.Context, claimed *int64) (int64, error) {
	caller, authenticated := CurrentUserID(c)
	switch {
	case authenticated && claimed != nil && *claimed != caller:
		return 0, apperrors.ErrActingForAnotherUser
	case authenticated:
		return caller, nil
	case claimed != nil && *claimed > 0:
		return *claimed, nil
	default:
		return 0, apperrors.NewUnauthorizedError("Authentication credentials were not provided.")
	}
}
