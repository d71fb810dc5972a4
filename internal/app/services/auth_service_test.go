package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/auth"
)

type authFixture struct {
	svc    *authServiceImpl
	users  *fakeUsers
	tokens *fakeTokens
	otps   *fakeOTPs
	mail   *fakeEmail
	now    time.Time
}

func newAuthFixture(t *testing.T, cfg AuthConfig) *authFixture {
	t.Helper()
	auth.BcryptCost = 4

	f := &authFixture{
		users:  newFakeUsers(),
		tokens: newFakeTokens(),
		mail:   &fakeEmail{},
		now:    time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }
	f.otps = &fakeOTPs{otps: map[int64]*models.OTP{}, users: f.users, tokens: f.tokens, now: clock}

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "tu-chat-test"})
	profiles := NewProfileService(f.users, &fakeStorage{}, zerolog.Nop())
	svc := NewAuthService(newFakeDirectory(), f.users, f.tokens, f.otps, jwtService, f.mail, profiles, cfg, zerolog.Nop())
	f.svc = svc.(*authServiceImpl)
	f.svc.now = clock
	return f
}

func registerReq(username, email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		UniversityName: "X",
		CampusName:     "Y",
		CourseName:     "Z",
		Username:       username,
		Email:          email,
		Password:       "password1",
		PhoneNumber:    "+255700000000",
	}
}

func TestRegisterCreatesUserProfileAndToken(t *testing.T) {
	f := newAuthFixture(t, AuthConfig{})
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, registerReq("alice", "A@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.NotEmpty(t, resp.Token)

	profile := f.users.profiles[resp.UserID]
	require.NotNil(t, profile)
	assert.Equal(t, int64(1), profile.UniversityID)
	assert.Equal(t, int64(10), profile.CampusID)
	assert.Equal(t, int64(100), profile.CourseID)

	claims, err := f.svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Len(t, f.tokens.tokens, 1)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newAuthFixture(t, AuthConfig{})
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("alice", "a@x.com"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerReq("bob", "a@x.com"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Email already exists", apperrors.Message(err))

	_, err = f.svc.Register(ctx, registerReq("alice", "other@x.com"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Username already exists", apperrors.Message(err))
}

func TestRegisterResolvesNamesWithinParent(t *testing.T) {
	f := newAuthFixture(t, AuthConfig{})
	ctx := context.Background()

	req := registerReq("alice", "a@x.com")
	req.UniversityName = "Nowhere"
	_, err := f.svc.Register(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "Invalid university selection", apperrors.Message(err))

	// Campus "Y" exists under both universities, course "Z" only under the first.
	req = registerReq("alice", "a@x.com")
	req.UniversityName = "Other"
	_, err = f.svc.Register(ctx, req)
	assert.Equal(t, "Invalid course selection", apperrors.Message(err))
	assert.Empty(t, f.users.users)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token and profile", func(t *testing.T) {
		f := newAuthFixture(t, AuthConfig{})
		reg, err := f.svc.Register(ctx, registerReq("alice", "a@x.com"))
		require.NoError(t, err)

		resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "password1"})
		require.NoError(t, err)
		assert.Equal(t, reg.UserID, resp.UserID)
		assert.Equal(t, "alice", resp.Profile.Username)
		assert.Equal(t, "X", resp.Profile.University)
		assert.NotEqual(t, reg.Token, resp.Token)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		f := newAuthFixture(t, AuthConfig{})
		_, err := f.svc.Register(ctx, registerReq("alice", "a@x.com"))
		require.NoError(t, err)

		_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "wrong-pass"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		assert.Equal(t, "Invalid credentials", err.Error())

		_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: "password1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email revealed when configured", func(t *testing.T) {
		f := newAuthFixture(t, AuthConfig{RevealUnknownEmail: true})
		_, err := f.svc.Login(ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: "password1"})
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t, AuthConfig{})
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, registerReq("alice", "a@x.com"))
	require.NoError(t, err)
	claims, err := f.svc.ValidateToken(ctx, reg.Token)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims.ID))
	_, err = f.svc.ValidateToken(ctx, reg.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	assert.ErrorIs(t, f.svc.Logout(ctx, claims.ID), apperrors.ErrTokenNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t, AuthConfig{OTPTTL: 15 * time.Minute})
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, registerReq("alice", "a@x.com"))
	require.NoError(t, err)

	// Resetting before verification fails.
	err = f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "a@x.com", NewPassword: "new-password"})
	assert.ErrorIs(t, err, apperrors.ErrOTPNotVerified)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, &dto.RequestOTPRequest{Email: "a@x.com"}))
	assert.Equal(t, "a@x.com", f.mail.to)
	require.Len(t, f.mail.code, 6)
	first := f.mail.code

	// A second request replaces the code.
	require.NoError(t, f.svc.RequestPasswordReset(ctx, &dto.RequestOTPRequest{Email: "a@x.com"}))
	assert.Equal(t, f.mail.code, f.otps.otps[reg.UserID].Code)
	if first != f.mail.code {
		err = f.svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "a@x.com", OTPCode: first})
		assert.ErrorIs(t, err, apperrors.ErrOTPInvalid)
	}

	verify := &dto.VerifyOTPRequest{Email: "a@x.com", OTPCode: f.mail.code}
	require.NoError(t, f.svc.VerifyOTP(ctx, verify))

	err = f.svc.VerifyOTP(ctx, verify)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "OTP has already been used", apperrors.Message(err))

	require.NoError(t, f.svc.ResetPassword(ctx, &dto.ResetPasswordRequest{Email: "a@x.com", NewPassword: "new-password"}))
	assert.Empty(t, f.otps.otps)
	assert.Empty(t, f.tokens.tokens, "reset revokes existing tokens")

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "password1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "new-password"})
	assert.NoError(t, err)
}

func TestVerifyOTPExpiry(t *testing.T) {
	f := newAuthFixture(t, AuthConfig{OTPTTL: 15 * time.Minute})
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("alice", "a@x.com"))
	require.NoError(t, err)
	require.NoError(t, f.svc.RequestPasswordReset(ctx, &dto.RequestOTPRequest{Email: "a@x.com"}))

	f.now = f.now.Add(16 * time.Minute)
	err = f.svc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Email: "a@x.com", OTPCode: f.mail.code})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "OTP has expired", apperrors.Message(err))
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t, AuthConfig{})
	err := f.svc.RequestPasswordReset(context.Background(), &dto.RequestOTPRequest{Email: "nobody@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Empty(t, f.mail.code)
}
