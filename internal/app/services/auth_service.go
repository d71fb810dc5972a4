package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/auth"
	"github.com/sembesalum/tu-chat-api/internal/pkg/email"
)

var errBadCredentials = apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid credentials")

// AuthConfig holds the identity settings taken from configuration
type AuthConfig struct {
	// OTPTTL of zero lets a code be verified at any age.
	OTPTTL             time.Duration
	RevealUnknownEmail bool
}

// AuthService handles registration, sessions and password resets
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, tokenID string) error
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
	TokenInfo(ctx context.Context, userID int64) (*dto.TokenInfoResponse, error)
	RequestPasswordReset(ctx context.Context, req *dto.RequestOTPRequest) error
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authServiceImpl struct {
	directoryRepo DirectoryRepository
	userRepo      UserRepository
	tokenRepo     TokenRepository
	otpRepo       OTPRepository
	jwtService    *auth.JWTService
	emailService  email.EmailService
	profiles      ProfileService
	config        AuthConfig
	now           func() time.Time
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	directoryRepo DirectoryRepository,
	userRepo UserRepository,
	tokenRepo TokenRepository,
	otpRepo OTPRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	profiles ProfileService,
	config AuthConfig,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		directoryRepo: directoryRepo,
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		otpRepo:       otpRepo,
		jwtService:    jwtService,
		emailService:  emailService,
		profiles:      profiles,
		config:        config,
		now:           time.Now,
		logger:        logger,
	}
}

// Register resolves the directory names, creates the user with its profile
// and issues a token
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	universityID, err := s.directoryRepo.FindUniversityIDByName(ctx, strings.TrimSpace(req.UniversityName))
	if err != nil {
		return nil, err
	}
	campusID, err := s.directoryRepo.FindCampusIDByName(ctx, universityID, strings.TrimSpace(req.CampusName))
	if err != nil {
		return nil, err
	}
	courseID, err := s.directoryRepo.FindCourseIDByName(ctx, campusID, strings.TrimSpace(req.CourseName))
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		IsActive: true,
	}
	profile := &models.Profile{
		PhoneNumber:  req.PhoneNumber,
		UniversityID: universityID,
		CampusID:     campusID,
		CourseID:     courseID,
	}

	userID, err := s.userRepo.CreateUserWithProfile(ctx, user, profile)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("username", user.Username).Msg("User registered")
	return &dto.RegisterResponse{Token: token, Email: user.Email, UserID: userID}, nil
}

// Login checks the credentials and returns a fresh token with the profile
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			if s.config.RevealUnknownEmail {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, errBadCredentials
		}
		return nil, err
	}

	if !user.IsActive || !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login rejected")
		return nil, errBadCredentials
	}

	profile, err := s.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{UserID: user.ID, Token: token, Profile: *profile}, nil
}

func (s *authServiceImpl) issueToken(ctx context.Context, user *models.User) (string, error) {
	issued, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	if err := s.tokenRepo.CreateToken(ctx, issued.TokenID, user.ID, issued.ExpiresAt); err != nil {
		return "", fmt.Errorf("error storing token: %w", err)
	}
	return issued.Token, nil
}

// Logout revokes the token carrying tokenID
func (s *authServiceImpl) Logout(ctx context.Context, tokenID string) error {
	if err := s.tokenRepo.DeleteToken(ctx, tokenID); err != nil {
		return err
	}
	return nil
}

// ValidateToken checks the signature and that the token has not been revoked
func (s *authServiceImpl) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	stored, err := s.tokenRepo.GetToken(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if stored.UserID != claims.UserID {
		return nil, apperrors.ErrTokenInvalid
	}
	if stored.ExpiresAt != nil && s.now().After(*stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}
	return claims, nil
}

// TokenInfo describes the owner of a validated token
func (s *authServiceImpl) TokenInfo(ctx context.Context, userID int64) (*dto.TokenInfoResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenInfoResponse{UserID: user.ID, Email: user.Email, Username: user.Username}, nil
}

// RequestPasswordReset replaces the user's code with a new one and mails it
func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, req *dto.RequestOTPRequest) error {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return fmt.Errorf("error generating otp: %w", err)
	}
	if err := s.otpRepo.Upsert(ctx, user.ID, code); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetOTP(ctx, user.Email, user.Username, code); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
		return fmt.Errorf("error sending otp email: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset OTP issued")
	return nil
}

// VerifyOTP marks the user's code verified. A code verifies once.
func (s *authServiceImpl) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrOTPInvalid
		}
		return err
	}

	otp, err := s.otpRepo.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	if otp.Code != req.OTPCode {
		return apperrors.ErrOTPInvalid
	}
	if otp.Verified {
		return apperrors.ErrOTPAlreadyUsed
	}
	if s.config.OTPTTL > 0 && s.now().Sub(otp.CreatedAt) > s.config.OTPTTL {
		return apperrors.ErrOTPExpired
	}

	updated, err := s.otpRepo.MarkVerified(ctx, user.ID, req.OTPCode)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.ErrOTPAlreadyUsed
	}
	return nil
}

// ResetPassword sets the new password and consumes the verified code.
// Every token of the user is revoked.
func (s *authServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.otpRepo.ConsumeAndSetPassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Password reset")
	return nil
}
