package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colloq/colloq/internal/app/models"
	"github.com/colloq/colloq/internal/app/models/dto"
	"github.com/colloq/colloq/internal/pkg/apperrors"
	"github.com/colloq/colloq/internal/pkg/auth"
	"github.com/colloq/colloq/internal/pkg/captcha"
)

// AuthUserStore is the slice of user storage the auth service needs
type AuthUserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// UniversityLookup resolves a university id to its record
type UniversityLookup interface {
	GetUniversityByID(ctx context.Context, id int64) (*models.University, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, dto.TokenResponse, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo        AuthUserStore
	universityRepo  UniversityLookup
	jwtService      *auth.JWTService
	captchaVerifier captcha.Verifier
	logger          zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo AuthUserStore,
	universityRepo UniversityLookup,
	jwtService *auth.JWTService,
	captchaVerifier captcha.Verifier,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:        userRepo,
		universityRepo:  universityRepo,
		jwtService:      jwtService,
		captchaVerifier: captchaVerifier,
		logger:          logger,
	}
}

// Register verifies the CAPTCHA, hashes the password and creates the account.
// New accounts are active but unverified; verification flips on the user's
// first note submission.
func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if err := s.captchaVerifier.Verify(ctx, req.CaptchaToken); err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("CAPTCHA verification failed during registration")
		return nil, err
	}

	if req.UniversityID != nil {
		if _, err := s.universityRepo.GetUniversityByID(ctx, *req.UniversityID); err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = strings.SplitN(email, "@", 2)[0]
	}

	user := &models.User{
		Email:        email,
		Password:     hashed,
		Nickname:     nickname,
		IsAdmin:      false,
		IsVerified:   false,
		IsActive:     true,
		UniversityID: req.UniversityID,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().Int64("userID", id).Str("email", user.Email).Msg("User registered")
	return user, nil
}

// Login checks credentials and issues an access token. A missing account and
// a wrong password produce the same error so the endpoint does not leak
// which emails exist.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.User, dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, dto.TokenResponse{}, apperrors.ErrInvalidCredentials
		}
		return nil, dto.TokenResponse{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, dto.TokenResponse{}, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, dto.TokenResponse{}, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Nickname, user.IsAdmin)
	if err != nil {
		return nil, dto.TokenResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return user, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn),
	}, nil
}
