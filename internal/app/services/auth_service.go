package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/aerowis/internal/app/models"
	"github.com/yigit/aerowis/internal/app/models/dto"
	"github.com/yigit/aerowis/internal/pkg/apperrors"
	"github.com/yigit/aerowis/internal/pkg/auth"
)

// AuthService handles operator authentication
type AuthService struct {
	operators  OperatorStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(operators OperatorStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		operators:  operators,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks an operator's credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.NewValidationError("username", "username is required")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationError("password", "password is required")
	}

	operator, err := s.operators.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			s.logger.Warn().Str("username", username).Msg("Login attempt for unknown operator")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(operator.PasswordHash, req.Password) {
		s.logger.Warn().Str("username", username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(operator.ID, operator.Username)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("operatorID", operator.ID).Msg("Operator logged in")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn),
	}, nil
}

// EnsureOperator creates the operator unless the username is already taken.
// It reports whether an account was created.
func (s *AuthService) EnsureOperator(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, apperrors.NewValidationError("username", "operator username and password are required")
	}

	if _, err := s.operators.GetByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	err = s.operators.Create(ctx, &models.Operator{Username: username, PasswordHash: hash})
	if errors.Is(err, apperrors.ErrOperatorExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
