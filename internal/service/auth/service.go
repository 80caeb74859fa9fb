package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/boris2442/task-bml/internal/domain/auth"
	"github.com/boris2442/task-bml/internal/domain/user"
	"github.com/boris2442/task-bml/internal/pkg/jwt"
)

type authServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the account exists.
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	slog.Info("User logged in", "user_id", u.ID, "role", u.Role)
	return auth.LoginResponse{
		TokenPair: pair,
		UserID:    u.ID,
		Name:      u.Name,
		Role:      string(u.Role),
		BadgeCode: u.BadgeCode,
	}, nil
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenPair{}, auth.ErrTokenRevoked
	}

	token, err := s.jwtService.JWTAuth().Decode(refreshToken)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenPair{}, auth.ErrInvalidToken
	}

	// Rotate: the old refresh token can no longer be replayed.
	s.jwtService.RevokeToken(refreshToken)

	pair, err := s.issueTokens(u)
	if err != nil {
		return auth.TokenPair{}, err
	}

	slog.Info("Tokens refreshed", "user_id", u.ID)
	return pair, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
	return nil
}

func (s *authServiceImpl) issueTokens(u user.User) (auth.TokenPair, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return auth.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}
