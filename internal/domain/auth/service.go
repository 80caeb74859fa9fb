package auth

import "context"

type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
