package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zml18x/SMS-Backend-sub000/internal/auth"
	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/metrics"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
)

type AuthService struct {
	users  core.UserRepository
	tokens core.TokenRepository
	issuer *auth.TokenManager
	now    func() time.Time
}

func NewAuthService(users core.UserRepository, tokens core.TokenRepository, issuer *auth.TokenManager) core.AuthService {
	return &AuthService{users: users, tokens: tokens, issuer: issuer, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	existing, err := s.users.GetByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user with this email or username %w", ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	newUser := &models.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		Roles:        []string{models.RoleCustomer},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, translate(err, "user")
	}
	return &models.RegisterResponse{UserID: newUser.ID, Username: newUser.Username, Email: newUser.Email}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.GetByEmailOrUsername(ctx, req.Username, req.Username)
	if err != nil {
		metrics.AuthLogins.WithLabelValues("error").Inc()
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		metrics.AuthLogins.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	_ = s.users.UpdateLastLogin(ctx, user.ID)

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		metrics.AuthLogins.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.AuthLogins.WithLabelValues("success").Inc()
	return resp, nil
}

// Refresh rotates a refresh token. Presenting an already revoked token is treated as theft
// and revokes every session of its owner.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	stored, err := s.tokens.FindByHash(ctx, auth.HashRefreshToken(refreshToken))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	if stored.RevokedAt != nil {
		return nil, s.revokeSessions(ctx, stored.UserID)
	}
	if !stored.IsUsable(s.now()) {
		return nil, ErrInvalidToken
	}

	if err := s.tokens.Revoke(ctx, stored.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Lost a race against another refresh with the same token.
			return nil, s.revokeSessions(ctx, stored.UserID)
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token. Unknown or already revoked tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	stored, err := s.tokens.FindByHash(ctx, auth.HashRefreshToken(refreshToken))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if stored.RevokedAt != nil {
		return nil
	}
	if err := s.tokens.Revoke(ctx, stored.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return translate(err, "user")
	}

	// Verify old password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", ErrInvalidCredentials)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(newHash)); err != nil {
		return translate(err, "user")
	}
	_, err = s.tokens.RevokeAllForUser(ctx, userID)
	return err
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	accessToken, expiresAt, err := s.issuer.IssueAccessToken(user.ID, user.Roles)
	if err != nil {
		return nil, err
	}

	refreshToken, hash, refreshExpiresAt, err := s.issuer.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Store(ctx, &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: hash,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: s.now(),
	}); err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		TokenPair: models.TokenPair{
			AccessToken:      accessToken,
			RefreshToken:     refreshToken,
			TokenType:        "Bearer",
			ExpiresAt:        expiresAt.Unix(),
			RefreshExpiresAt: refreshExpiresAt.Unix(),
		},
		User: models.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email, Roles: user.Roles},
	}, nil
}

func (s *AuthService) revokeSessions(ctx context.Context, userID string) error {
	if _, err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}
	return fmt.Errorf("refresh token reuse detected: %w", ErrInvalidToken)
}
