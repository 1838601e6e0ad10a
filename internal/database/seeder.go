// File: internal/database/seeder.go
package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zml18x/SMS-Backend-sub000/internal/config"
	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// SeedDefaultAdmin creates an administrator account for development environments.
func SeedDefaultAdmin(ctx context.Context, cfg config.Config, users core.UserRepository, logger zerolog.Logger) {
	// Only seed in development environment
	if !cfg.IsDevelopment() || cfg.DefaultAdminUsername == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	existing, err := users.GetByEmailOrUsername(ctx, cfg.DefaultAdminEmail, cfg.DefaultAdminUsername)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to check for default admin")
		return
	}

	if existing != nil {
		if err := users.AddRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			logger.Error().Err(err).Msg("Failed to grant admin role to default admin")
			return
		}
		logger.Info().Str("username", existing.Username).Msg("Default admin already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash default admin password")
		return
	}

	now := time.Now()
	admin := &models.User{
		ID:           uuid.New().String(),
		Username:     cfg.DefaultAdminUsername,
		Email:        cfg.DefaultAdminEmail,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		Roles:        []string{models.RoleAdmin, models.RoleCustomer},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := users.Create(ctx, admin); err != nil {
		logger.Error().Err(err).Msg("Failed to create default admin")
		return
	}

	logger.Info().Str("username", admin.Username).Msg("Default admin created successfully")
}
