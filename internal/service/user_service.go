package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

type UserService struct {
	repo core.UserRepository
}

func NewUserService(repo core.UserRepository) core.UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, translate(err, "profile")
	}
	return &models.ProfileResponse{User: user, Profile: profile}, nil
}

// UpdateProfile writes only the parts of the account and profile that actually changed.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.UpdateResult[*models.ProfileResponse], error) {
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldUsername, oldEmail := current.User.Username, current.User.Email
	accountChanged := current.User.ApplyAccount(req)
	profileChanged := current.Profile.Apply(req)

	if accountChanged {
		if current.User.Username != oldUsername || current.User.Email != oldEmail {
			if err := s.ensureUnique(ctx, current.User); err != nil {
				return nil, err
			}
		}
		if err := s.repo.Update(ctx, current.User); err != nil {
			return nil, translate(err, "user")
		}
	}
	if profileChanged {
		if err := s.repo.UpsertProfile(ctx, current.Profile); err != nil {
			return nil, translate(err, "profile")
		}
	}

	if !accountChanged && !profileChanged {
		return &models.UpdateResult[*models.ProfileResponse]{Item: current, Changed: false}, nil
	}

	updated, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UpdateResult[*models.ProfileResponse]{Item: updated, Changed: true}, nil
}

func (s *UserService) ensureUnique(ctx context.Context, user *models.User) error {
	existing, err := s.repo.GetByEmailOrUsername(ctx, user.Email, user.Username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return fmt.Errorf("user with this email or username %w", ErrConflict)
	}
	return nil
}

func (s *UserService) GetUsers(ctx context.Context, page, limit int) ([]models.User, *models.PaginationMetadata, error) {
	page, limit, offset := models.NormalizePage(page, limit)

	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	totalCount, err := s.repo.Count(ctx)
	if err != nil {
		return nil, nil, err
	}

	return users, models.NewPaginationMetadata(page, limit, totalCount), nil
}

func (s *UserService) SetRoles(ctx context.Context, userID string, roles []string) error {
	if len(roles) == 0 {
		return fmt.Errorf("at least one role is required: %w", ErrBadRequest)
	}
	for _, role := range roles {
		if !models.IsValidRole(role) {
			return fmt.Errorf("unknown role %q: %w", role, ErrBadRequest)
		}
	}

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return translate(err, "user")
	}

	roles = slices.Clone(roles)
	slices.Sort(roles)
	return translate(s.repo.SetRoles(ctx, userID, slices.Compact(roles)), "user")
}
