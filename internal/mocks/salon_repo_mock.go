package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

type MockSalonRepository struct {
	mock.Mock
}

func (m *MockSalonRepository) Create(ctx context.Context, salon *models.Salon) error {
	return m.Called(ctx, salon).Error(0)
}

func (m *MockSalonRepository) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	args := m.Called(ctx, id)
	return get[*models.Salon](args, 0), args.Error(1)
}

func (m *MockSalonRepository) List(ctx context.Context, city string, limit, offset int) ([]models.Salon, error) {
	args := m.Called(ctx, city, limit, offset)
	return get[[]models.Salon](args, 0), args.Error(1)
}

func (m *MockSalonRepository) Count(ctx context.Context, city string) (int, error) {
	args := m.Called(ctx, city)
	return args.Int(0), args.Error(1)
}

func (m *MockSalonRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Salon, error) {
	args := m.Called(ctx, ownerID)
	return get[[]models.Salon](args, 0), args.Error(1)
}

func (m *MockSalonRepository) Update(ctx context.Context, salon *models.Salon) error {
	return m.Called(ctx, salon).Error(0)
}

func (m *MockSalonRepository) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSalonRepository) GetOpeningHours(ctx context.Context, salonID string) ([]models.OpeningHours, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.OpeningHours](args, 0), args.Error(1)
}

func (m *MockSalonRepository) ReplaceOpeningHours(ctx context.Context, salonID string, hours []models.OpeningHours) error {
	return m.Called(ctx, salonID, hours).Error(0)
}

// MockCache is a mock implementation of core.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}
