package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *models.Employee, profile *models.EmployeeProfile) error {
	return m.Called(ctx, employee, profile).Error(0)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, salonID, id string) (*models.Employee, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Employee](args, 0), args.Error(1)
}

func (m *MockEmployeeRepository) ListBySalon(ctx context.Context, salonID string) ([]models.Employee, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.Employee](args, 0), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) Deactivate(ctx context.Context, salonID, id string) error {
	return m.Called(ctx, salonID, id).Error(0)
}

func (m *MockEmployeeRepository) GetProfile(ctx context.Context, employeeID string) (*models.EmployeeProfile, error) {
	args := m.Called(ctx, employeeID)
	return get[*models.EmployeeProfile](args, 0), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateProfile(ctx context.Context, profile *models.EmployeeProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *models.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceRepository) GetByID(ctx context.Context, salonID, id string) (*models.Service, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Service](args, 0), args.Error(1)
}

func (m *MockServiceRepository) ListBySalon(ctx context.Context, salonID string) ([]models.Service, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.Service](args, 0), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, service *models.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockServiceRepository) Deactivate(ctx context.Context, salonID, id string) error {
	return m.Called(ctx, salonID, id).Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, salonID, id string) (*models.Product, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) ListBySalon(ctx context.Context, salonID string) ([]models.Product, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, salonID, id string, delta int) (*models.Product, error) {
	args := m.Called(ctx, salonID, id, delta)
	return get[*models.Product](args, 0), args.Error(1)
}

func (m *MockProductRepository) Deactivate(ctx context.Context, salonID, id string) error {
	return m.Called(ctx, salonID, id).Error(0)
}
