package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// MockAuthService is a mock implementation of core.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	args := m.Called(ctx, req)
	return get[*models.RegisterResponse](args, 0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	return get[*models.LoginResponse](args, 0), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	args := m.Called(ctx, refreshToken)
	return get[*models.LoginResponse](args, 0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

// MockUserService is a mock implementation of core.UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	return get[*models.ProfileResponse](args, 0), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.UpdateResult[*models.ProfileResponse], error) {
	args := m.Called(ctx, userID, req)
	return get[*models.UpdateResult[*models.ProfileResponse]](args, 0), args.Error(1)
}

func (m *MockUserService) GetUsers(ctx context.Context, page, limit int) ([]models.User, *models.PaginationMetadata, error) {
	args := m.Called(ctx, page, limit)
	return get[[]models.User](args, 0), get[*models.PaginationMetadata](args, 1), args.Error(2)
}

func (m *MockUserService) SetRoles(ctx context.Context, userID string, roles []string) error {
	return m.Called(ctx, userID, roles).Error(0)
}

// MockSalonService is a mock implementation of core.SalonService
type MockSalonService struct {
	mock.Mock
}

func (m *MockSalonService) CreateSalon(ctx context.Context, actor models.Actor, req models.CreateSalonRequest) (*models.Salon, error) {
	args := m.Called(ctx, actor, req)
	return get[*models.Salon](args, 0), args.Error(1)
}

func (m *MockSalonService) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	args := m.Called(ctx, id)
	return get[*models.Salon](args, 0), args.Error(1)
}

func (m *MockSalonService) ListSalons(ctx context.Context, city string, page, limit int) ([]models.Salon, *models.PaginationMetadata, error) {
	args := m.Called(ctx, city, page, limit)
	return get[[]models.Salon](args, 0), get[*models.PaginationMetadata](args, 1), args.Error(2)
}

func (m *MockSalonService) ListMySalons(ctx context.Context, actor models.Actor) ([]models.Salon, error) {
	args := m.Called(ctx, actor)
	return get[[]models.Salon](args, 0), args.Error(1)
}

func (m *MockSalonService) UpdateSalon(ctx context.Context, actor models.Actor, id string, req models.UpdateSalonRequest) (*models.UpdateResult[*models.Salon], error) {
	args := m.Called(ctx, actor, id, req)
	return get[*models.UpdateResult[*models.Salon]](args, 0), args.Error(1)
}

func (m *MockSalonService) DeleteSalon(ctx context.Context, actor models.Actor, id string) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockSalonService) GetOpeningHours(ctx context.Context, salonID string) ([]models.OpeningHours, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.OpeningHours](args, 0), args.Error(1)
}

func (m *MockSalonService) SetOpeningHours(ctx context.Context, actor models.Actor, salonID string, req models.SetOpeningHoursRequest) ([]models.OpeningHours, error) {
	args := m.Called(ctx, actor, salonID, req)
	return get[[]models.OpeningHours](args, 0), args.Error(1)
}

func (m *MockSalonService) Authorize(ctx context.Context, actor models.Actor, salonID string) (*models.Salon, error) {
	args := m.Called(ctx, actor, salonID)
	return get[*models.Salon](args, 0), args.Error(1)
}

// MockEmployeeService is a mock implementation of core.EmployeeService
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) CreateEmployee(ctx context.Context, actor models.Actor, salonID string, req models.CreateEmployeeRequest) (*models.EmployeeDetails, error) {
	args := m.Called(ctx, actor, salonID, req)
	return get[*models.EmployeeDetails](args, 0), args.Error(1)
}

func (m *MockEmployeeService) GetEmployee(ctx context.Context, salonID, id string) (*models.EmployeeDetails, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.EmployeeDetails](args, 0), args.Error(1)
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context, salonID string) ([]models.Employee, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.Employee](args, 0), args.Error(1)
}

func (m *MockEmployeeService) UpdateEmployee(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateEmployeeRequest) (*models.UpdateResult[*models.Employee], error) {
	args := m.Called(ctx, actor, salonID, id, req)
	return get[*models.UpdateResult[*models.Employee]](args, 0), args.Error(1)
}

func (m *MockEmployeeService) DeleteEmployee(ctx context.Context, actor models.Actor, salonID, id string) error {
	return m.Called(ctx, actor, salonID, id).Error(0)
}

func (m *MockEmployeeService) GetEmployeeProfile(ctx context.Context, salonID, id string) (*models.EmployeeProfile, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.EmployeeProfile](args, 0), args.Error(1)
}

func (m *MockEmployeeService) UpdateEmployeeProfile(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateEmployeeProfileRequest) (*models.UpdateResult[*models.EmployeeProfile], error) {
	args := m.Called(ctx, actor, salonID, id, req)
	return get[*models.UpdateResult[*models.EmployeeProfile]](args, 0), args.Error(1)
}

// MockCatalogService is a mock implementation of core.CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateService(ctx context.Context, actor models.Actor, salonID string, req models.CreateServiceRequest) (*models.Service, error) {
	args := m.Called(ctx, actor, salonID, req)
	return get[*models.Service](args, 0), args.Error(1)
}

func (m *MockCatalogService) GetService(ctx context.Context, salonID, id string) (*models.Service, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Service](args, 0), args.Error(1)
}

func (m *MockCatalogService) ListServices(ctx context.Context, salonID string) ([]models.Service, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.Service](args, 0), args.Error(1)
}

func (m *MockCatalogService) UpdateService(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateServiceRequest) (*models.UpdateResult[*models.Service], error) {
	args := m.Called(ctx, actor, salonID, id, req)
	return get[*models.UpdateResult[*models.Service]](args, 0), args.Error(1)
}

func (m *MockCatalogService) DeleteService(ctx context.Context, actor models.Actor, salonID, id string) error {
	return m.Called(ctx, actor, salonID, id).Error(0)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, actor models.Actor, salonID string, req models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, actor, salonID, req)
	return get[*models.Product](args, 0), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, salonID, id string) (*models.Product, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Product](args, 0), args.Error(1)
}

func (m *MockCatalogService) ListProducts(ctx context.Context, salonID string) ([]models.Product, error) {
	args := m.Called(ctx, salonID)
	return get[[]models.Product](args, 0), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateProductRequest) (*models.UpdateResult[*models.Product], error) {
	args := m.Called(ctx, actor, salonID, id, req)
	return get[*models.UpdateResult[*models.Product]](args, 0), args.Error(1)
}

func (m *MockCatalogService) AdjustStock(ctx context.Context, actor models.Actor, salonID, id string, delta int) (*models.Product, error) {
	args := m.Called(ctx, actor, salonID, id, delta)
	return get[*models.Product](args, 0), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, actor models.Actor, salonID, id string) error {
	return m.Called(ctx, actor, salonID, id).Error(0)
}

// MockAppointmentService is a mock implementation of core.AppointmentService
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Book(ctx context.Context, actor models.Actor, salonID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	args := m.Called(ctx, actor, salonID, req)
	return get[*models.Appointment](args, 0), args.Error(1)
}

func (m *MockAppointmentService) Get(ctx context.Context, actor models.Actor, salonID, id string) (*models.Appointment, error) {
	args := m.Called(ctx, actor, salonID, id)
	return get[*models.Appointment](args, 0), args.Error(1)
}

func (m *MockAppointmentService) ListForSalon(ctx context.Context, actor models.Actor, salonID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, actor, salonID, filter)
	return get[[]models.Appointment](args, 0), args.Error(1)
}

func (m *MockAppointmentService) ListMine(ctx context.Context, actor models.Actor) ([]models.Appointment, error) {
	args := m.Called(ctx, actor)
	return get[[]models.Appointment](args, 0), args.Error(1)
}

func (m *MockAppointmentService) UpdateStatus(ctx context.Context, actor models.Actor, salonID, id, status string) (*models.Appointment, error) {
	args := m.Called(ctx, actor, salonID, id, status)
	return get[*models.Appointment](args, 0), args.Error(1)
}

// MockPaymentService is a mock implementation of core.PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Record(ctx context.Context, actor models.Actor, salonID string, req models.RecordPaymentRequest) (*models.Payment, error) {
	args := m.Called(ctx, actor, salonID, req)
	return get[*models.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentService) Get(ctx context.Context, actor models.Actor, salonID, id string) (*models.Payment, error) {
	args := m.Called(ctx, actor, salonID, id)
	return get[*models.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentService) ListForSalon(ctx context.Context, actor models.Actor, salonID string, page, limit int) ([]models.Payment, *models.PaginationMetadata, error) {
	args := m.Called(ctx, actor, salonID, page, limit)
	return get[[]models.Payment](args, 0), get[*models.PaginationMetadata](args, 1), args.Error(2)
}

func (m *MockPaymentService) ListForAppointment(ctx context.Context, actor models.Actor, salonID, appointmentID string) ([]models.Payment, error) {
	args := m.Called(ctx, actor, salonID, appointmentID)
	return get[[]models.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentService) Refund(ctx context.Context, actor models.Actor, salonID, id string) (*models.Payment, error) {
	args := m.Called(ctx, actor, salonID, id)
	return get[*models.Payment](args, 0), args.Error(1)
}
