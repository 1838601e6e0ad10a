package core

import (
	"context"
	"time"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// UserRepository defines direct database operations.
type UserRepository interface {
	// Auth & Basic
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)

	// User Management
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID, hash string) error
	UpdateLastLogin(ctx context.Context, userID string) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Count(ctx context.Context) (int, error)

	// Roles
	GetRoles(ctx context.Context, userID string) ([]string, error)
	SetRoles(ctx context.Context, userID string, roles []string) error
	AddRole(ctx context.Context, userID, role string) error

	// Profile
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile) error
}

// TokenRepository persists hashed refresh tokens.
type TokenRepository interface {
	Store(ctx context.Context, token *models.RefreshToken) error
	FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type SalonRepository interface {
	Create(ctx context.Context, salon *models.Salon) error
	GetByID(ctx context.Context, id string) (*models.Salon, error)
	List(ctx context.Context, city string, limit, offset int) ([]models.Salon, error)
	Count(ctx context.Context, city string) (int, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Salon, error)
	Update(ctx context.Context, salon *models.Salon) error
	Deactivate(ctx context.Context, id string) error
	GetOpeningHours(ctx context.Context, salonID string) ([]models.OpeningHours, error)
	ReplaceOpeningHours(ctx context.Context, salonID string, hours []models.OpeningHours) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee, profile *models.EmployeeProfile) error
	GetByID(ctx context.Context, salonID, id string) (*models.Employee, error)
	ListBySalon(ctx context.Context, salonID string) ([]models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Deactivate(ctx context.Context, salonID, id string) error
	GetProfile(ctx context.Context, employeeID string) (*models.EmployeeProfile, error)
	UpdateProfile(ctx context.Context, profile *models.EmployeeProfile) error
}

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, salonID, id string) (*models.Service, error)
	ListBySalon(ctx context.Context, salonID string) ([]models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Deactivate(ctx context.Context, salonID, id string) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, salonID, id string) (*models.Product, error)
	ListBySalon(ctx context.Context, salonID string) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	AdjustStock(ctx context.Context, salonID, id string, delta int) (*models.Product, error)
	Deactivate(ctx context.Context, salonID, id string) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, salonID, id string) (*models.Appointment, error)
	ListForSalon(ctx context.Context, salonID string, filter models.AppointmentFilter) ([]models.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, salonID, id, status string) (*models.Appointment, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment, maxTotal int64) error
	GetByID(ctx context.Context, salonID, id string) (*models.Payment, error)
	ListBySalon(ctx context.Context, salonID string, limit, offset int) ([]models.Payment, error)
	CountBySalon(ctx context.Context, salonID string) (int, error)
	ListByAppointment(ctx context.Context, salonID, appointmentID string) ([]models.Payment, error)
	Refund(ctx context.Context, salonID, id string) (*models.Payment, error)
}

// Cache is a JSON value cache keyed by string.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// AuthService handles the identity flows.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error
}

// UserService defines account and profile management.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.UpdateResult[*models.ProfileResponse], error)
	GetUsers(ctx context.Context, page, limit int) ([]models.User, *models.PaginationMetadata, error)
	SetRoles(ctx context.Context, userID string, roles []string) error
}

type SalonService interface {
	CreateSalon(ctx context.Context, actor models.Actor, req models.CreateSalonRequest) (*models.Salon, error)
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	ListSalons(ctx context.Context, city string, page, limit int) ([]models.Salon, *models.PaginationMetadata, error)
	ListMySalons(ctx context.Context, actor models.Actor) ([]models.Salon, error)
	UpdateSalon(ctx context.Context, actor models.Actor, id string, req models.UpdateSalonRequest) (*models.UpdateResult[*models.Salon], error)
	DeleteSalon(ctx context.Context, actor models.Actor, id string) error
	GetOpeningHours(ctx context.Context, salonID string) ([]models.OpeningHours, error)
	SetOpeningHours(ctx context.Context, actor models.Actor, salonID string, req models.SetOpeningHoursRequest) ([]models.OpeningHours, error)
	// Authorize returns the salon when actor may manage it.
	Authorize(ctx context.Context, actor models.Actor, salonID string) (*models.Salon, error)
}

type EmployeeService interface {
	CreateEmployee(ctx context.Context, actor models.Actor, salonID string, req models.CreateEmployeeRequest) (*models.EmployeeDetails, error)
	GetEmployee(ctx context.Context, salonID, id string) (*models.EmployeeDetails, error)
	ListEmployees(ctx context.Context, salonID string) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateEmployeeRequest) (*models.UpdateResult[*models.Employee], error)
	DeleteEmployee(ctx context.Context, actor models.Actor, salonID, id string) error
	GetEmployeeProfile(ctx context.Context, salonID, id string) (*models.EmployeeProfile, error)
	UpdateEmployeeProfile(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateEmployeeProfileRequest) (*models.UpdateResult[*models.EmployeeProfile], error)
}

// CatalogService manages a salon's services and products.
type CatalogService interface {
	CreateService(ctx context.Context, actor models.Actor, salonID string, req models.CreateServiceRequest) (*models.Service, error)
	GetService(ctx context.Context, salonID, id string) (*models.Service, error)
	ListServices(ctx context.Context, salonID string) ([]models.Service, error)
	UpdateService(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateServiceRequest) (*models.UpdateResult[*models.Service], error)
	DeleteService(ctx context.Context, actor models.Actor, salonID, id string) error

	CreateProduct(ctx context.Context, actor models.Actor, salonID string, req models.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, salonID, id string) (*models.Product, error)
	ListProducts(ctx context.Context, salonID string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, actor models.Actor, salonID, id string, req models.UpdateProductRequest) (*models.UpdateResult[*models.Product], error)
	AdjustStock(ctx context.Context, actor models.Actor, salonID, id string, delta int) (*models.Product, error)
	DeleteProduct(ctx context.Context, actor models.Actor, salonID, id string) error
}

type AppointmentService interface {
	Book(ctx context.Context, actor models.Actor, salonID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	Get(ctx context.Context, actor models.Actor, salonID, id string) (*models.Appointment, error)
	ListForSalon(ctx context.Context, actor models.Actor, salonID string, filter models.AppointmentFilter) ([]models.Appointment, error)
	ListMine(ctx context.Context, actor models.Actor) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, actor models.Actor, salonID, id, status string) (*models.Appointment, error)
}

type PaymentService interface {
	Record(ctx context.Context, actor models.Actor, salonID string, req models.RecordPaymentRequest) (*models.Payment, error)
	Get(ctx context.Context, actor models.Actor, salonID, id string) (*models.Payment, error)
	ListForSalon(ctx context.Context, actor models.Actor, salonID string, page, limit int) ([]models.Payment, *models.PaginationMetadata, error)
	ListForAppointment(ctx context.Context, actor models.Actor, salonID, appointmentID string) ([]models.Payment, error)
	Refund(ctx context.Context, actor models.Actor, salonID, id string) (*models.Payment, error)
}
