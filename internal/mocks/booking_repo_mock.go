package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, salonID, id string) (*models.Appointment, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Appointment](args, 0), args.Error(1)
}

func (m *MockAppointmentRepository) ListForSalon(ctx context.Context, salonID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, salonID, filter)
	return get[[]models.Appointment](args, 0), args.Error(1)
}

func (m *MockAppointmentRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	args := m.Called(ctx, customerID)
	return get[[]models.Appointment](args, 0), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, salonID, id, status string) (*models.Appointment, error) {
	args := m.Called(ctx, salonID, id, status)
	return get[*models.Appointment](args, 0), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment, maxTotal int64) error {
	return m.Called(ctx, payment, maxTotal).Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, salonID, id string) (*models.Payment, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) ListBySalon(ctx context.Context, salonID string, limit, offset int) ([]models.Payment, error) {
	args := m.Called(ctx, salonID, limit, offset)
	return get[[]models.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) CountBySalon(ctx context.Context, salonID string) (int, error) {
	args := m.Called(ctx, salonID)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) ListByAppointment(ctx context.Context, salonID, appointmentID string) ([]models.Payment, error) {
	args := m.Called(ctx, salonID, appointmentID)
	return get[[]models.Payment](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) Refund(ctx context.Context, salonID, id string) (*models.Payment, error) {
	args := m.Called(ctx, salonID, id)
	return get[*models.Payment](args, 0), args.Error(1)
}
