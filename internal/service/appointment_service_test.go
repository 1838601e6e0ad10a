package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zml18x/SMS-Backend-sub000/internal/metrics"
	"github.com/zml18x/SMS-Backend-sub000/internal/mocks"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type appointmentFixture struct {
	svc          *AppointmentService
	salons       *mocks.MockSalonService
	services     *mocks.MockServiceRepository
	employees    *mocks.MockEmployeeRepository
	appointments *mocks.MockAppointmentRepository
}

func newAppointmentFixture() *appointmentFixture {
	f := &appointmentFixture{
		salons:       new(mocks.MockSalonService),
		services:     new(mocks.MockServiceRepository),
		employees:    new(mocks.MockEmployeeRepository),
		appointments: new(mocks.MockAppointmentRepository),
	}
	f.svc = NewAppointmentService(f.salons, f.services, f.employees, f.appointments, 90*24*time.Hour).(*AppointmentService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func haircut() *models.Service {
	return &models.Service{ID: "svc-1", SalonID: "salon-1", Name: "Haircut", DurationMinutes: 45, PriceCents: 5000, IsActive: true}
}

func TestBook(t *testing.T) {
	ctx := context.Background()
	employeeID := "emp-1"

	t.Run("Success", func(t *testing.T) {
		f := newAppointmentFixture()
		start := fixedNow.Add(24 * time.Hour)
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.services.On("GetByID", ctx, "salon-1", "svc-1").Return(haircut(), nil).Once()
		f.employees.On("GetByID", ctx, "salon-1", "emp-1").Return(&models.Employee{ID: "emp-1", SalonID: "salon-1"}, nil).Once()
		f.appointments.On("Create", ctx, mock.AnythingOfType("*models.Appointment")).Return(nil).Once()

		before := testutil.ToFloat64(metrics.AppointmentsBooked)
		appt, err := f.svc.Book(ctx, customer, "salon-1", models.BookAppointmentRequest{
			ServiceID:  "svc-1",
			EmployeeID: &employeeID,
			StartTime:  start,
		})

		require.NoError(t, err)
		assert.Equal(t, start.Add(45*time.Minute), appt.EndTime)
		assert.Equal(t, int64(5000), appt.PriceCents)
		assert.Equal(t, "cust-1", appt.CustomerID)
		assert.Equal(t, models.AppointmentScheduled, appt.Status)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.AppointmentsBooked))
		f.appointments.AssertExpectations(t)
	})

	t.Run("Overlap", func(t *testing.T) {
		f := newAppointmentFixture()
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.services.On("GetByID", ctx, "salon-1", "svc-1").Return(haircut(), nil).Once()
		f.employees.On("GetByID", ctx, "salon-1", "emp-1").Return(&models.Employee{ID: "emp-1"}, nil).Once()
		f.appointments.On("Create", ctx, mock.Anything).Return(repository.ErrOverlap).Once()

		_, err := f.svc.Book(ctx, customer, "salon-1", models.BookAppointmentRequest{
			ServiceID:  "svc-1",
			EmployeeID: &employeeID,
			StartTime:  fixedNow.Add(time.Hour),
		})

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("InThePast", func(t *testing.T) {
		f := newAppointmentFixture()
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.services.On("GetByID", ctx, "salon-1", "svc-1").Return(haircut(), nil).Once()

		_, err := f.svc.Book(ctx, customer, "salon-1", models.BookAppointmentRequest{
			ServiceID: "svc-1",
			StartTime: fixedNow.Add(-time.Minute),
		})

		assert.ErrorIs(t, err, ErrBadRequest)
		f.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("BeyondHorizon", func(t *testing.T) {
		f := newAppointmentFixture()
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.services.On("GetByID", ctx, "salon-1", "svc-1").Return(haircut(), nil).Once()

		_, err := f.svc.Book(ctx, customer, "salon-1", models.BookAppointmentRequest{
			ServiceID: "svc-1",
			StartTime: fixedNow.Add(91 * 24 * time.Hour),
		})

		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("UnknownService", func(t *testing.T) {
		f := newAppointmentFixture()
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.services.On("GetByID", ctx, "salon-1", "svc-9").Return(nil, repository.ErrNotFound).Once()

		_, err := f.svc.Book(ctx, customer, "salon-1", models.BookAppointmentRequest{
			ServiceID: "svc-9",
			StartTime: fixedNow.Add(time.Hour),
		})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetAppointment_Access(t *testing.T) {
	ctx := context.Background()
	appt := &models.Appointment{ID: "appt-1", SalonID: "salon-1", CustomerID: "cust-1", Status: models.AppointmentScheduled}
	stranger := models.Actor{UserID: "other", Roles: []string{models.RoleCustomer}}

	tests := []struct {
		name    string
		actor   models.Actor
		wantErr error
	}{
		{"Customer", customer, nil},
		{"Owner", owner, nil},
		{"Admin", admin, nil},
		{"Stranger", stranger, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture()
			f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
			f.appointments.On("GetByID", ctx, "salon-1", "appt-1").Return(appt, nil).Once()

			got, err := f.svc.Get(ctx, tt.actor, "salon-1", "appt-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "appt-1", got.ID)
		})
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	ctx := context.Background()
	scheduled := func() *models.Appointment {
		return &models.Appointment{ID: "appt-1", SalonID: "salon-1", CustomerID: "cust-1", Status: models.AppointmentScheduled}
	}

	t.Run("OwnerCompletes", func(t *testing.T) {
		f := newAppointmentFixture()
		done := scheduled()
		done.Status = models.AppointmentCompleted
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.appointments.On("GetByID", ctx, "salon-1", "appt-1").Return(scheduled(), nil).Once()
		f.appointments.On("UpdateStatus", ctx, "salon-1", "appt-1", models.AppointmentCompleted).Return(done, nil).Once()

		counter := metrics.AppointmentStatusChanges.WithLabelValues(models.AppointmentCompleted)
		before := testutil.ToFloat64(counter)
		got, err := f.svc.UpdateStatus(ctx, owner, "salon-1", "appt-1", models.AppointmentCompleted)

		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCompleted, got.Status)
		assert.Equal(t, before+1, testutil.ToFloat64(counter))
	})

	t.Run("CustomerCancelsOwn", func(t *testing.T) {
		f := newAppointmentFixture()
		cancelled := scheduled()
		cancelled.Status = models.AppointmentCancelled
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.appointments.On("GetByID", ctx, "salon-1", "appt-1").Return(scheduled(), nil).Once()
		f.appointments.On("UpdateStatus", ctx, "salon-1", "appt-1", models.AppointmentCancelled).Return(cancelled, nil).Once()

		got, err := f.svc.UpdateStatus(ctx, customer, "salon-1", "appt-1", models.AppointmentCancelled)

		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCancelled, got.Status)
	})

	t.Run("CustomerCannotComplete", func(t *testing.T) {
		f := newAppointmentFixture()
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.appointments.On("GetByID", ctx, "salon-1", "appt-1").Return(scheduled(), nil).Once()

		_, err := f.svc.UpdateStatus(ctx, customer, "salon-1", "appt-1", models.AppointmentCompleted)

		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("FinalStatusIsFinal", func(t *testing.T) {
		f := newAppointmentFixture()
		done := scheduled()
		done.Status = models.AppointmentCompleted
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.appointments.On("GetByID", ctx, "salon-1", "appt-1").Return(done, nil).Once()

		_, err := f.svc.UpdateStatus(ctx, owner, "salon-1", "appt-1", models.AppointmentCancelled)

		assert.ErrorIs(t, err, ErrInvalidState)
		f.appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ChangedConcurrently", func(t *testing.T) {
		f := newAppointmentFixture()
		f.salons.On("GetSalon", ctx, "salon-1").Return(testSalon(), nil).Once()
		f.appointments.On("GetByID", ctx, "salon-1", "appt-1").Return(scheduled(), nil).Once()
		f.appointments.On("UpdateStatus", ctx, "salon-1", "appt-1", models.AppointmentNoShow).
			Return(nil, fmt.Errorf("appointment: %w", repository.ErrNotFound)).Once()

		_, err := f.svc.UpdateStatus(ctx, owner, "salon-1", "appt-1", models.AppointmentNoShow)

		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		f := newAppointmentFixture()

		_, err := f.svc.UpdateStatus(ctx, owner, "salon-1", "appt-1", "scheduled")

		assert.ErrorIs(t, err, ErrBadRequest)
		f.salons.AssertNotCalled(t, "GetSalon", mock.Anything, mock.Anything)
	})
}

func TestListAppointmentsForSalon_Validation(t *testing.T) {
	ctx := context.Background()
	from := fixedNow
	to := fixedNow.Add(-time.Hour)

	f := newAppointmentFixture()
	f.salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil)

	_, err := f.svc.ListForSalon(ctx, owner, "salon-1", models.AppointmentFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = f.svc.ListForSalon(ctx, owner, "salon-1", models.AppointmentFilter{Status: "pending"})
	assert.ErrorIs(t, err, ErrBadRequest)

	f.appointments.On("ListForSalon", ctx, "salon-1", models.AppointmentFilter{Status: models.AppointmentScheduled}).
		Return([]models.Appointment{{ID: "appt-1"}}, nil).Once()
	list, err := f.svc.ListForSalon(ctx, owner, "salon-1", models.AppointmentFilter{Status: models.AppointmentScheduled})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
