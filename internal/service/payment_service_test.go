package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zml18x/SMS-Backend-sub000/internal/metrics"
	"github.com/zml18x/SMS-Backend-sub000/internal/mocks"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
)

const apptID = "6f1c2a9e-7d7b-4a53-9f6c-1a2b3c4d5e6f"

func newTestPaymentService() (*PaymentService, *mocks.MockSalonService, *mocks.MockAppointmentRepository, *mocks.MockPaymentRepository) {
	salons := new(mocks.MockSalonService)
	appointments := new(mocks.MockAppointmentRepository)
	payments := new(mocks.MockPaymentRepository)
	return NewPaymentService(salons, appointments, payments).(*PaymentService), salons, appointments, payments
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	appt := &models.Appointment{ID: apptID, SalonID: "salon-1", Status: models.AppointmentCompleted, PriceCents: 5000}
	req := models.RecordPaymentRequest{AppointmentID: apptID, AmountCents: 3000, Currency: "nok", Method: models.PaymentMethodCard}

	t.Run("Success", func(t *testing.T) {
		svc, salons, appointments, payments := newTestPaymentService()
		salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
		appointments.On("GetByID", ctx, "salon-1", apptID).Return(appt, nil).Once()
		payments.On("Create", ctx, mock.MatchedBy(func(p *models.Payment) bool {
			return p.Currency == "NOK" && p.Status == models.PaymentPaid && p.AmountCents == 3000
		}), int64(5000)).Return(nil).Once()

		counter := metrics.PaymentsRecorded.WithLabelValues(models.PaymentMethodCard)
		before := testutil.ToFloat64(counter)
		payment, err := svc.Record(ctx, owner, "salon-1", req)

		require.NoError(t, err)
		assert.Equal(t, apptID, payment.AppointmentID)
		assert.Equal(t, before+1, testutil.ToFloat64(counter))
		payments.AssertExpectations(t)
	})

	t.Run("ExceedsPrice", func(t *testing.T) {
		svc, salons, appointments, payments := newTestPaymentService()
		salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
		appointments.On("GetByID", ctx, "salon-1", apptID).Return(appt, nil).Once()
		payments.On("Create", ctx, mock.Anything, int64(5000)).Return(repository.ErrLimitExceeded).Once()

		_, err := svc.Record(ctx, owner, "salon-1", req)

		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("CancelledAppointment", func(t *testing.T) {
		svc, salons, appointments, payments := newTestPaymentService()
		cancelled := *appt
		cancelled.Status = models.AppointmentCancelled
		salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
		appointments.On("GetByID", ctx, "salon-1", apptID).Return(&cancelled, nil).Once()

		_, err := svc.Record(ctx, owner, "salon-1", req)

		assert.ErrorIs(t, err, ErrInvalidState)
		payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CancelledBeforeLock", func(t *testing.T) {
		svc, salons, appointments, payments := newTestPaymentService()
		salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
		appointments.On("GetByID", ctx, "salon-1", apptID).Return(appt, nil).Once()
		payments.On("Create", ctx, mock.Anything, int64(5000)).Return(repository.ErrCancelled).Once()

		_, err := svc.Record(ctx, owner, "salon-1", req)

		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Contains(t, err.Error(), "cancelled appointment")
	})

	t.Run("NotManager", func(t *testing.T) {
		svc, salons, appointments, _ := newTestPaymentService()
		salons.On("Authorize", ctx, customer, "salon-1").Return(nil, ErrForbidden).Once()

		_, err := svc.Record(ctx, customer, "salon-1", req)

		assert.ErrorIs(t, err, ErrForbidden)
		appointments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRefundPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, salons, _, payments := newTestPaymentService()
		salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
		payments.On("Refund", ctx, "salon-1", "pay-1").
			Return(&models.Payment{ID: "pay-1", Status: models.PaymentRefunded}, nil).Once()

		before := testutil.ToFloat64(metrics.PaymentsRefunded)
		payment, err := svc.Refund(ctx, owner, "salon-1", "pay-1")

		require.NoError(t, err)
		assert.Equal(t, models.PaymentRefunded, payment.Status)
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.PaymentsRefunded))
	})

	t.Run("AlreadyRefunded", func(t *testing.T) {
		svc, salons, _, payments := newTestPaymentService()
		salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
		payments.On("Refund", ctx, "salon-1", "pay-1").Return(nil, repository.ErrNotFound).Once()
		payments.On("GetByID", ctx, "salon-1", "pay-1").
			Return(&models.Payment{ID: "pay-1", Status: models.PaymentRefunded}, nil).Once()

		_, err := svc.Refund(ctx, owner, "salon-1", "pay-1")

		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("Unknown", func(t *testing.T) {
		svc, salons, _, payments := newTestPaymentService()
		salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
		payments.On("Refund", ctx, "salon-1", "pay-9").Return(nil, repository.ErrNotFound).Once()
		payments.On("GetByID", ctx, "salon-1", "pay-9").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Refund(ctx, owner, "salon-1", "pay-9")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListPaymentsForSalon(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, payments := newTestPaymentService()
	salons.On("Authorize", ctx, owner, "salon-1").Return(testSalon(), nil).Once()
	payments.On("ListBySalon", ctx, "salon-1", 10, 10).Return([]models.Payment{{ID: "pay-11"}}, nil).Once()
	payments.On("CountBySalon", ctx, "salon-1").Return(11, nil).Once()

	list, meta, err := svc.ListForSalon(ctx, owner, "salon-1", 2, 0)

	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}
