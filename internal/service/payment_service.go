package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/metrics"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
)

type PaymentService struct {
	salons       core.SalonService
	appointments core.AppointmentRepository
	payments     core.PaymentRepository
	now          func() time.Time
}

func NewPaymentService(salons core.SalonService, appointments core.AppointmentRepository, payments core.PaymentRepository) core.PaymentService {
	return &PaymentService{salons: salons, appointments: appointments, payments: payments, now: time.Now}
}

// Record stores a payment against an appointment of the salon. The paid total of an
// appointment never exceeds its price.
func (s *PaymentService) Record(ctx context.Context, actor models.Actor, salonID string, req models.RecordPaymentRequest) (*models.Payment, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}

	appointment, err := s.appointments.GetByID(ctx, salonID, req.AppointmentID)
	if err != nil {
		return nil, translate(err, "appointment")
	}
	if appointment.Status == models.AppointmentCancelled {
		return nil, fmt.Errorf("cannot pay for a cancelled appointment: %w", ErrInvalidState)
	}

	now := s.now()
	payment := &models.Payment{
		ID:            uuid.New().String(),
		SalonID:       salonID,
		AppointmentID: appointment.ID,
		AmountCents:   req.AmountCents,
		Currency:      strings.ToUpper(req.Currency),
		Method:        req.Method,
		Status:        models.PaymentPaid,
		PaidAt:        now,
		CreatedAt:     now,
	}

	if err := s.payments.Create(ctx, payment, appointment.PriceCents); err != nil {
		switch {
		case errors.Is(err, repository.ErrLimitExceeded):
			return nil, fmt.Errorf("payment exceeds the outstanding amount of the appointment: %w", ErrInvalidState)
		case errors.Is(err, repository.ErrCancelled):
			return nil, fmt.Errorf("cannot pay for a cancelled appointment: %w", ErrInvalidState)
		}
		return nil, translate(err, "appointment")
	}

	metrics.PaymentsRecorded.WithLabelValues(payment.Method).Inc()
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, actor models.Actor, salonID, id string) (*models.Payment, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}
	payment, err := s.payments.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "payment")
	}
	return payment, nil
}

func (s *PaymentService) ListForSalon(ctx context.Context, actor models.Actor, salonID string, page, limit int) ([]models.Payment, *models.PaginationMetadata, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, nil, err
	}
	page, limit, offset := models.NormalizePage(page, limit)

	payments, err := s.payments.ListBySalon(ctx, salonID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.payments.CountBySalon(ctx, salonID)
	if err != nil {
		return nil, nil, err
	}
	return payments, models.NewPaginationMetadata(page, limit, total), nil
}

func (s *PaymentService) ListForAppointment(ctx context.Context, actor models.Actor, salonID, appointmentID string) ([]models.Payment, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}
	if _, err := s.appointments.GetByID(ctx, salonID, appointmentID); err != nil {
		return nil, translate(err, "appointment")
	}
	return s.payments.ListByAppointment(ctx, salonID, appointmentID)
}

// Refund marks a paid payment refunded. Refunding twice is an invalid state, not a no-op.
func (s *PaymentService) Refund(ctx context.Context, actor models.Actor, salonID, id string) (*models.Payment, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}

	payment, err := s.payments.Refund(ctx, salonID, id)
	if errors.Is(err, repository.ErrNotFound) {
		if _, getErr := s.payments.GetByID(ctx, salonID, id); getErr != nil {
			return nil, translate(getErr, "payment")
		}
		return nil, fmt.Errorf("only paid payments can be refunded: %w", ErrInvalidState)
	}
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRefunded.Inc()
	return payment, nil
}
