package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/metrics"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
	"github.com/zml18x/SMS-Backend-sub000/internal/validation"
)

type AppointmentService struct {
	salons       core.SalonService
	services     core.ServiceRepository
	employees    core.EmployeeRepository
	appointments core.AppointmentRepository
	horizon      time.Duration
	now          func() time.Time
}

func NewAppointmentService(
	salons core.SalonService,
	services core.ServiceRepository,
	employees core.EmployeeRepository,
	appointments core.AppointmentRepository,
	horizon time.Duration,
) core.AppointmentService {
	return &AppointmentService{
		salons:       salons,
		services:     services,
		employees:    employees,
		appointments: appointments,
		horizon:      horizon,
		now:          time.Now,
	}
}

// Book reserves a service slot for the actor. The end time and price are taken from the service.
func (s *AppointmentService) Book(ctx context.Context, actor models.Actor, salonID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	if _, err := s.salons.GetSalon(ctx, salonID); err != nil {
		return nil, err
	}

	offering, err := s.services.GetByID(ctx, salonID, req.ServiceID)
	if err != nil {
		return nil, translate(err, "service")
	}

	if req.EmployeeID != nil {
		if _, err := s.employees.GetByID(ctx, salonID, *req.EmployeeID); err != nil {
			return nil, translate(err, "employee")
		}
	}

	now := s.now()
	start := req.StartTime.UTC()
	if !start.After(now) {
		return nil, fmt.Errorf("start_time must be in the future: %w", ErrBadRequest)
	}
	if start.After(now.Add(s.horizon)) {
		return nil, fmt.Errorf("start_time is beyond the booking horizon of %d days: %w",
			int(s.horizon.Hours()/24), ErrBadRequest)
	}

	appointment := &models.Appointment{
		ID:         uuid.New().String(),
		SalonID:    salonID,
		ServiceID:  offering.ID,
		EmployeeID: req.EmployeeID,
		CustomerID: actor.UserID,
		StartTime:  start,
		EndTime:    start.Add(offering.Duration()),
		Status:     models.AppointmentScheduled,
		PriceCents: offering.PriceCents,
		Notes:      validation.SanitizeString(req.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.appointments.Create(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, fmt.Errorf("employee already has an appointment in this slot: %w", ErrConflict)
		}
		return nil, translate(err, "appointment")
	}

	metrics.AppointmentsBooked.Inc()
	return appointment, nil
}

// Get returns the appointment to its customer, the salon owner or an administrator.
func (s *AppointmentService) Get(ctx context.Context, actor models.Actor, salonID, id string) (*models.Appointment, error) {
	salon, err := s.salons.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	appointment, err := s.appointments.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "appointment")
	}
	if appointment.CustomerID != actor.UserID && !canManage(actor, salon) {
		return nil, fmt.Errorf("appointment %w", ErrForbidden)
	}
	return appointment, nil
}

func (s *AppointmentService) ListForSalon(ctx context.Context, actor models.Actor, salonID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	if _, err := s.salons.Authorize(ctx, actor, salonID); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, fmt.Errorf("to must be after from: %w", ErrBadRequest)
	}
	if filter.Status != "" && !models.IsValidAppointmentStatus(filter.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", filter.Status, ErrBadRequest)
	}
	return s.appointments.ListForSalon(ctx, salonID, filter)
}

func (s *AppointmentService) ListMine(ctx context.Context, actor models.Actor) ([]models.Appointment, error) {
	return s.appointments.ListByCustomer(ctx, actor.UserID)
}

// UpdateStatus moves a scheduled appointment to a final status. Customers may only cancel
// their own appointments; the salon owner and administrators may apply any transition.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor models.Actor, salonID, id, status string) (*models.Appointment, error) {
	switch status {
	case models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow:
	default:
		return nil, fmt.Errorf("unknown target status %q: %w", status, ErrBadRequest)
	}

	salon, err := s.salons.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	appointment, err := s.appointments.GetByID(ctx, salonID, id)
	if err != nil {
		return nil, translate(err, "appointment")
	}

	if !canManage(actor, salon) {
		if appointment.CustomerID != actor.UserID {
			return nil, fmt.Errorf("appointment %w", ErrForbidden)
		}
		if status != models.AppointmentCancelled {
			return nil, fmt.Errorf("customers may only cancel appointments: %w", ErrForbidden)
		}
	}

	if !appointment.CanTransitionTo(status) {
		return nil, fmt.Errorf("cannot move %s appointment to %s: %w", appointment.Status, status, ErrInvalidState)
	}

	updated, err := s.appointments.UpdateStatus(ctx, salonID, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		// Changed concurrently between the read and the write.
		return nil, fmt.Errorf("appointment is no longer scheduled: %w", ErrInvalidState)
	}
	if err != nil {
		return nil, err
	}

	metrics.AppointmentStatusChanges.WithLabelValues(status).Inc()
	return updated, nil
}

func canManage(actor models.Actor, salon *models.Salon) bool {
	return actor.IsAdmin() || salon.OwnerID == actor.UserID
}
