package models

import "time"

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

func IsValidAppointmentStatus(status string) bool {
	switch status {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Appointment is a booked service slot at a salon.
type Appointment struct {
	ID         string    `json:"id" db:"id"`
	SalonID    string    `json:"salon_id" db:"salon_id"`
	ServiceID  string    `json:"service_id" db:"service_id"`
	EmployeeID *string   `json:"employee_id,omitempty" db:"employee_id"`
	CustomerID string    `json:"customer_id" db:"customer_id"`
	StartTime  time.Time `json:"start_time" db:"start_time"`
	EndTime    time.Time `json:"end_time" db:"end_time"`
	Status     string    `json:"status" db:"status"`
	PriceCents int64     `json:"price_cents" db:"price_cents"`
	Notes      string    `json:"notes" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CanTransitionTo reports whether the appointment may move to status.
// Only scheduled appointments change state; every other status is final.
func (a *Appointment) CanTransitionTo(status string) bool {
	if a.Status != AppointmentScheduled {
		return false
	}
	switch status {
	case AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

type BookAppointmentRequest struct {
	ServiceID  string    `json:"service_id" validate:"required,uuid"`
	EmployeeID *string   `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	Notes      string    `json:"notes" validate:"max=500"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled no_show"`
}

// AppointmentFilter narrows a salon's appointment listing. Zero values mean "any".
type AppointmentFilter struct {
	From       *time.Time
	To         *time.Time
	Status     string
	EmployeeID string
}
