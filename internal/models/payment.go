package models

import "time"

// Payment statuses and methods.
const (
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"

	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// Payment is money received for an appointment.
type Payment struct {
	ID            string     `json:"id" db:"id"`
	SalonID       string     `json:"salon_id" db:"salon_id"`
	AppointmentID string     `json:"appointment_id" db:"appointment_id"`
	AmountCents   int64      `json:"amount_cents" db:"amount_cents"`
	Currency      string     `json:"currency" db:"currency"`
	Method        string     `json:"method" db:"method"`
	Status        string     `json:"status" db:"status"`
	PaidAt        time.Time  `json:"paid_at" db:"paid_at"`
	RefundedAt    *time.Time `json:"refunded_at,omitempty" db:"refunded_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type RecordPaymentRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required,uuid"`
	AmountCents   int64  `json:"amount_cents" validate:"required,gt=0"`
	Currency      string `json:"currency" validate:"required,currency"`
	Method        string `json:"method" validate:"required,oneof=cash card transfer"`
}
