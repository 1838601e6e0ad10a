package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const paymentColumns = `id, salon_id, appointment_id, amount_cents, currency, method, status, paid_at, refunded_at, created_at`

type PostgresPaymentRepository struct {
	db DB
}

func NewPaymentRepository(db DB) core.PaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// Create records the payment unless the appointment is cancelled or the paid total
// would exceed maxTotal. The appointment row is locked so concurrent payments are serialized.
func (r *PostgresPaymentRepository) Create(ctx context.Context, p *models.Payment, maxTotal int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var status string
		if err := tx.QueryRow(ctx,
			`SELECT status FROM app_data.appointments WHERE id = $1 AND salon_id = $2 FOR UPDATE`,
			p.AppointmentID, p.SalonID).Scan(&status); err != nil {
			return mapError(err)
		}
		// The status may have changed since the caller read it.
		if status == models.AppointmentCancelled {
			return ErrCancelled
		}

		var paid int64
		if err := tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(amount_cents), 0) FROM app_data.payments
			WHERE appointment_id = $1 AND status = 'paid'`, p.AppointmentID).Scan(&paid); err != nil {
			return mapError(err)
		}
		if paid+p.AmountCents > maxTotal {
			return ErrLimitExceeded
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO app_data.payments (`+paymentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.SalonID, p.AppointmentID, p.AmountCents, p.Currency, p.Method, p.Status,
			p.PaidAt, p.RefundedAt, p.CreatedAt)
		return mapError(err)
	})
}

func (r *PostgresPaymentRepository) GetByID(ctx context.Context, salonID, id string) (*models.Payment, error) {
	return getOne[models.Payment](ctx, r.db, `
		SELECT `+paymentColumns+` FROM app_data.payments WHERE id = $1 AND salon_id = $2`, id, salonID)
}

func (r *PostgresPaymentRepository) ListBySalon(ctx context.Context, salonID string, limit, offset int) ([]models.Payment, error) {
	return getMany[models.Payment](ctx, r.db, `
		SELECT `+paymentColumns+` FROM app_data.payments
		WHERE salon_id = $1 ORDER BY paid_at DESC LIMIT $2 OFFSET $3`, salonID, limit, offset)
}

func (r *PostgresPaymentRepository) CountBySalon(ctx context.Context, salonID string) (int, error) {
	return count(ctx, r.db, `SELECT COUNT(*) FROM app_data.payments WHERE salon_id = $1`, salonID)
}

func (r *PostgresPaymentRepository) ListByAppointment(ctx context.Context, salonID, appointmentID string) ([]models.Payment, error) {
	return getMany[models.Payment](ctx, r.db, `
		SELECT `+paymentColumns+` FROM app_data.payments
		WHERE salon_id = $1 AND appointment_id = $2 ORDER BY paid_at`, salonID, appointmentID)
}

// Refund flips a paid payment to refunded. ErrNotFound means it was not in the paid state.
func (r *PostgresPaymentRepository) Refund(ctx context.Context, salonID, id string) (*models.Payment, error) {
	return getOne[models.Payment](ctx, r.db, `
		UPDATE app_data.payments SET status = 'refunded', refunded_at = NOW()
		WHERE id = $1 AND salon_id = $2 AND status = 'paid'
		RETURNING `+paymentColumns, id, salonID)
}
