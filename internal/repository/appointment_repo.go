package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const appointmentColumns = `id, salon_id, service_id, employee_id, customer_id, start_time, end_time, status, price_cents, notes, created_at, updated_at`

type PostgresAppointmentRepository struct {
	db DB
}

func NewAppointmentRepository(db DB) core.AppointmentRepository {
	return &PostgresAppointmentRepository{db: db}
}

// Create inserts the appointment. When an employee is assigned, the employee's calendar is
// locked for the transaction and ErrOverlap is returned if a scheduled appointment intersects.
func (r *PostgresAppointmentRepository) Create(ctx context.Context, a *models.Appointment) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if a.EmployeeID != nil {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, *a.EmployeeID); err != nil {
				return mapError(err)
			}
			n, err := count(ctx, tx, `
				SELECT COUNT(*) FROM app_data.appointments
				WHERE employee_id = $1 AND status = 'scheduled' AND start_time < $3 AND end_time > $2`,
				*a.EmployeeID, a.StartTime, a.EndTime)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrOverlap
			}
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO app_data.appointments (`+appointmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			a.ID, a.SalonID, a.ServiceID, a.EmployeeID, a.CustomerID, a.StartTime, a.EndTime,
			a.Status, a.PriceCents, a.Notes, a.CreatedAt, a.UpdatedAt)
		return mapError(err)
	})
}

func (r *PostgresAppointmentRepository) GetByID(ctx context.Context, salonID, id string) (*models.Appointment, error) {
	return getOne[models.Appointment](ctx, r.db, `
		SELECT `+appointmentColumns+` FROM app_data.appointments
		WHERE id = $1 AND salon_id = $2`, id, salonID)
}

// ListForSalon returns the salon's appointments ordered by start time, narrowed by filter.
func (r *PostgresAppointmentRepository) ListForSalon(ctx context.Context, salonID string, f models.AppointmentFilter) ([]models.Appointment, error) {
	conds := []string{"salon_id = $1"}
	args := []any{salonID}

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.From != nil {
		add("start_time >= $%d", *f.From)
	}
	if f.To != nil {
		add("start_time < $%d", *f.To)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.EmployeeID != "" {
		add("employee_id = $%d", f.EmployeeID)
	}

	query := `SELECT ` + appointmentColumns + ` FROM app_data.appointments WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY start_time`
	return getMany[models.Appointment](ctx, r.db, query, args...)
}

func (r *PostgresAppointmentRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	return getMany[models.Appointment](ctx, r.db, `
		SELECT `+appointmentColumns+` FROM app_data.appointments
		WHERE customer_id = $1 ORDER BY start_time DESC`, customerID)
}

// UpdateStatus moves a scheduled appointment to status. ErrNotFound means it no longer is scheduled.
func (r *PostgresAppointmentRepository) UpdateStatus(ctx context.Context, salonID, id, status string) (*models.Appointment, error) {
	return getOne[models.Appointment](ctx, r.db, `
		UPDATE app_data.appointments SET status = $1, updated_at = NOW()
		WHERE id = $2 AND salon_id = $3 AND status = 'scheduled'
		RETURNING `+appointmentColumns, status, id, salonID)
}
