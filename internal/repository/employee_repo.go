package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const (
	employeeColumns        = `id, salon_id, email, phone_number, job_title, hired_at, is_active, created_at, updated_at`
	employeeProfileColumns = `employee_id, first_name, last_name, gender, birthday, address, bio, updated_at`
)

type PostgresEmployeeRepository struct {
	db DB
}

func NewEmployeeRepository(db DB) core.EmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

// Create inserts the employee and its profile together.
func (r *PostgresEmployeeRepository) Create(ctx context.Context, e *models.Employee, p *models.EmployeeProfile) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO app_data.employees (`+employeeColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, e.SalonID, e.Email, e.PhoneNumber, e.JobTitle, e.HiredAt, e.IsActive, e.CreatedAt, e.UpdatedAt); err != nil {
			return mapError(err)
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO app_data.employee_profiles (`+employeeProfileColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.ID, p.FirstName, p.LastName, p.Gender, p.Birthday, p.Address, p.Bio, e.UpdatedAt)
		return mapError(err)
	})
}

func (r *PostgresEmployeeRepository) GetByID(ctx context.Context, salonID, id string) (*models.Employee, error) {
	return getOne[models.Employee](ctx, r.db, `
		SELECT `+employeeColumns+` FROM app_data.employees
		WHERE id = $1 AND salon_id = $2 AND is_active = true`, id, salonID)
}

func (r *PostgresEmployeeRepository) ListBySalon(ctx context.Context, salonID string) ([]models.Employee, error) {
	return getMany[models.Employee](ctx, r.db, `
		SELECT `+employeeColumns+` FROM app_data.employees
		WHERE salon_id = $1 AND is_active = true ORDER BY created_at`, salonID)
}

func (r *PostgresEmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.employees
		SET email = $1, phone_number = $2, job_title = $3, hired_at = $4, updated_at = NOW()
		WHERE id = $5 AND salon_id = $6 AND is_active = true`,
		e.Email, e.PhoneNumber, e.JobTitle, e.HiredAt, e.ID, e.SalonID)
}

func (r *PostgresEmployeeRepository) Deactivate(ctx context.Context, salonID, id string) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.employees SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND salon_id = $2 AND is_active = true`, id, salonID)
}

func (r *PostgresEmployeeRepository) GetProfile(ctx context.Context, employeeID string) (*models.EmployeeProfile, error) {
	return getOne[models.EmployeeProfile](ctx, r.db, `
		SELECT `+employeeProfileColumns+` FROM app_data.employee_profiles WHERE employee_id = $1`, employeeID)
}

func (r *PostgresEmployeeRepository) UpdateProfile(ctx context.Context, p *models.EmployeeProfile) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.employee_profiles
		SET first_name = $1, last_name = $2, gender = $3, birthday = $4, address = $5, bio = $6, updated_at = NOW()
		WHERE employee_id = $7`,
		p.FirstName, p.LastName, p.Gender, p.Birthday, p.Address, p.Bio, p.EmployeeID)
}
