package repository

import (
	"context"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const serviceColumns = `id, salon_id, name, description, category, duration_minutes, price_cents, is_active, created_at, updated_at`

type PostgresServiceRepository struct {
	db DB
}

func NewServiceRepository(db DB) core.ServiceRepository {
	return &PostgresServiceRepository{db: db}
}

func (r *PostgresServiceRepository) Create(ctx context.Context, s *models.Service) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO app_data.services (`+serviceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.SalonID, s.Name, s.Description, s.Category, s.DurationMinutes, s.PriceCents,
		s.IsActive, s.CreatedAt, s.UpdatedAt)
	return mapError(err)
}

func (r *PostgresServiceRepository) GetByID(ctx context.Context, salonID, id string) (*models.Service, error) {
	return getOne[models.Service](ctx, r.db, `
		SELECT `+serviceColumns+` FROM app_data.services
		WHERE id = $1 AND salon_id = $2 AND is_active = true`, id, salonID)
}

func (r *PostgresServiceRepository) ListBySalon(ctx context.Context, salonID string) ([]models.Service, error) {
	return getMany[models.Service](ctx, r.db, `
		SELECT `+serviceColumns+` FROM app_data.services
		WHERE salon_id = $1 AND is_active = true ORDER BY category, name`, salonID)
}

func (r *PostgresServiceRepository) Update(ctx context.Context, s *models.Service) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.services
		SET name = $1, description = $2, category = $3, duration_minutes = $4, price_cents = $5, updated_at = NOW()
		WHERE id = $6 AND salon_id = $7 AND is_active = true`,
		s.Name, s.Description, s.Category, s.DurationMinutes, s.PriceCents, s.ID, s.SalonID)
}

func (r *PostgresServiceRepository) Deactivate(ctx context.Context, salonID, id string) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.services SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND salon_id = $2 AND is_active = true`, id, salonID)
}
