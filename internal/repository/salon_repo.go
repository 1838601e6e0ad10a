package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const salonColumns = `id, owner_id, name, description, email, phone_number, address, city, country, postal_code, is_active, created_at, updated_at`

type PostgresSalonRepository struct {
	db DB
}

func NewSalonRepository(db DB) core.SalonRepository {
	return &PostgresSalonRepository{db: db}
}

func (r *PostgresSalonRepository) Create(ctx context.Context, s *models.Salon) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO app_data.salons (`+salonColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.OwnerID, s.Name, s.Description, s.Email, s.PhoneNumber, s.Address,
		s.City, s.Country, s.PostalCode, s.IsActive, s.CreatedAt, s.UpdatedAt)
	return mapError(err)
}

func (r *PostgresSalonRepository) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	return getOne[models.Salon](ctx, r.db,
		`SELECT `+salonColumns+` FROM app_data.salons WHERE id = $1 AND is_active = true`, id)
}

// List returns active salons, optionally restricted to a city (case-insensitive).
func (r *PostgresSalonRepository) List(ctx context.Context, city string, limit, offset int) ([]models.Salon, error) {
	return getMany[models.Salon](ctx, r.db, `
		SELECT `+salonColumns+` FROM app_data.salons
		WHERE is_active = true AND ($1 = '' OR LOWER(city) = LOWER($1))
		ORDER BY name LIMIT $2 OFFSET $3`, city, limit, offset)
}

func (r *PostgresSalonRepository) Count(ctx context.Context, city string) (int, error) {
	return count(ctx, r.db, `
		SELECT COUNT(*) FROM app_data.salons
		WHERE is_active = true AND ($1 = '' OR LOWER(city) = LOWER($1))`, city)
}

func (r *PostgresSalonRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Salon, error) {
	return getMany[models.Salon](ctx, r.db, `
		SELECT `+salonColumns+` FROM app_data.salons
		WHERE owner_id = $1 AND is_active = true ORDER BY created_at`, ownerID)
}

func (r *PostgresSalonRepository) Update(ctx context.Context, s *models.Salon) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.salons
		SET name = $1, description = $2, email = $3, phone_number = $4, address = $5,
			city = $6, country = $7, postal_code = $8, updated_at = NOW()
		WHERE id = $9 AND is_active = true`,
		s.Name, s.Description, s.Email, s.PhoneNumber, s.Address, s.City, s.Country, s.PostalCode, s.ID)
}

func (r *PostgresSalonRepository) Deactivate(ctx context.Context, id string) error {
	return execOne(ctx, r.db,
		`UPDATE app_data.salons SET is_active = false, updated_at = NOW() WHERE id = $1 AND is_active = true`, id)
}

func (r *PostgresSalonRepository) GetOpeningHours(ctx context.Context, salonID string) ([]models.OpeningHours, error) {
	return getMany[models.OpeningHours](ctx, r.db, `
		SELECT salon_id, day_of_week, open_time, close_time, is_closed
		FROM app_data.opening_hours WHERE salon_id = $1 ORDER BY day_of_week`, salonID)
}

// ReplaceOpeningHours swaps the whole week in one transaction.
func (r *PostgresSalonRepository) ReplaceOpeningHours(ctx context.Context, salonID string, hours []models.OpeningHours) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM app_data.opening_hours WHERE salon_id = $1`, salonID); err != nil {
			return mapError(err)
		}
		for _, h := range hours {
			if _, err := tx.Exec(ctx, `
				INSERT INTO app_data.opening_hours (salon_id, day_of_week, open_time, close_time, is_closed)
				VALUES ($1, $2, $3, $4, $5)`,
				salonID, h.DayOfWeek, h.OpenTime, h.CloseTime, h.IsClosed); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}
