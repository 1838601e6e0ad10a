package repository

import (
	"context"
	"errors"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const productColumns = `id, salon_id, name, sku, description, price_cents, stock_quantity, is_active, created_at, updated_at`

type PostgresProductRepository struct {
	db DB
}

func NewProductRepository(db DB) core.ProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(ctx context.Context, p *models.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO app_data.products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.SalonID, p.Name, p.SKU, p.Description, p.PriceCents, p.StockQuantity,
		p.IsActive, p.CreatedAt, p.UpdatedAt)
	return mapError(err)
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, salonID, id string) (*models.Product, error) {
	return getOne[models.Product](ctx, r.db, `
		SELECT `+productColumns+` FROM app_data.products
		WHERE id = $1 AND salon_id = $2 AND is_active = true`, id, salonID)
}

func (r *PostgresProductRepository) ListBySalon(ctx context.Context, salonID string) ([]models.Product, error) {
	return getMany[models.Product](ctx, r.db, `
		SELECT `+productColumns+` FROM app_data.products
		WHERE salon_id = $1 AND is_active = true ORDER BY name`, salonID)
}

func (r *PostgresProductRepository) Update(ctx context.Context, p *models.Product) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.products
		SET name = $1, sku = $2, description = $3, price_cents = $4, updated_at = NOW()
		WHERE id = $5 AND salon_id = $6 AND is_active = true`,
		p.Name, p.SKU, p.Description, p.PriceCents, p.ID, p.SalonID)
}

// AdjustStock applies delta atomically. It returns ErrLimitExceeded when stock would drop below zero.
func (r *PostgresProductRepository) AdjustStock(ctx context.Context, salonID, id string, delta int) (*models.Product, error) {
	p, err := getOne[models.Product](ctx, r.db, `
		UPDATE app_data.products
		SET stock_quantity = stock_quantity + $1, updated_at = NOW()
		WHERE id = $2 AND salon_id = $3 AND is_active = true AND stock_quantity + $1 >= 0
		RETURNING `+productColumns, delta, id, salonID)
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing product from an insufficient stock level.
		if _, getErr := r.GetByID(ctx, salonID, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrLimitExceeded
	}
	return p, err
}

func (r *PostgresProductRepository) Deactivate(ctx context.Context, salonID, id string) error {
	return execOne(ctx, r.db, `
		UPDATE app_data.products SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND salon_id = $2 AND is_active = true`, id, salonID)
}
