package models

import "time"

// Product is a retail item sold by a salon.
type Product struct {
	ID            string    `json:"id" db:"id"`
	SalonID       string    `json:"salon_id" db:"salon_id"`
	Name          string    `json:"name" db:"name"`
	SKU           string    `json:"sku" db:"sku"`
	Description   string    `json:"description" db:"description"`
	PriceCents    int64     `json:"price_cents" db:"price_cents"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type CreateProductRequest struct {
	Name          string `json:"name" validate:"required,notblank,min=2,max=100"`
	SKU           string `json:"sku" validate:"required,max=50,sku"`
	Description   string `json:"description" validate:"max=1000"`
	PriceCents    int64  `json:"price_cents" validate:"min=0"`
	StockQuantity int    `json:"stock_quantity" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,min=2,max=100"`
	SKU         *string `json:"sku,omitempty" validate:"omitempty,max=50,sku"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	PriceCents  *int64  `json:"price_cents,omitempty" validate:"omitempty,min=0"`
}

// Apply applies req to the product and reports whether any field changed.
func (p *Product) Apply(req UpdateProductRequest) bool {
	changed := setStringIfChanged(&p.Name, req.Name)
	changed = setStringIfChanged(&p.SKU, req.SKU) || changed
	changed = setStringIfChanged(&p.Description, req.Description) || changed
	changed = setIfChanged(&p.PriceCents, req.PriceCents) || changed
	return changed
}

// AdjustStockRequest adds (positive) or removes (negative) units.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"ne=0,min=-100000,max=100000"`
}
