package models

import "time"

// Service is a treatment a salon offers.
type Service struct {
	ID              string    `json:"id" db:"id"`
	SalonID         string    `json:"salon_id" db:"salon_id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Category        string    `json:"category" db:"category"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	PriceCents      int64     `json:"price_cents" db:"price_cents"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Duration returns the length of the service.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type CreateServiceRequest struct {
	Name            string `json:"name" validate:"required,notblank,min=2,max=100"`
	Description     string `json:"description" validate:"max=1000"`
	Category        string `json:"category" validate:"max=50"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=5,max=480"`
	PriceCents      int64  `json:"price_cents" validate:"min=0"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,notblank,min=2,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category        *string `json:"category,omitempty" validate:"omitempty,max=50"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=5,max=480"`
	PriceCents      *int64  `json:"price_cents,omitempty" validate:"omitempty,min=0"`
}

// Apply applies req to the service and reports whether any field changed.
func (s *Service) Apply(req UpdateServiceRequest) bool {
	changed := setStringIfChanged(&s.Name, req.Name)
	changed = setStringIfChanged(&s.Description, req.Description) || changed
	changed = setStringIfChanged(&s.Category, req.Category) || changed
	changed = setIfChanged(&s.DurationMinutes, req.DurationMinutes) || changed
	changed = setIfChanged(&s.PriceCents, req.PriceCents) || changed
	return changed
}
