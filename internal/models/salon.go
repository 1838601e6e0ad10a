package models

import "time"

// Salon is a tenant business owned by a user.
type Salon struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Address     string    `json:"address" db:"address"`
	City        string    `json:"city" db:"city"`
	Country     string    `json:"country" db:"country"`
	PostalCode  string    `json:"postal_code" db:"postal_code"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// OpeningHours is the schedule of one weekday. DayOfWeek follows time.Weekday (0 = Sunday).
type OpeningHours struct {
	SalonID   string `json:"-" db:"salon_id"`
	DayOfWeek int    `json:"day_of_week" db:"day_of_week"`
	OpenTime  string `json:"open_time,omitempty" db:"open_time"`
	CloseTime string `json:"close_time,omitempty" db:"close_time"`
	IsClosed  bool   `json:"is_closed" db:"is_closed"`
}

type CreateSalonRequest struct {
	Name        string `json:"name" validate:"required,notblank,min=2,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Email       string `json:"email" validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Address     string `json:"address" validate:"required,max=200"`
	City        string `json:"city" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,max=100"`
	PostalCode  string `json:"postal_code" validate:"max=20"`
}

type UpdateSalonRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=200"`
	City        *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country     *string `json:"country,omitempty" validate:"omitempty,max=100"`
	PostalCode  *string `json:"postal_code,omitempty" validate:"omitempty,max=20"`
}

// Apply applies req to the salon and reports whether any field changed.
func (s *Salon) Apply(req UpdateSalonRequest) bool {
	changed := setStringIfChanged(&s.Name, req.Name)
	changed = setStringIfChanged(&s.Description, req.Description) || changed
	changed = setStringIfChanged(&s.Email, req.Email) || changed
	changed = setStringIfChanged(&s.PhoneNumber, req.PhoneNumber) || changed
	changed = setStringIfChanged(&s.Address, req.Address) || changed
	changed = setStringIfChanged(&s.City, req.City) || changed
	changed = setStringIfChanged(&s.Country, req.Country) || changed
	changed = setStringIfChanged(&s.PostalCode, req.PostalCode) || changed
	return changed
}

type OpeningHoursInput struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	OpenTime  string `json:"open_time" validate:"omitempty,hhmm"`
	CloseTime string `json:"close_time" validate:"omitempty,hhmm"`
	IsClosed  bool   `json:"is_closed"`
}

type SetOpeningHoursRequest struct {
	Days []OpeningHoursInput `json:"days" validate:"required,min=1,max=7,dive"`
}
