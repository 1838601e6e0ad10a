package models

import "time"

// Employee is a staff member of a salon.
type Employee struct {
	ID          string     `json:"id" db:"id"`
	SalonID     string     `json:"salon_id" db:"salon_id"`
	Email       string     `json:"email" db:"email"`
	PhoneNumber string     `json:"phone_number" db:"phone_number"`
	JobTitle    string     `json:"job_title" db:"job_title"`
	HiredAt     *time.Time `json:"hired_at,omitempty" db:"hired_at"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// EmployeeProfile holds the personal details of an employee.
type EmployeeProfile struct {
	EmployeeID string     `json:"employee_id" db:"employee_id"`
	FirstName  string     `json:"first_name" db:"first_name"`
	LastName   string     `json:"last_name" db:"last_name"`
	Gender     string     `json:"gender" db:"gender"`
	Birthday   *time.Time `json:"birthday,omitempty" db:"birthday"`
	Address    string     `json:"address" db:"address"`
	Bio        string     `json:"bio" db:"bio"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// EmployeeDetails is an employee together with its profile.
type EmployeeDetails struct {
	Employee
	Profile *EmployeeProfile `json:"profile,omitempty"`
}

type CreateEmployeeRequest struct {
	Email       string `json:"email" validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	JobTitle    string `json:"job_title" validate:"required,max=100"`
	HiredAt     string `json:"hired_at" validate:"omitempty,pastdate"`
	FirstName   string `json:"first_name" validate:"required,notblank,max=50"`
	LastName    string `json:"last_name" validate:"required,notblank,max=50"`
}

type UpdateEmployeeRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	JobTitle    *string `json:"job_title,omitempty" validate:"omitempty,max=100"`
	HiredAt     *string `json:"hired_at,omitempty" validate:"omitempty,pastdate"`
}

// Apply applies req to the employee and reports whether any field changed.
func (e *Employee) Apply(req UpdateEmployeeRequest) bool {
	changed := setStringIfChanged(&e.Email, req.Email)
	changed = setStringIfChanged(&e.PhoneNumber, req.PhoneNumber) || changed
	changed = setStringIfChanged(&e.JobTitle, req.JobTitle) || changed
	changed = setDateIfChanged(&e.HiredAt, req.HiredAt) || changed
	return changed
}

type UpdateEmployeeProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,notblank,max=50"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,notblank,max=50"`
	Gender    *string `json:"gender,omitempty" validate:"omitempty,gender"`
	Birthday  *string `json:"birthday,omitempty" validate:"omitempty,pastdate"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=200"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}

// Apply applies req to the profile and reports whether any field changed.
func (p *EmployeeProfile) Apply(req UpdateEmployeeProfileRequest) bool {
	changed := setStringIfChanged(&p.FirstName, req.FirstName)
	changed = setStringIfChanged(&p.LastName, req.LastName) || changed
	changed = setStringIfChanged(&p.Gender, req.Gender) || changed
	changed = setDateIfChanged(&p.Birthday, req.Birthday) || changed
	changed = setStringIfChanged(&p.Address, req.Address) || changed
	changed = setStringIfChanged(&p.Bio, req.Bio) || changed
	return changed
}
