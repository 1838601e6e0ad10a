// File: internal/models/user.go
package models

import (
	"time"
)

// Roles known to the identity subsystem.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID           string     `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PhoneNumber  *string    `json:"phone_number,omitempty" db:"phone_number"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never serialize to JSON
	IsActive     bool       `json:"is_active" db:"is_active"`
	Roles        []string   `json:"roles,omitempty" db:"-"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// UserProfile holds the personal details attached to an account.
type UserProfile struct {
	UserID    string     `json:"-" db:"user_id"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	Gender    string     `json:"gender" db:"gender"`
	Birthday  *time.Time `json:"birthday,omitempty" db:"birthday"`
	Address   string     `json:"address" db:"address"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// ProfileResponse is the account plus its personal details.
type ProfileResponse struct {
	User    *User        `json:"user"`
	Profile *UserProfile `json:"profile"`
}

// UserSummary is the public part of a user returned on login.
type UserSummary struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// RefreshToken is a persisted, hashed refresh credential.
type RefreshToken struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// IsUsable reports whether the token can still be exchanged at now.
func (t *RefreshToken) IsUsable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"` // username or email
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=50,username"`
	Email       string  `json:"email" validate:"required,email,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	Password    string  `json:"password" validate:"required,min=8,max=128,password"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenPair is an access token and its refresh companion.
type TokenPair struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	TokenType        string `json:"token_type"`
	ExpiresAt        int64  `json:"expires_at"`
	RefreshExpiresAt int64  `json:"refresh_expires_at"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	TokenPair
	User UserSummary `json:"user"`
}

// RefreshRequest exchanges or revokes a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required,min=20,max=128"`
}

// UpdateProfileRequest is a partial update of the account and its profile.
type UpdateProfileRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=50,username"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,phone"`
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Gender      *string `json:"gender,omitempty" validate:"omitempty,gender"`
	Birthday    *string `json:"birthday,omitempty" validate:"omitempty,pastdate"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=200"`
}

// ApplyAccount applies the account part of req and reports whether anything changed.
func (u *User) ApplyAccount(req UpdateProfileRequest) bool {
	changed := setStringIfChanged(&u.Username, req.Username)
	changed = setStringIfChanged(&u.Email, req.Email) || changed
	changed = setOptionalStringIfChanged(&u.PhoneNumber, req.PhoneNumber) || changed
	return changed
}

// Apply applies the profile part of req and reports whether anything changed.
func (p *UserProfile) Apply(req UpdateProfileRequest) bool {
	changed := setStringIfChanged(&p.FirstName, req.FirstName)
	changed = setStringIfChanged(&p.LastName, req.LastName) || changed
	changed = setStringIfChanged(&p.Gender, req.Gender) || changed
	changed = setDateIfChanged(&p.Birthday, req.Birthday) || changed
	changed = setStringIfChanged(&p.Address, req.Address) || changed
	return changed
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=128,password"`
}

// SetRolesRequest replaces the role set of a user.
type SetRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1,dive,oneof=admin manager customer"`
}
