package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zml18x/SMS-Backend-sub000/internal/core"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

const userColumns = `id, username, email, phone_number, password_hash, is_active, created_at, updated_at, last_login`

type PostgresUserRepository struct {
	db DB
}

func NewUserRepository(db DB) core.UserRepository {
	return &PostgresUserRepository{db: db}
}

// --- Auth & Basic ---

// Create inserts the user, its empty profile and its roles in one transaction.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO auth.users (id, username, email, phone_number, password_hash, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		if _, err := tx.Exec(ctx, query,
			user.ID, user.Username, user.Email, user.PhoneNumber, user.PasswordHash,
			user.IsActive, user.CreatedAt, user.UpdatedAt); err != nil {
			return mapError(err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO auth.user_profiles (user_id, updated_at) VALUES ($1, $2)`,
			user.ID, user.UpdatedAt); err != nil {
			return mapError(err)
		}

		return insertRoles(ctx, tx, user.ID, user.Roles)
	})
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := getOne[models.User](ctx, r.db,
		`SELECT `+userColumns+` FROM auth.users WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return nil, err
	}
	if user.Roles, err = r.GetRoles(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmailOrUsername returns nil, nil when no active user matches either value.
func (r *PostgresUserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	user, err := getOne[models.User](ctx, r.db,
		`SELECT `+userColumns+` FROM auth.users WHERE (username = $1 OR email = $2) AND is_active = true LIMIT 1`,
		username, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user.Roles, err = r.GetRoles(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

// --- User Management ---

func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE auth.users
		SET username = $1, email = $2, phone_number = $3, updated_at = $4
		WHERE id = $5 AND is_active = true`
	return execOne(ctx, r.db, query, user.Username, user.Email, user.PhoneNumber, time.Now(), user.ID)
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	return execOne(ctx, r.db,
		"UPDATE auth.users SET password_hash = $1, updated_at = $2 WHERE id = $3", hash, time.Now(), userID)
}

func (r *PostgresUserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	return execOne(ctx, r.db, "UPDATE auth.users SET last_login = $1 WHERE id = $2", time.Now(), userID)
}

func (r *PostgresUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return getMany[models.User](ctx, r.db, `
		SELECT `+userColumns+`
		FROM auth.users WHERE is_active = true
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PostgresUserRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "SELECT COUNT(*) FROM auth.users WHERE is_active = true")
}

// --- Roles ---

func (r *PostgresUserRepository) GetRoles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT role FROM auth.user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapError(err)
	}
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

// SetRoles replaces the role set of the user.
func (r *PostgresUserRepository) SetRoles(ctx context.Context, userID string, roles []string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM auth.user_roles WHERE user_id = $1`, userID); err != nil {
			return mapError(err)
		}
		return insertRoles(ctx, tx, userID, roles)
	})
}

// AddRole grants a role; granting an existing role is a no-op.
func (r *PostgresUserRepository) AddRole(ctx context.Context, userID, role string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO auth.user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`, userID, role)
	return mapError(err)
}

func insertRoles(ctx context.Context, tx pgx.Tx, userID string, roles []string) error {
	for _, role := range roles {
		if _, err := tx.Exec(ctx,
			`INSERT INTO auth.user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, role); err != nil {
			return mapError(err)
		}
	}
	return nil
}

// --- Profile ---

func (r *PostgresUserRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := getOne[models.UserProfile](ctx, r.db, `
		SELECT user_id, first_name, last_name, gender, birthday, address, updated_at
		FROM auth.user_profiles WHERE user_id = $1`, userID)
	if errors.Is(err, ErrNotFound) {
		// Accounts created before profiles existed get an empty one.
		return &models.UserProfile{UserID: userID}, nil
	}
	return profile, err
}

func (r *PostgresUserRepository) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO auth.user_profiles (user_id, first_name, last_name, gender, birthday, address, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			gender = EXCLUDED.gender,
			birthday = EXCLUDED.birthday,
			address = EXCLUDED.address,
			updated_at = NOW()`
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.FirstName, profile.LastName, profile.Gender, profile.Birthday, profile.Address)
	return mapError(err)
}
