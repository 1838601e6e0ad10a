package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

var productCols = []string{
	"id", "salon_id", "name", "sku", "description", "price_cents", "stock_quantity", "is_active", "created_at", "updated_at",
}

func productRow(stock int) *pgxmock.Rows {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return pgxmock.NewRows(productCols).
		AddRow("prod-1", "salon-1", "Shampoo", "SH-1", "", int64(1500), stock, true, now, now)
}

func TestProductRepository_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Applied", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("SET stock_quantity = stock_quantity").WithArgs(-2, "prod-1", "salon-1").
			WillReturnRows(productRow(3))

		p, err := NewProductRepository(mock).AdjustStock(ctx, "salon-1", "prod-1", -2)

		require.NoError(t, err)
		assert.Equal(t, 3, p.StockQuantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("WouldGoNegative", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("SET stock_quantity = stock_quantity").WithArgs(-10, "prod-1", "salon-1").
			WillReturnRows(pgxmock.NewRows(productCols))
		mock.ExpectQuery("SELECT id, salon_id, name, sku").WithArgs("prod-1", "salon-1").
			WillReturnRows(productRow(3))

		_, err := NewProductRepository(mock).AdjustStock(ctx, "salon-1", "prod-1", -10)

		assert.ErrorIs(t, err, ErrLimitExceeded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery("SET stock_quantity = stock_quantity").WithArgs(1, "nope", "salon-1").
			WillReturnRows(pgxmock.NewRows(productCols))
		mock.ExpectQuery("SELECT id, salon_id, name, sku").WithArgs("nope", "salon-1").
			WillReturnRows(pgxmock.NewRows(productCols))

		_, err := NewProductRepository(mock).AdjustStock(ctx, "salon-1", "nope", 1)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_Deactivate(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec("SET is_active = false").WithArgs("prod-1", "salon-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewProductRepository(mock).Deactivate(context.Background(), "salon-1", "prod-1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalonRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "owner_id", "name", "description", "email", "phone_number", "address",
		"city", "country", "postal_code", "is_active", "created_at", "updated_at",
	}

	mock := newMockPool(t)
	mock.ExpectQuery("FROM app_data.salons WHERE id").WithArgs("salon-1").
		WillReturnRows(pgxmock.NewRows(cols).AddRow("salon-1", "owner-1", "Glow", "", "glow@example.com",
			"+4712345678", "Main 1", "Oslo", "NO", "0150", true, now, now))
	mock.ExpectQuery("FROM app_data.salons WHERE id").WithArgs("salon-2").
		WillReturnRows(pgxmock.NewRows(cols))

	repo := NewSalonRepository(mock)
	salon, err := repo.GetByID(ctx, "salon-1")
	require.NoError(t, err)
	assert.Equal(t, "Glow", salon.Name)
	assert.Equal(t, "owner-1", salon.OwnerID)

	_, err = repo.GetByID(ctx, "salon-2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalonRepository_GetByID_MalformedID(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery("FROM app_data.salons WHERE id").WithArgs("not-a-uuid").
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "not-a-uuid"`})

	_, err := NewSalonRepository(mock).GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalonRepository_ReplaceOpeningHours(t *testing.T) {
	mock := newMockPool(t)
	hours := []models.OpeningHours{
		{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
		{DayOfWeek: 0, IsClosed: true},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM app_data.opening_hours").WithArgs("salon-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 7))
	mock.ExpectExec("INSERT INTO app_data.opening_hours").WithArgs("salon-1", 1, "09:00", "17:00", false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO app_data.opening_hours").WithArgs("salon-1", 0, "", "", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, NewSalonRepository(mock).ReplaceOpeningHours(context.Background(), "salon-1", hours))
	assert.NoError(t, mock.ExpectationsWereMet())
}
