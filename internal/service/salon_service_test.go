package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zml18x/SMS-Backend-sub000/internal/cache"
	"github.com/zml18x/SMS-Backend-sub000/internal/mocks"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/repository"
)

var (
	owner    = models.Actor{UserID: "owner-1", Roles: []string{models.RoleCustomer, models.RoleManager}}
	admin    = models.Actor{UserID: "admin-1", Roles: []string{models.RoleAdmin}}
	customer = models.Actor{UserID: "cust-1", Roles: []string{models.RoleCustomer}}
)

func testSalon() *models.Salon {
	return &models.Salon{ID: "salon-1", OwnerID: "owner-1", Name: "Glow", City: "Oslo", IsActive: true}
}

func newTestSalonService(t *testing.T) (*SalonService, *mocks.MockSalonRepository, *mocks.MockUserRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	salons := new(mocks.MockSalonRepository)
	users := new(mocks.MockUserRepository)
	svc := NewSalonService(salons, users, cache.NewRedisCache(client), time.Minute).(*SalonService)
	return svc, salons, users, mr
}

func TestCreateSalon(t *testing.T) {
	ctx := context.Background()
	req := models.CreateSalonRequest{
		Name:        " Glow ",
		Description: "<b>Best</b> salon",
		Email:       "glow@example.com",
		PhoneNumber: "+4712345678",
		Address:     "Main 1",
		City:        "Oslo",
		Country:     "NO",
	}

	t.Run("GrantsManagerRole", func(t *testing.T) {
		svc, salons, users, _ := newTestSalonService(t)
		salons.On("Create", ctx, mock.MatchedBy(func(s *models.Salon) bool {
			return s.OwnerID == "cust-1" && s.Name == "Glow" && s.Description == "Best salon" && s.IsActive
		})).Return(nil).Once()
		users.On("AddRole", ctx, "cust-1", models.RoleManager).Return(nil).Once()

		salon, err := svc.CreateSalon(ctx, customer, req)

		require.NoError(t, err)
		assert.NotEmpty(t, salon.ID)
		salons.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("ExistingManagerKeepsRoles", func(t *testing.T) {
		svc, salons, users, _ := newTestSalonService(t)
		salons.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.CreateSalon(ctx, owner, req)

		require.NoError(t, err)
		users.AssertNotCalled(t, "AddRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetSalon_ReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, mr := newTestSalonService(t)
	salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()

	first, err := svc.GetSalon(ctx, "salon-1")
	require.NoError(t, err)
	second, err := svc.GetSalon(ctx, "salon-1")
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.True(t, mr.Exists(cache.SalonKey("salon-1")))
	salons.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetSalon_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newTestSalonService(t)
	salons.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

	_, err := svc.GetSalon(ctx, "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSalon(t *testing.T) {
	ctx := context.Background()

	t.Run("Forbidden_ForStranger", func(t *testing.T) {
		svc, salons, _, _ := newTestSalonService(t)
		salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()

		_, err := svc.UpdateSalon(ctx, customer, "salon-1", models.UpdateSalonRequest{Name: strPtr("Mine")})

		assert.ErrorIs(t, err, ErrForbidden)
		salons.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Unchanged_NoWrite", func(t *testing.T) {
		svc, salons, _, _ := newTestSalonService(t)
		salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()

		res, err := svc.UpdateSalon(ctx, owner, "salon-1", models.UpdateSalonRequest{Name: strPtr("Glow"), City: strPtr("Oslo")})

		require.NoError(t, err)
		assert.False(t, res.Changed)
		salons.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Changed_InvalidatesCache", func(t *testing.T) {
		svc, salons, _, mr := newTestSalonService(t)
		updated := testSalon()
		updated.Name = "Glow Studio"
		salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()
		salons.On("Update", ctx, mock.MatchedBy(func(s *models.Salon) bool { return s.Name == "Glow Studio" })).Return(nil).Once()
		salons.On("GetByID", ctx, "salon-1").Return(updated, nil).Once()

		res, err := svc.UpdateSalon(ctx, admin, "salon-1", models.UpdateSalonRequest{Name: strPtr("Glow Studio")})

		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, "Glow Studio", res.Item.Name)
		assert.False(t, mr.Exists(cache.SalonKey("salon-1")))
		salons.AssertExpectations(t)
	})
}

func TestDeleteSalon(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, mr := newTestSalonService(t)
	salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()
	salons.On("Deactivate", ctx, "salon-1").Return(nil).Once()

	require.NoError(t, svc.DeleteSalon(ctx, owner, "salon-1"))
	assert.False(t, mr.Exists(cache.SalonKey("salon-1")))
	salons.AssertExpectations(t)
}

func TestSetOpeningHours(t *testing.T) {
	ctx := context.Background()

	t.Run("ReplacesWeek", func(t *testing.T) {
		svc, salons, _, _ := newTestSalonService(t)
		salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()
		salons.On("ReplaceOpeningHours", ctx, "salon-1", []models.OpeningHours{
			{SalonID: "salon-1", DayOfWeek: 0, IsClosed: true},
			{SalonID: "salon-1", DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
		}).Return(nil).Once()

		hours, err := svc.SetOpeningHours(ctx, owner, "salon-1", models.SetOpeningHoursRequest{Days: []models.OpeningHoursInput{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 0, OpenTime: "10:00", CloseTime: "12:00", IsClosed: true},
		}})

		require.NoError(t, err)
		assert.Len(t, hours, 2)
		salons.AssertExpectations(t)
	})

	t.Run("RejectsInvalidWeek", func(t *testing.T) {
		svc, salons, _, _ := newTestSalonService(t)
		salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()

		_, err := svc.SetOpeningHours(ctx, owner, "salon-1", models.SetOpeningHoursRequest{Days: []models.OpeningHoursInput{
			{DayOfWeek: 1, OpenTime: "17:00", CloseTime: "09:00"},
		}})

		assert.ErrorIs(t, err, ErrBadRequest)
		salons.AssertNotCalled(t, "ReplaceOpeningHours", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBuildOpeningHours(t *testing.T) {
	tests := []struct {
		name    string
		days    []models.OpeningHoursInput
		wantErr bool
	}{
		{"valid", []models.OpeningHoursInput{{DayOfWeek: 2, OpenTime: "08:30", CloseTime: "18:00"}}, false},
		{"closed without times", []models.OpeningHoursInput{{DayOfWeek: 6, IsClosed: true}}, false},
		{"duplicate day", []models.OpeningHoursInput{
			{DayOfWeek: 3, OpenTime: "09:00", CloseTime: "10:00"},
			{DayOfWeek: 3, IsClosed: true},
		}, true},
		{"missing close", []models.OpeningHoursInput{{DayOfWeek: 1, OpenTime: "09:00"}}, true},
		{"equal times", []models.OpeningHoursInput{{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "09:00"}}, true},
		{"day out of range", []models.OpeningHoursInput{{DayOfWeek: 7, IsClosed: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildOpeningHours("salon-1", tt.days)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetOpeningHours_Cached(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newTestSalonService(t)
	salons.On("GetByID", ctx, "salon-1").Return(testSalon(), nil).Once()
	salons.On("GetOpeningHours", ctx, "salon-1").
		Return([]models.OpeningHours{{SalonID: "salon-1", DayOfWeek: 1, OpenTime: "09:00", CloseTime: "17:00"}}, nil).Once()

	_, err := svc.GetOpeningHours(ctx, "salon-1")
	require.NoError(t, err)
	hours, err := svc.GetOpeningHours(ctx, "salon-1")
	require.NoError(t, err)

	require.Len(t, hours, 1)
	assert.Equal(t, "09:00", hours[0].OpenTime)
	salons.AssertNumberOfCalls(t, "GetOpeningHours", 1)
}

func TestListSalons(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newTestSalonService(t)
	salons.On("List", ctx, "Oslo", 5, 5).Return([]models.Salon{*testSalon()}, nil).Once()
	salons.On("Count", ctx, "Oslo").Return(6, nil).Once()

	list, meta, err := svc.ListSalons(ctx, " Oslo ", 2, 5)

	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}
