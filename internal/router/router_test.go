package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zml18x/SMS-Backend-sub000/internal/auth"
	"github.com/zml18x/SMS-Backend-sub000/internal/config"
	"github.com/zml18x/SMS-Backend-sub000/internal/handlers"
	"github.com/zml18x/SMS-Backend-sub000/internal/mocks"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

func newTestRouter(t *testing.T) (http.Handler, *auth.TokenManager, *mocks.MockSalonService) {
	t.Helper()
	app := &config.Application{
		Config: config.Config{
			App_Env:              "test",
			RateLimit:            1000,
			RequestTimeout:       5,
			CORS_Allowed_Origins: []string{"http://localhost:3000"},
		},
		Logger: zerolog.Nop(),
	}
	tokens := auth.NewTokenManager("router-test-secret-router-test-secret", "sms-test", time.Minute, time.Hour)
	salons := new(mocks.MockSalonService)
	return Setup(app, handlers.Services{Salons: salons}, tokens), tokens, salons
}

func bearer(t *testing.T, tokens *auth.TokenManager, roles ...string) string {
	t.Helper()
	token, _, err := tokens.IssueAccessToken("4b8f2c1e-0a55-4c0f-9d8e-6b1f2f9e7a10", roles)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestSetup_Routes(t *testing.T) {
	handler, tokens, salons := newTestRouter(t)
	salons.On("ListMySalons", mock.Anything, mock.Anything).Return([]models.Salon{}, nil)

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"HealthIsPublic", http.MethodGet, "/health", "", http.StatusServiceUnavailable},
		{"ApiRequiresToken", http.MethodGet, "/api/v1/profile", "", http.StatusUnauthorized},
		{"AdminRequiresRole", http.MethodGet, "/api/v1/users", bearer(t, tokens, models.RoleCustomer), http.StatusForbidden},
		{"MineBeforeSalonID", http.MethodGet, "/api/v1/salons/mine", bearer(t, tokens, models.RoleCustomer), http.StatusOK},
		{"UnknownRoute", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
	salons.AssertExpectations(t)
}

func TestSetup_CORSPreflight(t *testing.T) {
	handler, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/salons", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
