package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/zml18x/SMS-Backend-sub000/internal/middleware"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/validation"
)

// Register handles user registration
// @Summary      Register
// @Description  Create a customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.RegisterRequest  true  "Account details"
// @Success      201      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]interface{}
// @Router       /auth/register [post]
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())

	var req models.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.services.Auth.Register(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Registration failed")
		return
	}

	h.app.Logger.Info().
		Str("request_id", requestID).
		Str("user_id", resp.UserID).
		Str("username", resp.Username).
		Msg("User registered successfully")

	writeCreated(w, h.app, resp, "User registered successfully")
}

// Login handles user authentication
// @Summary      Login
// @Description  Exchange credentials for an access and refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.LoginRequest  true  "Credentials"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]interface{}
// @Router       /auth/login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())

	var req models.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.services.Auth.Login(r.Context(), req)
	if err != nil {
		h.app.Logger.Warn().
			Str("request_id", requestID).
			Str("username", req.Username).
			Err(err).
			Msg("Login failed")
		h.writeServiceError(w, r, err, "Login failed")
		return
	}

	h.app.Logger.Info().
		Str("request_id", requestID).
		Str("user_id", resp.User.ID).
		Str("username", resp.User.Username).
		Msg("User authenticated successfully")

	h.setAuthCookie(w, resp.AccessToken, time.Unix(resp.ExpiresAt, 0))
	writeSuccess(w, h.app, resp, "Authentication successful")
}

// Refresh rotates a refresh token
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new token pair. The presented token is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]interface{}
// @Router       /auth/refresh [post]
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.services.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.app.Logger.Warn().
			Str("request_id", getRequestID(r.Context())).
			Err(err).
			Msg("Token refresh rejected")
		h.writeServiceError(w, r, err, "Token refresh failed")
		return
	}

	h.setAuthCookie(w, resp.AccessToken, time.Unix(resp.ExpiresAt, 0))
	writeSuccess(w, h.app, resp, "Token refreshed")
}

// Logout revokes the presented refresh token (if any) and clears the auth cookie
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.RefreshRequest  false  "Refresh token to revoke"
// @Success      200      {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, h.app, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.RefreshToken != "" {
		if err := validation.ValidateStruct(&req); err != nil {
			writeError(w, h.app, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.services.Auth.Logout(r.Context(), req.RefreshToken); err != nil {
			h.writeServiceError(w, r, err, "Logout failed")
			return
		}
	}

	// Set the cookie to expire in the past
	h.setAuthCookie(w, "", time.Now().Add(-time.Hour))
	writeSuccess(w, h.app, nil, "Logout successful")
}

func (h *Handlers) setAuthCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    value,
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.app.Config.IsProduction(),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}
