package handlers

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// GetProfile handles GET /api/v1/profile
// @Summary      Current profile
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/v1/profile [get]
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())

	profile, err := h.services.Users.GetProfile(r.Context(), actor.UserID)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch profile")
		return
	}

	writeSuccess(w, h.app, profile, "Profile retrieved successfully")
}

// UpdateProfile handles PUT /api/v1/profile
// @Summary      Update profile
// @Description  Partial update. Only changed fields are persisted.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body      models.UpdateProfileRequest  true  "Fields to change"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/profile [put]
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("handlers")
	ctx, span := tracer.Start(r.Context(), "Handlers.UpdateProfile")
	defer span.End()

	actor := actorFromContext(ctx)
	span.SetAttributes(attribute.String("user.id", actor.UserID))

	var req models.UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.Users.UpdateProfile(ctx, actor.UserID, req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update profile")
		return
	}
	span.SetAttributes(attribute.Bool("profile.changed", result.Changed))

	message := "Profile updated successfully"
	if !result.Changed {
		message = "No changes detected"
	}
	writeSuccess(w, h.app, result, message)
}

// ChangePassword handles PUT /api/v1/password
// @Summary      Change password
// @Description  Verifies the current password and revokes every refresh token of the user
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body      models.ChangePasswordRequest  true  "Passwords"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/password [put]
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())

	var req models.ChangePasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.services.Auth.ChangePassword(r.Context(), actor.UserID, req); err != nil {
		h.writeServiceError(w, r, err, "Failed to change password")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("user_id", actor.UserID).
		Msg("Password changed")
	writeSuccess(w, h.app, nil, "Password changed successfully")
}

// GetUsers handles GET /api/v1/users with pagination
// @Summary      List users
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        page   query     int  false  "Page"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  map[string]interface{}
// @Router       /api/v1/users [get]
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	users, meta, err := h.services.Users.GetUsers(r.Context(), page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch users")
		return
	}

	writeSuccess(w, h.app, map[string]interface{}{
		"users":      users,
		"pagination": meta,
	}, "Users retrieved successfully")
}

// SetUserRoles handles PUT /api/v1/users/{userID}/roles
// @Summary      Replace user roles
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userID   path      string                  true  "User ID"
// @Param        request  body      models.SetRolesRequest  true  "Roles"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/users/{userID}/roles [put]
func (h *Handlers) SetUserRoles(w http.ResponseWriter, r *http.Request) {
	userID := pathVar(r, "userID")

	var req models.SetRolesRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.services.Users.SetRoles(r.Context(), userID, req.Roles); err != nil {
		h.writeServiceError(w, r, err, "Failed to update roles")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("admin_id", actorFromContext(r.Context()).UserID).
		Str("user_id", userID).
		Strs("roles", req.Roles).
		Msg("User roles replaced")
	writeSuccess(w, h.app, nil, "Roles updated successfully")
}
