package handlers

import (
	"net/http"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// CreateSalon handles POST /api/v1/salons. The caller becomes the owner and gains the manager role.
// @Summary      Create salon
// @Tags         salons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        request  body      models.CreateSalonRequest  true  "Salon"
// @Success      201      {object}  map[string]interface{}
// @Router       /api/v1/salons [post]
func (h *Handlers) CreateSalon(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())

	var req models.CreateSalonRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	salon, err := h.services.Salons.CreateSalon(r.Context(), actor, req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create salon")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("salon_id", salon.ID).
		Str("owner_id", actor.UserID).
		Msg("Salon created")
	writeCreated(w, h.app, salon, "Salon created successfully")
}

// ListSalons handles GET /api/v1/salons?city=&page=&limit=
// @Summary      List salons
// @Tags         salons
// @Security     Bearer
// @Produce      json
// @Param        city   query     string  false  "City"
// @Param        page   query     int     false  "Page"
// @Param        limit  query     int     false  "Page size"
// @Success      200    {object}  map[string]interface{}
// @Router       /api/v1/salons [get]
func (h *Handlers) ListSalons(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	salons, meta, err := h.services.Salons.ListSalons(r.Context(), r.URL.Query().Get("city"), page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch salons")
		return
	}

	writeSuccess(w, h.app, map[string]interface{}{
		"salons":     salons,
		"pagination": meta,
	}, "Salons retrieved successfully")
}

// ListMySalons handles GET /api/v1/salons/mine
func (h *Handlers) ListMySalons(w http.ResponseWriter, r *http.Request) {
	salons, err := h.services.Salons.ListMySalons(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch salons")
		return
	}
	writeSuccess(w, h.app, salons, "Salons retrieved successfully")
}

// GetSalon handles GET /api/v1/salons/{salonID}
// @Summary      Get salon
// @Tags         salons
// @Security     Bearer
// @Produce      json
// @Param        salonID  path      string  true  "Salon ID"
// @Success      200      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID} [get]
func (h *Handlers) GetSalon(w http.ResponseWriter, r *http.Request) {
	salon, err := h.services.Salons.GetSalon(r.Context(), pathVar(r, "salonID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch salon")
		return
	}
	writeSuccess(w, h.app, salon, "Salon retrieved successfully")
}

// UpdateSalon handles PUT /api/v1/salons/{salonID}
// @Summary      Update salon
// @Description  Partial update by the owner or an admin. Only changed fields are persisted.
// @Tags         salons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID  path      string                     true  "Salon ID"
// @Param        request  body      models.UpdateSalonRequest  true  "Fields to change"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID} [put]
func (h *Handlers) UpdateSalon(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSalonRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.Salons.UpdateSalon(r.Context(), actorFromContext(r.Context()), pathVar(r, "salonID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update salon")
		return
	}
	h.writeUpdateResult(w, result.Changed, result, "Salon")
}

// DeleteSalon handles DELETE /api/v1/salons/{salonID}
func (h *Handlers) DeleteSalon(w http.ResponseWriter, r *http.Request) {
	salonID := pathVar(r, "salonID")
	if err := h.services.Salons.DeleteSalon(r.Context(), actorFromContext(r.Context()), salonID); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete salon")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("salon_id", salonID).
		Msg("Salon deactivated")
	writeSuccess(w, h.app, nil, "Salon deleted successfully")
}

// GetOpeningHours handles GET /api/v1/salons/{salonID}/hours
func (h *Handlers) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.services.Salons.GetOpeningHours(r.Context(), pathVar(r, "salonID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch opening hours")
		return
	}
	writeSuccess(w, h.app, hours, "Opening hours retrieved successfully")
}

// SetOpeningHours handles PUT /api/v1/salons/{salonID}/hours. The week is replaced as a whole.
// @Summary      Replace opening hours
// @Tags         salons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID  path      string                         true  "Salon ID"
// @Param        request  body      models.SetOpeningHoursRequest  true  "Week schedule"
// @Success      200      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/hours [put]
func (h *Handlers) SetOpeningHours(w http.ResponseWriter, r *http.Request) {
	var req models.SetOpeningHoursRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	hours, err := h.services.Salons.SetOpeningHours(r.Context(), actorFromContext(r.Context()), pathVar(r, "salonID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update opening hours")
		return
	}
	writeSuccess(w, h.app, hours, "Opening hours updated successfully")
}

func (h *Handlers) writeUpdateResult(w http.ResponseWriter, changed bool, result interface{}, entity string) {
	message := entity + " updated successfully"
	if !changed {
		message = "No changes detected"
	}
	writeSuccess(w, h.app, result, message)
}
