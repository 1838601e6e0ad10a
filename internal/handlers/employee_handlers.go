package handlers

import (
	"net/http"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// CreateEmployee handles POST /api/v1/salons/{salonID}/employees
// @Summary      Add employee
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID  path      string                        true  "Salon ID"
// @Param        request  body      models.CreateEmployeeRequest  true  "Employee"
// @Success      201      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/employees [post]
func (h *Handlers) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	salonID := pathVar(r, "salonID")
	employee, err := h.services.Employees.CreateEmployee(r.Context(), actorFromContext(r.Context()), salonID, req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create employee")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("salon_id", salonID).
		Str("employee_id", employee.ID).
		Msg("Employee created")
	writeCreated(w, h.app, employee, "Employee created successfully")
}

// ListEmployees handles GET /api/v1/salons/{salonID}/employees
func (h *Handlers) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.services.Employees.ListEmployees(r.Context(), pathVar(r, "salonID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch employees")
		return
	}
	writeSuccess(w, h.app, employees, "Employees retrieved successfully")
}

// GetEmployee handles GET /api/v1/salons/{salonID}/employees/{employeeID}
func (h *Handlers) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.services.Employees.GetEmployee(r.Context(), pathVar(r, "salonID"), pathVar(r, "employeeID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch employee")
		return
	}
	writeSuccess(w, h.app, employee, "Employee retrieved successfully")
}

// UpdateEmployee handles PUT /api/v1/salons/{salonID}/employees/{employeeID}
// @Summary      Update employee
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID     path      string                        true  "Salon ID"
// @Param        employeeID  path      string                        true  "Employee ID"
// @Param        request     body      models.UpdateEmployeeRequest  true  "Fields to change"
// @Success      200         {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/employees/{employeeID} [put]
func (h *Handlers) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.Employees.UpdateEmployee(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "employeeID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update employee")
		return
	}
	h.writeUpdateResult(w, result.Changed, result, "Employee")
}

// DeleteEmployee handles DELETE /api/v1/salons/{salonID}/employees/{employeeID}
func (h *Handlers) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	err := h.services.Employees.DeleteEmployee(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "employeeID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to delete employee")
		return
	}
	writeSuccess(w, h.app, nil, "Employee deleted successfully")
}

// GetEmployeeProfile handles GET /api/v1/salons/{salonID}/employees/{employeeID}/profile
func (h *Handlers) GetEmployeeProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.services.Employees.GetEmployeeProfile(r.Context(), pathVar(r, "salonID"), pathVar(r, "employeeID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch employee profile")
		return
	}
	writeSuccess(w, h.app, profile, "Employee profile retrieved successfully")
}

// UpdateEmployeeProfile handles PUT /api/v1/salons/{salonID}/employees/{employeeID}/profile
func (h *Handlers) UpdateEmployeeProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateEmployeeProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.services.Employees.UpdateEmployeeProfile(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "employeeID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update employee profile")
		return
	}
	h.writeUpdateResult(w, result.Changed, result, "Employee profile")
}
