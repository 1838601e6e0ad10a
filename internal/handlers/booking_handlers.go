package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/zml18x/SMS-Backend-sub000/internal/models"
)

// --- Appointments ---

// BookAppointment handles POST /api/v1/salons/{salonID}/appointments
// @Summary      Book appointment
// @Description  End time and price are taken from the service. Overlapping bookings of one employee are rejected.
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID  path      string                          true  "Salon ID"
// @Param        request  body      models.BookAppointmentRequest   true  "Booking"
// @Success      201      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/appointments [post]
func (h *Handlers) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req models.BookAppointmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	actor := actorFromContext(r.Context())
	appointment, err := h.services.Appointments.Book(r.Context(), actor, pathVar(r, "salonID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to book appointment")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("appointment_id", appointment.ID).
		Str("salon_id", appointment.SalonID).
		Str("customer_id", actor.UserID).
		Time("start_time", appointment.StartTime).
		Msg("Appointment booked")
	writeCreated(w, h.app, appointment, "Appointment booked successfully")
}

// ListSalonAppointments handles GET /api/v1/salons/{salonID}/appointments?from=&to=&status=&employee_id=
// @Summary      List salon appointments
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        salonID      path      string  true   "Salon ID"
// @Param        from         query     string  false  "RFC3339 lower bound of start time"
// @Param        to           query     string  false  "RFC3339 upper bound of start time"
// @Param        status       query     string  false  "Status"
// @Param        employee_id  query     string  false  "Employee ID"
// @Success      200          {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/appointments [get]
func (h *Handlers) ListSalonAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.AppointmentFilter{
		Status:     query.Get("status"),
		EmployeeID: query.Get("employee_id"),
	}

	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			writeError(w, h.app, http.StatusBadRequest, "employee_id must be a UUID")
			return
		}
	}

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, h.app, http.StatusBadRequest, name+" must be an RFC3339 timestamp")
			return
		}
		*dst = &t
	}

	appointments, err := h.services.Appointments.ListForSalon(r.Context(), actorFromContext(r.Context()), pathVar(r, "salonID"), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch appointments")
		return
	}
	writeSuccess(w, h.app, appointments, "Appointments retrieved successfully")
}

// GetAppointment handles GET /api/v1/salons/{salonID}/appointments/{appointmentID}
func (h *Handlers) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.services.Appointments.Get(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "appointmentID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch appointment")
		return
	}
	writeSuccess(w, h.app, appointment, "Appointment retrieved successfully")
}

// UpdateAppointmentStatus handles PUT /api/v1/salons/{salonID}/appointments/{appointmentID}/status
// @Summary      Change appointment status
// @Description  Customers may cancel their own appointments. Owners and admins may complete, cancel or mark no-show.
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID        path      string                                 true  "Salon ID"
// @Param        appointmentID  path      string                                 true  "Appointment ID"
// @Param        request        body      models.UpdateAppointmentStatusRequest  true  "Target status"
// @Success      200            {object}  map[string]interface{}
// @Failure      422            {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/appointments/{appointmentID}/status [put]
func (h *Handlers) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAppointmentStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	appointment, err := h.services.Appointments.UpdateStatus(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "appointmentID"), req.Status)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update appointment")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("appointment_id", appointment.ID).
		Str("status", appointment.Status).
		Msg("Appointment status changed")
	writeSuccess(w, h.app, appointment, "Appointment updated successfully")
}

// ListMyAppointments handles GET /api/v1/appointments
func (h *Handlers) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.services.Appointments.ListMine(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch appointments")
		return
	}
	writeSuccess(w, h.app, appointments, "Appointments retrieved successfully")
}

// --- Payments ---

// RecordPayment handles POST /api/v1/salons/{salonID}/payments
// @Summary      Record payment
// @Description  The paid total of an appointment never exceeds its price.
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        salonID  path      string                       true  "Salon ID"
// @Param        request  body      models.RecordPaymentRequest  true  "Payment"
// @Success      201      {object}  map[string]interface{}
// @Failure      422      {object}  map[string]interface{}
// @Router       /api/v1/salons/{salonID}/payments [post]
func (h *Handlers) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPaymentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.services.Payments.Record(r.Context(), actorFromContext(r.Context()), pathVar(r, "salonID"), req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to record payment")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("payment_id", payment.ID).
		Str("appointment_id", payment.AppointmentID).
		Int64("amount_cents", payment.AmountCents).
		Str("currency", payment.Currency).
		Msg("Payment recorded")
	writeCreated(w, h.app, payment, "Payment recorded successfully")
}

// ListSalonPayments handles GET /api/v1/salons/{salonID}/payments?page=&limit=
func (h *Handlers) ListSalonPayments(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	payments, meta, err := h.services.Payments.ListForSalon(r.Context(), actorFromContext(r.Context()), pathVar(r, "salonID"), page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch payments")
		return
	}

	writeSuccess(w, h.app, map[string]interface{}{
		"payments":   payments,
		"pagination": meta,
	}, "Payments retrieved successfully")
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.services.Payments.Get(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "paymentID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch payment")
		return
	}
	writeSuccess(w, h.app, payment, "Payment retrieved successfully")
}

// ListAppointmentPayments handles GET /api/v1/salons/{salonID}/appointments/{appointmentID}/payments
func (h *Handlers) ListAppointmentPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.services.Payments.ListForAppointment(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "appointmentID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch payments")
		return
	}
	writeSuccess(w, h.app, payments, "Payments retrieved successfully")
}

// RefundPayment handles POST /api/v1/salons/{salonID}/payments/{paymentID}/refund
func (h *Handlers) RefundPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := h.services.Payments.Refund(r.Context(), actorFromContext(r.Context()),
		pathVar(r, "salonID"), pathVar(r, "paymentID"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to refund payment")
		return
	}

	h.app.Logger.Info().
		Str("request_id", getRequestID(r.Context())).
		Str("payment_id", payment.ID).
		Msg("Payment refunded")
	writeSuccess(w, h.app, payment, "Payment refunded successfully")
}
