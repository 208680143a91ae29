package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"clinicbook/internal/appointments/service"
	httputil "clinicbook/pkg/http"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

type AppointmentHandler struct {
	availability service.AvailabilityService
	bookings     service.BookingService
	loc          *time.Location
	log          *logger.Logger
}

func NewAppointmentHandler(
	availability service.AvailabilityService,
	bookings service.BookingService,
	loc *time.Location,
	log *logger.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: availability,
		bookings:     bookings,
		loc:          loc,
		log:          log,
	}
}

// ListAvailableSlots responds with a bare JSON array of open slots.
// The optional date parameter narrows the query to one local day.
func (h *AppointmentHandler) ListAvailableSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var day *time.Time
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, h.loc)
		if err != nil {
			if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
				Error: "date must be in YYYY-MM-DD format",
			}); writeErr != nil {
				h.log.Error("failed to write JSON response", "handler", "ListAvailableSlots", "operation", "WriteJSON", "error", writeErr)
			}
			return
		}
		day = &parsed
	}

	slots, err := h.availability.ListSlots(r.Context(), day)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAvailableSlots", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, slots); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ListAvailableSlots", "operation", "WriteJSON", "error", err)
	}
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var appt model.Appointment
	if err := json.NewDecoder(r.Body).Decode(&appt); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "BookAppointment", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	eventID, err := h.bookings.Book(r.Context(), &appt)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookAppointment", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, httputil.BookingResponse{
		Message: "Appointment booked successfully",
		EventID: eventID,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "BookAppointment", "operation", "WriteJSON", "error", err)
	}
}

// ListServices exposes the bookable service labels for the form.
func (h *AppointmentHandler) ListServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"services": model.Services,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "ListServices", "operation", "WriteJSON", "error", err)
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/available-slots", h.ListAvailableSlots)
	router.POST("/book-appointment", h.BookAppointment)
	router.GET("/services", h.ListServices)
}
