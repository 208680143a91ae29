package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	appterrors "clinicbook/internal/appointments/errors"
	"clinicbook/internal/appointments/gateway"
	"clinicbook/internal/appointments/validator"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/events"
	"clinicbook/pkg/model"
	"clinicbook/pkg/sanitizer"
)

// BookingService turns a validated appointment into one calendar event
// write. The start/end pair is trusted as submitted; nothing re-checks
// that the slot is still free, so two concurrent bookings of the same
// slot can both succeed (accepted limitation, the calendar keeps both).
type BookingService interface {
	Book(ctx context.Context, appt *model.Appointment) (string, error)
}

type bookingService struct {
	gw        gateway.CalendarGateway
	validator *validator.AppointmentValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	gw gateway.CalendarGateway,
	apptValidator *validator.AppointmentValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &bookingService{
		gw:        gw,
		validator: apptValidator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Book(ctx context.Context, appt *model.Appointment) (string, error) {
	s.sanitize(appt)

	if err := s.validator.Validate(appt); err != nil {
		s.cfg.Log.Warn("Appointment validation failed",
			"service", appt.Service,
			"error", err,
		)
		return "", apperrors.Wrap(appterrors.ErrMissingFields, apperrors.CodeValidation,
			"Missing required fields", http.StatusBadRequest).WithDetails(map[string]any{
			"error": err.Error(),
		})
	}

	draft := buildEventDraft(appt, s.cfg.TimeZone)

	eventID, err := s.gw.InsertEvent(ctx, draft)
	if err != nil {
		s.cfg.Log.Error("Failed to book appointment",
			"service", appt.Service,
			"start", appt.Start,
			"error", err,
		)
		return "", apperrors.Internal("Failed to book appointment", err)
	}

	s.cfg.Log.Info("Appointment booked successfully",
		"event_id", eventID,
		"service", appt.Service,
		"start", appt.Start,
		"end", appt.End,
	)

	// Best effort: a failed publish never fails the booking.
	if err := s.publisher.PublishBookingConfirmed(ctx, events.BookingConfirmed{
		CalendarEventID: eventID,
		Name:            appt.Name,
		Service:         appt.Service,
		Start:           appt.Start,
		End:             appt.End,
		BookedAt:        s.now(),
	}); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_id", eventID,
			"error", err,
		)
	}

	return eventID, nil
}

func (s *bookingService) sanitize(appt *model.Appointment) {
	appt.Name = sanitizer.NormalizeName(appt.Name)
	appt.Email = sanitizer.NormalizeEmail(appt.Email)
	appt.Phone = sanitizer.NormalizePhone(appt.Phone)
	appt.Service = sanitizer.TrimAndNormalize(appt.Service)
	appt.Message = sanitizer.TrimAndNormalize(appt.Message)
}

// buildEventDraft renders the calendar event: the title carries the
// service and visitor name, the description the contact details, and
// the start/end instants pass through verbatim tagged with the fixed
// timezone.
func buildEventDraft(appt *model.Appointment, timeZone string) model.EventDraft {
	description := fmt.Sprintf("Service: %s\nContact: %s\nEmail: %s", appt.Service, appt.Phone, appt.Email)
	if appt.Message != "" {
		description += "\nMessage: " + appt.Message
	}

	return model.EventDraft{
		Summary:     fmt.Sprintf("%s - Appointment with %s", appt.Service, appt.Name),
		Description: description,
		Start:       appt.Start,
		End:         appt.End,
		TimeZone:    timeZone,
	}
}
