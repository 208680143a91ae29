package service

import (
	"context"
	"time"

	"clinicbook/internal/appointments/gateway"
	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/model"
	"clinicbook/pkg/slots"
)

// AvailabilityService lists the open 30-minute slots. Every call
// re-fetches the calendar's busy data; nothing is cached between
// requests, and a slot listed as free can still be taken by a
// concurrent booking before the caller submits.
type AvailabilityService interface {
	// ListSlots returns the free slots for a single local calendar day,
	// or for the default rolling window when day is nil.
	ListSlots(ctx context.Context, day *time.Time) ([]model.Slot, error)
}

type availabilityService struct {
	gw  gateway.CalendarGateway
	cfg *config.Config
	now func() time.Time
}

func NewAvailabilityService(gw gateway.CalendarGateway, cfg *config.Config) AvailabilityService {
	return &availabilityService{
		gw:  gw,
		cfg: cfg,
		now: time.Now,
	}
}

func (s *availabilityService) ListSlots(ctx context.Context, day *time.Time) ([]model.Slot, error) {
	now := s.now()
	window := s.window(now, day)
	if !window.Start.Before(window.End) {
		return []model.Slot{}, nil
	}

	busy, err := s.gw.QueryBusy(ctx, window)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch busy intervals",
			"window_start", window.Start,
			"window_end", window.End,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve availability", err)
	}

	free := slots.Generate(window, s.cfg.BusinessHours(), busy, now, s.cfg.Location)

	s.cfg.Log.Debug("Availability computed",
		"window_start", window.Start,
		"window_end", window.End,
		"busy_count", len(busy),
		"slot_count", len(free),
	)
	return free, nil
}

// window picks the query bounds: the requested local day, or from now
// until closing hour AvailabilityWindowDays days out.
func (s *availabilityService) window(now time.Time, day *time.Time) model.TimeWindow {
	loc := s.cfg.Location

	if day != nil {
		local := day.In(loc)
		start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		return model.TimeWindow{Start: start, End: start.AddDate(0, 0, 1)}
	}

	horizon := now.In(loc).AddDate(0, 0, s.cfg.AvailabilityWindowDays)
	end := time.Date(horizon.Year(), horizon.Month(), horizon.Day(), s.cfg.BusinessEndHour, 0, 0, 0, loc)
	return model.TimeWindow{Start: now, End: end}
}
