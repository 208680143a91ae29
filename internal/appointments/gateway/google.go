package gateway

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	appterrors "clinicbook/internal/appointments/errors"
	"clinicbook/pkg/config"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

// GoogleCalendar implements CalendarGateway against the Google Calendar
// API using a service-account JWT. No retries and no deadlines beyond
// the caller's context.
type GoogleCalendar struct {
	service    *calendar.Service
	calendarID string
	timeZone   string
	log        *logger.Logger
}

func NewGoogleCalendar(ctx context.Context, cfg *config.Config) (*GoogleCalendar, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", cfg.CredentialsFile, err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(b, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account credentials: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleCalendar{
		service:    service,
		calendarID: cfg.CalendarID,
		timeZone:   cfg.TimeZone,
		log:        cfg.Log,
	}, nil
}

func (g *GoogleCalendar) QueryBusy(ctx context.Context, window model.TimeWindow) ([]model.BusyInterval, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin:  window.Start.Format(time.RFC3339),
		TimeMax:  window.End.Format(time.RFC3339),
		TimeZone: g.timeZone,
		Items:    []*calendar.FreeBusyRequestItem{{Id: g.calendarID}},
	}

	resp, err := g.service.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appterrors.ErrUpstreamFetch, err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		// No entry for the calendar means nothing is booked.
		return nil, nil
	}

	busy, err := parseBusyPeriods(cal.Busy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appterrors.ErrUpstreamFetch, err)
	}

	g.log.Debug("Fetched busy intervals",
		"calendar_id", g.calendarID,
		"window_start", window.Start,
		"window_end", window.End,
		"count", len(busy),
	)
	return busy, nil
}

func parseBusyPeriods(periods []*calendar.TimePeriod) ([]model.BusyInterval, error) {
	busy := make([]model.BusyInterval, 0, len(periods))
	for _, p := range periods {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("malformed busy interval start %q: %w", p.Start, err)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("malformed busy interval end %q: %w", p.End, err)
		}
		busy = append(busy, model.BusyInterval{Start: start, End: end})
	}
	return busy, nil
}

func (g *GoogleCalendar) InsertEvent(ctx context.Context, draft model.EventDraft) (string, error) {
	event := &calendar.Event{
		Summary:     draft.Summary,
		Description: draft.Description,
		Start: &calendar.EventDateTime{
			DateTime: draft.Start.Format(time.RFC3339),
			TimeZone: draft.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: draft.End.Format(time.RFC3339),
			TimeZone: draft.TimeZone,
		},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: %v", appterrors.ErrUpstreamWrite, err)
	}

	g.log.Info("Calendar event created",
		"calendar_id", g.calendarID,
		"event_id", created.Id,
		"start", draft.Start,
	)
	return created.Id, nil
}

func (g *GoogleCalendar) Ping(ctx context.Context) error {
	_, err := g.service.Events.List(g.calendarID).
		MaxResults(1).
		SingleEvents(true).
		TimeMin(time.Now().Format(time.RFC3339)).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("calendar not reachable: %w", err)
	}
	return nil
}
