package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appterrors "clinicbook/internal/appointments/errors"
	"clinicbook/internal/appointments/validator"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/events"
	"clinicbook/pkg/model"
)

type mockPublisher struct {
	publishFunc  func(ctx context.Context, ev events.BookingConfirmed) error
	publishCalls int
	lastEvent    events.BookingConfirmed
}

func (m *mockPublisher) PublishBookingConfirmed(ctx context.Context, ev events.BookingConfirmed) error {
	m.publishCalls++
	m.lastEvent = ev
	if m.publishFunc != nil {
		return m.publishFunc(ctx, ev)
	}
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func testAppointment(t *testing.T) *model.Appointment {
	t.Helper()
	start := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)
	return &model.Appointment{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+6591234567",
		Service: "Health Screening",
		Start:   start,
		End:     start.Add(30 * time.Minute),
	}
}

func newBookingService(t *testing.T, gw *mockGateway, pub events.Publisher) *bookingService {
	t.Helper()
	cfg := testConfig(t)
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	return &bookingService{
		gw:        gw,
		validator: validator.NewAppointmentValidator(cfg.Log),
		publisher: pub,
		cfg:       cfg,
		now:       func() time.Time { return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestBook_MissingPhoneNeverReachesGateway(t *testing.T) {
	gw := &mockGateway{}
	svc := newBookingService(t, gw, nil)

	appt := testAppointment(t)
	appt.Phone = "   "

	_, err := svc.Book(context.Background(), appt)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error code, got %s", appErr.Code)
	}
	if appErr.Message != "Missing required fields" {
		t.Errorf("expected 'Missing required fields', got %q", appErr.Message)
	}
	if !errors.Is(err, appterrors.ErrMissingFields) {
		t.Error("expected the missing-fields sentinel in the error chain")
	}
	if gw.insertEventCalls != 0 {
		t.Errorf("gateway must not be invoked on validation failure, got %d calls", gw.insertEventCalls)
	}
}

func TestBook_Success(t *testing.T) {
	gw := &mockGateway{
		insertEventFunc: func(ctx context.Context, draft model.EventDraft) (string, error) {
			return "evt-42", nil
		},
	}
	pub := &mockPublisher{}
	svc := newBookingService(t, gw, pub)

	appt := testAppointment(t)
	appt.Message = "please call before the visit"

	eventID, err := svc.Book(context.Background(), appt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eventID != "evt-42" {
		t.Errorf("expected the gateway's event ID, got %q", eventID)
	}
	if gw.insertEventCalls != 1 {
		t.Errorf("expected exactly one insert, got %d", gw.insertEventCalls)
	}

	draft := gw.lastDraft
	if draft.Summary != "Health Screening - Appointment with Jane Doe" {
		t.Errorf("unexpected summary: %q", draft.Summary)
	}
	for _, want := range []string{"Service: Health Screening", "Contact: +6591234567", "Email: jane@example.com", "Message: please call before the visit"} {
		if !strings.Contains(draft.Description, want) {
			t.Errorf("description missing %q: %q", want, draft.Description)
		}
	}
	if draft.TimeZone != "Asia/Singapore" {
		t.Errorf("expected fixed timezone tag, got %q", draft.TimeZone)
	}
	if !draft.Start.Equal(appt.Start) || !draft.End.Equal(appt.End) {
		t.Error("draft start/end must pass through verbatim")
	}

	if pub.publishCalls != 1 {
		t.Errorf("expected one published booking event, got %d", pub.publishCalls)
	}
	if pub.lastEvent.CalendarEventID != "evt-42" {
		t.Errorf("published event should carry the calendar event ID, got %q", pub.lastEvent.CalendarEventID)
	}
}

func TestBook_OmitsMessageLineWhenEmpty(t *testing.T) {
	gw := &mockGateway{}
	svc := newBookingService(t, gw, nil)

	if _, err := svc.Book(context.Background(), testAppointment(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(gw.lastDraft.Description, "Message:") {
		t.Errorf("empty message should not render a Message line: %q", gw.lastDraft.Description)
	}
}

func TestBook_UpstreamWriteFailure(t *testing.T) {
	gw := &mockGateway{
		insertEventFunc: func(ctx context.Context, draft model.EventDraft) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	pub := &mockPublisher{}
	svc := newBookingService(t, gw, pub)

	_, err := svc.Book(context.Background(), testAppointment(t))
	if err == nil {
		t.Fatal("expected an error when the calendar write fails")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected internal error code, got %s", appErr.Code)
	}
	if pub.publishCalls != 0 {
		t.Errorf("no booking event should be published on failure, got %d", pub.publishCalls)
	}
}

func TestBook_PublishFailureDoesNotFailBooking(t *testing.T) {
	gw := &mockGateway{}
	pub := &mockPublisher{
		publishFunc: func(ctx context.Context, ev events.BookingConfirmed) error {
			return errors.New("brokers unreachable")
		},
	}
	svc := newBookingService(t, gw, pub)

	eventID, err := svc.Book(context.Background(), testAppointment(t))
	if err != nil {
		t.Fatalf("booking must succeed despite a publish failure, got: %v", err)
	}
	if eventID == "" {
		t.Error("expected an event ID")
	}
}

func TestBook_SanitizesContactFields(t *testing.T) {
	gw := &mockGateway{}
	svc := newBookingService(t, gw, nil)

	appt := testAppointment(t)
	appt.Name = "  Jane   Doe "
	appt.Email = " Jane@Example.COM "
	appt.Phone = "+65 9123 4567"

	if _, err := svc.Book(context.Background(), appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if appt.Name != "Jane Doe" {
		t.Errorf("expected normalized name, got %q", appt.Name)
	}
	if appt.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", appt.Email)
	}
	if appt.Phone != "+6591234567" {
		t.Errorf("expected normalized phone, got %q", appt.Phone)
	}
}
