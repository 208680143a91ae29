package service

import (
	"context"
	"testing"
	"time"

	"clinicbook/pkg/config"
	apperrors "clinicbook/pkg/errors"
	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

// Mock gateway for testing
type mockGateway struct {
	queryBusyFunc   func(ctx context.Context, window model.TimeWindow) ([]model.BusyInterval, error)
	insertEventFunc func(ctx context.Context, draft model.EventDraft) (string, error)

	queryBusyCalls   int
	insertEventCalls int

	lastWindow model.TimeWindow
	lastDraft  model.EventDraft
}

func (m *mockGateway) QueryBusy(ctx context.Context, window model.TimeWindow) ([]model.BusyInterval, error) {
	m.queryBusyCalls++
	m.lastWindow = window
	if m.queryBusyFunc != nil {
		return m.queryBusyFunc(ctx, window)
	}
	return nil, nil
}

func (m *mockGateway) InsertEvent(ctx context.Context, draft model.EventDraft) (string, error) {
	m.insertEventCalls++
	m.lastDraft = draft
	if m.insertEventFunc != nil {
		return m.insertEventFunc(ctx, draft)
	}
	return "evt-1", nil
}

func (m *mockGateway) Ping(ctx context.Context) error {
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Singapore")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return &config.Config{
		CalendarID:        "clinic@example.com",
		TimeZone:          "Asia/Singapore",
		Location:          loc,
		BusinessStartHour: 9,
		BusinessEndHour:   18,
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		AvailabilityWindowDays: 7,
		Log:                    logger.New(logger.Config{Level: "error", Service: "test"}),
	}
}

// 2025-06-02 is a Monday.
func sgTime(t *testing.T, cfg *config.Config, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(2025, time.June, day, hour, min, 0, 0, cfg.Location)
}

func TestListSlots_SingleDay(t *testing.T) {
	cfg := testConfig(t)
	gw := &mockGateway{
		queryBusyFunc: func(ctx context.Context, window model.TimeWindow) ([]model.BusyInterval, error) {
			return []model.BusyInterval{
				{Start: sgTime(t, cfg, 2, 9, 30), End: sgTime(t, cfg, 2, 10, 0)},
			}, nil
		},
	}
	svc := &availabilityService{
		gw:  gw,
		cfg: cfg,
		now: func() time.Time { return sgTime(t, cfg, 1, 12, 0) },
	}

	day := sgTime(t, cfg, 2, 0, 0)
	got, err := svc.ListSlots(context.Background(), &day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 17 {
		t.Errorf("expected 17 slots, got %d", len(got))
	}
	if gw.queryBusyCalls != 1 {
		t.Errorf("expected exactly one busy fetch, got %d", gw.queryBusyCalls)
	}
	if !gw.lastWindow.Start.Equal(sgTime(t, cfg, 2, 0, 0)) {
		t.Errorf("expected window start at local midnight, got %s", gw.lastWindow.Start)
	}
	if !gw.lastWindow.End.Equal(sgTime(t, cfg, 3, 0, 0)) {
		t.Errorf("expected window end at next local midnight, got %s", gw.lastWindow.End)
	}
}

func TestListSlots_DefaultWindow(t *testing.T) {
	cfg := testConfig(t)
	gw := &mockGateway{}
	now := sgTime(t, cfg, 2, 8, 0)
	svc := &availabilityService{
		gw:  gw,
		cfg: cfg,
		now: func() time.Time { return now },
	}

	got, err := svc.ListSlots(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gw.lastWindow.Start.Equal(now) {
		t.Errorf("expected window to start at now, got %s", gw.lastWindow.Start)
	}
	wantEnd := sgTime(t, cfg, 9, 18, 0)
	if !gw.lastWindow.End.Equal(wantEnd) {
		t.Errorf("expected window to end at closing hour %d days out (%s), got %s",
			cfg.AvailabilityWindowDays, wantEnd, gw.lastWindow.End)
	}

	if len(got) == 0 {
		t.Fatal("expected slots with an empty busy list")
	}
	if !got[0].Start.Equal(sgTime(t, cfg, 2, 9, 0)) {
		t.Errorf("expected first slot at opening hour, got %s", got[0].Start)
	}
}

func TestListSlots_UpstreamFailure(t *testing.T) {
	cfg := testConfig(t)
	gw := &mockGateway{
		queryBusyFunc: func(ctx context.Context, window model.TimeWindow) ([]model.BusyInterval, error) {
			return nil, context.DeadlineExceeded
		},
	}
	svc := &availabilityService{
		gw:  gw,
		cfg: cfg,
		now: func() time.Time { return sgTime(t, cfg, 2, 8, 0) },
	}

	_, err := svc.ListSlots(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error when the busy fetch fails")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected internal error code, got %s", appErr.Code)
	}
}

func TestListSlots_RecomputedPerCall(t *testing.T) {
	cfg := testConfig(t)
	gw := &mockGateway{}
	svc := &availabilityService{
		gw:  gw,
		cfg: cfg,
		now: func() time.Time { return sgTime(t, cfg, 2, 8, 0) },
	}

	day := sgTime(t, cfg, 2, 0, 0)
	if _, err := svc.ListSlots(context.Background(), &day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ListSlots(context.Background(), &day); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No caching: every query re-fetches busy data.
	if gw.queryBusyCalls != 2 {
		t.Errorf("expected 2 busy fetches for 2 queries, got %d", gw.queryBusyCalls)
	}
}
