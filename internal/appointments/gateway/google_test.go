package gateway

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
)

func TestParseBusyPeriods(t *testing.T) {
	periods := []*calendar.TimePeriod{
		{Start: "2025-06-02T09:30:00+08:00", End: "2025-06-02T10:00:00+08:00"},
		{Start: "2025-06-02T14:00:00+08:00", End: "2025-06-02T15:30:00+08:00"},
	}

	busy, err := parseBusyPeriods(periods)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(busy) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(busy))
	}

	wantStart, _ := time.Parse(time.RFC3339, "2025-06-02T09:30:00+08:00")
	if !busy[0].Start.Equal(wantStart) {
		t.Errorf("expected first interval start %s, got %s", wantStart, busy[0].Start)
	}
	if d := busy[1].End.Sub(busy[1].Start); d != 90*time.Minute {
		t.Errorf("expected second interval to span 90m, got %s", d)
	}
}

func TestParseBusyPeriods_Empty(t *testing.T) {
	busy, err := parseBusyPeriods(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(busy) != 0 {
		t.Errorf("expected no intervals, got %d", len(busy))
	}
}

func TestParseBusyPeriods_Malformed(t *testing.T) {
	periods := []*calendar.TimePeriod{
		{Start: "not-a-timestamp", End: "2025-06-02T10:00:00+08:00"},
	}
	if _, err := parseBusyPeriods(periods); err == nil {
		t.Error("expected an error for a malformed start timestamp")
	}

	periods = []*calendar.TimePeriod{
		{Start: "2025-06-02T09:30:00+08:00", End: ""},
	}
	if _, err := parseBusyPeriods(periods); err == nil {
		t.Error("expected an error for a missing end timestamp")
	}
}
