package gateway

import (
	"context"

	"clinicbook/pkg/model"
)

// CalendarGateway is the capability boundary to the shared calendar.
// The core never constructs or inspects credentials; the concrete
// implementation owns the authenticated session.
type CalendarGateway interface {
	// QueryBusy returns the occupied intervals inside window. An empty
	// result means wall-to-wall free.
	QueryBusy(ctx context.Context, window model.TimeWindow) ([]model.BusyInterval, error)

	// InsertEvent writes a single event and returns the identifier the
	// calendar assigned to it.
	InsertEvent(ctx context.Context, draft model.EventDraft) (string, error)

	// Ping checks that the calendar is reachable and readable.
	Ping(ctx context.Context) error
}
