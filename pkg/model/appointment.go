package model

import (
	"time"
)

// Slot is a candidate 30-minute bookable interval, recomputed on every
// availability query and never stored.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// BusyInterval is an externally reported occupied range on the shared
// calendar. It is opaque input data and never mutated.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// TimeWindow bounds an availability query. Start must precede End; a
// zero or inverted window yields no slots.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// BusinessHours is the recurring weekly opening pattern. Hours are
// local to the configured timezone, with the closing hour exclusive.
type BusinessHours struct {
	StartHour   int
	EndHour     int
	WorkingDays []time.Weekday
}

// Working reports whether d is an open weekday.
func (b BusinessHours) Working(d time.Weekday) bool {
	for _, wd := range b.WorkingDays {
		if wd == d {
			return true
		}
	}
	return false
}

type Appointment struct {
	Name    string    `json:"name" validate:"required,min=2,max=100"`
	Email   string    `json:"email" validate:"required,email"`
	Phone   string    `json:"phone" validate:"required,min=7,max=20"`
	Service string    `json:"service" validate:"required,min=2,max=100"`
	Start   time.Time `json:"start" validate:"required"`
	End     time.Time `json:"end" validate:"required,gtfield=Start"`
	Message string    `json:"message,omitempty" validate:"omitempty,max=1000"`
}

// EventDraft is the calendar write request built from a validated
// appointment. Start and End are taken verbatim from the request.
type EventDraft struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

// Services lists the bookable service labels offered on the form.
var Services = []string{
	"General Medical Consultation",
	"Health Screening",
	"Vaccinations",
	"Minor Surgical Procedures",
	"Others",
}
