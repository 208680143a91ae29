package slots

import (
	"time"

	"clinicbook/pkg/model"
)

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = 30 * time.Minute

// Generate computes the open slots inside window by walking a 30-minute
// grid anchored at the window start and dropping candidates that fall
// outside business hours, before now on the current day, or over a busy
// interval. Busy overlap is half-open: a slot ending exactly where a
// busy interval starts is free.
//
// The function is pure: identical inputs, including now, produce an
// identical sequence. It never fails.
func Generate(window model.TimeWindow, hours model.BusinessHours, busy []model.BusyInterval, now time.Time, loc *time.Location) []model.Slot {
	if loc == nil {
		loc = time.UTC
	}

	free := []model.Slot{}
	cursor := window.Start.Truncate(SlotDuration)

	for cursor.Before(window.End) {
		start := cursor
		end := cursor.Add(SlotDuration)

		if admissible(start, end, hours, busy, now, loc) {
			free = append(free, model.Slot{Start: start, End: end})
		}

		cursor = end

		// Closed for the rest of the day: jump straight to the next
		// day's opening hour instead of stepping through the evening.
		if local := cursor.In(loc); local.Hour() >= hours.EndHour {
			cursor = time.Date(local.Year(), local.Month(), local.Day()+1, hours.StartHour, 0, 0, 0, loc)
		}
	}

	return free
}

func admissible(start, end time.Time, hours model.BusinessHours, busy []model.BusyInterval, now time.Time, loc *time.Location) bool {
	local := start.In(loc)

	if !hours.Working(local.Weekday()) {
		return false
	}
	if h := local.Hour(); h < hours.StartHour || h >= hours.EndHour {
		return false
	}

	// No slots in the past on the current day. Later days are unaffected
	// even when now sits inside the window.
	nowLocal := now.In(loc)
	if local.Year() == nowLocal.Year() && local.YearDay() == nowLocal.YearDay() && start.Before(now) {
		return false
	}

	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return false
		}
	}
	return true
}
