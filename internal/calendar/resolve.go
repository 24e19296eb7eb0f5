package calendar

import (
	"time"

	"github.com/username/parkcal/pkg/dateutil"
)

// DayContext carries the facts about a day that do not come from its
// backend record.
type DayContext struct {
	IsWeekend    bool
	IsPastCutoff bool
	Policy       Policy
}

// EffectiveStatus derives the status used for rendering and decisions.
// Priority order, first match wins:
//  1. past the booking cutoff (when the policy enforces one) -> CLOSED
//  2. explicit backend status
//  3. weekend with no explicit status, under a weekend-closing policy -> CLOSED
//  4. AVAILABLE
func EffectiveStatus(record *DayRecord, ctx DayContext) DayStatus {
	if ctx.Policy.EnforceCutoff && ctx.IsPastCutoff {
		return StatusClosed
	}
	if record != nil && record.Status != nil {
		return *record.Status
	}
	if ctx.Policy.WeekendDefaultClosed && ctx.IsWeekend {
		return StatusClosed
	}
	return StatusAvailable
}

// Color maps an effective status and booking count to the legend color.
// An available day that already carries bookings renders as LIMITED.
func Color(status DayStatus, bookings int) ColorKey {
	switch status {
	case StatusFullyBooked:
		return ColorFullyBooked
	case StatusClosed:
		return ColorClosed
	default:
		if bookings > 0 {
			return ColorLimited
		}
		return ColorAvailable
	}
}

// Selectable reports whether a day with the given effective status may be
// chosen for a new booking. Cutoff enforcement already happened inside
// EffectiveStatus, so only the status matters here.
func Selectable(status DayStatus) bool {
	return status == StatusAvailable
}

// EffectiveBookingLimit resolves a day's booking limit: an explicit
// per-day override wins, otherwise the global booking_limit restriction
// applies. ok is false when neither is known, which happens while the
// global restriction has not been fetched yet; callers must treat that as
// "unknown", not zero.
func EffectiveBookingLimit(record *DayRecord, global *int) (limit int, ok bool) {
	if record != nil && record.BookingLimit != nil {
		return *record.BookingLimit, true
	}
	if global != nil {
		return *global, true
	}
	return 0, false
}

// ResolveDay derives the full render-ready descriptor for one day.
func ResolveDay(year int, month time.Month, day int, m Month, global *int, today time.Time, policy Policy) DayDescriptor {
	var record *DayRecord
	if r, exists := m[day]; exists {
		record = &r
	}

	ctx := DayContext{
		IsWeekend:    dateutil.IsWeekend(year, month, day),
		IsPastCutoff: IsPastCutoff(today, year, month, day),
		Policy:       policy,
	}

	status := EffectiveStatus(record, ctx)

	bookings := 0
	if record != nil {
		bookings = record.Bookings
	}

	limit, known := EffectiveBookingLimit(record, global)

	return DayDescriptor{
		Day:        day,
		Status:     status,
		Color:      Color(status, bookings),
		Disabled:   !Selectable(status),
		Limit:      limit,
		LimitKnown: known,
	}
}

// ResolveMonth derives descriptors for every day of the month, in day
// order starting at 1.
func ResolveMonth(year int, month time.Month, m Month, global *int, today time.Time, policy Policy) []DayDescriptor {
	days := dateutil.DaysInMonth(year, month)
	out := make([]DayDescriptor, 0, days)
	for day := 1; day <= days; day++ {
		out = append(out, ResolveDay(year, month, day, m, global, today, policy))
	}
	return out
}
