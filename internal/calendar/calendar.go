package calendar

import "time"

// DayStatus is the raw status the backend keeps for a calendar day.
type DayStatus string

const (
	StatusAvailable   DayStatus = "AVAILABLE"
	StatusFullyBooked DayStatus = "FULLY_BOOKED"
	StatusClosed      DayStatus = "CLOSED"
)

// ColorKey drives the calendar legend and cell coloring. It is the
// effective status plus a derived LIMITED shade for available days that
// already carry bookings.
type ColorKey string

const (
	ColorAvailable   ColorKey = "AVAILABLE"
	ColorLimited     ColorKey = "LIMITED"
	ColorFullyBooked ColorKey = "FULLY_BOOKED"
	ColorClosed      ColorKey = "CLOSED"
)

// DayRecord is a single day as stored by the backend. A nil Status means
// the backend has no explicit status for the day. A nil BookingLimit means
// the day inherits the global booking_limit restriction.
type DayRecord struct {
	Status       *DayStatus `json:"status"`
	Bookings     int        `json:"bookings"`
	Visitors     int        `json:"visitors"`
	BookingLimit *int       `json:"bookingLimit"`
}

// Month maps day-of-month to its record. The map is sparse: days without
// a record are treated as default available days.
type Month map[int]DayRecord

// DayDescriptor is the render-ready derivation for one calendar day.
// It is recomputed from the record, the global limit and "today" on
// every read and never stored.
type DayDescriptor struct {
	Day        int
	Status     DayStatus
	Color      ColorKey
	Disabled   bool
	Limit      int
	LimitKnown bool
}

// Policy names a set of derivation rules. The visitor booking widget and
// the admin calendar intentionally disagree on two points (weekend
// defaults and the advance-booking cutoff), so the two rule sets are kept
// as distinct named values rather than unified.
type Policy struct {
	// WeekendDefaultClosed closes weekends that have no explicit record.
	WeekendDefaultClosed bool
	// EnforceCutoff disables days on or before today+2 for selection.
	EnforceCutoff bool
}

// VisitorPolicy is the rule set of the visitor-facing date picker.
var VisitorPolicy = Policy{WeekendDefaultClosed: true, EnforceCutoff: true}

// AdminPolicy is the rule set of the admin calendar: admins may inspect
// and edit any date, past or future.
var AdminPolicy = Policy{}

// CutoffAdvanceDays is the minimum advance notice for a new booking.
// Today plus this many days is still not selectable; the day after is the
// first selectable one.
const CutoffAdvanceDays = 2

// CutoffDate returns the latest non-selectable date for new bookings,
// at start of day.
func CutoffDate(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, CutoffAdvanceDays)
}

// IsPastCutoff reports whether the candidate calendar date falls on or
// before the booking cutoff. The comparison is by calendar date only.
func IsPastCutoff(today time.Time, year int, month time.Month, day int) bool {
	candidate := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
	return !candidate.After(CutoffDate(today))
}
