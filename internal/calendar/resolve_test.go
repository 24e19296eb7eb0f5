package calendar

import (
	"testing"
	"time"
)

func statusPtr(s DayStatus) *DayStatus { return &s }
func intPtr(v int) *int                { return &v }

func TestEffectiveStatus(t *testing.T) {
	tests := []struct {
		name   string
		record *DayRecord
		ctx    DayContext
		want   DayStatus
	}{
		{
			name:   "cutoff wins over explicit available",
			record: &DayRecord{Status: statusPtr(StatusAvailable)},
			ctx:    DayContext{IsPastCutoff: true, Policy: VisitorPolicy},
			want:   StatusClosed,
		},
		{
			name:   "cutoff wins over explicit fully booked",
			record: &DayRecord{Status: statusPtr(StatusFullyBooked)},
			ctx:    DayContext{IsPastCutoff: true, Policy: VisitorPolicy},
			want:   StatusClosed,
		},
		{
			name:   "admin policy ignores cutoff",
			record: &DayRecord{Status: statusPtr(StatusAvailable)},
			ctx:    DayContext{IsPastCutoff: true, Policy: AdminPolicy},
			want:   StatusAvailable,
		},
		{
			name:   "explicit status used when past cutoff does not apply",
			record: &DayRecord{Status: statusPtr(StatusFullyBooked)},
			ctx:    DayContext{Policy: VisitorPolicy},
			want:   StatusFullyBooked,
		},
		{
			name:   "explicit status beats weekend default",
			record: &DayRecord{Status: statusPtr(StatusAvailable)},
			ctx:    DayContext{IsWeekend: true, Policy: VisitorPolicy},
			want:   StatusAvailable,
		},
		{
			name: "visitor weekend without record defaults closed",
			ctx:  DayContext{IsWeekend: true, Policy: VisitorPolicy},
			want: StatusClosed,
		},
		{
			name: "admin weekend without record stays available",
			ctx:  DayContext{IsWeekend: true, Policy: AdminPolicy},
			want: StatusAvailable,
		},
		{
			name:   "record with nil status on weekend defaults closed for visitors",
			record: &DayRecord{Bookings: 3},
			ctx:    DayContext{IsWeekend: true, Policy: VisitorPolicy},
			want:   StatusClosed,
		},
		{
			name: "no record weekday defaults available",
			ctx:  DayContext{Policy: VisitorPolicy},
			want: StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveStatus(tt.record, tt.ctx)
			if got != tt.want {
				t.Errorf("EffectiveStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name     string
		status   DayStatus
		bookings int
		want     ColorKey
	}{
		{"available without bookings", StatusAvailable, 0, ColorAvailable},
		{"available with bookings is limited", StatusAvailable, 5, ColorLimited},
		{"fully booked", StatusFullyBooked, 40, ColorFullyBooked},
		{"closed ignores bookings", StatusClosed, 12, ColorClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Color(tt.status, tt.bookings)
			if got != tt.want {
				t.Errorf("Color(%v, %d) = %v, want %v", tt.status, tt.bookings, got, tt.want)
			}
		})
	}
}

func TestIsPastCutoff(t *testing.T) {
	// Cutoff comparison is by calendar date only, so time of day on
	// "today" must not matter.
	today := time.Date(2025, 6, 10, 17, 45, 3, 0, time.UTC)

	tests := []struct {
		name string
		day  int
		want bool
	}{
		{"today", 10, true},
		{"today plus one", 11, true},
		{"today plus two", 12, true},
		{"today plus three is first selectable", 13, false},
		{"past day", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsPastCutoff(today, 2025, time.June, tt.day)
			if got != tt.want {
				t.Errorf("IsPastCutoff(day %d) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestIsPastCutoffAcrossMonthBoundary(t *testing.T) {
	today := time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)

	if !IsPastCutoff(today, 2025, time.July, 1) {
		t.Error("July 1 should be within cutoff of June 29")
	}
	if IsPastCutoff(today, 2025, time.July, 2) {
		t.Error("July 2 should be selectable from June 29")
	}
}

func TestEffectiveBookingLimit(t *testing.T) {
	global := 250

	tests := []struct {
		name   string
		record *DayRecord
		global *int
		want   int
		wantOK bool
	}{
		{"override wins over global", &DayRecord{BookingLimit: intPtr(100)}, &global, 100, true},
		{"override wins when global unknown", &DayRecord{BookingLimit: intPtr(100)}, nil, 100, true},
		{"no override falls back to global", &DayRecord{}, &global, 250, true},
		{"no record falls back to global", nil, &global, 250, true},
		{"nothing known", nil, nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EffectiveBookingLimit(tt.record, tt.global)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("EffectiveBookingLimit() = (%d, %v), want (%d, %v)",
					got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// The fixed June 2025 scenario: today is 2025-06-10, so days 10-12 are
// inside the cutoff and day 13 is the first selectable one.
func TestResolveMonthScenario(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	global := 250
	month := Month{
		15: {Status: statusPtr(StatusFullyBooked), Bookings: 40},
		20: {Bookings: 5},
		21: {Bookings: 2, BookingLimit: intPtr(100)},
	}

	days := ResolveMonth(2025, time.June, month, &global, today, VisitorPolicy)

	if len(days) != 30 {
		t.Fatalf("ResolveMonth() returned %d days, want 30", len(days))
	}

	for _, day := range []int{10, 11, 12} {
		d := days[day-1]
		if !d.Disabled || d.Status != StatusClosed {
			t.Errorf("day %d = {status %v, disabled %v}, want closed and disabled", day, d.Status, d.Disabled)
		}
	}

	d13 := days[12]
	if d13.Disabled || d13.Status != StatusAvailable || d13.Color != ColorAvailable {
		t.Errorf("day 13 = %+v, want enabled available", d13)
	}

	d15 := days[14]
	if !d15.Disabled || d15.Color != ColorFullyBooked {
		t.Errorf("day 15 = %+v, want disabled fully booked", d15)
	}

	d20 := days[19]
	if d20.Disabled || d20.Color != ColorLimited {
		t.Errorf("day 20 = %+v, want enabled limited", d20)
	}
	if !d20.LimitKnown || d20.Limit != 250 {
		t.Errorf("day 20 limit = (%d, %v), want inherited 250", d20.Limit, d20.LimitKnown)
	}

	d21 := days[20]
	if !d21.LimitKnown || d21.Limit != 100 {
		t.Errorf("day 21 limit = (%d, %v), want override 100", d21.Limit, d21.LimitKnown)
	}

	// June 14 2025 is a Saturday with no record: closed for visitors,
	// open in the admin view.
	d14 := days[13]
	if d14.Status != StatusClosed {
		t.Errorf("visitor day 14 status = %v, want closed weekend default", d14.Status)
	}

	adminDays := ResolveMonth(2025, time.June, month, &global, today, AdminPolicy)
	if adminDays[13].Status != StatusAvailable {
		t.Errorf("admin day 14 status = %v, want available", adminDays[13].Status)
	}
	if adminDays[9].Status != StatusAvailable {
		t.Errorf("admin day 10 status = %v, cutoff must not apply to admins", adminDays[9].Status)
	}
}

func TestResolveDayUnknownLimit(t *testing.T) {
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	d := ResolveDay(2025, time.June, 20, Month{}, nil, today, VisitorPolicy)
	if d.LimitKnown {
		t.Errorf("limit reported known with no override and no global value")
	}
}
