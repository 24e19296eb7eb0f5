package calendar

import (
	"testing"
	"time"
)

func TestAggregateMonth(t *testing.T) {
	month := Month{
		3:  {Bookings: 10, Visitors: 25},
		15: {Bookings: 40, Visitors: 120},
		20: {Bookings: 5, Visitors: 9},
	}

	stats := Aggregate(month, 2025, time.June, nil)

	if stats.Label != "2025-06" {
		t.Errorf("Label = %q, want 2025-06", stats.Label)
	}
	if stats.Bookings != 55 {
		t.Errorf("Bookings = %d, want 55", stats.Bookings)
	}
	if stats.Visitors != 154 {
		t.Errorf("Visitors = %d, want 154", stats.Visitors)
	}
}

func TestAggregateEmptyMonth(t *testing.T) {
	stats := Aggregate(Month{}, 2025, time.June, nil)

	if stats.Bookings != 0 || stats.Visitors != 0 {
		t.Errorf("empty month totals = (%d, %d), want zeros", stats.Bookings, stats.Visitors)
	}
}

func TestAggregateSelectedDay(t *testing.T) {
	month := Month{
		15: {Bookings: 40, Visitors: 120},
		20: {Bookings: 5, Visitors: 9},
	}

	day := 15
	stats := Aggregate(month, 2025, time.June, &day)

	if stats.Label != "2025-06-15" {
		t.Errorf("Label = %q, want 2025-06-15", stats.Label)
	}
	if stats.Bookings != 40 || stats.Visitors != 120 {
		t.Errorf("day stats = (%d, %d), want (40, 120)", stats.Bookings, stats.Visitors)
	}
}

func TestAggregateSelectedDayAbsentFallsBackToMonth(t *testing.T) {
	month := Month{
		15: {Bookings: 40, Visitors: 120},
	}

	day := 7
	stats := Aggregate(month, 2025, time.June, &day)

	if stats.Label != "2025-06" {
		t.Errorf("Label = %q, want month label for absent day", stats.Label)
	}
	if stats.Bookings != 40 {
		t.Errorf("Bookings = %d, want month total 40", stats.Bookings)
	}
}
