package calendar

import (
	"time"

	"github.com/username/parkcal/pkg/dateutil"
)

// Stats is a bookings/visitors rollup for a month or a single day.
type Stats struct {
	Label    string
	Bookings int
	Visitors int
}

// Aggregate rolls up the month's records. With a selected day that is
// present in the map it returns that day's numbers; otherwise the whole
// month is summed, with absent days contributing zero. An empty month
// yields zero totals.
func Aggregate(m Month, year int, month time.Month, selectedDay *int) Stats {
	if selectedDay != nil {
		if record, exists := m[*selectedDay]; exists {
			return Stats{
				Label:    dateutil.FormatISODate(year, month, *selectedDay),
				Bookings: record.Bookings,
				Visitors: record.Visitors,
			}
		}
	}

	stats := Stats{Label: dateutil.FormatISOMonth(year, month)}
	for _, record := range m {
		stats.Bookings += record.Bookings
		stats.Visitors += record.Visitors
	}
	return stats
}
