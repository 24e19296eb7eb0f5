package planner

import (
	"fmt"
	"time"

	"github.com/username/parkcal/internal/calendar"
	"github.com/username/parkcal/internal/parkapi"
	"github.com/username/parkcal/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	calendarKeyFamily    = "calendar/"
	restrictionKeyFamily = "restriction/"
)

// API is the slice of the park backend the planner needs.
type API interface {
	GetMonth(year int, month time.Month) (calendar.Month, error)
	GetBookingLimit() (*parkapi.Restriction, error)
	UpdateRestriction(id int64, value int) error
	UpsertDay(year int, month time.Month, day int, status calendar.DayStatus, limit *int) error
}

// MonthView is a render-ready month: one descriptor per day plus the
// weekday offset of day 1 for grid layout.
type MonthView struct {
	Year         int
	Month        time.Month
	FirstWeekday int
	Days         []calendar.DayDescriptor
}

// Planner ties the API client, the query cache and the calendar rules
// together. Month data is immutable once fetched for a (year, month) key;
// mutations go through the backend and invalidate the key family, never
// the local copy.
type Planner struct {
	api    API
	cache  *queryCache
	logger *zap.Logger
	now    func() time.Time
}

// New creates a planner over the given backend client.
func New(api API, logger *zap.Logger) *Planner {
	return &Planner{
		api:    api,
		cache:  newQueryCache(),
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source, for deterministic cutoff rules.
func (p *Planner) WithClock(now func() time.Time) *Planner {
	p.now = now
	return p
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%s%d/%d", calendarKeyFamily, year, int(month))
}

// month returns the cached month data, fetching on a miss.
func (p *Planner) month(year int, month time.Month) (calendar.Month, error) {
	key := monthKey(year, month)
	if cached, ok := p.cache.get(key); ok {
		return cached.(calendar.Month), nil
	}

	m, err := p.api.GetMonth(year, month)
	if err != nil {
		return nil, err
	}
	p.cache.set(key, m)
	return m, nil
}

// globalLimit returns the cached booking_limit restriction, fetching on a
// miss. The restriction may be unavailable while the backend is down;
// callers surface that instead of inventing a limit.
func (p *Planner) globalLimit() (*parkapi.Restriction, error) {
	key := restrictionKeyFamily + parkapi.BookingLimitRestriction
	if cached, ok := p.cache.get(key); ok {
		return cached.(*parkapi.Restriction), nil
	}

	restriction, err := p.api.GetBookingLimit()
	if err != nil {
		return nil, err
	}
	p.cache.set(key, restriction)
	return restriction, nil
}

// MonthView derives the render-ready view of a month under the given
// policy. The global limit is fetched alongside the month so every day
// resolves its effective limit.
func (p *Planner) MonthView(year int, month time.Month, policy calendar.Policy) (*MonthView, error) {
	m, err := p.month(year, month)
	if err != nil {
		return nil, err
	}

	var global *int
	if restriction, err := p.globalLimit(); err == nil {
		global = &restriction.Value
	} else {
		// Days still render; their limits just report unknown.
		p.logger.Warn("Global booking limit unavailable", zap.Error(err))
	}

	today := dateutil.StartOfDay(p.now())

	return &MonthView{
		Year:         year,
		Month:        month,
		FirstWeekday: dateutil.FirstWeekdayOfMonth(year, month),
		Days:         calendar.ResolveMonth(year, month, m, global, today, policy),
	}, nil
}

// Stats aggregates a month, or a single day when one is selected.
func (p *Planner) Stats(year int, month time.Month, selectedDay *int) (calendar.Stats, error) {
	m, err := p.month(year, month)
	if err != nil {
		return calendar.Stats{}, err
	}
	return calendar.Aggregate(m, year, month, selectedDay), nil
}

// SetDayStatus writes one day's status and invalidates the calendar
// family so any mounted view refetches.
func (p *Planner) SetDayStatus(year int, month time.Month, day int, status calendar.DayStatus) error {
	if err := p.api.UpsertDay(year, month, day, status, nil); err != nil {
		return err
	}
	p.cache.invalidateFamily(calendarKeyFamily)
	return nil
}

// SetDayLimit writes an explicit per-day limit override, keeping the
// day's current effective status. Overrides are never cleared back to
// "inherit"; a clear operation would slot in here if the backend grows
// one.
func (p *Planner) SetDayLimit(year int, month time.Month, day int, limit int) error {
	m, err := p.month(year, month)
	if err != nil {
		return err
	}

	// Upserting replaces the whole day, so the current status must ride
	// along. Derivation is the admin's: no cutoff, no weekend default.
	today := dateutil.StartOfDay(p.now())
	descriptor := calendar.ResolveDay(year, month, day, m, nil, today, calendar.AdminPolicy)

	if err := p.api.UpsertDay(year, month, day, descriptor.Status, &limit); err != nil {
		return err
	}
	p.cache.invalidateFamily(calendarKeyFamily)
	return nil
}

// SetGlobalLimit patches the booking_limit restriction and invalidates
// both the restriction and, since every day without an override inherits
// it, the calendar family.
func (p *Planner) SetGlobalLimit(value int) error {
	restriction, err := p.globalLimit()
	if err != nil {
		return fmt.Errorf("cannot update global limit before it is loaded: %w", err)
	}

	if err := p.api.UpdateRestriction(restriction.ID, value); err != nil {
		return err
	}
	p.cache.invalidateFamily(restrictionKeyFamily)
	p.cache.invalidateFamily(calendarKeyFamily)
	return nil
}
