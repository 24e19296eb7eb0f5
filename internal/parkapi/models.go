package parkapi

import (
	"encoding/json"
	"strconv"

	"github.com/username/parkcal/internal/calendar"
)

// MonthResponse is the calendar endpoint's payload: day numbers as object
// keys, sparse. Keys arrive as strings in the JSON object and are mapped
// to the calendar package's sparse month.
type MonthResponse map[string]calendar.DayRecord

// ToMonth converts the wire shape into a calendar.Month, dropping keys
// that are not day numbers.
func (mr MonthResponse) ToMonth() calendar.Month {
	month := make(calendar.Month, len(mr))
	for key, record := range mr {
		day, err := strconv.Atoi(key)
		if err != nil || day < 1 || day > 31 {
			continue
		}
		month[day] = record
	}
	return month
}

// Restriction is a named global configuration value, e.g. booking_limit.
type Restriction struct {
	ID    int64 `json:"id"`
	Value int   `json:"value"`
}

// UpsertDayRequest writes a single day's status and/or limit override.
// BookingLimit is omitted when not being set; once written, an override
// is never cleared back to inheriting the global value.
type UpsertDayRequest struct {
	Date         string             `json:"date"`
	DateStatus   calendar.DayStatus `json:"dateStatus"`
	BookingLimit *int               `json:"bookingLimit,omitempty"`
}

// updateRestrictionRequest patches a restriction's value.
type updateRestrictionRequest struct {
	Value int `json:"value"`
}

// ActiveState is the canonical activity flag for backend records. The
// backend spells it four different ways depending on the resource
// (isActive, active, enabled, or a status string); the fallback chain is
// applied exactly once, here, during decoding.
type ActiveState int

const (
	ActiveUnknown ActiveState = iota
	Active
	Inactive
)

func (a ActiveState) String() string {
	switch a {
	case Active:
		return "active"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// UnmarshalJSON accepts a whole record object and normalizes whichever
// activity field it carries.
func (a *ActiveState) UnmarshalJSON(data []byte) error {
	var fields struct {
		IsActive *bool   `json:"isActive"`
		Active   *bool   `json:"active"`
		Enabled  *bool   `json:"enabled"`
		Status   *string `json:"status"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	boolState := func(v bool) ActiveState {
		if v {
			return Active
		}
		return Inactive
	}

	switch {
	case fields.IsActive != nil:
		*a = boolState(*fields.IsActive)
	case fields.Active != nil:
		*a = boolState(*fields.Active)
	case fields.Enabled != nil:
		*a = boolState(*fields.Enabled)
	case fields.Status != nil:
		*a = boolState(*fields.Status == "ACTIVE")
	default:
		*a = ActiveUnknown
	}
	return nil
}
