package parkapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/username/parkcal/internal/calendar"
	"github.com/username/parkcal/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the park backend's development address.
	DefaultBaseURL = "http://localhost:8080"

	defaultTimeout = 30 * time.Second

	// BookingLimitRestriction is the backend name of the global limit.
	BookingLimitRestriction = "booking_limit"
)

// Client talks to the park booking backend. Failures are never retried;
// every request is atomic and surfaced to the caller immediately.
type Client struct {
	baseURL    string
	session    AuthSession
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
}

// NewClient creates a park API client bound to one auth session.
func NewClient(baseURL string, session AuthSession, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		session: session,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// WithTimeout overrides the HTTP client timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// GetMonth fetches the per-day records for one month. The month is
// 1-based in the URL.
func (c *Client) GetMonth(year int, month time.Month) (calendar.Month, error) {
	var resp MonthResponse
	path := fmt.Sprintf("/calendar/%d/%d", year, int(month))
	if err := c.doRequest(http.MethodGet, path, "fetch calendar month", nil, &resp); err != nil {
		return nil, err
	}

	m := resp.ToMonth()
	c.logger.Info("Calendar month fetched",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("days_with_records", len(m)))

	return m, nil
}

// GetBookingLimit fetches the global booking_limit restriction.
func (c *Client) GetBookingLimit() (*Restriction, error) {
	var restriction Restriction
	path := "/restriction/name/" + BookingLimitRestriction
	if err := c.doRequest(http.MethodGet, path, "fetch global booking limit", nil, &restriction); err != nil {
		return nil, err
	}

	c.logger.Info("Global booking limit fetched",
		zap.Int64("id", restriction.ID),
		zap.Int("value", restriction.Value))

	return &restriction, nil
}

// UpdateRestriction patches a restriction's value.
func (c *Client) UpdateRestriction(id int64, value int) error {
	path := fmt.Sprintf("/restriction/%d", id)
	req := updateRestrictionRequest{Value: value}
	if err := c.doRequest(http.MethodPatch, path, "update restriction", req, nil); err != nil {
		return err
	}

	c.logger.Info("Restriction updated",
		zap.Int64("id", id),
		zap.Int("value", value))

	return nil
}

// UpsertDay writes one day's status, and optionally an explicit per-day
// limit override. There is no way to clear an override back to inheriting
// the global value; the backend does not offer one.
func (c *Client) UpsertDay(year int, month time.Month, day int, status calendar.DayStatus, limit *int) error {
	req := UpsertDayRequest{
		Date:         dateutil.FormatISODate(year, month, day),
		DateStatus:   status,
		BookingLimit: limit,
	}
	if err := c.doRequest(http.MethodPost, "/calendar-date", "update calendar day", req, nil); err != nil {
		return err
	}

	c.logger.Info("Calendar day updated",
		zap.String("date", req.Date),
		zap.String("status", string(status)),
		zap.Bool("has_limit_override", limit != nil))

	return nil
}

// doRequest performs one authenticated JSON request. The session is
// checked before the network call: an expired or missing token fails with
// ErrTokenExpired without touching the backend.
func (c *Client) doRequest(method, path, operation string, body interface{}, result interface{}) error {
	if !c.session.Valid(c.now()) {
		return fmt.Errorf("%s: %w", operation, ErrTokenExpired)
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request body: %w", operation, err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", operation, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.session.Token())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response body: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
		c.logger.Warn("Request failed",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%s: failed to parse response: %w", operation, err)
		}
	}

	return nil
}

// errorMessage extracts the backend's JSON error field, falling back to a
// generic string when the body is not in that shape.
func errorMessage(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return "request failed"
}
