package domain

import "time"

// MaxImageBytes is the upload cap for event images (2 MB).
const MaxImageBytes = 2 * 1024 * 1024

// EventForm is a candidate event record as submitted by the dashboard,
// before validation. Dates and times are carried as raw strings because
// parse failures are validation errors, not transport errors.
type EventForm struct {
	Name        string     `json:"eventName"`
	Description string     `json:"description"`
	Type        EventType  `json:"eventType"`
	AccessMode  AccessMode `json:"accessMode"`
	Amount      float64    `json:"amount"`

	Date      string `json:"date"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Location string `json:"location"`
	Link     string `json:"link"`

	Countries   []string `json:"countries"`
	States      []string `json:"states"`
	Communities []string `json:"communities"`

	// ImageName/ImageSize describe the uploaded file; ImageSize is zero
	// when no file was attached.
	ImageName string `json:"imageName"`
	ImageSize int64  `json:"imageSize"`
}

// FormDateLayout is the wire format for all form date fields.
const FormDateLayout = "2006-01-02"

// ParseFormDate parses a form date string. The zero time and false are
// returned for empty or malformed input.
func ParseFormDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(FormDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FieldErrors maps a form field name to a human-readable message.
// Callers use it both for aggregate reporting and inline per-field display.
type FieldErrors map[string]string

// First returns the name of the first invalid field in the given document
// order, or "" when the map is empty. The dashboard scrolls to this field.
func (e FieldErrors) First(order []string) string {
	for _, field := range order {
		if _, ok := e[field]; ok {
			return field
		}
	}
	return ""
}
