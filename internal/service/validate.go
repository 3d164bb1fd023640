package service

import (
	"net/url"
	"strings"
	"time"

	"github.com/communitas/admin-gateway/internal/domain"
)

// FieldOrder is the document order of event form fields. The dashboard uses
// it to scroll to the first invalid field.
var FieldOrder = []string{
	"eventName", "description", "image", "eventType",
	"date", "startDate", "endDate", "startTime", "endTime",
	"location", "link", "amount",
}

// ValidateEventForm checks a candidate event record and returns per-field
// error messages. Pure and synchronous: no network calls.
//
// Edit mode re-validates only the event name — the rest of the record is
// assumed already valid from creation. This is a deliberate reduced-
// validation policy for edits, not an oversight.
func ValidateEventForm(form domain.EventForm, editing bool, now time.Time) (bool, domain.FieldErrors) {
	errs := domain.FieldErrors{}

	if strings.TrimSpace(form.Name) == "" {
		errs["eventName"] = "Event name is required."
	}
	if editing {
		return len(errs) == 0, errs
	}

	if strings.TrimSpace(form.Description) == "" {
		errs["description"] = "Description is required."
	}
	validateImage(form, errs)

	switch form.Type {
	case domain.EventOneDay:
		validateSingleDate(form, now, errs)
		validateTimes(form, errs)
		if strings.TrimSpace(form.Location) == "" {
			errs["location"] = "Location is required."
		}
	case domain.EventOnline:
		validateSingleDate(form, now, errs)
		validateTimes(form, errs)
		if !isLink(form.Link) {
			errs["link"] = "A valid event link is required."
		}
	case domain.EventTrip:
		validateTripDates(form, now, errs)
		if strings.TrimSpace(form.Location) == "" {
			errs["location"] = "Location is required."
		}
		// Start/end time are optional for trips.
	default:
		errs["eventType"] = "Unknown event type."
	}

	if form.AccessMode == domain.AccessPaid || form.AccessMode == domain.AccessFreePaid {
		if form.Amount <= 0 {
			errs["amount"] = "A positive amount is required for paid events."
		}
	}

	return len(errs) == 0, errs
}

// validateImage requires an attached file no larger than 2 MB.
func validateImage(form domain.EventForm, errs domain.FieldErrors) {
	if form.ImageSize == 0 {
		errs["image"] = "Event image is required."
		return
	}
	if form.ImageSize > domain.MaxImageBytes {
		errs["image"] = "Image must be 2 MB or smaller."
	}
}

// validateSingleDate covers one-day and online events: the date must be
// present, parse, and lie strictly in the future.
func validateSingleDate(form domain.EventForm, now time.Time, errs domain.FieldErrors) {
	if form.Date == "" {
		errs["date"] = "Event date is required."
		return
	}
	date, ok := domain.ParseFormDate(form.Date)
	if !ok {
		errs["date"] = "Invalid event date."
		return
	}
	if !date.After(now) {
		errs["date"] = "Event date must be in the future."
	}
}

// validateTripDates covers trip events: both dates must be present and
// parse, the start must be strictly in the future, and the end strictly
// after the start.
func validateTripDates(form domain.EventForm, now time.Time, errs domain.FieldErrors) {
	start, startOK := requireDate(form.StartDate, "startDate", "start date", errs)
	end, endOK := requireDate(form.EndDate, "endDate", "end date", errs)

	if startOK && !start.After(now) {
		errs["startDate"] = "Start date must be in the future."
		startOK = false
	}
	if startOK && endOK && !end.After(start) {
		errs["endDate"] = "End date must be after the start date."
	}
}

func requireDate(value, field, label string, errs domain.FieldErrors) (time.Time, bool) {
	if value == "" {
		errs[field] = "The " + label + " is required."
		return time.Time{}, false
	}
	date, ok := domain.ParseFormDate(value)
	if !ok {
		errs[field] = "Invalid " + label + "."
		return time.Time{}, false
	}
	return date, true
}

func validateTimes(form domain.EventForm, errs domain.FieldErrors) {
	if strings.TrimSpace(form.StartTime) == "" {
		errs["startTime"] = "Start time is required."
	}
	if strings.TrimSpace(form.EndTime) == "" {
		errs["endTime"] = "End time is required."
	}
}

// isLink accepts absolute http(s) URLs with a host.
func isLink(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
