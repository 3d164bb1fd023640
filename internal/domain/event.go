// Package domain contains the core data types for the admin gateway.
// This package has zero external dependencies and is imported by every other
// internal package (geo, repo, upstream, service, handler).
package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType discriminates the event tagged union. The wire values come from
// the platform API and must not be changed.
type EventType string

const (
	EventOneDay EventType = "onedayevent"
	EventOnline EventType = "onlineevent"
	EventTrip   EventType = "tripevent"
)

// Valid reports whether t is one of the three known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventOneDay, EventOnline, EventTrip:
		return true
	}
	return false
}

// AccessMode is an event's payment classification.
// "free-paid" is mixed: free for some membership tiers, paid for others.
type AccessMode string

const (
	AccessFree     AccessMode = "free"
	AccessPaid     AccessMode = "paid"
	AccessFreePaid AccessMode = "free-paid"
)

// Event is the normalized form of a platform event record.
//
// The upstream API stores the country and state fields inconsistently: a
// JSON-encoded array string, a bare array, or a legacy single string.
// StringList absorbs all three shapes during unmarshalling, so by the time
// an Event exists in this process its location fields are always flat lists.
type Event struct {
	ID          string     `json:"_id"`
	Name        string     `json:"eventName"`
	Description string     `json:"description"`
	Type        EventType  `json:"eventType"`
	AccessMode  AccessMode `json:"accessMode"`
	Amount      float64    `json:"amount,omitempty"`

	Countries StringList `json:"country"`
	States    StringList `json:"state"`
	// Location is free text ("Adajan, Surat"); city filtering is a
	// best-effort substring match against it, never an exact set match.
	Location string `json:"location,omitempty"`
	Link     string `json:"link,omitempty"`

	// Date is the primary date for one-day and online events.
	// StartDate/EndDate are set for trip events only.
	Date      *time.Time `json:"date,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	StartTime string     `json:"startTime,omitempty"`
	EndTime   string     `json:"endTime,omitempty"`

	// Communities holds the ids of communities the event is attached to.
	Communities StringList `json:"communities,omitempty"`

	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// PrimaryDate returns the date used for status and range filtering:
// trip events key on StartDate, everything else on Date.
// Returns nil when the event has no usable date.
func (e Event) PrimaryDate() *time.Time {
	if e.Type == EventTrip {
		return e.StartDate
	}
	return e.Date
}

// StringList is a []string that tolerates the three historical encodings of
// the platform's location fields:
//
//	"India"                  → ["India"]
//	["India","Canada"]       → ["India","Canada"]
//	"[\"India\",\"Canada\"]" → ["India","Canada"]  (array JSON-encoded as a string)
//
// Normalization happens once here, at the API boundary, instead of ad hoc
// at every consumer.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	// Bare array — the modern encoding.
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = trimNonEmpty(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// A string that itself holds a JSON array.
	if strings.HasPrefix(strings.TrimSpace(s), "[") {
		if err := json.Unmarshal([]byte(s), &list); err == nil {
			*l = trimNonEmpty(list)
			return nil
		}
	}

	// Legacy single value.
	*l = trimNonEmpty([]string{s})
	return nil
}

// Contains reports whether l contains v, case-insensitively.
func (l StringList) Contains(v string) bool {
	for _, item := range l {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

// Intersects reports whether l shares at least one value with other,
// case-insensitively.
func (l StringList) Intersects(other []string) bool {
	for _, v := range other {
		if l.Contains(v) {
			return true
		}
	}
	return false
}

// trimNonEmpty trims whitespace and drops empty entries, preserving order.
func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
