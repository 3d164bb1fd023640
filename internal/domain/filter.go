package domain

import "time"

// PriceFilter selects events by access mode.
// "paid" includes mixed free-paid events: from a paying attendee's
// perspective both can cost money.
type PriceFilter string

const (
	PriceAll  PriceFilter = "all"
	PriceFree PriceFilter = "free"
	PricePaid PriceFilter = "paid"
)

// StatusFilter selects events relative to the start of today.
type StatusFilter string

const (
	StatusAll    StatusFilter = "all"
	StatusFuture StatusFilter = "future"
	StatusPast   StatusFilter = "past"
)

// FilterState is the full set of active filter dimensions over a cached
// event list. Filtering is a purely derived view: changing a dimension never
// triggers an upstream re-fetch (only the community candidate list is
// location-scoped and fetched server-side).
type FilterState struct {
	// Countries and States hold display names, Cities free-text names.
	Countries []string `json:"countries"`
	States    []string `json:"states"`
	Cities    []string `json:"cities"`

	// Communities holds selected community ids.
	Communities []string `json:"communities"`

	// EventTypes is an exact set-membership filter.
	EventTypes []EventType `json:"eventTypes"`

	Price  PriceFilter  `json:"price"`
	Status StatusFilter `json:"status"`

	// DateFrom/DateTo are inclusive bounds on the event's primary date.
	// Either may be nil for an open end.
	DateFrom *time.Time `json:"dateFrom"`
	DateTo   *time.Time `json:"dateTo"`
}

// NewFilterState returns the neutral default: every dimension inactive.
func NewFilterState() FilterState {
	return FilterState{Price: PriceAll, Status: StatusAll}
}

// Reset returns every dimension to its neutral default in one step.
func (f *FilterState) Reset() {
	*f = NewFilterState()
}
