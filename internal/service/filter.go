package service

import (
	"strings"
	"time"

	"github.com/communitas/admin-gateway/internal/domain"
)

// ApplyFilters returns the events matching every active dimension of f.
//
// This is a full re-filter pass, not an incremental diff: each active
// dimension is an independent predicate and the dimensions are AND-combined.
// The result is always a subset of events, and re-applying the same state is
// idempotent. now anchors the future/past status dimension.
func ApplyFilters(events []domain.Event, f domain.FilterState, now time.Time) []domain.Event {
	today := startOfDay(now)

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if matchesFilters(e, f, today) {
			out = append(out, e)
		}
	}
	return out
}

func matchesFilters(e domain.Event, f domain.FilterState, today time.Time) bool {
	return matchesCountries(e, f.Countries) &&
		matchesStates(e, f.States) &&
		matchesCities(e, f.Cities) &&
		matchesCommunities(e, f.Communities) &&
		matchesTypes(e, f.EventTypes) &&
		matchesPrice(e, f.Price) &&
		matchesStatus(e, f.Status, today) &&
		matchesDateRange(e, f.DateFrom, f.DateTo)
}

// matchesCountries intersects the event's normalized country list with the
// selected display names. A country wildcard matches everything.
func matchesCountries(e domain.Event, selected []string) bool {
	if len(selected) == 0 || domain.HasWildcard(selected, domain.AllCountries) {
		return true
	}
	return e.Countries.Intersects(selected)
}

func matchesStates(e domain.Event, selected []string) bool {
	if len(selected) == 0 || domain.HasWildcard(selected, domain.AllStates) {
		return true
	}
	return e.States.Intersects(selected)
}

// matchesCities is a case-insensitive substring match against the event's
// free-text location field. Weaker than a set match, and knowingly so: city
// filtering is best-effort because events store location as prose.
func matchesCities(e domain.Event, selected []string) bool {
	if len(selected) == 0 || domain.HasWildcard(selected, domain.AllCities) {
		return true
	}
	location := strings.ToLower(e.Location)
	for _, city := range selected {
		if city == "" {
			continue
		}
		if strings.Contains(location, strings.ToLower(city)) {
			return true
		}
	}
	return false
}

// matchesCommunities matches when any attached community id equals any
// selected id.
func matchesCommunities(e domain.Event, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return e.Communities.Intersects(selected)
}

func matchesTypes(e domain.Event, selected []domain.EventType) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range selected {
		if e.Type == t {
			return true
		}
	}
	return false
}

// matchesPrice maps the price filter onto access modes: "paid" covers both
// paid and mixed free-paid events.
func matchesPrice(e domain.Event, price domain.PriceFilter) bool {
	switch price {
	case domain.PriceFree:
		return e.AccessMode == domain.AccessFree
	case domain.PricePaid:
		return e.AccessMode == domain.AccessPaid || e.AccessMode == domain.AccessFreePaid
	default:
		return true
	}
}

// matchesStatus compares the event's primary date against the start of
// today. Events without a usable date never match an active status filter.
func matchesStatus(e domain.Event, status domain.StatusFilter, today time.Time) bool {
	if status == domain.StatusAll || status == "" {
		return true
	}
	pd := e.PrimaryDate()
	if pd == nil {
		return false
	}
	if status == domain.StatusFuture {
		return !pd.Before(today)
	}
	return pd.Before(today)
}

// matchesDateRange applies inclusive bounds on the primary date; either
// bound may be open-ended.
func matchesDateRange(e domain.Event, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	pd := e.PrimaryDate()
	if pd == nil {
		return false
	}
	if from != nil && pd.Before(*from) {
		return false
	}
	if to != nil && pd.After(*to) {
		return false
	}
	return true
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
