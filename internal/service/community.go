// Package service contains the business logic for the admin gateway.
// Services validate inputs, enforce business rules, and orchestrate upstream
// calls. No HTTP wire handling lives here — services depend on small
// interfaces, not the concrete upstream client.
package service

import (
	"context"
	"log/slog"

	"github.com/communitas/admin-gateway/internal/domain"
	"github.com/communitas/admin-gateway/internal/geo"
	"github.com/communitas/admin-gateway/internal/upstream"
)

// EntityFetcher is the single upstream call the community resolver needs.
// Defined here (in the consumer package) so tests can inject a fake without
// touching the real client.
type EntityFetcher interface {
	FetchEntities(ctx context.Context, q upstream.EntitiesQuery) ([]domain.Community, error)
}

// CommunityService resolves the community candidate list for a location
// selection, walking a fallback ladder of progressively less-specific
// queries until one yields results.
type CommunityService struct {
	api EntityFetcher
	log *slog.Logger
}

// NewCommunityService constructs a CommunityService backed by the provided fetcher.
func NewCommunityService(api EntityFetcher, log *slog.Logger) *CommunityService {
	if log == nil {
		log = slog.Default()
	}
	return &CommunityService{api: api, log: log}
}

// Resolve returns the community entities scoped to sel.
//
// Resolution is infallible: a failed or empty rung degrades to
// the next rung, and total failure degrades to an empty list. The dashboard
// shows an empty community picker, never an error dialog, so a broken
// community lookup cannot take down the location cascade.
//
// Rules:
//   - no selected country → empty result, no network call (the API requires
//     a country parameter);
//   - a country wildcard, or fetchAll, adds a final unscoped rung;
//   - per country the ladder is {country,state,city} → {country,state} →
//     {country}, each rung attempted only when the previous one yielded
//     nothing or errored;
//   - merged results are deduplicated by community id (fallback rungs and
//     multi-location loops return overlapping entities).
func (s *CommunityService) Resolve(ctx context.Context, sel domain.LocationSelection, fetchAll bool) []domain.Community {
	sel = geo.NormalizeSelection(sel)

	if !sel.HasCountry() {
		return []domain.Community{}
	}

	if domain.HasWildcard(sel.Countries, domain.AllCountries) {
		// Scope is "everything": a single unscoped query, no per-country loop.
		return dedupe(s.fetch(ctx, upstream.EntitiesQuery{}))
	}

	states := concreteValues(sel.States, domain.AllStates)
	cities := concreteValues(sel.Cities, domain.AllCities)

	var merged []domain.Community
	for _, country := range sel.Countries {
		merged = append(merged, s.resolveCountry(ctx, country, states, cities)...)
	}

	merged = dedupe(merged)
	if len(merged) == 0 && fetchAll {
		// Last-resort rung for fetch-all scenarios only.
		merged = dedupe(s.fetch(ctx, upstream.EntitiesQuery{}))
	}
	return merged
}

// resolveCountry walks the ladder for one country across every selected
// state/city combination.
func (s *CommunityService) resolveCountry(ctx context.Context, country string, states, cities []string) []domain.Community {
	var out []domain.Community
	for _, state := range orBlank(states) {
		for _, city := range orBlank(cities) {
			out = append(out, s.ladder(ctx, country, state, city)...)
		}
	}
	return out
}

// ladder runs the rungs for one fully-specified scope. Each rung is
// attempted only if the previous rung yielded zero results or errored.
func (s *CommunityService) ladder(ctx context.Context, country, state, city string) []domain.Community {
	rungs := []upstream.EntitiesQuery{
		{Country: country, State: state, City: city},
	}
	if city != "" {
		rungs = append(rungs, upstream.EntitiesQuery{Country: country, State: state})
	}
	if state != "" {
		rungs = append(rungs, upstream.EntitiesQuery{Country: country})
	}

	for _, q := range rungs {
		if got := s.fetch(ctx, q); len(got) > 0 {
			return got
		}
	}
	return nil
}

// fetch runs one rung, swallowing and logging errors as zero results.
func (s *CommunityService) fetch(ctx context.Context, q upstream.EntitiesQuery) []domain.Community {
	got, err := s.api.FetchEntities(ctx, q)
	if err != nil {
		s.log.WarnContext(ctx, "community fetch failed, treating as empty",
			"country", q.Country, "state", q.State, "city", q.City, "error", err)
		return nil
	}
	return got
}

// dedupe removes duplicate communities by id, preserving first-seen order.
// Always returns a non-nil slice so callers can safely range over it.
func dedupe(in []domain.Community) []domain.Community {
	out := make([]domain.Community, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// concreteValues strips the given wildcard sentinel, returning only concrete
// selections. A wildcard at a level means that level is unscoped.
func concreteValues(values []string, sentinel string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != sentinel {
			out = append(out, v)
		}
	}
	return out
}

// orBlank returns values, or a single blank entry when empty, so loops over
// optional dimensions always execute once.
func orBlank(values []string) []string {
	if len(values) == 0 {
		return []string{""}
	}
	return values
}
