package geo

import (
	"github.com/communitas/admin-gateway/internal/domain"
)

// CountryOptions returns one option per country in dataset order.
func (d Dataset) CountryOptions() []domain.Option {
	opts := make([]domain.Option, 0, len(d.countries))
	for _, c := range d.countries {
		opts = append(opts, domain.Option{Value: c.Code, Label: c.Name})
	}
	return opts
}

// ResolveStates returns the states of each selected country, grouped under
// the country's display name.
//
// An empty country selection yields an empty result — there is no default
// country fallback. A country wildcard short-circuits: the scope is
// "everything", so no states are individually resolved.
// Unknown country codes are skipped silently.
func (d Dataset) ResolveStates(countries []string) []domain.OptionGroup {
	if len(countries) == 0 || domain.HasWildcard(countries, domain.AllCountries) {
		return nil
	}

	var groups []domain.OptionGroup
	for _, code := range countries {
		c, ok := d.Country(code)
		if !ok {
			continue
		}
		opts := make([]domain.Option, 0, len(c.States))
		for _, s := range c.States {
			opts = append(opts, domain.Option{Value: s.Code, Label: s.Name})
		}
		if len(opts) > 0 {
			groups = append(groups, domain.OptionGroup{Label: c.Name, Options: opts})
		}
	}
	return groups
}

// ResolveCities returns the cities of each selected state, grouped under the
// state's display name.
//
// The owning country of each state code is found by searching every selected
// country for the one whose subdivision set contains that code — never by
// positional pairing. This matters for multi-country, multi-state selections
// because state codes collide across countries.
//
// A state wildcard short-circuits to an empty result: under ALL_STATES the
// city level is not individually resolved.
func (d Dataset) ResolveCities(countries, states []string) []domain.OptionGroup {
	if len(countries) == 0 || len(states) == 0 {
		return nil
	}
	if domain.HasWildcard(countries, domain.AllCountries) || domain.HasWildcard(states, domain.AllStates) {
		return nil
	}

	var groups []domain.OptionGroup
	for _, stateCode := range states {
		state, ok := d.findStateIn(countries, stateCode)
		if !ok {
			continue
		}
		opts := make([]domain.Option, 0, len(state.Cities))
		for _, city := range state.Cities {
			opts = append(opts, domain.Option{Value: city.Name, Label: city.Name})
		}
		if len(opts) > 0 {
			groups = append(groups, domain.OptionGroup{Label: state.Name, Options: opts})
		}
	}
	return groups
}

// findStateIn searches the selected countries for the one containing
// stateCode and returns the state. First match wins, in selection order.
func (d Dataset) findStateIn(countries []string, stateCode string) (State, bool) {
	for _, code := range countries {
		c, ok := d.Country(code)
		if !ok {
			continue
		}
		if s, ok := stateIn(c, stateCode); ok {
			return s, true
		}
	}
	return State{}, false
}

// NormalizeSelection enforces the no-stale-children invariants:
//
//   - an empty country selection clears states and cities;
//   - a state wildcard clears the concrete city list (under ALL_STATES no
//     individual city is meaningful);
//   - a country wildcard likewise clears states and cities.
//
// The returned selection is a corrected copy; the input is not modified.
func NormalizeSelection(sel domain.LocationSelection) domain.LocationSelection {
	if len(sel.Countries) == 0 {
		return domain.LocationSelection{Countries: sel.Countries}
	}
	if domain.HasWildcard(sel.Countries, domain.AllCountries) {
		return domain.LocationSelection{Countries: []string{domain.AllCountries}}
	}
	if domain.HasWildcard(sel.States, domain.AllStates) {
		return domain.LocationSelection{
			Countries: sel.Countries,
			States:    []string{domain.AllStates},
		}
	}
	return sel
}
