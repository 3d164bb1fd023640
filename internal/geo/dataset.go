// Package geo implements the location hierarchy resolver: pure functions
// over an immutable geographic dataset of countries, states, and cities.
//
// The dataset is reference data loaded once at startup (see internal/repo);
// nothing in this package performs I/O.
package geo

// City is a city name within a state. Cities carry no code — the platform
// matches them by name only.
type City struct {
	Name string
}

// State is a first-level subdivision of a country.
// State codes are unique within a country but NOT globally ("PB" is Punjab
// in India and Punjab in Pakistan), so a state is only addressable together
// with its owning country.
type State struct {
	Code   string
	Name   string
	Cities []City
}

// Country is a top-level entry in the dataset.
type Country struct {
	Code   string // ISO 3166-1 alpha-2
	Name   string // display name, used as the grouping label
	States []State
}

// Dataset is the full geographic hierarchy. It is immutable after
// construction; resolvers are pure functions over it.
type Dataset struct {
	countries []Country
	byCode    map[string]int
}

// NewDataset builds a Dataset from the given countries.
// Country order is preserved — it determines option list order.
func NewDataset(countries []Country) Dataset {
	byCode := make(map[string]int, len(countries))
	for i, c := range countries {
		byCode[c.Code] = i
	}
	return Dataset{countries: countries, byCode: byCode}
}

// Countries returns all countries in dataset order.
func (d Dataset) Countries() []Country {
	return d.countries
}

// Country returns the country with the given code.
func (d Dataset) Country(code string) (Country, bool) {
	i, ok := d.byCode[code]
	if !ok {
		return Country{}, false
	}
	return d.countries[i], true
}

// Empty reports whether the dataset holds no countries. Startup treats an
// empty dataset as a configuration error.
func (d Dataset) Empty() bool {
	return len(d.countries) == 0
}

// stateIn returns the state with the given code inside country c.
func stateIn(c Country, code string) (State, bool) {
	for _, s := range c.States {
		if s.Code == code {
			return s, true
		}
	}
	return State{}, false
}
