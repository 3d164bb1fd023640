package domain

// Wildcard sentinels. Each may appear in place of concrete codes at exactly
// one level of a LocationSelection; choosing one short-circuits resolution
// of every deeper level (nothing under a wildcard is individually resolved).
const (
	AllCountries = "ALL_COUNTRIES"
	AllStates    = "ALL_STATES"
	AllCities    = "ALL_CITIES"
)

// LocationSelection is the country → state → city scope a caller has picked.
// Membership-set semantics: ordering is irrelevant.
//
// A state code is only meaningful together with the country that contains it
// (state codes are not globally unique), so consumers must resolve the owning
// country by membership search, never by positional pairing.
type LocationSelection struct {
	Countries []string `json:"countries"`
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
}

// HasCountry reports whether at least one country is selected.
func (s LocationSelection) HasCountry() bool {
	return len(s.Countries) > 0
}

// HasWildcard reports whether values contains the given sentinel.
func HasWildcard(values []string, sentinel string) bool {
	for _, v := range values {
		if v == sentinel {
			return true
		}
	}
	return false
}

// Option is a single selectable value with a display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionGroup is a labeled partition of options — states grouped under the
// owning country's display name, cities under "Country — State".
type OptionGroup struct {
	Label   string   `json:"label"`
	Options []Option `json:"options"`
}
