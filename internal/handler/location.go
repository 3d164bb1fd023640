package handler

import (
	"net/http"

	"github.com/communitas/admin-gateway/internal/domain"
)

// OptionsResponse is a flat option list with its wildcard sentinel.
// The wildcard is served alongside (not inside) the options so every
// dashboard consumer injects it as the synthetic first entry the same way.
type OptionsResponse struct {
	Wildcard domain.Option   `json:"wildcard"`
	Options  []domain.Option `json:"options"`
}

// GroupsResponse is a grouped option list with its wildcard sentinel.
type GroupsResponse struct {
	Wildcard domain.Option        `json:"wildcard"`
	Groups   []domain.OptionGroup `json:"groups"`
}

// GetCountries handles GET /locations/countries.
func (s *Server) GetCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OptionsResponse{
		Wildcard: domain.Option{Value: domain.AllCountries, Label: "All Countries"},
		Options:  s.locations.CountryOptions(),
	})
}

// GetStates handles GET /locations/states?country=IN&country=US.
// No selected country yields empty groups — there is no default country.
func (s *Server) GetStates(w http.ResponseWriter, r *http.Request) {
	countries := r.URL.Query()["country"]

	writeJSON(w, http.StatusOK, GroupsResponse{
		Wildcard: domain.Option{Value: domain.AllStates, Label: "All States"},
		Groups:   s.locations.ResolveStates(countries),
	})
}

// GetCities handles GET /locations/cities?country=IN&state=GJ.
// The owning country of each state is resolved by membership search inside
// the resolver; a state wildcard yields empty groups.
func (s *Server) GetCities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	writeJSON(w, http.StatusOK, GroupsResponse{
		Wildcard: domain.Option{Value: domain.AllCities, Label: "All Cities"},
		Groups:   s.locations.ResolveCities(q["country"], q["state"]),
	})
}
