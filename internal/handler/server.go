// Package handler implements the HTTP handlers for the admin gateway.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, location.go, community.go, event.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/communitas/admin-gateway/internal/domain"
	"github.com/communitas/admin-gateway/internal/upstream"
)

// LocationResolver defines the option-list operations the location handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". geo.Dataset
// satisfies it.
type LocationResolver interface {
	CountryOptions() []domain.Option
	ResolveStates(countries []string) []domain.OptionGroup
	ResolveCities(countries, states []string) []domain.OptionGroup
}

// CommunityResolver resolves the community candidate list for a location
// selection. Resolution is infallible by contract: failures degrade to an
// empty list inside the service.
type CommunityResolver interface {
	Resolve(ctx context.Context, sel domain.LocationSelection, fetchAll bool) []domain.Community
}

// EventServicer defines the event operations the handlers depend on.
type EventServicer interface {
	List(ctx context.Context, refresh bool) ([]domain.Event, error)
	Filtered(ctx context.Context, f domain.FilterState, now time.Time) ([]domain.Event, error)
	Create(ctx context.Context, form domain.EventForm, image *upstream.Upload) (domain.Event, error)
	Update(ctx context.Context, id string, form domain.EventForm, image *upstream.Upload) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

// Server holds the dependencies for all API endpoints.
type Server struct {
	locations   LocationResolver
	communities CommunityResolver
	events      EventServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(locations LocationResolver, communities CommunityResolver, events EventServicer) *Server {
	return &Server{locations: locations, communities: communities, events: events}
}

// Routes registers every endpoint on a fresh chi router.
// Mount this under the middleware chain in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/locations", func(r chi.Router) {
		r.Get("/countries", s.GetCountries)
		r.Get("/states", s.GetStates)
		r.Get("/cities", s.GetCities)
	})

	r.Get("/communities", s.GetCommunities)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", s.ListEvents)
		r.Post("/", s.CreateEvent)
		r.Put("/{eventId}", s.UpdateEvent)
		r.Delete("/{eventId}", s.DeleteEvent)
	})

	return r
}
