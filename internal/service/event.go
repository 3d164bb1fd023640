package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/communitas/admin-gateway/internal/domain"
	"github.com/communitas/admin-gateway/internal/upstream"
)

// EventAPI captures the upstream event operations the service depends on.
type EventAPI interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, form domain.EventForm, image *upstream.Upload) (domain.Event, error)
	UpdateEvent(ctx context.Context, id string, form domain.EventForm, image *upstream.Upload) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// EventService mirrors the upstream event list and proxies mutations.
//
// The gateway never owns event state: the full list is fetched once, cached,
// served to every filter query, and re-fetched after every mutation.
// Filtering is purely a derived view over the cached list — no filter
// dimension change ever triggers an upstream call.
type EventService struct {
	api EventAPI
	log *slog.Logger

	mu     sync.Mutex
	cache  []domain.Event
	loaded bool
}

// NewEventService constructs an EventService backed by the provided API.
func NewEventService(api EventAPI, log *slog.Logger) *EventService {
	if log == nil {
		log = slog.Default()
	}
	return &EventService{api: api, log: log}
}

// List returns the full event list, fetching from upstream on first use or
// when refresh is true. The returned slice is a copy; callers may not mutate
// the cache through it.
func (s *EventService) List(ctx context.Context, refresh bool) ([]domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded || refresh {
		events, err := s.api.ListEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("service.EventService.List: %w", err)
		}
		s.cache = events
		s.loaded = true
	}

	out := make([]domain.Event, len(s.cache))
	copy(out, s.cache)
	return out, nil
}

// Filtered returns the cached event list with the given filter state
// applied. The filter pass never runs against an unfetched list: List blocks
// until the first upstream fetch has completed, so a caller can never see a
// filtered view of nothing where "everything" was meant.
func (s *EventService) Filtered(ctx context.Context, f domain.FilterState, now time.Time) ([]domain.Event, error) {
	events, err := s.List(ctx, false)
	if err != nil {
		return nil, err
	}
	return ApplyFilters(events, f, now), nil
}

// Create validates the form (create-mode rules), proxies the mutation
// upstream, and refreshes the mirror.
// Returns a *domain.ValidationError when the form is invalid.
func (s *EventService) Create(ctx context.Context, form domain.EventForm, image *upstream.Upload) (domain.Event, error) {
	if ok, errs := ValidateEventForm(form, false, time.Now()); !ok {
		return domain.Event{}, &domain.ValidationError{Fields: errs}
	}

	created, err := s.api.CreateEvent(ctx, form, image)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Create: %w", err)
	}

	s.refresh(ctx)
	return created, nil
}

// Update validates the form (edit-mode rules: only the name is re-checked),
// proxies the mutation, and refreshes the mirror. image may be nil to keep
// the stored image.
func (s *EventService) Update(ctx context.Context, id string, form domain.EventForm, image *upstream.Upload) (domain.Event, error) {
	if ok, errs := ValidateEventForm(form, true, time.Now()); !ok {
		return domain.Event{}, &domain.ValidationError{Fields: errs}
	}

	updated, err := s.api.UpdateEvent(ctx, id, form, image)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}

	s.refresh(ctx)
	return updated, nil
}

// Delete proxies the deletion and refreshes the mirror.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}

	s.refresh(ctx)
	return nil
}

// refresh re-fetches the mirror after a successful mutation. A failed
// refresh only invalidates the cache — the mutation itself already
// succeeded upstream, so the next List call will retry the fetch.
func (s *EventService) refresh(ctx context.Context) {
	events, err := s.api.ListEvents(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.WarnContext(ctx, "event list refresh failed, cache invalidated", "error", err)
		s.cache = nil
		s.loaded = false
		return
	}
	s.cache = events
	s.loaded = true
}
