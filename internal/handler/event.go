package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/communitas/admin-gateway/internal/domain"
	"github.com/communitas/admin-gateway/internal/upstream"
)

// multipartMemoryLimit bounds in-memory multipart parsing. The image cap is
// 2 MB; the extra headroom covers the text fields.
const multipartMemoryLimit = domain.MaxImageBytes + 1<<20

// EventsResponse wraps a filtered event list.
type EventsResponse struct {
	Data  []domain.Event `json:"data"`
	Total int            `json:"total"`
}

// ListEvents handles GET /events with optional filter query parameters:
//
//	country, state, city, community, type   (repeatable)
//	price  (all|free|paid)
//	status (all|future|past)
//	from, to (YYYY-MM-DD, inclusive)
//	refresh=true forces an upstream re-fetch before filtering
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	f, refresh, err := parseFilterState(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	if refresh {
		if _, err := s.events.List(r.Context(), true); err != nil {
			writeError(w, r, err)
			return
		}
	}

	events, err := s.events.Filtered(r.Context(), f, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, EventsResponse{Data: events, Total: len(events)})
}

// CreateEvent handles POST /events (multipart form, image file required).
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	form, image, err := parseEventForm(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	created, err := s.events.Create(r.Context(), form, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateEvent handles PUT /events/{eventId} (multipart form, image optional —
// omitting it keeps the stored image).
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventId")

	form, image, err := parseEventForm(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	updated, err := s.events.Update(r.Context(), id, form, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteEvent handles DELETE /events/{eventId}.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventId")

	if err := s.events.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseFilterState builds a FilterState from query parameters.
func parseFilterState(r *http.Request) (domain.FilterState, bool, error) {
	q := r.URL.Query()
	f := domain.NewFilterState()

	f.Countries = q["country"]
	f.States = q["state"]
	f.Cities = q["city"]
	f.Communities = q["community"]

	for _, t := range q["type"] {
		et := domain.EventType(t)
		if !et.Valid() {
			return f, false, errors.New("unknown event type: " + t)
		}
		f.EventTypes = append(f.EventTypes, et)
	}

	switch price := q.Get("price"); price {
	case "", string(domain.PriceAll):
	case string(domain.PriceFree), string(domain.PricePaid):
		f.Price = domain.PriceFilter(price)
	default:
		return f, false, errors.New("unknown price filter: " + price)
	}

	switch status := q.Get("status"); status {
	case "", string(domain.StatusAll):
	case string(domain.StatusFuture), string(domain.StatusPast):
		f.Status = domain.StatusFilter(status)
	default:
		return f, false, errors.New("unknown status filter: " + status)
	}

	var err error
	if f.DateFrom, err = parseQueryDate(q.Get("from")); err != nil {
		return f, false, err
	}
	if f.DateTo, err = parseQueryDate(q.Get("to")); err != nil {
		return f, false, err
	}

	return f, q.Get("refresh") == "true", nil
}

func parseQueryDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, ok := domain.ParseFormDate(s)
	if !ok {
		return nil, errors.New("invalid date: " + s + " (want YYYY-MM-DD)")
	}
	return &t, nil
}

// parseEventForm reads the multipart body into an EventForm plus an optional
// image upload. Field presence and sizes are checked by the validation
// engine, not here — this function only moves bytes.
func parseEventForm(r *http.Request) (domain.EventForm, *upstream.Upload, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return domain.EventForm{}, nil, errors.New("malformed multipart body")
	}

	form := domain.EventForm{
		Name:        r.FormValue("eventName"),
		Description: r.FormValue("description"),
		Type:        domain.EventType(r.FormValue("eventType")),
		AccessMode:  domain.AccessMode(r.FormValue("accessMode")),
		Date:        r.FormValue("date"),
		StartDate:   r.FormValue("startDate"),
		EndDate:     r.FormValue("endDate"),
		StartTime:   r.FormValue("startTime"),
		EndTime:     r.FormValue("endTime"),
		Location:    r.FormValue("location"),
		Link:        r.FormValue("link"),
		Countries:   listField(r, "country"),
		States:      listField(r, "state"),
		Communities: listField(r, "communities"),
	}

	if amount := r.FormValue("amount"); amount != "" {
		v, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return domain.EventForm{}, nil, errors.New("invalid amount: " + amount)
		}
		form.Amount = v
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, nil, nil
		}
		return domain.EventForm{}, nil, errors.New("unreadable image upload")
	}

	form.ImageName = header.Filename
	form.ImageSize = header.Size
	return form, &upstream.Upload{Name: header.Filename, Content: file}, nil
}

// listField reads a repeatable form field, also accepting a single
// JSON-encoded array value (the dashboard sends both shapes).
func listField(r *http.Request, name string) []string {
	values := r.MultipartForm.Value[name]
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	return values
}
