package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/communitas/admin-gateway/internal/domain"
)

// Upload is an image file attached to an event create/update request.
type Upload struct {
	Name    string
	Content io.Reader
}

// ListEvents calls GET /events/event and returns all events, normalized.
// Location-field normalization (string vs array vs JSON-string) happens
// inside domain.StringList during decoding.
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := c.getJSON(ctx, "/events/event", nil, &events); err != nil {
		return nil, fmt.Errorf("upstream.Client.ListEvents: %w", err)
	}
	return events, nil
}

// CreateEvent calls POST /events/event with a multipart body (the image file
// plus all form fields) and returns the persisted record.
func (c *Client) CreateEvent(ctx context.Context, form domain.EventForm, image *Upload) (domain.Event, error) {
	body, contentType, err := encodeEventForm(form, image)
	if err != nil {
		return domain.Event{}, fmt.Errorf("upstream.Client.CreateEvent: %w", err)
	}

	var created domain.Event
	if err := c.sendMultipart(ctx, "POST", "/events/event", body, contentType, &created); err != nil {
		return domain.Event{}, fmt.Errorf("upstream.Client.CreateEvent: %w", err)
	}
	return created, nil
}

// UpdateEvent calls PUT /events/event/{id}. image may be nil to keep the
// existing image.
func (c *Client) UpdateEvent(ctx context.Context, id string, form domain.EventForm, image *Upload) (domain.Event, error) {
	body, contentType, err := encodeEventForm(form, image)
	if err != nil {
		return domain.Event{}, fmt.Errorf("upstream.Client.UpdateEvent: %w", err)
	}

	var updated domain.Event
	if err := c.sendMultipart(ctx, "PUT", "/events/event/"+id, body, contentType, &updated); err != nil {
		return domain.Event{}, fmt.Errorf("upstream.Client.UpdateEvent: %w", err)
	}
	return updated, nil
}

// DeleteEvent calls DELETE /events/event/{id}.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/events/event/"+id, nil, nil, "", nil); err != nil {
		return fmt.Errorf("upstream.Client.DeleteEvent: %w", err)
	}
	return nil
}

// encodeEventForm builds the multipart body the platform expects.
// List fields (country, state, communities) are sent as JSON-encoded arrays,
// the modern encoding of the historically inconsistent fields.
func encodeEventForm(form domain.EventForm, image *Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"eventName":   form.Name,
		"description": form.Description,
		"eventType":   string(form.Type),
		"accessMode":  string(form.AccessMode),
		"date":        form.Date,
		"startDate":   form.StartDate,
		"endDate":     form.EndDate,
		"startTime":   form.StartTime,
		"endTime":     form.EndTime,
		"location":    form.Location,
		"link":        form.Link,
	}
	if form.Amount > 0 {
		fields["amount"] = strconv.FormatFloat(form.Amount, 'f', -1, 64)
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for name, values := range map[string][]string{
		"country":     form.Countries,
		"state":       form.States,
		"communities": form.Communities,
	} {
		if len(values) == 0 {
			continue
		}
		encoded, err := json.Marshal(values)
		if err != nil {
			return nil, "", fmt.Errorf("encode field %s: %w", name, err)
		}
		if err := w.WriteField(name, string(encoded)); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if image != nil {
		part, err := w.CreateFormFile("image", image.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, image.Content); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
