package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/communitas/admin-gateway/internal/domain"
)

// EntitiesQuery scopes a community-entity lookup. Zero-value fields are
// omitted from the request, so the same call shape serves every rung of the
// service layer's fallback ladder, including the unscoped global rung.
type EntitiesQuery struct {
	Country string
	State   string
	City    string
}

// FetchEntities calls GET /meetings/entities with the given scope and
// returns the matching community-like entities.
// One call is one rung: no retries or fallbacks happen here.
func (c *Client) FetchEntities(ctx context.Context, q EntitiesQuery) ([]domain.Community, error) {
	query := url.Values{}
	if q.Country != "" {
		query.Set("country", q.Country)
	}
	if q.State != "" {
		query.Set("state", q.State)
	}
	if q.City != "" {
		query.Set("city", q.City)
	}

	var communities []domain.Community
	if err := c.getJSON(ctx, "/meetings/entities", query, &communities); err != nil {
		return nil, fmt.Errorf("upstream.Client.FetchEntities: %w", err)
	}
	return communities, nil
}
