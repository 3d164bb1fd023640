package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitas/admin-gateway/internal/domain"
	"github.com/communitas/admin-gateway/internal/service"
	"github.com/communitas/admin-gateway/internal/upstream"
)

// mockEntityFetcher is a hand-written test double for service.EntityFetcher.
// It records every query so tests can assert on the ladder's rungs.
type mockEntityFetcher struct {
	fetch   func(ctx context.Context, q upstream.EntitiesQuery) ([]domain.Community, error)
	queries []upstream.EntitiesQuery
}

func (m *mockEntityFetcher) FetchEntities(ctx context.Context, q upstream.EntitiesQuery) ([]domain.Community, error) {
	m.queries = append(m.queries, q)
	if m.fetch == nil {
		return nil, nil
	}
	return m.fetch(ctx, q)
}

// compile-time check: mockEntityFetcher must satisfy service.EntityFetcher.
var _ service.EntityFetcher = (*mockEntityFetcher)(nil)

func community(id, name string) domain.Community {
	return domain.Community{ID: id, Name: name, Status: "active", Type: "community"}
}

// ---- preconditions ---------------------------------------------------------

func TestCommunityResolve_NoCountry_NoNetworkCall(t *testing.T) {
	fetcher := &mockEntityFetcher{}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		States: []string{"GJ"},
		Cities: []string{"Surat"},
	}, false)

	assert.Empty(t, got)
	assert.Empty(t, fetcher.queries, "no country selected must mean zero upstream calls")
}

// ---- fallback ladder -------------------------------------------------------

// Full ladder walk: {IN,GJ,Surat} empty, retry {IN,GJ}, then {IN},
// returning the first non-empty rung's result.
func TestCommunityResolve_FallbackLadder(t *testing.T) {
	fetcher := &mockEntityFetcher{
		fetch: func(_ context.Context, q upstream.EntitiesQuery) ([]domain.Community, error) {
			if q.Country == "IN" && q.State == "" && q.City == "" {
				return []domain.Community{community("c1", "India Chapter")}, nil
			}
			return nil, nil
		},
	}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{"IN"},
		States:    []string{"GJ"},
		Cities:    []string{"Surat"},
	}, false)

	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)

	require.Len(t, fetcher.queries, 3)
	assert.Equal(t, upstream.EntitiesQuery{Country: "IN", State: "GJ", City: "Surat"}, fetcher.queries[0])
	assert.Equal(t, upstream.EntitiesQuery{Country: "IN", State: "GJ"}, fetcher.queries[1])
	assert.Equal(t, upstream.EntitiesQuery{Country: "IN"}, fetcher.queries[2])
}

func TestCommunityResolve_FirstRungHit_NoFurtherRungs(t *testing.T) {
	fetcher := &mockEntityFetcher{
		fetch: func(_ context.Context, q upstream.EntitiesQuery) ([]domain.Community, error) {
			return []domain.Community{community("c1", "Surat Chapter")}, nil
		},
	}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{"IN"},
		States:    []string{"GJ"},
		Cities:    []string{"Surat"},
	}, false)

	require.Len(t, got, 1)
	assert.Len(t, fetcher.queries, 1, "a non-empty first rung must stop the ladder")
}

func TestCommunityResolve_ErroredRung_TreatedAsEmpty(t *testing.T) {
	fetcher := &mockEntityFetcher{
		fetch: func(_ context.Context, q upstream.EntitiesQuery) ([]domain.Community, error) {
			if q.State != "" {
				return nil, errors.New("boom")
			}
			return []domain.Community{community("c2", "India Chapter")}, nil
		},
	}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{"IN"},
		States:    []string{"GJ"},
	}, false)

	// Errors degrade to the next rung; resolution itself never fails.
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
}

// ---- dedupe ----------------------------------------------------------------

func TestCommunityResolve_DeduplicatesAcrossCountries(t *testing.T) {
	fetcher := &mockEntityFetcher{
		fetch: func(_ context.Context, q upstream.EntitiesQuery) ([]domain.Community, error) {
			// The same global community comes back for both countries.
			return []domain.Community{community("c1", "Global"), community(q.Country, q.Country)}, nil
		},
	}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{"IN", "US"},
	}, false)

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"c1", "IN", "US"}, ids)
}

// ---- wildcards and fetch-all -----------------------------------------------

func TestCommunityResolve_CountryWildcard_SingleUnscopedQuery(t *testing.T) {
	fetcher := &mockEntityFetcher{
		fetch: func(_ context.Context, q upstream.EntitiesQuery) ([]domain.Community, error) {
			return []domain.Community{community("c1", "Everywhere")}, nil
		},
	}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{domain.AllCountries},
		States:    []string{"GJ"},
	}, false)

	require.Len(t, got, 1)
	require.Len(t, fetcher.queries, 1)
	assert.Equal(t, upstream.EntitiesQuery{}, fetcher.queries[0])
}

func TestCommunityResolve_StateWildcard_SkipsStateRungs(t *testing.T) {
	fetcher := &mockEntityFetcher{}
	svc := service.NewCommunityService(fetcher, nil)

	svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{"IN"},
		States:    []string{domain.AllStates},
		Cities:    []string{"Surat"},
	}, false)

	// NormalizeSelection clears cities under a state wildcard; only the
	// bare country rung remains.
	require.Len(t, fetcher.queries, 1)
	assert.Equal(t, upstream.EntitiesQuery{Country: "IN"}, fetcher.queries[0])
}

func TestCommunityResolve_FetchAll_UnscopedLastResort(t *testing.T) {
	fetcher := &mockEntityFetcher{
		fetch: func(_ context.Context, q upstream.EntitiesQuery) ([]domain.Community, error) {
			if q == (upstream.EntitiesQuery{}) {
				return []domain.Community{community("c9", "Global")}, nil
			}
			return nil, nil
		},
	}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{"IN"},
	}, true)

	require.Len(t, got, 1)
	assert.Equal(t, "c9", got[0].ID)
	// Scoped rung first, then the unscoped last resort.
	require.Len(t, fetcher.queries, 2)
	assert.Equal(t, upstream.EntitiesQuery{Country: "IN"}, fetcher.queries[0])
	assert.Equal(t, upstream.EntitiesQuery{}, fetcher.queries[1])
}

func TestCommunityResolve_NoFetchAll_NoUnscopedRung(t *testing.T) {
	fetcher := &mockEntityFetcher{}
	svc := service.NewCommunityService(fetcher, nil)

	got := svc.Resolve(context.Background(), domain.LocationSelection{
		Countries: []string{"IN"},
	}, false)

	assert.Empty(t, got)
	require.Len(t, fetcher.queries, 1)
	assert.Equal(t, upstream.EntitiesQuery{Country: "IN"}, fetcher.queries[0])
}
