package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communitas/admin-gateway/internal/domain"
)

// The country field arrives in three historical encodings; all must
// normalize to a flat list at the JSON boundary.
func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.StringList
	}{
		{"bare array", `["India","Canada"]`, domain.StringList{"India", "Canada"}},
		{"legacy single string", `"India"`, domain.StringList{"India"}},
		{"array encoded as string", `"[\"India\",\"Canada\"]"`, domain.StringList{"India", "Canada"}},
		{"empty string dropped", `""`, domain.StringList{}},
		{"whitespace trimmed", `[" India ",""]`, domain.StringList{"India"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.StringList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_ContainsAndIntersects(t *testing.T) {
	l := domain.StringList{"India", "United States"}

	assert.True(t, l.Contains("india"), "matching is case-insensitive")
	assert.False(t, l.Contains("Canada"))
	assert.True(t, l.Intersects([]string{"Canada", "United States"}))
	assert.False(t, l.Intersects(nil))
}

func TestEvent_PrimaryDate(t *testing.T) {
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	oneday := domain.Event{Type: domain.EventOneDay, Date: &date, StartDate: &start}
	trip := domain.Event{Type: domain.EventTrip, Date: &date, StartDate: &start}

	assert.Equal(t, &date, oneday.PrimaryDate())
	assert.Equal(t, &start, trip.PrimaryDate(), "trips key on StartDate")
	assert.Nil(t, domain.Event{Type: domain.EventOnline}.PrimaryDate())
}

func TestEventType_Valid(t *testing.T) {
	assert.True(t, domain.EventOneDay.Valid())
	assert.True(t, domain.EventTrip.Valid())
	assert.False(t, domain.EventType("concert").Valid())
}
