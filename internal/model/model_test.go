package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var e Event
	require.NoError(t, json.Unmarshal([]byte(`{"id":"w1","date":"2025-06-15"}`), &e))
	assert.Equal(t, NewDate(2025, time.June, 15), e.Date)

	out, err := json.Marshal(e.Date)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-15"`, string(out))

	var legacy Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-15T18:30:00Z"`), &legacy))
	assert.Equal(t, NewDate(2025, time.June, 15), legacy)

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"15/06/2025"`), &bad))
}

func TestEventRemaining(t *testing.T) {
	e := Event{Capacity: 3, Registered: 2}
	assert.Equal(t, 1, e.Remaining())
	assert.False(t, e.IsFull())

	e.Registered = 3
	assert.Equal(t, 0, e.Remaining())
	assert.True(t, e.IsFull())
}

func TestFilterMatches(t *testing.T) {
	event := Event{
		Title:       "David & Olivia Vineyard Ceremony",
		Description: "An intimate wedding at a historic Tuscan vineyard.",
		Date:        MustParseDate("2025-08-10"),
		Location:    Location{Country: "Italy", City: "Florence"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, want: true},
		{name: "search title any case", filter: Filter{Search: "VINEYARD"}, want: true},
		{name: "search city", filter: Filter{Search: "flor"}, want: true},
		{name: "search miss", filter: Filter{Search: "santorini"}, want: false},
		{name: "country exact", filter: Filter{Country: "Italy"}, want: true},
		{name: "country is not a substring match", filter: Filter{Country: "Ital"}, want: false},
		{name: "from date inclusive", filter: Filter{FromDate: MustParseDate("2025-08-10")}, want: true},
		{name: "from date after", filter: Filter{FromDate: MustParseDate("2025-08-11")}, want: false},
		{name: "to date inclusive", filter: Filter{ToDate: MustParseDate("2025-08-10")}, want: true},
		{name: "to date before", filter: Filter{ToDate: MustParseDate("2025-08-09")}, want: false},
		{
			name: "all predicates",
			filter: Filter{
				Search:   "tuscan",
				Country:  "Italy",
				FromDate: MustParseDate("2025-08-01"),
				ToDate:   MustParseDate("2025-08-31"),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(event))
		})
	}
}

func TestAccountPublic(t *testing.T) {
	a := Account{ID: "user-1", Name: "A", Email: "a@x.com", Password: "secret1"}
	p := a.Public()
	assert.Empty(t, p.Password)
	assert.Equal(t, "secret1", a.Password)
}
