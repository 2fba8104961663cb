package hasard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantKey   string
		wantLabel string
		wantDays  int
	}{
		{"empty key falls back to all", "", "all", "all time", 600},
		{"all", "all", "all", "all time", 600},
		{"one year", "1y", "1y", "1 year", 365},
		{"six months", "6m", "6m", "6 months", 182},
		{"three months", "3m", "3m", "3 months", 90},
		{"one month", "1m", "1m", "1 month", 31},
		{"two weeks", "2w", "2w", "2 weeks", 14},
		{"one week", "1w", "1w", "1 week", 7},
		{"one day", "1d", "1d", "1 day", 1},
		{"unknown key echoes key, keeps all days", "banana", "banana", "all time", 600},
	}

	now := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := resolveWindow(tt.key, now)
			assert.Equal(t, tt.wantKey, w.Key)
			assert.Equal(t, tt.wantLabel, w.Label)
			assert.Equal(t, tt.wantDays, w.Days)
			assert.Equal(t, now, w.End)
			assert.Equal(t, now.Add(-time.Duration(tt.wantDays)*24*time.Hour), w.Start)
			assert.True(t, w.Start.Before(w.End))
		})
	}
}

func TestResolveWindowUnknownKeyMatchesAllDays(t *testing.T) {
	assert.Equal(t, "nope", ResolveWindow("nope").Key)
	assert.Equal(t, ResolveWindow("all").Days, ResolveWindow("nope").Days)
}

func TestAvailableWindows(t *testing.T) {
	opts := AvailableWindows()
	assert.Len(t, opts, 8)
	assert.Equal(t, WindowOption{Key: "all", Label: "all time"}, opts[0])
	assert.Equal(t, WindowOption{Key: "1d", Label: "1 day"}, opts[7])
}

func TestResolveWindowStateless(t *testing.T) {
	// two resolutions of the same key compute fresh timestamps.
	first := ResolveWindow("1w")
	second := ResolveWindow("1w")
	assert.False(t, second.End.Before(first.End))
}
