package hasard

import "time"

// WindowAll is the fallback filter key for absent or unrecognized keys.
const WindowAll = "all"

// TimeWindow is a resolved rolling time range used to scope aggregation.
// Windows are recomputed fresh per request relative to now and never
// persisted.
type TimeWindow struct {
	// Key is the caller-supplied filter key, echoed verbatim even when it
	// isn't a recognized filter.
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// WindowOption is one selectable filter, for display.
type WindowOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// The eight canonical filters in display order with their day counts.
var windows = []struct {
	key   string
	label string
	days  int
}{
	{WindowAll, "all time", 600},
	{"1y", "1 year", 365},
	{"6m", "6 months", 182},
	{"3m", "3 months", 90},
	{"1m", "1 month", 31},
	{"2w", "2 weeks", 14},
	{"1w", "1 week", 7},
	{"1d", "1 day", 1},
}

// ResolveWindow maps a filter key to a concrete [start, end] range ending
// now. An empty key resolves to the "all" window. An unrecognized key is not
// an error: it resolves to the "all" window's day count while keeping the
// supplied key verbatim for display.
func ResolveWindow(key string) TimeWindow {
	return resolveWindow(key, time.Now())
}

func resolveWindow(key string, now time.Time) TimeWindow {
	if key == "" {
		key = WindowAll
	}

	label, days := windows[0].label, windows[0].days
	for _, w := range windows {
		if w.key == key {
			label, days = w.label, w.days
			break
		}
	}

	return TimeWindow{
		Key:   key,
		Label: label,
		Start: now.Add(-time.Duration(days) * 24 * time.Hour),
		End:   now,
		Days:  days,
	}
}

// AvailableWindows returns the canonical filters in display order,
// independent of any class or request.
func AvailableWindows() []WindowOption {
	opts := make([]WindowOption, len(windows))
	for i, w := range windows {
		opts[i] = WindowOption{Key: w.key, Label: w.label}
	}
	return opts
}
