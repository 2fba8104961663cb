package hasard

import (
	"context"
	"math"
	"sort"
)

// Counters holds the per-category sortie counts of a student (or a whole
// class) over a time window.
type Counters struct {
	VeryGood int `json:"vgood"`
	Good     int `json:"good"`
	NoGood   int `json:"nogood"`
	Absent   int `json:"absent"`
}

// Sorties returns the total number of evaluated interactions.
func (c Counters) Sorties() int {
	return c.VeryGood + c.Good + c.NoGood + c.Absent
}

// Point returns the weighted engagement score.
func (c Counters) Point() int {
	return 2*c.VeryGood + c.Good - c.NoGood - c.Absent
}

// Add accumulates other into c.
func (c *Counters) Add(other Counters) {
	c.VeryGood += other.VeryGood
	c.Good += other.Good
	c.NoGood += other.NoGood
	c.Absent += other.Absent
}

// StudentCounters pairs a roster identity with its windowed counters.
type StudentCounters struct {
	Student
	Counters
}

// ClassEngagement is the aggregation result for one class and window.
// PerStudent covers the whole roster: students with no activity in the
// window appear with zero counters.
type ClassEngagement struct {
	PerStudent []StudentCounters
	ClassWide  Counters
}

// EngagementService computes raw engagement counters from the response log.
type EngagementService interface {
	// Aggregate counts the responses of every student of classID recorded in
	// [window.Start, window.End] inclusive, plus the class-wide sum. Every
	// read recomputes from the full event log, nothing is cached.
	Aggregate(ctx context.Context, classID int, window TimeWindow) (ClassEngagement, error)
}

// SortKey selects the ranking order.
type SortKey int

const (
	SortByPoint SortKey = iota
	SortBySorties
)

// RankedStudent is a roster entry annotated with its score and percentage
// breakdown, ready for display. Percentages use 1-decimal rounding and are 0
// when the student has no sorties.
type RankedStudent struct {
	Student
	Counters
	Sorties int `json:"sorties"`
	Point   int `json:"point"`

	VeryGoodPct float64 `json:"vgood_pct"`
	GoodPct     float64 `json:"good_pct"`
	NoGoodPct   float64 `json:"nogood_pct"`
	AbsentPct   float64 `json:"absent_pct"`

	// SortiePct is the student's share of the class-wide sorties.
	SortiePct float64 `json:"sortie_pct"`
}

// ClassStats is the class-wide counter summary with its percentage
// breakdown.
type ClassStats struct {
	Counters
	Sorties int `json:"sorties"`

	VeryGoodPct float64 `json:"vgood_pct"`
	GoodPct     float64 `json:"good_pct"`
	NoGoodPct   float64 `json:"nogood_pct"`
	AbsentPct   float64 `json:"absent_pct"`
}

// Stats derives the percentage-annotated class summary from class-wide
// counters.
func (c Counters) Stats() ClassStats {
	total := c.Sorties()
	return ClassStats{
		Counters:    c,
		Sorties:     total,
		VeryGoodPct: Percent(c.VeryGood, total),
		GoodPct:     Percent(c.Good, total),
		NoGoodPct:   Percent(c.NoGood, total),
		AbsentPct:   Percent(c.Absent, total),
	}
}

// Percent returns 100*value/total rounded to 1 decimal, or 0 when total is 0.
func Percent(value, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(value)/float64(total)*1000) / 10
}

// Rank derives points and percentages for every student and sorts descending
// by the provided key. The sort is stable: students with equal keys keep the
// aggregator's roster order.
func Rank(perStudent []StudentCounters, classWide Counters, key SortKey) []RankedStudent {
	classSorties := classWide.Sorties()

	ranked := make([]RankedStudent, len(perStudent))
	for i, sc := range perStudent {
		sorties := sc.Sorties()
		ranked[i] = RankedStudent{
			Student:     sc.Student,
			Counters:    sc.Counters,
			Sorties:     sorties,
			Point:       sc.Point(),
			VeryGoodPct: Percent(sc.VeryGood, sorties),
			GoodPct:     Percent(sc.Good, sorties),
			NoGoodPct:   Percent(sc.NoGood, sorties),
			AbsentPct:   Percent(sc.Absent, sorties),
			SortiePct:   Percent(sorties, classSorties),
		}
	}

	switch key {
	case SortBySorties:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Sorties > ranked[j].Sorties
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Point > ranked[j].Point
		})
	}
	return ranked
}
