package hasard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersPoint(t *testing.T) {
	c := Counters{VeryGood: 3, Good: 2, NoGood: 1, Absent: 0}
	assert.Equal(t, 7, c.Point())
	assert.Equal(t, 6, c.Sorties())
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		value int
		total int
		want  float64
	}{
		{"half", 3, 6, 50.0},
		{"rounds to one decimal", 1, 3, 33.3},
		{"rounds up", 2, 3, 66.7},
		{"zero total", 5, 0, 0},
		{"zero value", 0, 10, 0},
		{"full", 10, 10, 100.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.value, tt.total))
		})
	}
}

func TestRankComputesPointsAndPercentages(t *testing.T) {
	perStudent := []StudentCounters{
		{
			Student:  Student{ID: 1, FirstName: "Ada", LastName: "Lovelace"},
			Counters: Counters{VeryGood: 3, Good: 2, NoGood: 1, Absent: 0},
		},
		{
			Student:  Student{ID: 2, FirstName: "Blaise", LastName: "Pascal"},
			Counters: Counters{},
		},
	}
	classWide := Counters{VeryGood: 3, Good: 2, NoGood: 1, Absent: 6}

	ranked := Rank(perStudent, classWide, SortByPoint)
	assert.Len(t, ranked, 2)

	ada := ranked[0]
	assert.Equal(t, 1, ada.ID)
	assert.Equal(t, 7, ada.Point)
	assert.Equal(t, 6, ada.Sorties)
	assert.Equal(t, 50.0, ada.VeryGoodPct)
	assert.Equal(t, 33.3, ada.GoodPct)
	assert.Equal(t, 16.7, ada.NoGoodPct)
	assert.Equal(t, 0.0, ada.AbsentPct)
	assert.Equal(t, 50.0, ada.SortiePct) // 6 of the class-wide 12

	// zero-activity students still rank, with all-zero percentages.
	blaise := ranked[1]
	assert.Equal(t, 0, blaise.Sorties)
	assert.Equal(t, 0, blaise.Point)
	assert.Equal(t, 0.0, blaise.VeryGoodPct)
	assert.Equal(t, 0.0, blaise.SortiePct)
}

func TestRankPercentageBounds(t *testing.T) {
	perStudent := []StudentCounters{
		{Student: Student{ID: 1}, Counters: Counters{VeryGood: 9, Good: 4, NoGood: 2, Absent: 7}},
		{Student: Student{ID: 2}, Counters: Counters{Good: 1}},
		{Student: Student{ID: 3}},
	}
	var classWide Counters
	for _, sc := range perStudent {
		classWide.Add(sc.Counters)
	}

	for _, rs := range Rank(perStudent, classWide, SortByPoint) {
		for _, pct := range []float64{rs.VeryGoodPct, rs.GoodPct, rs.NoGoodPct, rs.AbsentPct, rs.SortiePct} {
			assert.GreaterOrEqual(t, pct, 0.0)
			assert.LessOrEqual(t, pct, 100.0)
			if rs.Sorties == 0 {
				assert.Equal(t, 0.0, pct)
			}
		}
		assert.Equal(t, rs.VeryGood+rs.Good+rs.NoGood+rs.Absent, rs.Sorties)
	}
}

func TestRankIsStable(t *testing.T) {
	// three students with equal points keep the aggregator's order.
	perStudent := []StudentCounters{
		{Student: Student{ID: 10}, Counters: Counters{Good: 2}},
		{Student: Student{ID: 20}, Counters: Counters{VeryGood: 1}},
		{Student: Student{ID: 30}, Counters: Counters{Good: 2}},
		{Student: Student{ID: 40}, Counters: Counters{VeryGood: 2}},
	}

	ranked := Rank(perStudent, Counters{}, SortByPoint)
	ids := []int{ranked[0].ID, ranked[1].ID, ranked[2].ID, ranked[3].ID}
	assert.Equal(t, []int{40, 10, 20, 30}, ids)
}

func TestRankBySorties(t *testing.T) {
	perStudent := []StudentCounters{
		{Student: Student{ID: 1}, Counters: Counters{Absent: 1}},
		{Student: Student{ID: 2}, Counters: Counters{Good: 5}},
		{Student: Student{ID: 3}, Counters: Counters{NoGood: 3}},
	}

	ranked := Rank(perStudent, Counters{}, SortBySorties)
	assert.Equal(t, 2, ranked[0].ID)
	assert.Equal(t, 3, ranked[1].ID)
	assert.Equal(t, 1, ranked[2].ID)
}

func TestCountersStats(t *testing.T) {
	stats := Counters{VeryGood: 1, Good: 1, NoGood: 1, Absent: 1}.Stats()
	assert.Equal(t, 4, stats.Sorties)
	assert.Equal(t, 25.0, stats.VeryGoodPct)
	assert.Equal(t, 25.0, stats.GoodPct)
	assert.Equal(t, 25.0, stats.NoGoodPct)
	assert.Equal(t, 25.0, stats.AbsentPct)

	empty := Counters{}.Stats()
	assert.Equal(t, 0, empty.Sorties)
	assert.Equal(t, 0.0, empty.VeryGoodPct)
}
