package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	hasard "github.com/hasard-app/hasard-api"
)

func TestAggregate(t *testing.T) {
	db := MustOpenDB(t)
	classID, teacherID, adaID, blaiseID := testClass(t, db)
	svc := NewEngagementService(db)

	now := time.Now().UTC()
	// inside a 7 day window.
	mustCreateLog(t, db, classID, adaID, teacherID, hasard.ResponseVeryGood, now.Add(-time.Hour))
	mustCreateLog(t, db, classID, adaID, teacherID, hasard.ResponseVeryGood, now.Add(-2*time.Hour))
	mustCreateLog(t, db, classID, adaID, teacherID, hasard.ResponseGood, now.Add(-24*time.Hour))
	mustCreateLog(t, db, classID, adaID, teacherID, hasard.ResponseNoGood, now.Add(-48*time.Hour))
	mustCreateLog(t, db, classID, blaiseID, teacherID, hasard.ResponseAbsent, now.Add(-time.Hour))
	// outside the 7 day window.
	mustCreateLog(t, db, classID, adaID, teacherID, hasard.ResponseVeryGood, now.Add(-30*24*time.Hour))

	agg, err := svc.Aggregate(testContext(), classID, testWindow(7))
	assert.NoError(t, err)
	assert.Len(t, agg.PerStudent, 2)

	// roster order: Lovelace before Pascal.
	ada := agg.PerStudent[0]
	assert.Equal(t, adaID, ada.Student.ID)
	assert.Equal(t, hasard.Counters{VeryGood: 2, Good: 1, NoGood: 1}, ada.Counters)

	blaise := agg.PerStudent[1]
	assert.Equal(t, blaiseID, blaise.Student.ID)
	assert.Equal(t, hasard.Counters{Absent: 1}, blaise.Counters)

	assert.Equal(t, hasard.Counters{VeryGood: 2, Good: 1, NoGood: 1, Absent: 1}, agg.ClassWide)
}

func TestAggregateIncludesInactiveStudents(t *testing.T) {
	db := MustOpenDB(t)
	classID, _, adaID, blaiseID := testClass(t, db)
	svc := NewEngagementService(db)

	agg, err := svc.Aggregate(testContext(), classID, testWindow(600))
	assert.NoError(t, err)
	assert.Len(t, agg.PerStudent, 2)
	for _, sc := range agg.PerStudent {
		assert.Zero(t, sc.Sorties())
	}
	assert.Contains(t, []int{adaID, blaiseID}, agg.PerStudent[0].Student.ID)
	assert.Zero(t, agg.ClassWide.Sorties())
}

func TestAggregateScopedToClass(t *testing.T) {
	db := MustOpenDB(t)
	classID, teacherID, adaID, _ := testClass(t, db)
	svc := NewEngagementService(db)

	otherClass := mustCreateClass(t, db, "2026", "B")
	otherStudent := mustCreateStudent(t, db, otherClass, "Grace", "Hopper")
	mustCreateLog(t, db, otherClass, otherStudent, teacherID, hasard.ResponseVeryGood, time.Now().UTC())
	mustCreateLog(t, db, classID, adaID, teacherID, hasard.ResponseGood, time.Now().UTC())

	agg, err := svc.Aggregate(testContext(), classID, testWindow(7))
	assert.NoError(t, err)
	assert.Len(t, agg.PerStudent, 2)
	assert.Equal(t, hasard.Counters{Good: 1}, agg.ClassWide)
}

func TestAggregateIgnoresLogsRecordedUnderOtherClass(t *testing.T) {
	db := MustOpenDB(t)
	classID, teacherID, adaID, _ := testClass(t, db)
	svc := NewEngagementService(db)

	// a log recorded under another class id stays out of this class's
	// counters even when it references a roster member.
	otherClass := mustCreateClass(t, db, "2026", "B")
	mustCreateLog(t, db, otherClass, adaID, teacherID, hasard.ResponseGood, time.Now().UTC())

	agg, err := svc.Aggregate(testContext(), classID, testWindow(7))
	assert.NoError(t, err)
	assert.Zero(t, agg.ClassWide.Sorties())
	for _, sc := range agg.PerStudent {
		assert.Zero(t, sc.Sorties())
	}
}
