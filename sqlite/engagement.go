package sqlite

import (
	"context"

	hasard "github.com/hasard-app/hasard-api"
)

var _ hasard.EngagementService = (*EngagementService)(nil)

// EngagementService recomputes windowed engagement counters from the full
// response log on every call. Nothing is cached or incrementally maintained.
type EngagementService struct {
	db *DB
}

// NewEngagementService creates a new engagement service with the provided
// database.
func NewEngagementService(db *DB) *EngagementService {
	return &EngagementService{db: db}
}

// Aggregate counts the responses of every student of classID recorded in
// [window.Start, window.End] inclusive. The roster drives the result: a
// student with no matching events still appears with zero counters. The
// class-wide counters are the sum over the roster.
func (s *EngagementService) Aggregate(ctx context.Context, classID int, window hasard.TimeWindow) (hasard.ClassEngagement, error) {
	tx, cancel, err := s.db.begin(ctx)
	if err != nil {
		return hasard.ClassEngagement{}, err
	}
	defer cancel()
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT
			s.id,
			s.first_name,
			s.last_name,
			s.class_id,
			COALESCE(SUM(CASE WHEN r.response = 3 THEN 1 ELSE 0 END), 0) AS vgood,
			COALESCE(SUM(CASE WHEN r.response = 2 THEN 1 ELSE 0 END), 0) AS good,
			COALESCE(SUM(CASE WHEN r.response = 1 THEN 1 ELSE 0 END), 0) AS nogood,
			COALESCE(SUM(CASE WHEN r.response = 0 THEN 1 ELSE 0 END), 0) AS absent
		FROM students s
		LEFT JOIN response_logs r
			ON r.student_id = s.id
			AND r.class_id = ?
			AND r.recorded_at >= ?
			AND r.recorded_at <= ?
		WHERE s.class_id = ?
		GROUP BY s.id
		ORDER BY s.last_name, s.first_name, s.id
	`,
		classID,
		window.Start.UTC(),
		window.End.UTC(),
		classID,
	)
	if err != nil {
		return hasard.ClassEngagement{}, err
	}
	defer rows.Close()

	var agg hasard.ClassEngagement
	for rows.Next() {
		var sc hasard.StudentCounters
		err := rows.Scan(
			&sc.Student.ID,
			&sc.FirstName,
			&sc.LastName,
			&sc.ClassID,
			&sc.VeryGood,
			&sc.Good,
			&sc.NoGood,
			&sc.Absent,
		)
		if err != nil {
			return hasard.ClassEngagement{}, err
		}

		agg.PerStudent = append(agg.PerStudent, sc)
		agg.ClassWide.Add(sc.Counters)
	}
	if err := rows.Err(); err != nil {
		return hasard.ClassEngagement{}, err
	}

	return agg, nil
}
