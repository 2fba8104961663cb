package sqlite

import (
	"context"
	"database/sql"
	"time"

	hasard "github.com/hasard-app/hasard-api"
)

var _ hasard.LogService = (*LogService)(nil)

// LogService records and reads response events.
type LogService struct {
	db *DB
}

// NewLogService creates a new log service with the provided database.
func NewLogService(db *DB) *LogService {
	return &LogService{db: db}
}

// CreateLog appends one response event as a single atomic insert and
// populates e.ID and e.Timestamp.
func (s *LogService) CreateLog(ctx context.Context, e *hasard.LogEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	tx, cancel, err := s.db.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer tx.Rollback()

	e.Timestamp = time.Now().UTC()

	var remark sql.NullString
	if e.Remark != "" {
		remark = sql.NullString{String: e.Remark, Valid: true}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO response_logs (
			recorded_at,
			response,
			remark,
			recorder_user_id,
			student_id,
			class_id
		) VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.Timestamp,
		e.Response,
		remark,
		e.RecorderUserID,
		e.StudentID,
		e.ClassID,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = int(id)

	return tx.Commit()
}

// CountLogs returns the number of events recorded for a class.
func (s *LogService) CountLogs(ctx context.Context, classID int) (int, error) {
	tx, cancel, err := s.db.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer cancel()
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM response_logs WHERE class_id = ?
	`,
		classID,
	).Scan(&count)

	return count, err
}

// Page returns one page of events for a class, newest first by timestamp
// then by id. Page numbers below 1 are treated as 1; pages beyond the last
// come back empty rather than erroring.
func (s *LogService) Page(ctx context.Context, classID, page, size int) ([]hasard.LogEntry, error) {
	page = hasard.ClampPage(page)
	if size <= 0 {
		size = hasard.LogPageSize
	}

	tx, cancel, err := s.db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT
			r.id,
			r.recorded_at,
			r.response,
			r.remark,
			r.recorder_user_id,
			r.student_id,
			r.class_id,
			s.first_name,
			s.last_name
		FROM response_logs r
		INNER JOIN students s ON s.id = r.student_id
		WHERE r.class_id = ?
		ORDER BY r.recorded_at DESC, r.id DESC
		LIMIT ? OFFSET ?
	`,
		classID,
		size,
		(page-1)*size,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []hasard.LogEntry{}
	for rows.Next() {
		var (
			e      hasard.LogEntry
			remark sql.NullString
		)
		err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.Response,
			&remark,
			&e.RecorderUserID,
			&e.StudentID,
			&e.ClassID,
			&e.FirstName,
			&e.LastName,
		)
		if err != nil {
			return nil, err
		}
		e.Remark = remark.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
