package hasard

import (
	"context"
	"time"
)

// Response categories recorded per sortie. A category maps 1:1 onto the
// Counters fields.
const (
	ResponseAbsent   = 0
	ResponseNoGood   = 1
	ResponseGood     = 2
	ResponseVeryGood = 3
)

// LogPageSize is the fixed page size of the historical response log.
const LogPageSize = 100

// LogEntry is one recorded teacher-evaluated interaction. Entries are
// append-only and immutable once written.
type LogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	StudentID int    `json:"student_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// RecorderUserID identifies the user who recorded the response.
	RecorderUserID int `json:"recorder_user_id"`

	ClassID  int    `json:"class_id"`
	Response int    `json:"response"`
	Remark   string `json:"remark,omitempty"`
}

// Validate checks the fields required to record a new entry.
func (e *LogEntry) Validate() error {
	if e.StudentID == 0 {
		return Errorf(EINVALID, "student id is required")
	}
	if e.Response < ResponseAbsent || e.Response > ResponseVeryGood {
		return Errorf(EINVALID, "response code must be between 0 and 3")
	}
	return nil
}

// LogService represents a service which records and reads response events.
type LogService interface {
	// CreateLog appends one response event. The write is a single atomic
	// insert; e.ID and e.Timestamp are populated on success.
	CreateLog(ctx context.Context, e *LogEntry) error

	// CountLogs returns the number of events recorded for a class.
	CountLogs(ctx context.Context, classID int) (int, error)

	// Page returns one fixed-size page of events for a class, newest first
	// by timestamp then by id. Page numbers below 1 are treated as 1; pages
	// beyond the last return an empty list.
	Page(ctx context.Context, classID, page, size int) ([]LogEntry, error)
}

// TotalPages returns the number of pages needed for count entries, at
// minimum 1 even when count is 0.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 1
	}
	pages := (count + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage normalizes a caller-supplied page number: values below 1 are
// treated as 1. Out-of-range high values are left alone, an empty page is
// not an error.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
