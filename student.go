package hasard

import "context"

// Student is a member of a class roster.
type Student struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ClassID   int    `json:"class_id"`
}

// StudentService represents a service which manages class rosters.
type StudentService interface {
	// FindStudentsByClass returns the full roster of a class in roster order
	// (last name, first name, id).
	FindStudentsByClass(ctx context.Context, classID int) ([]Student, error)

	// PickRandom draws one student uniformly at random from the full roster,
	// deliberately ignoring any active time window: a cold call is about
	// calling on someone right now, not about the filtered report. Calls are
	// independent, immediate repeats are possible.
	//
	// Returns ENOTFOUND when the roster is empty.
	PickRandom(ctx context.Context, classID int) (Student, error)
}
