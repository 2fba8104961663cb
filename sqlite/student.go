package sqlite

import (
	"context"
	"database/sql"

	hasard "github.com/hasard-app/hasard-api"
)

var _ hasard.StudentService = (*StudentService)(nil)

// StudentService manages class rosters.
type StudentService struct {
	db *DB
}

// NewStudentService creates a new student service with the provided database.
func NewStudentService(db *DB) *StudentService {
	return &StudentService{db: db}
}

// FindStudentsByClass returns the full roster of a class in roster order.
func (s *StudentService) FindStudentsByClass(ctx context.Context, classID int) ([]hasard.Student, error) {
	tx, cancel, err := s.db.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer tx.Rollback()

	return findStudentsByClass(ctx, tx, classID)
}

// PickRandom draws one student uniformly at random from the full roster,
// ignoring any time window. The draw is delegated to sqlite's RANDOM() so
// every call is independent of the previous ones.
//
// returns ENOTFOUND when the roster is empty.
func (s *StudentService) PickRandom(ctx context.Context, classID int) (hasard.Student, error) {
	tx, cancel, err := s.db.begin(ctx)
	if err != nil {
		return hasard.Student{}, err
	}
	defer cancel()
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT
			id,
			first_name,
			last_name,
			class_id
		FROM students
		WHERE class_id = ?
		ORDER BY RANDOM()
		LIMIT 1
	`,
		classID,
	)

	var stud hasard.Student
	err = row.Scan(
		&stud.ID,
		&stud.FirstName,
		&stud.LastName,
		&stud.ClassID,
	)
	if err == sql.ErrNoRows {
		return hasard.Student{}, hasard.Errorf(hasard.ENOTFOUND, "class roster is empty")
	} else if err != nil {
		return hasard.Student{}, err
	}

	return stud, nil
}

func findStudentsByClass(ctx context.Context, tx *sql.Tx, classID int) ([]hasard.Student, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT
			id,
			first_name,
			last_name,
			class_id
		FROM students
		WHERE class_id = ?
		ORDER BY last_name, first_name, id
	`,
		classID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []hasard.Student
	for rows.Next() {
		var stud hasard.Student
		if err := rows.Scan(&stud.ID, &stud.FirstName, &stud.LastName, &stud.ClassID); err != nil {
			return nil, err
		}
		students = append(students, stud)
	}
	return students, rows.Err()
}
