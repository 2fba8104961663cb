package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	hasard "github.com/hasard-app/hasard-api"
)

// MustOpenDB opens a fresh migrated database backed by a per-test file.
func MustOpenDB(t *testing.T) *DB {
	t.Helper()

	db := NewDB(filepath.Join(t.TempDir(), "hasard_test.db"))
	if err := db.Open(); err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close database: %v", err)
		}
	})
	return db
}

func mustCreateClass(t *testing.T, db *DB, year, section string) int {
	t.Helper()

	res, err := db.db.Exec(`INSERT INTO classes (year, section) VALUES (?, ?)`, year, section)
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

func mustCreateUser(t *testing.T, db *DB, username, password string, perm int, classIDs ...int) int {
	t.Helper()

	usr := hasard.User{Username: username}
	if err := usr.SetPassword(password); err != nil {
		t.Fatalf("set password: %v", err)
	}

	res, err := db.db.Exec(`
		INSERT INTO users (username, password_hash, perm) VALUES (?, ?, ?)
	`, username, usr.PasswordHash, perm)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	id, _ := res.LastInsertId()

	for _, classID := range classIDs {
		if _, err := db.db.Exec(`
			INSERT INTO user_classes (user_id, class_id) VALUES (?, ?)
		`, id, classID); err != nil {
			t.Fatalf("link user class: %v", err)
		}
	}
	return int(id)
}

func mustCreateStudent(t *testing.T, db *DB, classID int, firstName, lastName string) int {
	t.Helper()

	res, err := db.db.Exec(`
		INSERT INTO students (first_name, last_name, class_id) VALUES (?, ?, ?)
	`, firstName, lastName, classID)
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

func mustCreateLog(t *testing.T, db *DB, classID, studentID, userID, response int, at time.Time) int {
	t.Helper()

	res, err := db.db.Exec(`
		INSERT INTO response_logs (
			recorded_at, response, remark, recorder_user_id, student_id, class_id
		) VALUES (?, ?, NULL, ?, ?, ?)
	`, at.UTC(), response, userID, studentID, classID)
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

// testClass seeds a class with one teacher and two students and returns the
// relevant ids.
func testClass(t *testing.T, db *DB) (classID, teacherID, adaID, blaiseID int) {
	t.Helper()

	classID = mustCreateClass(t, db, "2026", "A")
	teacherID = mustCreateUser(t, db, "teacher", "s3cret", hasard.PermTeacher, classID)
	adaID = mustCreateStudent(t, db, classID, "Ada", "Lovelace")
	blaiseID = mustCreateStudent(t, db, classID, "Blaise", "Pascal")
	return classID, teacherID, adaID, blaiseID
}

func testWindow(days int) hasard.TimeWindow {
	now := time.Now().UTC()
	return hasard.TimeWindow{
		Key:   "test",
		Start: now.Add(-time.Duration(days) * 24 * time.Hour),
		End:   now,
		Days:  days,
	}
}

func testContext() context.Context {
	return context.Background()
}
