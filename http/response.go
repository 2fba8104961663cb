package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	hasard "github.com/hasard-app/hasard-api"
)

// registerResponseRoutes registers response recording and the cold-call
// pick.
func (s *Server) registerResponseRoutes(r chi.Router) {
	r.With(s.requireSession, s.requireClass, s.requireTeacher, s.requireCSRF).
		Post("/responses", s.handleRecordResponse)
	r.With(s.requireSession, s.requireClass).
		Get("/random-student", s.handleRandomStudent)
}

type recordResponseRequest struct {
	StudentID int    `json:"student_id"`
	ClassID   int    `json:"class_id"`
	Response  int    `json:"response"`
	Remark    string `json:"remark"`
}

// POST "/responses"
//
// handleRecordResponse appends one response event for a student. The class
// defaults to the session's selected class; an explicit class id must still
// be accessible to the caller.
func (s *Server) handleRecordResponse(w http.ResponseWriter, r *http.Request) {
	var req recordResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendErr(w, r, hasard.Errorf(hasard.EINVALID, "decode: invalid request body"))
		return
	}

	sess := sessionFromRequest(r)
	classID := sess.ClassID()
	if req.ClassID != 0 {
		if _, ok := sess.Class(req.ClassID); !ok {
			s.sendErr(w, r, hasard.Errorf(hasard.EUNAUTHORIZED, "class not accessible"))
			return
		}
		classID = req.ClassID
	}

	// the student must be enrolled in the class the event is recorded under.
	roster, err := s.StudentService.FindStudentsByClass(r.Context(), classID)
	if err != nil {
		s.sendErr(w, r, err)
		return
	}
	enrolled := false
	for _, stud := range roster {
		if stud.ID == req.StudentID {
			enrolled = true
			break
		}
	}
	if !enrolled {
		s.sendErr(w, r, hasard.Errorf(hasard.ENOTFOUND, "student not enrolled in class"))
		return
	}

	entry := hasard.LogEntry{
		StudentID:      req.StudentID,
		RecorderUserID: sess.UserID,
		ClassID:        classID,
		Response:       req.Response,
		Remark:         req.Remark,
	}
	if err := s.LogService.CreateLog(r.Context(), &entry); err != nil {
		s.sendErr(w, r, err)
		return
	}

	// fan the event out to the live dashboard subscribers.
	s.feed.publish(entry)

	SendData(w, r, map[string]interface{}{
		"log":        entry,
		"updated_at": entry.Timestamp,
	})
}

// GET "/random-student"
//
// handleRandomStudent draws one student from the full roster of the
// selected class. The pick ignores any active time window and keeps no
// history: immediate repeats are expected.
func (s *Server) handleRandomStudent(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	pick, err := s.StudentService.PickRandom(r.Context(), sess.ClassID())
	if err != nil {
		s.sendErr(w, r, err)
		return
	}

	SendData(w, r, pick)
}
