package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	hasard "github.com/hasard-app/hasard-api"
)

// registerStudentRoutes registers the read-only student views.
func (s *Server) registerStudentRoutes(r chi.Router) {
	r.Use(s.requireStudent, s.requireClass)

	r.Get("/", s.handleStudentView)
	r.Get("/logs", s.handleStudentLogs)
}

// GET "/student[?window=key]"
//
// handleStudentView returns the class stats and the roster ranked both by
// point and by sorties for the student's class.
func (s *Server) handleStudentView(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	classID := sess.ClassID()
	window := hasard.ResolveWindow(r.URL.Query().Get("window"))

	agg, err := s.EngagementService.Aggregate(r.Context(), classID, window)
	if err != nil {
		s.sendErr(w, r, err)
		return
	}

	SendData(w, r, map[string]interface{}{
		"time_filter": map[string]interface{}{
			"key":       window.Key,
			"label":     window.Label,
			"available": hasard.AvailableWindows(),
		},
		"stats":               agg.ClassWide.Stats(),
		"students_by_points":  hasard.Rank(agg.PerStudent, agg.ClassWide, hasard.SortByPoint),
		"students_by_sorties": hasard.Rank(agg.PerStudent, agg.ClassWide, hasard.SortBySorties),
	})
}

// GET "/student/logs?page=n"
//
// handleStudentLogs returns one page of the class response log for the
// student's class.
func (s *Server) handleStudentLogs(w http.ResponseWriter, r *http.Request) {
	s.handleLogsPage(w, r)
}
