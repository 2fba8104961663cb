package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	hasard "github.com/hasard-app/hasard-api"
)

// registerDashboardRoutes registers the teacher dashboard routes.
func (s *Server) registerDashboardRoutes(r chi.Router) {
	r.Use(s.requireSession, s.requireClass, s.requireTeacher)

	r.Get("/", s.handleDashboard)
	r.Get("/logs", s.handleDashboardLogs)
	r.Get("/feed", s.handleDashboardFeed)
}

// GET "/dashboard[?window=key]"
//
// handleDashboard returns the ranked roster, class-wide stats and a cold
// call pick for the selected class over the requested window.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	classID := sess.ClassID()
	window := hasard.ResolveWindow(r.URL.Query().Get("window"))

	agg, err := s.EngagementService.Aggregate(r.Context(), classID, window)
	if err != nil {
		s.sendErr(w, r, err)
		return
	}
	ranked := hasard.Rank(agg.PerStudent, agg.ClassWide, hasard.SortByPoint)

	pick, err := s.StudentService.PickRandom(r.Context(), classID)
	if err != nil && hasard.ErrorCode(err) != hasard.ENOTFOUND {
		s.sendErr(w, r, err)
		return
	}

	class, _ := sess.Class(classID)
	SendData(w, r, map[string]interface{}{
		"time_filter": map[string]interface{}{
			"key":       window.Key,
			"label":     window.Label,
			"available": hasard.AvailableWindows(),
		},
		"class":          class,
		"stats":          agg.ClassWide.Stats(),
		"students":       ranked,
		"random_student": pick,
	})
}

// GET "/dashboard/logs?page=n"
//
// handleDashboardLogs returns one page of the class response log, newest
// first.
func (s *Server) handleDashboardLogs(w http.ResponseWriter, r *http.Request) {
	s.handleLogsPage(w, r)
}

// handleLogsPage serves a log page for the session's selected class. Shared
// by the teacher and student log surfaces, which differ only in their
// guards.
func (s *Server) handleLogsPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	classID := sess.ClassID()

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.sendErr(w, r, hasard.Errorf(hasard.EINVALID, "invalid page number format"))
			return
		}
		page = hasard.ClampPage(n)
	}

	count, err := s.LogService.CountLogs(r.Context(), classID)
	if err != nil {
		s.sendErr(w, r, err)
		return
	}

	logs, err := s.LogService.Page(r.Context(), classID, page, hasard.LogPageSize)
	if err != nil {
		s.sendErr(w, r, err)
		return
	}

	SendData(w, r, map[string]interface{}{
		"logs": logs,
		"pagination": map[string]int{
			"total_logs":   count,
			"current_page": page,
			"per_page":     hasard.LogPageSize,
			"total_pages":  hasard.TotalPages(count, hasard.LogPageSize),
		},
	})
}
