package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	hasard "github.com/hasard-app/hasard-api"
)

// registerChartRoutes registers the chart data routes consumed by the
// frontend renderers.
func (s *Server) registerChartRoutes(r chi.Router) {
	r.Use(s.requireSession, s.requireClass, s.requireTeacher)

	r.Get("/pie", s.handlePieChart)
	r.Get("/bar", s.handleBarChart)
}

// GET "/charts/pie[?window=key]"
//
// handlePieChart returns the class-wide response breakdown as a pie series.
func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	window := hasard.ResolveWindow(r.URL.Query().Get("window"))

	agg, err := s.EngagementService.Aggregate(r.Context(), sess.ClassID(), window)
	if err != nil {
		s.sendErr(w, r, err)
		return
	}

	cw := agg.ClassWide
	SendData(w, r, map[string]interface{}{
		"labels": []string{"Very good", "Good", "No good", "Absent"},
		"data":   []int{cw.VeryGood, cw.Good, cw.NoGood, cw.Absent},
	})
}

// GET "/charts/bar[?window=key&sort=point|sorties]"
//
// handleBarChart returns one label/value pair per student, sorted like the
// roster view.
func (s *Server) handleBarChart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	window := hasard.ResolveWindow(r.URL.Query().Get("window"))

	key := hasard.SortByPoint
	title := "Class point ranking"
	if r.URL.Query().Get("sort") == "sorties" {
		key = hasard.SortBySorties
		title = "Class sortie ranking"
	}

	agg, err := s.EngagementService.Aggregate(r.Context(), sess.ClassID(), window)
	if err != nil {
		s.sendErr(w, r, err)
		return
	}
	ranked := hasard.Rank(agg.PerStudent, agg.ClassWide, key)

	labels := make([]string, len(ranked))
	data := make([]int, len(ranked))
	for i, rs := range ranked {
		label := rs.FirstName
		if initials := []rune(rs.LastName); len(initials) > 0 {
			label += " " + string(initials[0])
		}
		labels[i] = label

		if key == hasard.SortBySorties {
			data[i] = rs.Sorties
		} else {
			data[i] = rs.Point
		}
	}

	SendData(w, r, map[string]interface{}{
		"title":  title,
		"labels": labels,
		"data":   data,
	})
}
