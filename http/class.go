package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	hasard "github.com/hasard-app/hasard-api"
)

// registerClassRoutes registers the class selection routes.
func (s *Server) registerClassRoutes(r chi.Router) {
	r.Use(s.requireSession)

	r.With(s.requireCSRF).Post("/{id}/select", s.handleSelectClass)
	r.With(s.requireCSRF).Post("/clear", s.handleClearClass)
}

// POST "/classes/{id}/select"
//
// handleSelectClass sets the selected class on the session. The class must
// be one of the session's accessible classes.
func (s *Server) handleSelectClass(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.sendErr(w, r, hasard.Errorf(hasard.EINVALID, "invalid class id format"))
		return
	}

	sess := sessionFromRequest(r)
	if err := s.Auth.SelectClass(sess, id); err != nil {
		s.sendErr(w, r, err)
		return
	}

	class, _ := sess.Class(id)
	SendData(w, r, map[string]interface{}{
		"class_id": id,
		"year":     class.Year,
		"section":  class.Section,
	})
}

// POST "/classes/clear"
//
// handleClearClass unsets the selected class, sending a teacher back to the
// class choice state.
func (s *Server) handleClearClass(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	if err := s.Auth.ClearClass(sess); err != nil {
		s.sendErr(w, r, err)
		return
	}

	SendData(w, r, map[string]interface{}{"selected_class": nil})
}
