package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	hasard "github.com/hasard-app/hasard-api"
)

// registerAuthRoutes registers the session lifecycle routes.
func (s *Server) registerAuthRoutes(r chi.Router) {
	r.Get("/csrf", s.handleCSRF)
	r.Post("/login", s.handleLogin)
	r.With(s.requireSession).Post("/logout", s.handleLogout)
	r.With(s.requireSession).Get("/me", s.handleMe)
}

// GET "/csrf"
//
// handleCSRF issues (or returns) the anti-forgery token bound to the
// caller's session.
func (s *Server) handleCSRF(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	SendData(w, r, map[string]string{"csrf": sess.CSRFToken()})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST "/login"
//
// handleLogin verifies the credentials and promotes the caller's session.
// The session id is rotated so an attacker-fixated pre-login cookie stops
// referencing the authenticated record.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendErr(w, r, hasard.Errorf(hasard.EINVALID, "decode: invalid request body"))
		return
	}

	old := sessionFromRequest(r)
	sess := s.sessions.Create()
	if err := s.Auth.Login(r.Context(), sess, req.Username, req.Password); err != nil {
		s.sessions.Delete(sess.ID)
		s.sendErr(w, r, err)
		return
	}
	s.sessions.Delete(old.ID)
	http.SetCookie(w, s.sessionCookie(sess.ID, int(hasard.SessionLifetime.Seconds())))

	SendData(w, r, map[string]interface{}{
		"user": map[string]interface{}{
			"id":       sess.UserID,
			"username": sess.Username,
			"perm":     sess.Perm,
		},
		"classes":        sess.Classes,
		"selected_class": sess.SelectedClass,
		"csrf":           sess.CSRFToken(),
	})
}

// POST "/logout"
//
// handleLogout destroys the session and expires the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	s.sessions.Delete(sess.ID)
	s.Auth.Logout(sess)
	http.SetCookie(w, s.sessionCookie("", -1))

	SendData(w, r, map[string]string{"message": "logged out"})
}

// GET "/me"
//
// handleMe returns the current user, accessible classes and selected class.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	SendData(w, r, map[string]interface{}{
		"user": map[string]interface{}{
			"id":       sess.UserID,
			"username": sess.Username,
			"perm":     sess.Perm,
		},
		"classes":        sess.Classes,
		"selected_class": sess.SelectedClass,
		"csrf":           sess.CSRFToken(),
	})
}
