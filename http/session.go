package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	hasard "github.com/hasard-app/hasard-api"
)

// SessionCookie is the name of the HTTP-only session cookie.
const SessionCookie = "hasard_session"

// csrfHeader transports the anti-forgery token on state-mutating calls.
const csrfHeader = "X-CSRF-Token"

type contextKey int

const sessionContextKey contextKey = 1

// SessionStore holds the server-side session records. Sessions are
// per-user, never shared across users, so a single mutex around the map is
// all the locking the store needs.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*hasard.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*hasard.Session)}
}

// Get returns the live session with the provided id, expiring it on the way
// if it outlived its lifetime.
func (st *SessionStore) Get(id string) (*hasard.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(sess.CreatedAt) > hasard.SessionLifetime {
		delete(st.sessions, id)
		return nil, false
	}
	return sess, true
}

// Create registers a fresh anonymous session under a new random id.
func (st *SessionStore) Create() *hasard.Session {
	sess := &hasard.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.ID] = sess
	return sess
}

// Delete drops the session with the provided id.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// withSession makes sure every request runs with a server-side session,
// creating an anonymous one (and setting the cookie) when the client doesn't
// present a live session id. The session record is mutated in place by the
// handlers; there is nothing to persist back afterwards.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *hasard.Session
		if c, err := r.Cookie(SessionCookie); err == nil {
			sess, _ = s.sessions.Get(c.Value)
		}
		if sess == nil {
			sess = s.sessions.Create()
			http.SetCookie(w, s.sessionCookie(sess.ID, int(hasard.SessionLifetime.Seconds())))
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionFromRequest returns the session loaded by withSession.
func sessionFromRequest(r *http.Request) *hasard.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*hasard.Session)
	return sess
}

// requireSession guards a subtree behind an authenticated session.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hasard.RequireAuthenticated(sessionFromRequest(r)); err != nil {
			s.sendErr(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireClass guards a subtree behind a selected class.
func (s *Server) requireClass(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hasard.RequireClassSelected(sessionFromRequest(r)); err != nil {
			s.sendErr(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireTeacher guards a subtree behind teacher permission.
func (s *Server) requireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hasard.RequirePermission(sessionFromRequest(r), hasard.PermTeacher); err != nil {
			s.sendErr(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireStudent guards the student views: they are read-only surfaces
// reserved for the student role.
func (s *Server) requireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromRequest(r)
		if err := hasard.RequireAuthenticated(sess); err != nil {
			s.sendErr(w, r, err)
			return
		}
		if sess.Perm != hasard.PermStudent {
			s.sendErr(w, r, hasard.Errorf(hasard.EFORBIDDEN, "student access only"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireCSRF validates the anti-forgery token of a state-mutating call
// before any side-effecting work begins. Read-only routes never use it.
func (s *Server) requireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromRequest(r)
		if !sess.ValidateCSRF(r.Header.Get(csrfHeader)) {
			s.sendErr(w, r, hasard.Errorf(hasard.EFORBIDDEN, "invalid csrf token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
