package hasard

import (
	"context"
	"time"
)

// Lifetime of an authenticated session, enforced by the transport layer's
// session store and the session cookie alike.
const SessionLifetime = 24 * time.Hour

// Session is the authenticated-session record. It is created on login,
// mutated in place by the SessionAuthority only and destroyed on logout.
// The transport layer owns loading/persisting it per request.
type Session struct {
	ID       string `json:"-"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Perm     int    `json:"perm"`

	// Classes the session may act on, in roster order.
	Classes []Class `json:"classes"`

	// SelectedClass, when non nil, is always a member of Classes.
	SelectedClass *int `json:"selected_class"`

	// Anti-forgery token, never serialized. See csrf.go.
	csrfToken string

	CreatedAt time.Time `json:"-"`
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

// ClassSelected reports whether a class is currently selected.
func (s *Session) ClassSelected() bool {
	return s.Authenticated() && s.SelectedClass != nil
}

// ClassID returns the selected class id. It is only meaningful after a
// successful RequireClassSelected check.
func (s *Session) ClassID() int {
	if s == nil || s.SelectedClass == nil {
		return 0
	}
	return *s.SelectedClass
}

// Class returns the accessible class with the given id.
func (s *Session) Class(id int) (Class, bool) {
	for _, c := range s.Classes {
		if c.ID == id {
			return c, true
		}
	}
	return Class{}, false
}

// RequireAuthenticated guards an operation behind a logged-in session.
func RequireAuthenticated(s *Session) error {
	if !s.Authenticated() {
		return Errorf(EUNAUTHORIZED, "authentication required")
	}
	return nil
}

// RequireClassSelected guards an operation behind a selected class.
func RequireClassSelected(s *Session) error {
	if err := RequireAuthenticated(s); err != nil {
		return err
	}
	if s.SelectedClass == nil {
		return Errorf(EFORBIDDEN, "no class selected")
	}
	return nil
}

// RequirePermission guards an operation behind a minimum permission level.
func RequirePermission(s *Session, level int) error {
	if err := RequireAuthenticated(s); err != nil {
		return err
	}
	if s.Perm < level {
		return Errorf(EFORBIDDEN, "insufficient permission")
	}
	return nil
}

// SessionAuthority owns the session state machine:
// Anonymous -> AuthenticatedNoClass -> AuthenticatedWithClass -> Anonymous.
type SessionAuthority struct {
	users UserService
}

// NewSessionAuthority creates a session authority backed by the provided
// user service.
func NewSessionAuthority(users UserService) *SessionAuthority {
	return &SessionAuthority{users: users}
}

// Login verifies the credentials and populates s with the user's identity
// and accessible classes. A user with exactly one accessible class, or with
// a non-teacher permission level, gets that class auto-selected so the
// session lands directly in the AuthenticatedWithClass state.
//
// The CSRF token is regenerated on success to prevent token fixation across
// the privilege change.
func (a *SessionAuthority) Login(ctx context.Context, s *Session, username, password string) error {
	if username == "" || password == "" {
		return Errorf(EINVALID, "username and password are required")
	}

	usr, err := a.users.FindUserByUsername(ctx, username)
	if ErrorCode(err) == ENOTFOUND {
		return Errorf(EUNAUTHORIZED, "incorrect username or password")
	} else if err != nil {
		return err
	}
	if !usr.CheckPassword(password) {
		return Errorf(EUNAUTHORIZED, "incorrect username or password")
	}

	s.UserID = usr.ID
	s.Username = usr.Username
	s.Perm = usr.Perm
	s.Classes = usr.Classes
	s.SelectedClass = nil
	s.RegenerateCSRF()

	if len(usr.Classes) > 0 && (len(usr.Classes) == 1 || !usr.IsTeacher()) {
		id := usr.Classes[0].ID
		s.SelectedClass = &id
	}
	return nil
}

// SelectClass sets the selected class on the session. The class must be a
// member of the session's accessible classes, otherwise the session is left
// untouched.
func (a *SessionAuthority) SelectClass(s *Session, classID int) error {
	if err := RequireAuthenticated(s); err != nil {
		return err
	}
	if _, ok := s.Class(classID); !ok {
		return Errorf(EUNAUTHORIZED, "class not accessible")
	}
	s.SelectedClass = &classID
	return nil
}

// ClearClass unsets the selected class, reverting the session to the
// AuthenticatedNoClass state.
func (a *SessionAuthority) ClearClass(s *Session) error {
	if err := RequireAuthenticated(s); err != nil {
		return err
	}
	s.SelectedClass = nil
	return nil
}

// Logout destroys the session in place, invalidating its CSRF token with it.
// The transport layer is responsible for dropping the stored record and
// expiring the cookie.
func (a *SessionAuthority) Logout(s *Session) {
	*s = Session{}
}
