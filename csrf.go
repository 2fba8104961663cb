package hasard

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

// csrfTokenBytes is the entropy of a token before hex encoding.
const csrfTokenBytes = 32

// CSRFToken returns the session's anti-forgery token, generating one if the
// session doesn't hold one yet. Idempotent until RegenerateCSRF is called.
func (s *Session) CSRFToken() string {
	if s.csrfToken == "" {
		buf := make([]byte, csrfTokenBytes)
		if _, err := rand.Read(buf); err != nil {
			// rand.Read only fails when the OS entropy source is broken.
			panic("hasard: csrf token generation: " + err.Error())
		}
		s.csrfToken = hex.EncodeToString(buf)
	}
	return s.csrfToken
}

// ValidateCSRF compares token against the session's stored token in constant
// time. It never errors: a session without a token, or an absent/malformed
// supplied token, simply fails validation.
func (s *Session) ValidateCSRF(token string) bool {
	if s == nil || s.csrfToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.csrfToken), []byte(token)) == 1
}

// RegenerateCSRF discards the current token and issues a new one. Called on
// every privilege escalation (login) to prevent token fixation.
func (s *Session) RegenerateCSRF() string {
	s.csrfToken = ""
	return s.CSRFToken()
}
