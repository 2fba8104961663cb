package http

import (
	"encoding/json"
	"log"
	"net/http"

	hasard "github.com/hasard-app/hasard-api"
)

// response is the envelope of every JSON payload sent over http.
type response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SendData sends data wrapped in the success envelope.
func SendData(w http.ResponseWriter, r *http.Request, data interface{}) {
	if err := WriteJSON(w, response{Success: true, Data: data}); err != nil {
		LogError(r, err)
	}
}

// sendErr sends the err over http and logs internal errors. Internal error
// details are replaced by a generic message unless the server runs in debug
// mode.
func (s *Server) sendErr(w http.ResponseWriter, r *http.Request, err error) {
	code, message := hasard.ErrorCode(err), hasard.ErrorMessage(err)

	if code == hasard.EINTERNAL {
		LogError(r, err)
		if s.Debug {
			message = err.Error()
		} else {
			message = "internal error"
		}
	}

	w.WriteHeader(FromErrorCodeToStatus(code))
	if err := WriteJSON(w, response{Success: false, Error: message}); err != nil {
		LogError(r, err)
	}
}

func LogError(r *http.Request, err error) {
	log.Printf("[HTTP] error: %s %s: %s\n", r.URL.Path, r.Method, err)
}

func WriteJSON(w http.ResponseWriter, data interface{}) error {
	enc := json.NewEncoder(w)
	return enc.Encode(data)
}

var codes = map[string]int{
	hasard.ECONFLICT:     http.StatusConflict,
	hasard.EINVALID:      http.StatusBadRequest,
	hasard.ENOTFOUND:     http.StatusNotFound,
	hasard.EFORBIDDEN:    http.StatusForbidden,
	hasard.EUNAUTHORIZED: http.StatusUnauthorized,
	hasard.EINTERNAL:     http.StatusInternalServerError,
}

// FromErrorCodeToStatus maps a hasard error code to a http status code, if no
// mapping is possible status code 500 is returned.
func FromErrorCodeToStatus(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// FromStatusToErrorCode maps a http status code to a hasard error code, if no
// mapping is possible hasard.EINTERNAL is returned.
func FromStatusToErrorCode(code int) string {
	for k, v := range codes {
		if v == code {
			return k
		}
	}
	return hasard.EINTERNAL
}
