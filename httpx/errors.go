package httpx

import (
	"errors"
	"net/http"

	"github.com/mbolis/formpilot/fault"
	"github.com/mbolis/formpilot/log"
)

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
	Route  string   `json:"route,omitempty"`
}

func StatusOf(err error) int {
	switch fault.KindOf(err) {
	case fault.Validation, fault.Credentials, fault.Conflict:
		return http.StatusBadRequest
	case fault.Unauthenticated:
		return http.StatusUnauthorized
	case fault.Forbidden, fault.Authorization:
		return http.StatusForbidden
	case fault.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error classifies err and writes the matching JSON failure.
// Unclassified errors are logged under code and hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, code string, err error) {
	var f *fault.Fault
	if !errors.As(err, &f) || f.Kind == fault.Internal {
		LogInternalError(w, r, code, err)
		return
	}

	status := StatusOf(err)
	log.Debugf("%s: %s", code, err)
	JSON(w, r, status, ErrorBody{Error: f.Message, Errors: f.Details})
}

// Will log an error, and send a JSON response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	JSON(w, r, http.StatusInternalServerError, ErrorBody{Error: http.StatusText(http.StatusInternalServerError)})
}

// Will log a debug message, and send a JSON response with status 404
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, msg string) {
	log.Debugf("%s: not found (%s)", code, r.URL.Path)
	JSON(w, r, http.StatusNotFound, ErrorBody{Error: msg, Route: r.URL.Path})
}

// Will log an error code and message at the given level,
// and send a JSON response with the given status and message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string) {
	log.Log(level, code+":", msg)
	JSON(w, r, status, ErrorBody{Error: msg})
}
