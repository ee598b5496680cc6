package httpx

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/render"
	"github.com/mbolis/formpilot/fault"
	"github.com/pkg/errors"
)

var reBearer = regexp.MustCompile(`(?i)^bearer\s+`)

// Decode reads a JSON body, or a urlencoded one when the client says so.
func Decode(r *http.Request, v any) error {
	var err error
	if render.GetRequestContentType(r) == render.ContentTypeForm {
		err = render.DecodeForm(r.Body, v)
	} else {
		err = render.DecodeJSON(r.Body, v)
	}
	if err != nil {
		return fault.Wrap(fault.Validation, "Malformed Request Body.", errors.Wrap(err, "decode body"))
	}
	return nil
}

// BearerToken returns the token of the Authorization header, and whether
// the header was sent at all.
func BearerToken(r *http.Request) (token string, present bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", false
	}
	return strings.TrimSpace(reBearer.ReplaceAllLiteralString(header, "")), true
}
