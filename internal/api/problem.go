package api

import (
	"encoding/json"
	"net/http"

	"github.com/hyperengineering/stride/internal/validation"
)

// Problem represents an RFC 7807 Problem Details response.
type Problem struct {
	Type     string                  `json:"type"`
	Title    string                  `json:"title"`
	Status   int                     `json:"status"`
	Detail   string                  `json:"detail"`
	Instance string                  `json:"instance,omitempty"`
	Errors   []validation.FieldError `json:"errors,omitempty"`
}

// problemTypes maps HTTP status codes to RFC 7807 type URIs and titles.
var problemTypes = map[int]struct {
	typeURI string
	title   string
}{
	http.StatusUnauthorized: {
		typeURI: "https://stride.dev/errors/unauthorized",
		title:   "Unauthorized",
	},
	http.StatusBadRequest: {
		typeURI: "https://stride.dev/errors/bad-request",
		title:   "Bad Request",
	},
	http.StatusUnprocessableEntity: {
		typeURI: "https://stride.dev/errors/validation-error",
		title:   "Validation Error",
	},
	http.StatusInternalServerError: {
		typeURI: "https://stride.dev/errors/internal-error",
		title:   "Internal Server Error",
	},
	http.StatusServiceUnavailable: {
		typeURI: "https://stride.dev/errors/service-unavailable",
		title:   "Service Unavailable",
	},
}

// WriteProblem writes an RFC 7807 Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblemBody(w, r, Problem{Status: status, Detail: detail})
}

// WriteValidationProblem writes a 422 Problem carrying field errors.
func WriteValidationProblem(w http.ResponseWriter, r *http.Request, detail string, errs []validation.FieldError) {
	writeProblemBody(w, r, Problem{
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Errors: errs,
	})
}

func writeProblemBody(w http.ResponseWriter, r *http.Request, p Problem) {
	pt, ok := problemTypes[p.Status]
	if !ok {
		pt = struct {
			typeURI string
			title   string
		}{
			typeURI: "https://stride.dev/errors/unknown",
			title:   http.StatusText(p.Status),
		}
	}
	p.Type = pt.typeURI
	p.Title = pt.title
	p.Instance = r.URL.Path

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	json.NewEncoder(w).Encode(p)
}
