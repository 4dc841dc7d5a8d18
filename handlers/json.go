package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"rental_frontend/client"
	"rental_frontend/domain"
	"rental_frontend/errors"
)

// userSource is the part of the session store pages read to decide which
// actions they offer.
type userSource interface {
	CurrentUser() *domain.UserSummary
}

// PageView is the body of every page: the owning hook's flags plus the data
// the page shows. A nil Error renders as null.
type PageView struct {
	Loading bool        `json:"loading"`
	Error   *string     `json:"error"`
	Data    interface{} `json:"data"`
}

func newView(loading bool, message string, data interface{}) PageView {
	view := PageView{Loading: loading, Data: data}
	if message != "" {
		view.Error = &message
	}
	return view
}

func jsonResponse(object interface{}, w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, object)
}

func writeJSON(w http.ResponseWriter, status int, object interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(object); err != nil {
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
	}
}

// errorResponse renders a failed operation. The status follows the error
// kind: the server's own status, 400 for local validation, 502 when the
// backend could not be reached.
func errorResponse(w http.ResponseWriter, err error, fallback string, data interface{}) {
	writeJSON(w, statusFor(err), newView(false, client.MessageOf(err, fallback), data))
}

func statusFor(err error) int {
	switch client.KindOf(err) {
	case client.KindValidation:
		return http.StatusBadRequest
	case client.KindServer:
		return client.StatusOf(err)
	case client.KindNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decodeBody(req *http.Request, out interface{}) error {
	decoder := json.NewDecoder(req.Body)
	return decoder.Decode(out)
}

func invalidBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, newView(false, errors.InvalidRequestFormat, nil))
}

func pathID(req *http.Request) string {
	return mux.Vars(req)["id"]
}

// safeRedirect only follows local paths so ?from= cannot send the user off
// site. Browsers read "/\host" like "//host", so both are refused.
func safeRedirect(target, fallback string) string {
	if len(target) == 0 || target[0] != '/' {
		return fallback
	}
	if len(target) > 1 && (target[1] == '/' || target[1] == '\\') {
		return fallback
	}
	if strings.ContainsAny(target, "\r\n\t") {
		return fallback
	}
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return fallback
	}
	return target
}
