package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"rental_frontend/authorization"
	"rental_frontend/domain"
	"rental_frontend/session"
)

// DashboardHandler serves the three role landing pages. The guard has
// already checked the role by the time a handler runs.
type DashboardHandler struct {
	sessions *session.Store
	policy   *authorization.RolePolicy
}

type dashboard struct {
	User       *domain.UserSummary `json:"user"`
	Navigation []string            `json:"navigation"`
}

func NewDashboardHandler(sessions *session.Store, policy *authorization.RolePolicy) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, policy: policy}
}

func (handler *DashboardHandler) Init(router *mux.Router) {
	router.HandleFunc("/admin", handler.Dashboard).Methods(http.MethodGet)
	router.HandleFunc("/landlord", handler.Dashboard).Methods(http.MethodGet)
	router.HandleFunc("/tenant", handler.Dashboard).Methods(http.MethodGet)
}

func (handler *DashboardHandler) Dashboard(writer http.ResponseWriter, req *http.Request) {
	user := handler.sessions.CurrentUser()
	var role domain.Role
	if user != nil {
		role = user.Role
	}
	jsonResponse(newView(false, "", dashboard{
		User:       user,
		Navigation: handler.policy.Navigation(role),
	}), writer)
}
