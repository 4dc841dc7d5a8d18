package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/domain"
	"rental_frontend/errors"
	"rental_frontend/hooks"
)

type AdminHandler struct {
	admin  *hooks.AdminHook
	tracer trace.Tracer
}

func NewAdminHandler(admin *hooks.AdminHook, tracer trace.Tracer) *AdminHandler {
	return &AdminHandler{admin: admin, tracer: tracer}
}

func (handler *AdminHandler) Init(router *mux.Router) {
	router.HandleFunc("/admin/users", handler.Users).Methods(http.MethodGet)
	router.HandleFunc("/admin/users/{id}", handler.User).Methods(http.MethodGet)
	router.HandleFunc("/admin/contracts", handler.Contracts).Methods(http.MethodGet)
	router.HandleFunc("/admin/create", handler.CreatePage).Methods(http.MethodGet)
	router.HandleFunc("/admin/create", handler.Create).Methods(http.MethodPost)
}

func (handler *AdminHandler) render(writer http.ResponseWriter) {
	state := handler.admin.State()
	jsonResponse(newView(state.Loading, state.Error, state), writer)
}

func (handler *AdminHandler) Users(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.Users")
	defer span.End()

	if _, err := handler.admin.FetchUsers(ctx, domain.FiltersFromQuery(req.URL.Query())); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchUsersError, handler.admin.State())
		return
	}
	handler.render(writer)
}

func (handler *AdminHandler) User(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.User")
	defer span.End()

	if _, err := handler.admin.FetchUserByID(ctx, pathID(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchUserError, handler.admin.State())
		return
	}
	handler.render(writer)
}

func (handler *AdminHandler) Contracts(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.Contracts")
	defer span.End()

	if _, err := handler.admin.FetchContracts(ctx, domain.FiltersFromQuery(req.URL.Query())); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchContractsError, handler.admin.State())
		return
	}
	handler.render(writer)
}

func (handler *AdminHandler) CreatePage(writer http.ResponseWriter, req *http.Request) {
	jsonResponse(newView(false, "", nil), writer)
}

func (handler *AdminHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AdminHandler.Create")
	defer span.End()

	var input domain.AdminRegistration
	if err := decodeBody(req, &input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	result, err := handler.admin.CreateAdmin(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.CreateAdminError, nil)
		return
	}
	writeJSON(writer, http.StatusCreated, newView(false, "", map[string]string{"message": result.Message}))
}
