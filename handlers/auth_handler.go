package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/authorization"
	"rental_frontend/domain"
	"rental_frontend/errors"
	"rental_frontend/session"
)

type AuthHandler struct {
	sessions *session.Store
	tracer   trace.Tracer
	logger   *logrus.Logger
}

func NewAuthHandler(sessions *session.Store, tracer trace.Tracer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		tracer:   tracer,
		logger:   logger,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/", handler.Root).Methods(http.MethodGet)
	router.HandleFunc("/login", handler.LoginPage).Methods(http.MethodGet)
	router.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/register/tenant", handler.RegisterPage).Methods(http.MethodGet)
	router.HandleFunc("/register/tenant", handler.RegisterTenant).Methods(http.MethodPost)
	router.HandleFunc("/register/landlord", handler.RegisterPage).Methods(http.MethodGet)
	router.HandleFunc("/register/landlord", handler.RegisterLandlord).Methods(http.MethodPost)
	router.HandleFunc("/forgot-password", handler.ForgotPasswordPage).Methods(http.MethodGet)
	router.HandleFunc("/forgot-password", handler.ForgotPassword).Methods(http.MethodPost)
	router.HandleFunc("/reset-password", handler.ResetPasswordPage).Methods(http.MethodGet)
	router.HandleFunc("/reset-password", handler.ResetPassword).Methods(http.MethodPost)
	router.HandleFunc("/logout", handler.Logout).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(authorization.UnauthorizedPath, handler.Unauthorized).Methods(http.MethodGet)
}

type loginForm struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type authResult struct {
	User     *domain.UserSummary `json:"user"`
	Redirect string              `json:"redirect"`
}

func dashboardPath(role domain.Role) string {
	if role.Valid() {
		return "/" + string(role)
	}
	return authorization.LoginPath
}

func (handler *AuthHandler) Root(writer http.ResponseWriter, req *http.Request) {
	http.Redirect(writer, req, authorization.LoginPath, http.StatusFound)
}

func (handler *AuthHandler) LoginPage(writer http.ResponseWriter, req *http.Request) {
	jsonResponse(newView(false, "", map[string]interface{}{
		"from":          req.URL.Query().Get("from"),
		"authenticated": handler.sessions.IsAuthenticated(),
		"roles":         []domain.Role{domain.Tenant, domain.Landlord, domain.Admin},
	}), writer)
}

func (handler *AuthHandler) Login(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Login")
	defer span.End()

	var form loginForm
	if err := decodeBody(req, &form); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	response, err := handler.sessions.Login(ctx, form.Email, form.Password, form.Role)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.LoginError, nil)
		return
	}

	handler.logger.WithField("role", response.User.Role).Info("user logged in")
	from := req.URL.Query().Get("from")
	jsonResponse(newView(false, "", authResult{
		User:     response.User,
		Redirect: safeRedirect(from, dashboardPath(response.User.Role)),
	}), writer)
}

func (handler *AuthHandler) RegisterPage(writer http.ResponseWriter, req *http.Request) {
	jsonResponse(newView(false, "", nil), writer)
}

func (handler *AuthHandler) RegisterTenant(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.RegisterTenant")
	defer span.End()

	var form domain.TenantRegistration
	if err := decodeBody(req, &form); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	response, err := handler.sessions.RegisterTenant(ctx, form)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.RegisterError, nil)
		return
	}

	jsonResponse(newView(false, "", authResult{User: response.User, Redirect: dashboardPath(domain.Tenant)}), writer)
}

func (handler *AuthHandler) RegisterLandlord(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.RegisterLandlord")
	defer span.End()

	var form domain.LandlordRegistration
	if err := decodeBody(req, &form); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	response, err := handler.sessions.RegisterLandlord(ctx, form)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.RegisterError, nil)
		return
	}

	jsonResponse(newView(false, "", authResult{User: response.User, Redirect: dashboardPath(domain.Landlord)}), writer)
}

func (handler *AuthHandler) ForgotPasswordPage(writer http.ResponseWriter, req *http.Request) {
	jsonResponse(newView(false, "", nil), writer)
}

func (handler *AuthHandler) ForgotPassword(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.ForgotPassword")
	defer span.End()

	var form domain.ForgotPasswordInput
	if err := decodeBody(req, &form); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	result, err := handler.sessions.ForgotPassword(ctx, form.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.ForgotPasswordError, nil)
		return
	}

	jsonResponse(newView(false, "", map[string]string{"message": result.Message}), writer)
}

func (handler *AuthHandler) ResetPasswordPage(writer http.ResponseWriter, req *http.Request) {
	jsonResponse(newView(false, "", map[string]string{"token": req.URL.Query().Get("token")}), writer)
}

func (handler *AuthHandler) ResetPassword(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.ResetPassword")
	defer span.End()

	var form domain.ResetPasswordInput
	if err := decodeBody(req, &form); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}
	if form.Token == "" {
		form.Token = req.URL.Query().Get("token")
	}

	result, err := handler.sessions.ResetPassword(ctx, form)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.ResetPasswordError, nil)
		return
	}

	jsonResponse(newView(false, "", map[string]string{
		"message":  result.Message,
		"redirect": authorization.LoginPath,
	}), writer)
}

func (handler *AuthHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	handler.sessions.Logout(req.Context())
	http.Redirect(writer, req, authorization.LoginPath, http.StatusFound)
}

func (handler *AuthHandler) Unauthorized(writer http.ResponseWriter, req *http.Request) {
	user := handler.sessions.CurrentUser()
	back := authorization.LoginPath
	if user != nil {
		back = dashboardPath(user.Role)
	}
	writeJSON(writer, http.StatusForbidden, newView(false, "", map[string]string{"back": back}))
}
