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

type ProfileHandler struct {
	profile *hooks.ProfileHook
	tracer  trace.Tracer
}

type profileForm struct {
	Profile domain.Profile        `json:"profile"`
	Details domain.ProfileDetails `json:"details"`
}

func NewProfileHandler(profile *hooks.ProfileHook, tracer trace.Tracer) *ProfileHandler {
	return &ProfileHandler{profile: profile, tracer: tracer}
}

func (handler *ProfileHandler) Init(router *mux.Router) {
	router.HandleFunc("/profile", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/profile/edit", handler.EditPage).Methods(http.MethodGet)
	router.HandleFunc("/profile/edit", handler.Edit).Methods(http.MethodPost)
}

func (handler *ProfileHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.Get")
	defer span.End()

	if _, err := handler.profile.FetchProfile(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchProfileError, handler.profile.State())
		return
	}

	state := handler.profile.State()
	jsonResponse(newView(state.Loading, state.Error, state), writer)
}

func (handler *ProfileHandler) EditPage(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.EditPage")
	defer span.End()

	result, err := handler.profile.FetchProfile(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchProfileError, nil)
		return
	}

	form := profileForm{Profile: result.Profile}
	if err := result.Profile.Decode(&form.Details); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchProfileError, nil)
		return
	}
	jsonResponse(newView(false, "", form), writer)
}

func (handler *ProfileHandler) Edit(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ProfileHandler.Edit")
	defer span.End()

	var changes domain.Profile
	if err := decodeBody(req, &changes); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	if _, err := handler.profile.UpdateProfile(ctx, changes); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.UpdateProfileError, handler.profile.State())
		return
	}

	state := handler.profile.State()
	jsonResponse(newView(state.Loading, state.Error, state), writer)
}
