package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/errors"
	"rental_frontend/hooks"
)

// LocationHandler backs the province and ward pickers. Both routes are
// public.
type LocationHandler struct {
	locations *hooks.LocationHook
	tracer    trace.Tracer
}

func NewLocationHandler(locations *hooks.LocationHook, tracer trace.Tracer) *LocationHandler {
	return &LocationHandler{locations: locations, tracer: tracer}
}

func (handler *LocationHandler) Init(router *mux.Router) {
	router.HandleFunc("/locations/provinces", handler.Provinces).Methods(http.MethodGet)
	router.HandleFunc("/locations/wards", handler.Wards).Methods(http.MethodGet)
}

func (handler *LocationHandler) Provinces(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "LocationHandler.Provinces")
	defer span.End()

	keyword := req.URL.Query().Get("keyword")
	if _, err := handler.locations.SearchProvinces(ctx, keyword); err != nil {
		span.SetStatus(codes.Error, err.Error())
		fallback := errors.FetchProvincesError
		if keyword != "" {
			fallback = errors.SearchProvincesError
		}
		errorResponse(writer, err, fallback, handler.locations.State())
		return
	}
	state := handler.locations.State()
	jsonResponse(newView(state.LoadingProvinces, state.Error, state), writer)
}

func (handler *LocationHandler) Wards(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "LocationHandler.Wards")
	defer span.End()

	query := req.URL.Query()
	keyword := query.Get("keyword")
	if _, err := handler.locations.SearchWards(ctx, query.Get("province_code"), keyword); err != nil {
		span.SetStatus(codes.Error, err.Error())
		fallback := errors.FetchWardsError
		if keyword != "" {
			fallback = errors.SearchWardsError
		}
		errorResponse(writer, err, fallback, handler.locations.State())
		return
	}
	state := handler.locations.State()
	jsonResponse(newView(state.LoadingWards, state.Error, state), writer)
}
