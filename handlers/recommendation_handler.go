package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/errors"
	"rental_frontend/hooks"
)

type RecommendationHandler struct {
	recommendations *hooks.RecommendationsHook
	tracer          trace.Tracer
}

func NewRecommendationHandler(recommendations *hooks.RecommendationsHook, tracer trace.Tracer) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, tracer: tracer}
}

func (handler *RecommendationHandler) Init(router *mux.Router) {
	router.HandleFunc("/recommendations", handler.List).Methods(http.MethodGet)
}

func (handler *RecommendationHandler) List(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "RecommendationHandler.List")
	defer span.End()

	if _, err := handler.recommendations.FetchRecommendations(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchRecommendedError, handler.recommendations.State())
		return
	}
	state := handler.recommendations.State()
	jsonResponse(newView(state.Loading, state.Error, state), writer)
}
