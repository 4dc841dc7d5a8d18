package hooks

import (
	"context"

	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	"rental_frontend/errors"
	application "rental_frontend/service"
)

type RecommendationsAPI interface {
	GetRecommendedPosts(ctx context.Context) (*application.RecommendationList, error)
}

type RecommendationsState struct {
	Loading         bool                `json:"loading"`
	Error           string              `json:"error,omitempty"`
	Recommendations []domain.RentalPost `json:"recommendations"`
}

type RecommendationsHook struct {
	base
	api             RecommendationsAPI
	recommendations []domain.RentalPost
}

func NewRecommendationsHook(api RecommendationsAPI, logger *logrus.Logger) *RecommendationsHook {
	h := &RecommendationsHook{api: api, recommendations: []domain.RentalPost{}}
	h.init(logger)
	return h
}

func (h *RecommendationsHook) State() RecommendationsState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return RecommendationsState{Loading: h.loading, Error: h.err, Recommendations: h.recommendations}
}

func (h *RecommendationsHook) Subscribe(fn func(RecommendationsState)) func() {
	return h.subscribe(func() { fn(h.State()) })
}

func (h *RecommendationsHook) FetchRecommendations(ctx context.Context) (*application.RecommendationList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetRecommendedPosts(ctx)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchRecommendedError, nil)
	}

	h.succeed(&h.loading, func() { h.recommendations = list.Recommendations })
	return list, nil
}
