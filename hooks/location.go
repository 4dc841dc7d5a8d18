package hooks

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	"rental_frontend/errors"
)

type LocationAPI interface {
	GetProvinces(ctx context.Context) ([]domain.Province, error)
	GetWards(ctx context.Context, provinceCode string) ([]domain.Ward, error)
	SearchProvinces(ctx context.Context, keyword string) ([]domain.Province, error)
	SearchWards(ctx context.Context, provinceCode, keyword string) ([]domain.Ward, error)
}

type LocationState struct {
	LoadingProvinces bool              `json:"loading_provinces"`
	LoadingWards     bool              `json:"loading_wards"`
	Error            string            `json:"error,omitempty"`
	Provinces        []domain.Province `json:"provinces"`
	Wards            []domain.Ward     `json:"wards"`
}

// LocationHook tracks provinces and wards with separate loading flags so a
// ward lookup does not blank the province picker.
type LocationHook struct {
	base
	api          LocationAPI
	loadingWards bool
	provinces    []domain.Province
	wards        []domain.Ward
}

func NewLocationHook(api LocationAPI, logger *logrus.Logger) *LocationHook {
	h := &LocationHook{
		api:       api,
		provinces: []domain.Province{},
		wards:     []domain.Ward{},
	}
	h.init(logger)
	return h
}

func (h *LocationHook) State() LocationState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return LocationState{
		LoadingProvinces: h.loading,
		LoadingWards:     h.loadingWards,
		Error:            h.err,
		Provinces:        h.provinces,
		Wards:            h.wards,
	}
}

func (h *LocationHook) Subscribe(fn func(LocationState)) func() {
	return h.subscribe(func() { fn(h.State()) })
}

func (h *LocationHook) FetchProvinces(ctx context.Context) ([]domain.Province, error) {
	return h.loadProvinces(ctx, errors.FetchProvincesError, h.api.GetProvinces)
}

// SearchProvinces falls back to the full list for a blank keyword.
func (h *LocationHook) SearchProvinces(ctx context.Context, keyword string) ([]domain.Province, error) {
	if strings.TrimSpace(keyword) == "" {
		return h.FetchProvinces(ctx)
	}
	return h.loadProvinces(ctx, errors.SearchProvincesError, func(ctx context.Context) ([]domain.Province, error) {
		return h.api.SearchProvinces(ctx, keyword)
	})
}

// FetchWards clears the list without a request when no province is chosen.
func (h *LocationHook) FetchWards(ctx context.Context, provinceCode string) ([]domain.Ward, error) {
	if provinceCode == "" {
		h.mu.Lock()
		h.wards = []domain.Ward{}
		h.mu.Unlock()
		h.notify()
		return []domain.Ward{}, nil
	}
	return h.loadWards(ctx, errors.FetchWardsError, func(ctx context.Context) ([]domain.Ward, error) {
		return h.api.GetWards(ctx, provinceCode)
	})
}

func (h *LocationHook) SearchWards(ctx context.Context, provinceCode, keyword string) ([]domain.Ward, error) {
	if strings.TrimSpace(keyword) == "" {
		return h.FetchWards(ctx, provinceCode)
	}
	return h.loadWards(ctx, errors.SearchWardsError, func(ctx context.Context) ([]domain.Ward, error) {
		return h.api.SearchWards(ctx, provinceCode, keyword)
	})
}

func (h *LocationHook) loadProvinces(ctx context.Context, fallback string, fetch func(context.Context) ([]domain.Province, error)) ([]domain.Province, error) {
	h.begin(&h.loading)

	provinces, err := fetch(ctx)
	if err != nil {
		return nil, h.fail(&h.loading, err, fallback, nil)
	}

	h.succeed(&h.loading, func() { h.provinces = provinces })
	return provinces, nil
}

// A failed ward lookup empties the list rather than leaving another
// province's wards on screen.
func (h *LocationHook) loadWards(ctx context.Context, fallback string, fetch func(context.Context) ([]domain.Ward, error)) ([]domain.Ward, error) {
	h.begin(&h.loadingWards)

	wards, err := fetch(ctx)
	if err != nil {
		return nil, h.fail(&h.loadingWards, err, fallback, func() { h.wards = []domain.Ward{} })
	}

	h.succeed(&h.loadingWards, func() { h.wards = wards })
	return wards, nil
}
