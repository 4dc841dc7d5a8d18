package application

import (
	"context"
	"net/url"

	"rental_frontend/domain"
)

type LocationService struct {
	api Requester
}

func NewLocationService(api Requester) *LocationService {
	return &LocationService{
		api: api,
	}
}

func (service *LocationService) GetProvinces(ctx context.Context) ([]domain.Province, error) {
	raw, err := service.api.Get(ctx, "/locations/provinces", nil)
	if err != nil {
		return nil, err
	}
	return listField[domain.Province](raw, "provinces", false)
}

func (service *LocationService) GetWards(ctx context.Context, provinceCode string) ([]domain.Ward, error) {
	query := url.Values{"province_code": {provinceCode}}
	raw, err := service.api.Get(ctx, "/locations/wards", query)
	if err != nil {
		return nil, err
	}
	return listField[domain.Ward](raw, "wards", false)
}

func (service *LocationService) SearchProvinces(ctx context.Context, keyword string) ([]domain.Province, error) {
	query := url.Values{"keyword": {keyword}}
	raw, err := service.api.Get(ctx, "/locations/search-province", query)
	if err != nil {
		return nil, err
	}
	return listField[domain.Province](raw, "provinces", false)
}

func (service *LocationService) SearchWards(ctx context.Context, provinceCode, keyword string) ([]domain.Ward, error) {
	query := domain.Filters{"province_code": provinceCode, "keyword": keyword}.Values()
	raw, err := service.api.Get(ctx, "/locations/search-ward", query)
	if err != nil {
		return nil, err
	}
	return listField[domain.Ward](raw, "wards", false)
}
