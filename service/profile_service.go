package application

import (
	"context"

	"rental_frontend/domain"
)

type ProfileService struct {
	api Requester
}

func NewProfileService(api Requester) *ProfileService {
	return &ProfileService{
		api: api,
	}
}

func (service *ProfileService) GetProfile(ctx context.Context) (*ProfileResult, error) {
	raw, err := service.api.Get(ctx, "/profile", nil)
	if err != nil {
		return nil, err
	}
	return profileResult(raw)
}

// UpdateProfile sends only the changed keys.
func (service *ProfileService) UpdateProfile(ctx context.Context, changes domain.Profile) (*ProfileResult, error) {
	raw, err := service.api.Put(ctx, "/profile/edit-profile", changes)
	if err != nil {
		return nil, err
	}
	return profileResult(raw)
}

func profileResult(raw []byte) (*ProfileResult, error) {
	result := &ProfileResult{Raw: raw, Message: messageResult(raw).Message}
	if err := fieldOrRaw(raw, "profile", &result.Profile); err != nil {
		return nil, err
	}
	if result.Profile == nil {
		result.Profile = domain.Profile{}
	}
	return result, nil
}
