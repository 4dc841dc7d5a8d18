package hooks

import (
	"context"

	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	"rental_frontend/errors"
	application "rental_frontend/service"
)

type ProfileAPI interface {
	GetProfile(ctx context.Context) (*application.ProfileResult, error)
	UpdateProfile(ctx context.Context, changes domain.Profile) (*application.ProfileResult, error)
}

type ProfileState struct {
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
	Profile domain.Profile `json:"profile"`
}

type ProfileHook struct {
	base
	api     ProfileAPI
	profile domain.Profile
}

func NewProfileHook(api ProfileAPI, logger *logrus.Logger) *ProfileHook {
	h := &ProfileHook{api: api}
	h.init(logger)
	return h
}

func (h *ProfileHook) State() ProfileState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return ProfileState{Loading: h.loading, Error: h.err, Profile: h.profile}
}

func (h *ProfileHook) Subscribe(fn func(ProfileState)) func() {
	return h.subscribe(func() { fn(h.State()) })
}

func (h *ProfileHook) FetchProfile(ctx context.Context) (*application.ProfileResult, error) {
	h.begin(&h.loading)

	result, err := h.api.GetProfile(ctx)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchProfileError, nil)
	}

	h.succeed(&h.loading, func() { h.profile = result.Profile })
	return result, nil
}

// UpdateProfile lays the returned profile over the cached one. Keys the
// server leaves out of its reply keep their old local value even if the
// server changed them.
func (h *ProfileHook) UpdateProfile(ctx context.Context, changes domain.Profile) (*application.ProfileResult, error) {
	h.begin(&h.loading)

	result, err := h.api.UpdateProfile(ctx, changes)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.UpdateProfileError, nil)
	}

	h.succeed(&h.loading, func() { h.profile = h.profile.Merge(result.Profile) })
	return result, nil
}
