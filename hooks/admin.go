package hooks

import (
	"context"

	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	"rental_frontend/errors"
	application "rental_frontend/service"
)

type AdminAPI interface {
	CreateAdmin(ctx context.Context, input domain.AdminRegistration) (*application.MessageResult, error)
	GetAllUsers(ctx context.Context, filters domain.Filters) (*application.UserList, error)
	GetUserByID(ctx context.Context, id string) (*application.UserResult, error)
	GetAllContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error)
}

type AdminState struct {
	Loading     bool               `json:"loading"`
	Error       string             `json:"error,omitempty"`
	Users       []domain.AdminUser `json:"users"`
	CurrentUser *domain.AdminUser  `json:"current_user"`
	Contracts   []domain.Contract  `json:"contracts"`
	Pagination  domain.Pagination  `json:"pagination"`
}

type AdminHook struct {
	base
	api         AdminAPI
	users       []domain.AdminUser
	currentUser *domain.AdminUser
	contracts   []domain.Contract
	pagination  domain.Pagination
}

func NewAdminHook(api AdminAPI, logger *logrus.Logger) *AdminHook {
	h := &AdminHook{
		api:        api,
		users:      []domain.AdminUser{},
		contracts:  []domain.Contract{},
		pagination: domain.Pagination{Page: 1},
	}
	h.init(logger)
	return h
}

func (h *AdminHook) State() AdminState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return AdminState{
		Loading:     h.loading,
		Error:       h.err,
		Users:       h.users,
		CurrentUser: h.currentUser,
		Contracts:   h.contracts,
		Pagination:  h.pagination,
	}
}

func (h *AdminHook) Subscribe(fn func(AdminState)) func() {
	return h.subscribe(func() { fn(h.State()) })
}

func (h *AdminHook) CreateAdmin(ctx context.Context, input domain.AdminRegistration) (*application.MessageResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	h.begin(&h.loading)

	result, err := h.api.CreateAdmin(ctx, input)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.CreateAdminError, nil)
	}

	h.succeed(&h.loading, nil)
	return result, nil
}

func (h *AdminHook) FetchUsers(ctx context.Context, filters domain.Filters) (*application.UserList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetAllUsers(ctx, filters)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchUsersError, nil)
	}

	h.succeed(&h.loading, func() {
		h.users = list.Users
		if list.Pagination != nil {
			h.pagination = *list.Pagination
		}
	})
	return list, nil
}

func (h *AdminHook) FetchUserByID(ctx context.Context, id string) (*application.UserResult, error) {
	h.begin(&h.loading)

	result, err := h.api.GetUserByID(ctx, id)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchUserError, nil)
	}

	h.succeed(&h.loading, func() { h.currentUser = result.User })
	return result, nil
}

func (h *AdminHook) FetchContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetAllContracts(ctx, filters)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchContractsError, nil)
	}

	h.succeed(&h.loading, func() {
		h.contracts = list.Contracts
		if list.Total > 0 {
			h.pagination.Total = list.Total
		}
	})
	return list, nil
}
