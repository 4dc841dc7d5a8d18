package application

import (
	"context"
	"net/url"

	"rental_frontend/domain"
)

type AdminService struct {
	api Requester
}

func NewAdminService(api Requester) *AdminService {
	return &AdminService{
		api: api,
	}
}

func (service *AdminService) CreateAdmin(ctx context.Context, input domain.AdminRegistration) (*MessageResult, error) {
	raw, err := service.api.Post(ctx, "/admins/create", input)
	if err != nil {
		return nil, err
	}
	return messageResult(raw), nil
}

func (service *AdminService) GetAllUsers(ctx context.Context, filters domain.Filters) (*UserList, error) {
	raw, err := service.api.Get(ctx, "/admins/users", filters.Values())
	if err != nil {
		return nil, err
	}
	users, err := listField[domain.AdminUser](raw, "users", false)
	if err != nil {
		return nil, err
	}
	return &UserList{Users: users, Pagination: pagination(raw), Raw: raw}, nil
}

func (service *AdminService) GetUserByID(ctx context.Context, id string) (*UserResult, error) {
	raw, err := service.api.Get(ctx, "/admins/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var user domain.AdminUser
	if err := fieldOrRaw(raw, "user", &user); err != nil {
		return nil, err
	}
	return &UserResult{User: &user, Raw: raw}, nil
}

func (service *AdminService) GetAllContracts(ctx context.Context, filters domain.Filters) (*ContractList, error) {
	raw, err := service.api.Get(ctx, "/admins/contracts", filters.Values())
	if err != nil {
		return nil, err
	}
	return contractList(raw)
}
