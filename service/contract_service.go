package application

import (
	"context"
	"net/url"

	"rental_frontend/domain"
)

type ContractService struct {
	api Requester
}

func NewContractService(api Requester) *ContractService {
	return &ContractService{
		api: api,
	}
}

func (service *ContractService) CreateContract(ctx context.Context, input domain.ContractInput) (*ContractResult, error) {
	raw, err := service.api.Post(ctx, "/contracts", input)
	if err != nil {
		return nil, err
	}
	return contractResult(raw)
}

func (service *ContractService) GetMyContracts(ctx context.Context, filters domain.Filters) (*ContractList, error) {
	return service.list(ctx, "/contracts/my/contracts", filters)
}

func (service *ContractService) GetLandlordContracts(ctx context.Context, filters domain.Filters) (*ContractList, error) {
	return service.list(ctx, "/contracts/landlord/contracts", filters)
}

// GetAllContracts is the admin listing.
func (service *ContractService) GetAllContracts(ctx context.Context, filters domain.Filters) (*ContractList, error) {
	return service.list(ctx, "/contracts", filters)
}

func (service *ContractService) GetContractByID(ctx context.Context, id string) (*ContractResult, error) {
	raw, err := service.api.Get(ctx, contractPath(id), nil)
	if err != nil {
		return nil, err
	}
	return contractResult(raw)
}

func (service *ContractService) UpdateContract(ctx context.Context, id string, input domain.ContractUpdate) (*ContractResult, error) {
	raw, err := service.api.Put(ctx, contractPath(id), input)
	if err != nil {
		return nil, err
	}
	return contractResult(raw)
}

func (service *ContractService) TerminateContract(ctx context.Context, id string) (*ContractResult, error) {
	raw, err := service.api.Put(ctx, contractPath(id)+"/terminate", nil)
	if err != nil {
		return nil, err
	}
	return contractResult(raw)
}

func (service *ContractService) DeleteContract(ctx context.Context, id string) (*MessageResult, error) {
	raw, err := service.api.Delete(ctx, contractPath(id))
	if err != nil {
		return nil, err
	}
	return messageResult(raw), nil
}

func (service *ContractService) list(ctx context.Context, path string, filters domain.Filters) (*ContractList, error) {
	raw, err := service.api.Get(ctx, path, filters.Values())
	if err != nil {
		return nil, err
	}
	return contractList(raw)
}

func contractPath(id string) string {
	return "/contracts/" + url.PathEscape(id)
}

func contractList(raw []byte) (*ContractList, error) {
	contracts, err := listField[domain.Contract](raw, "contracts", false)
	if err != nil {
		return nil, err
	}
	return &ContractList{Contracts: contracts, Total: total(raw), Raw: raw}, nil
}

func contractResult(raw []byte) (*ContractResult, error) {
	var contract domain.Contract
	if err := fieldOrRaw(raw, "contract", &contract); err != nil {
		return nil, err
	}
	return &ContractResult{Contract: &contract, Raw: raw}, nil
}
