package hooks

import (
	"context"

	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	"rental_frontend/errors"
	application "rental_frontend/service"
)

type ContractsAPI interface {
	CreateContract(ctx context.Context, input domain.ContractInput) (*application.ContractResult, error)
	GetMyContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error)
	GetLandlordContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error)
	GetAllContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error)
	GetContractByID(ctx context.Context, id string) (*application.ContractResult, error)
	UpdateContract(ctx context.Context, id string, input domain.ContractUpdate) (*application.ContractResult, error)
	TerminateContract(ctx context.Context, id string) (*application.ContractResult, error)
	DeleteContract(ctx context.Context, id string) (*application.MessageResult, error)
}

type ContractsState struct {
	Loading           bool              `json:"loading"`
	Error             string            `json:"error,omitempty"`
	Contracts         []domain.Contract `json:"contracts"`
	MyContracts       []domain.Contract `json:"my_contracts"`
	LandlordContracts []domain.Contract `json:"landlord_contracts"`
	CurrentContract   *domain.Contract  `json:"current_contract"`
	Pagination        domain.Pagination `json:"pagination"`
}

type contractList int

const (
	myContracts contractList = iota
	landlordContracts
)

type ContractsHook struct {
	base
	api               ContractsAPI
	contracts         []domain.Contract
	myContracts       []domain.Contract
	landlordContracts []domain.Contract
	currentContract   *domain.Contract
	pagination        domain.Pagination
}

func NewContractsHook(api ContractsAPI, logger *logrus.Logger) *ContractsHook {
	h := &ContractsHook{
		api:               api,
		contracts:         []domain.Contract{},
		myContracts:       []domain.Contract{},
		landlordContracts: []domain.Contract{},
		pagination:        domain.Pagination{Page: 1},
	}
	h.init(logger)
	return h
}

func (h *ContractsHook) State() ContractsState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return ContractsState{
		Loading:           h.loading,
		Error:             h.err,
		Contracts:         h.contracts,
		MyContracts:       h.myContracts,
		LandlordContracts: h.landlordContracts,
		CurrentContract:   h.currentContract,
		Pagination:        h.pagination,
	}
}

func (h *ContractsHook) Subscribe(fn func(ContractsState)) func() {
	return h.subscribe(func() { fn(h.State()) })
}

// setTotal must run under h.mu.
func (h *ContractsHook) setTotal(list *application.ContractList) {
	if list.Total > 0 {
		h.pagination.Total = list.Total
	}
}

func (h *ContractsHook) FetchAllContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetAllContracts(ctx, filters)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchContractsError, nil)
	}

	h.succeed(&h.loading, func() {
		h.contracts = list.Contracts
		h.setTotal(list)
	})
	return list, nil
}

func (h *ContractsHook) FetchMyContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetMyContracts(ctx, filters)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchMyContractsError, nil)
	}

	h.succeed(&h.loading, func() {
		h.myContracts = list.Contracts
		h.setTotal(list)
	})
	return list, nil
}

func (h *ContractsHook) FetchLandlordContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	h.begin(&h.loading)

	list, err := h.api.GetLandlordContracts(ctx, filters)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchMyContractsError, nil)
	}

	h.succeed(&h.loading, func() {
		h.landlordContracts = list.Contracts
		h.setTotal(list)
	})
	return list, nil
}

func (h *ContractsHook) FetchContractByID(ctx context.Context, id string) (*domain.Contract, error) {
	h.begin(&h.loading)

	result, err := h.api.GetContractByID(ctx, id)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.FetchContractError, nil)
	}

	h.succeed(&h.loading, func() { h.currentContract = result.Contract })
	return result.Contract, nil
}

// CreateContract is checked locally first; an invalid form never reaches the
// server and leaves the hook state as it was.
func (h *ContractsHook) CreateContract(ctx context.Context, input domain.ContractInput) (*domain.Contract, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	h.begin(&h.loading)

	result, err := h.api.CreateContract(ctx, input)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.CreateContractError, nil)
	}

	h.setCurrent(result.Contract)
	h.refresh(ctx, myContracts)
	h.succeed(&h.loading, nil)
	return result.Contract, nil
}

func (h *ContractsHook) UpdateContract(ctx context.Context, id string, input domain.ContractUpdate) (*domain.Contract, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	h.begin(&h.loading)

	result, err := h.api.UpdateContract(ctx, id, input)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.UpdateContractError, nil)
	}

	h.setCurrent(result.Contract)
	h.refresh(ctx, myContracts, landlordContracts)
	h.succeed(&h.loading, nil)
	return result.Contract, nil
}

func (h *ContractsHook) TerminateContract(ctx context.Context, id string) (*domain.Contract, error) {
	h.begin(&h.loading)

	result, err := h.api.TerminateContract(ctx, id)
	if err != nil {
		return nil, h.fail(&h.loading, err, errors.TerminateContractErr, nil)
	}

	h.setCurrent(result.Contract)
	h.refresh(ctx, landlordContracts, myContracts)
	h.succeed(&h.loading, nil)
	return result.Contract, nil
}

func (h *ContractsHook) DeleteContract(ctx context.Context, id string) error {
	h.begin(&h.loading)

	if _, err := h.api.DeleteContract(ctx, id); err != nil {
		return h.fail(&h.loading, err, errors.DeleteContractError, nil)
	}

	h.setCurrent(nil)
	h.refresh(ctx, myContracts, landlordContracts)
	h.succeed(&h.loading, nil)
	return nil
}

func (h *ContractsHook) setCurrent(contract *domain.Contract) {
	h.mu.Lock()
	h.currentContract = contract
	h.mu.Unlock()
	h.notify()
}

// refresh reloads the given lists one after another. A failed reload keeps
// the stale list and is only logged; the mutation that triggered it has
// already succeeded.
func (h *ContractsHook) refresh(ctx context.Context, lists ...contractList) {
	for _, which := range lists {
		fetch, name := h.api.GetMyContracts, "my"
		if which == landlordContracts {
			fetch, name = h.api.GetLandlordContracts, "landlord"
		}

		list, err := fetch(ctx, nil)
		if err != nil {
			h.logger.WithError(err).Warnf("refreshing %s contracts failed", name)
			continue
		}

		h.mu.Lock()
		if which == landlordContracts {
			h.landlordContracts = list.Contracts
		} else {
			h.myContracts = list.Contracts
		}
		h.setTotal(list)
		h.mu.Unlock()
		h.notify()
	}
}
