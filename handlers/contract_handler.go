package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/domain"
	"rental_frontend/errors"
	"rental_frontend/hooks"
)

type ContractHandler struct {
	contracts *hooks.ContractsHook
	users     userSource
	tracer    trace.Tracer
}

type contractActions struct {
	CanTerminate bool `json:"can_terminate"`
	CanDelete    bool `json:"can_delete"`
}

type contractDetail struct {
	hooks.ContractsState
	Actions contractActions `json:"actions"`
}

func NewContractHandler(contracts *hooks.ContractsHook, users userSource, tracer trace.Tracer) *ContractHandler {
	return &ContractHandler{contracts: contracts, users: users, tracer: tracer}
}

func (handler *ContractHandler) Init(router *mux.Router) {
	router.HandleFunc("/contracts/create", handler.CreatePage).Methods(http.MethodGet)
	router.HandleFunc("/contracts/create", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/contracts/my", handler.MyContracts).Methods(http.MethodGet)
	router.HandleFunc("/contracts/landlord", handler.LandlordContracts).Methods(http.MethodGet)
	router.HandleFunc("/contracts/{id}", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/contracts/{id}", handler.Update).Methods(http.MethodPost)
	router.HandleFunc("/contracts/{id}/terminate", handler.Terminate).Methods(http.MethodPost)
	router.HandleFunc("/contracts/{id}/delete", handler.Delete).Methods(http.MethodPost)
}

func (handler *ContractHandler) render(writer http.ResponseWriter) {
	state := handler.contracts.State()
	jsonResponse(newView(state.Loading, state.Error, state), writer)
}

func (handler *ContractHandler) CreatePage(writer http.ResponseWriter, req *http.Request) {
	jsonResponse(newView(false, "", domain.ContractInput{PostID: req.URL.Query().Get("post_id")}), writer)
}

func (handler *ContractHandler) Create(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ContractHandler.Create")
	defer span.End()

	var input domain.ContractInput
	if err := decodeBody(req, &input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	contract, err := handler.contracts.CreateContract(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.CreateContractError, nil)
		return
	}
	writeJSON(writer, http.StatusCreated, newView(false, "", contract))
}

func (handler *ContractHandler) MyContracts(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ContractHandler.MyContracts")
	defer span.End()

	if _, err := handler.contracts.FetchMyContracts(ctx, domain.FiltersFromQuery(req.URL.Query())); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchMyContractsError, handler.contracts.State())
		return
	}
	handler.render(writer)
}

func (handler *ContractHandler) LandlordContracts(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ContractHandler.LandlordContracts")
	defer span.End()

	if _, err := handler.contracts.FetchLandlordContracts(ctx, domain.FiltersFromQuery(req.URL.Query())); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchContractsError, handler.contracts.State())
		return
	}
	handler.render(writer)
}

func (handler *ContractHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ContractHandler.Get")
	defer span.End()

	if _, err := handler.contracts.FetchContractByID(ctx, pathID(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.FetchContractError, handler.contracts.State())
		return
	}

	state := handler.contracts.State()
	detail := contractDetail{ContractsState: state}
	if contract := state.CurrentContract; contract != nil {
		user := handler.users.CurrentUser()
		detail.Actions = contractActions{
			CanTerminate: contract.CanTerminate(user),
			CanDelete:    contract.CanDelete(user),
		}
	}
	jsonResponse(newView(state.Loading, state.Error, detail), writer)
}

func (handler *ContractHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ContractHandler.Update")
	defer span.End()

	var input domain.ContractUpdate
	if err := decodeBody(req, &input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		invalidBody(writer)
		return
	}

	if _, err := handler.contracts.UpdateContract(ctx, pathID(req), input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.UpdateContractError, nil)
		return
	}
	handler.render(writer)
}

func (handler *ContractHandler) Terminate(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ContractHandler.Terminate")
	defer span.End()

	if _, err := handler.contracts.TerminateContract(ctx, pathID(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.TerminateContractErr, nil)
		return
	}
	handler.render(writer)
}

func (handler *ContractHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "ContractHandler.Delete")
	defer span.End()

	if err := handler.contracts.DeleteContract(ctx, pathID(req)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		errorResponse(writer, err, errors.DeleteContractError, nil)
		return
	}
	handler.render(writer)
}
