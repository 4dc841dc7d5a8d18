package hooks

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"rental_frontend/domain"
	application "rental_frontend/service"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeProfileAPI struct {
	result *application.ProfileResult
	err    error
	calls  int
}

func (f *fakeProfileAPI) GetProfile(ctx context.Context) (*application.ProfileResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeProfileAPI) UpdateProfile(ctx context.Context, changes domain.Profile) (*application.ProfileResult, error) {
	f.calls++
	return f.result, f.err
}

type fakePostsAPI struct {
	list  *application.PostList
	post  *application.PostResult
	err   error
	calls []string
}

func (f *fakePostsAPI) GetAllPosts(ctx context.Context, filters domain.Filters) (*application.PostList, error) {
	f.calls = append(f.calls, "all")
	return f.list, f.err
}

func (f *fakePostsAPI) GetMyPosts(ctx context.Context, filters domain.Filters) (*application.PostList, error) {
	f.calls = append(f.calls, "my")
	return f.list, f.err
}

func (f *fakePostsAPI) GetPostByID(ctx context.Context, id string) (*application.PostResult, error) {
	f.calls = append(f.calls, "get")
	return f.post, f.err
}

func (f *fakePostsAPI) CreatePost(ctx context.Context, input domain.PostInput) (*application.PostResult, error) {
	f.calls = append(f.calls, "create")
	return f.post, f.err
}

func (f *fakePostsAPI) UpdatePost(ctx context.Context, id string, input domain.PostInput) (*application.PostResult, error) {
	f.calls = append(f.calls, "update")
	return f.post, f.err
}

func (f *fakePostsAPI) DeletePost(ctx context.Context, id string) (*application.MessageResult, error) {
	f.calls = append(f.calls, "delete")
	return &application.MessageResult{}, f.err
}

func (f *fakePostsAPI) ApprovePost(ctx context.Context, id string) (*application.MessageResult, error) {
	f.calls = append(f.calls, "approve")
	return &application.MessageResult{}, f.err
}

func (f *fakePostsAPI) RejectPost(ctx context.Context, id, reason string) (*application.MessageResult, error) {
	f.calls = append(f.calls, "reject")
	return &application.MessageResult{}, f.err
}

// fakeContractsAPI fails whichever operations are listed in failing.
type fakeContractsAPI struct {
	failing  map[string]error
	contract *domain.Contract
	my       []domain.Contract
	landlord []domain.Contract
	calls    []string
}

func (f *fakeContractsAPI) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failing[name]
}

func (f *fakeContractsAPI) CreateContract(ctx context.Context, input domain.ContractInput) (*application.ContractResult, error) {
	if err := f.record("create"); err != nil {
		return nil, err
	}
	return &application.ContractResult{Contract: f.contract}, nil
}

func (f *fakeContractsAPI) GetMyContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	if err := f.record("my"); err != nil {
		return nil, err
	}
	return &application.ContractList{Contracts: f.my, Total: len(f.my)}, nil
}

func (f *fakeContractsAPI) GetLandlordContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	if err := f.record("landlord"); err != nil {
		return nil, err
	}
	return &application.ContractList{Contracts: f.landlord}, nil
}

func (f *fakeContractsAPI) GetAllContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	if err := f.record("all"); err != nil {
		return nil, err
	}
	return &application.ContractList{Contracts: []domain.Contract{}}, nil
}

func (f *fakeContractsAPI) GetContractByID(ctx context.Context, id string) (*application.ContractResult, error) {
	if err := f.record("get"); err != nil {
		return nil, err
	}
	return &application.ContractResult{Contract: f.contract}, nil
}

func (f *fakeContractsAPI) UpdateContract(ctx context.Context, id string, input domain.ContractUpdate) (*application.ContractResult, error) {
	if err := f.record("update"); err != nil {
		return nil, err
	}
	return &application.ContractResult{Contract: f.contract}, nil
}

func (f *fakeContractsAPI) TerminateContract(ctx context.Context, id string) (*application.ContractResult, error) {
	if err := f.record("terminate"); err != nil {
		return nil, err
	}
	return &application.ContractResult{Contract: f.contract}, nil
}

func (f *fakeContractsAPI) DeleteContract(ctx context.Context, id string) (*application.MessageResult, error) {
	if err := f.record("delete"); err != nil {
		return nil, err
	}
	return &application.MessageResult{}, nil
}

type fakeLocationAPI struct {
	provinces []domain.Province
	wards     []domain.Ward
	err       error
	calls     []string
}

func (f *fakeLocationAPI) GetProvinces(ctx context.Context) ([]domain.Province, error) {
	f.calls = append(f.calls, "provinces")
	return f.provinces, f.err
}

func (f *fakeLocationAPI) GetWards(ctx context.Context, provinceCode string) ([]domain.Ward, error) {
	f.calls = append(f.calls, "wards:"+provinceCode)
	return f.wards, f.err
}

func (f *fakeLocationAPI) SearchProvinces(ctx context.Context, keyword string) ([]domain.Province, error) {
	f.calls = append(f.calls, "search-provinces:"+keyword)
	return f.provinces, f.err
}

func (f *fakeLocationAPI) SearchWards(ctx context.Context, provinceCode, keyword string) ([]domain.Ward, error) {
	f.calls = append(f.calls, "search-wards:"+provinceCode+":"+keyword)
	return f.wards, f.err
}

type fakeAdminAPI struct {
	users *application.UserList
	err   error
	calls int
}

func (f *fakeAdminAPI) CreateAdmin(ctx context.Context, input domain.AdminRegistration) (*application.MessageResult, error) {
	f.calls++
	return &application.MessageResult{Message: "created"}, f.err
}

func (f *fakeAdminAPI) GetAllUsers(ctx context.Context, filters domain.Filters) (*application.UserList, error) {
	f.calls++
	return f.users, f.err
}

func (f *fakeAdminAPI) GetUserByID(ctx context.Context, id string) (*application.UserResult, error) {
	f.calls++
	return &application.UserResult{User: &domain.AdminUser{UserSummary: domain.UserSummary{ID: id}}}, f.err
}

func (f *fakeAdminAPI) GetAllContracts(ctx context.Context, filters domain.Filters) (*application.ContractList, error) {
	f.calls++
	return &application.ContractList{Contracts: []domain.Contract{{ID: "c1"}}, Total: 1}, f.err
}

type fakeRecommendationsAPI struct {
	list *application.RecommendationList
	err  error
}

func (f *fakeRecommendationsAPI) GetRecommendedPosts(ctx context.Context) (*application.RecommendationList, error) {
	return f.list, f.err
}
