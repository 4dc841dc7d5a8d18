package application

import (
	"context"
	"net/url"
)

type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// fakeRequester answers every call with the next canned response.
type fakeRequester struct {
	calls     []recordedCall
	responses []fakeResponse
}

type fakeResponse struct {
	body string
	err  error
}

func (f *fakeRequester) reply(body string) *fakeRequester {
	f.responses = append(f.responses, fakeResponse{body: body})
	return f
}

func (f *fakeRequester) fail(err error) *fakeRequester {
	f.responses = append(f.responses, fakeResponse{err: err})
	return f
}

func (f *fakeRequester) next(call recordedCall) ([]byte, error) {
	f.calls = append(f.calls, call)
	if len(f.responses) == 0 {
		return []byte(`{}`), nil
	}
	response := f.responses[0]
	f.responses = f.responses[1:]
	if response.err != nil {
		return nil, response.err
	}
	return []byte(response.body), nil
}

func (f *fakeRequester) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return f.next(recordedCall{Method: "GET", Path: path, Query: query})
}

func (f *fakeRequester) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return f.next(recordedCall{Method: "POST", Path: path, Body: body})
}

func (f *fakeRequester) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return f.next(recordedCall{Method: "PUT", Path: path, Body: body})
}

func (f *fakeRequester) Delete(ctx context.Context, path string) ([]byte, error) {
	return f.next(recordedCall{Method: "DELETE", Path: path})
}
