package application

import (
	"context"
	"net/url"
)

// Requester is the subset of client.APIClient the services need. Every
// method returns the raw 2xx body.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Post(ctx context.Context, path string, body interface{}) ([]byte, error)
	Put(ctx context.Context, path string, body interface{}) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
}
