package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const RequestIDHeader = "X-Request-ID"

// TokenSource yields the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string {
	return f()
}

type Options struct {
	BaseURL        string
	Timeout        time.Duration
	BreakerEnabled bool
}

// APIClient is the only way out to the backend. It never retries, caches or
// rate limits.
type APIClient struct {
	http   *resty.Client
	cb     *gobreaker.CircuitBreaker
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewAPIClient(options Options, tokens TokenSource, tracer trace.Tracer, logger *logrus.Logger) *APIClient {
	httpClient := resty.New().
		SetBaseURL(options.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if options.Timeout > 0 {
		httpClient.SetTimeout(options.Timeout)
	}

	httpClient.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if tokens == nil {
			return nil
		}
		if token := tokens.Token(); token != "" {
			r.SetAuthToken(token)
		}
		return nil
	})

	apiClient := &APIClient{
		http:   httpClient,
		tracer: tracer,
		logger: logger,
	}
	if options.BreakerEnabled {
		apiClient.cb = CircuitBreaker("backend-api", logger)
	}
	return apiClient
}

// CircuitBreaker trips after three consecutive transport errors or 5xx
// responses. Client errors never count against the backend.
func CircuitBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warnf("Circuit Breaker '%s' changed from '%s' to '%s'", name, from, to)
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				apiErr, ok := err.(*APIError)
				return ok && apiErr.Status >= 400 && apiErr.Status < 500
			},
		},
	)
}

func (c *APIClient) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *APIClient) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

func (c *APIClient) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

func (c *APIClient) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "APIClient.Do")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", path),
	)

	call := func() (interface{}, error) {
		return c.send(ctx, method, path, query, body)
	}

	var (
		result interface{}
		err    error
	)
	if c.cb != nil {
		result, err = c.cb.Execute(call)
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			err = &APIError{Method: method, Path: path, Err: err}
		}
	} else {
		result, err = call()
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"status": StatusOf(err),
		}).Warnf("backend call failed: %v", err)
		return nil, err
	}

	return result.([]byte), nil
}

func (c *APIClient) send(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	requestID := uuid.New().String()
	request := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(request.Header))

	if len(query) > 0 {
		request.SetQueryParamsFromValues(query)
	}
	if body != nil {
		request.SetBody(body)
	}

	response, err := request.Execute(method, path)
	if err != nil {
		return nil, &APIError{Method: method, Path: path, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     response.StatusCode(),
		"request_id": requestID,
	}).Debug("backend call")

	if !response.IsSuccess() {
		return nil, &APIError{
			Method:  method,
			Path:    path,
			Status:  response.StatusCode(),
			Message: messageFromBody(response.Body()),
			Body:    response.Body(),
		}
	}

	return response.Body(), nil
}
