package store

import (
	"context"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/domain"
)

// Runs only against a live MongoDB, e.g. SESSION_DB_HOST=localhost SESSION_DB_PORT=27017.
func TestSessionMongoDBStore_Integration(t *testing.T) {
	host, port := os.Getenv("SESSION_DB_HOST"), os.Getenv("SESSION_DB_PORT")
	if host == "" || port == "" {
		t.Skipf("SESSION_DB_HOST/SESSION_DB_PORT not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := GetClientWithHTTPConfig(host, port, http.DefaultClient)
	require.NoError(t, err)
	defer client.Disconnect(ctx)
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("mongo not reachable: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := NewSessionMongoDBStore(client, trace.NewNoopTracerProvider().Tracer("test"), logger)
	pair := domain.PersistedSession{Token: "abc", User: `{"id":"1"}`}

	require.NoError(t, store.Save(ctx, pair))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, pair, loaded)

	require.NoError(t, store.Clear(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PersistedSession{}, loaded)
}
