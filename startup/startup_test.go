package startup

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_frontend/startup/config"
	"rental_frontend/store"
)

func TestMiddlewareContentTypeSet(t *testing.T) {
	handler := MiddlewareContentTypeSet(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", recorder.Header().Get("X-Frame-Options"))
}

func TestCustomFormatter(t *testing.T) {
	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)
	logger.SetFormatter(&CustomFormatter{})

	logger.WithFields(logrus.Fields{"status": 404, "path": "/x"}).Warn("backend call failed")

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "["))
	assert.Contains(t, line, "[warning] [ID-")
	assert.True(t, strings.HasSuffix(line, "backend call failed path=/x status=404\n"))
}

func TestInitSessionStorage_SelectsBackend(t *testing.T) {
	cfg := &config.Config{SessionStorage: config.StorageMemory}
	server := &Server{config: cfg, logger: logrus.New()}

	_, isMemory := server.initSessionStorage(nil, nil).(*store.MemorySessionStore)
	assert.True(t, isMemory)

	cfg.SessionStorage = config.StorageFile
	cfg.SessionFile = filepath.Join(t.TempDir(), "session.json")
	require.NotNil(t, server.initSessionStorage(nil, nil))
}

func TestNewTraceProvider_WithoutExporter(t *testing.T) {
	tp := newTraceProvider(nil)

	_, span := tp.Tracer("test").Start(context.Background(), "Test.Span")
	span.End()

	assert.NoError(t, tp.Shutdown(context.Background()))
}
