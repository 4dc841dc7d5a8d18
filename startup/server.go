package startup

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"rental_frontend/authorization"
	"rental_frontend/client"
	"rental_frontend/domain"
	"rental_frontend/handlers"
	"rental_frontend/hooks"
	application "rental_frontend/service"
	"rental_frontend/session"
	"rental_frontend/startup/config"
	"rental_frontend/store"
)

type Server struct {
	config  *config.Config
	logger  *logrus.Logger
	closers []func(context.Context)
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
		logger: newLogger(config.LogFilePath),
	}
}

type pageHandler interface {
	Init(router *mux.Router)
}

func (server *Server) Start() {
	ctx := context.Background()

	var exp sdktrace.SpanExporter
	if server.config.JaegerAddress != "" {
		jaegerExporter, err := newExporter(server.config.JaegerAddress)
		if err != nil {
			server.logger.Fatalf("Failed to Initialize Exporter: %v", err)
		}
		exp = jaegerExporter
	}
	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tracer := tp.Tracer(serviceName)

	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
		},
	}

	policy := server.initRolePolicy()
	storage := server.initSessionStorage(httpClient, tracer)
	defer server.close()

	var sessions *session.Store
	apiClient := server.initAPIClient(client.TokenFunc(func() string { return sessions.Token() }), tracer)
	sessions = server.initSessionStore(application.NewAuthService(apiClient), storage)
	sessions.Init(ctx)

	router := server.initRouter(sessions, policy, apiClient, tracer)
	server.start(router)
}

func (server *Server) initRolePolicy() *authorization.RolePolicy {
	policy, err := authorization.NewRolePolicy(server.config.RBACModelPath, server.config.RBACPolicyPath)
	if err != nil {
		server.logger.Fatalf("Failed to load role policy: %v", err)
	}
	return policy
}

func (server *Server) initSessionStorage(httpClient *http.Client, tracer trace.Tracer) domain.SessionStorage {
	switch server.config.SessionStorage {
	case config.StorageRedis:
		return store.NewSessionRedisStore(server.initRedisClient(), server.config.SessionKeyPrefix, tracer, server.logger)
	case config.StorageMongo:
		return store.NewSessionMongoDBStore(server.initMongoClient(httpClient), tracer, server.logger)
	case config.StorageMemory:
		return store.NewMemorySessionStore()
	case config.StorageFile:
		return store.NewFileSessionStore(server.config.SessionFile)
	}
	server.logger.Fatalf("Unknown session storage %q", server.config.SessionStorage)
	return nil
}

func (server *Server) initRedisClient() *redis.Client {
	redisClient, err := store.GetRedisClient(server.config.SessionCacheHost, server.config.SessionCachePort)
	if err != nil {
		server.logger.Fatal(err)
	}
	server.closers = append(server.closers, func(context.Context) {
		if err := redisClient.Close(); err != nil {
			server.logger.Errorf("Error closing Redis client: %v", err)
		}
	})
	return redisClient
}

func (server *Server) initMongoClient(httpClient *http.Client) *mongo.Client {
	mongoClient, err := store.GetClientWithHTTPConfig(server.config.SessionDBHost, server.config.SessionDBPort, httpClient)
	if err != nil {
		server.logger.Fatal(err)
	}
	server.closers = append(server.closers, func(ctx context.Context) {
		if err := mongoClient.Disconnect(ctx); err != nil {
			server.logger.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	})
	return mongoClient
}

func (server *Server) close() {
	for _, closer := range server.closers {
		closer(context.Background())
	}
}

func (server *Server) initAPIClient(tokens client.TokenSource, tracer trace.Tracer) *client.APIClient {
	return client.NewAPIClient(client.Options{
		BaseURL:        server.config.APIBaseURL,
		Timeout:        server.config.APITimeout,
		BreakerEnabled: server.config.APIBreakerEnabled,
	}, tokens, tracer, server.logger)
}

func (server *Server) initSessionStore(auth session.Authenticator, storage domain.SessionStorage) *session.Store {
	return session.NewStore(auth, storage, server.logger)
}

// initRouter builds one hook per resource for the whole process, shared by
// every page that shows that resource.
func (server *Server) initRouter(sessions *session.Store, policy *authorization.RolePolicy, apiClient *client.APIClient, tracer trace.Tracer) *mux.Router {
	postService := application.NewRentalPostService(apiClient)
	locations := hooks.NewLocationHook(application.NewLocationService(apiClient), server.logger)

	pageHandlers := []pageHandler{
		handlers.NewAuthHandler(sessions, tracer, server.logger),
		handlers.NewDashboardHandler(sessions, policy),
		handlers.NewProfileHandler(hooks.NewProfileHook(application.NewProfileService(apiClient), server.logger), tracer),
		handlers.NewRentalPostHandler(hooks.NewRentalPostsHook(postService, server.logger), locations, sessions, tracer),
		handlers.NewRecommendationHandler(hooks.NewRecommendationsHook(postService, server.logger), tracer),
		handlers.NewContractHandler(hooks.NewContractsHook(application.NewContractService(apiClient), server.logger), sessions, tracer),
		handlers.NewAdminHandler(hooks.NewAdminHook(application.NewAdminService(apiClient), server.logger), tracer),
		handlers.NewLocationHandler(locations, tracer),
	}

	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(handlers.ExtractTraceInfoMiddleware)
	router.Use(handlers.LoggingMiddleware(server.logger))
	router.Use(handlers.GuardMiddleware(sessions, policy, server.logger))
	for _, handler := range pageHandlers {
		handler.Init(router)
	}
	return router
}

func (server *Server) start(router *mux.Router) {
	var handler http.Handler = router
	if len(server.config.CORSOrigins) > 0 {
		cors := gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(server.config.CORSOrigins),
			gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			gorillaHandlers.AllowedHeaders([]string{"Content-Type"}),
			gorillaHandlers.AllowCredentials(),
		)
		handler = cors(router)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: handler,
	}

	wait := time.Second * 15
	go func() {
		server.logger.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.logger.Error(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		server.logger.Fatalf("Error Shutting Down Server %s", err)
	}
	server.logger.Info("Server Gracefully Stopped")
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")
		rw.Header().Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none';")

		next.ServeHTTP(rw, h)
	})
}
