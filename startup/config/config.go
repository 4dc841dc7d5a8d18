package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port              string
	APIBaseURL        string
	APITimeout        time.Duration
	APIBreakerEnabled bool
	SessionStorage    string
	SessionFile       string
	SessionCacheHost  string
	SessionCachePort  string
	SessionKeyPrefix  string
	SessionDBHost     string
	SessionDBPort     string
	RBACModelPath     string
	RBACPolicyPath    string
	JaegerAddress     string
	LogFilePath       string
	CORSOrigins       []string
}

func NewConfig() *Config {
	return &Config{
		Port:              getenv("FRONTEND_PORT", "3000"),
		APIBaseURL:        getenv("API_BASE_URL", "http://localhost:5000/api"),
		APITimeout:        time.Duration(atoi(os.Getenv("API_TIMEOUT_SECONDS"))) * time.Second,
		APIBreakerEnabled: parseBool(os.Getenv("API_BREAKER_ENABLED")),
		SessionStorage:    strings.ToLower(getenv("SESSION_STORAGE", StorageFile)),
		SessionFile:       getenv("SESSION_FILE", ".rental_frontend/session.json"),
		SessionCacheHost:  os.Getenv("SESSION_CACHE_HOST"),
		SessionCachePort:  os.Getenv("SESSION_CACHE_PORT"),
		SessionKeyPrefix:  os.Getenv("SESSION_KEY_PREFIX"),
		SessionDBHost:     os.Getenv("SESSION_DB_HOST"),
		SessionDBPort:     os.Getenv("SESSION_DB_PORT"),
		RBACModelPath:     getenv("RBAC_MODEL_PATH", "./rbac_model.conf"),
		RBACPolicyPath:    getenv("RBAC_POLICY_PATH", "./policy.csv"),
		JaegerAddress:     os.Getenv("JAEGER_ADDRESS"),
		LogFilePath:       os.Getenv("LOG_FILE_PATH"),
		CORSOrigins:       splitList(os.Getenv("CORS_ORIGINS")),
	}
}

func getenv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// atoi treats anything unparsable or negative as 0.
func atoi(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseBool(value string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && b
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
