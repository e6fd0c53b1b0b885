package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Search   SearchConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SearchTopic        string
}

type DatabaseConfig struct {
	Connection string
}

type SearchConfig struct {
	PageSize           int
	RemoteTimeoutMs    int
	AccumulatorBackend string // "memory" or "redis"
	AccumulatorMaxKeys int
	AccumulatorTTLMin  int
}

type AIConfig struct {
	EmbeddingProvider string // "ollama" or "none"
	OllamaBaseURL     string
	OllamaModel       string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SearchTopic:        getEnv("SEARCH_PERFORMED_TOPIC_NAME", "SEARCH_PERFORMED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Search: SearchConfig{
			PageSize:           getEnvAsInt("SEARCH_PAGE_SIZE", 20),
			RemoteTimeoutMs:    getEnvAsInt("SEARCH_REMOTE_TIMEOUT_MS", 5000),
			AccumulatorBackend: getEnv("ACCUMULATOR_BACKEND", "memory"),
			AccumulatorMaxKeys: getEnvAsInt("ACCUMULATOR_MAX_KEYS", 512),
			AccumulatorTTLMin:  getEnvAsInt("ACCUMULATOR_TTL_MINUTES", 15),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "none"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
