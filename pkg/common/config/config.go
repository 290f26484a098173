package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers []string
	KafkaGroupID string

	// Upstream model services
	LabelerBaseURL       string
	NarrativeBaseURL     string
	NarrativeModelName   string
	ModelAPITokenURL     string
	ModelAPIClientID     string
	ModelAPIClientSecret string
	ModelRequestTimeout  time.Duration
	ModelRetryAttempts   int

	// Clinical extraction
	AttributeWindow    int
	NegationWindow     int
	VocabularyPath     string
	TerminologyPath    string
	ExtractionCacheTTL time.Duration
	ReportCacheTTL     time.Duration
}

func Load() *Config {
	return &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 4*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "clinscribe"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "clinscribe123"),
		PostgresDB:       getEnv("POSTGRES_DB", "clinscribe"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "clinscribe-platform"),

		LabelerBaseURL:       getEnv("LABELER_BASE_URL", "http://localhost:9090"),
		NarrativeBaseURL:     getEnv("NARRATIVE_BASE_URL", "http://localhost:9091"),
		NarrativeModelName:   getEnv("NARRATIVE_MODEL_NAME", "medgemma-4b-it"),
		ModelAPITokenURL:     getEnv("MODEL_API_TOKEN_URL", ""),
		ModelAPIClientID:     getEnv("MODEL_API_CLIENT_ID", ""),
		ModelAPIClientSecret: getEnv("MODEL_API_CLIENT_SECRET", ""),
		ModelRequestTimeout:  getDuration("MODEL_REQUEST_TIMEOUT", 60*time.Second),
		ModelRetryAttempts:   getIntEnv("MODEL_RETRY_ATTEMPTS", 3),

		AttributeWindow:    getIntEnv("ATTRIBUTE_WINDOW_CHARS", 50),
		NegationWindow:     getIntEnv("NEGATION_WINDOW_CHARS", 25),
		VocabularyPath:     getEnv("CLINICAL_VOCABULARY_PATH", ""),
		TerminologyPath:    getEnv("TERMINOLOGY_CATALOG_PATH", ""),
		ExtractionCacheTTL: getDuration("EXTRACTION_CACHE_TTL", 15*time.Minute),
		ReportCacheTTL:     getDuration("REPORT_CACHE_TTL", 5*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
