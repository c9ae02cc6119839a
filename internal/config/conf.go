package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type WebConfig struct {
	ServerPort string
	AppEnv     string
	LogLevel   string

	EventBaseURL    string
	EventAPIVersion string
	AuthBaseURL     string
	AuthAPIVersion  string
	AIBaseURL       string
	AIAPIVersion    string

	CookieDomain string // optional; empty means host-only cookies

	PaginationBlockSize     int
	MinAnalysisCommentCount int

	RedisAddr string // optional; empty disables the page cache
}

func LoadWebConfig() *WebConfig {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}
	return &WebConfig{
		ServerPort:              getEnv("SERVER_PORT"),
		AppEnv:                  getEnv("APP_ENV"),
		LogLevel:                getEnvOr("LOG_LEVEL", "info"),
		EventBaseURL:            getEnv("EVENT_BASE_URL"),
		EventAPIVersion:         getEnv("EVENT_API_VERSION"),
		AuthBaseURL:             getEnv("AUTH_BASE_URL"),
		AuthAPIVersion:          getEnv("AUTH_API_VERSION"),
		AIBaseURL:               getEnv("AI_BASE_URL"),
		AIAPIVersion:            getEnv("AI_API_VERSION"),
		CookieDomain:            getEnvOr("COOKIE_DOMAIN", ""),
		PaginationBlockSize:     getEnvInt("PAGINATION_BLOCK_SIZE"),
		MinAnalysisCommentCount: getEnvInt("MIN_ANALYSIS_COMMENT_COUNT"),
		RedisAddr:               getEnvOr("REDIS_ADDR", ""),
	}
}

// IsProduction reports whether cookies must carry the Secure flag.
func (c *WebConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

// EventAPIURL returns the versioned base of the events service,
// e.g. https://api.example.com/events/v1.
func (c *WebConfig) EventAPIURL() string {
	return strings.TrimRight(c.EventBaseURL, "/") + "/events/" + c.EventAPIVersion
}

func (c *WebConfig) AuthAPIURL() string {
	return strings.TrimRight(c.AuthBaseURL, "/") + "/auth/" + c.AuthAPIVersion
}

func (c *WebConfig) AIAPIURL() string {
	return strings.TrimRight(c.AIBaseURL, "/") + "/ai/" + c.AIAPIVersion
}

// getEnv retrieves the value of the environment variable named by the key.
func getEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	} else {
		panic("critical config missing: " + key)
	}
}

func getEnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string) int {
	value, err := strconv.Atoi(getEnv(key))
	if err != nil {
		panic("config " + key + " must be an integer")
	}
	return value
}
