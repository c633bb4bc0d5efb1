package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment      string
	Port             string
	Timezone         string
	GraphBaseURL     string
	GraphScope       string
	TenantID         string
	ClientID         string
	ClientSecret     string
	StaticGraphToken string
	PaneToken        string
	PageSize         int
	ReplyDelay       time.Duration
}

func NewConfig() (*Config, error) {
	env := os.Getenv("CHATPANE_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not found, using environment variables")
		}
	}

	config := &Config{
		Environment:      env,
		Port:             getEnvOrDefault("PORT", "8080"),
		Timezone:         getEnvOrDefault("TZ", "UTC"),
		GraphBaseURL:     getEnvOrDefault("CHATPANE_GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
		GraphScope:       getEnvOrDefault("CHATPANE_GRAPH_SCOPE", "https://graph.microsoft.com/.default"),
		TenantID:         os.Getenv("CHATPANE_TENANT_ID"),
		ClientID:         os.Getenv("CHATPANE_CLIENT_ID"),
		ClientSecret:     os.Getenv("CHATPANE_CLIENT_SECRET"),
		StaticGraphToken: os.Getenv("CHATPANE_STATIC_GRAPH_TOKEN"),
		PaneToken:        os.Getenv("CHATPANE_PANE_TOKEN"),
		PageSize:         getEnvIntOrDefault("CHATPANE_PAGE_SIZE", 10),
		ReplyDelay:       time.Duration(getEnvIntOrDefault("CHATPANE_REPLY_DELAY_MS", 1000)) * time.Millisecond,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.PaneToken == "" {
		return fmt.Errorf("CHATPANE_PANE_TOKEN is required")
	}

	// Either a full app registration or a static development token must be
	// configured for the mail API.
	hasRegistration := c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
	if !hasRegistration && c.StaticGraphToken == "" {
		return fmt.Errorf("CHATPANE_TENANT_ID, CHATPANE_CLIENT_ID, and CHATPANE_CLIENT_SECRET (or CHATPANE_STATIC_GRAPH_TOKEN) are required")
	}

	if c.PageSize <= 0 {
		return fmt.Errorf("CHATPANE_PAGE_SIZE must be positive")
	}

	return nil
}

// UsesStaticToken reports whether the development token path is active.
func (c *Config) UsesStaticToken() bool {
	return c.TenantID == "" || c.ClientID == "" || c.ClientSecret == ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
