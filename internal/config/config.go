package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every tunable of the service.
type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
	Embedding EmbeddingConfig
	AI        AIConfig
	Chat      ChatConfig
}

// Load reads the full configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	embedding, err := loadEmbeddingConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	chat, err := loadChatConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Auth:      auth,
		Database:  loadDatabaseConfig(),
		Catalog:   loadCatalogConfig(),
		Embedding: embedding,
		AI:        ai,
		Chat:      chat,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AuthConfig holds token-signing material for the login flow.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func loadAuthConfig() (AuthConfig, error) {
	ttlMinutes := 60
	if override, err := parseOptionalIntEnv("JWT_TTL_MINUTES"); err != nil {
		return AuthConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AuthConfig{}, fmt.Errorf("JWT_TTL_MINUTES must be at least 1, got %d", *override)
		}
		ttlMinutes = *override
	}

	return AuthConfig{
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:  time.Duration(ttlMinutes) * time.Minute,
	}, nil
}

// DatabaseConfig locates the SQLite database file.
type DatabaseConfig struct {
	Path string
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{Path: getEnvOrDefault("DATABASE_PATH", "aura.db")}
}

// CatalogConfig locates the movie catalog source.
type CatalogConfig struct {
	Path string
}

func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{Path: getEnvOrDefault("CATALOG_PATH", "data/movies.csv")}
}

// Embedding provider names accepted by EMBEDDING_PROVIDER.
const (
	EmbeddingProviderArk    = "ark"
	EmbeddingProviderOpenAI = "openai"
	EmbeddingProviderStatic = "static"
)

// EmbeddingConfig describes the text-embedding backend.
type EmbeddingConfig struct {
	Provider string

	// Ark backend.
	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkModel     string
	ArkBaseURL   string
	ArkRegion    string

	// OpenAI backend.
	OpenAIAPIKey string
	OpenAIModel  string
}

// Enabled reports whether the configured provider has usable credentials.
// The static provider needs none.
func (c EmbeddingConfig) Enabled() bool {
	switch c.Provider {
	case EmbeddingProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	case EmbeddingProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case EmbeddingProviderStatic:
		return true
	default:
		return false
	}
}

func loadEmbeddingConfig() (EmbeddingConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("EMBEDDING_PROVIDER", EmbeddingProviderArk))
	switch provider {
	case EmbeddingProviderArk, EmbeddingProviderOpenAI, EmbeddingProviderStatic:
	default:
		return EmbeddingConfig{}, fmt.Errorf("unknown EMBEDDING_PROVIDER value: %q", provider)
	}

	return EmbeddingConfig{
		Provider:     provider,
		ArkAPIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:     strings.TrimSpace(os.Getenv("ARK_EMBEDDING_MODEL")),
		ArkBaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:  getEnvOrDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
	}, nil
}

// AIConfig describes the generation model.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required generation credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("generation credentials missing: provide ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// ChatConfig tunes the intent-routing pipeline.
type ChatConfig struct {
	IntentThreshold     float64
	HistoryLimit        int
	EmotionHistoryLimit int
	RecommendCount      int
}

func loadChatConfig() (ChatConfig, error) {
	threshold := 0.72
	if override, err := parseOptionalFloatEnv("INTENT_THRESHOLD"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < -1 || *override > 1 {
			return ChatConfig{}, fmt.Errorf("INTENT_THRESHOLD must lie in [-1, 1], got %g", *override)
		}
		threshold = *override
	}

	historyLimit := 10
	if override, err := parseOptionalIntEnv("AI_HISTORY_LIMIT"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			historyLimit = 1
		} else {
			historyLimit = *override
		}
	}

	emotionHistory := 6
	if override, err := parseOptionalIntEnv("EMOTION_HISTORY_LIMIT"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			emotionHistory = 1
		} else {
			emotionHistory = *override
		}
	}

	recommendCount := 5
	if override, err := parseOptionalIntEnv("RECOMMEND_COUNT"); err != nil {
		return ChatConfig{}, err
	} else if override != nil {
		if *override < 1 {
			recommendCount = 1
		} else {
			recommendCount = *override
		}
	}

	return ChatConfig{
		IntentThreshold:     threshold,
		HistoryLimit:        historyLimit,
		EmotionHistoryLimit: emotionHistory,
		RecommendCount:      recommendCount,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
