package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string
}

type RESTConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

type KafkaConfig struct {
	Brokers       []string
	ActivityTopic string
	// GroupID must differ per instance so every instance sees every event.
	// Empty means a generated per-process group.
	GroupID string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type WorkspaceConfig struct {
	PageSize         int
	DefaultShortlist string
	SendBuffer       int
}

type Config struct {
	Server    ServerConfig
	REST      RESTConfig
	Logging   LoggingConfig
	Security  SecurityConfig
	Kafka     KafkaConfig
	Redis     RedisConfig
	Workspace WorkspaceConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8090")
	v.SetDefault("REST_BASE_URL", "http://127.0.0.1:8000")
	v.SetDefault("REST_TIMEOUT", "10s")
	v.SetDefault("REST_RATE_LIMIT", 0)
	v.SetDefault("REST_RATE_BURST", 5)
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_ACTIVITY_TOPIC", "scouting.workspace.activity")
	v.SetDefault("KAFKA_GROUP_ID", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CATALOG_CACHE_TTL", "30s")
	v.SetDefault("CATALOG_PAGE_SIZE", 20)
	v.SetDefault("DEFAULT_SHORTLIST", "General Shortlist")
	v.SetDefault("WS_SEND_BUFFER", 16)
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{Port: strings.TrimSpace(v.GetString("PORT"))},
		REST: RESTConfig{
			BaseURL:   strings.TrimSpace(v.GetString("REST_BASE_URL")),
			Timeout:   v.GetDuration("REST_TIMEOUT"),
			RateLimit: v.GetFloat64("REST_RATE_LIMIT"),
			RateBurst: v.GetInt("REST_RATE_BURST"),
		},
		Logging: LoggingConfig{
			Directory: v.GetString("LOG_DIR"),
			Level:     v.GetString("LOG_LEVEL"),
			Format:    v.GetString("LOG_FORMAT"),
		},
		Security: SecurityConfig{
			JWTSecret:    v.GetString("JWT_SECRET"),
			JWTPublicKey: v.GetString("JWT_PUBLIC_KEY"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			ActivityTopic: strings.TrimSpace(v.GetString("KAFKA_ACTIVITY_TOPIC")),
			GroupID:       strings.TrimSpace(v.GetString("KAFKA_GROUP_ID")),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("CATALOG_CACHE_TTL"),
		},
		Workspace: WorkspaceConfig{
			PageSize:         v.GetInt("CATALOG_PAGE_SIZE"),
			DefaultShortlist: strings.TrimSpace(v.GetString("DEFAULT_SHORTLIST")),
			SendBuffer:       v.GetInt("WS_SEND_BUFFER"),
		},
	}

	if cfg.REST.Timeout <= 0 {
		return nil, fmt.Errorf("REST_TIMEOUT must be positive, got %s", cfg.REST.Timeout)
	}
	if cfg.Workspace.PageSize < 1 || cfg.Workspace.PageSize > 100 {
		return nil, fmt.Errorf("CATALOG_PAGE_SIZE must be within [1,100], got %d", cfg.Workspace.PageSize)
	}
	if cfg.Workspace.DefaultShortlist == "" {
		return nil, fmt.Errorf("DEFAULT_SHORTLIST must not be empty")
	}
	if cfg.Workspace.SendBuffer <= 0 {
		cfg.Workspace.SendBuffer = 16
	}
	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' || r == ' ' })
	if len(parts) == 0 {
		return nil
	}
	return parts
}
