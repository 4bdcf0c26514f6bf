package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Logging  LoggingConfig  `mapstructure:"logging" validate:"required"`
	Postgres PostgresConfig `mapstructure:"postgres" validate:"required"`
	Supabase SupabaseConfig `mapstructure:"supabase" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cart     CartConfig     `mapstructure:"cart" validate:"required"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address" validate:"required"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
	// IPごとの1秒あたりログイン試行回数
	LoginRateLimit float64 `mapstructure:"login_rate_limit" validate:"gt=0"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// DSNが空なら個別項目から組み立てる
type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

func (c PostgresConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode, c.TimeZone,
	)
}

type SupabaseConfig struct {
	URL     string `mapstructure:"url" validate:"required,url"`
	AnonKey string `mapstructure:"anon_key" validate:"required"`
}

type StorageConfig struct {
	Bucket          string `mapstructure:"bucket" validate:"required"`
	Region          string `mapstructure:"region" validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	// 空なら {supabase.url}/storage/v1/s3
	Endpoint string `mapstructure:"endpoint"`
}

type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTL    time.Duration `mapstructure:"token_ttl" validate:"required"`
	AdminEmails []string      `mapstructure:"admin_emails" validate:"required,min=1,dive,email"`
}

type CartConfig struct {
	Store         string        `mapstructure:"store" validate:"required,oneof=memory postgres dynamodb"`
	Namespace     string        `mapstructure:"namespace" validate:"required"`
	SessionCookie string        `mapstructure:"session_cookie" validate:"required"`
	SecureCookie  bool          `mapstructure:"secure_cookie"`
	IdleTTL       time.Duration `mapstructure:"idle_ttl" validate:"required"`
	DynamoTable   string        `mapstructure:"dynamo_table" validate:"required_if=Store dynamodb"`
	DynamoRegion  string        `mapstructure:"dynamo_region" validate:"required_if=Store dynamodb"`
}

type SentryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	DSN         string `mapstructure:"dsn" validate:"required_if=Enabled true"`
	Environment string `mapstructure:"environment"`
}

var defaults = map[string]interface{}{
	"server.address":            ":8080",
	"server.allowed_origins":    []string{"http://localhost:3000"},
	"server.shutdown_timeout":   10 * time.Second,
	"server.max_upload_bytes":   int64(5 << 20),
	"server.login_rate_limit":   0.2,
	"logging.level":             "info",
	"postgres.dsn":              "",
	"postgres.host":             "localhost",
	"postgres.port":             5432,
	"postgres.user":             "postgres",
	"postgres.password":         "",
	"postgres.dbname":           "postgres",
	"postgres.sslmode":          "disable",
	"postgres.timezone":         "UTC",
	"supabase.url":              "",
	"supabase.anon_key":         "",
	"storage.bucket":            "images",
	"storage.region":            "eu-central-1",
	"storage.access_key_id":     "",
	"storage.secret_access_key": "",
	"storage.endpoint":          "",
	"auth.jwt_secret":           "",
	"auth.token_ttl":            8 * time.Hour,
	"auth.admin_emails":         []string{},
	"cart.store":                "postgres",
	"cart.namespace":            "emily-boutique-cart",
	"cart.session_cookie":       "emily_session",
	"cart.secure_cookie":        false,
	"cart.idle_ttl":             30 * time.Minute,
	"cart.dynamo_table":         "",
	"cart.dynamo_region":        "",
	"sentry.enabled":            false,
	"sentry.dsn":                "",
	"sentry.environment":        "development",
}

// Loadは .env → config.yaml → EMILY_* 環境変数の順に読み込み、検証する
func Load() (*Config, error) {
	// .envが無くてもOK
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("EMILY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// defaultを登録したキーだけ環境変数がUnmarshalに反映される
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}
