package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "INSIGHTS"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv       = "INSIGHTS_APP_ENV"
	EnvPort         = "INSIGHTS_APP_PORT"
	EnvDatasetPath  = "INSIGHTS_DATASET_PATH"
	EnvFeedbackPath = "INSIGHTS_FEEDBACK_PATH"
)

type Config struct {
	App      AppConfig
	Dataset  DatasetConfig
	Feedback FeedbackConfig
	CORS     CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INSIGHTS_APP_ENV" required:"true"`
	Port         string `envconfig:"INSIGHTS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INSIGHTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INSIGHTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DatasetConfig struct {
	Path string `envconfig:"INSIGHTS_DATASET_PATH" required:"true"`

	// TimestampLayouts are tried in order when parsing order_purchase_timestamp.
	TimestampLayouts []string `envconfig:"INSIGHTS_DATASET_TIMESTAMP_LAYOUTS" default:"2006-01-02 15:04:05,2006-01-02T15:04:05Z07:00,2006-01-02"`
}

type FeedbackConfig struct {
	Path string `envconfig:"INSIGHTS_FEEDBACK_PATH" default:"feedback.csv"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"INSIGHTS_CORS_ORIGINS" default:"http://localhost:3000"`
}
