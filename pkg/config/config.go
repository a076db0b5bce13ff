package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Scheduler struct {
		IntervalSeconds int `env:"SCHEDULER_INTERVAL_SECONDS" env-default:"60"`
	}
	Facebook struct {
		AppID      string `env:"FACEBOOK_APP_ID"`
		AppSecret  string `env:"FACEBOOK_APP_SECRET"`
		APIVersion string `env:"FACEBOOK_API_VERSION" env-default:"v19.0"`
		GraphURL   string `env:"FACEBOOK_GRAPH_URL" env-default:"https://graph.facebook.com"`
	}
	Instagram struct {
		APIVersion   string `env:"INSTAGRAM_API_VERSION" env-default:"v12.0"`
		GraphURL     string `env:"INSTAGRAM_GRAPH_URL" env-default:"https://graph.instagram.com"`
		DefaultImage string `env:"INSTAGRAM_DEFAULT_IMAGE" env-default:"https://images.unsplash.com/photo-1611162616305-c69b3fa7fbe0"`
	}
	LinkedIn struct {
		APIVersion string `env:"LINKEDIN_API_VERSION" env-default:"v2"`
		APIURL     string `env:"LINKEDIN_API_URL" env-default:"https://api.linkedin.com"`
	}
	Telegram struct {
		Token    string `env:"TELEGRAM_TOKEN"`
		Operator int64  `env:"TELEGRAM_OPERATOR"`
	}
	OpenAI struct {
		APIKey string `env:"OPENAI_API_KEY"`
		Model  string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN returns the Postgres connection string used by goose and the
// migration tool.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode)
}
