package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Local & Github Secrets (Fill up for local development)
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	S3URL              string `envconfig:"S3_URL" required:"true"`
	S3Bucket           string `envconfig:"S3_BUCKET" required:"true"`
	S3Region           string `envconfig:"S3_REGION" required:"true"`
	S3AccessKey        string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey        string `envconfig:"S3_SECRET_KEY" required:"true"`
	Environment        string `envconfig:"ENV" default:"development"`

	// Local Secrets (Fill up for local development)
	Port           string `envconfig:"PORT" default:"8080"`
	AdminJWTSecret string `envconfig:"ADMIN_JWT_SECRET"`

	// Billing
	ServiceCostCents int64  `envconfig:"SERVICE_COST_CENTS" default:"4500"`
	TrialGrantCents  int64  `envconfig:"TRIAL_GRANT_CENTS" default:"20000"`
	Currency         string `envconfig:"CURRENCY" default:"CNY"`
	PaymentBaseURL   string `envconfig:"PAYMENT_BASE_URL" default:"https://pay.example.com"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
