package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	ActivationCodeStorePostgresql = "postgresql"
	ActivationCodeStoreRedis      = "redis"

	EmailSenderConsole = "console"
	EmailSenderSes     = "ses"
)

type Config struct {
	IsTestMode       bool     `env:"TEST_MODE" envDefault:"false"`
	Port             int      `env:"PORT" envDefault:"9090"`
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
	Secret           string   `env:"SECRET,required"`
	BcryptHasherCost int      `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`

	// ActivationCodeStore selects where codes live; "redis" requires
	// REDIS_URL to be set.
	ActivationCodeStore string `env:"ACTIVATION_CODE_STORE" envDefault:"postgresql"`
	RedisURL            string `env:"REDIS_URL"`

	CodeCleanupInterval time.Duration `env:"CODE_CLEANUP_INTERVAL" envDefault:"1m"`

	// EmailSender selects the concrete delivery channel; when AmqpURL is
	// set, dispatch goes through the broker and a consumer worker delivers
	// via the selected channel.
	EmailSender              string `env:"EMAIL_SENDER" envDefault:"console"`
	AmqpURL                  string `env:"AMQP_URL"`
	AmqpActivationEmailQueue string `env:"AMQP_ACTIVATION_EMAIL_QUEUE" envDefault:"activation-email"`

	AwsRegion                  string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey               string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey               string `env:"AWS_SECRET_KEY"`
	AwsEmailSender             string `env:"AWS_EMAIL_SENDER"`
	AwsEmailActivationTemplate string `env:"AWS_EMAIL_ACTIVATION_TEMPLATE"`

	SentryDSN string `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.ActivationCodeStore {
	case ActivationCodeStorePostgresql:
	case ActivationCodeStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set when ACTIVATION_CODE_STORE is %q", c.ActivationCodeStore)
		}
	default:
		return fmt.Errorf("invalid ACTIVATION_CODE_STORE value: %q", c.ActivationCodeStore)
	}

	switch c.EmailSender {
	case EmailSenderConsole:
	case EmailSenderSes:
		if c.AwsEmailSender == "" || c.AwsEmailActivationTemplate == "" {
			return fmt.Errorf(
				"AWS_EMAIL_SENDER and AWS_EMAIL_ACTIVATION_TEMPLATE must be set when EMAIL_SENDER is %q",
				c.EmailSender,
			)
		}
	default:
		return fmt.Errorf("invalid EMAIL_SENDER value: %q", c.EmailSender)
	}

	return nil
}
