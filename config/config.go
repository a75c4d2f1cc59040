package config

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	awspkg "github.com/apexsim/storefront-backend/pkg/aws"
)

type Config struct {
	Port        string
	Environment string // development | production

	MongoURI string
	MongoDB  string
	RedisURL string

	BraintreeEnvironment string // sandbox | production
	BraintreeMerchantID  string
	BraintreePublicKey   string
	BraintreePrivateKey  string

	StripeWebhookSecret string

	KafkaBrokers     string
	OrderEventsTopic string
	OrderSNSTopicARN string

	JWTSecret string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "storefront"),
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		BraintreeEnvironment: getEnv("BRAINTREE_ENVIRONMENT", "sandbox"),
		BraintreeMerchantID:  os.Getenv("BRAINTREE_MERCHANT_ID"),
		BraintreePublicKey:   os.Getenv("BRAINTREE_PUBLIC_KEY"),
		BraintreePrivateKey:  os.Getenv("BRAINTREE_PRIVATE_KEY"),

		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order.events"),
		OrderSNSTopicARN: os.Getenv("ORDER_SNS_TOPIC_ARN"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		if awsCfg, err := awspkg.LoadAWSConfig(context.Background()); err == nil {
			sm := awspkg.NewSecretsClient(awsCfg)

			if creds, err := sm.GetSecretJSON(context.Background(), "storefront/GATEWAY_CREDENTIALS"); err == nil {
				overlay(&cfg.BraintreeMerchantID, creds["BRAINTREE_MERCHANT_ID"])
				overlay(&cfg.BraintreePublicKey, creds["BRAINTREE_PUBLIC_KEY"])
				overlay(&cfg.BraintreePrivateKey, creds["BRAINTREE_PRIVATE_KEY"])
				overlay(&cfg.StripeWebhookSecret, creds["STRIPE_WEBHOOK_SECRET"])
			}
		}
	}

	if cfg.BraintreeMerchantID == "" || cfg.BraintreePublicKey == "" || cfg.BraintreePrivateKey == "" {
		return nil, fmt.Errorf("gateway credentials incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// overlay replaces dst only when the secret actually carries a value.
func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
