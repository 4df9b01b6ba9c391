package config

import (
	"fmt"
	"os"
	"paysim/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	BaseURL        string        `validate:"required,http_url"`
	ServiceToken   string        `validate:"required_if=PaymentSuccess true"`
	PaymentSuccess bool
	OutputMode     string        `validate:"oneof=legacy strict"`
	RequestTimeout time.Duration `validate:"gt=0"`

	LogLevel string `validate:"oneof=debug info warn error"`

	KafkaBrokers []string `validate:"dive,hostname_port"`
	KafkaTopic   string   `validate:"required_with=KafkaBrokers"`

	Log *logger.Logger `validate:"-"`
}

// FromEnv reads the simulator configuration from the environment without
// validating it, so command line flags can still override individual values.
func FromEnv(serviceName string) *Config {
	cfg := &Config{
		BaseURL:        getEnvStr(EnvBaseURL, DefaultBaseURL),
		ServiceToken:   getEnvStr(EnvServiceToken, ""),
		PaymentSuccess: getEnvBool(EnvPaymentSuccess, DefaultPaymentSuccess),
		OutputMode:     getEnvStr(EnvOutputMode, DefaultOutputMode),
		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),

		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		KafkaBrokers: getEnvList(EnvKafkaBrokers),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),
	}

	cfg.Log = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  logger.TEXT,
		Output:  os.Stderr,
		Service: serviceName,
	})
	return cfg
}

func (cfg *Config) Validate() error {
	return validateStruct(cfg)
}

func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"base_url", cfg.BaseURL,
		"service_token", RedactSecret(cfg.ServiceToken),
		"payment_success", cfg.PaymentSuccess,
		"output_mode", cfg.OutputMode,
		"request_timeout", cfg.RequestTimeout,
		"log_level", cfg.LogLevel,
		"kafka_enabled", cfg.KafkaEnabled(),
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_topic", cfg.KafkaTopic,
	)
}

// RedactSecret keeps only enough of a credential to tell two apart in logs.
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "***"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var errors []string
	for _, fe := range verrs {
		errors = append(errors, describeFieldError(fe))
	}

	errMsg := "Configuration validation failed:\n"
	for i, e := range errors {
		errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
	}
	return fmt.Errorf("%s", errMsg)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "required_with":
		return fmt.Sprintf("%s cannot be empty when %s is set", fe.Field(), fe.Param())
	case "http_url":
		return fmt.Sprintf("%s must be an http(s) URL, got: %v", fe.Field(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got: %v", fe.Field(), fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive, got: %v", fe.Field(), fe.Value())
	case "hostname_port":
		return fmt.Sprintf("%s entries must be host:port, got: %v", fe.Namespace(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation, got: %v", fe.Field(), fe.Tag(), fe.Value())
	}
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
