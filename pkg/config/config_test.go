package config

import (
	"bytes"
	"paysim/pkg/logger"
	"strings"
	"testing"
	"time"
)

const testServiceToken = "eyJhbGciOiJIUzI1NiJ9.service.token"

func validConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		ServiceToken:   testServiceToken,
		PaymentSuccess: true,
		OutputMode:     OutputModeStrict,
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       DefaultLogLevel,
		KafkaTopic:     DefaultKafkaTopic,
		Log:            logger.Discard(),
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvServiceToken, "")
	t.Setenv(EnvPaymentSuccess, "")
	t.Setenv(EnvOutputMode, "")
	t.Setenv(EnvRequestTimeout, "")
	t.Setenv(EnvKafkaBrokers, "")

	cfg := FromEnv("test")

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected base url %s, got %s", DefaultBaseURL, cfg.BaseURL)
	}
	if !cfg.PaymentSuccess {
		t.Errorf("payment success should default to true")
	}
	if cfg.OutputMode != OutputModeStrict {
		t.Errorf("expected output mode %s, got %s", OutputModeStrict, cfg.OutputMode)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("expected timeout %s, got %s", DefaultRequestTimeout, cfg.RequestTimeout)
	}
	if cfg.KafkaEnabled() {
		t.Errorf("kafka should be disabled without brokers")
	}
	if cfg.Log == nil {
		t.Fatalf("logger should be initialized")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://tickets.internal:8080")
	t.Setenv(EnvServiceToken, testServiceToken)
	t.Setenv(EnvPaymentSuccess, "false")
	t.Setenv(EnvOutputMode, OutputModeLegacy)
	t.Setenv(EnvRequestTimeout, "2s")
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")

	cfg := FromEnv("test")

	if cfg.BaseURL != "http://tickets.internal:8080" {
		t.Errorf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.ServiceToken != testServiceToken {
		t.Errorf("unexpected service token")
	}
	if cfg.PaymentSuccess {
		t.Errorf("payment success should be false")
	}
	if cfg.OutputMode != OutputModeLegacy {
		t.Errorf("expected legacy output mode, got %s", cfg.OutputMode)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.RequestTimeout)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "kafka-1:9092" || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv(EnvPaymentSuccess, "maybe")
	t.Setenv(EnvRequestTimeout, "soon")

	cfg := FromEnv("test")

	if cfg.PaymentSuccess != DefaultPaymentSuccess {
		t.Errorf("unparsable bool should fall back to default")
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("unparsable duration should fall back to default, got %s", cfg.RequestTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantError string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *Config) {},
		},
		{
			name:      "missing service token",
			mutate:    func(cfg *Config) { cfg.ServiceToken = "" },
			wantError: "ServiceToken cannot be empty",
		},
		{
			name: "no service token needed when payment gate is off",
			mutate: func(cfg *Config) {
				cfg.PaymentSuccess = false
				cfg.ServiceToken = ""
			},
		},
		{
			name:      "unknown output mode",
			mutate:    func(cfg *Config) { cfg.OutputMode = "quiet" },
			wantError: "OutputMode must be one of",
		},
		{
			name:      "zero timeout",
			mutate:    func(cfg *Config) { cfg.RequestTimeout = 0 },
			wantError: "RequestTimeout must be positive",
		},
		{
			name:      "base url without scheme",
			mutate:    func(cfg *Config) { cfg.BaseURL = "localhost:5064" },
			wantError: "BaseURL must be an http(s) URL",
		},
		{
			name:      "bad log level",
			mutate:    func(cfg *Config) { cfg.LogLevel = "loud" },
			wantError: "LogLevel must be one of",
		},
		{
			name: "kafka without topic",
			mutate: func(cfg *Config) {
				cfg.KafkaBrokers = []string{"localhost:9092"}
				cfg.KafkaTopic = ""
			},
			wantError: "KafkaTopic cannot be empty when KafkaBrokers is set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("expected error containing %q, got %q", tt.wantError, err.Error())
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.ServiceToken = ""
	cfg.OutputMode = "quiet"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "1.") || !strings.Contains(err.Error(), "2.") {
		t.Errorf("expected numbered list of two errors, got %q", err.Error())
	}
}

func TestLogConfiguration_RedactsServiceToken(t *testing.T) {
	var buf bytes.Buffer
	cfg := validConfig()
	cfg.Log = logger.New(logger.Config{Level: logger.INFO, Format: logger.JSON, Output: &buf})

	cfg.LogConfiguration()

	if strings.Contains(buf.String(), testServiceToken) {
		t.Errorf("service token leaked into logs: %s", buf.String())
	}
	if !strings.Contains(buf.String(), RedactSecret(testServiceToken)) {
		t.Errorf("expected redacted token in logs: %s", buf.String())
	}
}

func TestRedactSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"short", "***"},
		{"abcdefghijkl", "abcd***"},
	}

	for _, tt := range tests {
		if got := RedactSecret(tt.in); got != tt.want {
			t.Errorf("RedactSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
