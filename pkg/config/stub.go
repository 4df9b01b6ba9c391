package config

import (
	"os"
	"paysim/pkg/logger"
	"time"
)

// StubConfig configures the local ticketing stub server.
type StubConfig struct {
	Port          string        `validate:"required,numeric"`
	SigningSecret string        `validate:"required,min=16"`
	FailStatus    int           `validate:"omitempty,min=400,max=599"`
	TokenTTL      time.Duration `validate:"gt=0"`

	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	LogLevel string `validate:"oneof=debug info warn error"`

	Log *logger.Logger `validate:"-"`
}

func LoadStub(serviceName string) *StubConfig {
	cfg := &StubConfig{
		Port:          getEnvStr(EnvStubPort, DefaultStubPort),
		SigningSecret: getEnvStr(EnvStubSigningSecret, ""),
		FailStatus:    getEnvNum(EnvStubFailStatus, 0),
		TokenTTL:      getEnvDuration(EnvStubTokenTTL, DefaultStubTokenTTL),

		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,

		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    logger.JSON,
		Output:    os.Stdout,
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *StubConfig) Validate() error {
	return validateStruct(cfg)
}

func (cfg *StubConfig) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"signing_secret_set", cfg.SigningSecret != "",
		"fail_status", cfg.FailStatus,
		"token_ttl", cfg.TokenTTL,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}
