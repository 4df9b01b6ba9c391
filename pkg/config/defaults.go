package config

import "time"

const (
	OutputModeLegacy = "legacy"
	OutputModeStrict = "strict"
)

const (
	DefaultBaseURL        = "http://localhost:5064"
	DefaultPaymentSuccess = true
	DefaultOutputMode     = OutputModeStrict
	DefaultRequestTimeout = 10 * time.Second

	DefaultLogLevel = "info"

	DefaultKafkaTopic = "payments.simulated"

	DefaultStubPort        = "5064"
	DefaultStubTokenTTL    = 24 * time.Hour
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)
