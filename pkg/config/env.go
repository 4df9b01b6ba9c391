package config

const (
	EnvBaseURL        = "PAYSIM_BASE_URL"
	EnvServiceToken   = "PAYSIM_SERVICE_TOKEN"
	EnvPaymentSuccess = "PAYSIM_PAYMENT_SUCCESS"
	EnvOutputMode     = "PAYSIM_OUTPUT_MODE"
	EnvRequestTimeout = "PAYSIM_REQUEST_TIMEOUT"

	EnvLogLevel = "LOG_LEVEL"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"

	EnvStubPort          = "STUB_PORT"
	EnvStubSigningSecret = "STUB_SIGNING_SECRET"
	EnvStubFailStatus    = "STUB_FAIL_STATUS"
	EnvStubTokenTTL      = "STUB_TOKEN_TTL"
)
