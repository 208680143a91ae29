package config

const (
	EnvCalendarID      = "CALENDAR_ID"
	EnvCredentialsFile = "GOOGLE_CREDENTIALS_FILE"
	EnvTimeZone        = "TIMEZONE"

	EnvBusinessStartHour      = "BUSINESS_START_HOUR"
	EnvBusinessEndHour        = "BUSINESS_END_HOUR"
	EnvWorkingDays            = "WORKING_DAYS"
	EnvAvailabilityWindowDays = "AVAILABILITY_WINDOW_DAYS"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvKafkaTopic   = "KAFKA_TOPIC"
)
