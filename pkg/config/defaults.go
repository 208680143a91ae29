package config

import "time"

const (
	DefaultCredentialsFile = "credentials.json"
	DefaultTimeZone        = "Asia/Singapore"

	DefaultBusinessStartHour      = 9
	DefaultBusinessEndHour        = 18
	DefaultWorkingDays            = "Monday,Tuesday,Wednesday,Thursday,Friday"
	DefaultAvailabilityWindowDays = 365

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaTopic = "clinicbook.bookings"
)
