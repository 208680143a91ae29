package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"clinicbook/pkg/logger"
	"clinicbook/pkg/model"
)

type Config struct {
	CalendarID      string
	CredentialsFile string
	TimeZone        string
	Location        *time.Location

	BusinessStartHour      int
	BusinessEndHour        int
	WorkingDays            []time.Weekday
	AvailabilityWindowDays int

	Port string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		CalendarID:      getEnvStr(EnvCalendarID, ""),
		CredentialsFile: getEnvStr(EnvCredentialsFile, DefaultCredentialsFile),
		TimeZone:        getEnvStr(EnvTimeZone, DefaultTimeZone),

		BusinessStartHour:      getEnvNum(EnvBusinessStartHour, DefaultBusinessStartHour),
		BusinessEndHour:        getEnvNum(EnvBusinessEndHour, DefaultBusinessEndHour),
		WorkingDays:            parseWeekdays(getEnvStr(EnvWorkingDays, DefaultWorkingDays)),
		AvailabilityWindowDays: getEnvNum(EnvAvailabilityWindowDays, DefaultAvailabilityWindowDays),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaBrokers: splitNonEmpty(getEnvStr(EnvKafkaBrokers, "")),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.FormatJSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		cfg.Log.Fatal("Invalid timezone", "timezone", cfg.TimeZone, "error", err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// BusinessHours returns the weekly opening template the availability
// queries run against.
func (cfg *Config) BusinessHours() model.BusinessHours {
	return model.BusinessHours{
		StartHour:   cfg.BusinessStartHour,
		EndHour:     cfg.BusinessEndHour,
		WorkingDays: cfg.WorkingDays,
	}
}

func (cfg *Config) Validate() error {
	var errs []string

	if cfg.CalendarID == "" {
		errs = append(errs, "CalendarID cannot be empty, set "+EnvCalendarID)
	}
	if cfg.CredentialsFile == "" {
		errs = append(errs, "CredentialsFile cannot be empty")
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.BusinessStartHour < 0 || cfg.BusinessStartHour > 23 {
		errs = append(errs, fmt.Sprintf("BusinessStartHour must be within 0-23, got: %d", cfg.BusinessStartHour))
	}
	if cfg.BusinessEndHour < 0 || cfg.BusinessEndHour > 23 {
		errs = append(errs, fmt.Sprintf("BusinessEndHour must be within 0-23, got: %d", cfg.BusinessEndHour))
	}
	if cfg.BusinessStartHour >= cfg.BusinessEndHour {
		errs = append(errs, fmt.Sprintf("BusinessStartHour (%d) must be before BusinessEndHour (%d)", cfg.BusinessStartHour, cfg.BusinessEndHour))
	}
	if len(cfg.WorkingDays) == 0 {
		errs = append(errs, "WorkingDays must name at least one weekday (e.g. Monday,Tuesday)")
	}
	if cfg.AvailabilityWindowDays <= 0 {
		errs = append(errs, fmt.Sprintf("AvailabilityWindowDays must be positive, got: %d", cfg.AvailabilityWindowDays))
	}

	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		errs = append(errs, "KafkaTopic cannot be empty when KafkaBrokers are set")
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"calendar_id", cfg.CalendarID,
		"credentials_file", cfg.CredentialsFile,
		"timezone", cfg.TimeZone,
		"business_start_hour", cfg.BusinessStartHour,
		"business_end_hour", cfg.BusinessEndHour,
		"working_days", weekdayNames(cfg.WorkingDays),
		"availability_window_days", cfg.AvailabilityWindowDays,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_enabled", len(cfg.KafkaBrokers) > 0,
		"kafka_topic", cfg.KafkaTopic,
	)
}

func parseWeekdays(s string) []time.Weekday {
	names := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}

	var days []time.Weekday
	seen := map[time.Weekday]bool{}
	for _, part := range strings.Split(s, ",") {
		d, ok := names[strings.ToLower(strings.TrimSpace(part))]
		if !ok || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return days
}

func weekdayNames(days []time.Weekday) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
