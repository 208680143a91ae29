package main

import (
	"context"

	"github.com/joho/godotenv"

	"clinicbook/internal/appointments/gateway"
	"clinicbook/internal/appointments/handler"
	"clinicbook/internal/appointments/service"
	"clinicbook/internal/appointments/validator"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
	"clinicbook/pkg/events"
)

const ServiceName = "clinicbook"

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting appointment booking service")

	gw, err := gateway.NewGoogleCalendar(context.Background(), cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize calendar gateway", "error", err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
		cfg.Log.Info("Booking event publishing enabled",
			"brokers", cfg.KafkaBrokers,
			"topic", cfg.KafkaTopic,
		)
	}

	apptValidator := validator.NewAppointmentValidator(cfg.Log)
	availability := service.NewAvailabilityService(gw, cfg)
	bookings := service.NewBookingService(gw, apptValidator, publisher, cfg)

	serverApp := app.New(cfg)
	serverApp.SetHandlers(
		handler.NewAppointmentHandler(availability, bookings, cfg.Location, cfg.Log),
		handler.NewHealthHandler(gw, cfg.Log),
	)
	serverApp.OnShutdown(publisher.Close)

	cfg.Log.Info("Appointment service initialized", "calendar_id", cfg.CalendarID)
	serverApp.Run()
}
