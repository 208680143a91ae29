package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"clinicbook/pkg/logger"
)

const TypeBookingConfirmed = "booking.confirmed"

// BookingConfirmed is published after a successful calendar write.
// Downstream consumers (reminders, notifications) key on the calendar
// event ID.
type BookingConfirmed struct {
	EventID         string    `json:"event_id"`
	CalendarEventID string    `json:"calendar_event_id"`
	Name            string    `json:"name"`
	Service         string    `json:"service"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	BookedAt        time.Time `json:"booked_at"`
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, ev BookingConfirmed) error
	Close() error
}

// KafkaPublisher writes booking events to a single topic, hashed by
// calendar event ID so per-booking ordering holds.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer error", "message", msg, "args", args)
		}),
	}

	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmed) error {
	if ev.EventID == "" {
		ev.EventID = uuid.New().String()
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(ev.CalendarEventID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.EventID)},
			{Key: "event_type", Value: []byte(TypeBookingConfirmed)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.log.Debug("Booking event published",
		"event_id", ev.EventID,
		"calendar_event_id", ev.CalendarEventID,
		"topic", p.writer.Topic,
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher stands in when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingConfirmed(context.Context, BookingConfirmed) error { return nil }
func (NoopPublisher) Close() error                                                    { return nil }
