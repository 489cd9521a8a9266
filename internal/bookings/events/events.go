package events

import (
	"context"

	"slotly/pkg/kafka"
	"slotly/pkg/logger"
	"slotly/pkg/model"
)

const (
	Topic    = "bookings.events"
	DLQTopic = "bookings.events.dlq"

	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
)

// Publisher emits booking lifecycle events. Publishing is best-effort from
// the caller's point of view: the admission decision has already been
// committed when an event goes out.
type Publisher interface {
	BookingCreated(ctx context.Context, b *model.Booking) error
	BookingUpdated(ctx context.Context, b *model.Booking) error
	BookingCancelled(ctx context.Context, b *model.Booking) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, b *model.Booking) error {
	return p.publish(ctx, EventBookingCreated, b)
}

func (p *kafkaPublisher) BookingUpdated(ctx context.Context, b *model.Booking) error {
	return p.publish(ctx, EventBookingUpdated, b)
}

func (p *kafkaPublisher) BookingCancelled(ctx context.Context, b *model.Booking) error {
	return p.publish(ctx, EventBookingCancelled, b)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, b *model.Booking) error {
	// Key by facility+date so events for one slot stay ordered per partition.
	key := b.FacilityID + "|" + b.Date

	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(b).
		WithEventType(eventType).
		WithSource(p.source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", b.ID,
			"error", err,
		)
		return err
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// Nop returns a publisher that drops every event. Used when Kafka is not
// configured and in tests.
func Nop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) BookingCreated(context.Context, *model.Booking) error   { return nil }
func (nopPublisher) BookingUpdated(context.Context, *model.Booking) error   { return nil }
func (nopPublisher) BookingCancelled(context.Context, *model.Booking) error { return nil }
func (nopPublisher) Close() error                                           { return nil }
