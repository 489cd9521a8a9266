package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"slotly/internal/bookings/events"
	"slotly/pkg/config"
	"slotly/pkg/kafka"
	kafka_config "slotly/pkg/kafka/config"
	"slotly/pkg/model"
)

const ServiceName = "notifier"

// The notifier tails the booking event stream and records a notification per
// lifecycle change. Delivery channels (mail, chat) hang off this consumer;
// for now each notification is written to the service log.
func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled {
		cfg.Log.Fatal("Kafka is disabled; the notifier cannot run without it. Set KAFKA_ENABLED=true")
	}
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		events.Topic,
		ServiceName,
		handleEvent(cfg),
		events.DLQTopic,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Notifier consuming booking events", "topic", events.Topic)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Fatal("Consumer stopped", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}

func handleEvent(cfg *config.Config) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var booking model.Booking
		if err := msg.DecodeValue(&booking); err != nil {
			return kafka.NewPermanentError("decode booking event", err)
		}

		cfg.Log.Info("Booking notification",
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
			"booking_id", booking.ID,
			"user_id", booking.UserID,
			"facility_id", booking.FacilityID,
			"date", booking.Date,
			"interval", booking.Interval().String(),
			"status", booking.Status,
		)
		return nil
	}
}
