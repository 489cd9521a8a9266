package main

import (
	"slotly/internal/bookings/events"
	bookingshandler "slotly/internal/bookings/handler"
	bookingsrepo "slotly/internal/bookings/repository"
	bookingsservice "slotly/internal/bookings/service"
	"slotly/internal/bookings/validator"
	facilitieshandler "slotly/internal/facilities/handler"
	facilitiesrepo "slotly/internal/facilities/repository"
	facilitiesservice "slotly/internal/facilities/service"
	usershandler "slotly/internal/users/handler"
	usersrepo "slotly/internal/users/repository"
	usersservice "slotly/internal/users/service"
	"slotly/pkg/app"
	"slotly/pkg/config"
	"slotly/pkg/kafka"
	kafka_config "slotly/pkg/kafka/config"
	kafka_middleware "slotly/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	publisher := initPublisher(cfg)
	defer publisher.Close()

	facilityService := facilitiesservice.NewFacilityService(
		facilitiesrepo.NewMongoFacilityRepository(cfg),
		cfg,
	)
	userService := usersservice.NewUserService(
		usersrepo.NewMongoUserRepository(cfg),
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingsrepo.NewMongoBookingRepository(cfg),
		facilityService,
		userService,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Bookings service initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		facilitieshandler.NewFacilityHandler(facilityService, cfg.Log),
		usershandler.NewUserHandler(userService, cfg.Log),
	)
	serverApp.Run()
}

// initPublisher wires the Kafka event stream. Unless KAFKA_ENABLED is set the
// service admits bookings without publishing, so no admission ever waits on
// broker retries against an absent cluster.
func initPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.Nop()
	}
	producer, err := kafka.NewProducer(kafkaCfg, events.Topic, events.DLQTopic)
	if err != nil {
		cfg.Log.Warn("Kafka producer not available, booking events disabled", "error", err)
		return events.Nop()
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware())
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Log)
}
