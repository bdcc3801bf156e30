package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-relay/broker"
	"chat-relay/contract"
	"chat-relay/infrastructure/web"
	"chat-relay/internal"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
	"chat-relay/sink"
	"chat-relay/tracker"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for the HTTP server and background workers.
func run() error {
	// 1. Configuration & Logger
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil && !goerrors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories, registry, emitter
	messageRepository := repositories.NewMessageRepository(db, log, config.LimitMessages)
	readStateRepository := repositories.NewReadStateRepository(db, log, config.RequestTokenTTL)
	registry := runtime.NewRegistry()
	emitter := runtime.NewChannelEmitter(config.BufferSize, log)
	notifier := runtime.NewRoomNotifier(registry, messageRepository, readStateRepository, log)
	readTracker := tracker.NewReadTracker(messageRepository, readStateRepository, notifier, emitter, log)

	// 4. Broker: Kafka when brokers are configured, in-process otherwise.
	var (
		publisher contract.Broker
		consumer  contract.BrokerConsumer
	)
	if len(config.KafkaBrokers) > 0 {
		kafkaBroker := broker.NewKafkaBroker(config.KafkaBrokers, config.KafkaTopic)
		defer kafkaBroker.Close()
		kafkaConsumer := broker.NewKafkaConsumer(config.KafkaBrokers, config.KafkaGroupID, config.KafkaTopic, log)
		defer kafkaConsumer.Close()
		publisher, consumer = kafkaBroker, kafkaConsumer
		log.Info("Kafka broker enabled", "brokers", config.KafkaBrokers, "topic", config.KafkaTopic)
	} else {
		channelBroker := broker.NewChannelBroker(config.BufferSize, log)
		publisher, consumer = channelBroker, channelBroker
		log.Info("In-process broker enabled (no KAFKA_BROKERS configured)")
	}

	// 5. Pipeline & supervised workers
	pipeline := runtime.NewPipeline(publisher, messageRepository, readTracker, registry, notifier, emitter,
		runtime.PipelineConfig{
			PublishTimeout:     config.PublishTimeout,
			ConfirmDeadline:    config.ConfirmDeadline,
			MaxPublishAttempts: config.MaxPublishAttempts,
			BackoffInitial:     config.BackoffInitial,
			BackoffMax:         config.BackoffMax,
		}, log)

	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		pipeline,
		workers.NewDeliveryWorker(consumer, messageRepository, pipeline, log),
		workers.NewWatchdogWorker(pipeline, config.WatchdogInterval, config.WatchdogDeadline, log),
		workers.NewEventFanout(log, emitter.Events(), config.SinkTimeout, sink.NewAuditSink(log)),
	)

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sup.Run(ctx)

	// 7. HTTP server
	chatService := services.NewChatService(pipeline, readTracker, registry, messageRepository)
	e := echo.New()
	e.HideBanner = true
	web.NewHandler(chatService, config.ConnectionBufferSize, log).Register(e)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	// Use an error channel to capture Start() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := e.Start(address); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown error", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
