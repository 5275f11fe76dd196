package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staybook/internal/app/commands"
	availabilityapp "staybook/internal/app/handlers/availability"
	staysapp "staybook/internal/app/handlers/stays"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/app/queries"
	"staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	"staybook/internal/infra/holidaze"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	infraoutbox "staybook/internal/infra/outbox"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app := buildApplication(cfg, logger)

	var metrics *obs.Metrics
	if cfg.MetricsEnabled {
		metrics = obs.NewMetrics(cfg.ServiceName)
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, metrics, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, app.handlers)

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		worker := &infraoutbox.Worker{
			Store:       app.outboxStore,
			Producer:    producer,
			Interval:    cfg.OutboxInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Source:      "app://" + cfg.ServiceName,
		}
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
		logger.Info("outbox worker started", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka disabled, events stay in the outbox")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers    ginserver.Handlers
	outboxStore *memory.OutboxStore
}

func buildApplication(cfg config.Config, logger *slog.Logger) application {
	store := holidaze.NewClient(cfg.StoreBaseURL, cfg.StoreAPIKey, cfg.StoreTimeout, logger)
	collections := memory.NewStayCollections()
	outboxStore := memory.NewOutboxStore()
	idStore := memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	encoder := outbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, staysapp.CreateStayCommand{}.Key(), &staysapp.CreateStayHandler{
		Directory:   store,
		Gateway:     store,
		Collections: collections,
		Outbox:      outboxStore,
		Encoder:     encoder,
	})
	commands.RegisterHandler(commandBus, staysapp.UpdateStayCommand{}.Key(), &staysapp.UpdateStayHandler{
		Directory:   store,
		Gateway:     store,
		Collections: collections,
		Outbox:      outboxStore,
		Encoder:     encoder,
	})
	commands.RegisterHandler(commandBus, staysapp.DeleteStayCommand{}.Key(), &staysapp.DeleteStayHandler{
		Directory:   store,
		Gateway:     store,
		Collections: collections,
		Outbox:      outboxStore,
		Encoder:     encoder,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{
		Directory: store,
	})
	queries.RegisterHandler(queryBus, staysapp.PreviewStayQuery{}.Key(), &staysapp.PreviewStayHandler{
		Directory: store,
	})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(),
		middleware.Idempotency(idStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryValidation(),
	)

	return application{
		handlers: ginserver.Handlers{
			Availability: ginserver.AvailabilityHandler{Queries: queryBusWithMiddleware},
			Stays: ginserver.StayHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
		},
		outboxStore: outboxStore,
	}
}
