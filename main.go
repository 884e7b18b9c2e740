package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillswap-service/config"
	"skillswap-service/controller"
	"skillswap-service/database"
	"skillswap-service/event"
	"skillswap-service/event/listener"
	"skillswap-service/model"
	"skillswap-service/router"
	"skillswap-service/service"
	"skillswap-service/socketio"
	"skillswap-service/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	settings, err := config.Load()
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		return 1
	}

	log := newLogger(settings.LogLevel)
	slog.SetDefault(log)

	if err := database.RedisConnect(); err != nil {
		log.Error("failed to connect redis", "error", err)
		return 1
	}
	defer database.RedisClose()
	sessions, ok := database.Redis[0]
	if !ok {
		log.Error("REDIS_DB must include database 0 for sessions")
		return 1
	}

	if err := database.PostgresConnect(); err != nil {
		log.Error("failed to connect postgres", "error", err)
		return 1
	}
	defer func() {
		if err := database.PostgresClose(); err != nil {
			log.Warn("failed to close postgres", "error", err)
		}
	}()

	enforcer, err := database.Casbin(database.Postgres)
	if err != nil {
		log.Error("failed to initialize casbin", "error", err)
		return 1
	}

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "skillswap-service",
	})
	rest.Use(cors.New())

	socket := socketio.Init(rest, database.Redis[1], settings.LogLevel == "DEBUG")
	defer socket.Close(nil)
	pushers := []service.Pusher{socketio.NewNotifier(socket)}

	if settings.EventMode != "DISABLE" {
		bus, err := event.RabbitMQConnect(
			event.RabbitMQURL(),
			[]string{settings.Queue, settings.NotifyQueue},
			log,
			settings.EventMode == "TRACE",
		)
		if err != nil {
			log.Error("failed to connect rabbitmq", "error", err)
			return 1
		}
		defer func() {
			if err := bus.Close(); err != nil {
				log.Warn("failed to close rabbitmq", "error", err)
			}
		}()

		apiEvents := make(chan event.EventChannelData)
		go listener.Api(apiEvents, log)
		if err := bus.Subscribe([]event.RabbitMQSubscribeListener{
			{Queue: settings.Queue, Channel: apiEvents},
		}); err != nil {
			log.Error("failed to subscribe to rabbitmq", "error", err)
			return 1
		}

		pushers = append(pushers, event.NewPublisher(bus, settings.NotifyQueue))
	}

	db := database.Postgres
	users := store.NewUserStore(db)
	listings := store.NewListings(db)
	messages := store.NewMessageStore(db)
	notifications := store.NewNotificationStore(db)
	fanout := service.NewFanout(notifications, messages, log, pushers...)
	notificationService := service.NewNotificationService(notifications)

	handler := controller.New(controller.Services{
		Users:         service.NewUserService(users, store.NewSessionStore(sessions), enforcer, config.Config("OTP_ISSUER"), log),
		Messages:      service.NewMessageService(users, messages, fanout),
		Exchanges:     service.NewExchangeService(users, listings, store.NewExchangeStore(db), fanout),
		Notifications: notificationService,
		Offers:        service.NewListingService[model.Offer, *model.Offer](listings.Offers),
		Requests:      service.NewListingService[model.Request, *model.Request](listings.Requests),
	}, log)

	router.Rest(rest, handler, enforcer)
	router.Socket(socket, notificationService, log)

	errc := make(chan error, 1)
	go func() {
		errc <- rest.Listen(fmt.Sprintf(":%s", settings.ServerPort))
	}()
	log.Info("skillswap-service started", "port", settings.ServerPort, "event_mode", settings.EventMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("http server stopped", "error", err)
			return 1
		}
	}

	if err := rest.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Warn("http shutdown incomplete", "error", err)
	}
	log.Info("skillswap-service stopped")
	return 0
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
