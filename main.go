package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"madamchoice/internal/config"
	"madamchoice/internal/database"
	"madamchoice/internal/repositories"
	"madamchoice/internal/server"
	"madamchoice/internal/services"
	"madamchoice/pkg/mailer"
	"madamchoice/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database ready", zap.String("driver", cfg.Database.Driver))

	// --- Mail ---
	var mail services.Mailer = mailer.Disabled{}
	if cfg.Mail.Enabled() {
		mail = mailer.New(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
		}, logger.Named("mailer"))
	} else {
		logger.Warn("SMTP settings incomplete, email is disabled")
	}

	// --- Order events ---
	var events services.OrderEventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger.Named("rabbitmq"))
		if err != nil {
			return err
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				logger.Error("Failed to close RabbitMQ client", zap.Error(err))
			}
		}()
		events = mqClient

		if cfg.Mail.Enabled() {
			notifier := services.NewOrderNotifier(mail, cfg.Mail.From, cfg.Mail.To)
			go func() {
				if err := mqClient.ConsumeOrderEvents(ctx, notifier.HandleOrderCreated); err != nil {
					logger.Error("Order event consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	// --- Services and HTTP ---
	orderService := services.NewOrderService(repositories.NewGORMOrderRepository(db), events, logger.Named("orders"))
	reviewService := services.NewReviewService(repositories.NewGORMReviewRepository(db))
	authService := services.NewAuthService(repositories.NewGORMUserRepository(db))
	contactService := services.NewContactService(mail, cfg.Mail.From, cfg.Mail.To)

	app := server.New(server.Deps{
		Orders:  orderService,
		Reviews: reviewService,
		Auth:    authService,
		Contact: contactService,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		Logger: logger.Named("http"),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.AppPort))
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	logger.Info("Shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	logger.Info("Server gracefully stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parse LOG_LEVEL %q", level)
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	logger, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
