package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/saraye/config"
	"github.com/Domenick1991/saraye/internal/kafka"
	"github.com/Domenick1991/saraye/internal/logging"
	"github.com/Domenick1991/saraye/internal/notify"
	"github.com/Domenick1991/saraye/internal/repository"
	"github.com/Domenick1991/saraye/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.WithError(err).Fatal("connect postgres")
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	bookingService := booking.NewBookingService(
		repository.NewBookingRepository(pool),
		repository.NewPropertyRepository(pool),
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Worker.CompletionSchedule, func() {
		completeStays(ctx, bookingService, logger)
	}); err != nil {
		logger.WithError(err).Fatal("schedule stay completion")
	}
	scheduler.Start()
	logger.WithField("schedule", cfg.Worker.CompletionSchedule).Info("stay completion scheduled")

	if cfg.Kafka.NotificationsTopic != "" {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
		defer consumer.Close()

		sender := notify.NewSender(logger)
		go func() {
			if err := consumer.Consume(ctx, sender.Send); err != nil {
				logger.WithError(err).Error("notification consumer stopped")
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down worker")
	<-scheduler.Stop().Done()
}

func completeStays(ctx context.Context, bookings booking.BookingUseCase, log logrus.FieldLogger) {
	completed, err := bookings.CompleteFinishedStays(ctx, time.Now().UTC())
	if err != nil {
		log.WithError(err).Error("complete finished stays")
		return
	}
	if len(completed) > 0 {
		log.WithField("count", len(completed)).Info("marked finished stays completed")
	}
}
