package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/saraye/api"
	"github.com/Domenick1991/saraye/config"
	"github.com/Domenick1991/saraye/internal/bootstrap"
	"github.com/Domenick1991/saraye/internal/cache"
	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/Domenick1991/saraye/internal/kafka"
	"github.com/Domenick1991/saraye/internal/logging"
	"github.com/Domenick1991/saraye/internal/repository"
	"github.com/Domenick1991/saraye/internal/service/auth"
	"github.com/Domenick1991/saraye/internal/service/booking"
	"github.com/Domenick1991/saraye/internal/service/payment"
	"github.com/Domenick1991/saraye/internal/service/property"
	"github.com/Domenick1991/saraye/internal/service/report"
	"github.com/Domenick1991/saraye/internal/service/review"
	"github.com/jackc/pgx/v5/pgxpool"
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

	sequence := repository.NewSequence(pool)
	if err := sequence.SeedFromTables(ctx); err != nil {
		logger.WithError(err).Fatal("seed id sequences")
	}
	idGen := ids.NewGenerator(sequence)

	redisClient := cache.NewRedisClient(cfg.Redis)
	defer redisClient.Close()
	redisCache := cache.NewRedisCache(redisClient, time.Duration(cfg.Booking.PropertyCacheTTL)*time.Second)
	sessions := cache.NewSessionStore(redisClient, time.Duration(cfg.Booking.SessionTTLMinutes)*time.Minute)

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		// Events are best effort; the ledger keeps working without Kafka.
		logger.WithError(err).Warn("kafka unavailable at startup")
	}

	userRepo := repository.NewUserRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	authService := auth.NewAuthService(
		userRepo,
		sessions,
		idGen,
		time.Duration(cfg.Booking.SessionTTLMinutes)*time.Minute,
		cfg.Booking.PasswordHashCost,
	)
	propertyService := property.NewPropertyService(propertyRepo, redisCache, logger)
	bookingService := booking.NewBookingService(
		bookingRepo,
		propertyRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLocker(redisCache, time.Duration(cfg.Booking.LockTTLSeconds)*time.Second),
		booking.WithLogger(logger),
	)
	paymentService := payment.NewPaymentService(bookingService, paymentRepo)
	reviewService := review.NewReviewService(bookingService, reviewRepo, idGen)
	reportService := report.NewReportService(reportRepo, propertyRepo, redisCache, idGen, logger)

	err = bootstrap.Run(ctx, cfg, logger, bootstrap.Options{
		Auth: authService,
		Handlers: []bootstrap.Registrar{
			api.NewAuthHandler(authService),
			api.NewPropertyHandler(propertyService, reviewService),
			api.NewBookingHandler(bookingService, paymentService, reviewService),
			api.NewReportHandler(reportService),
		},
		Probes: map[string]bootstrap.Probe{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
