package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Domenick1991/bookingflow/api"
	"github.com/Domenick1991/bookingflow/config"
	"github.com/Domenick1991/bookingflow/internal/bootstrap"
	"github.com/Domenick1991/bookingflow/internal/cache"
	"github.com/Domenick1991/bookingflow/internal/confirm"
	"github.com/Domenick1991/bookingflow/internal/kafka"
	"github.com/Domenick1991/bookingflow/internal/offers"
	"github.com/Domenick1991/bookingflow/internal/workflow"
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

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.OffersCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	offerService := offers.NewService(offers.NewMockProvider(), redisCache, logger)

	generator := confirm.NewGenerator(
		confirm.WithDelay(time.Duration(cfg.Booking.SubmissionDelayMS)*time.Millisecond),
		confirm.WithFailureRate(cfg.Booking.SubmissionFailureRate),
	)
	manager := workflow.NewManager(generator, logger,
		workflow.WithProducer(producer, cfg.Kafka.ConfirmationsTopic),
		workflow.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	go sweepIdle(ctx, manager, cfg.Booking, logger)

	bookingHandler := api.NewBookingHandler(manager)
	offerHandler := api.NewOfferHandler(offerService)

	if err := bootstrap.Run(ctx, cfg, bookingHandler, offerHandler); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// sweepIdle drops abandoned booking attempts so in-memory state does not
// grow without bound.
func sweepIdle(ctx context.Context, manager *workflow.Manager, cfg config.BookingConfig, logger *zap.Logger) {
	sweepEvery := time.Duration(cfg.IdleSweepMinutes) * time.Minute
	idleTTL := time.Duration(cfg.IdleTTLMinutes) * time.Minute
	if sweepEvery <= 0 || idleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := manager.SweepIdle(idleTTL); removed > 0 {
				logger.Info("removed idle booking workflows", zap.Int("count", removed))
			}
		case <-ctx.Done():
			return
		}
	}
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.InitialFields = map[string]interface{}{"app": "bookingflow"}
	zcfg.OutputPaths = []string{"stdout"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
