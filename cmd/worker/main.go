package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Domenick1991/bookingflow/config"
	"github.com/Domenick1991/bookingflow/internal/email"
	"github.com/Domenick1991/bookingflow/internal/kafka"
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	emailSender := email.NewSender(logger)

	logger.Info("notification worker started", zap.String("topic", cfg.Kafka.NotificationsTopic))

	if err := consumer.ConsumeConfirmations(ctx, emailSender.Send); err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.InitialFields = map[string]interface{}{"app": "bookingflow-worker"}
	zcfg.OutputPaths = []string{"stdout"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
