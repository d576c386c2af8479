package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"storefront/clients"
	"storefront/config"
	"storefront/service"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log.Init(cfg.LogLevel)
	logger := watermill.NewStdLogger(false, false)

	if err := run(cfg, logger); err != nil {
		logger.Error("failed to run", err, nil)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger watermill.LoggerAdapter) error {
	c, err := clients.New(cfg.GatewayAddr)
	if err != nil {
		return fmt.Errorf("creating gateway client: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Error("failed to close redis connection", err, nil)
		}
	}()

	dbConn, err := sqlx.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close db connection", err, nil)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	svc, err := service.New(service.Deps{
		Config:              cfg,
		Logger:              logger,
		DB:                  dbConn,
		RedisClient:         rdb,
		ReceiptIssuer:       clients.NewReceiptsClient(c),
		SpreadsheetAppender: clients.NewSpreadsheetsClient(c),
		TicketFileStorer:    clients.NewFilesClient(c),
		PaymentRefunder:     clients.NewPaymentsClient(c),
	})
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	return svc.Run(ctx)
}
