package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"storefront/cart"
	"storefront/catalog"
	"storefront/checkout"
	"storefront/config"
	"storefront/document"
	"storefront/http"
	"storefront/idempotency"
	"storefront/message"
	"storefront/order"
	"storefront/payment"
	"storefront/postgres"
	"storefront/proof"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Deps struct {
	Config      config.Config
	Logger      watermill.LoggerAdapter
	DB          *sqlx.DB
	RedisClient *redis.Client

	ReceiptIssuer       message.ReceiptIssuer
	SpreadsheetAppender message.SpreadsheetAppender
	TicketFileStorer    message.TicketFileStorer
	PaymentRefunder     message.PaymentRefunder
}

type Service struct {
	db         *sqlx.DB
	httpAddr   string
	catalog    *catalog.Catalog
	msgRouter  *message.Router
	forwarder  *message.Forwarder
	httpRouter *echo.Echo
}

func New(deps Deps) (*Service, error) {
	publisher, err := message.NewRedisPublisher(deps.RedisClient, deps.Logger)
	if err != nil {
		return nil, err
	}

	eventBus, err := message.NewEventBus(publisher, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	commandBus, err := message.NewCommandBus(publisher, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating command bus: %w", err)
	}

	forwarder, err := message.NewForwarder(deps.DB, publisher, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating forwarder: %w", err)
	}

	msgRouter, err := message.NewRouter(message.RouterDeps{
		Logger:              deps.Logger,
		Subscribers:         message.NewRedisSubscriberFactory(deps.RedisClient, deps.Logger),
		ReceiptIssuer:       deps.ReceiptIssuer,
		SpreadsheetAppender: deps.SpreadsheetAppender,
		TicketFileStorer:    deps.TicketFileStorer,
		PaymentRefunder:     deps.PaymentRefunder,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message router: %w", err)
	}

	eventRepo := postgres.NewEventRepo(deps.DB)
	ticketRepo := postgres.NewTicketRepo(deps.DB)
	purchaseRepo := postgres.NewPurchaseRepo(deps.DB, deps.Logger)

	events := catalog.New(eventRepo)
	shoppingCart := cart.New()
	orders := order.NewStore()
	documents := document.NewGenerator()

	payments := payment.NewSimulator(
		payment.Random(rand.New(rand.NewSource(time.Now().UnixNano()))),
		payment.WithDelay(deps.Config.PaymentDelay),
	)

	co := checkout.New(checkout.Deps{
		Cart:        shoppingCart,
		Orders:      orders,
		Payments:    payments,
		Purchases:   purchaseRepo,
		Inventory:   ticketRepo,
		Proofs:      proof.NewGenerator(),
		Documents:   documents,
		Events:      eventBus,
		Commands:    commandBus,
		Parallelism: deps.Config.CheckoutParallelism,
	})

	httpRouter := http.NewRouter(http.RouterDeps{
		Catalog:     events,
		Cart:        shoppingCart,
		Orders:      orders,
		Checkout:    co,
		Idempotency: idempotency.NewStore(deps.RedisClient, deps.Config.IdempotencyTTL),
		Documents:   documents,
		Purchases:   purchaseRepo,
	})

	return &Service{
		db:         deps.DB,
		httpAddr:   deps.Config.HTTPAddr,
		catalog:    events,
		msgRouter:  msgRouter,
		forwarder:  forwarder,
		httpRouter: httpRouter,
	}, nil
}

func (s Service) Run(ctx context.Context) error {
	if err := postgres.InitialiseDB(ctx, s.db); err != nil {
		return fmt.Errorf("initialising database: %w", err)
	}

	if err := s.catalog.Refresh(ctx); err != nil {
		logrus.WithError(err).Warn("Starting with an empty event catalog")
	}

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.msgRouter.Run(runCtx); err != nil {
			return fmt.Errorf("running messaging router: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		if err := s.forwarder.Run(runCtx); err != nil {
			return fmt.Errorf("running outbox forwarder: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// Wait for message router
		<-s.msgRouter.Running()

		logrus.Info("Starting HTTP server...")
		err := s.httpRouter.Start(s.httpAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := s.httpRouter.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("waiting for shutdown: %w", err)
	}
	logrus.Info("Shutdown complete.")

	return nil
}
