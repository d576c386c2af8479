package message

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerGroupPrefix = "svc-storefront."

type RouterDeps struct {
	Logger              watermill.LoggerAdapter
	Subscribers         SubscriberFactory
	ReceiptIssuer       ReceiptIssuer
	SpreadsheetAppender SpreadsheetAppender
	TicketFileStorer    TicketFileStorer
	PaymentRefunder     PaymentRefunder
}

type Router struct {
	*message.Router
}

func NewRouter(deps RouterDeps) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}

	addMiddlewares(router, deps.Logger)

	ep, err := cqrs.NewEventProcessorWithConfig(router, cqrs.EventProcessorConfig{
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return deps.Subscribers(consumerGroupPrefix + params.HandlerName)
		},
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return params.EventName, nil
		},
		Marshaler: marshaler,
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event processor: %w", err)
	}

	cp, err := cqrs.NewCommandProcessorWithConfig(router, cqrs.CommandProcessorConfig{
		SubscriberConstructor: func(params cqrs.CommandProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return deps.Subscribers(consumerGroupPrefix + params.HandlerName)
		},
		GenerateSubscribeTopic: func(params cqrs.CommandProcessorGenerateSubscribeTopicParams) (string, error) {
			return commandTopicPrefix + params.CommandName, nil
		},
		Marshaler: marshaler,
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating command processor: %w", err)
	}

	eventHandlers := []cqrs.EventHandler{
		cqrs.NewEventHandler("issue-receipt", handleIssueReceipt(deps.ReceiptIssuer)),
		cqrs.NewEventHandler("append-to-orders-tracker", handleAppendToOrdersTracker(deps.SpreadsheetAppender)),
		cqrs.NewEventHandler("store-ticket-file", handleStoreTicketFile(deps.TicketFileStorer)),
		cqrs.NewEventHandler("append-to-purchases-tracker", handleAppendToPurchasesTracker(deps.SpreadsheetAppender)),
	}

	if err := ep.AddHandlers(eventHandlers...); err != nil {
		return nil, fmt.Errorf("adding event handlers: %w", err)
	}

	if err := cp.AddHandlers(
		cqrs.NewCommandHandler("refund-order", handleRefundOrder(deps.PaymentRefunder)),
	); err != nil {
		return nil, fmt.Errorf("adding command handlers: %w", err)
	}

	return &Router{router}, nil
}
