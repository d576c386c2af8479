package message

import (
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
)

const commandTopicPrefix = "commands."

var marshaler = cqrs.JSONMarshaler{
	GenerateName: cqrs.StructName,
}

// SubscriberFactory creates the subscriber of one consumer group.
type SubscriberFactory func(consumerGroup string) (watermillMessage.Subscriber, error)

func NewRedisPublisher(rdb *redis.Client, logger watermill.LoggerAdapter) (watermillMessage.Publisher, error) {
	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating redis publisher: %w", err)
	}

	return publisher, nil
}

func NewRedisSubscriberFactory(rdb *redis.Client, logger watermill.LoggerAdapter) SubscriberFactory {
	return func(consumerGroup string) (watermillMessage.Subscriber, error) {
		return redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        rdb,
			ConsumerGroup: consumerGroup,
		}, logger)
	}
}

func NewEventBus(publisher watermillMessage.Publisher, logger watermill.LoggerAdapter) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(log.CorrelationPublisherDecorator{Publisher: publisher}, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return params.EventName, nil
		},
		Marshaler: marshaler,
		Logger:    logger,
	})
}

func NewCommandBus(publisher watermillMessage.Publisher, logger watermill.LoggerAdapter) (*cqrs.CommandBus, error) {
	return cqrs.NewCommandBusWithConfig(log.CorrelationPublisherDecorator{Publisher: publisher}, cqrs.CommandBusConfig{
		GeneratePublishTopic: func(params cqrs.CommandBusGeneratePublishTopicParams) (string, error) {
			return commandTopicPrefix + params.CommandName, nil
		},
		Marshaler: marshaler,
		Logger:    logger,
	})
}
