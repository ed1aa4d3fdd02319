package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const maxPublishRetries = 3

// EventPublisher announces catalog changes to downstream readers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) (err error)
}

type messageWriter interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

type KafkaEventPublisher struct {
	producer messageWriter
	backoff  func(attempt int) time.Duration
}

func CreateKafkaEventPublisher(producer *kafka.Conn) EventPublisher {
	return &KafkaEventPublisher{producer: producer, backoff: linearBackoff}
}

func linearBackoff(attempt int) time.Duration {
	return time.Second * time.Duration(attempt+1)
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) (err error) {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxPublishRetries; i++ {
		err = p.writeKafkaMessage(jsonMsg, key)
		if err == nil {
			return nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Str("event_type", msg.EventType).
			Int("attempt", i+1).Msg("failed to write Kafka message")

		if i < maxPublishRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.backoff(i)):
			}
		}
	}

	return fmt.Errorf("failed to write Kafka message after %d attempts: %w", maxPublishRetries, err)
}

func (p *KafkaEventPublisher) writeKafkaMessage(msg []byte, key string) error {
	message := kafka.Message{Value: msg}
	if key != "" {
		message.Key = []byte(key)
	}

	_, err := p.producer.WriteMessages(message)
	return err
}

// NoopEventPublisher drops events. It is used when no broker is configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	log.Ctx(ctx).Debug().Str("component", "Publish").Str("event_type", msg.EventType).Msg("no broker configured, event dropped")
	return nil
}
