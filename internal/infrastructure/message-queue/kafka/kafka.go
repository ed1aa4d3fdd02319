package kafka

import (
	"context"
	"time"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/segmentio/kafka-go"
)

func CreateKafkaReader(conf config.KafkaConfig, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:          []string{conf.BrokerAddress},
		Topic:            conf.BrokerTopic,
		MinBytes:         1e3, // 1KB
		MaxBytes:         1e6, // 1MB
		MaxWait:          100 * time.Millisecond,
		ReadLagInterval:  -1,
		StartOffset:      kafka.LastOffset,
		GroupID:          groupID,
		QueueCapacity:    1000,
		ReadBatchTimeout: 10 * time.Millisecond,
	})
}

func CreateKafkaProducer(ctx context.Context, conf config.KafkaConfig) (*kafka.Conn, error) {
	return kafka.DialLeader(ctx, "tcp", conf.BrokerAddress, conf.BrokerTopic, conf.BrokerPartition)
}
