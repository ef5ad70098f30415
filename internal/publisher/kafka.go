package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/jgoulah/hvacsim/internal/config"
	"github.com/jgoulah/hvacsim/pkg/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes hour records and run summaries to a topic, keyed by run ID
type KafkaPublisher struct {
	writer messageWriter
	log    *zap.Logger
}

// NewKafka creates a producer for the configured brokers
func NewKafka(cfg config.KafkaConfig, log *zap.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one Kafka broker is required when enabled")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "hvacsim.hours"
	}

	w := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	return &KafkaPublisher{writer: w, log: log}, nil
}

// PublishKafka writes one message per hour followed by the summary
func (k *KafkaPublisher) PublishKafka(ctx context.Context, run *models.Run) error {
	key := []byte(run.ID.String())
	msgs := make([]kafka.Message, 0, len(run.Records)+1)

	for _, rec := range run.Records {
		b, err := json.Marshal(NewHourPayload(run, rec))
		if err != nil {
			return fmt.Errorf("encoding hour %d: %w", rec.Hour, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:     key,
			Value:   b,
			Time:    run.HourTime(rec.Hour),
			Headers: []kafka.Header{{Key: "type", Value: []byte("hour")}},
		})
	}

	b, err := json.Marshal(NewSummaryPayload(run))
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	msgs = append(msgs, kafka.Message{
		Key:     key,
		Value:   b,
		Time:    run.StartedAt,
		Headers: []kafka.Header{{Key: "type", Value: []byte("summary")}},
	})

	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("writing to kafka: %w", err)
	}

	k.log.Info("published run to Kafka", zap.Stringer("run", run.ID), zap.Int("messages", len(msgs)))
	return nil
}

// Close flushes and closes the writer
func (k *KafkaPublisher) Close() error {
	return k.writer.Close()
}
