package repository

import (
	"context"

	"CashCast/internal/domain/models"
	"CashCast/pkg/kafka"
)

// KafkaReportPublisher emits report events to a Kafka topic, keyed by report
// ID so replays of the same dataset land on the same partition.
type KafkaReportPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaReportPublisher creates a publisher over an existing producer.
func NewKafkaReportPublisher(producer *kafka.Producer, topic string) *KafkaReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, event models.ReportEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(event.ID), event)
}

func (p *KafkaReportPublisher) Close() error {
	return p.producer.Close()
}
