// Package kafka publishes observation snapshots to a broker for downstream
// consumers. Publishing is optional and feature-flagged in config.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/mesowx/mesoanalysis/internal/config"
	"github.com/mesowx/mesoanalysis/internal/store"
)

// Publisher produces snapshot messages to a Kafka topic.
// It implements ingest.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured snapshot topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishSnapshot serializes and publishes one snapshot as a single message
// keyed by its timestamp.
func (p *Publisher) PublishSnapshot(ctx context.Context, snap store.Snapshot) error {
	msg, err := serializeSnapshot(snap)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func serializeSnapshot(snap store.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snap.Time.UTC().Format(time.RFC3339)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_count", Value: []byte(strconv.Itoa(len(snap.Observations)))},
		},
	}, nil
}
