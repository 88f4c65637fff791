package broker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

// messageWriter is the subset of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes activity events to one topic, keyed by workspace so a
// workspace's events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

var _ port.ActivityPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher returns nil when no brokers are configured; a nil
// publisher drops every event.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			Async:        true,
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					slog.Warn("kafka async write failed", slog.String("topic", topic), slog.Int("messages", len(messages)), slog.Any("error", err))
				}
			},
		},
		topic: topic,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.ActivityEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}
	msg, err := encodeActivity(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	slog.Debug("kafka activity published",
		slog.String("topic", p.topic),
		slog.String("type", string(event.Type)),
		slog.String("workspaceId", event.WorkspaceID),
	)
	return nil
}

// Close flushes pending async writes.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func encodeActivity(event domain.ActivityEvent) (kafka.Message, error) {
	value, err := sonic.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode activity %s: %w", event.Type, err)
	}
	return kafka.Message{
		Key:   []byte(event.WorkspaceID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}, nil
}
