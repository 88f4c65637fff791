package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"

	"scoutWorkspace/internal/modules/workspace/domain"
)

type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume feeds every decodable event to handler until ctx is done.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(context.Context, domain.ActivityEvent) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		event, err := decodeActivity(m)
		if err != nil {
			slog.Warn("kafka activity skipped", slog.Int64("offset", m.Offset), slog.Any("error", err))
			continue
		}
		slog.Debug("kafka activity consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("type", string(event.Type)),
			slog.String("workspaceId", event.WorkspaceID),
		)
		if err := handler(ctx, event); err != nil {
			slog.Warn("kafka handler error", slog.String("type", string(event.Type)), slog.Any("error", err))
		}
	}
}

func decodeActivity(m kafka.Message) (domain.ActivityEvent, error) {
	var event domain.ActivityEvent
	if err := sonic.Unmarshal(m.Value, &event); err != nil {
		return domain.ActivityEvent{}, fmt.Errorf("decode activity: %w", err)
	}
	if event.Type == "" {
		event.Type = domain.ActivityType(headerValue(m.Headers, "type"))
	}
	if event.WorkspaceID == "" {
		event.WorkspaceID = string(m.Key)
	}
	event.WorkspaceID = strings.TrimSpace(event.WorkspaceID)
	if event.Type == "" || event.WorkspaceID == "" {
		return domain.ActivityEvent{}, errors.New("decode activity: missing type or workspace")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = m.Time.UTC()
	}
	return event, nil
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Key, key) {
			return strings.TrimSpace(string(h.Value))
		}
	}
	return ""
}
