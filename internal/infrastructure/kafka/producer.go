package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует аналитические события витрины в Kafka.
// Запись асинхронная: ошибки доставки только логируются в Completion.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error (%d messages): %s", len(messages), err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// eventMessage — формат события в топике.
type eventMessage struct {
	EventID    string         `json:"event_id"`
	Type       string         `json:"type"`
	SessionID  string         `json:"session_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Publish ставит событие в очередь писателя. Ключ сообщения — id сессии,
// поэтому события одного посетителя попадают в одну партицию.
func (p *Producer) Publish(ctx context.Context, event *domain.Event) error {
	value, err := encodeEvent(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SessionID),
		Value: value,
		Time:  event.OccurredAt,
	}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Close дожидается отправки буферизованных сообщений.
func (p *Producer) Close() error {
	return p.writer.Close()
}

func encodeEvent(event *domain.Event) ([]byte, error) {
	return json.Marshal(eventMessage{
		EventID:    event.ID,
		Type:       string(event.Type),
		SessionID:  event.SessionID,
		OccurredAt: event.OccurredAt,
		Payload:    event.Payload,
	})
}
