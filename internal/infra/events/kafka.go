package events

import (
	"context"
	"encoding/json"
	"time"

	"ordermanager/internal/usecase"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher は注文イベントをトピックへ流す。
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: w, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev usecase.OrderEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	//本処理を長く待たせない
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.EventID),
		Value: payload,
	})
	if err != nil {
		return err
	}

	p.logger.Debug("order event published",
		zap.String("type", ev.Type),
		zap.Int64("order_id", ev.OrderID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
