package events

import (
	"context"

	"ordermanager/internal/usecase"
)

// Kafka未設定のとき用
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(ctx context.Context, ev usecase.OrderEvent) error {
	return nil
}
