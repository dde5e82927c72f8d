package usecase

import (
	"context"
	"time"
)

const (
	OrderEventCreated   = "order.created"
	OrderEventCancelled = "order.cancelled"
)

// Kafkaなどへ流す注文イベント。配信失敗は業務処理を止めない。
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	Total      int64     `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

type OrderEventPublisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}
