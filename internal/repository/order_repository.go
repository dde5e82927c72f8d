package repository

import (
	"context"
	"time"

	"ordermanager/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error)
	// from/to とも境界を含む
	ListByDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, key string) (model.Order, bool, error)
}
