package memory

import (
	"context"
	"time"

	"ordermanager/internal/domain/model"
)

type OrderItemMemoryRepository struct {
	store *Store
	inTx  bool
}

func NewOrderItemMemoryRepository(store *Store) *OrderItemMemoryRepository {
	return &OrderItemMemoryRepository{store: store}
}

func (r *OrderItemMemoryRepository) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	stored := r.store.orderItems[orderID]
	for _, it := range items {
		r.store.itemSeq++
		it.ID = r.store.itemSeq
		it.OrderID = orderID
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		stored = append(stored, it)
	}
	r.store.orderItems[orderID] = stored
	return nil
}

func (r *OrderItemMemoryRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	//内部のスライスを渡さない
	return append([]model.OrderItem(nil), r.store.orderItems[orderID]...), nil
}

func (r *OrderItemMemoryRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	delete(r.store.orderItems, orderID)
	return nil
}
