package memory

import (
	"context"
	"sort"
	"time"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"
)

type OrderMemoryRepository struct {
	store *Store
	inTx  bool
}

func NewOrderMemoryRepository(store *Store) *OrderMemoryRepository {
	return &OrderMemoryRepository{store: store}
}

func (r *OrderMemoryRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	o, ok := r.store.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *OrderMemoryRepository) List(ctx context.Context) ([]model.Order, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	return r.collect(func(model.Order) bool { return true }), nil
}

func (r *OrderMemoryRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	return r.collect(func(o model.Order) bool { return o.CustomerID == customerID }), nil
}

// from/to とも境界を含む
func (r *OrderMemoryRepository) ListByDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	return r.collect(func(o model.Order) bool {
		return !o.OrderDate.Before(from) && !o.OrderDate.After(to)
	}), nil
}

func (r *OrderMemoryRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	r.store.orderSeq++
	order.ID = r.store.orderSeq
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	r.store.orders[order.ID] = order
	return order.ID, nil
}

func (r *OrderMemoryRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	o, ok := r.store.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	r.store.orders[orderID] = o
	return nil
}

func (r *OrderMemoryRepository) Delete(ctx context.Context, orderID int64) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	if _, ok := r.store.orders[orderID]; !ok {
		return repo.ErrNotFound
	}
	delete(r.store.orders, orderID)
	return nil
}

func (r *OrderMemoryRepository) FindByIdempotencyKey(ctx context.Context, key string) (model.Order, bool, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	for _, o := range r.store.orders {
		if o.IdempotencyKey == key {
			return o, true, nil
		}
	}
	return model.Order{}, false, nil
}

func (r *OrderMemoryRepository) collect(keep func(model.Order) bool) []model.Order {
	orders := make([]model.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}
