package memory

import (
	"context"
	"time"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"
)

type InventoryMemoryRepository struct {
	store *Store
	inTx  bool
}

func NewInventoryMemoryRepository(store *Store) *InventoryMemoryRepository {
	return &InventoryMemoryRepository{store: store}
}

func (r *InventoryMemoryRepository) SetStock(ctx context.Context, productID int64, newStock int64) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	p, ok := r.store.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock = newStock
	p.UpdatedAt = time.Now()
	r.store.products[productID] = p
	return nil
}

func (r *InventoryMemoryRepository) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	r.store.adjustSeq++
	adj.ID = r.store.adjustSeq
	if adj.CreatedAt.IsZero() {
		adj.CreatedAt = time.Now()
	}
	r.store.adjusts = append(r.store.adjusts, adj)
	return nil
}

func (r *InventoryMemoryRepository) ListAdjustmentsByProductID(ctx context.Context, productID int64) ([]model.InventoryAdjustment, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	//新しい順
	adjs := make([]model.InventoryAdjustment, 0)
	for i := len(r.store.adjusts) - 1; i >= 0; i-- {
		if r.store.adjusts[i].ProductID == productID {
			adjs = append(adjs, r.store.adjusts[i])
		}
	}
	return adjs, nil
}
