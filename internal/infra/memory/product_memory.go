package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"
)

type ProductMemoryRepository struct {
	store *Store
	inTx  bool
}

func NewProductMemoryRepository(store *Store) *ProductMemoryRepository {
	return &ProductMemoryRepository{store: store}
}

func (r *ProductMemoryRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	needle := strings.ToLower(strings.TrimSpace(q.Q))

	products := make([]model.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		products = append(products, p)
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *ProductMemoryRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	p, ok := r.store.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

// トランザクションは大域ロックで直列化済みなのでFindByIDと同じでよい。
func (r *ProductMemoryRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *ProductMemoryRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	r.store.productSeq++
	p.ID = r.store.productSeq
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	r.store.products[p.ID] = p
	return p, nil
}

func (r *ProductMemoryRepository) Update(ctx context.Context, p model.Product) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	cur, ok := r.store.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.UpdatedAt = p.UpdatedAt
	r.store.products[p.ID] = cur
	return nil
}

func (r *ProductMemoryRepository) Delete(ctx context.Context, id int64) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	if _, ok := r.store.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}
