package memory

import (
	"context"
	"sort"
	"time"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"
)

type CustomerMemoryRepository struct {
	store *Store
	inTx  bool
}

func NewCustomerMemoryRepository(store *Store) *CustomerMemoryRepository {
	return &CustomerMemoryRepository{store: store}
}

func (r *CustomerMemoryRepository) List(ctx context.Context) ([]model.Customer, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	customers := make([]model.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

func (r *CustomerMemoryRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}

	c, ok := r.store.customers[id]
	if !ok {
		return model.Customer{}, repo.ErrNotFound
	}
	return c, nil
}

func (r *CustomerMemoryRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	r.store.customerSeq++
	c.ID = r.store.customerSeq
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	r.store.customers[c.ID] = c
	return c, nil
}

func (r *CustomerMemoryRepository) Update(ctx context.Context, c model.Customer) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	cur, ok := r.store.customers[c.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Name = c.Name
	cur.Email = c.Email
	cur.UpdatedAt = c.UpdatedAt
	r.store.customers[c.ID] = cur
	return nil
}

func (r *CustomerMemoryRepository) Delete(ctx context.Context, id int64) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}

	if _, ok := r.store.customers[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.store.customers, id)
	return nil
}
