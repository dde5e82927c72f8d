package memory

import (
	"context"

	repo "ordermanager/internal/repository"
)

type txReposMemory struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	customers  repo.CustomerRepository
	inventory  repo.InventoryRepository
}

func (r *txReposMemory) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposMemory) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposMemory) Products() repo.ProductRepository     { return r.products }
func (r *txReposMemory) Customers() repo.CustomerRepository   { return r.customers }
func (r *txReposMemory) Inventory() repo.InventoryRepository  { return r.inventory }

// TxManagerMemory は全体ロック1本でトランザクションを代用する。
// 検証してから書き込む区間が割り込まれないこと、
// ヘッダと明細が別々に見えないことをこのロックで保証する。
type TxManagerMemory struct {
	store *Store
}

func NewTxManagerMemory(store *Store) *TxManagerMemory {
	return &TxManagerMemory{store: store}
}

func (tm *TxManagerMemory) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	//失敗したら呼び出し前の状態に戻す
	snap := tm.store.takeSnapshot()

	r := &txReposMemory{
		orders:     &OrderMemoryRepository{store: tm.store, inTx: true},
		orderItems: &OrderItemMemoryRepository{store: tm.store, inTx: true},
		products:   &ProductMemoryRepository{store: tm.store, inTx: true},
		customers:  &CustomerMemoryRepository{store: tm.store, inTx: true},
		inventory:  &InventoryMemoryRepository{store: tm.store, inTx: true},
	}

	if err := fn(r); err != nil {
		tm.store.restore(snap)
		return err
	}
	return nil
}
