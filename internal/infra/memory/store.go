package memory

import (
	"sync"

	"ordermanager/internal/domain/model"
)

// Store はDBなしで動かすためのインメモリ永続化。
// 書き込みはTxManagerMemoryのロック内で行う。
type Store struct {
	mu sync.RWMutex

	products   map[int64]model.Product
	customers  map[int64]model.Customer
	orders     map[int64]model.Order
	orderItems map[int64][]model.OrderItem
	adjusts    []model.InventoryAdjustment

	productSeq  int64
	customerSeq int64
	orderSeq    int64
	itemSeq     int64
	adjustSeq   int64
}

func NewStore() *Store {
	return &Store{
		products:   map[int64]model.Product{},
		customers:  map[int64]model.Customer{},
		orders:     map[int64]model.Order{},
		orderItems: map[int64][]model.OrderItem{},
	}
}

// snapshot/restore でロールバック相当を実現する。
// 値はすべて値型なのでmapの浅いコピーで足りる（スライスだけ複製）。
type snapshot struct {
	products   map[int64]model.Product
	customers  map[int64]model.Customer
	orders     map[int64]model.Order
	orderItems map[int64][]model.OrderItem
	adjusts    []model.InventoryAdjustment

	productSeq  int64
	customerSeq int64
	orderSeq    int64
	itemSeq     int64
	adjustSeq   int64
}

func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		products:    make(map[int64]model.Product, len(s.products)),
		customers:   make(map[int64]model.Customer, len(s.customers)),
		orders:      make(map[int64]model.Order, len(s.orders)),
		orderItems:  make(map[int64][]model.OrderItem, len(s.orderItems)),
		adjusts:     append([]model.InventoryAdjustment(nil), s.adjusts...),
		productSeq:  s.productSeq,
		customerSeq: s.customerSeq,
		orderSeq:    s.orderSeq,
		itemSeq:     s.itemSeq,
		adjustSeq:   s.adjustSeq,
	}
	for id, p := range s.products {
		snap.products[id] = p
	}
	for id, c := range s.customers {
		snap.customers[id] = c
	}
	for id, o := range s.orders {
		snap.orders[id] = o
	}
	for id, items := range s.orderItems {
		snap.orderItems[id] = append([]model.OrderItem(nil), items...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.customers = snap.customers
	s.orders = snap.orders
	s.orderItems = snap.orderItems
	s.adjusts = snap.adjusts
	s.productSeq = snap.productSeq
	s.customerSeq = snap.customerSeq
	s.orderSeq = snap.orderSeq
	s.itemSeq = snap.itemSeq
	s.adjustSeq = snap.adjustSeq
}
