package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	events OrderEventPublisher
	logger *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, events OrderEventPublisher, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, events: events, logger: logger}
}

type CreateOrderItemInput struct {
	ProductID int64
	Quantity  int64
}

type CreateOrderInput struct {
	CustomerID     int64
	IdempotencyKey string
	Items          []CreateOrderItemInput
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Status        string            `json:"status"`
	Total         int64             `json:"total"`
	OrderDate     time.Time         `json:"order_date"`
	Items         []OrderItemOutput `json:"items"`
}

// CreateOrder は在庫を減らしてから注文を保存する。
// 途中で失敗したら在庫も注文も呼び出し前のまま。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if in.CustomerID <= 0 {
		return OrderOutput{}, &InvalidOrderError{Reason: "customer required"}
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, &InvalidOrderError{Reason: "order must contain at least one item"}
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return OrderOutput{}, &InvalidOrderError{Reason: "invalid product id"}
		}
		if it.Quantity <= 0 {
			return OrderOutput{}, &InvalidOrderError{Reason: "item quantity must be positive"}
		}
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		key = uuid.NewString()
	}

	var out OrderOutput
	replay := false

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//顧客の存在確認
		if _, err := r.Customers().FindByID(ctx, in.CustomerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return &InvalidOrderError{Reason: "customer not found"}
			}
			return newStorageError("load customer", err)
		}

		//同じキーなら同じ結果（在庫は二度減らさない）
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return newStorageError("idempotency lookup", err)
		}
		if found {
			replay = true
			out, err = u.buildOutput(ctx, r, existing)
			return err
		}

		//在庫減算（全件検証してから適用）
		deltas := make([]StockDelta, 0, len(in.Items))
		for _, it := range in.Items {
			deltas = append(deltas, StockDelta{ProductID: it.ProductID, Delta: -it.Quantity})
		}
		products, err := applyStockDeltas(ctx, r, deltas, "order placed")
		if err != nil {
			return err
		}

		//ヘッダ作成
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID:     in.CustomerID,
			Status:         model.OrderStatusNew,
			IdempotencyKey: key,
			OrderDate:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return newStorageError("create order", err)
		}

		//明細は注文時点のスナップショットを持つ
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			p := products[it.ProductID]
			items = append(items, model.OrderItem{
				ProductID:           it.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            it.Quantity,
				CreatedAt:           now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return newStorageError("create order items", err)
		}

		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return newStorageError("reload order", err)
		}
		out, err = u.buildOutput(ctx, r, created)
		return err
	})

	if err != nil {
		u.logger.Warn("order creation failed", zap.Error(err))
		return OrderOutput{}, err
	}

	if !replay {
		u.logger.Info("order created",
			zap.Int64("order_id", out.ID),
			zap.Int64("customer_id", out.CustomerID),
			zap.Int64("total", out.Total))
		u.publish(ctx, OrderEventCreated, out)
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, &ValidationError{Message: "invalid order id"}
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &OrderNotFoundError{OrderID: orderID}
		}
		if err != nil {
			return newStorageError("load order", err)
		}
		out, err = u.buildOutput(ctx, r, o)
		return err
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]OrderOutput, error) {
	return u.list(ctx, func(ctx context.Context, r repo.TxRepos) ([]model.Order, error) {
		return r.Orders().List(ctx)
	})
}

func (u *OrderUsecase) ListOrdersByCustomer(ctx context.Context, customerID int64) ([]OrderOutput, error) {
	if customerID <= 0 {
		return nil, &ValidationError{Message: "invalid customer id"}
	}
	return u.list(ctx, func(ctx context.Context, r repo.TxRepos) ([]model.Order, error) {
		return r.Orders().ListByCustomerID(ctx, customerID)
	})
}

// from/to とも境界を含む
func (u *OrderUsecase) ListOrdersByDateRange(ctx context.Context, from time.Time, to time.Time) ([]OrderOutput, error) {
	if from.IsZero() || to.IsZero() {
		return nil, &ValidationError{Message: "from and to required"}
	}
	if to.Before(from) {
		return nil, &ValidationError{Message: "to must not be before from"}
	}
	return u.list(ctx, func(ctx context.Context, r repo.TxRepos) ([]model.Order, error) {
		return r.Orders().ListByDateRange(ctx, from, to)
	})
}

// UpdateOrderStatus はステータスだけを変える。在庫は注文作成時に調整済みなので、
// CANCELLEDへの遷移以外では触らない。CANCELLEDとCOMPLETEDは終端。
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus model.OrderStatus) error {
	if orderID <= 0 {
		return &ValidationError{Message: "invalid order id"}
	}
	if !newStatus.Valid() {
		return &ValidationError{Message: "invalid status"}
	}

	var cancelled OrderOutput
	didCancel := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &InvalidOrderError{Reason: "order not found"}
		}
		if err != nil {
			return newStorageError("load order", err)
		}

		//すでに同じなら何もしない
		if o.Status == newStatus {
			return nil
		}
		//終端ガード
		if o.Status.IsTerminal() {
			return &InvalidOrderError{Reason: "cannot change " + strings.ToLower(string(o.Status)) + " order"}
		}

		//キャンセル時だけ在庫戻し
		if newStatus == model.OrderStatusCancelled {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return newStorageError("load order items", err)
			}
			deltas := make([]StockDelta, 0, len(items))
			for _, it := range items {
				deltas = append(deltas, StockDelta{ProductID: it.ProductID, Delta: it.Quantity})
			}
			if len(deltas) > 0 {
				if _, err := applyStockDeltas(ctx, r, deltas, "order cancelled"); err != nil {
					//消えた商品の分は戻せないのでスキップする
					if _, ok := AsProductNotFound(err); !ok {
						return err
					}
					if err := u.restoreSurviving(ctx, r, deltas, "order cancelled"); err != nil {
						return err
					}
				}
			}
			didCancel = true
			cancelled, err = u.buildOutput(ctx, r, o)
			if err != nil {
				return err
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return &InvalidOrderError{Reason: "order not found"}
			}
			return newStorageError("update order status", err)
		}
		return nil
	})

	if err != nil {
		u.logger.Warn("order status update rejected",
			zap.Int64("order_id", orderID),
			zap.String("status", string(newStatus)),
			zap.Error(err))
		return err
	}

	u.logger.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", string(newStatus)))
	if didCancel {
		cancelled.Status = string(model.OrderStatusCancelled)
		u.publish(ctx, OrderEventCancelled, cancelled)
	}
	return nil
}

func (u *OrderUsecase) CancelOrder(ctx context.Context, orderID int64) error {
	return u.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled)
}

// DeleteOrder はヘッダと明細をまとめて消す。キャンセル済みでなければ
// 作成時と対称に在庫を戻してから消す。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return &ValidationError{Message: "invalid order id"}
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &InvalidOrderError{Reason: "order not found"}
		}
		if err != nil {
			return newStorageError("load order", err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return newStorageError("load order items", err)
		}

		//キャンセル時に戻し済みなら二重に戻さない
		if o.Status != model.OrderStatusCancelled && len(items) > 0 {
			deltas := make([]StockDelta, 0, len(items))
			for _, it := range items {
				deltas = append(deltas, StockDelta{ProductID: it.ProductID, Delta: it.Quantity})
			}
			if _, err := applyStockDeltas(ctx, r, deltas, "order deleted"); err != nil {
				if _, ok := AsProductNotFound(err); !ok {
					return err
				}
				if err := u.restoreSurviving(ctx, r, deltas, "order deleted"); err != nil {
					return err
				}
			}
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return newStorageError("delete order items", err)
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return newStorageError("delete order", err)
		}
		return nil
	})

	if err != nil {
		u.logger.Warn("order deletion rejected", zap.Int64("order_id", orderID), zap.Error(err))
		return err
	}

	u.logger.Info("order deleted", zap.Int64("order_id", orderID))
	return nil
}

// restoreSurviving は削除済み商品の行を除いて在庫を戻す。
func (u *OrderUsecase) restoreSurviving(ctx context.Context, r repo.TxRepos, deltas []StockDelta, reason string) error {
	surviving := make([]StockDelta, 0, len(deltas))
	for _, d := range deltas {
		if _, err := r.Products().FindByID(ctx, d.ProductID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				u.logger.Warn("skipping stock restore for deleted product",
					zap.Int64("product_id", d.ProductID))
				continue
			}
			return newStorageError("load product", err)
		}
		surviving = append(surviving, d)
	}
	if len(surviving) == 0 {
		return nil
	}
	_, err := applyStockDeltas(ctx, r, surviving, reason)
	return err
}

func (u *OrderUsecase) list(ctx context.Context, fetch func(context.Context, repo.TxRepos) ([]model.Order, error)) ([]OrderOutput, error) {
	var outs []OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := fetch(ctx, r)
		if err != nil {
			return newStorageError("list orders", err)
		}
		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			out, err := u.buildOutput(ctx, r, o)
			if err != nil {
				return err
			}
			outs = append(outs, out)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

// buildOutput は保存済みの注文に顧客情報を足して返す。
// 明細は注文時点のスナップショットをそのまま使う。
// 顧客が後から消されていたらID以外は空のまま返す。
func (u *OrderUsecase) buildOutput(ctx context.Context, r repo.TxRepos, o model.Order) (OrderOutput, error) {
	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, newStorageError("load order items", err)
	}

	out := OrderOutput{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		OrderDate:  o.OrderDate,
		Items:      make([]OrderItemOutput, 0, len(items)),
	}

	for _, it := range items {
		out.Items = append(out.Items, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
		out.Total += it.UnitPriceSnapshot * it.Quantity
	}

	c, err := r.Customers().FindByID(ctx, o.CustomerID)
	if err == nil {
		out.CustomerName = c.Name
		out.CustomerEmail = c.Email
	} else if !errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, newStorageError("load customer", err)
	}

	return out, nil
}

func (u *OrderUsecase) publish(ctx context.Context, eventType string, o OrderOutput) {
	if u.events == nil {
		return
	}
	ev := OrderEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		Total:      o.Total,
		OccurredAt: time.Now(),
	}
	if err := u.events.Publish(ctx, ev); err != nil {
		//配信失敗は業務処理を止めない
		u.logger.Warn("order event publish failed",
			zap.String("type", eventType),
			zap.Int64("order_id", o.ID),
			zap.Error(err))
	}
}
