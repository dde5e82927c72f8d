package usecase

import (
	"context"
	"errors"
	"sort"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"

	"go.uber.org/zap"
)

// 在庫への増減1件
type StockDelta struct {
	ProductID int64
	Delta     int64
}

// applyStockDeltas は在庫増減のバッチを「全件検証してから全件適用」で処理する。
// 1件でも検証に落ちたら何も書かない。
// 同じ商品が複数行に出てきた場合は合算してから検証する
// （行ごとに判定すると誤った成功/失敗になる）。
// 戻り値は適用前の商品（スナップショット用）。
func applyStockDeltas(ctx context.Context, r repo.TxRepos, deltas []StockDelta, reason string) (map[int64]model.Product, error) {
	//商品ごとに合算
	merged := map[int64]int64{}
	order := make([]int64, 0, len(deltas))
	for _, d := range deltas {
		if _, seen := merged[d.ProductID]; !seen {
			order = append(order, d.ProductID)
		}
		merged[d.ProductID] += d.Delta
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	//検証フェーズ：全商品を行ロック付きでロードして新在庫を計算。
	//ID昇順でロックするので複数トランザクション間でデッドロックしない。
	products := make(map[int64]model.Product, len(merged))
	newStocks := make(map[int64]int64, len(merged))
	for _, id := range order {
		p, err := r.Products().FindByIDForUpdate(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		if err != nil {
			return nil, newStorageError("load product", err)
		}

		delta := merged[id]
		newStock := p.Stock + delta
		if newStock < 0 {
			return nil, &InsufficientStockError{
				ProductID: id,
				Available: p.Stock,
				Requested: -delta,
			}
		}
		products[id] = p
		newStocks[id] = newStock
	}

	//適用フェーズ：ここからは検証済みの値を書くだけ
	for _, id := range order {
		delta := merged[id]
		if delta == 0 {
			//ゼロ行は存在確認だけで書き込みなし
			continue
		}
		if err := r.Inventory().SetStock(ctx, id, newStocks[id]); err != nil {
			return nil, newStorageError("set stock", err)
		}
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID: id,
			Delta:     delta,
			Reason:    reason,
		}); err != nil {
			return nil, newStorageError("create adjustment", err)
		}
	}

	return products, nil
}

type InventoryUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

// DI
func NewInventoryUsecase(tx repo.TransactionManager, logger *zap.Logger) *InventoryUsecase {
	return &InventoryUsecase{tx: tx, logger: logger}
}

type AdjustStockInput struct {
	Lines  []StockDelta
	Reason string
}

// AdjustStock は複数商品の在庫増減をまとめて適用する。全件成功か全件不適用か。
func (u *InventoryUsecase) AdjustStock(ctx context.Context, in AdjustStockInput) error {
	if len(in.Lines) == 0 {
		return &ValidationError{Message: "lines required"}
	}
	reason := in.Reason
	if reason == "" {
		reason = "manual adjustment"
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		_, err := applyStockDeltas(ctx, r, in.Lines, reason)
		return err
	})
	if err != nil {
		u.logger.Warn("stock adjustment rejected", zap.Error(err))
		return err
	}

	u.logger.Info("stock adjusted",
		zap.Int("lines", len(in.Lines)),
		zap.String("reason", reason))
	return nil
}

func (u *InventoryUsecase) ListAdjustments(ctx context.Context, productID int64) ([]model.InventoryAdjustment, error) {
	if productID <= 0 {
		return nil, &ValidationError{Message: "invalid product id"}
	}

	var adjs []model.InventoryAdjustment
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return &ProductNotFoundError{ProductID: productID}
			}
			return newStorageError("load product", err)
		}
		var err error
		adjs, err = r.Inventory().ListAdjustmentsByProductID(ctx, productID)
		if err != nil {
			return newStorageError("list adjustments", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjs, nil
}
