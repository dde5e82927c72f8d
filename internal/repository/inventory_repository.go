package repository

import (
	"context"

	"ordermanager/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, productID int64, newStock int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error

	// 調整履歴の参照（新しい順）
	ListAdjustmentsByProductID(ctx context.Context, productID int64) ([]model.InventoryAdjustment, error)
}
