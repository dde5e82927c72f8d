package repository

import (
	"context"
	"errors"

	"ordermanager/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Q        string
	MinPrice *int64
	MaxPrice *int64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	// トランザクション内で行をロックして取得する。
	// 検証してから書くまでの間に他の注文へ在庫を読ませない。
	FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// 在庫以外の属性を更新する。在庫はInventoryRepository経由でしか動かさない。
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
