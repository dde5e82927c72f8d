package repository

import (
	"context"

	"ordermanager/internal/domain/model"
)

// 顧客の保存・取得を約束
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)

	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	// フルレコード置き換え
	Update(ctx context.Context, c model.Customer) error
	Delete(ctx context.Context, id int64) error
}
