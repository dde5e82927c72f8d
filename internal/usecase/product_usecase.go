package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"

	"go.uber.org/zap"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	logger      *zap.Logger
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, logger *zap.Logger) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo, logger: logger}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Q        string
	MinPrice *int64
	MaxPrice *int64
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Q) > 100 {
		return nil, &ValidationError{Message: "q too long"}
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return nil, &ValidationError{Message: "min_price must be >= 0"}
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return nil, &ValidationError{Message: "max_price must be >= 0"}
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return nil, &ValidationError{Message: "min_price must be <= max_price"}
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Q:        strings.TrimSpace(in.Q),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	})
	if err != nil {
		return nil, newStorageError("list products", err)
	}
	return items, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, &ValidationError{Message: "invalid product id"}
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, &ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return model.Product{}, newStorageError("load product", err)
	}
	return p, nil
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Stock       int64
}

// 更新は在庫を受け付けない。在庫の増減はInventoryUsecase.AdjustStockだけが書く。
type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
}

func validateProductAttrs(name string, price int64) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Message: "name required"}
	}
	if price < 0 {
		return &ValidationError{Message: "price must be >= 0"}
	}
	return nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if err := validateProductAttrs(in.Name, in.Price); err != nil {
		return model.Product{}, err
	}
	if in.Stock < 0 {
		return model.Product{}, &ValidationError{Message: "stock must be >= 0"}
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, newStorageError("create product", err)
	}

	u.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in UpdateProductInput) error {
	if productID <= 0 {
		return &ValidationError{Message: "invalid product id"}
	}
	if err := validateProductAttrs(in.Name, in.Price); err != nil {
		return err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		UpdatedAt:   time.Now(),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return &ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return newStorageError("update product", err)
	}

	u.logger.Info("product updated", zap.Int64("product_id", productID))
	return nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return &ValidationError{Message: "invalid product id"}
	}

	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return &ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return newStorageError("delete product", err)
	}

	u.logger.Info("product deleted", zap.Int64("product_id", productID))
	return nil
}
