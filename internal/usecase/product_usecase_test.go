package usecase_test

import (
	"context"
	"errors"
	"testing"

	"ordermanager/internal/domain/model"
	repo "ordermanager/internal/repository"
	"ordermanager/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mocking repositories
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductUC(r repo.ProductRepository) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(r, zap.NewNop())
}

func TestCreateProductValidation(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := newProductUC(productRepo)
	ctx := context.Background()

	cases := []struct {
		name string
		in   usecase.CreateProductInput
	}{
		{"empty name", usecase.CreateProductInput{Name: "  ", Price: 100, Stock: 1}},
		{"negative price", usecase.CreateProductInput{Name: "apple", Price: -1, Stock: 1}},
		{"negative stock", usecase.CreateProductInput{Name: "apple", Price: 100, Stock: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateProduct(ctx, tc.in)
			_, ok := usecase.AsValidation(err)
			assert.True(t, ok)
		})
	}

	// 検証で落ちたらリポジトリは呼ばれない
	productRepo.AssertNotCalled(t, "Create")
}

func TestCreateProductTrimsName(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := newProductUC(productRepo)

	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "apple" && p.Price == 100 && p.Stock == 5
	})).Return(model.Product{ID: 1, Name: "apple", Price: 100, Stock: 5}, nil)

	p, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:  "  apple  ",
		Price: 100,
		Stock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	productRepo.AssertExpectations(t)
}

func TestUpdateProductNotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := newProductUC(productRepo)

	productRepo.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	err := uc.UpdateProduct(context.Background(), 7, usecase.UpdateProductInput{
		Name:  "apple",
		Price: 100,
	})
	pnf, ok := usecase.AsProductNotFound(err)
	require.True(t, ok)
	assert.Equal(t, int64(7), pnf.ProductID)
}

// 更新入力に在庫は存在せず、リポジトリへ渡るStockは常にゼロ値。
// 在庫を動かせるのはAdjustStockだけ。
func TestUpdateProductDoesNotCarryStock(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := newProductUC(productRepo)

	productRepo.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == 3 && p.Name == "apple" && p.Price == 120 && p.Stock == 0
	})).Return(nil)

	err := uc.UpdateProduct(context.Background(), 3, usecase.UpdateProductInput{
		Name:  "apple",
		Price: 120,
	})
	require.NoError(t, err)

	productRepo.AssertExpectations(t)
}

func TestGetProductStorageErrorIsWrapped(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := newProductUC(productRepo)

	dbErr := errors.New("connection reset")
	productRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{}, dbErr)

	_, err := uc.GetProduct(context.Background(), 1)
	require.Error(t, err)

	// 元のエラーはそのまま包まれて出てくる
	var se *usecase.StorageError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, dbErr)
}

func TestDeleteProductNotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := newProductUC(productRepo)

	productRepo.On("Delete", mock.Anything, int64(9)).Return(repo.ErrNotFound)

	err := uc.DeleteProduct(context.Background(), 9)
	_, ok := usecase.AsProductNotFound(err)
	assert.True(t, ok)
}

func TestListProductsValidation(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := newProductUC(productRepo)
	ctx := context.Background()

	minus := int64(-1)
	ten := int64(10)
	five := int64(5)

	_, err := uc.ListProducts(ctx, usecase.ListProductsInput{MinPrice: &minus})
	_, ok := usecase.AsValidation(err)
	assert.True(t, ok)

	_, err = uc.ListProducts(ctx, usecase.ListProductsInput{MinPrice: &ten, MaxPrice: &five})
	_, ok = usecase.AsValidation(err)
	assert.True(t, ok)

	productRepo.AssertNotCalled(t, "List")
}
