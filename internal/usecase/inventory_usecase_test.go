package usecase_test

import (
	"context"
	"testing"

	"ordermanager/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockAppliesAllLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedProduct(t, "apple", 100, 5)
	b := env.seedProduct(t, "banana", 50, 3)

	err := env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{
			{ProductID: a.ID, Delta: 10},
			{ProductID: b.ID, Delta: -3},
		},
		Reason: "restock",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), env.stockOf(t, a.ID))
	assert.Equal(t, int64(0), env.stockOf(t, b.ID))
}

func TestAdjustStockAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedProduct(t, "apple", 100, 5)
	b := env.seedProduct(t, "banana", 50, 3)

	// 2行目が在庫を割るのでバッチ全体が不適用
	err := env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{
			{ProductID: a.ID, Delta: 10},
			{ProductID: b.ID, Delta: -4},
		},
	})
	ise, ok := usecase.AsInsufficientStock(err)
	require.True(t, ok)
	assert.Equal(t, b.ID, ise.ProductID)
	assert.Equal(t, int64(3), ise.Available)
	assert.Equal(t, int64(4), ise.Requested)

	assert.Equal(t, int64(5), env.stockOf(t, a.ID))
	assert.Equal(t, int64(3), env.stockOf(t, b.ID))
}

func TestAdjustStockUnknownProductAppliesNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedProduct(t, "apple", 100, 5)

	err := env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{
			{ProductID: a.ID, Delta: 1},
			{ProductID: 999, Delta: 1},
		},
	})
	pnf, ok := usecase.AsProductNotFound(err)
	require.True(t, ok)
	assert.Equal(t, int64(999), pnf.ProductID)
	assert.Equal(t, int64(5), env.stockOf(t, a.ID))
}

func TestAdjustStockDuplicateLinesAreSummed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedProduct(t, "apple", 100, 5)

	// -5と+2が別行でも合算-3で判定される
	err := env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{
			{ProductID: a.ID, Delta: -5},
			{ProductID: a.ID, Delta: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), env.stockOf(t, a.ID))

	// 履歴は合算後の1行
	adjs, err := env.inventory.ListAdjustments(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, adjs, 1)
	assert.Equal(t, int64(-3), adjs[0].Delta)
}

func TestAdjustStockZeroDeltaStillRequiresProduct(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedProduct(t, "apple", 100, 5)

	// 存在しない商品のゼロ行も弾く
	err := env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{{ProductID: 999, Delta: 0}},
	})
	_, ok := usecase.AsProductNotFound(err)
	assert.True(t, ok)

	// 既存商品のゼロ行は何もしない（履歴も作らない）
	err = env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{{ProductID: a.ID, Delta: 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), env.stockOf(t, a.ID))

	adjs, err := env.inventory.ListAdjustments(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, adjs)
}

func TestAdjustStockEmptyLines(t *testing.T) {
	env := newTestEnv(t)

	err := env.inventory.AdjustStock(context.Background(), usecase.AdjustStockInput{})
	_, ok := usecase.AsValidation(err)
	assert.True(t, ok)
}

func TestListAdjustmentsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedProduct(t, "apple", 100, 5)

	require.NoError(t, env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{{ProductID: a.ID, Delta: 1}},
	}))
	require.NoError(t, env.inventory.AdjustStock(ctx, usecase.AdjustStockInput{
		Lines: []usecase.StockDelta{{ProductID: a.ID, Delta: -2}},
	}))

	adjs, err := env.inventory.ListAdjustments(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, adjs, 2)
	assert.Equal(t, int64(-2), adjs[0].Delta)
	assert.Equal(t, int64(1), adjs[1].Delta)
}

func TestListAdjustmentsUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventory.ListAdjustments(context.Background(), 999)
	_, ok := usecase.AsProductNotFound(err)
	assert.True(t, ok)
}

func TestOrderLifecycleLeavesAdjustmentTrail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.seedProduct(t, "apple", 100, 5)
	c := env.seedCustomer(t, "taro", "taro@example.com")

	created, err := env.orders.CreateOrder(ctx, usecase.CreateOrderInput{
		CustomerID: c.ID,
		Items:      []usecase.CreateOrderItemInput{{ProductID: a.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, env.orders.CancelOrder(ctx, created.ID))

	adjs, err := env.inventory.ListAdjustments(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, adjs, 2)
	assert.Equal(t, int64(2), adjs[0].Delta)
	assert.Equal(t, "order cancelled", adjs[0].Reason)
	assert.Equal(t, int64(-2), adjs[1].Delta)
	assert.Equal(t, "order placed", adjs[1].Reason)
}
