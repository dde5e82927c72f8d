package usecase_test

import (
	"context"
	"testing"

	"ordermanager/internal/infra/memory"
	"ordermanager/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCustomerUC() *usecase.CustomerUsecase {
	store := memory.NewStore()
	return usecase.NewCustomerUsecase(memory.NewCustomerMemoryRepository(store), zap.NewNop())
}

func TestCreateCustomerValidation(t *testing.T) {
	uc := newCustomerUC()
	ctx := context.Background()

	cases := []struct {
		name string
		in   usecase.CustomerInput
	}{
		{"empty name", usecase.CustomerInput{Name: " ", Email: "a@example.com"}},
		{"empty email", usecase.CustomerInput{Name: "taro", Email: ""}},
		{"bad email", usecase.CustomerInput{Name: "taro", Email: "not-an-email"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateCustomer(ctx, tc.in)
			_, ok := usecase.AsValidation(err)
			assert.True(t, ok)
		})
	}
}

func TestCustomerCRUD(t *testing.T) {
	uc := newCustomerUC()
	ctx := context.Background()

	created, err := uc.CreateCustomer(ctx, usecase.CustomerInput{
		Name:  "taro",
		Email: "taro@example.com",
	})
	require.NoError(t, err)

	got, err := uc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "taro", got.Name)

	//フルレコード置き換え
	require.NoError(t, uc.UpdateCustomer(ctx, created.ID, usecase.CustomerInput{
		Name:  "jiro",
		Email: "jiro@example.com",
	}))
	got, err = uc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jiro", got.Name)
	assert.Equal(t, "jiro@example.com", got.Email)

	require.NoError(t, uc.DeleteCustomer(ctx, created.ID))
	_, err = uc.GetCustomer(ctx, created.ID)
	_, ok := usecase.AsCustomerNotFound(err)
	assert.True(t, ok)
}

func TestUpdateCustomerNotFound(t *testing.T) {
	uc := newCustomerUC()

	err := uc.UpdateCustomer(context.Background(), 42, usecase.CustomerInput{
		Name:  "taro",
		Email: "taro@example.com",
	})
	cnf, ok := usecase.AsCustomerNotFound(err)
	require.True(t, ok)
	assert.Equal(t, int64(42), cnf.CustomerID)
}
