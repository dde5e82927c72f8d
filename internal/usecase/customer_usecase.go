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

type CustomerUsecase struct {
	customerRepo repo.CustomerRepository
	logger       *zap.Logger
}

func NewCustomerUsecase(customerRepo repo.CustomerRepository, logger *zap.Logger) *CustomerUsecase {
	return &CustomerUsecase{customerRepo: customerRepo, logger: logger}
}

type CustomerInput struct {
	Name  string
	Email string
}

func (u *CustomerUsecase) validate(in CustomerInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Message: "name required"}
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return &ValidationError{Message: "email required"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Message: "invalid email"}
	}
	return nil
}

func (u *CustomerUsecase) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := u.customerRepo.List(ctx)
	if err != nil {
		return nil, newStorageError("list customers", err)
	}
	return customers, nil
}

func (u *CustomerUsecase) GetCustomer(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, &ValidationError{Message: "invalid customer id"}
	}

	c, err := u.customerRepo.FindByID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, &CustomerNotFoundError{CustomerID: customerID}
	}
	if err != nil {
		return model.Customer{}, newStorageError("load customer", err)
	}
	return c, nil
}

func (u *CustomerUsecase) CreateCustomer(ctx context.Context, in CustomerInput) (model.Customer, error) {
	if err := u.validate(in); err != nil {
		return model.Customer{}, err
	}

	now := time.Now()
	c, err := u.customerRepo.Create(ctx, model.Customer{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Customer{}, newStorageError("create customer", err)
	}

	u.logger.Info("customer created", zap.Int64("customer_id", c.ID))
	return c, nil
}

// フルレコード置き換え
func (u *CustomerUsecase) UpdateCustomer(ctx context.Context, customerID int64, in CustomerInput) error {
	if customerID <= 0 {
		return &ValidationError{Message: "invalid customer id"}
	}
	if err := u.validate(in); err != nil {
		return err
	}

	err := u.customerRepo.Update(ctx, model.Customer{
		ID:        customerID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		UpdatedAt: time.Now(),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return &CustomerNotFoundError{CustomerID: customerID}
	}
	if err != nil {
		return newStorageError("update customer", err)
	}

	u.logger.Info("customer updated", zap.Int64("customer_id", customerID))
	return nil
}

// 既存注文からの参照は残る（明細はスナップショット、ヘッダはID参照のまま）。
func (u *CustomerUsecase) DeleteCustomer(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return &ValidationError{Message: "invalid customer id"}
	}

	err := u.customerRepo.Delete(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return &CustomerNotFoundError{CustomerID: customerID}
	}
	if err != nil {
		return newStorageError("delete customer", err)
	}

	u.logger.Info("customer deleted", zap.Int64("customer_id", customerID))
	return nil
}
