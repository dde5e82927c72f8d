package usecase

import (
	"errors"
	"fmt"
)

// 呼び出し側へ返す業務エラー。ストレージ都合はStorageErrorに包む。

type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %d", e.ProductID)
}

type CustomerNotFoundError struct {
	CustomerID int64
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("customer not found: %d", e.CustomerID)
}

type OrderNotFoundError struct {
	OrderID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("order not found: %d", e.OrderID)
}

// 在庫不足。要求量と現在庫を持ち回る。
type InsufficientStockError struct {
	ProductID int64
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available=%d requested=%d",
		e.ProductID, e.Available, e.Requested)
}

// 注文の前提条件違反（明細なし・顧客なし・存在しない注文の更新など）
type InvalidOrderError struct {
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return "invalid order: " + e.Reason
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// 永続化層の失敗。元のエラーをそのまま運ぶ。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage error in " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func newStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func AsProductNotFound(err error) (*ProductNotFoundError, bool) {
	var e *ProductNotFoundError
	ok := errors.As(err, &e)
	return e, ok
}

func AsCustomerNotFound(err error) (*CustomerNotFoundError, bool) {
	var e *CustomerNotFoundError
	ok := errors.As(err, &e)
	return e, ok
}

func AsOrderNotFound(err error) (*OrderNotFoundError, bool) {
	var e *OrderNotFoundError
	ok := errors.As(err, &e)
	return e, ok
}

func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var e *InsufficientStockError
	ok := errors.As(err, &e)
	return e, ok
}

func AsInvalidOrder(err error) (*InvalidOrderError, bool) {
	var e *InvalidOrderError
	ok := errors.As(err, &e)
	return e, ok
}

func AsValidation(err error) (*ValidationError, bool) {
	var e *ValidationError
	ok := errors.As(err, &e)
	return e, ok
}
