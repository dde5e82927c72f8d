package handler

import (
	"net/http"

	"ordermanager/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// 業務エラーをHTTPステータスに対応させる。
// ストレージ都合の失敗は中身を外に出さない。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := usecase.AsProductNotFound(err); ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	if _, ok := usecase.AsCustomerNotFound(err); ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	if _, ok := usecase.AsOrderNotFound(err); ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	if _, ok := usecase.AsInsufficientStock(err); ok {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	if _, ok := usecase.AsInvalidOrder(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	if _, ok := usecase.AsValidation(err); ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
