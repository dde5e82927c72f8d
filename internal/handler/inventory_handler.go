package handler

import (
	"net/http"
	"strconv"

	"ordermanager/internal/usecase"

	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

func NewInventoryHandler(uc *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/inventory/adjustments", h.adjust)
	e.GET("/products/:id/adjustments", h.listAdjustments)
}

type AdjustmentLine struct {
	ProductID int64 `json:"product_id"`
	Delta     int64 `json:"delta"`
}

type AdjustStockRequest struct {
	Lines  []AdjustmentLine `json:"lines"`
	Reason string           `json:"reason"`
}

// 複数商品の在庫をまとめて増減する。全件成功か全件不適用か。
func (h *InventoryHandler) adjust(c echo.Context) error {
	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]usecase.StockDelta, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, usecase.StockDelta{ProductID: l.ProductID, Delta: l.Delta})
	}

	if err := h.uc.AdjustStock(c.Request().Context(), usecase.AdjustStockInput{
		Lines:  lines,
		Reason: req.Reason,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *InventoryHandler) listAdjustments(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListAdjustments(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
