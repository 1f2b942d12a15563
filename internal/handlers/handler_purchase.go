package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesync/salesync_backend/internal/apperrors"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
	"github.com/salesync/salesync_backend/internal/middleware"
)

// purchaseHandler handles HTTP requests for goods receipts.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers routes related to purchase orders.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	purchases := rg.Group("/purchases")
	{
		purchases.POST("/receipt", h.receiveGoods)
		purchases.GET("/:orderID", h.getOrder)
		purchases.DELETE("/:orderID", h.deleteOrder)
	}
}

// receiveGoods godoc
// @Summary Receive goods against a supplier
// @Description Atomically restocks every line at its weighted-average cost, persists the order, and records the paid amount in the ledger
// @Tags purchases
// @Accept json
// @Produce json
// @Param receipt body dto.ReceiptRequest true "Receipt details"
// @Success 201 {object} dto.PurchaseOrderResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to process receipt"
// @Security BearerAuth
// @Router /purchases/receipt [post]
func (h *purchaseHandler) receiveGoods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReceiveGoods", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.purchaseService.ReceiveGoods(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Product not found for receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error during receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process receipt in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process receipt"})
		}
		return
	}

	logger.Info("Goods received", slog.String("order_id", order.OrderID), slog.String("purchase_order_no", order.PurchaseOrderNo))
	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(order))
}

// getOrder godoc
// @Summary Get a purchase order by ID
// @Tags purchases
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Security BearerAuth
// @Router /purchases/{orderID} [get]
func (h *purchaseHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.purchaseService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase order not found", slog.String("order_id", orderID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to get purchase order from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(order))
}

// deleteOrder godoc
// @Summary Delete a purchase order
// @Description Removes the order and reverses its received stock, floored at zero
// @Tags purchases
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to delete order"
// @Security BearerAuth
// @Router /purchases/{orderID} [delete]
func (h *purchaseHandler) deleteOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	if err := h.purchaseService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase order not found for deletion", slog.String("order_id", orderID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to delete purchase order in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		}
		return
	}

	logger.Info("Purchase order deleted", slog.String("order_id", orderID))
	c.Status(http.StatusNoContent)
}
