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

// salesHandler handles HTTP requests for POS checkouts.
type salesHandler struct {
	salesService portssvc.SalesSvcFacade
}

func newSalesHandler(ss portssvc.SalesSvcFacade) *salesHandler {
	return &salesHandler{salesService: ss}
}

// registerSalesRoutes registers routes related to sales orders.
func registerSalesRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade) {
	h := newSalesHandler(salesService)

	sales := rg.Group("/sales")
	{
		sales.POST("/checkout", h.checkout)
		sales.GET("/:orderID", h.getOrder)
		sales.DELETE("/:orderID", h.deleteOrder)
	}
}

// checkout godoc
// @Summary Run a POS checkout
// @Description Validates every line against current stock, then atomically consumes stock, persists the order, and records the paid amount in the ledger
// @Tags sales
// @Accept json
// @Produce json
// @Param checkout body dto.CheckoutRequest true "Checkout details"
// @Success 201 {object} dto.SalesOrderResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Insufficient stock"
// @Failure 500 {object} map[string]string "Failed to complete checkout"
// @Security BearerAuth
// @Router /sales/checkout [post]
func (h *salesHandler) checkout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Checkout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.salesService.Checkout(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientStock):
			logger.Warn("Insufficient stock for checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Product not found for checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error during checkout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete checkout in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete checkout"})
		}
		return
	}

	logger.Info("Checkout completed", slog.String("order_id", order.OrderID), slog.String("invoice_no", order.InvoiceNo))
	c.JSON(http.StatusCreated, dto.ToSalesOrderResponse(order))
}

// getOrder godoc
// @Summary Get a sales order by ID
// @Tags sales
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.SalesOrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Security BearerAuth
// @Router /sales/{orderID} [get]
func (h *salesHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.salesService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Sales order not found", slog.String("order_id", orderID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to get sales order from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesOrderResponse(order))
}

// deleteOrder godoc
// @Summary Delete a sales order
// @Description Removes the order and restocks its items
// @Tags sales
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to delete order"
// @Security BearerAuth
// @Router /sales/{orderID} [delete]
func (h *salesHandler) deleteOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	if err := h.salesService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Sales order not found for deletion", slog.String("order_id", orderID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to delete sales order in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		}
		return
	}

	logger.Info("Sales order deleted", slog.String("order_id", orderID))
	c.Status(http.StatusNoContent)
}
