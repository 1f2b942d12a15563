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

// returnHandler handles HTTP requests for customer and supplier returns.
type returnHandler struct {
	returnService portssvc.ReturnSvcFacade
}

func newReturnHandler(rs portssvc.ReturnSvcFacade) *returnHandler {
	return &returnHandler{returnService: rs}
}

// registerReturnRoutes registers routes related to returns.
func registerReturnRoutes(rg *gin.RouterGroup, returnService portssvc.ReturnSvcFacade) {
	h := newReturnHandler(returnService)

	returns := rg.Group("/returns")
	{
		returns.POST("/sales", h.processSalesReturn)
		returns.GET("/sales/:returnRefNo", h.getSalesReturn)
		returns.POST("/purchases", h.processPurchaseReturn)
		returns.GET("/purchases/:returnRefNo", h.getPurchaseReturn)
	}
}

// processSalesReturn godoc
// @Summary Process a customer return
// @Description Restocks the returned items, credits the customer's sub-ledger, and records the refund as a cash outflow, atomically. Replaying the same returnRefNo is rejected.
// @Tags returns
// @Accept json
// @Produce json
// @Param return body dto.CreateSalesReturnRequest true "Return details"
// @Success 201 {object} dto.ReturnResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Return reference already processed"
// @Failure 500 {object} map[string]string "Failed to process return"
// @Security BearerAuth
// @Router /returns/sales [post]
func (h *returnHandler) processSalesReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSalesReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessSalesReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ret, err := h.returnService.ProcessSalesReturn(c.Request.Context(), req, userID)
	if err != nil {
		h.respondReturnError(c, logger, err, "sales return")
		return
	}

	logger.Info("Sales return processed", slog.String("return_id", ret.ReturnID), slog.String("return_ref_no", ret.ReturnRefNo))
	c.JSON(http.StatusCreated, dto.ToSalesReturnResponse(ret))
}

// processPurchaseReturn godoc
// @Summary Process a return of goods to a supplier
// @Description Reduces stock for the returned items, debits the supplier's sub-ledger, and records the credit as a cash inflow, atomically. Replaying the same returnRefNo is rejected.
// @Tags returns
// @Accept json
// @Produce json
// @Param return body dto.CreatePurchaseReturnRequest true "Return details"
// @Success 201 {object} dto.ReturnResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Return reference already processed"
// @Failure 500 {object} map[string]string "Failed to process return"
// @Security BearerAuth
// @Router /returns/purchases [post]
func (h *returnHandler) processPurchaseReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessPurchaseReturn", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ret, err := h.returnService.ProcessPurchaseReturn(c.Request.Context(), req, userID)
	if err != nil {
		h.respondReturnError(c, logger, err, "purchase return")
		return
	}

	logger.Info("Purchase return processed", slog.String("return_id", ret.ReturnID), slog.String("return_ref_no", ret.ReturnRefNo))
	c.JSON(http.StatusCreated, dto.ToPurchaseReturnResponse(ret))
}

// respondReturnError maps return-processing errors shared by both directions.
func (h *returnHandler) respondReturnError(c *gin.Context, logger *slog.Logger, err error, kind string) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate return reference", slog.String("kind", kind), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Return reference already processed"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Product not found for return", slog.String("kind", kind), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		logger.Warn("Insufficient stock for return", slog.String("kind", kind), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error processing return", slog.String("kind", kind), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to process return in service", slog.String("kind", kind), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process return"})
	}
}

// getSalesReturn godoc
// @Summary Get a sales return by reference number
// @Tags returns
// @Produce json
// @Param returnRefNo path string true "Return reference number"
// @Success 200 {object} dto.ReturnResponse
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 500 {object} map[string]string "Failed to retrieve return"
// @Security BearerAuth
// @Router /returns/sales/{returnRefNo} [get]
func (h *returnHandler) getSalesReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnRefNo := c.Param("returnRefNo")

	ret, err := h.returnService.GetSalesReturnByRefNo(c.Request.Context(), returnRefNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Sales return not found", slog.String("return_ref_no", returnRefNo))
			c.JSON(http.StatusNotFound, gin.H{"error": "Return not found"})
		} else {
			logger.Error("Failed to get sales return from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve return"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesReturnResponse(ret))
}

// getPurchaseReturn godoc
// @Summary Get a purchase return by reference number
// @Tags returns
// @Produce json
// @Param returnRefNo path string true "Return reference number"
// @Success 200 {object} dto.ReturnResponse
// @Failure 404 {object} map[string]string "Return not found"
// @Failure 500 {object} map[string]string "Failed to retrieve return"
// @Security BearerAuth
// @Router /returns/purchases/{returnRefNo} [get]
func (h *returnHandler) getPurchaseReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnRefNo := c.Param("returnRefNo")

	ret, err := h.returnService.GetPurchaseReturnByRefNo(c.Request.Context(), returnRefNo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Purchase return not found", slog.String("return_ref_no", returnRefNo))
			c.JSON(http.StatusNotFound, gin.H{"error": "Return not found"})
		} else {
			logger.Error("Failed to get purchase return from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve return"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseReturnResponse(ret))
}
