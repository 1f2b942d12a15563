package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
	"github.com/salesync/salesync_backend/internal/middleware"
)

// summaryHandler handles HTTP requests for aggregate ledger reports.
type summaryHandler struct {
	summaryService portssvc.SummarySvcFacade
}

func newSummaryHandler(ss portssvc.SummarySvcFacade) *summaryHandler {
	return &summaryHandler{summaryService: ss}
}

// registerSummaryRoutes registers routes related to ledger summaries.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade) {
	h := newSummaryHandler(summaryService)

	summary := rg.Group("/summary")
	{
		summary.GET("/:entityType", h.getSummary)
		summary.GET("/customers/:entityName/receivable", h.getReceivable)
		summary.GET("/suppliers/:entityName/payable", h.getPayable)
	}
}

// getSummary godoc
// @Summary Build a ledger summary
// @Description Aggregates the ledger entries matching the filter into totals, opening/closing balance, and net balance
// @Tags summary
// @Produce json
// @Param entityType path string true "CUSTOMER or SUPPLIER"
// @Param entityName query string false "Entity name; empty matches every entity of the type"
// @Param fromDate query string false "Start date (2006-01-02, inclusive)"
// @Param toDate query string false "End date (2006-01-02, inclusive)"
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 400 {object} map[string]string "Invalid entity type or date"
// @Failure 500 {object} map[string]string "Failed to build summary"
// @Security BearerAuth
// @Router /summary/{entityType} [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entityType := domain.EntityType(c.Param("entityType"))
	if !entityType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity type"})
		return
	}

	var params dto.SummaryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.summaryService.BuildSummary(c.Request.Context(), entityType, params.EntityName, params.FromDate, params.ToDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid summary filter", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(summary))
}

// getReceivable godoc
// @Summary Outstanding receivable for a customer
// @Tags summary
// @Produce json
// @Param entityName path string true "Customer name"
// @Success 200 {object} dto.BalanceProjectionResponse
// @Failure 500 {object} map[string]string "Failed to compute receivable"
// @Security BearerAuth
// @Router /summary/customers/{entityName}/receivable [get]
func (h *summaryHandler) getReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityName := c.Param("entityName")

	amount, err := h.summaryService.ReceivableForCustomer(c.Request.Context(), entityName)
	if err != nil {
		logger.Error("Failed to compute receivable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute receivable"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceProjectionResponse{
		EntityName: entityName,
		EntityType: string(domain.EntityCustomer),
		Amount:     amount,
	})
}

// getPayable godoc
// @Summary Outstanding payable to a supplier
// @Tags summary
// @Produce json
// @Param entityName path string true "Supplier name"
// @Success 200 {object} dto.BalanceProjectionResponse
// @Failure 500 {object} map[string]string "Failed to compute payable"
// @Security BearerAuth
// @Router /summary/suppliers/{entityName}/payable [get]
func (h *summaryHandler) getPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityName := c.Param("entityName")

	amount, err := h.summaryService.PayableForSupplier(c.Request.Context(), entityName)
	if err != nil {
		logger.Error("Failed to compute payable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payable"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceProjectionResponse{
		EntityName: entityName,
		EntityType: string(domain.EntitySupplier),
		Amount:     amount,
	})
}
