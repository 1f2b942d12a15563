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

// ledgerHandler handles HTTP requests against the append-only ledger and the
// per-entity sub-ledger.
type ledgerHandler struct {
	ledgerService       portssvc.LedgerSvcFacade
	entityLedgerService portssvc.EntityLedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, els portssvc.EntityLedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, entityLedgerService: els}
}

// registerLedgerRoutes registers routes related to the ledger.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, entityLedgerService portssvc.EntityLedgerSvcFacade) {
	h := newLedgerHandler(ledgerService, entityLedgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/entries", h.recordTransaction)
		ledger.GET("/accounts/:accountName/entries", h.getEntriesByAccount)
		ledger.GET("/entities/:entityType/:entityName/entries", h.getEntriesByEntity)
		ledger.GET("/entities/:entityType/:entityName/subledger", h.getEntitySubLedger)
	}
}

// recordTransaction godoc
// @Summary Append a ledger entry
// @Description Records one cash movement against an account, deriving the running balance under a row lock
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.RecordTransactionRequest true "Transaction details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.ledgerService.RecordTransaction(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			logger.Warn("Account not found for transaction", slog.String("account_name", req.AccountName))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrInvalidDirection),
			errors.Is(err, apperrors.ErrInvalidReferenceType),
			errors.Is(err, apperrors.ErrInvalidEntityType):
			logger.Warn("Validation error recording transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record transaction"})
		}
		return
	}

	logger.Info("Transaction recorded", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(*entry))
}

// getEntriesByAccount godoc
// @Summary List an account's ledger entries
// @Description Returns the account's entries oldest first
// @Tags ledger
// @Produce json
// @Param accountName path string true "Account name"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/accounts/{accountName}/entries [get]
func (h *ledgerHandler) getEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountName := c.Param("accountName")

	entries, err := h.ledgerService.GetEntriesByAccountName(c.Request.Context(), accountName)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for ledger listing", slog.String("account_name", accountName))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// getEntriesByEntity godoc
// @Summary List ledger entries for a counterparty
// @Description Returns entries for one customer or supplier, optionally bounded by an inclusive date range (2006-01-02)
// @Tags ledger
// @Produce json
// @Param entityType path string true "CUSTOMER or SUPPLIER"
// @Param entityName path string true "Entity name"
// @Param fromDate query string false "Start date"
// @Param toDate query string false "End date"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid entity type or date"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /ledger/entities/{entityType}/{entityName}/entries [get]
func (h *ledgerHandler) getEntriesByEntity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entityType := domain.EntityType(c.Param("entityType"))
	if !entityType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity type"})
		return
	}
	entityName := c.Param("entityName")

	entries, err := h.ledgerService.GetEntriesByEntity(c.Request.Context(), entityType, entityName, c.Query("fromDate"), c.Query("toDate"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid date range for entity ledger listing", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list entity ledger entries", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// getEntitySubLedger godoc
// @Summary List a counterparty's sub-ledger rows
// @Description Returns the running debit/credit sub-ledger for one customer or supplier
// @Tags ledger
// @Produce json
// @Param entityType path string true "CUSTOMER or SUPPLIER"
// @Param entityName path string true "Entity name"
// @Success 200 {array} dto.EntityLedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid entity type"
// @Failure 500 {object} map[string]string "Failed to list sub-ledger"
// @Security BearerAuth
// @Router /ledger/entities/{entityType}/{entityName}/subledger [get]
func (h *ledgerHandler) getEntitySubLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entityType := domain.EntityType(c.Param("entityType"))
	if !entityType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entity type"})
		return
	}
	entityName := c.Param("entityName")

	entries, err := h.entityLedgerService.GetEntityEntries(c.Request.Context(), entityType, entityName)
	if err != nil {
		logger.Error("Failed to list entity sub-ledger", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sub-ledger"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntityLedgerEntryResponse(entries))
}
