package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SalesReturnItemRequest is one returned line of a sales return.
type SalesReturnItemRequest struct {
	ProductID        string          `json:"productID" binding:"required"`
	QuantityReturned int             `json:"quantityReturned" binding:"required,gt=0"`
	UnitPrice        decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateSalesReturnRequest defines a customer return. ReturnRefNo is the
// idempotency key: replaying the same reference number is rejected.
type CreateSalesReturnRequest struct {
	ReturnRefNo  string                   `json:"returnRefNo" binding:"required"`
	CustomerName string                   `json:"customerName" binding:"required"`
	OrderID      string                   `json:"orderID"`
	AccountName  string                   `json:"accountName"`
	Remarks      string                   `json:"remarks"`
	Items        []SalesReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseReturnItemRequest is one returned line of a purchase return.
type PurchaseReturnItemRequest struct {
	ProductID        string          `json:"productID" binding:"required"`
	QuantityReturned int             `json:"quantityReturned" binding:"required,gt=0"`
	UnitCost         decimal.Decimal `json:"unitCost" binding:"required"`
}

// CreatePurchaseReturnRequest defines a return of goods to a supplier.
type CreatePurchaseReturnRequest struct {
	ReturnRefNo  string                      `json:"returnRefNo" binding:"required"`
	SupplierName string                      `json:"supplierName" binding:"required"`
	OrderID      string                      `json:"orderID"`
	AccountName  string                      `json:"accountName"`
	Remarks      string                      `json:"remarks"`
	Items        []PurchaseReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReturnResponse defines the data returned for either return kind.
type ReturnResponse struct {
	ReturnID    string          `json:"returnID"`
	ReturnRefNo string          `json:"returnRefNo"`
	EntityName  string          `json:"entityName"`
	OrderID     string          `json:"orderID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ReturnDate  time.Time       `json:"returnDate"`
	Remarks     string          `json:"remarks"`
}

// ToSalesReturnResponse converts a domain.SalesReturn.
func ToSalesReturnResponse(r *domain.SalesReturn) ReturnResponse {
	return ReturnResponse{
		ReturnID:    r.ReturnID,
		ReturnRefNo: r.ReturnRefNo,
		EntityName:  r.CustomerName,
		OrderID:     r.OrderID,
		TotalAmount: r.TotalAmount,
		ReturnDate:  r.ReturnDate,
		Remarks:     r.Remarks,
	}
}

// ToPurchaseReturnResponse converts a domain.PurchaseReturn.
func ToPurchaseReturnResponse(r *domain.PurchaseReturn) ReturnResponse {
	return ReturnResponse{
		ReturnID:    r.ReturnID,
		ReturnRefNo: r.ReturnRefNo,
		EntityName:  r.SupplierName,
		OrderID:     r.OrderID,
		TotalAmount: r.TotalAmount,
		ReturnDate:  r.ReturnDate,
		Remarks:     r.Remarks,
	}
}
