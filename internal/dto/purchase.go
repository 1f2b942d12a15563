package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceiptItemRequest is one line of a purchase receipt. SellingPrice is
// optional; when present the product's selling price is updated alongside the
// weighted-average cost.
type ReceiptItemRequest struct {
	ProductID    string          `json:"productID" binding:"required"`
	Quantity     int             `json:"quantity" binding:"required,gt=0"`
	UnitCost     decimal.Decimal `json:"unitCost" binding:"required"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	VatAmount    decimal.Decimal `json:"vatAmount"`
}

// ReceiptRequest defines a purchase goods receipt against a supplier.
type ReceiptRequest struct {
	SupplierName  string               `json:"supplierName" binding:"required"`
	AccountName   string               `json:"accountName"`
	PaymentMethod string               `json:"paymentMethod"`
	Discount      decimal.Decimal      `json:"discount"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	Remarks       string               `json:"remarks"`
	Items         []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderResponse defines the data returned for a purchase order.
type PurchaseOrderResponse struct {
	OrderID         string          `json:"orderID"`
	PurchaseOrderNo string          `json:"purchaseOrderNo"`
	SupplierName    string          `json:"supplierName"`
	OrderDate       time.Time       `json:"orderDate"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalVat        decimal.Decimal `json:"totalVat"`
	Discount        decimal.Decimal `json:"discount"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	AmountDue       decimal.Decimal `json:"amountDue"`
	PaymentStatus   string          `json:"paymentStatus"`
}

// ToPurchaseOrderResponse converts a domain.PurchaseOrder.
func ToPurchaseOrderResponse(o *domain.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		OrderID:         o.OrderID,
		PurchaseOrderNo: o.PurchaseOrderNo,
		SupplierName:    o.SupplierName,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
		TotalVat:        o.TotalVat,
		Discount:        o.Discount,
		GrandTotal:      o.GrandTotal,
		AmountPaid:      o.AmountPaid,
		AmountDue:       o.AmountDue,
		PaymentStatus:   string(o.PaymentStatus),
	}
}
