package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReturn reverses part of a sale: goods come back from a customer and a
// refund flows out. Immutable once persisted; the return reference number is
// unique so the same return can never be processed twice.
type SalesReturn struct {
	ReturnID     string            `json:"returnID"`
	ReturnRefNo  string            `json:"returnRefNo"`
	CustomerName string            `json:"customerName"`
	OrderID      string            `json:"orderID"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Remarks      string            `json:"remarks"`
	ReturnDate   time.Time         `json:"returnDate"`
	Items        []SalesReturnItem `json:"items,omitempty"`
	AuditFields
}

// SalesReturnItem snapshots the quantity and unit price returned.
type SalesReturnItem struct {
	ItemID           string          `json:"itemID"`
	ReturnID         string          `json:"returnID"`
	ProductID        string          `json:"productID"`
	ProductName      string          `json:"productName"`
	QuantityReturned int             `json:"quantityReturned"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
}

/// PurchaseReturn reverses part of a purchase: goods go back to a supplier and
// a credit flows in.
type PurchaseReturn struct {
	ReturnID     string               `json:"returnID"`
	ReturnRefNo  string               `json:"returnRefNo"`
	SupplierName string               `json:"supplierName"`
	OrderID      string               `json:"orderID"`
	TotalAmount  decimal.Decimal      `json:"totalAmount"`
	Remarks      string               `json:"remarks"`
	ReturnDate   time.Time            `json:"returnDate"`
	Items        []PurchaseReturnItem `json:"items,omitempty"`
	AuditFields
}

// PurchaseReturnItem snapshots the quantity and unit cost returned.
type PurchaseReturnItem struct {
	ItemID           string          `json:"itemID"`
	ReturnID         string          `json:"returnID"`
	ProductID        string          `json:"productID"`
	ProductName      string          `json:"productName"`
	QuantityReturned int             `json:"quantityReturned"`
	UnitCost         decimal.Decimal `json:"unitCost"`
}
