package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusIssued    = "ISSUED"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusCancelled = "CANCELLED"
)

// Invoice factura periódica de un cliente: agrupa los eventos
// facturables no facturados del período, por tipo de evento.
type Invoice struct {
	ID          string
	ClientID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      string
	Currency    string
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	Total       decimal.Decimal
	IssuedAt    *time.Time
	CreatedAt   time.Time
}

// InvoiceLine línea de factura: un tipo de evento agregado en el período.
type InvoiceLine struct {
	ID         string
	InvoiceID  string
	EventType  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	TaxRate    decimal.Decimal
}
