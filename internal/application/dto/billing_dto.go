package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordUsageRequest evento facturable a registrar.
type RecordUsageRequest struct {
	ClientID      string    `json:"client_id"`
	WarehouseID   string    `json:"warehouse_id"`
	EventType     string    `json:"event_type"`
	Quantity      int64     `json:"quantity"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   string    `json:"reference_id"`
	EventDate     time.Time `json:"event_date"`
}

// BillingEventResponse evento facturable en respuestas.
type BillingEventResponse struct {
	ID         string          `json:"id"`
	EventType  string          `json:"event_type"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	EventDate  time.Time       `json:"event_date"`
}

// GenerateInvoiceRequest período a facturar para un cliente.
type GenerateInvoiceRequest struct {
	ClientID    string    `json:"client_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// InvoiceResponse factura generada.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Status      string          `json:"status"`
	Currency    string          `json:"currency"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxTotal    decimal.Decimal `json:"tax_total"`
	Total       decimal.Decimal `json:"total"`
}
