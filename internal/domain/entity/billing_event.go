package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento facturable.
const (
	BillingStorageDay    = "STORAGE_DAY"    // posición-día de almacenaje
	BillingInboundLine   = "INBOUND_LINE"   // línea recibida
	BillingDispatchOrder = "DISPATCH_ORDER" // orden despachada
	BillingPrintLabel    = "PRINT_LABEL"    // etiqueta impresa
)

// BillingEvent es un registro de actividad facturable, con precio y
// fecha, deduplicado por la clave natural
// (cliente, tipo, reference_type, reference_id, fecha): esa unicidad es
// la garantía de idempotencia. Inmutable salvo el enlace posterior a la
// factura en que se cobró.
type BillingEvent struct {
	ID            string
	ClientID      string
	WarehouseID   string
	InvoiceID     *string
	EventType     string
	Quantity      int64
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	ReferenceType string
	ReferenceID   string
	EventDate     time.Time // solo fecha (sin hora)
	CreatedAt     time.Time
}
