package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRules son las reglas de tarifa de una lista de precios
// (persistidas como JSONB). Convención mínima: almacenaje por
// posición-día, recepción por línea, despacho por orden, impresión por
// etiqueta.
type PriceRules struct {
	Currency string       `json:"currency"`
	Storage  StorageRule  `json:"storage"`
	Inbound  PerUnitRule  `json:"inbound,omitempty"`
	Dispatch PerOrderRule `json:"dispatch,omitempty"`
	Printing PerLabelRule `json:"printing,omitempty"`
}

// StorageRule tarifa de almacenaje.
type StorageRule struct {
	Type      string          `json:"type"` // PALLET_POSITION_DAY
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PerUnitRule tarifa por línea recibida.
type PerUnitRule struct {
	PerLine decimal.Decimal `json:"per_line"`
}

// PerOrderRule tarifa por orden despachada.
type PerOrderRule struct {
	PerOrder decimal.Decimal `json:"per_order"`
}

// PerLabelRule tarifa por etiqueta impresa.
type PerLabelRule struct {
	PerLabel decimal.Decimal `json:"per_label"`
}

// UnitPriceFor deriva el precio unitario para un tipo de evento
// facturable. Tipos desconocidos tarifan a cero (no se factura lo que
// no tiene regla).
func (r PriceRules) UnitPriceFor(eventType string) decimal.Decimal {
	switch eventType {
	case BillingStorageDay:
		return r.Storage.UnitPrice
	case BillingInboundLine:
		return r.Inbound.PerLine
	case BillingDispatchOrder:
		return r.Dispatch.PerOrder
	case BillingPrintLabel:
		return r.Printing.PerLabel
	}
	return decimal.Zero
}

// PriceList lista de precios de un cliente, vigente desde EffectiveFrom.
// La vigente a una fecha es la de mayor EffectiveFrom ≤ fecha.
type PriceList struct {
	ID            string
	ClientID      string
	EffectiveFrom time.Time
	Rules         PriceRules
	CreatedAt     time.Time
}
