package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// BillingEventRepository puerto de persistencia de eventos facturables.
type BillingEventRepository interface {
	// InsertOrFetch inserta el evento si la clave natural
	// (cliente, tipo, reference_type, reference_id, fecha) no existe;
	// si ya existe, devuelve la fila previa sin tocarla. El booleano
	// indica si hubo inserción. Primitivo atómico: no depende de
	// capturar la excepción de una base de datos concreta.
	InsertOrFetch(ev *entity.BillingEvent) (*entity.BillingEvent, bool, error)
	ListUninvoiced(clientID string, from, to time.Time) ([]*entity.BillingEvent, error)
	// LinkToInvoice enlaza eventos ya facturados a su factura
	// (única mutación permitida sobre un evento).
	LinkToInvoice(invoiceID string, eventIDs []string) error
}

// PriceListRepository puerto de listas de precios.
type PriceListRepository interface {
	// GetActive devuelve la lista vigente del cliente a la fecha
	// (effective_from ≤ fecha, la más reciente); nil si no hay ninguna.
	GetActive(clientID string, asOf time.Time) (*entity.PriceList, error)
	Create(pl *entity.PriceList) error
}

// InvoiceRepository puerto de facturas.
type InvoiceRepository interface {
	Create(inv *entity.Invoice, lines []*entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	ListLines(invoiceID string) ([]*entity.InvoiceLine, error)
}
