package entity

import "time"

// Tipos de evento del libro de movimientos. Etiquetas libres: el motor
// solo exige el signo del delta; el tipo queda para trazabilidad.
const (
	EventInboundReceive  = "INBOUND_RECEIVE"
	EventPutawayMove     = "PUTAWAY_MOVE"
	EventPick            = "PICK"
	EventTransfer        = "TRANSFER"
	EventDispatch        = "DISPATCH"
	EventAdjustmentPlus  = "ADJUSTMENT_PLUS"
	EventAdjustmentMinus = "ADJUSTMENT_MINUS"
	EventReturnReceive   = "RETURN_RECEIVE"
)

// LedgerEntry es un asiento inmutable del libro de inventario: un cambio
// de cantidad con signo en una ubicación. Nunca se actualiza ni borra.
// Invariantes: QtyDelta ≠ 0; delta positivo exige ToLocationID y ningún
// origen; delta negativo exige FromLocationID y ningún destino.
type LedgerEntry struct {
	ID             string
	TenantID       int64
	ClientID       string
	WarehouseID    string
	ProductID      string
	BatchID        *string
	FromLocationID *string
	ToLocationID   *string
	QtyDelta       int64
	EventType      string
	ReferenceType  string // documento de negocio origen: INBOUND, OUTBOUND, CRON...
	ReferenceID    string
	PerformedBy    *string // UserID, opcional (jobs no tienen actor)
	CreatedAt      time.Time
}
