package dto

import "time"

// AppendMovementRequest asiento directo en el libro (recepción, ajuste,
// despacho). Exactamente una de from/to según el signo del delta.
type AppendMovementRequest struct {
	ClientID       string  `json:"client_id"`
	WarehouseID    string  `json:"warehouse_id"`
	ProductID      string  `json:"product_id"`
	BatchID        *string `json:"batch_id"`
	FromLocationID *string `json:"from_location_id"`
	ToLocationID   *string `json:"to_location_id"`
	QtyDelta       int64   `json:"qty_delta"`
	EventType      string  `json:"event_type"`
	ReferenceType  string  `json:"reference_type"`
	ReferenceID    string  `json:"reference_id"`
}

// MoveRequest traslado ubicación→ubicación (putaway, picking, transfer).
type MoveRequest struct {
	ClientID       string  `json:"client_id"`
	WarehouseID    string  `json:"warehouse_id"`
	ProductID      string  `json:"product_id"`
	BatchID        *string `json:"batch_id"`
	FromLocationID string  `json:"from_location_id"`
	ToLocationID   string  `json:"to_location_id"`
	Qty            int64   `json:"qty"`
	EventType      string  `json:"event_type"`
	ReferenceType  string  `json:"reference_type"`
	ReferenceID    string  `json:"reference_id"`
}

// LedgerEntryResponse asiento del libro en respuestas.
type LedgerEntryResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	BatchID        *string   `json:"batch_id"`
	FromLocationID *string   `json:"from_location_id"`
	ToLocationID   *string   `json:"to_location_id"`
	QtyDelta       int64     `json:"qty_delta"`
	EventType      string    `json:"event_type"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// BalanceResponse saldo materializado en respuestas.
type BalanceResponse struct {
	ProductID    string  `json:"product_id"`
	BatchID      *string `json:"batch_id"`
	LocationID   string  `json:"location_id"`
	OnHandQty    int64   `json:"on_hand_qty"`
	ReservedQty  int64   `json:"reserved_qty"`
	AvailableQty int64   `json:"available_qty"`
}

// ReconciliationRow discrepancia entre el saldo materializado y la suma
// de deltas del libro para una clave. Diff debe ser siempre cero.
type ReconciliationRow struct {
	ProductID  string  `json:"product_id"`
	BatchID    *string `json:"batch_id"`
	LocationID string  `json:"location_id"`
	OnHandQty  int64   `json:"on_hand_qty"`
	LedgerSum  int64   `json:"ledger_sum"`
	Diff       int64   `json:"diff"`
}
