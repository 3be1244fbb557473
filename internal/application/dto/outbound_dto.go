package dto

import "time"

// ReserveRequest demanda de reserva para una línea de orden de salida.
type ReserveRequest struct {
	OutboundID  string `json:"outbound_id"`
	ClientID    string `json:"client_id"`
	WarehouseID string `json:"warehouse_id"`
	ProductID   string `json:"product_id"`
	Qty         int64  `json:"qty"`
}

// ReservationResponse reserva en respuestas.
type ReservationResponse struct {
	ID          string  `json:"id"`
	OutboundID  string  `json:"outbound_id"`
	ProductID   string  `json:"product_id"`
	BatchID     *string `json:"batch_id"`
	LocationID  string  `json:"location_id"`
	QtyReserved int64   `json:"qty_reserved"`
}

// PickScanRequest escaneo de picking: consume la reserva y traslada la
// existencia de la ubicación de picking a la de staging/empaque.
type PickScanRequest struct {
	ReservationID     string `json:"reservation_id"`
	Qty               int64  `json:"qty"`
	StagingLocationID string `json:"staging_location_id"`
	PickLineID        *int64 `json:"pick_line_id"`
}

// PickLineResponse línea de picking ordenada para el recorrido.
type PickLineResponse struct {
	ProductID      string     `json:"product_id"`
	BatchID        *string    `json:"batch_id"`
	FromLocationID string     `json:"from_location_id"`
	LocationCode   string     `json:"location_code"`
	ZoneType       string     `json:"zone_type"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	QtyToPick      int64      `json:"qty_to_pick"`
	QtyPicked      int64      `json:"qty_picked"`
}
