package entity

import "time"

// Reservation es la asignación de stock a una orden de salida concreta,
// única por (orden, producto, lote, ubicación). El agregado
// Balance.ReservedQty es el techo; las reservas son su desglose: la suma
// de reservas abiertas de una clave nunca supera el reservado agregado.
// Nunca se crea con cantidad cero o negativa; el consumidor la borra al
// llegar exactamente a cero.
type Reservation struct {
	ID          string
	TenantID    int64
	OutboundID  string
	ClientID    string
	WarehouseID string
	ProductID   string
	BatchID     *string
	LocationID  string
	QtyReserved int64
	CreatedAt   time.Time
}
