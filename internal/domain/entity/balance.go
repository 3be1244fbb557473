package entity

import "time"

// Balance es el agregado materializado del libro para una clave
// (tenant, producto, lote, ubicación), única en la tabla. Se crea
// perezosamente al primer asiento que toca la clave y nunca se borra
// (los saldos en cero persisten como filas).
//
// Invariantes en todo punto observable:
//
//	OnHandQty ≥ ReservedQty ≥ 0
//	AvailableQty = OnHandQty − ReservedQty
type Balance struct {
	ID           string
	TenantID     int64
	ClientID     string
	WarehouseID  string
	ProductID    string
	BatchID      *string
	LocationID   string
	OnHandQty    int64
	ReservedQty  int64
	AvailableQty int64
	UpdatedAt    time.Time
}

// RecalcAvailable rederiva el disponible tras cualquier mutación.
// AvailableQty nunca se escribe de forma independiente de sus insumos.
func (b *Balance) RecalcAvailable() {
	b.AvailableQty = b.OnHandQty - b.ReservedQty
}
