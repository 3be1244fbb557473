package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ReservationDetail reserva enriquecida con vencimiento y ubicación,
// insumo del generador de listas de picking (el ordenamiento se hace en
// memoria, es una función pura).
type ReservationDetail struct {
	Reservation  entity.Reservation
	ExpiryDate   *time.Time
	ZoneType     string
	LocationCode string
}

// ReservationRepository puerto de persistencia de reservas por orden.
type ReservationRepository interface {
	// GetForOrderKey busca la reserva de la clave única
	// (orden, producto, lote, ubicación); nil si no existe.
	GetForOrderKey(outboundID, productID string, batchID *string, locationID string) (*entity.Reservation, error)
	GetByIDForUpdate(id string) (*entity.Reservation, error)
	Create(r *entity.Reservation) error
	UpdateQty(id string, qty int64) error
	Delete(id string) error
	ListByOutbound(outboundID string) ([]*ReservationDetail, error)
}
