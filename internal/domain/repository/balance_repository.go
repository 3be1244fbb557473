package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// BalanceKey clave natural de un balance (única en la tabla).
type BalanceKey struct {
	TenantID   int64
	ProductID  string
	BatchID    *string
	LocationID string
}

// AllocationCandidate balance elegible para reserva, enriquecido con el
// vencimiento del lote y la zona/código de su ubicación (datos que
// dirigen el orden FEFO).
type AllocationCandidate struct {
	Balance      entity.Balance
	ExpiryDate   *time.Time
	ZoneType     string
	LocationCode string
}

// StorageOccupancy ubicaciones distintas con existencia > 0 por
// cliente+bodega. Insumo del barrido diario de almacenaje.
type StorageOccupancy struct {
	ClientID    string
	WarehouseID string
	Locations   int64
}

// BalanceRepository puerto para el agregado materializado. Los métodos
// *ForUpdate bloquean las filas (SELECT FOR UPDATE) durante la secuencia
// leer-verificar-escribir; usarse siempre dentro de una transacción.
type BalanceRepository interface {
	// GetOrCreateForUpdate devuelve el balance de la clave, creándolo en
	// cero si no existe, y lo deja bloqueado para la transacción actual.
	// Una carrera sobre la restricción única se resuelve releyendo.
	GetOrCreateForUpdate(key BalanceKey, clientID, warehouseID string) (*entity.Balance, error)
	// Update persiste on_hand/reserved/available del balance bloqueado.
	Update(b *entity.Balance) error
	// ListCandidatesForUpdate devuelve, bloqueados, los balances con
	// disponible > 0 del producto en la bodega, excluyendo ubicaciones
	// STAGING, en orden FEFO: vencimiento ascendente (nulos al final) y
	// updated_at ascendente como desempate estable.
	ListCandidatesForUpdate(tenantID int64, clientID, warehouseID, productID string) ([]*AllocationCandidate, error)
	ListByClient(tenantID int64, clientID string, limit, offset int) ([]*entity.Balance, error)
	ListStorageOccupancy() ([]StorageOccupancy, error)
}
