package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// LedgerKeySum suma de deltas del libro para una clave de balance.
// Base del reporte de conciliación: debe coincidir con OnHandQty.
type LedgerKeySum struct {
	ProductID  string
	BatchID    *string
	LocationID string
	Total      int64
}

// LedgerRepository puerto de persistencia del libro de movimientos.
// Solo inserción y lectura: el libro es append-only por diseño de la
// tabla (sin UPDATE ni DELETE en el adaptador).
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	ListByProduct(tenantID int64, productID string, limit, offset int) ([]*entity.LedgerEntry, error)
	// SumDeltasByKey agrega el libro completo por clave de balance.
	SumDeltasByKey(tenantID int64) ([]LedgerKeySum, error)
}
