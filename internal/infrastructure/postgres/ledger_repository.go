package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL.
// Solo INSERT y SELECT: el libro es append-only.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserta un asiento del libro.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO inventory_ledger (
			id, tenant_id, client_id, warehouse_id, product_id, batch_id,
			from_location_id, to_location_id, qty_delta, event_type,
			reference_type, reference_id, performed_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.TenantID, entry.ClientID, entry.WarehouseID,
		entry.ProductID, entry.BatchID, entry.FromLocationID, entry.ToLocationID,
		entry.QtyDelta, entry.EventType, entry.ReferenceType, entry.ReferenceID,
		entry.PerformedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// ListByProduct devuelve los asientos de un producto, más recientes primero.
func (r *LedgerRepo) ListByProduct(tenantID int64, productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, tenant_id, client_id, warehouse_id, product_id, batch_id,
		       from_location_id, to_location_id, qty_delta, event_type,
		       reference_type, reference_id, performed_by, created_at
		FROM inventory_ledger
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tenantID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.ClientID, &e.WarehouseID, &e.ProductID, &e.BatchID,
			&e.FromLocationID, &e.ToLocationID, &e.QtyDelta, &e.EventType,
			&e.ReferenceType, &e.ReferenceID, &e.PerformedBy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// SumDeltasByKey agrega el libro completo por clave de balance. Un
// asiento de salida resta en el origen y uno de entrada suma en el
// destino, así que cada asiento aporta exactamente a una clave.
func (r *LedgerRepo) SumDeltasByKey(tenantID int64) ([]repository.LedgerKeySum, error) {
	query := `
		SELECT product_id, batch_id,
		       COALESCE(to_location_id, from_location_id) AS location_id,
		       SUM(qty_delta) AS total
		FROM inventory_ledger
		WHERE tenant_id = $1
		GROUP BY product_id, batch_id, COALESCE(to_location_id, from_location_id)`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("sum ledger deltas: %w", err)
	}
	defer rows.Close()

	var out []repository.LedgerKeySum
	for rows.Next() {
		var s repository.LedgerKeySum
		if err := rows.Scan(&s.ProductID, &s.BatchID, &s.LocationID, &s.Total); err != nil {
			return nil, fmt.Errorf("scan ledger sum: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
