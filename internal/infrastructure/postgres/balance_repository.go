package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL.
// Los métodos *ForUpdate deben llamarse con un Querier transaccional:
// el bloqueo de fila solo tiene sentido dentro de una tx.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de balances. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const balanceColumns = `
	id, tenant_id, client_id, warehouse_id, product_id, batch_id,
	location_id, on_hand_qty, reserved_qty, available_qty, updated_at`

// GetOrCreateForUpdate devuelve el balance de la clave bloqueado para la
// transacción actual, creándolo en cero si no existe. El INSERT con
// ON CONFLICT DO NOTHING absorbe la carrera de creación concurrente; la
// relectura posterior siempre encuentra la fila (la nuestra o la del
// ganador) y la bloquea.
func (r *BalanceRepo) GetOrCreateForUpdate(key repository.BalanceKey, clientID, warehouseID string) (*entity.Balance, error) {
	insert := `
		INSERT INTO inventory_balances (
			id, tenant_id, client_id, warehouse_id, product_id, batch_id,
			location_id, on_hand_qty, reserved_qty, available_qty, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, 0, now())
		ON CONFLICT (tenant_id, product_id, COALESCE(batch_id::text, ''), location_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), insert,
		uuid.New().String(), key.TenantID, clientID, warehouseID,
		key.ProductID, key.BatchID, key.LocationID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert balance: %w", err)
	}

	query := `
		SELECT ` + balanceColumns + `
		FROM inventory_balances
		WHERE tenant_id = $1 AND product_id = $2
		  AND batch_id IS NOT DISTINCT FROM $3 AND location_id = $4
		FOR UPDATE`
	var b entity.Balance
	err = r.q.QueryRow(context.Background(), query,
		key.TenantID, key.ProductID, key.BatchID, key.LocationID,
	).Scan(
		&b.ID, &b.TenantID, &b.ClientID, &b.WarehouseID, &b.ProductID, &b.BatchID,
		&b.LocationID, &b.OnHandQty, &b.ReservedQty, &b.AvailableQty, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Update persiste las cantidades del balance bloqueado.
func (r *BalanceRepo) Update(b *entity.Balance) error {
	query := `
		UPDATE inventory_balances
		SET on_hand_qty = $2, reserved_qty = $3, available_qty = $4, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, b.ID, b.OnHandQty, b.ReservedQty, b.AvailableQty)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// ListCandidatesForUpdate devuelve, bloqueados, los balances con
// disponible > 0 del producto en la bodega, excluyendo STAGING, en
// orden FEFO: vencimiento ascendente con nulos al final y updated_at
// ascendente como desempate estable. El ordenamiento vive en SQL porque
// el bloqueo debe tomarse en el mismo orden en todas las transacciones
// (evita deadlocks entre reservas concurrentes del mismo producto).
func (r *BalanceRepo) ListCandidatesForUpdate(tenantID int64, clientID, warehouseID, productID string) ([]*repository.AllocationCandidate, error) {
	query := `
		SELECT b.id, b.tenant_id, b.client_id, b.warehouse_id, b.product_id, b.batch_id,
		       b.location_id, b.on_hand_qty, b.reserved_qty, b.available_qty, b.updated_at,
		       pb.expiry_date, l.zone_type, l.code
		FROM inventory_balances b
		JOIN locations l ON l.id = b.location_id
		LEFT JOIN product_batches pb ON pb.id = b.batch_id
		WHERE b.tenant_id = $1 AND b.client_id = $2 AND b.warehouse_id = $3
		  AND b.product_id = $4 AND b.available_qty > 0
		  AND l.zone_type <> 'STAGING'
		ORDER BY pb.expiry_date ASC NULLS LAST, b.updated_at ASC
		FOR UPDATE OF b`
	rows, err := r.q.Query(context.Background(), query, tenantID, clientID, warehouseID, productID)
	if err != nil {
		return nil, fmt.Errorf("list allocation candidates: %w", err)
	}
	defer rows.Close()

	var out []*repository.AllocationCandidate
	for rows.Next() {
		var c repository.AllocationCandidate
		b := &c.Balance
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.ClientID, &b.WarehouseID, &b.ProductID, &b.BatchID,
			&b.LocationID, &b.OnHandQty, &b.ReservedQty, &b.AvailableQty, &b.UpdatedAt,
			&c.ExpiryDate, &c.ZoneType, &c.LocationCode,
		); err != nil {
			return nil, fmt.Errorf("scan allocation candidate: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ListByClient devuelve los balances del tenant, opcionalmente filtrados
// por cliente. clientID vacío lista todos; limit 0 lista sin tope (para
// la conciliación, que necesita la tabla completa).
func (r *BalanceRepo) ListByClient(tenantID int64, clientID string, limit, offset int) ([]*entity.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM inventory_balances
		WHERE tenant_id = $1`
	args := []any{tenantID}
	if clientID != "" {
		query += ` AND client_id = $2`
		args = append(args, clientID)
	}
	query += ` ORDER BY product_id, location_id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()

	var out []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.ClientID, &b.WarehouseID, &b.ProductID, &b.BatchID,
			&b.LocationID, &b.OnHandQty, &b.ReservedQty, &b.AvailableQty, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// ListStorageOccupancy cuenta ubicaciones distintas con existencia
// física por cliente+bodega (insumo del barrido diario de almacenaje).
func (r *BalanceRepo) ListStorageOccupancy() ([]repository.StorageOccupancy, error) {
	query := `
		SELECT client_id, warehouse_id, COUNT(DISTINCT location_id)
		FROM inventory_balances
		WHERE on_hand_qty > 0
		GROUP BY client_id, warehouse_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list storage occupancy: %w", err)
	}
	defer rows.Close()

	var out []repository.StorageOccupancy
	for rows.Next() {
		var o repository.StorageOccupancy
		if err := rows.Scan(&o.ClientID, &o.WarehouseID, &o.Locations); err != nil {
			return nil, fmt.Errorf("scan storage occupancy: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
