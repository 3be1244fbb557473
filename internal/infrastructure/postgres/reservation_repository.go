package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de ReservationRepository sobre PostgreSQL.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `
	id, tenant_id, outbound_id, client_id, warehouse_id, product_id,
	batch_id, location_id, qty_reserved, created_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID, &res.TenantID, &res.OutboundID, &res.ClientID, &res.WarehouseID,
		&res.ProductID, &res.BatchID, &res.LocationID, &res.QtyReserved, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan reservation: %w", err)
	}
	return &res, nil
}

// GetForOrderKey busca la reserva de la clave única (orden, producto,
// lote, ubicación); nil si no existe.
func (r *ReservationRepo) GetForOrderKey(outboundID, productID string, batchID *string, locationID string) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM inventory_reservations
		WHERE outbound_id = $1 AND product_id = $2
		  AND batch_id IS NOT DISTINCT FROM $3 AND location_id = $4
		FOR UPDATE`
	return scanReservation(r.q.QueryRow(context.Background(), query, outboundID, productID, batchID, locationID))
}

// GetByIDForUpdate obtiene la reserva y bloquea la fila.
func (r *ReservationRepo) GetByIDForUpdate(id string) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM inventory_reservations
		WHERE id = $1
		FOR UPDATE`
	return scanReservation(r.q.QueryRow(context.Background(), query, id))
}

// Create inserta una reserva nueva.
func (r *ReservationRepo) Create(res *entity.Reservation) error {
	query := `
		INSERT INTO inventory_reservations (
			id, tenant_id, outbound_id, client_id, warehouse_id, product_id,
			batch_id, location_id, qty_reserved, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.TenantID, res.OutboundID, res.ClientID, res.WarehouseID,
		res.ProductID, res.BatchID, res.LocationID, res.QtyReserved, res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// UpdateQty fija la cantidad reservada de la fila.
func (r *ReservationRepo) UpdateQty(id string, qty int64) error {
	query := `UPDATE inventory_reservations SET qty_reserved = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, qty)
	if err != nil {
		return fmt.Errorf("update reservation qty: %w", err)
	}
	return nil
}

// Delete borra la reserva (consumo total).
func (r *ReservationRepo) Delete(id string) error {
	query := `DELETE FROM inventory_reservations WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}

// ListByOutbound devuelve las reservas de una orden enriquecidas con
// vencimiento y ubicación (insumo del generador de listas de picking).
func (r *ReservationRepo) ListByOutbound(outboundID string) ([]*repository.ReservationDetail, error) {
	query := `
		SELECT res.id, res.tenant_id, res.outbound_id, res.client_id, res.warehouse_id,
		       res.product_id, res.batch_id, res.location_id, res.qty_reserved, res.created_at,
		       pb.expiry_date, l.zone_type, l.code
		FROM inventory_reservations res
		JOIN locations l ON l.id = res.location_id
		LEFT JOIN product_batches pb ON pb.id = res.batch_id
		WHERE res.outbound_id = $1`
	rows, err := r.q.Query(context.Background(), query, outboundID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by outbound: %w", err)
	}
	defer rows.Close()

	var out []*repository.ReservationDetail
	for rows.Next() {
		var d repository.ReservationDetail
		res := &d.Reservation
		if err := rows.Scan(
			&res.ID, &res.TenantID, &res.OutboundID, &res.ClientID, &res.WarehouseID,
			&res.ProductID, &res.BatchID, &res.LocationID, &res.QtyReserved, &res.CreatedAt,
			&d.ExpiryDate, &d.ZoneType, &d.LocationCode,
		); err != nil {
			return nil, fmt.Errorf("scan reservation detail: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
