package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.BillingEventRepository = (*BillingEventRepo)(nil)

// BillingEventRepo implementación de BillingEventRepository sobre PostgreSQL.
type BillingEventRepo struct {
	q Querier
}

// NewBillingEventRepository construye el adaptador de eventos facturables. Pasar pool o tx (Querier).
func NewBillingEventRepository(q Querier) *BillingEventRepo {
	return &BillingEventRepo{q: q}
}

const billingEventColumns = `
	id, client_id, warehouse_id, invoice_id, event_type, quantity,
	unit_price, total_price, reference_type, reference_id, event_date, created_at`

// InsertOrFetch inserta el evento con ON CONFLICT DO NOTHING sobre la
// clave natural. Si el INSERT no devuelve fila, un duplicado llegó
// primero: se relee y se devuelve la fila preexistente. El booleano
// distingue inserción de relectura.
func (r *BillingEventRepo) InsertOrFetch(ev *entity.BillingEvent) (*entity.BillingEvent, bool, error) {
	insert := `
		INSERT INTO billing_events (
			id, client_id, warehouse_id, invoice_id, event_type, quantity,
			unit_price, total_price, reference_type, reference_id, event_date, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (client_id, event_type, reference_type, reference_id, event_date) DO NOTHING
		RETURNING id`
	var insertedID string
	err := r.q.QueryRow(context.Background(), insert,
		ev.ID, ev.ClientID, ev.WarehouseID, ev.InvoiceID, ev.EventType, ev.Quantity,
		ev.UnitPrice, ev.TotalPrice, ev.ReferenceType, ev.ReferenceID, ev.EventDate, ev.CreatedAt,
	).Scan(&insertedID)
	if err == nil {
		return ev, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert billing event: %w", err)
	}

	// Conflicto: ya existe un evento con la misma clave natural.
	query := `
		SELECT ` + billingEventColumns + `
		FROM billing_events
		WHERE client_id = $1 AND event_type = $2 AND reference_type = $3
		  AND reference_id = $4 AND event_date = $5`
	var existing entity.BillingEvent
	err = r.q.QueryRow(context.Background(), query,
		ev.ClientID, ev.EventType, ev.ReferenceType, ev.ReferenceID, ev.EventDate,
	).Scan(
		&existing.ID, &existing.ClientID, &existing.WarehouseID, &existing.InvoiceID,
		&existing.EventType, &existing.Quantity, &existing.UnitPrice, &existing.TotalPrice,
		&existing.ReferenceType, &existing.ReferenceID, &existing.EventDate, &existing.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("fetch billing event: %w", err)
	}
	return &existing, false, nil
}

// ListUninvoiced devuelve los eventos del cliente sin factura en el
// período [from, to], en orden cronológico.
func (r *BillingEventRepo) ListUninvoiced(clientID string, from, to time.Time) ([]*entity.BillingEvent, error) {
	query := `
		SELECT ` + billingEventColumns + `
		FROM billing_events
		WHERE client_id = $1 AND invoice_id IS NULL
		  AND event_date >= $2 AND event_date <= $3
		ORDER BY event_date, created_at`
	rows, err := r.q.Query(context.Background(), query, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list uninvoiced events: %w", err)
	}
	defer rows.Close()

	var out []*entity.BillingEvent
	for rows.Next() {
		var ev entity.BillingEvent
		if err := rows.Scan(
			&ev.ID, &ev.ClientID, &ev.WarehouseID, &ev.InvoiceID,
			&ev.EventType, &ev.Quantity, &ev.UnitPrice, &ev.TotalPrice,
			&ev.ReferenceType, &ev.ReferenceID, &ev.EventDate, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan billing event: %w", err)
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}

// LinkToInvoice enlaza los eventos facturados a su factura. Solo toca
// eventos aún sin factura: un evento nunca se factura dos veces.
func (r *BillingEventRepo) LinkToInvoice(invoiceID string, eventIDs []string) error {
	query := `
		UPDATE billing_events SET invoice_id = $1
		WHERE id = ANY($2) AND invoice_id IS NULL`
	_, err := r.q.Exec(context.Background(), query, invoiceID, eventIDs)
	if err != nil {
		return fmt.Errorf("link events to invoice: %w", err)
	}
	return nil
}
