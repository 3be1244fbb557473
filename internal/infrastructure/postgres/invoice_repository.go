package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la factura y sus líneas. Llamarlo dentro de una tx:
// cabecera sin líneas (o al revés) no es un estado válido.
func (r *InvoiceRepo) Create(inv *entity.Invoice, lines []*entity.InvoiceLine) error {
	query := `
		INSERT INTO invoices (
			id, client_id, period_start, period_end, status, currency,
			subtotal, tax_total, total, issued_at, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ClientID, inv.PeriodStart, inv.PeriodEnd, inv.Status, inv.Currency,
		inv.Subtotal, inv.TaxTotal, inv.Total, inv.IssuedAt, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}

	lineQuery := `
		INSERT INTO invoice_lines (
			id, invoice_id, event_type, quantity, unit_price, total_price, tax_rate
		) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	for _, l := range lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			l.ID, l.InvoiceID, l.EventType, l.Quantity, l.UnitPrice, l.TotalPrice, l.TaxRate,
		); err != nil {
			return fmt.Errorf("create invoice line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura; nil si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT id, client_id, period_start, period_end, status, currency,
		       subtotal, tax_total, total, issued_at, created_at
		FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.ClientID, &inv.PeriodStart, &inv.PeriodEnd, &inv.Status, &inv.Currency,
		&inv.Subtotal, &inv.TaxTotal, &inv.Total, &inv.IssuedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// ListLines devuelve las líneas de una factura.
func (r *InvoiceRepo) ListLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, event_type, quantity, unit_price, total_price, tax_rate
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY event_type`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.EventType, &l.Quantity, &l.UnitPrice, &l.TotalPrice, &l.TaxRate,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
