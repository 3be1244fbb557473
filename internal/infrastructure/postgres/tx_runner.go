package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Bodega-api/internal/application/billing"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del motor de
// inventario atados a la tx y hace Commit o Rollback. Los bloqueos
// FOR UPDATE tomados por los repos viven hasta el cierre de la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	balanceRepo repository.BalanceRepository,
	resRepo repository.ReservationRepository,
	pickRepo repository.PickingRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ledgerRepo := NewLedgerRepository(tx)
	balanceRepo := NewBalanceRepository(tx)
	resRepo := NewReservationRepository(tx)
	pickRepo := NewPickingRepository(tx)

	if err := fn(ledgerRepo, balanceRepo, resRepo, pickRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con los repos de facturación
// (generación de facturas: cabecera, líneas y enlace de eventos).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	evRepo repository.BillingEventRepository,
	invRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	evRepo := NewBillingEventRepository(tx)
	invRepo := NewInvoiceRepository(tx)

	if err := fn(evRepo, invRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
