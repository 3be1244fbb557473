package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/metrics"
)

// LedgerUseCase registra asientos del libro de inventario y materializa
// el balance tocado, todo en una transacción con bloqueo de fila
// (SELECT FOR UPDATE) sobre el balance.
type LedgerUseCase struct {
	txRunner TxRunner
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner}
}

// AppendInput entrada para un asiento del libro.
type AppendInput struct {
	TenantID       int64
	ClientID       string
	WarehouseID    string
	ProductID      string
	BatchID        *string
	FromLocationID *string
	ToLocationID   *string
	QtyDelta       int64
	EventType      string
	ReferenceType  string
	ReferenceID    string
	PerformedBy    *string
}

// MoveInput entrada para un traslado ubicación→ubicación.
type MoveInput struct {
	TenantID      int64
	ClientID      string
	WarehouseID   string
	ProductID     string
	BatchID       *string
	FromLocation  string
	ToLocation    string
	Qty           int64
	EventType     string
	ReferenceType string
	ReferenceID   string
	PerformedBy   *string
}

// AppendMovement inserta el asiento y aplica el delta al balance dentro
// de una transacción propia. Devuelve el asiento creado; el único efecto
// colateral es una mutación (o creación) de balance.
func (uc *LedgerUseCase) AppendMovement(ctx context.Context, in AppendInput) (*entity.LedgerEntry, error) {
	var created *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ReservationRepository,
		_ repository.PickingRepository,
	) error {
		entry, err := uc.AppendMovementInTx(ledgerRepo, balanceRepo, in)
		if err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AppendMovementInTx es el núcleo del motor, para componer con otras
// operaciones en la misma transacción del caller (traslados, escaneos de
// picking). Cadena de guardas, en orden:
//  1. delta ≠ 0
//  2. delta > 0 → destino obligatorio, sin origen
//  3. delta < 0 → origen obligatorio, sin destino, y el resultado no
//     puede dejar on_hand < 0 ni on_hand < reservado (esa segunda guarda
//     protege las reservas contra stock que se mueve o despacha).
func (uc *LedgerUseCase) AppendMovementInTx(
	ledgerRepo repository.LedgerRepository,
	balanceRepo repository.BalanceRepository,
	in AppendInput,
) (*entity.LedgerEntry, error) {
	if in.QtyDelta == 0 {
		return nil, domain.ErrInvalidInput
	}

	var locationID string
	switch {
	case in.QtyDelta > 0:
		if in.ToLocationID == nil || in.FromLocationID != nil {
			return nil, domain.ErrInvalidInput
		}
		locationID = *in.ToLocationID
	default:
		if in.FromLocationID == nil || in.ToLocationID != nil {
			return nil, domain.ErrInvalidInput
		}
		locationID = *in.FromLocationID
	}

	// Bloquea (o crea en cero) la fila de balance de la clave tocada.
	bal, err := balanceRepo.GetOrCreateForUpdate(repository.BalanceKey{
		TenantID:   in.TenantID,
		ProductID:  in.ProductID,
		BatchID:    in.BatchID,
		LocationID: locationID,
	}, in.ClientID, in.WarehouseID)
	if err != nil {
		return nil, err
	}

	newOnHand := bal.OnHandQty + in.QtyDelta
	if in.QtyDelta < 0 {
		if newOnHand < 0 {
			return nil, domain.ErrInsufficientOnHand
		}
		if newOnHand < bal.ReservedQty {
			return nil, domain.ErrBelowReserved
		}
	}
	bal.OnHandQty = newOnHand
	bal.RecalcAvailable()
	if err := balanceRepo.Update(bal); err != nil {
		return nil, err
	}

	entry := &entity.LedgerEntry{
		ID:             uuid.New().String(),
		TenantID:       in.TenantID,
		ClientID:       in.ClientID,
		WarehouseID:    in.WarehouseID,
		ProductID:      in.ProductID,
		BatchID:        in.BatchID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		QtyDelta:       in.QtyDelta,
		EventType:      in.EventType,
		ReferenceType:  in.ReferenceType,
		ReferenceID:    in.ReferenceID,
		PerformedBy:    in.PerformedBy,
		CreatedAt:      time.Now(),
	}
	if err := ledgerRepo.Create(entry); err != nil {
		return nil, err
	}
	metrics.MovementsTotal.WithLabelValues(in.EventType).Inc()
	return entry, nil
}

// ListEntries devuelve los asientos de un producto, más recientes primero.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, tenantID int64, productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		_ repository.BalanceRepository,
		_ repository.ReservationRepository,
		_ repository.PickingRepository,
	) error {
		var err error
		out, err = ledgerRepo.ListByProduct(tenantID, productID, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListBalances devuelve los saldos materializados del tenant,
// opcionalmente filtrados por cliente.
func (uc *LedgerUseCase) ListBalances(ctx context.Context, tenantID int64, clientID string, limit, offset int) ([]*entity.Balance, error) {
	var out []*entity.Balance
	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ReservationRepository,
		_ repository.PickingRepository,
	) error {
		var err error
		out, err = balanceRepo.ListByClient(tenantID, clientID, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Move expresa un traslado como dos asientos: débito en el origen y
// crédito en el destino, mismo tipo de evento y misma referencia, en una
// sola transacción. Si el débito falla las guardas, el traslado completo
// se aborta y no se escribe el crédito. Putaway, picking y transferencia
// manual se implementan así; solo cambia la etiqueta de evento.
func (uc *LedgerUseCase) Move(ctx context.Context, in MoveInput) error {
	if in.Qty <= 0 || in.FromLocation == in.ToLocation {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ReservationRepository,
		_ repository.PickingRepository,
	) error {
		return uc.MoveInTx(ledgerRepo, balanceRepo, in)
	})
}

// MoveInTx versión componible de Move para la transacción del caller.
func (uc *LedgerUseCase) MoveInTx(
	ledgerRepo repository.LedgerRepository,
	balanceRepo repository.BalanceRepository,
	in MoveInput,
) error {
	if in.Qty <= 0 {
		return domain.ErrInvalidInput
	}
	base := AppendInput{
		TenantID:      in.TenantID,
		ClientID:      in.ClientID,
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		BatchID:       in.BatchID,
		EventType:     in.EventType,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		PerformedBy:   in.PerformedBy,
	}

	debit := base
	debit.FromLocationID = &in.FromLocation
	debit.QtyDelta = -in.Qty
	if _, err := uc.AppendMovementInTx(ledgerRepo, balanceRepo, debit); err != nil {
		return err
	}

	credit := base
	credit.ToLocationID = &in.ToLocation
	credit.QtyDelta = in.Qty
	_, err := uc.AppendMovementInTx(ledgerRepo, balanceRepo, credit)
	return err
}
