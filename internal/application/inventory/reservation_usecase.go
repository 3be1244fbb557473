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

// ReservationUseCase asigna stock escaso a la demanda de salida con
// política FEFO y lo consume al momento del picking físico. Lee y muta
// balances por el mismo camino de guardas que los asientos del libro:
// no existe una vía de actualización aparte.
type ReservationUseCase struct {
	txRunner TxRunner
	ledgerUC *LedgerUseCase
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(txRunner TxRunner, ledgerUC *LedgerUseCase) *ReservationUseCase {
	return &ReservationUseCase{txRunner: txRunner, ledgerUC: ledgerUC}
}

// ReserveInput demanda de una línea de orden de salida.
type ReserveInput struct {
	TenantID    int64
	OutboundID  string
	ClientID    string
	WarehouseID string
	ProductID   string
	Qty         int64
}

// Reserve recorre los balances elegibles en orden FEFO (vencimiento
// ascendente, nulos al final; updated_at ascendente como desempate) y
// consume en greedy: toma min(demanda restante, disponible del
// candidato), sube el reservado agregado bajo la misma guarda que los
// asientos, y hace upsert de la reserva (orden, producto, lote,
// ubicación). Nunca reserva stock que vence después mientras queda
// disponible stock que vence antes.
//
// Si los candidatos se agotan con demanda restante, retorna
// ErrInsufficientAvailable y la transacción completa se revierte: no se
// conservan reservas parciales (decisión registrada en DESIGN.md).
func (uc *ReservationUseCase) Reserve(ctx context.Context, in ReserveInput) ([]*entity.Reservation, error) {
	if in.Qty <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var touched []*entity.Reservation
	err := uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		resRepo repository.ReservationRepository,
		_ repository.PickingRepository,
	) error {
		candidates, err := balanceRepo.ListCandidatesForUpdate(in.TenantID, in.ClientID, in.WarehouseID, in.ProductID)
		if err != nil {
			return err
		}

		remaining := in.Qty
		for _, cand := range candidates {
			if remaining <= 0 {
				break
			}
			take := min64(remaining, cand.Balance.AvailableQty)
			if take <= 0 {
				continue
			}

			if err := adjustReserved(balanceRepo, &cand.Balance, take); err != nil {
				return err
			}

			r, err := upsertReservation(resRepo, in, &cand.Balance, take)
			if err != nil {
				return err
			}
			touched = append(touched, r)
			remaining -= take
		}

		if remaining > 0 {
			return domain.ErrInsufficientAvailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ReservationsTotal.Inc()
	return touched, nil
}

// Consume decrementa una reserva tras un escaneo de picking físico:
// baja el reservado agregado del balance (rederivando el disponible),
// baja la cantidad de la reserva y borra la fila al llegar exactamente
// a cero.
func (uc *ReservationUseCase) Consume(ctx context.Context, reservationID string, qty int64) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		resRepo repository.ReservationRepository,
		_ repository.PickingRepository,
	) error {
		return uc.consumeInTx(balanceRepo, resRepo, reservationID, qty)
	})
}

func (uc *ReservationUseCase) consumeInTx(
	balanceRepo repository.BalanceRepository,
	resRepo repository.ReservationRepository,
	reservationID string,
	qty int64,
) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	r, err := resRepo.GetByIDForUpdate(reservationID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if qty > r.QtyReserved {
		return domain.ErrReservationExceeded
	}

	bal, err := balanceRepo.GetOrCreateForUpdate(repository.BalanceKey{
		TenantID:   r.TenantID,
		ProductID:  r.ProductID,
		BatchID:    r.BatchID,
		LocationID: r.LocationID,
	}, r.ClientID, r.WarehouseID)
	if err != nil {
		return err
	}
	if err := adjustReserved(balanceRepo, bal, -qty); err != nil {
		return err
	}

	r.QtyReserved -= qty
	if r.QtyReserved == 0 {
		return resRepo.Delete(r.ID)
	}
	return resRepo.UpdateQty(r.ID, r.QtyReserved)
}

// PickScanInput escaneo de picking: consumo de reserva + traslado de la
// existencia hacia staging, una sola transacción. PickLineID opcional:
// si viene, el avance queda registrado en la línea de la tarea.
type PickScanInput struct {
	ReservationID     string
	Qty               int64
	StagingLocationID string
	PickLineID        *int64
	PerformedBy       *string
}

// ConsumeAndMove es el flujo completo de un escaneo: consume la reserva,
// traslada on_hand de la ubicación de picking a la de staging con un
// evento PICK y avanza la línea de la tarea. Si cualquier paso falla,
// ninguno queda.
func (uc *ReservationUseCase) ConsumeAndMove(ctx context.Context, in PickScanInput) error {
	if in.Qty <= 0 || in.StagingLocationID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		resRepo repository.ReservationRepository,
		pickRepo repository.PickingRepository,
	) error {
		r, err := resRepo.GetByIDForUpdate(in.ReservationID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if err := uc.consumeInTx(balanceRepo, resRepo, in.ReservationID, in.Qty); err != nil {
			return err
		}
		if in.PickLineID != nil {
			if err := pickRepo.AddPicked(*in.PickLineID, in.Qty); err != nil {
				return err
			}
		}
		return uc.ledgerUC.MoveInTx(ledgerRepo, balanceRepo, MoveInput{
			TenantID:      r.TenantID,
			ClientID:      r.ClientID,
			WarehouseID:   r.WarehouseID,
			ProductID:     r.ProductID,
			BatchID:       r.BatchID,
			FromLocation:  r.LocationID,
			ToLocation:    in.StagingLocationID,
			Qty:           in.Qty,
			EventType:     entity.EventPick,
			ReferenceType: "OUTBOUND",
			ReferenceID:   r.OutboundID,
			PerformedBy:   in.PerformedBy,
		})
	})
}

// adjustReserved aplica un delta al reservado agregado de un balance
// bloqueado, con las mismas guardas que protege el libro: el reservado
// no baja de cero y nunca supera la existencia física.
func adjustReserved(balanceRepo repository.BalanceRepository, bal *entity.Balance, delta int64) error {
	if delta == 0 {
		return nil
	}
	newReserved := bal.ReservedQty + delta
	if newReserved < 0 {
		return domain.ErrConflict
	}
	if bal.OnHandQty-newReserved < 0 {
		return domain.ErrInsufficientAvailable
	}
	bal.ReservedQty = newReserved
	bal.RecalcAvailable()
	return balanceRepo.Update(bal)
}

// upsertReservation acumula sobre la reserva existente de la clave
// (orden, producto, lote, ubicación) o crea una nueva.
func upsertReservation(
	resRepo repository.ReservationRepository,
	in ReserveInput,
	bal *entity.Balance,
	take int64,
) (*entity.Reservation, error) {
	r, err := resRepo.GetForOrderKey(in.OutboundID, in.ProductID, bal.BatchID, bal.LocationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = &entity.Reservation{
			ID:          uuid.New().String(),
			TenantID:    in.TenantID,
			OutboundID:  in.OutboundID,
			ClientID:    in.ClientID,
			WarehouseID: in.WarehouseID,
			ProductID:   in.ProductID,
			BatchID:     bal.BatchID,
			LocationID:  bal.LocationID,
			QtyReserved: take,
			CreatedAt:   time.Now(),
		}
		return r, resRepo.Create(r)
	}
	r.QtyReserved += take
	return r, resRepo.UpdateQty(r.ID, r.QtyReserved)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
