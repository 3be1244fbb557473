package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReconciliationUseCase contrasta el saldo materializado contra la suma
// de deltas del libro por clave. La diferencia debe ser cero en todo
// momento; cualquier fila con diff ≠ 0 es una corrupción a investigar.
type ReconciliationUseCase struct {
	txRunner TxRunner
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(txRunner TxRunner) *ReconciliationUseCase {
	return &ReconciliationUseCase{txRunner: txRunner}
}

// Report devuelve una fila por clave de balance con el on_hand
// materializado, la suma del libro y su diferencia. Corre en una
// transacción para que ambas lecturas vean el mismo snapshot.
func (uc *ReconciliationUseCase) Report(ctx context.Context, tenantID int64) ([]dto.ReconciliationRow, error) {
	var rows []dto.ReconciliationRow
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		_ repository.ReservationRepository,
		_ repository.PickingRepository,
	) error {
		sums, err := ledgerRepo.SumDeltasByKey(tenantID)
		if err != nil {
			return err
		}
		balances, err := balanceRepo.ListByClient(tenantID, "", 0, 0)
		if err != nil {
			return err
		}

		type key struct {
			product  string
			batch    string
			location string
		}
		sumByKey := make(map[key]int64, len(sums))
		for _, s := range sums {
			sumByKey[key{s.ProductID, deref(s.BatchID), s.LocationID}] = s.Total
		}

		for _, b := range balances {
			k := key{b.ProductID, deref(b.BatchID), b.LocationID}
			ledgerSum := sumByKey[k]
			delete(sumByKey, k)
			rows = append(rows, dto.ReconciliationRow{
				ProductID:  b.ProductID,
				BatchID:    b.BatchID,
				LocationID: b.LocationID,
				OnHandQty:  b.OnHandQty,
				LedgerSum:  ledgerSum,
				Diff:       b.OnHandQty - ledgerSum,
			})
		}
		// Claves con asientos pero sin balance: diff negativo puro.
		for _, s := range sums {
			k := key{s.ProductID, deref(s.BatchID), s.LocationID}
			if _, pending := sumByKey[k]; !pending {
				continue
			}
			rows = append(rows, dto.ReconciliationRow{
				ProductID:  s.ProductID,
				BatchID:    s.BatchID,
				LocationID: s.LocationID,
				OnHandQty:  0,
				LedgerSum:  s.Total,
				Diff:       -s.Total,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
