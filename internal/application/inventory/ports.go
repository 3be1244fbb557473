package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda operación pública del motor corre
// completa en una transacción: un fallo de invariante la aborta y nada
// queda a medias. El runner hace Commit si fn retorna nil y Rollback en
// caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		balanceRepo repository.BalanceRepository,
		resRepo repository.ReservationRepository,
		pickRepo repository.PickingRepository,
	) error) error
}
