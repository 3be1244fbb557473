package billing

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción con los
// repos de facturación atados a esa tx (generación de facturas: crear
// cabecera, líneas y enlazar eventos, atómicamente).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		evRepo repository.BillingEventRepository,
		invRepo repository.InvoiceRepository,
	) error) error
}
