package billing

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// GenerateInvoiceUseCase agrupa los eventos facturables no facturados de
// un cliente en un período y emite la factura en borrador, enlazando
// cada evento a la factura para evitar el doble cobro.
type GenerateInvoiceUseCase struct {
	txRunner   BillingTxRunner
	clientRepo repository.ClientRepository
}

// NewGenerateInvoiceUseCase construye el caso de uso.
func NewGenerateInvoiceUseCase(txRunner BillingTxRunner, clientRepo repository.ClientRepository) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{txRunner: txRunner, clientRepo: clientRepo}
}

// GenerateInvoice crea la factura del período: una línea por tipo de
// evento con cantidades y totales sumados, IVA según el cliente. Sin
// eventos pendientes en el período, ErrConflict.
func (uc *GenerateInvoiceUseCase) GenerateInvoice(ctx context.Context, clientID string, periodStart, periodEnd time.Time) (*entity.Invoice, error) {
	if clientID == "" || periodEnd.Before(periodStart) {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	var inv *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(
		evRepo repository.BillingEventRepository,
		invRepo repository.InvoiceRepository,
	) error {
		events, err := evRepo.ListUninvoiced(clientID, periodStart, periodEnd)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return domain.ErrConflict
		}

		type group struct {
			qty   int64
			total decimal.Decimal
			unit  decimal.Decimal
		}
		grouped := make(map[string]*group)
		eventIDs := make([]string, 0, len(events))
		for _, ev := range events {
			eventIDs = append(eventIDs, ev.ID)
			g, ok := grouped[ev.EventType]
			if !ok {
				g = &group{total: decimal.Zero}
				grouped[ev.EventType] = g
			}
			g.qty += ev.Quantity
			g.total = g.total.Add(ev.TotalPrice)
			g.unit = ev.UnitPrice // se queda con el último precio visto
		}

		vatRate := decimal.NewFromFloat(client.VATRate)
		inv = &entity.Invoice{
			ID:          uuid.New().String(),
			ClientID:    clientID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Status:      entity.InvoiceStatusDraft,
			Currency:    client.BillingCurrency,
			CreatedAt:   time.Now(),
		}

		eventTypes := make([]string, 0, len(grouped))
		for et := range grouped {
			eventTypes = append(eventTypes, et)
		}
		sort.Strings(eventTypes)

		subtotal := decimal.Zero
		lines := make([]*entity.InvoiceLine, 0, len(grouped))
		for _, et := range eventTypes {
			g := grouped[et]
			subtotal = subtotal.Add(g.total)
			lines = append(lines, &entity.InvoiceLine{
				ID:         uuid.New().String(),
				InvoiceID:  inv.ID,
				EventType:  et,
				Quantity:   g.qty,
				UnitPrice:  g.unit,
				TotalPrice: g.total,
				TaxRate:    vatRate,
			})
		}

		inv.Subtotal = subtotal
		inv.TaxTotal = subtotal.Mul(vatRate).Round(2)
		inv.Total = inv.Subtotal.Add(inv.TaxTotal)

		if err := invRepo.Create(inv, lines); err != nil {
			return err
		}
		return evRepo.LinkToInvoice(inv.ID, eventIDs)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
