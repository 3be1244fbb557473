package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// UsageRecorder registra eventos facturables con precio, de forma
// idempotente sobre la clave natural (cliente, tipo, reference_type,
// reference_id, fecha). Es independiente del estado de inventario pero
// lo disparan los mismos flujos (recepción, despacho, impresión,
// barrido diario de almacenaje), así que reintentar es seguro.
type UsageRecorder struct {
	evRepo      repository.BillingEventRepository
	priceRepo   repository.PriceListRepository
	balanceRepo repository.BalanceRepository
}

// NewUsageRecorder construye el registrador.
func NewUsageRecorder(
	evRepo repository.BillingEventRepository,
	priceRepo repository.PriceListRepository,
	balanceRepo repository.BalanceRepository,
) *UsageRecorder {
	return &UsageRecorder{evRepo: evRepo, priceRepo: priceRepo, balanceRepo: balanceRepo}
}

// UsageInput evento de uso a registrar.
type UsageInput struct {
	ClientID      string
	WarehouseID   string
	EventType     string
	Quantity      int64
	ReferenceType string
	ReferenceID   string
	EventDate     time.Time
}

// RecordUsage tarifa y registra el evento. El precio sale de la lista
// vigente del cliente a la fecha (effective_from ≤ fecha, la más
// reciente); sin lista vigente, tarifa cero. Si la clave natural ya
// existe, descarta el duplicado y devuelve la fila preexistente sin
// error: el flujo que lo llama puede reintentar con tranquilidad.
func (uc *UsageRecorder) RecordUsage(ctx context.Context, in UsageInput) (*entity.BillingEvent, error) {
	ev, _, err := uc.record(ctx, in)
	return ev, err
}

func (uc *UsageRecorder) record(ctx context.Context, in UsageInput) (*entity.BillingEvent, bool, error) {
	if in.Quantity <= 0 {
		return nil, false, domain.ErrInvalidInput
	}
	if in.ClientID == "" || in.EventType == "" || in.ReferenceID == "" {
		return nil, false, domain.ErrInvalidInput
	}

	unitPrice := decimal.Zero
	pl, err := uc.priceRepo.GetActive(in.ClientID, in.EventDate)
	if err != nil {
		return nil, false, err
	}
	if pl != nil {
		unitPrice = pl.Rules.UnitPriceFor(in.EventType)
	}

	ev := &entity.BillingEvent{
		ID:            uuid.New().String(),
		ClientID:      in.ClientID,
		WarehouseID:   in.WarehouseID,
		EventType:     in.EventType,
		Quantity:      in.Quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    unitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		EventDate:     in.EventDate,
		CreatedAt:     time.Now(),
	}
	stored, inserted, err := uc.evRepo.InsertOrFetch(ev)
	if err != nil {
		return nil, false, err
	}
	if inserted {
		metrics.BillingEventsTotal.WithLabelValues(in.EventType).Inc()
	}
	return stored, inserted, nil
}

// RunDailyStorage genera el evento STORAGE_DAY del día por cada
// (cliente, bodega) con ocupación: posición-día aproximada como conteo
// de ubicaciones distintas con existencia > 0. Referencia CRON + fecha,
// así el barrido puede relanzarse sin duplicar cobros. Devuelve cuántos
// eventos nuevos se insertaron.
func (uc *UsageRecorder) RunDailyStorage(ctx context.Context, eventDate time.Time) (int, error) {
	rows, err := uc.balanceRepo.ListStorageOccupancy()
	if err != nil {
		return 0, err
	}
	created := 0
	for _, row := range rows {
		if row.Locations <= 0 {
			continue
		}
		_, inserted, err := uc.record(ctx, UsageInput{
			ClientID:      row.ClientID,
			WarehouseID:   row.WarehouseID,
			EventType:     entity.BillingStorageDay,
			Quantity:      row.Locations,
			ReferenceType: "CRON",
			ReferenceID:   eventDate.Format("2006-01-02"),
			EventDate:     eventDate,
		})
		if err != nil {
			return created, err
		}
		// Un relanzo del barrido devuelve filas preexistentes: no cuentan.
		if inserted {
			created++
		}
	}
	return created, nil
}
