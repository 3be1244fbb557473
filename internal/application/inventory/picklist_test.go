package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de GeneratePickLines (función pura de ordenamiento) y del ciclo
// de vida de la tarea de picking.
// ──────────────────────────────────────────────────────────────────────────────

func detail(qty int64, expiry *time.Time, zone, code string) *repository.ReservationDetail {
	return &repository.ReservationDetail{
		Reservation: entity.Reservation{
			ProductID:   "prod-1",
			LocationID:  "loc-" + code,
			QtyReserved: qty,
		},
		ExpiryDate:   expiry,
		ZoneType:     zone,
		LocationCode: code,
	}
}

func TestGeneratePickLines_OrdenVencimientoZonaCodigo(t *testing.T) {
	details := []*repository.ReservationDetail{
		detail(5, nil, entity.ZoneStorage, "Z-99"),
		detail(3, datePtr(2026, time.December, 1), entity.ZoneStorage, "B-02"),
		detail(2, datePtr(2026, time.October, 15), entity.ZonePacking, "P-01"),
		detail(4, datePtr(2026, time.October, 15), entity.ZonePacking, "A-07"),
		detail(1, datePtr(2026, time.October, 15), entity.ZoneStorage, "C-03"),
	}

	lines := inventory.GeneratePickLines(details)
	require.Len(t, lines, 5)

	// Vencimiento ascendente primero; dentro del mismo vencimiento, zona
	// ascendente y luego código; el sin-vencimiento al final.
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		codes = append(codes, l.LocationCode)
	}
	assert.Equal(t, []string{"A-07", "P-01", "C-03", "B-02", "Z-99"}, codes)
}

func TestGeneratePickLines_UnaLineaPorReserva(t *testing.T) {
	details := []*repository.ReservationDetail{
		detail(7, datePtr(2026, time.November, 3), entity.ZoneStorage, "A-01"),
	}
	lines := inventory.GeneratePickLines(details)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(7), lines[0].QtyToPick,
		"cada reserva produce exactamente una línea con toda su cantidad")
	assert.Equal(t, "loc-A-01", lines[0].FromLocationID)
}

func TestGeneratePickLines_NoMutaLaEntrada(t *testing.T) {
	first := detail(1, nil, entity.ZoneStorage, "B-01")
	details := []*repository.ReservationDetail{
		first,
		detail(2, datePtr(2026, time.October, 1), entity.ZoneStorage, "A-01"),
	}

	inventory.GeneratePickLines(details)
	assert.Same(t, first, details[0], "la función es pura: el slice de entrada no se reordena")
}

func TestGeneratePickLines_Vacio(t *testing.T) {
	assert.Empty(t, inventory.GeneratePickLines(nil))
}

// ── Ciclo de vida de la tarea ─────────────────────────────────────────────────

func newPickingFixture(t *testing.T) (*memStore, *inventory.PickingUseCase, string) {
	t.Helper()
	store := newMemStore()
	runner := &memTxRunner{store}
	ledgerUC := inventory.NewLedgerUseCase(runner)
	resUC := inventory.NewReservationUseCase(runner, ledgerUC)

	store.seedBalance("prod-1", strPtr("lote-A"), "loc-1", 10, 0,
		datePtr(2026, time.October, 1), entity.ZoneStorage, "A-01")
	store.seedBalance("prod-1", strPtr("lote-B"), "loc-2", 10, 0,
		datePtr(2026, time.December, 1), entity.ZoneStorage, "B-01")

	reservations, err := resUC.Reserve(context.Background(), reserveInput(14))
	require.NoError(t, err)
	require.Len(t, reservations, 2)

	return store, inventory.NewPickingUseCase(runner), reservations[0].OutboundID
}

func TestGeneratePicks_CreaTareaConLineasOrdenadas(t *testing.T) {
	_, uc, outboundID := newPickingFixture(t)
	ctx := context.Background()

	task, err := uc.GeneratePicks(ctx, outboundID)
	require.NoError(t, err)
	assert.Equal(t, entity.PickingStatusOpen, task.Status)

	_, lines, err := uc.GetTaskWithLines(ctx, outboundID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "loc-1", lines[0].FromLocationID, "el lote que vence primero va primero")
	assert.Equal(t, int64(10), lines[0].QtyToPick)
	assert.Equal(t, "loc-2", lines[1].FromLocationID)
	assert.Equal(t, int64(4), lines[1].QtyToPick)
}

func TestGeneratePicks_IdempotentePorOrden(t *testing.T) {
	store, uc, outboundID := newPickingFixture(t)
	ctx := context.Background()

	task1, err := uc.GeneratePicks(ctx, outboundID)
	require.NoError(t, err)
	task2, err := uc.GeneratePicks(ctx, outboundID)
	require.NoError(t, err)

	assert.Equal(t, task1.ID, task2.ID, "regenerar no crea una segunda tarea")
	assert.Len(t, store.lines, 2, "ni duplica líneas")
}

func TestGeneratePicks_SinReservasConflict(t *testing.T) {
	store := newMemStore()
	uc := inventory.NewPickingUseCase(&memTxRunner{store})

	_, err := uc.GeneratePicks(context.Background(), "OUT-VACIA")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCompleteTask_ExigeLineasTerminales(t *testing.T) {
	store, uc, outboundID := newPickingFixture(t)
	ctx := context.Background()

	task, err := uc.GeneratePicks(ctx, outboundID)
	require.NoError(t, err)
	require.NoError(t, uc.StartTask(ctx, task.ID, "user-7"))

	err = uc.CompleteTask(ctx, task.ID)
	require.ErrorIs(t, err, domain.ErrConflict, "con líneas pendientes no se puede cerrar")

	for _, l := range store.lines {
		l.QtyPicked = l.QtyToPick
	}
	require.NoError(t, uc.CompleteTask(ctx, task.ID))

	done := store.tasks[task.ID]
	assert.Equal(t, entity.PickingStatusDone, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.NotNil(t, done.AssignedUserID)
	assert.Equal(t, "user-7", *done.AssignedUserID)
}
