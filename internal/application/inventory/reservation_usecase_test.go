package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del asignador FEFO y del consumo de reservas. La propiedad
// central: nunca se reserva stock que vence después mientras quede
// disponible stock que vence antes, y una asignación que no alcanza a
// cubrir la demanda no deja reservas parciales.
// ──────────────────────────────────────────────────────────────────────────────

func newReservationFixture() (*memStore, *inventory.ReservationUseCase) {
	store := newMemStore()
	runner := &memTxRunner{store}
	ledgerUC := inventory.NewLedgerUseCase(runner)
	return store, inventory.NewReservationUseCase(runner, ledgerUC)
}

func reserveInput(qty int64) inventory.ReserveInput {
	return inventory.ReserveInput{
		TenantID:    1,
		OutboundID:  "OUT-001",
		ClientID:    "client-1",
		WarehouseID: "wh-1",
		ProductID:   "prod-1",
		Qty:         qty,
	}
}

func TestReservar_ActualizaReservadoYDisponible(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")

	reservations, err := uc.Reserve(context.Background(), reserveInput(6))
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, int64(6), reservations[0].QtyReserved)

	bal := store.balance("prod-1", nil, "loc-A")
	assert.Equal(t, int64(10), bal.OnHandQty, "reservar no mueve existencia física")
	assert.Equal(t, int64(6), bal.ReservedQty)
	assert.Equal(t, int64(4), bal.AvailableQty)
}

func TestReservar_FEFOPrefiereLoteQueVencePrimero(t *testing.T) {
	store, uc := newReservationFixture()
	// El lote B vence antes que el A; el sin-lote va al final.
	store.seedBalance("prod-1", strPtr("lote-A"), "loc-1", 10, 0,
		datePtr(2026, time.December, 1), entity.ZoneStorage, "A-01")
	store.seedBalance("prod-1", strPtr("lote-B"), "loc-2", 10, 0,
		datePtr(2026, time.October, 1), entity.ZoneStorage, "B-05")
	store.seedBalance("prod-1", nil, "loc-3", 10, 0,
		nil, entity.ZoneStorage, "C-09")

	reservations, err := uc.Reserve(context.Background(), reserveInput(15))
	require.NoError(t, err)
	require.Len(t, reservations, 2)

	// Primero agota el lote-B (vence en octubre), luego completa del lote-A.
	assert.Equal(t, "lote-B", *reservations[0].BatchID)
	assert.Equal(t, int64(10), reservations[0].QtyReserved)
	assert.Equal(t, "lote-A", *reservations[1].BatchID)
	assert.Equal(t, int64(5), reservations[1].QtyReserved)

	assert.Equal(t, int64(10), store.balance("prod-1", strPtr("lote-B"), "loc-2").ReservedQty)
	assert.Equal(t, int64(5), store.balance("prod-1", strPtr("lote-A"), "loc-1").ReservedQty)
	assert.Equal(t, int64(0), store.balance("prod-1", nil, "loc-3").ReservedQty,
		"el stock sin vencimiento solo se toca cuando el fechado se agota")
}

func TestReservar_IgnoraUbicacionesStaging(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-stg", 10, 0, nil, entity.ZoneStaging, "STG-01")
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")

	reservations, err := uc.Reserve(context.Background(), reserveInput(8))
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "loc-A", reservations[0].LocationID,
		"staging es mercancía en tránsito, no asignable")
}

// TestReservar_InsuficienteRevierteTodo fija la decisión de diseño:
// demanda que no se cubre completa no deja NINGUNA reserva parcial; la
// transacción entera se revierte y los balances quedan intactos.
func TestReservar_InsuficienteRevierteTodo(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", strPtr("lote-A"), "loc-1", 5, 0,
		datePtr(2026, time.October, 1), entity.ZoneStorage, "A-01")
	store.seedBalance("prod-1", strPtr("lote-B"), "loc-2", 3, 0,
		datePtr(2026, time.November, 1), entity.ZoneStorage, "B-02")

	_, err := uc.Reserve(context.Background(), reserveInput(10))
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable,
		"hay 8 disponibles y la demanda es 10")

	assert.Empty(t, store.reservations,
		"la asignación parcial debe revertirse completa")
	assert.Equal(t, int64(0), store.balance("prod-1", strPtr("lote-A"), "loc-1").ReservedQty)
	assert.Equal(t, int64(0), store.balance("prod-1", strPtr("lote-B"), "loc-2").ReservedQty)
}

func TestReservar_CantidadInvalida(t *testing.T) {
	_, uc := newReservationFixture()

	_, err := uc.Reserve(context.Background(), reserveInput(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Reserve(context.Background(), reserveInput(-3))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReservar_AcumulaSobreReservaExistente(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")
	ctx := context.Background()

	first, err := uc.Reserve(ctx, reserveInput(3))
	require.NoError(t, err)
	second, err := uc.Reserve(ctx, reserveInput(4))
	require.NoError(t, err)

	// Misma clave (orden, producto, lote, ubicación): una sola fila acumulada.
	require.Len(t, store.reservations, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, int64(7), second[0].QtyReserved)
	assert.Equal(t, int64(7), store.balance("prod-1", nil, "loc-A").ReservedQty)
}

// ── Consumo ───────────────────────────────────────────────────────────────────

func TestConsumir_ParcialMantieneReserva(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")
	ctx := context.Background()

	reservations, err := uc.Reserve(ctx, reserveInput(6))
	require.NoError(t, err)
	resID := reservations[0].ID

	require.NoError(t, uc.Consume(ctx, resID, 2))

	r := store.reservations[resID]
	require.NotNil(t, r)
	assert.Equal(t, int64(4), r.QtyReserved)
	bal := store.balance("prod-1", nil, "loc-A")
	assert.Equal(t, int64(4), bal.ReservedQty)
	assert.Equal(t, int64(6), bal.AvailableQty)
}

func TestConsumir_EnCeroBorraLaReserva(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")
	ctx := context.Background()

	reservations, err := uc.Reserve(ctx, reserveInput(6))
	require.NoError(t, err)
	resID := reservations[0].ID

	require.NoError(t, uc.Consume(ctx, resID, 6))

	assert.NotContains(t, store.reservations, resID,
		"la reserva en cero exacto se borra, no persiste vacía")
	assert.Equal(t, int64(0), store.balance("prod-1", nil, "loc-A").ReservedQty)
}

func TestConsumir_MasDeLoReservadoRechazado(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")
	ctx := context.Background()

	reservations, err := uc.Reserve(ctx, reserveInput(4))
	require.NoError(t, err)

	err = uc.Consume(ctx, reservations[0].ID, 5)
	require.ErrorIs(t, err, domain.ErrReservationExceeded)
	assert.Equal(t, int64(4), store.reservations[reservations[0].ID].QtyReserved,
		"el rechazo no debe tocar la reserva")
}

func TestConsumir_ReservaInexistente(t *testing.T) {
	_, uc := newReservationFixture()
	err := uc.Consume(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Escaneo de picking: consumo + traslado a staging, una transacción ─────────

func TestPickScan_ConsumeYTrasladaAStaging(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")
	ctx := context.Background()

	reservations, err := uc.Reserve(ctx, reserveInput(6))
	require.NoError(t, err)

	err = uc.ConsumeAndMove(ctx, inventory.PickScanInput{
		ReservationID:     reservations[0].ID,
		Qty:               6,
		StagingLocationID: "loc-stg",
	})
	require.NoError(t, err)

	origen := store.balance("prod-1", nil, "loc-A")
	assert.Equal(t, int64(4), origen.OnHandQty)
	assert.Equal(t, int64(0), origen.ReservedQty)
	staging := store.balance("prod-1", nil, "loc-stg")
	require.NotNil(t, staging)
	assert.Equal(t, int64(6), staging.OnHandQty)

	require.Len(t, store.ledger, 2, "el escaneo deja débito y crédito PICK en el libro")
	assert.Equal(t, entity.EventPick, store.ledger[0].EventType)
	assert.Equal(t, "OUT-001", store.ledger[0].ReferenceID)
}

func TestPickScan_AvanzaLineaDeTarea(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")
	pickingUC := inventory.NewPickingUseCase(&memTxRunner{store})
	ctx := context.Background()

	reservations, err := uc.Reserve(ctx, reserveInput(6))
	require.NoError(t, err)
	task, err := pickingUC.GeneratePicks(ctx, "OUT-001")
	require.NoError(t, err)
	_, lines, err := pickingUC.GetTaskWithLines(ctx, "OUT-001")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	err = uc.ConsumeAndMove(ctx, inventory.PickScanInput{
		ReservationID:     reservations[0].ID,
		Qty:               4,
		StagingLocationID: "loc-stg",
		PickLineID:        &lines[0].ID,
	})
	require.NoError(t, err)

	_, lines, err = pickingUC.GetTaskWithLines(ctx, "OUT-001")
	require.NoError(t, err)
	assert.Equal(t, int64(4), lines[0].QtyPicked)
	assert.False(t, lines[0].Done())
	assert.Equal(t, entity.PickingStatusOpen, task.Status)
}

func TestPickScan_FalloRevierteConsumoYTraslado(t *testing.T) {
	store, uc := newReservationFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneStorage, "A-01")
	ctx := context.Background()

	reservations, err := uc.Reserve(ctx, reserveInput(6))
	require.NoError(t, err)

	err = uc.ConsumeAndMove(ctx, inventory.PickScanInput{
		ReservationID:     reservations[0].ID,
		Qty:               9,
		StagingLocationID: "loc-stg",
	})
	require.ErrorIs(t, err, domain.ErrReservationExceeded)

	bal := store.balance("prod-1", nil, "loc-A")
	assert.Equal(t, int64(10), bal.OnHandQty)
	assert.Equal(t, int64(6), bal.ReservedQty)
	assert.Nil(t, store.balance("prod-1", nil, "loc-stg"))
	assert.Empty(t, store.ledger)
}
