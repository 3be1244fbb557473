package inventory_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del núcleo del libro: cadena de guardas de AppendMovement y
// atomicidad de Move. Corren sobre el memStore con el memTxRunner, que
// replica la semántica commit/rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

func newLedgerFixture() (*memStore, *inventory.LedgerUseCase) {
	store := newMemStore()
	return store, inventory.NewLedgerUseCase(&memTxRunner{store})
}

func receiveInput(qty int64, toLocation string) inventory.AppendInput {
	return inventory.AppendInput{
		TenantID:      1,
		ClientID:      "client-1",
		WarehouseID:   "wh-1",
		ProductID:     "prod-1",
		ToLocationID:  strPtr(toLocation),
		QtyDelta:      qty,
		EventType:     entity.EventInboundReceive,
		ReferenceType: "INBOUND",
		ReferenceID:   "IN-001",
	}
}

func TestAppendMovement_RecepcionCreaBalance(t *testing.T) {
	store, uc := newLedgerFixture()

	entry, err := uc.AppendMovement(context.Background(), receiveInput(10, "loc-A"))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(10), entry.QtyDelta)

	bal := store.balance("prod-1", nil, "loc-A")
	require.NotNil(t, bal, "el primer asiento debe materializar el balance de la clave")
	assert.Equal(t, int64(10), bal.OnHandQty)
	assert.Equal(t, int64(0), bal.ReservedQty)
	assert.Equal(t, int64(10), bal.AvailableQty,
		"available siempre debe rederivarse como on_hand - reservado")
	assert.Len(t, store.ledger, 1)
}

func TestAppendMovement_DeltaCeroRechazado(t *testing.T) {
	_, uc := newLedgerFixture()

	in := receiveInput(0, "loc-A")
	_, err := uc.AppendMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero no es un movimiento")
}

func TestAppendMovement_PositivoExigeSoloDestino(t *testing.T) {
	_, uc := newLedgerFixture()

	sinDestino := receiveInput(5, "loc-A")
	sinDestino.ToLocationID = nil
	_, err := uc.AppendMovement(context.Background(), sinDestino)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	conAmbas := receiveInput(5, "loc-A")
	conAmbas.FromLocationID = strPtr("loc-B")
	_, err = uc.AppendMovement(context.Background(), conAmbas)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un ingreso no puede llevar ubicación de origen")
}

func TestAppendMovement_ExistenciaInsuficiente(t *testing.T) {
	store, uc := newLedgerFixture()
	store.seedBalance("prod-1", nil, "loc-A", 3, 0, nil, entity.ZoneStorage, "A-01")

	out := inventory.AppendInput{
		TenantID:       1,
		ClientID:       "client-1",
		WarehouseID:    "wh-1",
		ProductID:      "prod-1",
		FromLocationID: strPtr("loc-A"),
		QtyDelta:       -5,
		EventType:      entity.EventDispatch,
		ReferenceType:  "OUTBOUND",
		ReferenceID:    "OUT-001",
	}
	_, err := uc.AppendMovement(context.Background(), out)
	require.ErrorIs(t, err, domain.ErrInsufficientOnHand)

	bal := store.balance("prod-1", nil, "loc-A")
	assert.Equal(t, int64(3), bal.OnHandQty, "el rechazo no debe tocar el balance")
	assert.Empty(t, store.ledger, "el rechazo no debe dejar asiento en el libro")
}

func TestAppendMovement_NoBajaDeLoReservado(t *testing.T) {
	store, uc := newLedgerFixture()
	// 10 físicas, 6 reservadas: solo 4 pueden salir.
	store.seedBalance("prod-1", nil, "loc-A", 10, 6, nil, entity.ZoneStorage, "A-01")

	out := inventory.AppendInput{
		TenantID:       1,
		ClientID:       "client-1",
		WarehouseID:    "wh-1",
		ProductID:      "prod-1",
		FromLocationID: strPtr("loc-A"),
		QtyDelta:       -5,
		EventType:      entity.EventTransfer,
		ReferenceType:  "TRANSFER",
		ReferenceID:    "TR-001",
	}
	_, err := uc.AppendMovement(context.Background(), out)
	require.ErrorIs(t, err, domain.ErrBelowReserved,
		"sacar 5 dejaría on_hand=5 < reservado=6")

	out.QtyDelta = -4
	_, err = uc.AppendMovement(context.Background(), out)
	require.NoError(t, err, "sacar exactamente hasta el techo reservado es válido")

	bal := store.balance("prod-1", nil, "loc-A")
	assert.Equal(t, int64(6), bal.OnHandQty)
	assert.Equal(t, int64(0), bal.AvailableQty)
}

func TestMove_DebitoYCreditoEnUnaTransaccion(t *testing.T) {
	store, uc := newLedgerFixture()
	store.seedBalance("prod-1", nil, "loc-A", 10, 0, nil, entity.ZoneReceiving, "REC-01")

	err := uc.Move(context.Background(), inventory.MoveInput{
		TenantID:      1,
		ClientID:      "client-1",
		WarehouseID:   "wh-1",
		ProductID:     "prod-1",
		FromLocation:  "loc-A",
		ToLocation:    "loc-B",
		Qty:           4,
		EventType:     entity.EventPutawayMove,
		ReferenceType: "INBOUND",
		ReferenceID:   "IN-001",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), store.balance("prod-1", nil, "loc-A").OnHandQty)
	assert.Equal(t, int64(4), store.balance("prod-1", nil, "loc-B").OnHandQty)
	require.Len(t, store.ledger, 2, "un traslado son dos asientos: débito y crédito")
	assert.Equal(t, int64(-4), store.ledger[0].QtyDelta)
	assert.Equal(t, int64(4), store.ledger[1].QtyDelta)
}

func TestMove_FallaDelDebitoRevierteTodo(t *testing.T) {
	store, uc := newLedgerFixture()
	store.seedBalance("prod-1", nil, "loc-A", 2, 0, nil, entity.ZoneStorage, "A-01")

	err := uc.Move(context.Background(), inventory.MoveInput{
		TenantID:      1,
		ClientID:      "client-1",
		WarehouseID:   "wh-1",
		ProductID:     "prod-1",
		FromLocation:  "loc-A",
		ToLocation:    "loc-B",
		Qty:           5,
		EventType:     entity.EventTransfer,
		ReferenceType: "TRANSFER",
		ReferenceID:   "TR-002",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientOnHand)

	assert.Equal(t, int64(2), store.balance("prod-1", nil, "loc-A").OnHandQty)
	assert.Nil(t, store.balance("prod-1", nil, "loc-B"),
		"el crédito jamás debe escribirse si el débito falla")
	assert.Empty(t, store.ledger)
}

func TestMove_MismaUbicacionRechazada(t *testing.T) {
	_, uc := newLedgerFixture()

	err := uc.Move(context.Background(), inventory.MoveInput{
		TenantID:     1,
		ClientID:     "client-1",
		WarehouseID:  "wh-1",
		ProductID:    "prod-1",
		FromLocation: "loc-A",
		ToLocation:   "loc-A",
		Qty:          1,
		EventType:    entity.EventTransfer,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Conciliación libro vs balance ─────────────────────────────────────────────

func TestReconciliacion_SinDiferenciasTrasMovimientos(t *testing.T) {
	store, uc := newLedgerFixture()
	recUC := inventory.NewReconciliationUseCase(&memTxRunner{store})
	ctx := context.Background()

	_, err := uc.AppendMovement(ctx, receiveInput(10, "loc-A"))
	require.NoError(t, err)
	require.NoError(t, uc.Move(ctx, inventory.MoveInput{
		TenantID:      1,
		ClientID:      "client-1",
		WarehouseID:   "wh-1",
		ProductID:     "prod-1",
		FromLocation:  "loc-A",
		ToLocation:    "loc-B",
		Qty:           3,
		EventType:     entity.EventPutawayMove,
		ReferenceType: "INBOUND",
		ReferenceID:   "IN-001",
	}))

	rows, err := recUC.Report(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Zero(t, row.Diff,
			"todo balance debe coincidir con la suma de deltas del libro")
		assert.Equal(t, row.OnHandQty, row.LedgerSum)
	}
}

func TestReconciliacion_DetectaBalanceCorrupto(t *testing.T) {
	store, uc := newLedgerFixture()
	recUC := inventory.NewReconciliationUseCase(&memTxRunner{store})
	ctx := context.Background()

	_, err := uc.AppendMovement(ctx, receiveInput(10, "loc-A"))
	require.NoError(t, err)

	// Corrupción simulada: alguien tocó el balance sin pasar por el libro.
	store.balance("prod-1", nil, "loc-A").OnHandQty = 12

	rows, err := recUC.Report(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(12), rows[0].OnHandQty)
	assert.Equal(t, int64(10), rows[0].LedgerSum)
	assert.Equal(t, int64(2), rows[0].Diff)
}
