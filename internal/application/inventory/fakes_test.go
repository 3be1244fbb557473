package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria del motor: un memStore compartido por los cuatro
// repos y un memTxRunner que imita la semántica transaccional real
// (snapshot al entrar, restauración completa si fn retorna error). Así
// los tests de rollback ejercitan el mismo contrato que PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type balMeta struct {
	expiry *time.Time
	zone   string
	code   string
}

type memStore struct {
	balances     map[string]*entity.Balance
	meta         map[string]balMeta
	ledger       []*entity.LedgerEntry
	reservations map[string]*entity.Reservation
	tasks        map[string]*entity.PickingTask
	lines        map[int64]*entity.PickingTaskLine
	nextLineID   int64
}

func newMemStore() *memStore {
	return &memStore{
		balances:     make(map[string]*entity.Balance),
		meta:         make(map[string]balMeta),
		reservations: make(map[string]*entity.Reservation),
		tasks:        make(map[string]*entity.PickingTask),
		lines:        make(map[int64]*entity.PickingTaskLine),
		nextLineID:   1,
	}
}

func balKey(productID string, batchID *string, locationID string) string {
	b := ""
	if batchID != nil {
		b = *batchID
	}
	return productID + "|" + b + "|" + locationID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.balances {
		cp := *v
		c.balances[k] = &cp
	}
	for k, v := range s.meta {
		c.meta[k] = v
	}
	c.ledger = append([]*entity.LedgerEntry(nil), s.ledger...)
	for k, v := range s.reservations {
		cp := *v
		c.reservations[k] = &cp
	}
	for k, v := range s.tasks {
		cp := *v
		c.tasks[k] = &cp
	}
	for k, v := range s.lines {
		cp := *v
		c.lines[k] = &cp
	}
	c.nextLineID = s.nextLineID
	return c
}

// seedBalance siembra un balance con su metadato FEFO (vencimiento,
// zona y código de ubicación).
func (s *memStore) seedBalance(productID string, batchID *string, locationID string, onHand, reserved int64, expiry *time.Time, zone, code string) *entity.Balance {
	b := &entity.Balance{
		ID:          "bal-" + balKey(productID, batchID, locationID),
		TenantID:    1,
		ClientID:    "client-1",
		WarehouseID: "wh-1",
		ProductID:   productID,
		BatchID:     batchID,
		LocationID:  locationID,
		OnHandQty:   onHand,
		ReservedQty: reserved,
		UpdatedAt:   time.Now(),
	}
	b.RecalcAvailable()
	s.balances[balKey(productID, batchID, locationID)] = b
	s.meta[balKey(productID, batchID, locationID)] = balMeta{expiry: expiry, zone: zone, code: code}
	return b
}

func (s *memStore) balance(productID string, batchID *string, locationID string) *entity.Balance {
	return s.balances[balKey(productID, batchID, locationID)]
}

// ── Repos ─────────────────────────────────────────────────────────────────────

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Create(entry *entity.LedgerEntry) error {
	cp := *entry
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *memLedgerRepo) ListByProduct(tenantID int64, productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.TenantID == tenantID && e.ProductID == productID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLedgerRepo) SumDeltasByKey(tenantID int64) ([]repository.LedgerKeySum, error) {
	sums := make(map[string]*repository.LedgerKeySum)
	for _, e := range r.s.ledger {
		if e.TenantID != tenantID {
			continue
		}
		loc := ""
		if e.ToLocationID != nil {
			loc = *e.ToLocationID
		} else if e.FromLocationID != nil {
			loc = *e.FromLocationID
		}
		k := balKey(e.ProductID, e.BatchID, loc)
		if _, ok := sums[k]; !ok {
			sums[k] = &repository.LedgerKeySum{ProductID: e.ProductID, BatchID: e.BatchID, LocationID: loc}
		}
		sums[k].Total += e.QtyDelta
	}
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]repository.LedgerKeySum, 0, len(sums))
	for _, k := range keys {
		out = append(out, *sums[k])
	}
	return out, nil
}

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) GetOrCreateForUpdate(key repository.BalanceKey, clientID, warehouseID string) (*entity.Balance, error) {
	k := balKey(key.ProductID, key.BatchID, key.LocationID)
	if b, ok := r.s.balances[k]; ok {
		cp := *b
		return &cp, nil
	}
	b := &entity.Balance{
		ID:          "bal-" + k,
		TenantID:    key.TenantID,
		ClientID:    clientID,
		WarehouseID: warehouseID,
		ProductID:   key.ProductID,
		BatchID:     key.BatchID,
		LocationID:  key.LocationID,
		UpdatedAt:   time.Now(),
	}
	r.s.balances[k] = b
	cp := *b
	return &cp, nil
}

func (r *memBalanceRepo) Update(b *entity.Balance) error {
	cp := *b
	cp.UpdatedAt = time.Now()
	r.s.balances[balKey(b.ProductID, b.BatchID, b.LocationID)] = &cp
	return nil
}

func (r *memBalanceRepo) ListCandidatesForUpdate(tenantID int64, clientID, warehouseID, productID string) ([]*repository.AllocationCandidate, error) {
	var out []*repository.AllocationCandidate
	for k, b := range r.s.balances {
		if b.TenantID != tenantID || b.ClientID != clientID || b.WarehouseID != warehouseID || b.ProductID != productID {
			continue
		}
		if b.AvailableQty <= 0 {
			continue
		}
		m := r.s.meta[k]
		if m.zone == entity.ZoneStaging {
			continue
		}
		cp := *b
		out = append(out, &repository.AllocationCandidate{
			Balance:      cp,
			ExpiryDate:   m.expiry,
			ZoneType:     m.zone,
			LocationCode: m.code,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate != nil:
			return false
		case a.ExpiryDate != nil && b.ExpiryDate == nil:
			return true
		case a.ExpiryDate != nil && b.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
		return a.Balance.UpdatedAt.Before(b.Balance.UpdatedAt)
	})
	return out, nil
}

func (r *memBalanceRepo) ListByClient(tenantID int64, clientID string, limit, offset int) ([]*entity.Balance, error) {
	keys := make([]string, 0, len(r.s.balances))
	for k := range r.s.balances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []*entity.Balance
	for _, k := range keys {
		b := r.s.balances[k]
		if b.TenantID != tenantID {
			continue
		}
		if clientID != "" && b.ClientID != clientID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memBalanceRepo) ListStorageOccupancy() ([]repository.StorageOccupancy, error) {
	type key struct{ client, wh string }
	locs := make(map[key]map[string]bool)
	for _, b := range r.s.balances {
		if b.OnHandQty <= 0 {
			continue
		}
		k := key{b.ClientID, b.WarehouseID}
		if locs[k] == nil {
			locs[k] = make(map[string]bool)
		}
		locs[k][b.LocationID] = true
	}
	var out []repository.StorageOccupancy
	for k, set := range locs {
		out = append(out, repository.StorageOccupancy{ClientID: k.client, WarehouseID: k.wh, Locations: int64(len(set))})
	}
	return out, nil
}

type memReservationRepo struct{ s *memStore }

func (r *memReservationRepo) GetForOrderKey(outboundID, productID string, batchID *string, locationID string) (*entity.Reservation, error) {
	for _, res := range r.s.reservations {
		if res.OutboundID == outboundID && res.ProductID == productID && res.LocationID == locationID && strPtrEq(res.BatchID, batchID) {
			cp := *res
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReservationRepo) GetByIDForUpdate(id string) (*entity.Reservation, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *memReservationRepo) Create(res *entity.Reservation) error {
	cp := *res
	r.s.reservations[res.ID] = &cp
	return nil
}

func (r *memReservationRepo) UpdateQty(id string, qty int64) error {
	r.s.reservations[id].QtyReserved = qty
	return nil
}

func (r *memReservationRepo) Delete(id string) error {
	delete(r.s.reservations, id)
	return nil
}

func (r *memReservationRepo) ListByOutbound(outboundID string) ([]*repository.ReservationDetail, error) {
	ids := make([]string, 0, len(r.s.reservations))
	for id, res := range r.s.reservations {
		if res.OutboundID == outboundID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	var out []*repository.ReservationDetail
	for _, id := range ids {
		res := r.s.reservations[id]
		m := r.s.meta[balKey(res.ProductID, res.BatchID, res.LocationID)]
		cp := *res
		out = append(out, &repository.ReservationDetail{
			Reservation:  cp,
			ExpiryDate:   m.expiry,
			ZoneType:     m.zone,
			LocationCode: m.code,
		})
	}
	return out, nil
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type memPickingRepo struct{ s *memStore }

func (r *memPickingRepo) GetTask(id string) (*entity.PickingTask, error) {
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memPickingRepo) GetTaskByOutbound(outboundID string) (*entity.PickingTask, error) {
	for _, t := range r.s.tasks {
		if t.OutboundID == outboundID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPickingRepo) CreateTask(t *entity.PickingTask) error {
	cp := *t
	r.s.tasks[t.ID] = &cp
	return nil
}

func (r *memPickingRepo) CreateLine(l *entity.PickingTaskLine) error {
	l.ID = r.s.nextLineID
	r.s.nextLineID++
	cp := *l
	r.s.lines[l.ID] = &cp
	return nil
}

func (r *memPickingRepo) ListLines(taskID string) ([]*entity.PickingTaskLine, error) {
	ids := make([]int64, 0, len(r.s.lines))
	for id, l := range r.s.lines {
		if l.PickingTaskID == taskID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []*entity.PickingTaskLine
	for _, id := range ids {
		cp := *r.s.lines[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPickingRepo) UpdateTaskStatus(id, status string, assignedTo *string, completedAt *time.Time) error {
	t := r.s.tasks[id]
	t.Status = status
	t.AssignedUserID = assignedTo
	t.CompletedAt = completedAt
	return nil
}

func (r *memPickingRepo) AddPicked(lineID int64, qty int64) error {
	r.s.lines[lineID].QtyPicked += qty
	return nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

var _ inventory.TxRunner = (*memTxRunner)(nil)

// Run imita la transacción: snapshot del estado antes de fn y
// restauración completa si fn retorna error.
func (tr *memTxRunner) Run(_ context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	balanceRepo repository.BalanceRepository,
	resRepo repository.ReservationRepository,
	pickRepo repository.PickingRepository,
) error) error {
	snap := tr.s.clone()
	err := fn(&memLedgerRepo{tr.s}, &memBalanceRepo{tr.s}, &memReservationRepo{tr.s}, &memPickingRepo{tr.s})
	if err != nil {
		*tr.s = *snap
	}
	return err
}

func strPtr(s string) *string { return &s }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
