package billing_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/billing"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de facturación. El billingStore
// replica la deduplicación por clave natural del adaptador real y el
// runner imita commit/rollback por snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type billingStore struct {
	events     []*entity.BillingEvent
	priceLists []*entity.PriceList
	invoices   map[string]*entity.Invoice
	lines      map[string][]*entity.InvoiceLine
	clients    map[string]*entity.Client
	occupancy  []repository.StorageOccupancy
}

func newBillingStore() *billingStore {
	return &billingStore{
		invoices: make(map[string]*entity.Invoice),
		lines:    make(map[string][]*entity.InvoiceLine),
		clients:  make(map[string]*entity.Client),
	}
}

func (s *billingStore) clone() *billingStore {
	c := newBillingStore()
	for _, ev := range s.events {
		cp := *ev
		c.events = append(c.events, &cp)
	}
	for _, pl := range s.priceLists {
		cp := *pl
		c.priceLists = append(c.priceLists, &cp)
	}
	for k, v := range s.invoices {
		cp := *v
		c.invoices[k] = &cp
	}
	for k, v := range s.lines {
		c.lines[k] = append([]*entity.InvoiceLine(nil), v...)
	}
	for k, v := range s.clients {
		cp := *v
		c.clients[k] = &cp
	}
	c.occupancy = append([]repository.StorageOccupancy(nil), s.occupancy...)
	return c
}

func naturalKeyEq(a, b *entity.BillingEvent) bool {
	return a.ClientID == b.ClientID &&
		a.EventType == b.EventType &&
		a.ReferenceType == b.ReferenceType &&
		a.ReferenceID == b.ReferenceID &&
		a.EventDate.Format("2006-01-02") == b.EventDate.Format("2006-01-02")
}

type memBillingEventRepo struct{ s *billingStore }

func (r *memBillingEventRepo) InsertOrFetch(ev *entity.BillingEvent) (*entity.BillingEvent, bool, error) {
	for _, existing := range r.s.events {
		if naturalKeyEq(existing, ev) {
			cp := *existing
			return &cp, false, nil
		}
	}
	cp := *ev
	r.s.events = append(r.s.events, &cp)
	out := *ev
	return &out, true, nil
}

func (r *memBillingEventRepo) ListUninvoiced(clientID string, from, to time.Time) ([]*entity.BillingEvent, error) {
	var out []*entity.BillingEvent
	for _, ev := range r.s.events {
		if ev.ClientID != clientID || ev.InvoiceID != nil {
			continue
		}
		if ev.EventDate.Before(from) || ev.EventDate.After(to) {
			continue
		}
		cp := *ev
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (r *memBillingEventRepo) LinkToInvoice(invoiceID string, eventIDs []string) error {
	ids := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		ids[id] = true
	}
	for _, ev := range r.s.events {
		if ids[ev.ID] && ev.InvoiceID == nil {
			id := invoiceID
			ev.InvoiceID = &id
		}
	}
	return nil
}

type memPriceListRepo struct{ s *billingStore }

func (r *memPriceListRepo) GetActive(clientID string, asOf time.Time) (*entity.PriceList, error) {
	var best *entity.PriceList
	for _, pl := range r.s.priceLists {
		if pl.ClientID != clientID || pl.EffectiveFrom.After(asOf) {
			continue
		}
		if best == nil || pl.EffectiveFrom.After(best.EffectiveFrom) {
			best = pl
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *memPriceListRepo) Create(pl *entity.PriceList) error {
	cp := *pl
	r.s.priceLists = append(r.s.priceLists, &cp)
	return nil
}

type memInvoiceRepo struct{ s *billingStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice, lines []*entity.InvoiceLine) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	r.s.lines[inv.ID] = append([]*entity.InvoiceLine(nil), lines...)
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) ListLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	return append([]*entity.InvoiceLine(nil), r.s.lines[invoiceID]...), nil
}

type memClientRepo struct{ s *billingStore }

func (r *memClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) List(tenantID int64, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.s.clients {
		if c.TenantID == tenantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// occupancyBalanceRepo implementa solo la lectura de ocupación que usa
// el barrido diario; el resto del puerto no aplica a estos tests.
type occupancyBalanceRepo struct{ s *billingStore }

func (r *occupancyBalanceRepo) GetOrCreateForUpdate(repository.BalanceKey, string, string) (*entity.Balance, error) {
	return nil, nil
}
func (r *occupancyBalanceRepo) Update(*entity.Balance) error { return nil }
func (r *occupancyBalanceRepo) ListCandidatesForUpdate(int64, string, string, string) ([]*repository.AllocationCandidate, error) {
	return nil, nil
}
func (r *occupancyBalanceRepo) ListByClient(int64, string, int, int) ([]*entity.Balance, error) {
	return nil, nil
}
func (r *occupancyBalanceRepo) ListStorageOccupancy() ([]repository.StorageOccupancy, error) {
	return append([]repository.StorageOccupancy(nil), r.s.occupancy...), nil
}

type memBillingTxRunner struct{ s *billingStore }

var _ billing.BillingTxRunner = (*memBillingTxRunner)(nil)

func (tr *memBillingTxRunner) RunBilling(_ context.Context, fn func(
	evRepo repository.BillingEventRepository,
	invRepo repository.InvoiceRepository,
) error) error {
	snap := tr.s.clone()
	err := fn(&memBillingEventRepo{tr.s}, &memInvoiceRepo{tr.s})
	if err != nil {
		*tr.s = *snap
	}
	return err
}
