package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// Adaptadores del catálogo maestro: clientes, bodegas, ubicaciones,
// productos y lotes. CRUD plano, sin bloqueos: el catálogo no participa
// en las transacciones del motor.

var _ repository.ClientRepository = (*ClientRepo)(nil)
var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)
var _ repository.LocationRepository = (*LocationRepo)(nil)
var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.BatchRepository = (*BatchRepo)(nil)

// ── Clients ──────────────────────────────────────────────────────────

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo { return &ClientRepo{q: q} }

// Create inserta un cliente. ErrDuplicate si el nombre ya existe en el tenant.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (id, tenant_id, name, billing_currency, vat_rate, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TenantID, c.Name, c.BillingCurrency, c.VATRate, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente; nil si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `
		SELECT id, tenant_id, name, billing_currency, vat_rate, created_at
		FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.BillingCurrency, &c.VATRate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List devuelve los clientes del tenant.
func (r *ClientRepo) List(tenantID int64, limit, offset int) ([]*entity.Client, error) {
	query := `
		SELECT id, tenant_id, name, billing_currency, vat_rate, created_at
		FROM clients WHERE tenant_id = $1
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.BillingCurrency, &c.VATRate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ── Warehouses ───────────────────────────────────────────────────────

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo { return &WarehouseRepo{q: q} }

// Create inserta una bodega. ErrDuplicate si el código ya existe en el tenant.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, tenant_id, code, name, created_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err := r.q.Exec(context.Background(), query, w.ID, w.TenantID, w.Code, w.Name, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega; nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT id, tenant_id, code, name, created_at FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.TenantID, &w.Code, &w.Name, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// List devuelve las bodegas del tenant.
func (r *WarehouseRepo) List(tenantID int64, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, tenant_id, code, name, created_at
		FROM warehouses WHERE tenant_id = $1
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.TenantID, &w.Code, &w.Name, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// ── Locations ────────────────────────────────────────────────────────

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo { return &LocationRepo{q: q} }

// Create inserta una ubicación. ErrDuplicate si el código ya existe en la bodega.
func (r *LocationRepo) Create(l *entity.Location) error {
	query := `
		INSERT INTO locations (id, warehouse_id, zone_type, code, created_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.WarehouseID, l.ZoneType, l.Code, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación; nil si no existe.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT id, warehouse_id, zone_type, code, created_at FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.WarehouseID, &l.ZoneType, &l.Code, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ListByWarehouse devuelve las ubicaciones de una bodega en orden de recorrido.
func (r *LocationRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, warehouse_id, zone_type, code, created_at
		FROM locations WHERE warehouse_id = $1
		ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.WarehouseID, &l.ZoneType, &l.Code, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// ── Products ─────────────────────────────────────────────────────────

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo { return &ProductRepo{q: q} }

// Create inserta un producto. ErrDuplicate si el SKU ya existe para el cliente.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, client_id, sku, name, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.q.Exec(context.Background(), query, p.ID, p.TenantID, p.ClientID, p.SKU, p.Name, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT id, tenant_id, client_id, sku, name, created_at FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.TenantID, &p.ClientID, &p.SKU, &p.Name, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// ListByClient devuelve los productos de un cliente.
func (r *ProductRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, tenant_id, client_id, sku, name, created_at
		FROM products WHERE client_id = $1
		ORDER BY sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.TenantID, &p.ClientID, &p.SKU, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ── Product batches ──────────────────────────────────────────────────

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo { return &BatchRepo{q: q} }

// Create inserta un lote. ErrDuplicate si el código ya existe para el producto.
func (r *BatchRepo) Create(b *entity.ProductBatch) error {
	query := `
		INSERT INTO product_batches (id, product_id, batch_code, expiry_date, created_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err := r.q.Exec(context.Background(), query, b.ID, b.ProductID, b.BatchCode, b.ExpiryDate, b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.ProductBatch, error) {
	query := `SELECT id, product_id, batch_code, expiry_date, created_at FROM product_batches WHERE id = $1`
	var b entity.ProductBatch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ProductID, &b.BatchCode, &b.ExpiryDate, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// ListByProduct devuelve los lotes de un producto, próximos a vencer primero.
func (r *BatchRepo) ListByProduct(productID string) ([]*entity.ProductBatch, error) {
	query := `
		SELECT id, product_id, batch_code, expiry_date, created_at
		FROM product_batches WHERE product_id = $1
		ORDER BY expiry_date ASC NULLS LAST`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductBatch
	for rows.Next() {
		var b entity.ProductBatch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.BatchCode, &b.ExpiryDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
