// Package catalog gestiona los maestros: clientes, bodegas,
// ubicaciones, productos y lotes. El motor de inventario solo los lee.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// CatalogUseCase altas y consultas del catálogo maestro.
type CatalogUseCase struct {
	clientRepo    repository.ClientRepository
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
	productRepo   repository.ProductRepository
	batchRepo     repository.BatchRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	clientRepo repository.ClientRepository,
	warehouseRepo repository.WarehouseRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		clientRepo:    clientRepo,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		productRepo:   productRepo,
		batchRepo:     batchRepo,
	}
}

// CreateClient da de alta un cliente del operador.
func (uc *CatalogUseCase) CreateClient(tenantID int64, name, currency string, vatRate float64) (*entity.Client, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if currency == "" {
		currency = "COP"
	}
	c := &entity.Client{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		Name:            name,
		BillingCurrency: currency,
		VATRate:         vatRate,
		CreatedAt:       time.Now(),
	}
	return c, uc.clientRepo.Create(c)
}

// ListClients lista los clientes del tenant.
func (uc *CatalogUseCase) ListClients(tenantID int64, limit, offset int) ([]*entity.Client, error) {
	return uc.clientRepo.List(tenantID, limit, offset)
}

// CreateWarehouse da de alta una bodega.
func (uc *CatalogUseCase) CreateWarehouse(tenantID int64, code, name string) (*entity.Warehouse, error) {
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Code:      code,
		Name:      name,
		CreatedAt: time.Now(),
	}
	return w, uc.warehouseRepo.Create(w)
}

// ListWarehouses lista las bodegas del tenant.
func (uc *CatalogUseCase) ListWarehouses(tenantID int64, limit, offset int) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List(tenantID, limit, offset)
}

// CreateLocation da de alta una ubicación en una bodega existente.
func (uc *CatalogUseCase) CreateLocation(warehouseID, zoneType, code string) (*entity.Location, error) {
	if warehouseID == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	switch zoneType {
	case entity.ZoneReceiving, entity.ZoneStorage, entity.ZoneStaging, entity.ZonePacking:
	default:
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	l := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		ZoneType:    zoneType,
		Code:        code,
		CreatedAt:   time.Now(),
	}
	return l, uc.locationRepo.Create(l)
}

// ListLocations lista las ubicaciones de una bodega.
func (uc *CatalogUseCase) ListLocations(warehouseID string, limit, offset int) ([]*entity.Location, error) {
	return uc.locationRepo.ListByWarehouse(warehouseID, limit, offset)
}

// CreateProduct da de alta un producto de un cliente existente.
func (uc *CatalogUseCase) CreateProduct(tenantID int64, clientID, sku, name string) (*entity.Product, error) {
	if clientID == "" || sku == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	p := &entity.Product{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ClientID:  clientID,
		SKU:       sku,
		Name:      name,
		CreatedAt: time.Now(),
	}
	return p, uc.productRepo.Create(p)
}

// ListProducts lista los productos de un cliente.
func (uc *CatalogUseCase) ListProducts(clientID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByClient(clientID, limit, offset)
}

// CreateBatch da de alta un lote de un producto existente.
func (uc *CatalogUseCase) CreateBatch(productID, batchCode string, expiryDate *time.Time) (*entity.ProductBatch, error) {
	if productID == "" || batchCode == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	b := &entity.ProductBatch{
		ID:         uuid.New().String(),
		ProductID:  productID,
		BatchCode:  batchCode,
		ExpiryDate: expiryDate,
		CreatedAt:  time.Now(),
	}
	return b, uc.batchRepo.Create(b)
}

// ListBatches lista los lotes de un producto, próximos a vencer primero.
func (uc *CatalogUseCase) ListBatches(productID string) ([]*entity.ProductBatch, error) {
	return uc.batchRepo.ListByProduct(productID)
}
