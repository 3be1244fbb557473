package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// Puertos del catálogo maestro. Son colaboradores del motor: aportan
// identidad validada (cliente, producto, ubicación, lote); el motor no
// los muta.

// ClientRepository clientes del operador.
type ClientRepository interface {
	Create(c *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(tenantID int64, limit, offset int) ([]*entity.Client, error)
}

// WarehouseRepository bodegas.
type WarehouseRepository interface {
	Create(w *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	List(tenantID int64, limit, offset int) ([]*entity.Warehouse, error)
}

// LocationRepository ubicaciones de bodega.
type LocationRepository interface {
	Create(l *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Location, error)
}

// ProductRepository productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.Product, error)
}

// BatchRepository lotes de producto.
type BatchRepository interface {
	Create(b *entity.ProductBatch) error
	GetByID(id string) (*entity.ProductBatch, error)
	ListByProduct(productID string) ([]*entity.ProductBatch, error)
}
