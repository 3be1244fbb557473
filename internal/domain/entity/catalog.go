package entity

import "time"

// Tipos de zona de bodega. Las ubicaciones STAGING no son asignables
// por el asignador de reservas (mercancía en tránsito interno).
const (
	ZoneReceiving = "RECEIVING"
	ZoneStorage   = "STORAGE"
	ZoneStaging   = "STAGING"
	ZonePacking   = "PACKING"
)

// Client cliente del operador logístico (dueño de la mercancía).
type Client struct {
	ID              string
	TenantID        int64
	Name            string
	BillingCurrency string
	VATRate         float64
	CreatedAt       time.Time
}

// Warehouse bodega física de un tenant.
type Warehouse struct {
	ID        string
	TenantID  int64
	Code      string
	Name      string
	CreatedAt time.Time
}

// Location ubicación concreta dentro de una bodega (estante/posición),
// con su tipo de zona y código de recorrido.
type Location struct {
	ID          string
	WarehouseID string
	ZoneType    string
	Code        string // orden natural del recorrido físico
	CreatedAt   time.Time
}

// Product producto de un cliente.
type Product struct {
	ID        string
	TenantID  int64
	ClientID  string
	SKU       string
	Name      string
	CreatedAt time.Time
}

// ProductBatch lote de un producto, con vencimiento opcional. El
// vencimiento dirige la política FEFO del asignador.
type ProductBatch struct {
	ID         string
	ProductID  string
	BatchCode  string
	ExpiryDate *time.Time
	CreatedAt  time.Time
}
