package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
)

// CatalogHandler maneja los maestros: clientes, bodegas, ubicaciones,
// productos y lotes (protegido).
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, err
	}
	page.DefaultPage()
	return page, nil
}

// CreateClient da de alta un cliente.
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in struct {
		Name            string  `json:"name"`
		BillingCurrency string  `json:"billing_currency"`
		VATRate         float64 `json:"vat_rate"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.CreateClient(GetTenantID(c), in.Name, in.BillingCurrency, in.VATRate)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// ListClients lista los clientes del tenant.
func (h *CatalogHandler) ListClients(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	clients, err := h.uc.ListClients(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(clients), "clients": clients})
}

// CreateWarehouse da de alta una bodega.
func (h *CatalogHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	w, err := h.uc.CreateWarehouse(GetTenantID(c), in.Code, in.Name)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(w)
}

// ListWarehouses lista las bodegas del tenant.
func (h *CatalogHandler) ListWarehouses(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	warehouses, err := h.uc.ListWarehouses(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(warehouses), "warehouses": warehouses})
}

// CreateLocation da de alta una ubicación.
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in struct {
		WarehouseID string `json:"warehouse_id"`
		ZoneType    string `json:"zone_type"`
		Code        string `json:"code"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	l, err := h.uc.CreateLocation(in.WarehouseID, in.ZoneType, in.Code)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

// ListLocations lista las ubicaciones de una bodega.
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es obligatorio"})
	}
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	locations, err := h.uc.ListLocations(warehouseID, page.Limit, page.Offset)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(locations), "locations": locations})
}

// CreateProduct da de alta un producto de un cliente.
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in struct {
		ClientID string `json:"client_id"`
		SKU      string `json:"sku"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.CreateProduct(GetTenantID(c), in.ClientID, in.SKU, in.Name)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ListProducts lista los productos de un cliente.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	clientID := c.Query("client_id")
	if clientID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_id es obligatorio"})
	}
	page, err := parsePage(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	products, err := h.uc.ListProducts(clientID, page.Limit, page.Offset)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(products), "products": products})
}

// CreateBatch da de alta un lote de producto.
func (h *CatalogHandler) CreateBatch(c *fiber.Ctx) error {
	var in struct {
		ProductID  string     `json:"product_id"`
		BatchCode  string     `json:"batch_code"`
		ExpiryDate *time.Time `json:"expiry_date"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.CreateBatch(in.ProductID, in.BatchCode, in.ExpiryDate)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(b)
}

// ListBatches lista los lotes de un producto.
func (h *CatalogHandler) ListBatches(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es obligatorio"})
	}
	batches, err := h.uc.ListBatches(productID)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(batches), "batches": batches})
}
