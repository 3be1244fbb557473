package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/billing"
	"github.com/jhoicas/Bodega-api/internal/application/catalog"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	CatalogUC        *catalog.CatalogUseCase
	LedgerUC         *inventory.LedgerUseCase
	ReservationUC    *inventory.ReservationUseCase
	PickingUC        *inventory.PickingUseCase
	ReconciliationUC *inventory.ReconciliationUseCase
	UsageUC          *billing.UsageRecorder
	InvoiceUC        *billing.GenerateInvoiceUseCase
	PriceListUC      *billing.PriceListUseCase
	InvoicePDF       *billing.PDFUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	staff := []string{entity.RoleAdmin, entity.RoleSupervisor, entity.RoleOperario}
	supervision := []string{entity.RoleAdmin, entity.RoleSupervisor}

	// Catálogo maestro (protegido; altas solo supervisión)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	clients := protected.Group("/clients")
	clients.Post("/", RequireRole(supervision...), catalogHandler.CreateClient)
	clients.Get("/", catalogHandler.ListClients)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", RequireRole(supervision...), catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)

	locations := protected.Group("/locations")
	locations.Post("/", RequireRole(supervision...), catalogHandler.CreateLocation)
	locations.Get("/", catalogHandler.ListLocations)

	products := protected.Group("/products")
	products.Post("/", RequireRole(supervision...), catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)

	batches := protected.Group("/batches")
	batches.Post("/", RequireRole(supervision...), catalogHandler.CreateBatch)
	batches.Get("/", catalogHandler.ListBatches)

	// Motor de inventario (protegido, personal de bodega)
	invGroup := protected.Group("/inventory", RequireRole(staff...))
	inventoryHandler := NewInventoryHandler(deps.LedgerUC)
	invGroup.Post("/movements", inventoryHandler.AppendMovement)
	invGroup.Post("/moves", inventoryHandler.Move)
	invGroup.Get("/ledger", inventoryHandler.ListLedger)
	invGroup.Get("/balances", inventoryHandler.ListBalances)

	// Órdenes de salida: reservas y picking (protegido, personal de bodega)
	outbound := protected.Group("/outbound", RequireRole(staff...))
	outboundHandler := NewOutboundHandler(deps.ReservationUC, deps.PickingUC)
	outbound.Post("/reservations", outboundHandler.Reserve)
	outbound.Post("/:outbound_id/picking", outboundHandler.GeneratePicks)
	outbound.Get("/:outbound_id/picking", outboundHandler.GetPickList)
	outbound.Post("/pick-scans", outboundHandler.PickScan)

	picking := protected.Group("/picking", RequireRole(staff...))
	picking.Post("/:task_id/start", outboundHandler.StartTask)
	picking.Post("/:task_id/complete", outboundHandler.CompleteTask)

	// Facturación (protegido; facturar y tarifar solo supervisión)
	billingGroup := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.UsageUC, deps.InvoiceUC, deps.PriceListUC, deps.InvoicePDF)
	billingGroup.Post("/events", RequireRole(staff...), billingHandler.RecordUsage)
	billingGroup.Post("/storage-sweep", RequireRole(entity.RoleAdmin), billingHandler.RunStorageSweep)
	billingGroup.Post("/invoices", RequireRole(supervision...), billingHandler.GenerateInvoice)
	billingGroup.Get("/invoices/:id/pdf", billingHandler.GetInvoicePDF)
	billingGroup.Post("/price-lists", RequireRole(supervision...), billingHandler.CreatePriceList)

	// Reportes de control (protegido, supervisión)
	reports := protected.Group("/reports", RequireRole(supervision...))
	reportHandler := NewReportHandler(deps.ReconciliationUC)
	reports.Get("/reconciliation", reportHandler.Reconciliation)
}
