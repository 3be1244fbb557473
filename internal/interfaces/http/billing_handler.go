package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/billing"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// BillingHandler maneja eventos facturables, listas de precios y
// facturas (protegido).
type BillingHandler struct {
	usageUC     *billing.UsageRecorder
	invoiceUC   *billing.GenerateInvoiceUseCase
	priceListUC *billing.PriceListUseCase
	pdfUC       *billing.PDFUseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(
	usageUC *billing.UsageRecorder,
	invoiceUC *billing.GenerateInvoiceUseCase,
	priceListUC *billing.PriceListUseCase,
	pdfUC *billing.PDFUseCase,
) *BillingHandler {
	return &BillingHandler{usageUC: usageUC, invoiceUC: invoiceUC, priceListUC: priceListUC, pdfUC: pdfUC}
}

// RecordUsage registra un evento facturable (idempotente por clave natural).
func (h *BillingHandler) RecordUsage(c *fiber.Ctx) error {
	var in dto.RecordUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	eventDate := in.EventDate
	if eventDate.IsZero() {
		eventDate = time.Now()
	}
	ev, err := h.usageUC.RecordUsage(c.Context(), billing.UsageInput{
		ClientID:      in.ClientID,
		WarehouseID:   in.WarehouseID,
		EventType:     in.EventType,
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		EventDate:     eventDate,
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BillingEventResponse{
		ID:         ev.ID,
		EventType:  ev.EventType,
		Quantity:   ev.Quantity,
		UnitPrice:  ev.UnitPrice,
		TotalPrice: ev.TotalPrice,
		EventDate:  ev.EventDate,
	})
}

// RunStorageSweep dispara el barrido diario de almacenaje (solo admin).
// Relanzarlo el mismo día no duplica cobros.
func (h *BillingHandler) RunStorageSweep(c *fiber.Ctx) error {
	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date: formato esperado YYYY-MM-DD"})
		}
		date = parsed
	}
	created, err := h.usageUC.RunDailyStorage(c.Context(), date)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"events_created": created})
}

// GenerateInvoice factura los eventos pendientes del período.
func (h *BillingHandler) GenerateInvoice(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.invoiceUC.GenerateInvoice(c.Context(), in.ClientID, in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInvoiceResponse(inv))
}

// GetInvoicePDF descarga el PDF de una factura.
func (h *BillingHandler) GetInvoicePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.pdfUC.GetInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return mapEngineError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="factura-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

// CreatePriceList da de alta una lista de precios.
func (h *BillingHandler) CreatePriceList(c *fiber.Ctx) error {
	var in struct {
		ClientID      string            `json:"client_id"`
		EffectiveFrom time.Time         `json:"effective_from"`
		Rules         entity.PriceRules `json:"rules"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pl, err := h.priceListUC.Create(in.ClientID, in.EffectiveFrom, in.Rules)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": pl.ID, "effective_from": pl.EffectiveFrom})
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:          inv.ID,
		ClientID:    inv.ClientID,
		PeriodStart: inv.PeriodStart,
		PeriodEnd:   inv.PeriodEnd,
		Status:      inv.Status,
		Currency:    inv.Currency,
		Subtotal:    inv.Subtotal,
		TaxTotal:    inv.TaxTotal,
		Total:       inv.Total,
	}
}
