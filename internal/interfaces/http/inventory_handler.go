package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones del motor de inventario:
// asientos, traslados y saldos (protegido).
type InventoryHandler struct {
	ledgerUC *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledgerUC *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledgerUC: ledgerUC}
}

// mapEngineError traduce los errores del motor a HTTP. Las violaciones
// de invariante son 409: la petición era válida, el estado no lo permite.
func mapEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientOnHand):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_ON_HAND", Message: "existencia física insuficiente"})
	case errors.Is(err, domain.ErrBelowReserved):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BELOW_RESERVED", Message: "la existencia no puede quedar por debajo de lo reservado"})
	case errors.Is(err, domain.ErrInsufficientAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_AVAILABLE", Message: "inventario disponible insuficiente"})
	case errors.Is(err, domain.ErrReservationExceeded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESERVATION_EXCEEDED", Message: "no se puede consumir más de lo reservado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// AppendMovement registra un asiento directo (recepción, ajuste, despacho).
func (h *InventoryHandler) AppendMovement(c *fiber.Ctx) error {
	var in dto.AppendMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	userID := GetUserID(c)
	entry, err := h.ledgerUC.AppendMovement(c.Context(), inventory.AppendInput{
		TenantID:       GetTenantID(c),
		ClientID:       in.ClientID,
		WarehouseID:    in.WarehouseID,
		ProductID:      in.ProductID,
		BatchID:        in.BatchID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		QtyDelta:       in.QtyDelta,
		EventType:      in.EventType,
		ReferenceType:  in.ReferenceType,
		ReferenceID:    in.ReferenceID,
		PerformedBy:    &userID,
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryResponse(entry))
}

// Move traslada existencia entre ubicaciones (putaway, transfer).
func (h *InventoryHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	eventType := in.EventType
	if eventType == "" {
		eventType = entity.EventPutawayMove
	}
	userID := GetUserID(c)
	err := h.ledgerUC.Move(c.Context(), inventory.MoveInput{
		TenantID:      GetTenantID(c),
		ClientID:      in.ClientID,
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		BatchID:       in.BatchID,
		FromLocation:  in.FromLocationID,
		ToLocation:    in.ToLocationID,
		Qty:           in.Qty,
		EventType:     eventType,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		PerformedBy:   &userID,
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "traslado registrado"})
}

// ListLedger devuelve los asientos de un producto.
func (h *InventoryHandler) ListLedger(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es obligatorio"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	entries, err := h.ledgerUC.ListEntries(c.Context(), GetTenantID(c), productID, page.Limit, page.Offset)
	if err != nil {
		return mapEngineError(c, err)
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryResponse(e))
	}
	return c.JSON(fiber.Map{"total": len(out), "entries": out})
}

// ListBalances devuelve los saldos materializados, opcionalmente por cliente.
func (h *InventoryHandler) ListBalances(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	balances, err := h.ledgerUC.ListBalances(c.Context(), GetTenantID(c), c.Query("client_id"), page.Limit, page.Offset)
	if err != nil {
		return mapEngineError(c, err)
	}
	out := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.BalanceResponse{
			ProductID:    b.ProductID,
			BatchID:      b.BatchID,
			LocationID:   b.LocationID,
			OnHandQty:    b.OnHandQty,
			ReservedQty:  b.ReservedQty,
			AvailableQty: b.AvailableQty,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "balances": out})
}

func toLedgerEntryResponse(e *entity.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:             e.ID,
		ProductID:      e.ProductID,
		BatchID:        e.BatchID,
		FromLocationID: e.FromLocationID,
		ToLocationID:   e.ToLocationID,
		QtyDelta:       e.QtyDelta,
		EventType:      e.EventType,
		ReferenceType:  e.ReferenceType,
		ReferenceID:    e.ReferenceID,
		CreatedAt:      e.CreatedAt,
	}
}
