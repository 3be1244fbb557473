package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// OutboundHandler maneja reservas y picking de órdenes de salida (protegido).
type OutboundHandler struct {
	reservationUC *inventory.ReservationUseCase
	pickingUC     *inventory.PickingUseCase
}

// NewOutboundHandler construye el handler.
func NewOutboundHandler(reservationUC *inventory.ReservationUseCase, pickingUC *inventory.PickingUseCase) *OutboundHandler {
	return &OutboundHandler{reservationUC: reservationUC, pickingUC: pickingUC}
}

// Reserve asigna stock a una línea de orden con política FEFO.
func (h *OutboundHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	reservations, err := h.reservationUC.Reserve(c.Context(), inventory.ReserveInput{
		TenantID:    GetTenantID(c),
		OutboundID:  in.OutboundID,
		ClientID:    in.ClientID,
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Qty:         in.Qty,
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	out := make([]dto.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, dto.ReservationResponse{
			ID:          r.ID,
			OutboundID:  r.OutboundID,
			ProductID:   r.ProductID,
			BatchID:     r.BatchID,
			LocationID:  r.LocationID,
			QtyReserved: r.QtyReserved,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"total": len(out), "reservations": out})
}

// GeneratePicks crea (una sola vez) la tarea de picking de la orden.
func (h *OutboundHandler) GeneratePicks(c *fiber.Ctx) error {
	outboundID := c.Params("outbound_id")
	task, err := h.pickingUC.GeneratePicks(c.Context(), outboundID)
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task_id": task.ID, "status": task.Status})
}

// GetPickList devuelve la tarea de la orden con sus líneas en orden de recorrido.
func (h *OutboundHandler) GetPickList(c *fiber.Ctx) error {
	outboundID := c.Params("outbound_id")
	task, lines, err := h.pickingUC.GetTaskWithLines(c.Context(), outboundID)
	if err != nil {
		return mapEngineError(c, err)
	}
	out := make([]dto.PickLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.PickLineResponse{
			ProductID:      l.ProductID,
			BatchID:        l.BatchID,
			FromLocationID: l.FromLocationID,
			QtyToPick:      l.QtyToPick,
			QtyPicked:      l.QtyPicked,
		})
	}
	return c.JSON(fiber.Map{
		"task_id": task.ID,
		"status":  task.Status,
		"lines":   out,
	})
}

// PickScan registra un escaneo: consume la reserva, traslada a staging
// y avanza la línea de la tarea, todo o nada.
func (h *OutboundHandler) PickScan(c *fiber.Ctx) error {
	var in dto.PickScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	userID := GetUserID(c)
	err := h.reservationUC.ConsumeAndMove(c.Context(), inventory.PickScanInput{
		ReservationID:     in.ReservationID,
		Qty:               in.Qty,
		StagingLocationID: in.StagingLocationID,
		PickLineID:        in.PickLineID,
		PerformedBy:       &userID,
	})
	if err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"message": "escaneo registrado"})
}

// StartTask marca la tarea en progreso, asignada al operario autenticado.
func (h *OutboundHandler) StartTask(c *fiber.Ctx) error {
	if err := h.pickingUC.StartTask(c.Context(), c.Params("task_id"), GetUserID(c)); err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"status": entity.PickingStatusInProgress})
}

// CompleteTask cierra la tarea si todas sus líneas son terminales.
func (h *OutboundHandler) CompleteTask(c *fiber.Ctx) error {
	if err := h.pickingUC.CompleteTask(c.Context(), c.Params("task_id")); err != nil {
		return mapEngineError(c, err)
	}
	return c.JSON(fiber.Map{"status": entity.PickingStatusDone})
}
