package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/excel"
)

// ReportHandler maneja reportes de control: conciliación libro vs.
// balance, en JSON o XLSX (protegido, supervisión).
type ReportHandler struct {
	reconciliationUC *inventory.ReconciliationUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reconciliationUC *inventory.ReconciliationUseCase) *ReportHandler {
	return &ReportHandler{reconciliationUC: reconciliationUC}
}

// Reconciliation devuelve el reporte de conciliación. Con ?format=xlsx
// descarga el archivo; por defecto responde JSON.
func (h *ReportHandler) Reconciliation(c *fiber.Ctx) error {
	rows, err := h.reconciliationUC.Report(c.Context(), GetTenantID(c))
	if err != nil {
		return mapEngineError(c, err)
	}

	if c.Query("format") == "xlsx" {
		fileBytes, err := excel.BuildReconciliationReport(rows)
		if err != nil {
			return mapEngineError(c, err)
		}
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="conciliacion.xlsx"`)
		return c.Send(fileBytes)
	}

	mismatches := 0
	for _, r := range rows {
		if r.Diff != 0 {
			mismatches++
		}
	}
	return c.JSON(fiber.Map{"total": len(rows), "mismatches": mismatches, "rows": rows})
}
