// Package excel exporta reportes de inventario a XLSX.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
)

// BuildReconciliationReport arma el XLSX del reporte de conciliación:
// una fila por clave de balance con el saldo materializado, la suma del
// libro y su diferencia. Las filas con diferencia ≠ 0 se marcan en rojo.
func BuildReconciliationReport(rows []dto.ReconciliationRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Conciliación"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Producto", "Lote", "Ubicación", "On hand", "Suma libro", "Diferencia"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("excel: cabecera: %w", err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	}

	diffStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "CC0000"},
	})

	for i, r := range rows {
		rowNum := i + 2
		batch := ""
		if r.BatchID != nil {
			batch = *r.BatchID
		}
		values := []any{r.ProductID, batch, r.LocationID, r.OnHandQty, r.LedgerSum, r.Diff}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", rowNum, err)
			}
		}
		if r.Diff != 0 {
			start, _ := excelize.CoordinatesToCellName(1, rowNum)
			end, _ := excelize.CoordinatesToCellName(len(values), rowNum)
			_ = f.SetCellStyle(sheet, start, end, diffStyle)
		}
	}

	_ = f.SetColWidth(sheet, "A", "C", 38)
	_ = f.SetColWidth(sheet, "D", "F", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
