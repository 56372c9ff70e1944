package reports

import (
	"fmt"
	"time"

	"taller-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// BuildWorkbook arma el libro con una hoja por reporte.
func BuildWorkbook(db *gorm.DB, anio, umbral int) (*excelize.File, error) {
	f := excelize.NewFile()

	ingresos, err := IngresosMensuales(db, anio)
	if err != nil {
		return nil, err
	}
	hoja := "Ingresos"
	f.SetSheetName("Sheet1", hoja)
	f.SetSheetRow(hoja, "A1", &[]any{"Mes", "Pagos", "Monto"})
	for i, fila := range ingresos {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(hoja, cell, &[]any{fila.Mes, fila.Pagos, fila.Monto})
	}

	top, err := MantenimientosTop(db, 0)
	if err != nil {
		return nil, err
	}
	hoja = "Mantenimientos"
	f.NewSheet(hoja)
	f.SetSheetRow(hoja, "A1", &[]any{"Tipo", "Trabajos", "Ingresos"})
	for i, fila := range top {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(hoja, cell, &[]any{fila.Nombre, fila.Trabajos, fila.Ingresos})
	}

	carga, err := CargaMecanicos(db)
	if err != nil {
		return nil, err
	}
	hoja = "Carga"
	f.NewSheet(hoja)
	f.SetSheetRow(hoja, "A1", &[]any{"Empleado", "Abiertas", "En progreso"})
	for i, fila := range carga {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(hoja, cell, &[]any{fila.Nombre, fila.Abiertas, fila.EnProgreso})
	}

	stock, err := StockBajo(db, umbral)
	if err != nil {
		return nil, err
	}
	hoja = "StockBajo"
	f.NewSheet(hoja)
	f.SetSheetRow(hoja, "A1", &[]any{"Repuesto", "Cantidad", "Precio unitario"})
	for i, fila := range stock {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(hoja, cell, &[]any{fila.Repuesto, fila.Cantidad, fila.PrecioUnitario})
	}

	return f, nil
}

// GET /api/reportes/export?anio=2026&umbral=10
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := BuildWorkbook(database.DB, c.QueryInt("anio", 0), c.QueryInt("umbral", 10))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el archivo")
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo escribir el archivo")
		}

		nombre := "reportes_" + time.Now().Format("20060102") + ".xlsx"
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
		return c.Send(buf.Bytes())
	}
}
