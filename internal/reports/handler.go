package reports

import (
	"taller-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reportes/ingresos-mensuales?anio=2026
func IngresosMensualesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := IngresosMensuales(database.DB, c.QueryInt("anio", 0))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte de ingresos")
		}
		return c.JSON(filas)
	}
}

// GET /api/reportes/mantenimientos-top?limite=10
func MantenimientosTopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := MantenimientosTop(database.DB, c.QueryInt("limite", 10))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte de mantenimientos")
		}
		return c.JSON(filas)
	}
}

// GET /api/reportes/carga-mecanicos
func CargaMecanicosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := CargaMecanicos(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte de carga")
		}
		return c.JSON(filas)
	}
}

// GET /api/reportes/stock-bajo?umbral=10
func StockBajoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := StockBajo(database.DB, c.QueryInt("umbral", 10))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte de stock")
		}
		return c.JSON(filas)
	}
}
