package reports

import (
	"fmt"
	"sort"

	"taller-backend/internal/models"

	"gorm.io/gorm"
)

type IngresoMensual struct {
	Mes   string  `json:"mes"` // YYYY-MM
	Pagos int     `json:"pagos"`
	Monto float64 `json:"monto"`
}

type MantenimientoTop struct {
	TipoMantenimientoID uint    `json:"tipo_mantenimiento_id"`
	Nombre              string  `json:"nombre"`
	Trabajos            int     `json:"trabajos"`
	Ingresos            float64 `json:"ingresos"`
}

type CargaMecanico struct {
	EmpleadoID uint   `json:"empleado_id"`
	Nombre     string `json:"nombre"`
	Abiertas   int    `json:"abiertas"`
	EnProgreso int    `json:"en_progreso"`
}

type LineaStockBajo struct {
	InventarioID   uint    `json:"inventario_id"`
	Repuesto       string  `json:"repuesto"`
	Cantidad       int     `json:"cantidad"`
	PrecioUnitario float64 `json:"precio_unitario"`
}

// IngresosMensuales agrupa los pagos de facturas por mes de pago. La
// agregación se hace en memoria para no depender del dialecto de fechas de la
// base.
func IngresosMensuales(db *gorm.DB, anio int) ([]IngresoMensual, error) {
	var pagos []models.Pago
	err := db.Where("factura_id IS NOT NULL").Find(&pagos).Error
	if err != nil {
		return nil, err
	}

	porMes := map[string]*IngresoMensual{}
	for _, p := range pagos {
		if anio > 0 && p.FechaPago.Year() != anio {
			continue
		}
		mes := fmt.Sprintf("%04d-%02d", p.FechaPago.Year(), int(p.FechaPago.Month()))
		fila, ok := porMes[mes]
		if !ok {
			fila = &IngresoMensual{Mes: mes}
			porMes[mes] = fila
		}
		fila.Pagos++
		fila.Monto = models.Round2(fila.Monto + p.Monto)
	}

	filas := make([]IngresoMensual, 0, len(porMes))
	for _, fila := range porMes {
		filas = append(filas, *fila)
	}
	sort.Slice(filas, func(i, j int) bool { return filas[i].Mes < filas[j].Mes })
	return filas, nil
}

// MantenimientosTop: tipos de mantenimiento ordenados por trabajos completados.
func MantenimientosTop(db *gorm.DB, limite int) ([]MantenimientoTop, error) {
	if limite <= 0 {
		limite = 10
	}

	var filas []MantenimientoTop
	err := db.Model(&models.AsignacionTrabajo{}).
		Select("asignaciones_trabajo.tipo_mantenimiento_id, tipos_mantenimiento.nombre, COUNT(*) AS trabajos, SUM(asignaciones_trabajo.precio) AS ingresos").
		Joins("JOIN tipos_mantenimiento ON tipos_mantenimiento.id = asignaciones_trabajo.tipo_mantenimiento_id").
		Where("asignaciones_trabajo.estado = ?", models.AsignacionCompletada).
		Group("asignaciones_trabajo.tipo_mantenimiento_id, tipos_mantenimiento.nombre").
		Order("trabajos DESC").
		Limit(limite).
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	for i := range filas {
		filas[i].Ingresos = models.Round2(filas[i].Ingresos)
	}
	return filas, nil
}

// CargaMecanicos: asignaciones abiertas por empleado (ASIGNADO, EN_PROGRESO o
// PAUSADO cuentan como abiertas).
func CargaMecanicos(db *gorm.DB) ([]CargaMecanico, error) {
	var filas []CargaMecanico
	err := db.Model(&models.AsignacionTrabajo{}).
		Select("asignaciones_trabajo.empleado_id, personas.nombre || ' ' || personas.apellido AS nombre, "+
			"COUNT(*) AS abiertas, "+
			"SUM(CASE WHEN asignaciones_trabajo.estado = ? THEN 1 ELSE 0 END) AS en_progreso",
			models.AsignacionEnProgreso).
		Joins("JOIN usuarios ON usuarios.id = asignaciones_trabajo.empleado_id").
		Joins("JOIN personas ON personas.id = usuarios.persona_id").
		Where("asignaciones_trabajo.estado IN ?", []models.EstadoAsignacion{
			models.AsignacionAsignada, models.AsignacionEnProgreso, models.AsignacionPausada,
		}).
		Group("asignaciones_trabajo.empleado_id, personas.nombre, personas.apellido").
		Order("abiertas DESC").
		Scan(&filas).Error
	return filas, err
}

// StockBajo: líneas de inventario en o bajo el umbral.
func StockBajo(db *gorm.DB, umbral int) ([]LineaStockBajo, error) {
	if umbral < 0 {
		umbral = 10
	}

	var filas []LineaStockBajo
	err := db.Model(&models.Inventario{}).
		Select("inventario.id AS inventario_id, repuestos.nombre AS repuesto, inventario.cantidad, inventario.precio_unitario").
		Joins("JOIN repuestos ON repuestos.id = inventario.repuesto_id").
		Where("inventario.cantidad <= ?", umbral).
		Order("inventario.cantidad ASC").
		Scan(&filas).Error
	return filas, err
}
