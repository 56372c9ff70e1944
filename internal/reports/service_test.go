package reports

import (
	"testing"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPago(t *testing.T, db *gorm.DB, facturaID uint, monto float64, fecha time.Time) {
	t.Helper()
	pago := models.Pago{FacturaID: &facturaID, Monto: monto, Metodo: models.MetodoEfectivo, FechaPago: fecha}
	require.NoError(t, db.Create(&pago).Error)
}

func TestIngresosMensualesAgrupaPorMes(t *testing.T) {
	db := database.OpenTest(t)

	enero := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	febrero := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	seedPago(t, db, 1, 50.00, enero)
	seedPago(t, db, 1, 57.00, enero)
	seedPago(t, db, 2, 100.00, febrero)

	// pago de pedido a proveedor: no cuenta como ingreso
	pedidoID := uint(1)
	egreso := models.Pago{PedidoID: &pedidoID, Monto: 999.00, Metodo: models.MetodoTransferencia, FechaPago: enero}
	require.NoError(t, db.Create(&egreso).Error)

	filas, err := IngresosMensuales(db, 2026)
	require.NoError(t, err)
	require.Len(t, filas, 2)

	assert.Equal(t, "2026-01", filas[0].Mes)
	assert.Equal(t, 2, filas[0].Pagos)
	assert.Equal(t, 107.00, filas[0].Monto)
	assert.Equal(t, "2026-02", filas[1].Mes)
	assert.Equal(t, 100.00, filas[1].Monto)
}

func TestIngresosMensualesFiltraAnio(t *testing.T) {
	db := database.OpenTest(t)

	seedPago(t, db, 1, 80.00, time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC))
	seedPago(t, db, 2, 40.00, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))

	filas, err := IngresosMensuales(db, 2026)
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "2026-01", filas[0].Mes)
}

func TestMantenimientosTopOrdenaPorTrabajos(t *testing.T) {
	db := database.OpenTest(t)

	frenos := models.TipoMantenimiento{Nombre: "Cambio de frenos", PrecioBase: 80}
	aceite := models.TipoMantenimiento{Nombre: "Cambio de aceite", PrecioBase: 30}
	require.NoError(t, db.Create(&frenos).Error)
	require.NoError(t, db.Create(&aceite).Error)

	crear := func(tipoID uint, estado models.EstadoAsignacion, precio float64) {
		a := models.AsignacionTrabajo{
			RegistroID: 1, TipoMantenimientoID: tipoID,
			EmpleadoID: 1, AdminID: 1, Estado: estado, Precio: precio,
		}
		require.NoError(t, db.Create(&a).Error)
	}

	crear(aceite.ID, models.AsignacionCompletada, 30.00)
	crear(aceite.ID, models.AsignacionCompletada, 35.00)
	crear(frenos.ID, models.AsignacionCompletada, 80.00)
	crear(frenos.ID, models.AsignacionCancelada, 80.00) // no cuenta

	filas, err := MantenimientosTop(db, 10)
	require.NoError(t, err)
	require.Len(t, filas, 2)

	assert.Equal(t, "Cambio de aceite", filas[0].Nombre)
	assert.Equal(t, 2, filas[0].Trabajos)
	assert.Equal(t, 65.00, filas[0].Ingresos)
	assert.Equal(t, "Cambio de frenos", filas[1].Nombre)
	assert.Equal(t, 1, filas[1].Trabajos)
}

func TestStockBajoRespetaUmbral(t *testing.T) {
	db := database.OpenTest(t)

	bujia := models.Repuesto{ProveedorID: 1, Nombre: "Bujía NGK", Codigo: "NGK-01"}
	filtro := models.Repuesto{ProveedorID: 1, Nombre: "Filtro de aire", Codigo: "FA-22"}
	require.NoError(t, db.Create(&bujia).Error)
	require.NoError(t, db.Create(&filtro).Error)

	require.NoError(t, db.Create(&models.Inventario{RepuestoID: bujia.ID, Cantidad: 3, PrecioUnitario: 4.50}).Error)
	require.NoError(t, db.Create(&models.Inventario{RepuestoID: filtro.ID, Cantidad: 40, PrecioUnitario: 12.00}).Error)

	filas, err := StockBajo(db, 10)
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, "Bujía NGK", filas[0].Repuesto)
	assert.Equal(t, 3, filas[0].Cantidad)
}

func TestBuildWorkbookHojas(t *testing.T) {
	db := database.OpenTest(t)
	seedPago(t, db, 1, 100.00, time.Now())

	f, err := BuildWorkbook(db, 0, 10)
	require.NoError(t, err)

	hojas := f.GetSheetList()
	assert.ElementsMatch(t, []string{"Ingresos", "Mantenimientos", "Carga", "StockBajo"}, hojas)

	mes, err := f.GetCellValue("Ingresos", "A2")
	require.NoError(t, err)
	assert.NotEmpty(t, mes)
}
