package billing

import (
	"testing"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// crea un registro COMPLETADO con asignaciones completadas por los precios dados
func seedRegistroCompletado(t *testing.T, db *gorm.DB, precios ...float64) uint {
	t.Helper()

	registro := models.RegistroServicio{
		VehiculoID:          1,
		DescripcionProblema: "Ruido en el motor",
		Estado:              models.ServicioCompletado,
		FechaIngreso:        time.Now(),
	}
	require.NoError(t, db.Create(&registro).Error)

	fin := time.Now()
	for _, precio := range precios {
		asignacion := models.AsignacionTrabajo{
			RegistroID:          registro.ID,
			TipoMantenimientoID: 1,
			EmpleadoID:          1,
			AdminID:             1,
			Estado:              models.AsignacionCompletada,
			Precio:              precio,
			FechaFinalizacion:   &fin,
		}
		require.NoError(t, db.Create(&asignacion).Error)
	}
	return registro.ID
}

func TestGenerateInvoiceTotals(t *testing.T) {
	db := database.OpenTest(t)
	registroID := seedRegistroCompletado(t, db, 60.00, 40.00)

	factura, err := GenerateInvoice(db, registroID, 0.12, 0.05, 30)
	require.NoError(t, err)

	assert.Equal(t, 100.00, factura.Subtotal)
	assert.Equal(t, 5.00, factura.Descuento)
	assert.Equal(t, 12.00, factura.Impuesto)
	assert.Equal(t, 107.00, factura.Total)
	assert.Equal(t, models.FacturaActiva, factura.Estado)
	assert.Equal(t, models.PagoPendiente, factura.EstadoPago)
	assert.Contains(t, factura.NumeroFactura, "FAC-")
}

func TestGenerateInvoiceIgnoresAsignacionesNoCompletadas(t *testing.T) {
	db := database.OpenTest(t)
	registroID := seedRegistroCompletado(t, db, 200.00, 150.00)

	// una asignación cancelada no entra al subtotal
	cancelada := models.AsignacionTrabajo{
		RegistroID:          registroID,
		TipoMantenimientoID: 1,
		EmpleadoID:          1,
		AdminID:             1,
		Estado:              models.AsignacionCancelada,
		Precio:              999.00,
	}
	require.NoError(t, db.Create(&cancelada).Error)

	factura, err := GenerateInvoice(db, registroID, 0.12, 0, 30)
	require.NoError(t, err)

	assert.Equal(t, 350.00, factura.Subtotal)
	assert.Equal(t, 392.00, factura.Total)
}

func TestGenerateInvoiceRejectsRegistroAbierto(t *testing.T) {
	db := database.OpenTest(t)

	registro := models.RegistroServicio{
		VehiculoID:          1,
		DescripcionProblema: "Frenos",
		Estado:              models.ServicioEnProgreso,
		FechaIngreso:        time.Now(),
	}
	require.NoError(t, db.Create(&registro).Error)

	_, err := GenerateInvoice(db, registro.ID, 0.12, 0, 30)
	assert.ErrorIs(t, err, ErrRegistroNoCompletado)
}

func TestGenerateInvoiceRejectsDuplicado(t *testing.T) {
	db := database.OpenTest(t)
	registroID := seedRegistroCompletado(t, db, 80.00)

	_, err := GenerateInvoice(db, registroID, 0.12, 0, 30)
	require.NoError(t, err)

	_, err = GenerateInvoice(db, registroID, 0.12, 0, 30)
	assert.ErrorIs(t, err, ErrRegistroYaFacturado)
}

func TestRegisterPaymentProgression(t *testing.T) {
	db := database.OpenTest(t)
	registroID := seedRegistroCompletado(t, db, 60.00, 40.00)

	factura, err := GenerateInvoice(db, registroID, 0.12, 0.05, 30)
	require.NoError(t, err)
	require.Equal(t, 107.00, factura.Total)

	_, err = RegisterPayment(db, factura.ID, 50.00, models.MetodoEfectivo, "")
	require.NoError(t, err)

	var actual models.Factura
	require.NoError(t, db.First(&actual, factura.ID).Error)
	assert.Equal(t, models.PagoParcial, actual.EstadoPago)

	saldo, err := InvoiceBalance(db, factura.ID)
	require.NoError(t, err)
	assert.Equal(t, 57.00, saldo)

	_, err = RegisterPayment(db, factura.ID, 57.00, models.MetodoTarjeta, "VISA-0441")
	require.NoError(t, err)

	require.NoError(t, db.First(&actual, factura.ID).Error)
	assert.Equal(t, models.PagoCompleto, actual.EstadoPago)

	saldo, err = InvoiceBalance(db, factura.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.00, saldo)
}

func TestRegisterPaymentRejectsSobrepago(t *testing.T) {
	db := database.OpenTest(t)
	registroID := seedRegistroCompletado(t, db, 100.00)

	factura, err := GenerateInvoice(db, registroID, 0, 0, 30)
	require.NoError(t, err)

	_, err = RegisterPayment(db, factura.ID, 100.01, models.MetodoEfectivo, "")
	assert.ErrorIs(t, err, ErrPagoExcedeSaldo)

	// el rechazo no deja pago ni cambia el estado
	var count int64
	db.Model(&models.Pago{}).Where("factura_id = ?", factura.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	var actual models.Factura
	require.NoError(t, db.First(&actual, factura.ID).Error)
	assert.Equal(t, models.PagoPendiente, actual.EstadoPago)
}

func TestRefreshOverdue(t *testing.T) {
	db := database.OpenTest(t)
	registroID := seedRegistroCompletado(t, db, 100.00)

	factura, err := GenerateInvoice(db, registroID, 0, 0, 30)
	require.NoError(t, err)

	// vencida hace una semana
	require.NoError(t, db.Model(&models.Factura{}).Where("id = ?", factura.ID).
		Update("fecha_vencimiento", time.Now().AddDate(0, 0, -7)).Error)

	var pendientes []models.Factura
	require.NoError(t, db.Find(&pendientes).Error)
	refreshed := RefreshOverdue(db, pendientes)
	assert.Equal(t, models.FacturaVencida, refreshed[0].Estado)

	var actual models.Factura
	require.NoError(t, db.First(&actual, factura.ID).Error)
	assert.Equal(t, models.FacturaVencida, actual.Estado)
}

func TestRefreshOverdueSkipsPagadas(t *testing.T) {
	db := database.OpenTest(t)
	registroID := seedRegistroCompletado(t, db, 100.00)

	factura, err := GenerateInvoice(db, registroID, 0, 0, 30)
	require.NoError(t, err)

	_, err = RegisterPayment(db, factura.ID, 100.00, models.MetodoTransferencia, "TRF-9")
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Factura{}).Where("id = ?", factura.ID).
		Update("fecha_vencimiento", time.Now().AddDate(0, 0, -7)).Error)

	var facturas []models.Factura
	require.NoError(t, db.Find(&facturas).Error)
	refreshed := RefreshOverdue(db, facturas)
	assert.Equal(t, models.FacturaActiva, refreshed[0].Estado)
}
