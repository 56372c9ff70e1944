package inventory

import (
	"testing"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedLinea(t *testing.T, db *gorm.DB, cantidad int) *models.Inventario {
	t.Helper()
	repuesto := models.Repuesto{ProveedorID: 1, Nombre: "Pastillas de freno", Codigo: "PF-100"}
	require.NoError(t, db.Create(&repuesto).Error)

	linea := models.Inventario{RepuestoID: repuesto.ID, Cantidad: cantidad, PrecioUnitario: 25.00}
	require.NoError(t, db.Create(&linea).Error)
	return &linea
}

func seedSolicitud(t *testing.T, db *gorm.DB, inventarioID uint, cantidad int) *models.SolicitudRepuesto {
	t.Helper()
	solicitud := models.SolicitudRepuesto{
		AsignacionID: 1,
		InventarioID: inventarioID,
		Cantidad:     cantidad,
		Estado:       models.SolicitudPendiente,
	}
	require.NoError(t, db.Create(&solicitud).Error)
	return &solicitud
}

func TestApproveDescuentaStockExacto(t *testing.T) {
	db := database.OpenTest(t)
	linea := seedLinea(t, db, 10)
	solicitud := seedSolicitud(t, db, linea.ID, 4)

	actual, err := ApproveUsageRequest(db, solicitud.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, models.SolicitudAprobada, actual.Estado)
	require.NotNil(t, actual.AprobadoPor)
	assert.EqualValues(t, 7, *actual.AprobadoPor)

	var inventario models.Inventario
	require.NoError(t, db.First(&inventario, linea.ID).Error)
	assert.Equal(t, 6, inventario.Cantidad)
}

func TestApproveRechazaStockInsuficiente(t *testing.T) {
	db := database.OpenTest(t)
	linea := seedLinea(t, db, 3)
	solicitud := seedSolicitud(t, db, linea.ID, 4)

	_, err := ApproveUsageRequest(db, solicitud.ID, 7)
	assert.ErrorIs(t, err, ErrStockInsuficiente)

	// nada cambió: ni stock ni estado de la solicitud
	var inventario models.Inventario
	require.NoError(t, db.First(&inventario, linea.ID).Error)
	assert.Equal(t, 3, inventario.Cantidad)

	var actual models.SolicitudRepuesto
	require.NoError(t, db.First(&actual, solicitud.ID).Error)
	assert.Equal(t, models.SolicitudPendiente, actual.Estado)
}

func TestApproveConsumeStockHastaCero(t *testing.T) {
	db := database.OpenTest(t)
	linea := seedLinea(t, db, 4)
	solicitud := seedSolicitud(t, db, linea.ID, 4)

	_, err := ApproveUsageRequest(db, solicitud.ID, 7)
	require.NoError(t, err)

	var inventario models.Inventario
	require.NoError(t, db.First(&inventario, linea.ID).Error)
	assert.Equal(t, 0, inventario.Cantidad)
}

func TestApproveSoloUnaVez(t *testing.T) {
	db := database.OpenTest(t)
	linea := seedLinea(t, db, 10)
	solicitud := seedSolicitud(t, db, linea.ID, 2)

	_, err := ApproveUsageRequest(db, solicitud.ID, 7)
	require.NoError(t, err)

	_, err = ApproveUsageRequest(db, solicitud.ID, 7)
	assert.ErrorIs(t, err, ErrSolicitudResuelta)

	// el segundo intento no vuelve a descontar
	var inventario models.Inventario
	require.NoError(t, db.First(&inventario, linea.ID).Error)
	assert.Equal(t, 8, inventario.Cantidad)
}

func TestRejectNoTocaStock(t *testing.T) {
	db := database.OpenTest(t)
	linea := seedLinea(t, db, 10)
	solicitud := seedSolicitud(t, db, linea.ID, 4)

	actual, err := RejectUsageRequest(db, solicitud.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.SolicitudRechazada, actual.Estado)

	var inventario models.Inventario
	require.NoError(t, db.First(&inventario, linea.ID).Error)
	assert.Equal(t, 10, inventario.Cantidad)

	_, err = ApproveUsageRequest(db, solicitud.ID, 7)
	assert.ErrorIs(t, err, ErrSolicitudResuelta)
}

func TestMarkUsedExigeAprobacion(t *testing.T) {
	db := database.OpenTest(t)
	linea := seedLinea(t, db, 10)
	solicitud := seedSolicitud(t, db, linea.ID, 2)

	_, err := MarkUsed(db, solicitud.ID)
	assert.ErrorIs(t, err, ErrSolicitudNoAprobada)

	_, err = ApproveUsageRequest(db, solicitud.ID, 7)
	require.NoError(t, err)

	actual, err := MarkUsed(db, solicitud.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SolicitudUsada, actual.Estado)
}
