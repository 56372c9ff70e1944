package servicio

import (
	"testing"
	"time"

	"taller-backend/internal/database"
	"taller-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRegistro(t *testing.T, db *gorm.DB) *models.RegistroServicio {
	t.Helper()
	registro := models.RegistroServicio{
		VehiculoID:          1,
		DescripcionProblema: "No arranca en frío",
		Estado:              models.ServicioPendiente,
		FechaIngreso:        time.Now(),
	}
	require.NoError(t, db.Create(&registro).Error)
	return &registro
}

func seedAsignacion(t *testing.T, db *gorm.DB, registroID uint, estado models.EstadoAsignacion) *models.AsignacionTrabajo {
	t.Helper()
	asignacion := models.AsignacionTrabajo{
		RegistroID:          registroID,
		TipoMantenimientoID: 1,
		EmpleadoID:          1,
		AdminID:             1,
		Estado:              estado,
		Precio:              50.00,
	}
	require.NoError(t, db.Create(&asignacion).Error)
	return &asignacion
}

func TestStartAssignmentMarcaRegistroEnProgreso(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	asignacion := seedAsignacion(t, db, registro.ID, models.AsignacionAsignada)

	actual, err := StartAssignment(db, asignacion.ID)
	require.NoError(t, err)

	assert.Equal(t, models.AsignacionEnProgreso, actual.Estado)
	require.NotNil(t, actual.FechaInicio)

	var padre models.RegistroServicio
	require.NoError(t, db.First(&padre, registro.ID).Error)
	assert.Equal(t, models.ServicioEnProgreso, padre.Estado)
}

func TestStartAssignmentConservaFechaInicio(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	asignacion := seedAsignacion(t, db, registro.ID, models.AsignacionAsignada)

	primera, err := StartAssignment(db, asignacion.ID)
	require.NoError(t, err)

	_, err = PauseAssignment(db, asignacion.ID)
	require.NoError(t, err)

	segunda, err := StartAssignment(db, asignacion.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, *primera.FechaInicio, *segunda.FechaInicio, time.Second)
}

func TestPauseSoloDesdeEnProgreso(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	asignacion := seedAsignacion(t, db, registro.ID, models.AsignacionAsignada)

	_, err := PauseAssignment(db, asignacion.ID)
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}

func TestCompleteExigeEnProgreso(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	asignacion := seedAsignacion(t, db, registro.ID, models.AsignacionAsignada)

	_, err := CompleteAssignment(db, asignacion.ID, time.Now())
	assert.ErrorIs(t, err, ErrTransicionInvalida)
}

func TestCompleteEstampaFechaFinalizacion(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	asignacion := seedAsignacion(t, db, registro.ID, models.AsignacionEnProgreso)

	fin := time.Date(2026, 8, 30, 17, 0, 0, 0, time.UTC)
	actual, err := CompleteAssignment(db, asignacion.ID, fin)
	require.NoError(t, err)

	require.NotNil(t, actual.FechaFinalizacion)
	assert.True(t, actual.FechaFinalizacion.Equal(fin))
}

func TestCompleteUltimaAsignacionCierraRegistro(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	a1 := seedAsignacion(t, db, registro.ID, models.AsignacionEnProgreso)
	a2 := seedAsignacion(t, db, registro.ID, models.AsignacionEnProgreso)

	_, err := CompleteAssignment(db, a1.ID, time.Now())
	require.NoError(t, err)

	// con una asignación abierta el registro sigue abierto
	var padre models.RegistroServicio
	require.NoError(t, db.First(&padre, registro.ID).Error)
	assert.NotEqual(t, models.ServicioCompletado, padre.Estado)

	_, err = CompleteAssignment(db, a2.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, db.First(&padre, registro.ID).Error)
	assert.Equal(t, models.ServicioCompletado, padre.Estado)
	assert.NotNil(t, padre.FechaCompletado)
}

func TestTodasCanceladasNoCompletaRegistro(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	a1 := seedAsignacion(t, db, registro.ID, models.AsignacionAsignada)
	a2 := seedAsignacion(t, db, registro.ID, models.AsignacionEnProgreso)

	_, err := CancelAssignment(db, a1.ID)
	require.NoError(t, err)
	_, err = CancelAssignment(db, a2.ID)
	require.NoError(t, err)

	var padre models.RegistroServicio
	require.NoError(t, db.First(&padre, registro.ID).Error)
	assert.NotEqual(t, models.ServicioCompletado, padre.Estado)
}

func TestAsignacionCerradaNoSeReabre(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	asignacion := seedAsignacion(t, db, registro.ID, models.AsignacionEnProgreso)

	_, err := CompleteAssignment(db, asignacion.ID, time.Now())
	require.NoError(t, err)

	_, err = StartAssignment(db, asignacion.ID)
	assert.ErrorIs(t, err, ErrTransicionInvalida)

	_, err = CancelAssignment(db, asignacion.ID)
	assert.ErrorIs(t, err, ErrAsignacionCerrada)
}

func TestCancelRecordCancelaEnCascada(t *testing.T) {
	db := database.OpenTest(t)
	registro := seedRegistro(t, db)
	abierta := seedAsignacion(t, db, registro.ID, models.AsignacionEnProgreso)

	completada := seedAsignacion(t, db, registro.ID, models.AsignacionEnProgreso)
	_, err := CompleteAssignment(db, completada.ID, time.Now())
	require.NoError(t, err)

	actual, err := CancelRecord(db, registro.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ServicioCancelado, actual.Estado)

	var a1 models.AsignacionTrabajo
	require.NoError(t, db.First(&a1, abierta.ID).Error)
	assert.Equal(t, models.AsignacionCancelada, a1.Estado)

	// la completada no se toca
	var a2 models.AsignacionTrabajo
	require.NoError(t, db.First(&a2, completada.ID).Error)
	assert.Equal(t, models.AsignacionCompletada, a2.Estado)

	_, err = CancelRecord(db, registro.ID)
	assert.ErrorIs(t, err, ErrRegistroCerrado)
}
