package servicio

import (
	"errors"
	"time"

	"taller-backend/internal/models"

	"gorm.io/gorm"
)

// Transiciones centralizadas del ciclo de vida. Toda mutación multi-fila corre
// dentro de una transacción; los handlers solo traducen estos errores a HTTP.
var (
	ErrTransicionInvalida = errors.New("transición de estado no permitida")
	ErrRegistroCerrado    = errors.New("el registro de servicio ya está cerrado")
	ErrAsignacionCerrada  = errors.New("la asignación ya está cerrada")
)

func esTerminal(e models.EstadoAsignacion) bool {
	return e == models.AsignacionCompletada || e == models.AsignacionCancelada
}

// StartAssignment: ASIGNADO|PAUSADO -> EN_PROGRESO. Estampa fecha_inicio la
// primera vez y mueve el registro padre a EN_PROGRESO si estaba PENDIENTE.
func StartAssignment(db *gorm.DB, asignacionID uint) (*models.AsignacionTrabajo, error) {
	var asignacion models.AsignacionTrabajo
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asignacion, asignacionID).Error; err != nil {
			return err
		}
		if asignacion.Estado != models.AsignacionAsignada && asignacion.Estado != models.AsignacionPausada {
			return ErrTransicionInvalida
		}

		asignacion.Estado = models.AsignacionEnProgreso
		if asignacion.FechaInicio == nil {
			now := time.Now()
			asignacion.FechaInicio = &now
		}
		if err := tx.Save(&asignacion).Error; err != nil {
			return err
		}

		return tx.Model(&models.RegistroServicio{}).
			Where("id = ? AND estado = ?", asignacion.RegistroID, models.ServicioPendiente).
			Update("estado", models.ServicioEnProgreso).Error
	})
	if err != nil {
		return nil, err
	}
	return &asignacion, nil
}

// PauseAssignment: EN_PROGRESO -> PAUSADO.
func PauseAssignment(db *gorm.DB, asignacionID uint) (*models.AsignacionTrabajo, error) {
	var asignacion models.AsignacionTrabajo
	if err := db.First(&asignacion, asignacionID).Error; err != nil {
		return nil, err
	}
	if asignacion.Estado != models.AsignacionEnProgreso {
		return nil, ErrTransicionInvalida
	}

	asignacion.Estado = models.AsignacionPausada
	if err := db.Save(&asignacion).Error; err != nil {
		return nil, err
	}
	return &asignacion, nil
}

// CompleteAssignment: EN_PROGRESO -> COMPLETADO. La fecha de finalización es
// obligatoria; cerrar la última asignación abierta recalcula el registro padre.
func CompleteAssignment(db *gorm.DB, asignacionID uint, fechaFin time.Time) (*models.AsignacionTrabajo, error) {
	if fechaFin.IsZero() {
		fechaFin = time.Now()
	}

	var asignacion models.AsignacionTrabajo
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asignacion, asignacionID).Error; err != nil {
			return err
		}
		if esTerminal(asignacion.Estado) {
			return ErrAsignacionCerrada
		}
		if asignacion.Estado != models.AsignacionEnProgreso {
			return ErrTransicionInvalida
		}

		asignacion.Estado = models.AsignacionCompletada
		asignacion.FechaFinalizacion = &fechaFin
		if err := tx.Save(&asignacion).Error; err != nil {
			return err
		}

		return RecomputeRecordStatus(tx, asignacion.RegistroID)
	})
	if err != nil {
		return nil, err
	}
	return &asignacion, nil
}

// CancelAssignment: cualquier estado abierto -> CANCELADO.
func CancelAssignment(db *gorm.DB, asignacionID uint) (*models.AsignacionTrabajo, error) {
	var asignacion models.AsignacionTrabajo
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&asignacion, asignacionID).Error; err != nil {
			return err
		}
		if esTerminal(asignacion.Estado) {
			return ErrAsignacionCerrada
		}

		asignacion.Estado = models.AsignacionCancelada
		if err := tx.Save(&asignacion).Error; err != nil {
			return err
		}

		return RecomputeRecordStatus(tx, asignacion.RegistroID)
	})
	if err != nil {
		return nil, err
	}
	return &asignacion, nil
}

// RecomputeRecordStatus: el registro pasa a COMPLETADO cuando todas sus
// asignaciones quedaron COMPLETADO o CANCELADO y al menos una se completó.
// Si todas fueron canceladas la decisión de cerrar el registro es del
// administrador (CancelRecord).
func RecomputeRecordStatus(tx *gorm.DB, registroID uint) error {
	var registro models.RegistroServicio
	if err := tx.First(&registro, registroID).Error; err != nil {
		return err
	}
	if registro.Estado == models.ServicioCompletado || registro.Estado == models.ServicioCancelado {
		return nil
	}

	var asignaciones []models.AsignacionTrabajo
	if err := tx.Where("registro_id = ?", registroID).Find(&asignaciones).Error; err != nil {
		return err
	}
	if len(asignaciones) == 0 {
		return nil
	}

	completadas := 0
	for _, a := range asignaciones {
		if !esTerminal(a.Estado) {
			return nil
		}
		if a.Estado == models.AsignacionCompletada {
			completadas++
		}
	}
	if completadas == 0 {
		return nil
	}

	now := time.Now()
	return tx.Model(&registro).Updates(map[string]any{
		"estado":           models.ServicioCompletado,
		"fecha_completado": now,
	}).Error
}

// CancelRecord cierra el registro y cancela en cascada sus asignaciones
// abiertas, todo en una transacción.
func CancelRecord(db *gorm.DB, registroID uint) (*models.RegistroServicio, error) {
	var registro models.RegistroServicio
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&registro, registroID).Error; err != nil {
			return err
		}
		if registro.Estado == models.ServicioCompletado || registro.Estado == models.ServicioCancelado {
			return ErrRegistroCerrado
		}

		err := tx.Model(&models.AsignacionTrabajo{}).
			Where("registro_id = ? AND estado NOT IN ?", registroID,
				[]models.EstadoAsignacion{models.AsignacionCompletada, models.AsignacionCancelada}).
			Update("estado", models.AsignacionCancelada).Error
		if err != nil {
			return err
		}

		registro.Estado = models.ServicioCancelado
		return tx.Save(&registro).Error
	})
	if err != nil {
		return nil, err
	}
	return &registro, nil
}
