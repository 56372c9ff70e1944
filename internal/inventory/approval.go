package inventory

import (
	"errors"

	"taller-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSolicitudResuelta   = errors.New("la solicitud ya fue resuelta")
	ErrStockInsuficiente   = errors.New("stock insuficiente")
	ErrSolicitudNoAprobada = errors.New("la solicitud no está aprobada")
)

// ApproveUsageRequest aprueba una solicitud PENDIENTE y descuenta el stock en
// la misma transacción. El descuento usa un UPDATE condicionado para que la
// cantidad nunca quede negativa aunque haya aprobaciones concurrentes.
func ApproveUsageRequest(db *gorm.DB, solicitudID, aprobadorID uint) (*models.SolicitudRepuesto, error) {
	var solicitud models.SolicitudRepuesto
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&solicitud, solicitudID).Error; err != nil {
			return err
		}
		if solicitud.Estado != models.SolicitudPendiente {
			return ErrSolicitudResuelta
		}

		res := tx.Model(&models.Inventario{}).
			Where("id = ? AND cantidad >= ?", solicitud.InventarioID, solicitud.Cantidad).
			Update("cantidad", gorm.Expr("cantidad - ?", solicitud.Cantidad))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStockInsuficiente
		}

		solicitud.Estado = models.SolicitudAprobada
		solicitud.AprobadoPor = &aprobadorID
		return tx.Save(&solicitud).Error
	})
	if err != nil {
		return nil, err
	}
	return &solicitud, nil
}

// RejectUsageRequest: PENDIENTE -> RECHAZADO. No toca el stock.
func RejectUsageRequest(db *gorm.DB, solicitudID, aprobadorID uint) (*models.SolicitudRepuesto, error) {
	var solicitud models.SolicitudRepuesto
	if err := db.First(&solicitud, solicitudID).Error; err != nil {
		return nil, err
	}
	if solicitud.Estado != models.SolicitudPendiente {
		return nil, ErrSolicitudResuelta
	}

	solicitud.Estado = models.SolicitudRechazada
	solicitud.AprobadoPor = &aprobadorID
	if err := db.Save(&solicitud).Error; err != nil {
		return nil, err
	}
	return &solicitud, nil
}

// MarkUsed: APROBADO -> USADO, cuando el mecánico instala las piezas.
func MarkUsed(db *gorm.DB, solicitudID uint) (*models.SolicitudRepuesto, error) {
	var solicitud models.SolicitudRepuesto
	if err := db.First(&solicitud, solicitudID).Error; err != nil {
		return nil, err
	}
	if solicitud.Estado != models.SolicitudAprobada {
		return nil, ErrSolicitudNoAprobada
	}

	solicitud.Estado = models.SolicitudUsada
	if err := db.Save(&solicitud).Error; err != nil {
		return nil, err
	}
	return &solicitud, nil
}
