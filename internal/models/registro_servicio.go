package models

import "time"

type EstadoServicio string

const (
	ServicioPendiente  EstadoServicio = "PENDIENTE"
	ServicioEnProgreso EstadoServicio = "EN_PROGRESO"
	ServicioCompletado EstadoServicio = "COMPLETADO"
	ServicioCancelado  EstadoServicio = "CANCELADO"
)

type Prioridad string

const (
	PrioridadBaja    Prioridad = "BAJA"
	PrioridadMedia   Prioridad = "MEDIA"
	PrioridadAlta    Prioridad = "ALTA"
	PrioridadUrgente Prioridad = "URGENTE"
)

// RegistroServicio: un caso por visita del vehículo al taller.
type RegistroServicio struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	VehiculoID          uint           `gorm:"index;not null" json:"vehiculo_id"`
	Vehiculo            Vehiculo       `json:"vehiculo,omitempty"`
	DescripcionProblema string         `gorm:"size:500;not null" json:"descripcion_problema"`
	Estado              EstadoServicio `gorm:"size:20;not null;default:PENDIENTE" json:"estado"`
	Prioridad           Prioridad      `gorm:"size:20;not null;default:MEDIA" json:"prioridad"`
	FechaIngreso        time.Time      `gorm:"index;not null" json:"fecha_ingreso"`
	FechaEstimada       *time.Time     `json:"fecha_estimada"`
	FechaCompletado     *time.Time     `json:"fecha_completado"`
	Calificacion        *int           `json:"calificacion"` // 1..5, validado en el handler
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`

	Asignaciones []AsignacionTrabajo `gorm:"foreignKey:RegistroID;constraint:OnDelete:CASCADE" json:"asignaciones,omitempty"`
}

func (RegistroServicio) TableName() string { return "registros_servicio" }
