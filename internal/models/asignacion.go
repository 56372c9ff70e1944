package models

import "time"

type EstadoAsignacion string

const (
	AsignacionAsignada   EstadoAsignacion = "ASIGNADO"
	AsignacionEnProgreso EstadoAsignacion = "EN_PROGRESO"
	AsignacionCompletada EstadoAsignacion = "COMPLETADO"
	AsignacionCancelada  EstadoAsignacion = "CANCELADO"
	AsignacionPausada    EstadoAsignacion = "PAUSADO"
)

// AsignacionTrabajo: una unidad de trabajo dentro de un registro de servicio,
// asignada a un empleado por un administrador. Completarla exige fecha de
// finalización.
type AsignacionTrabajo struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	RegistroID          uint              `gorm:"index;not null" json:"registro_id"`
	Registro            RegistroServicio  `json:"-"`
	TipoMantenimientoID uint              `gorm:"index;not null" json:"tipo_mantenimiento_id"`
	TipoMantenimiento   TipoMantenimiento `json:"tipo_mantenimiento,omitempty"`
	EmpleadoID          uint              `gorm:"index;not null" json:"empleado_id"`
	Empleado            Usuario           `gorm:"foreignKey:EmpleadoID" json:"-"`
	AdminID             uint              `gorm:"not null" json:"admin_id"`
	Admin               Usuario           `gorm:"foreignKey:AdminID" json:"-"`
	Estado              EstadoAsignacion  `gorm:"size:20;not null;default:ASIGNADO" json:"estado"`
	Precio              float64           `gorm:"not null" json:"precio"`
	FechaInicio         *time.Time        `json:"fecha_inicio"`
	FechaFinalizacion   *time.Time        `json:"fecha_finalizacion"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`

	Diagnosticos []Diagnostico            `gorm:"foreignKey:AsignacionID;constraint:OnDelete:CASCADE" json:"diagnosticos,omitempty"`
	Sintomas     []Sintoma                `gorm:"foreignKey:AsignacionID;constraint:OnDelete:CASCADE" json:"sintomas,omitempty"`
	Avances      []Avance                 `gorm:"foreignKey:AsignacionID;constraint:OnDelete:CASCADE" json:"avances,omitempty"`
	Danios       []DanioAdicional         `gorm:"foreignKey:AsignacionID;constraint:OnDelete:CASCADE" json:"danios,omitempty"`
	Solicitudes  []SolicitudApoyo         `gorm:"foreignKey:AsignacionID;constraint:OnDelete:CASCADE" json:"solicitudes_apoyo,omitempty"`
	Adicionales  []MantenimientoAdicional `gorm:"foreignKey:AsignacionID;constraint:OnDelete:CASCADE" json:"mantenimientos_adicionales,omitempty"`
}

func (AsignacionTrabajo) TableName() string { return "asignaciones_trabajo" }

type Diagnostico struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AsignacionID uint      `gorm:"index;not null" json:"asignacion_id"`
	Descripcion  string    `gorm:"size:500;not null" json:"descripcion"`
	Solucion     string    `gorm:"size:500" json:"solucion"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Diagnostico) TableName() string { return "diagnosticos" }

type Sintoma struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AsignacionID uint      `gorm:"index;not null" json:"asignacion_id"`
	Descripcion  string    `gorm:"size:500;not null" json:"descripcion"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Sintoma) TableName() string { return "sintomas" }

type Avance struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AsignacionID uint      `gorm:"index;not null" json:"asignacion_id"`
	Descripcion  string    `gorm:"size:500;not null" json:"descripcion"`
	Porcentaje   int       `json:"porcentaje"` // 0..100
	CreatedAt    time.Time `json:"created_at"`
}

func (Avance) TableName() string { return "avances" }

type DanioAdicional struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AsignacionID uint      `gorm:"index;not null" json:"asignacion_id"`
	Descripcion  string    `gorm:"size:500;not null" json:"descripcion"`
	Reportado    bool      `gorm:"not null;default:false" json:"reportado"` // ¿ya se informó al cliente?
	CreatedAt    time.Time `json:"created_at"`
}

func (DanioAdicional) TableName() string { return "danios_adicionales" }

type EstadoSolicitudApoyo string

const (
	ApoyoPendiente EstadoSolicitudApoyo = "PENDIENTE"
	ApoyoAtendida  EstadoSolicitudApoyo = "ATENDIDA"
)

// SolicitudApoyo: un mecánico pide ayuda de un especialista sobre su asignación.
type SolicitudApoyo struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	AsignacionID uint                 `gorm:"index;not null" json:"asignacion_id"`
	Motivo       string               `gorm:"size:500;not null" json:"motivo"`
	Estado       EstadoSolicitudApoyo `gorm:"size:20;not null;default:PENDIENTE" json:"estado"`
	AtendidaPor  *uint                `json:"atendida_por"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func (SolicitudApoyo) TableName() string { return "solicitudes_apoyo" }

type EstadoAdicional string

const (
	AdicionalPropuesto EstadoAdicional = "PROPUESTO"
	AdicionalAprobado  EstadoAdicional = "APROBADO"
	AdicionalRechazado EstadoAdicional = "RECHAZADO"
)

// MantenimientoAdicional: trabajo extra detectado durante la reparación,
// propuesto al cliente para su aprobación.
type MantenimientoAdicional struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	AsignacionID   uint            `gorm:"index;not null" json:"asignacion_id"`
	Descripcion    string          `gorm:"size:500;not null" json:"descripcion"`
	PrecioEstimado float64         `json:"precio_estimado"`
	Estado         EstadoAdicional `gorm:"size:20;not null;default:PROPUESTO" json:"estado"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (MantenimientoAdicional) TableName() string { return "mantenimientos_adicionales" }
