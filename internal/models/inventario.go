package models

import "time"

// Inventario: existencia y precio unitario de un repuesto (1:1 con repuesto).
// La cantidad nunca baja de cero; el descuento se hace con un UPDATE condicionado
// dentro de la transacción de aprobación.
type Inventario struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RepuestoID     uint      `gorm:"uniqueIndex;not null" json:"repuesto_id"`
	Repuesto       Repuesto  `json:"repuesto,omitempty"`
	Cantidad       int       `gorm:"not null;default:0" json:"cantidad"`
	PrecioUnitario float64   `gorm:"not null" json:"precio_unitario"`
	CreatedAt      time.Time `json:"created_at"`
	// FechaActualizacion se refresca en cada movimiento de stock.
	FechaActualizacion time.Time `gorm:"autoUpdateTime" json:"fecha_actualizacion"`
}

func (Inventario) TableName() string { return "inventario" }

type EstadoSolicitudRepuesto string

const (
	SolicitudPendiente EstadoSolicitudRepuesto = "PENDIENTE"
	SolicitudAprobada  EstadoSolicitudRepuesto = "APROBADO"
	SolicitudRechazada EstadoSolicitudRepuesto = "RECHAZADO"
	SolicitudUsada     EstadoSolicitudRepuesto = "USADO"
)

// SolicitudRepuesto: pedido de piezas de una asignación de trabajo contra el
// inventario. Aprobar exige aprobador y descuenta stock atómicamente.
type SolicitudRepuesto struct {
	ID           uint                    `gorm:"primaryKey" json:"id"`
	AsignacionID uint                    `gorm:"index;not null" json:"asignacion_id"`
	Asignacion   AsignacionTrabajo       `json:"-"`
	InventarioID uint                    `gorm:"index;not null" json:"inventario_id"`
	Inventario   Inventario              `json:"inventario,omitempty"`
	Cantidad     int                     `gorm:"not null" json:"cantidad"`
	Estado       EstadoSolicitudRepuesto `gorm:"size:20;not null;default:PENDIENTE" json:"estado"`
	AprobadoPor  *uint                   `json:"aprobado_por"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

func (SolicitudRepuesto) TableName() string { return "solicitudes_repuesto" }
