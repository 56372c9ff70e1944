package models

import "time"

// Proveedor: un usuario con rol PROVEEDOR mapea a lo sumo a una fila de
// proveedor (índice único sobre usuario_id).
type Proveedor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UsuarioID   uint      `gorm:"uniqueIndex;not null" json:"usuario_id"`
	Usuario     Usuario   `json:"-"`
	RUC         string    `gorm:"size:20;not null" json:"ruc"`
	RazonSocial string    `gorm:"size:150;not null" json:"razon_social"`
	Estado      string    `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Proveedor) TableName() string { return "proveedores" }

type EstadoRepuesto string

const (
	RepuestoActivo        EstadoRepuesto = "ACTIVO"
	RepuestoDescontinuado EstadoRepuesto = "DESCONTINUADO"
)

type Repuesto struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ProveedorID     uint           `gorm:"index;not null" json:"proveedor_id"`
	Proveedor       Proveedor      `json:"-"`
	Nombre          string         `gorm:"size:100;not null" json:"nombre"`
	Descripcion     string         `gorm:"size:255" json:"descripcion"`
	Codigo          string         `gorm:"size:50;not null" json:"codigo"`
	MarcaCompatible string         `gorm:"size:50" json:"marca_compatible"`
	Estado          EstadoRepuesto `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Repuesto) TableName() string { return "repuestos" }

// CatalogoProveedor: oferta de un proveedor para un repuesto (precio, cantidad
// disponible, días de entrega). Los pedidos copian el precio vigente al detalle.
type CatalogoProveedor struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProveedorID        uint      `gorm:"index;not null" json:"proveedor_id"`
	Proveedor          Proveedor `json:"-"`
	RepuestoID         uint      `gorm:"index;not null" json:"repuesto_id"`
	Repuesto           Repuesto  `json:"repuesto,omitempty"`
	Precio             float64   `gorm:"not null" json:"precio"`
	CantidadDisponible int       `gorm:"not null" json:"cantidad_disponible"`
	TiempoEntrega      int       `json:"tiempo_entrega"` // días
	Estado             string    `gorm:"size:20;not null;default:ACTIVO" json:"estado"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (CatalogoProveedor) TableName() string { return "catalogo_proveedor" }
