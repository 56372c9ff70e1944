package models

import "time"

type EstadoPedido string

const (
	PedidoPendiente  EstadoPedido = "PENDIENTE"
	PedidoConfirmado EstadoPedido = "CONFIRMADO"
	PedidoEnTransito EstadoPedido = "EN_TRANSITO"
	PedidoEntregado  EstadoPedido = "ENTREGADO"
	PedidoCancelado  EstadoPedido = "CANCELADO"
)

// Pedido: orden de compra del taller a un proveedor.
type Pedido struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ProveedorID  uint         `gorm:"index;not null" json:"proveedor_id"`
	Proveedor    Proveedor    `json:"proveedor,omitempty"`
	NumeroPedido string       `gorm:"size:30;uniqueIndex;not null" json:"numero_pedido"`
	Total        float64      `gorm:"not null" json:"total"`
	Estado       EstadoPedido `gorm:"size:20;not null;default:PENDIENTE" json:"estado"`
	FechaPedido  time.Time    `gorm:"index;not null" json:"fecha_pedido"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Detalles []DetallePedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"detalles,omitempty"`
	Entregas []EntregaPedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"entregas,omitempty"`
	Pagos    []Pago          `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE" json:"pagos,omitempty"`
}

func (Pedido) TableName() string { return "pedidos" }

// DetallePedido: línea del pedido. PrecioUnitario se copia del catálogo al
// momento de crear el pedido para conservar el precio histórico.
type DetallePedido struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	PedidoID       uint              `gorm:"index;not null" json:"pedido_id"`
	CatalogoID     uint              `gorm:"index;not null" json:"catalogo_id"`
	Catalogo       CatalogoProveedor `json:"-"`
	Cantidad       int               `gorm:"not null" json:"cantidad"`
	PrecioUnitario float64           `gorm:"not null" json:"precio_unitario"`
	Subtotal       float64           `gorm:"not null" json:"subtotal"`
	CreatedAt      time.Time         `json:"created_at"`
}

func (DetallePedido) TableName() string { return "detalles_pedido" }

type EntregaPedido struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PedidoID     uint      `gorm:"index;not null" json:"pedido_id"`
	FechaEntrega time.Time `gorm:"not null" json:"fecha_entrega"`
	Recibido     bool      `gorm:"not null;default:false" json:"recibido"`
	Observacion  string    `gorm:"size:255" json:"observacion"`
	CreatedAt    time.Time `json:"created_at"`
}

func (EntregaPedido) TableName() string { return "entregas_pedido" }
