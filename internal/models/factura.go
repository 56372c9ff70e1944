package models

import "time"

type EstadoFactura string

const (
	FacturaActiva  EstadoFactura = "ACTIVA"
	FacturaVencida EstadoFactura = "VENCIDA"
	FacturaAnulada EstadoFactura = "ANULADA"
)

type EstadoPago string

const (
	PagoPendiente EstadoPago = "PENDIENTE"
	PagoParcial   EstadoPago = "PARCIAL"
	PagoCompleto  EstadoPago = "PAGADO"
)

// Factura: una por registro de servicio completado.
// Invariante: Total = Subtotal - Descuento + Impuesto (redondeado a centavos).
// Estado VENCIDA se calcula al leer, comparando FechaVencimiento; EstadoPago se
// recalcula en cada pago registrado.
type Factura struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	RegistroID       uint             `gorm:"uniqueIndex;not null" json:"registro_id"`
	Registro         RegistroServicio `json:"-"`
	NumeroFactura    string           `gorm:"size:30;uniqueIndex;not null" json:"numero_factura"`
	Subtotal         float64          `gorm:"not null" json:"subtotal"`
	Descuento        float64          `gorm:"not null;default:0" json:"descuento"`
	Impuesto         float64          `gorm:"not null;default:0" json:"impuesto"`
	Total            float64          `gorm:"not null" json:"total"`
	Estado           EstadoFactura    `gorm:"size:20;not null;default:ACTIVA" json:"estado"`
	EstadoPago       EstadoPago       `gorm:"size:20;not null;default:PENDIENTE" json:"estado_pago"`
	FechaEmision     time.Time        `gorm:"not null" json:"fecha_emision"`
	FechaVencimiento time.Time        `gorm:"not null" json:"fecha_vencimiento"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	Pagos []Pago `gorm:"foreignKey:FacturaID;constraint:OnDelete:CASCADE" json:"pagos,omitempty"`
}

func (Factura) TableName() string { return "facturas" }

type MetodoPago string

const (
	MetodoEfectivo      MetodoPago = "EFECTIVO"
	MetodoTarjeta       MetodoPago = "TARJETA"
	MetodoTransferencia MetodoPago = "TRANSFERENCIA"
	MetodoCheque        MetodoPago = "CHEQUE"
)

// Pago: abono contra una factura o contra un pedido a proveedor (exactamente
// uno de los dos). Inmutable: no hay endpoints de update ni delete.
type Pago struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	FacturaID  *uint      `gorm:"index" json:"factura_id"`
	PedidoID   *uint      `gorm:"index" json:"pedido_id"`
	Monto      float64    `gorm:"not null" json:"monto"`
	Metodo     MetodoPago `gorm:"size:20;not null" json:"metodo"`
	Referencia string     `gorm:"size:100" json:"referencia"`
	FechaPago  time.Time  `gorm:"not null" json:"fecha_pago"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Pago) TableName() string { return "pagos" }
